package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
)

func newSlotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Build and spend spell slots",
	}
	cmd.AddCommand(
		newSlotsBuildCmd(a),
		newSlotsAddCmd(a),
		newSlotsShiftCmd(a, "use", "Mark slots in a pool as spent", 1),
		newSlotsShiftCmd(a, "restore", "Mark spent slots in a pool as available", -1),
		newSlotsSetCmd(a),
		newSlotsRemoveCmd(a),
	)
	return cmd
}

func newSlotsBuildCmd(a *app) *cobra.Command {
	var full, half, pact string
	var appendSlots bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Derive spell slots from caster levels",
		Long: `Derive spell slots from full caster, half caster and pact magic levels.
Levels above 20 in total are reduced, pact levels first and then half caster
levels. Without --append the existing slots are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			breakdown := engine.CasterBreakdown{
				Full: engine.ParseCasterLevel(full),
				Half: engine.ParseCasterLevel(half),
				Pact: engine.ParseCasterLevel(pact),
			}
			out, err := a.tracker.BuildSpellSlots(cmd.Context(), &tracker.BuildSpellSlotsInput{
				CharacterID: a.characterID,
				Breakdown:   breakdown,
				Append:      appendSlots,
			})
			if err != nil {
				return err
			}
			if out.Adjustment != nil {
				a.printf("Caster levels exceed %d; using %s instead of %s.\n",
					dnd5e.MaxCharacterLevel, out.Adjustment.Normalized, out.Adjustment.Original)
			}
			a.printf("Built spell slots for %s.\n", out.Breakdown)
			return nil
		},
	}
	cmd.Flags().StringVar(&full, "full", "0", "full caster levels")
	cmd.Flags().StringVar(&half, "half", "0", "half caster levels")
	cmd.Flags().StringVar(&pact, "pact", "0", "pact magic (warlock) levels")
	cmd.Flags().BoolVar(&appendSlots, "append", false, "merge into the existing slots instead of replacing them")
	return cmd
}

func newSlotsAddCmd(a *app) *cobra.Command {
	var level, count int
	var recoversOn string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add slots by hand, merged into a matching pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.tracker.AddSpellSlot(cmd.Context(), &tracker.AddSpellSlotInput{
				CharacterID: a.characterID,
				Level:       level,
				Max:         count,
				RecoversOn:  dnd5e.RecoveryType(recoversOn),
			})
			if err != nil {
				return err
			}
			a.printf("Slots added to pool %s.\n", out.SlotID)
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", 1, "spell level (1-9)")
	cmd.Flags().IntVar(&count, "max", 1, "number of slots")
	cmd.Flags().StringVar(&recoversOn, "recovers-on", string(dnd5e.RecoveryLong), "short or long")
	return cmd
}

// findSlot reads the current state of a slot pool
func (a *app) findSlot(ctx context.Context, slotID string) (*dnd5e.SpellSlot, error) {
	out, err := a.tracker.GetCharacter(ctx, &tracker.GetCharacterInput{CharacterID: a.characterID})
	if err != nil {
		return nil, err
	}
	slot := out.Character.FindSpellSlot(slotID)
	if slot == nil {
		return nil, errors.NotFoundf("spell slot %s not found", slotID)
	}
	return slot, nil
}

// newSlotsShiftCmd builds use/restore, which move Used by sign*N
func newSlotsShiftCmd(a *app, use, short string, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SLOT_ID [N]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 2 {
				var err error
				if n, err = parseAmount("N", args[1]); err != nil {
					return err
				}
			}
			slot, err := a.findSlot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = a.tracker.SetSlotUsed(cmd.Context(), &tracker.SetSlotUsedInput{
				CharacterID: a.characterID,
				SlotID:      slot.ID,
				Used:        slot.Used + sign*n,
			})
			return err
		},
	}
}

func newSlotsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set SLOT_ID USED",
		Short: "Set how many slots in a pool are spent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			used, err := parseAmount("USED", args[1])
			if err != nil {
				return err
			}
			_, err = a.tracker.SetSlotUsed(cmd.Context(), &tracker.SetSlotUsedInput{
				CharacterID: a.characterID,
				SlotID:      args[0],
				Used:        used,
			})
			return err
		},
	}
}

func newSlotsRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove SLOT_ID",
		Short: "Remove a slot pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "removing a slot pool"); err != nil {
				return err
			}
			_, err := a.tracker.RemoveSpellSlot(cmd.Context(), &tracker.RemoveSpellSlotInput{
				CharacterID: a.characterID,
				SlotID:      args[0],
			})
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm removal")
	return cmd
}
