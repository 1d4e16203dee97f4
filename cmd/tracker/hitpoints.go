package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tracker/internal/render"
)

// amountArgs reads either a positional amount or --roll, never both.
// Amounts are read leniently: "5x" is 5 and "abc" is 0, a no-op.
func amountArgs(args []string, notation string) (int, error) {
	switch {
	case notation != "" && len(args) > 0:
		return 0, errors.InvalidArgument("pass an amount or --roll, not both")
	case notation != "":
		return 0, nil
	case len(args) == 0:
		return 0, errors.InvalidArgument("an amount or --roll is required")
	default:
		return engine.ParseAmount(args[0]), nil
	}
}

func (a *app) printRoll(roll *tracker.Roll) {
	if roll != nil {
		a.printf("Rolled %s: %s = %d\n", roll.Notation, roll.Description, roll.Total)
	}
}

func newDamageCmd(a *app) *cobra.Command {
	var notation string
	cmd := &cobra.Command{
		Use:   "damage [AMOUNT]",
		Short: "Apply damage, temporary hit points absorb it first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountArgs(args, notation)
			if err != nil {
				return err
			}
			out, err := a.tracker.ApplyDamage(cmd.Context(), &tracker.ApplyDamageInput{
				CharacterID: a.characterID,
				Amount:      amount,
				Notation:    notation,
			})
			if err != nil {
				return err
			}
			a.printRoll(out.Roll)
			a.printf("%s\n", render.DamageLine(out.Character.Name, out.Result, out.ConcentrationDC))
			return nil
		},
	}
	cmd.Flags().StringVar(&notation, "roll", "", "roll the amount, e.g. 2d6+3")
	return cmd
}

func newHealCmd(a *app) *cobra.Command {
	var notation string
	cmd := &cobra.Command{
		Use:   "heal [AMOUNT]",
		Short: "Restore hit points up to the maximum",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountArgs(args, notation)
			if err != nil {
				return err
			}
			out, err := a.tracker.Heal(cmd.Context(), &tracker.HealInput{
				CharacterID: a.characterID,
				Amount:      amount,
				Notation:    notation,
			})
			if err != nil {
				return err
			}
			a.printRoll(out.Roll)
			a.printf("%s heals %d.\n", out.Character.Name, out.Healed)
			return nil
		},
	}
	cmd.Flags().StringVar(&notation, "roll", "", "roll the amount, e.g. 2d4+2")
	return cmd
}

func newTempHPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "temp-hp AMOUNT",
		Short: "Set temporary hit points, replacing any current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			_, err = a.tracker.SetTempHP(cmd.Context(), &tracker.SetTempHPInput{
				CharacterID: a.characterID,
				Amount:      amount,
			})
			return err
		},
	}
}

func newRestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Take a short or long rest",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "short",
			Short: "Recover short-rest resources and pact slots",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := a.tracker.ShortRest(cmd.Context(), &tracker.RestInput{CharacterID: a.characterID})
				return err
			},
		},
		&cobra.Command{
			Use:   "long",
			Short: "Recover everything and reset hit points",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := a.tracker.LongRest(cmd.Context(), &tracker.RestInput{CharacterID: a.characterID})
				return err
			},
		},
	)
	return cmd
}
