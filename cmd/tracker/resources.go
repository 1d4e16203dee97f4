package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
)

func newResourceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res"},
		Short:   "Track limited-use abilities like Rage or Ki",
	}

	var maxUses, current int
	var recoversOn string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a resource, starting full unless --current is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &tracker.AddResourceInput{
				CharacterID: a.characterID,
				Name:        args[0],
				Max:         maxUses,
				RecoversOn:  dnd5e.RecoveryType(recoversOn),
			}
			if cmd.Flags().Changed("current") {
				input.Current = &current
			}
			out, err := a.tracker.AddResource(cmd.Context(), input)
			if err != nil {
				return err
			}
			a.printf("Added %s (%s).\n", args[0], out.ResourceID)
			return nil
		},
	}
	add.Flags().IntVar(&maxUses, "max", 1, "maximum uses")
	add.Flags().IntVar(&current, "current", 0, "current uses (defaults to max)")
	add.Flags().StringVar(&recoversOn, "recovers-on", string(dnd5e.RecoveryLong), "short, long or none")

	var yes bool
	remove := &cobra.Command{
		Use:   "remove RESOURCE_ID",
		Short: "Remove a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "removing a resource"); err != nil {
				return err
			}
			_, err := a.tracker.RemoveResource(cmd.Context(), &tracker.RemoveResourceInput{
				CharacterID: a.characterID,
				ResourceID:  args[0],
			})
			return err
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "confirm removal")

	cmd.AddCommand(
		add,
		newResourceAdjustCmd(a, "use", "Spend uses of a resource", -1),
		newResourceAdjustCmd(a, "restore", "Regain uses of a resource", 1),
		remove,
	)
	return cmd
}

func newResourceAdjustCmd(a *app, use, short string, sign int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " RESOURCE_ID [N]",
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
			_, err := a.tracker.AdjustResource(cmd.Context(), &tracker.AdjustResourceInput{
				CharacterID: a.characterID,
				ResourceID:  args[0],
				Delta:       sign * n,
			})
			return err
		},
	}
}
