package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Add and remove statuses and conditions",
	}

	var remaining int
	var durationType string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a status with a duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.tracker.AddStatus(cmd.Context(), &tracker.AddStatusInput{
				CharacterID:  a.characterID,
				Name:         args[0],
				Remaining:    remaining,
				DurationType: dnd5e.DurationType(durationType),
			})
			if err != nil {
				return err
			}
			a.printf("Added %s (%s).\n", args[0], out.StatusID)
			return nil
		},
	}
	add.Flags().IntVar(&remaining, "remaining", 0, "remaining duration")
	add.Flags().StringVar(&durationType, "duration", string(dnd5e.DurationRounds), "rounds, minutes or rest")

	remove := &cobra.Command{
		Use:   "remove STATUS_ID",
		Short: "Remove a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.tracker.RemoveStatus(cmd.Context(), &tracker.RemoveStatusInput{
				CharacterID: a.characterID,
				StatusID:    args[0],
			})
			return err
		},
	}

	condition := &cobra.Command{
		Use:   "condition NAME",
		Short: "Toggle a standard condition such as Prone or Poisoned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.tracker.ToggleCondition(cmd.Context(), &tracker.ToggleConditionInput{
				CharacterID: a.characterID,
				Name:        args[0],
			})
			if err != nil {
				return err
			}
			state := "off"
			if out.Active {
				state = "on"
			}
			a.printf("%s is %s.\n", args[0], state)
			return nil
		},
	}

	cmd.AddCommand(add, remove, condition)
	return cmd
}

func newConcentrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concentrate",
		Short: "Start or stop concentrating on a spell",
	}

	start := &cobra.Command{
		Use:   "start [SPELL]",
		Short: "Start concentrating, replacing any current spell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spell := ""
			if len(args) == 1 {
				spell = args[0]
			}
			_, err := a.tracker.StartConcentration(cmd.Context(), &tracker.StartConcentrationInput{
				CharacterID: a.characterID,
				Spell:       spell,
			})
			return err
		},
	}

	var yes bool
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop concentrating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.tracker.StopConcentration(cmd.Context(), &tracker.StopConcentrationInput{
				CharacterID: a.characterID,
				Confirmed:   yes,
			})
			return err
		},
	}
	stop.Flags().BoolVarP(&yes, "yes", "y", false, "confirm ending concentration")

	cmd.AddCommand(start, stop)
	return cmd
}

func newDeathSaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "death-save",
		Short: "Record death saving throws",
	}

	record := func(success bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			out, err := a.tracker.RecordDeathSave(cmd.Context(), &tracker.RecordDeathSaveInput{
				CharacterID: a.characterID,
				Success:     success,
			})
			if err != nil {
				return err
			}
			switch {
			case out.Dead:
				a.printf("%s has failed three death saves.\n", out.Character.Name)
			case out.Stable:
				a.printf("%s is stable.\n", out.Character.Name)
			}
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "success",
			Short: "Record a successful death save",
			Args:  cobra.NoArgs,
			RunE:  record(true),
		},
		&cobra.Command{
			Use:   "failure",
			Short: "Record a failed death save",
			Args:  cobra.NoArgs,
			RunE:  record(false),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear death saves",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := a.tracker.ResetDeathSaves(cmd.Context(), &tracker.ResetDeathSavesInput{
					CharacterID: a.characterID,
				})
				return err
			},
		},
	)
	return cmd
}
