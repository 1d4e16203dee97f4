package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tracker/internal/render"
)

func newCharacterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char"},
		Short:   "Create, list, select and delete characters",
	}

	var maxHP int
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a character at full hit points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.tracker.CreateCharacter(cmd.Context(), &tracker.CreateCharacterInput{
				Name:  args[0],
				MaxHP: maxHP,
			})
			if err != nil {
				return err
			}
			a.printf("Created %s (%s)\n", out.Character.Name, out.Character.ID)
			if out.Selected {
				a.printf("%s is now selected.\n", out.Character.Name)
			}
			return nil
		},
	}
	create.Flags().IntVar(&maxHP, "max-hp", 0, "maximum hit points (required)")
	_ = create.MarkFlagRequired("max-hp")

	list := &cobra.Command{
		Use:   "list",
		Short: "List characters, marking the selected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.tracker.ListCharacters(cmd.Context(), &tracker.ListCharactersInput{})
			if err != nil {
				return err
			}
			return render.CharacterList(a.out, out.Characters, out.SelectedCharacterID)
		},
	}

	show := &cobra.Command{
		Use:   "show [ID]",
		Short: "Print a character sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.characterID
			if len(args) == 1 {
				id = args[0]
			}
			out, err := a.tracker.GetCharacter(cmd.Context(), &tracker.GetCharacterInput{CharacterID: id})
			if err != nil {
				return err
			}
			return render.Sheet(a.out, out.Character, render.Options{Now: a.clock.Now()})
		},
	}

	var clearSelection bool
	sel := &cobra.Command{
		Use:   "select [ID]",
		Short: "Select the character other commands act on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else if !clearSelection {
				return cmd.Help()
			}
			out, err := a.tracker.SelectCharacter(cmd.Context(), &tracker.SelectCharacterInput{CharacterID: id})
			if err != nil {
				return err
			}
			if out.Character == nil {
				a.printf("Selection cleared.\n")
			}
			return nil
		},
	}
	sel.Flags().BoolVar(&clearSelection, "clear", false, "clear the selection")

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "deleting a character"); err != nil {
				return err
			}
			out, err := a.tracker.DeleteCharacter(cmd.Context(), &tracker.DeleteCharacterInput{CharacterID: args[0]})
			if err != nil {
				return err
			}
			a.printf("Deleted %s.\n", args[0])
			if out.SelectionCleared {
				a.printf("No character is selected now.\n")
			}
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")

	cmd.AddCommand(create, list, show, sel, del)
	return cmd
}
