package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tracker/internal/services/transfer"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole roster as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.tracker.Snapshot(cmd.Context(), &tracker.SnapshotInput{})
			if err != nil {
				return err
			}

			w := a.out
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrapf(err, "failed to create %s", output)
				}
				defer f.Close()
				w = f
			}

			if err := transfer.Export(w, snap.Roster, a.clock.Now()); err != nil {
				return err
			}
			if w != a.out {
				a.printf("Exported %d characters to %s.\n", len(snap.Roster.Characters), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (defaults to stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the whole roster from a YAML export (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "replacing the roster"); err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					if os.IsNotExist(err) {
						return errors.NotFoundf("file %s not found", args[0])
					}
					return errors.Wrapf(err, "failed to open %s", args[0])
				}
				defer f.Close()
				r = f
			}

			imported, err := transfer.Import(r, a.ids)
			if err != nil {
				return err
			}
			out, err := a.tracker.ReplaceRoster(cmd.Context(), &tracker.ReplaceRosterInput{Roster: imported})
			if err != nil {
				return err
			}
			a.printf("Imported %d characters.\n", out.Characters)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm replacing the roster")
	return cmd
}
