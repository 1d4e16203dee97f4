package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
)

func newDoctorCmd(a *app) *cobra.Command {
	var repair, yes bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the slot tables and the configured storage",
		Long: `Check the built-in spell slot tables and that the stored roster can be read.

With --repair a readable roster is written back in normalised form, and an
unreadable one is cleared (this also needs --yes).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var failed error

			if err := engine.VerifyTables(); err != nil {
				a.printf("slot tables: FAILED: %v\n", err)
				failed = errors.WrapWithCode(err, errors.CodeInternal, "slot tables are inconsistent")
			} else {
				a.printf("slot tables: ok\n")
			}

			if a.store.check != nil {
				if err := a.store.check(ctx); err != nil {
					a.printf("storage (%s): FAILED: %v\n", a.store.name, err)
					return err
				}
			}

			snap, err := a.tracker.Snapshot(ctx, &tracker.SnapshotInput{})
			switch {
			case err == nil:
				a.printf("storage (%s): ok, %d characters\n", a.store.name, len(snap.Roster.Characters))
			case errors.GetCode(err) == errors.CodeDataLoss && repair:
				a.printf("storage (%s): unreadable roster: %v\n", a.store.name, err)
				if err := confirm(yes, "clearing an unreadable roster"); err != nil {
					return err
				}
				if _, err := a.store.Clear(ctx, roster.ClearInput{}); err != nil {
					return err
				}
				a.printf("storage (%s): cleared\n", a.store.name)
				return failed
			default:
				a.printf("storage (%s): FAILED: %v\n", a.store.name, err)
				return err
			}

			if a.store.lastSaved != nil {
				at, err := a.store.lastSaved(ctx)
				if err != nil {
					return err
				}
				if !at.IsZero() {
					a.printf("last saved: %s\n", at.Format(time.RFC3339))
				}
			}

			if repair && len(snap.Roster.Characters) > 0 {
				if _, err := a.tracker.ReplaceRoster(ctx, &tracker.ReplaceRosterInput{Roster: snap.Roster}); err != nil {
					return err
				}
				a.printf("storage (%s): rewritten\n", a.store.name)
			}

			return failed
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "rewrite the roster, clearing it if unreadable")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing an unreadable roster")
	return cmd
}
