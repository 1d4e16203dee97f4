package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/config"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/observability"
	"github.com/KirkDiggler/rpg-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tracker/internal/render"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
)

// app holds everything a single CLI invocation needs
type app struct {
	out    io.Writer
	errOut io.Writer

	// flags
	configPath  string
	characterID string
	quiet       bool

	// Overrides used by tests. A nil repository means the configured store.
	repository roster.Repository
	ids        idgen.Generator
	clock      clock.Clock
	roller     tracker.Roller

	cfg     config.Config
	logger  *zap.Logger
	store   *store
	bus     events.EventBus
	tracker tracker.Service
	closers []func() error
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		ids:    idgen.NewUUID(""),
		clock:  clock.New(),
	}
}

// run executes one command line and returns the process exit code
func run(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
		return errors.GetCode(err).ExitCode()
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tracker",
		Short: "D&D 5e session tracker",
		Long: `Tracks hit points, spell slots, resources, conditions, concentration and
death saves for a roster of D&D 5e characters between sessions.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVarP(&a.characterID, "character", "c", "",
		"character ID to act on (defaults to the selected character)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "do not print the character sheet after changes")

	root.AddCommand(
		newCharacterCmd(a),
		newDamageCmd(a),
		newHealCmd(a),
		newTempHPCmd(a),
		newRestCmd(a),
		newSlotsCmd(a),
		newResourceCmd(a),
		newStatusCmd(a),
		newConcentrateCmd(a),
		newDeathSaveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newDoctorCmd(a),
	)
	return root
}

// setup loads config and wires the logger, store and tracker
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	if a.repository != nil {
		a.store = &store{Repository: a.repository, name: "injected"}
	} else {
		a.store, err = openStore(ctx, cfg.Storage, logger)
		if err != nil {
			return err
		}
		if a.store.close != nil {
			a.closers = append(a.closers, a.store.close)
		}
	}

	a.bus = events.NewBus()
	a.tracker, err = tracker.NewOrchestrator(&tracker.Config{
		Repository:  a.store,
		IDGenerator: a.ids,
		Clock:       a.clock,
		Roller:      a.roller,
		Logger:      logger,
		EventBus:    a.bus,
	})
	if err != nil {
		return err
	}

	if !a.quiet {
		for _, t := range tracker.CharacterEventTypes {
			a.bus.SubscribeFunc(string(t), 0, a.renderSheet)
		}
	}
	return nil
}

// renderSheet prints the character carried by a tracker event. Deletions
// and cleared selections carry no character.
func (a *app) renderSheet(_ context.Context, ev events.Event) error {
	c := tracker.TargetCharacter(ev)
	if c == nil {
		return nil
	}
	a.printSheet(c)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("failed to close", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printSheet(c *dnd5e.Character) {
	if err := render.Sheet(a.out, c, render.Options{Now: a.clock.Now()}); err != nil {
		a.logger.Warn("failed to render sheet", zap.Error(err))
	}
}

// confirm refuses destructive commands that were not passed --yes
func confirm(yes bool, action string) error {
	if yes {
		return nil
	}
	return errors.FailedPreconditionf("%s needs confirmation, pass --yes", action)
}

func parseAmount(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be a whole number, got %q", name, value)
	}
	return n, nil
}
