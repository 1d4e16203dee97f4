package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

func (o *orchestrator) Snapshot(ctx context.Context, _ *SnapshotInput) (*SnapshotOutput, error) {
	var out SnapshotOutput
	err := o.read(ctx, func(r *dnd5e.Roster) error {
		out.Roster = r.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplaceRoster swaps in a whole roster. Characters are normalised and a
// selection pointing at a missing character is dropped.
func (o *orchestrator) ReplaceRoster(ctx context.Context, input *ReplaceRosterInput) (*ReplaceRosterOutput, error) {
	if input == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("roster is required")
	}

	seen := make(map[string]bool, len(input.Roster.Characters))
	for _, c := range input.Roster.Characters {
		if c == nil || c.ID == "" {
			return nil, errors.InvalidArgument("every character needs an ID")
		}
		if seen[c.ID] {
			return nil, errors.AlreadyExistsf("duplicate character ID %s", c.ID)
		}
		seen[c.ID] = true
	}

	replacement := normalizeRoster(input.Roster.Clone())
	err := o.commit(ctx, func(r *dnd5e.Roster) (Event, error) {
		r.Characters = replacement.Characters
		r.SelectedCharacterID = replacement.SelectedCharacterID
		return Event{Type: EventRosterReplaced}, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("roster replaced", zap.Int("characters", len(replacement.Characters)))
	return &ReplaceRosterOutput{Characters: len(replacement.Characters)}, nil
}
