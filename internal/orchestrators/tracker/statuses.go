package tracker

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

var durationTypes = []string{
	string(dnd5e.DurationRounds),
	string(dnd5e.DurationMinutes),
	string(dnd5e.DurationRest),
}

func (o *orchestrator) AddStatus(ctx context.Context, input *AddStatusInput) (*AddStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	durationType := input.DurationType
	if durationType == "" {
		durationType = dnd5e.DurationRounds
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, maxNameLength, vb)
	errors.ValidateMin("remaining", input.Remaining, 0, vb)
	errors.ValidateEnum("duration_type", string(durationType), durationTypes, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	status := &dnd5e.Status{
		ID:           o.ids.Generate(),
		Name:         name,
		Remaining:    input.Remaining,
		DurationType: durationType,
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		c.Statuses = append(c.Statuses, status)
		return EventStatusesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &AddStatusOutput{Character: c, StatusID: status.ID}, nil
}

func (o *orchestrator) RemoveStatus(ctx context.Context, input *RemoveStatusInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		kept := make([]*dnd5e.Status, 0, len(c.Statuses))
		for _, s := range c.Statuses {
			if s.ID != input.StatusID {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(c.Statuses) {
			return "", nil
		}
		c.Statuses = kept
		return EventStatusesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

// ToggleCondition removes every status with the condition's name, or adds
// it lasting until a rest when none is present
func (o *orchestrator) ToggleCondition(ctx context.Context, input *ToggleConditionInput) (*ToggleConditionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := canonicalCondition(input.Name)
	if name == "" {
		return nil, errors.InvalidArgumentf("%q is not a standard condition", input.Name)
	}

	out := &ToggleConditionOutput{}
	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		if c.HasCondition(name) {
			kept := make([]*dnd5e.Status, 0, len(c.Statuses))
			for _, s := range c.Statuses {
				if s.Name != name {
					kept = append(kept, s)
				}
			}
			c.Statuses = kept
			out.Active = false
			return EventStatusesChanged, nil
		}

		c.Statuses = append(c.Statuses, &dnd5e.Status{
			ID:           o.ids.Generate(),
			Name:         name,
			Remaining:    0,
			DurationType: dnd5e.DurationRest,
		})
		out.Active = true
		return EventStatusesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	out.Character = c
	return out, nil
}

// canonicalCondition matches name case-insensitively against the standard
// conditions and returns the canonical spelling, or ""
func canonicalCondition(name string) string {
	name = strings.TrimSpace(name)
	for _, cond := range dnd5e.StandardConditions {
		if strings.EqualFold(cond, name) {
			return cond
		}
	}
	return ""
}

func (o *orchestrator) StartConcentration(ctx context.Context, input *StartConcentrationInput) (*CharacterOutput, error) {
	if input == nil {
		input = &StartConcentrationInput{}
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		c.Concentration = &dnd5e.Concentration{
			Spell: strings.TrimSpace(input.Spell),
			Since: o.clock.Now().UnixMilli(),
		}
		return EventConcentrationChange, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

func (o *orchestrator) StopConcentration(ctx context.Context, input *StopConcentrationInput) (*CharacterOutput, error) {
	if input == nil {
		input = &StopConcentrationInput{}
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		if !c.IsConcentrating() {
			return "", nil
		}
		if !input.Confirmed {
			return "", errors.FailedPrecondition("stopping concentration must be confirmed")
		}
		c.Concentration = nil
		return EventConcentrationChange, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

func (o *orchestrator) RecordDeathSave(ctx context.Context, input *RecordDeathSaveInput) (*RecordDeathSaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		counter := &c.DeathSaves.Failure
		if input.Success {
			counter = &c.DeathSaves.Success
		}
		if *counter >= dnd5e.MaxDeathSaves {
			return "", nil
		}
		*counter++
		return EventDeathSavesChanged, nil
	})
	if err != nil {
		return nil, err
	}

	return &RecordDeathSaveOutput{
		Character: c,
		Stable:    c.DeathSaves.Success >= dnd5e.MaxDeathSaves,
		Dead:      c.DeathSaves.Failure >= dnd5e.MaxDeathSaves,
	}, nil
}

func (o *orchestrator) ResetDeathSaves(ctx context.Context, input *ResetDeathSavesInput) (*CharacterOutput, error) {
	if input == nil {
		input = &ResetDeathSavesInput{}
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		if c.DeathSaves == (dnd5e.DeathSaves{}) {
			return "", nil
		}
		c.DeathSaves = dnd5e.DeathSaves{}
		return EventDeathSavesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}
