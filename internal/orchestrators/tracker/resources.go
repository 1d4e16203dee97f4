package tracker

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

var recoveryTypes = []string{
	string(dnd5e.RecoveryShort),
	string(dnd5e.RecoveryLong),
	string(dnd5e.RecoveryNone),
}

func (o *orchestrator) AddResource(ctx context.Context, input *AddResourceInput) (*AddResourceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	recoversOn := input.RecoversOn
	if recoversOn == "" {
		recoversOn = dnd5e.RecoveryLong
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, maxNameLength, vb)
	errors.ValidateMin("max", input.Max, 0, vb)
	errors.ValidateEnum("recovers_on", string(recoversOn), recoveryTypes, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	current := input.Max
	if input.Current != nil {
		current = min(max(0, *input.Current), input.Max)
	}

	res := &dnd5e.Resource{
		ID:         o.ids.Generate(),
		Name:       name,
		Current:    current,
		Max:        input.Max,
		RecoversOn: recoversOn,
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		c.Resources = append(c.Resources, res)
		return EventResourcesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &AddResourceOutput{Character: c, ResourceID: res.ID}, nil
}

func (o *orchestrator) AdjustResource(ctx context.Context, input *AdjustResourceInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		res := c.FindResource(input.ResourceID)
		if res == nil {
			return "", errors.NotFoundf("resource %s not found", input.ResourceID)
		}
		next := min(max(0, res.Current+input.Delta), res.Max)
		if next == res.Current {
			return "", nil
		}
		res.Current = next
		return EventResourcesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

func (o *orchestrator) RemoveResource(ctx context.Context, input *RemoveResourceInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		kept := make([]*dnd5e.Resource, 0, len(c.Resources))
		for _, r := range c.Resources {
			if r.ID != input.ResourceID {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(c.Resources) {
			return "", nil
		}
		c.Resources = kept
		return EventResourcesChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}
