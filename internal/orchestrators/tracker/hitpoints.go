package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

const minConcentrationDC = 10

// amount returns the explicit amount, or rolls notation when it is set
func (o *orchestrator) amount(amount int, notation string) (int, *Roll, error) {
	if notation == "" {
		return amount, nil, nil
	}
	roll, err := o.roller.Roll(notation)
	if err != nil {
		return 0, nil, err
	}
	o.logger.Debug("rolled amount", zap.String("notation", notation), zap.Int("total", roll.Total))
	return roll.Total, roll, nil
}

func (o *orchestrator) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	amount, roll, err := o.amount(input.Amount, input.Notation)
	if err != nil {
		return nil, err
	}

	out := &ApplyDamageOutput{Roll: roll}
	out.Character, err = o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		if amount <= 0 {
			return "", nil
		}
		out.Result = engine.ApplyDamage(c, amount)
		if c.IsConcentrating() {
			out.ConcentrationDC = max(minConcentrationDC, amount/2)
		}
		return EventHitPointsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Heal(ctx context.Context, input *HealInput) (*HealOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	amount, roll, err := o.amount(input.Amount, input.Notation)
	if err != nil {
		return nil, err
	}

	out := &HealOutput{Roll: roll}
	out.Character, err = o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		out.Healed = engine.Heal(c, amount)
		if out.Healed == 0 {
			return "", nil
		}
		return EventHitPointsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) SetTempHP(ctx context.Context, input *SetTempHPInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		engine.SetTempHP(c, input.Amount)
		return EventHitPointsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

func (o *orchestrator) ShortRest(ctx context.Context, input *RestInput) (*CharacterOutput, error) {
	return o.rest(ctx, input, "short", engine.ShortRest)
}

func (o *orchestrator) LongRest(ctx context.Context, input *RestInput) (*CharacterOutput, error) {
	return o.rest(ctx, input, "long", engine.LongRest)
}

func (o *orchestrator) rest(ctx context.Context, input *RestInput, kind string, apply func(*dnd5e.Character)) (*CharacterOutput, error) {
	if input == nil {
		input = &RestInput{}
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		apply(c)
		return EventRested, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("rest taken", zap.String("character_id", c.ID), zap.String("rest", kind))
	return &CharacterOutput{Character: c}, nil
}
