package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

func (o *orchestrator) BuildSpellSlots(ctx context.Context, input *BuildSpellSlotsInput) (*BuildSpellSlotsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	result := engine.SynthesizeSpellSlots(input.Breakdown, o.ids)
	if result.Adjustment != nil {
		o.logger.Warn("caster breakdown exceeded 20 levels, reduced pact then half caster levels",
			zap.Stringer("original", result.Adjustment.Original),
			zap.Stringer("normalized", result.Adjustment.Normalized),
			zap.Int("overflow", result.Adjustment.Overflow()))
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		if input.Append {
			c.SpellSlots = engine.MergeSpellSlots(append(c.SpellSlots, result.Slots...))
		} else {
			c.SpellSlots = result.Slots
		}
		return EventSpellSlotsChanged, nil
	})
	if err != nil {
		return nil, err
	}

	return &BuildSpellSlotsOutput{
		Character:  c,
		Breakdown:  result.Breakdown,
		Adjustment: result.Adjustment,
	}, nil
}

func (o *orchestrator) AddSpellSlot(ctx context.Context, input *AddSpellSlotInput) (*AddSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	recoversOn := input.RecoversOn
	if recoversOn == "" {
		recoversOn = dnd5e.RecoveryLong
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", input.Level, dnd5e.MinSpellLevel, dnd5e.MaxSpellLevel, vb)
	errors.ValidateMin("max", input.Max, 1, vb)
	errors.ValidateEnum("recovers_on", string(recoversOn),
		[]string{string(dnd5e.RecoveryShort), string(dnd5e.RecoveryLong)}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	slot := &dnd5e.SpellSlot{
		ID:         o.ids.Generate(),
		Level:      input.Level,
		Max:        input.Max,
		RecoversOn: recoversOn,
	}
	slot.SyncPact()

	out := &AddSpellSlotOutput{}
	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		c.SpellSlots = engine.MergeSpellSlots(append(c.SpellSlots, slot))
		for _, s := range c.SpellSlots {
			if s.Level == slot.Level && s.RecoversOn == slot.RecoversOn {
				out.SlotID = s.ID
				break
			}
		}
		return EventSpellSlotsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	out.Character = c
	return out, nil
}

func (o *orchestrator) SetSlotUsed(ctx context.Context, input *SetSlotUsedInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		slot := c.FindSpellSlot(input.SlotID)
		if slot == nil {
			return "", errors.NotFoundf("spell slot %s not found", input.SlotID)
		}
		used := min(max(0, input.Used), slot.Max)
		if used == slot.Used {
			return "", nil
		}
		slot.Used = used
		return EventSpellSlotsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}

func (o *orchestrator) RemoveSpellSlot(ctx context.Context, input *RemoveSpellSlotInput) (*CharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.mutate(ctx, input.CharacterID, func(c *dnd5e.Character) (EventType, error) {
		kept := make([]*dnd5e.SpellSlot, 0, len(c.SpellSlots))
		for _, s := range c.SpellSlots {
			if s.ID != input.SlotID {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(c.SpellSlots) {
			return "", nil
		}
		c.SpellSlots = kept
		return EventSpellSlotsChanged, nil
	})
	if err != nil {
		return nil, err
	}
	return &CharacterOutput{Character: c}, nil
}
