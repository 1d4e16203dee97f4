// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	char *dnd5e.Character
}

// NewCharacterBuilder creates a new builder for a healthy 10 HP character
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		char: &dnd5e.Character{
			ID:         "char-test-123",
			Name:       "Test Character",
			MaxHP:      10,
			CurrentHP:  10,
			Resources:  []*dnd5e.Resource{},
			SpellSlots: []*dnd5e.SpellSlot{},
			Statuses:   []*dnd5e.Status{},
		},
	}
}

// WithID sets the character ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.char.ID = id
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.char.Name = name
	return b
}

// WithHP sets current and maximum hit points
func (b *CharacterBuilder) WithHP(current, maxHP int) *CharacterBuilder {
	b.char.CurrentHP = current
	b.char.MaxHP = maxHP
	return b
}

// WithTempHP sets temporary hit points
func (b *CharacterBuilder) WithTempHP(temp int) *CharacterBuilder {
	b.char.TempHP = temp
	return b
}

// WithDeathSaves sets the death save counters
func (b *CharacterBuilder) WithDeathSaves(success, failure int) *CharacterBuilder {
	b.char.DeathSaves = dnd5e.DeathSaves{Success: success, Failure: failure}
	return b
}

// WithResource adds a resource
func (b *CharacterBuilder) WithResource(id, name string, current, maxUses int, recoversOn dnd5e.RecoveryType) *CharacterBuilder {
	b.char.Resources = append(b.char.Resources, &dnd5e.Resource{
		ID:         id,
		Name:       name,
		Current:    current,
		Max:        maxUses,
		RecoversOn: recoversOn,
	})
	return b
}

// WithSpellSlot adds a slot pool. Pact is derived from recoversOn.
func (b *CharacterBuilder) WithSpellSlot(id string, level, maxSlots, used int, recoversOn dnd5e.RecoveryType) *CharacterBuilder {
	slot := &dnd5e.SpellSlot{
		ID:         id,
		Level:      level,
		Max:        maxSlots,
		Used:       used,
		RecoversOn: recoversOn,
	}
	slot.SyncPact()
	b.char.SpellSlots = append(b.char.SpellSlots, slot)
	return b
}

// WithStatus adds a status
func (b *CharacterBuilder) WithStatus(id, name string, remaining int, durationType dnd5e.DurationType) *CharacterBuilder {
	b.char.Statuses = append(b.char.Statuses, &dnd5e.Status{
		ID:           id,
		Name:         name,
		Remaining:    remaining,
		DurationType: durationType,
	})
	return b
}

// WithConcentration marks the character as concentrating
func (b *CharacterBuilder) WithConcentration(spell string, since int64) *CharacterBuilder {
	b.char.Concentration = &dnd5e.Concentration{Spell: spell, Since: since}
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *dnd5e.Character {
	return b.char
}

// BuildRoster wraps the built character in a roster with it selected
func (b *CharacterBuilder) BuildRoster() *dnd5e.Roster {
	return &dnd5e.Roster{
		Characters:          []*dnd5e.Character{b.char},
		SelectedCharacterID: b.char.ID,
	}
}
