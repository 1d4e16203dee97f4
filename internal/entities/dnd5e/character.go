// Package dnd5e implements the D&D 5e session-tracking entities
package dnd5e

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Character represents a tracked D&D 5e character during play
// NOTE: This is a data-only struct. Damage, healing, rests and slot derivation
// are done by internal/engine, not here.
type Character struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	MaxHP         int            `json:"maxHP" yaml:"max_hp"`
	CurrentHP     int            `json:"currentHP" yaml:"current_hp"`
	TempHP        int            `json:"tempHP" yaml:"temp_hp"`
	DeathSaves    DeathSaves     `json:"deathSaves" yaml:"death_saves"`
	Resources     []*Resource    `json:"resources" yaml:"resources"`
	SpellSlots    []*SpellSlot   `json:"spellSlots" yaml:"spell_slots"`
	Statuses      []*Status      `json:"statuses" yaml:"statuses"`
	Concentration *Concentration `json:"concentration,omitempty" yaml:"concentration,omitempty"`
}

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// Character is the target entity of every tracker event on the rpg-toolkit bus
var _ core.Entity = (*Character)(nil)

// FindResource returns the resource with the given ID, or nil
func (c *Character) FindResource(id string) *Resource {
	for _, r := range c.Resources {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// FindSpellSlot returns the spell slot pool with the given ID, or nil
func (c *Character) FindSpellSlot(id string) *SpellSlot {
	for _, s := range c.SpellSlots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// HasCondition reports whether a status with exactly this name is active
func (c *Character) HasCondition(name string) bool {
	for _, s := range c.Statuses {
		if s.Name == name {
			return true
		}
	}
	return false
}

// IsConcentrating reports whether the character currently holds concentration
func (c *Character) IsConcentrating() bool {
	return c.Concentration != nil
}

// Normalize enforces the character invariants in place. It is used after
// loading or importing data that may have been written by an older version
// or edited by hand.
func (c *Character) Normalize() {
	if c.MaxHP < 0 {
		c.MaxHP = 0
	}
	c.CurrentHP = clamp(c.CurrentHP, 0, c.MaxHP)
	if c.TempHP < 0 {
		c.TempHP = 0
	}
	c.DeathSaves.Success = clamp(c.DeathSaves.Success, 0, MaxDeathSaves)
	c.DeathSaves.Failure = clamp(c.DeathSaves.Failure, 0, MaxDeathSaves)

	c.Resources = compact(c.Resources)
	c.SpellSlots = compact(c.SpellSlots)
	c.Statuses = compact(c.Statuses)

	for _, r := range c.Resources {
		if r.Max < 0 {
			r.Max = 0
		}
		r.Current = clamp(r.Current, 0, r.Max)
	}
	for _, s := range c.SpellSlots {
		if s.Max < 0 {
			s.Max = 0
		}
		s.Used = clamp(s.Used, 0, s.Max)
		s.SyncPact()
	}

	if c.Resources == nil {
		c.Resources = []*Resource{}
	}
	if c.SpellSlots == nil {
		c.SpellSlots = []*SpellSlot{}
	}
	if c.Statuses == nil {
		c.Statuses = []*Status{}
	}
}

// compact drops nil entries, keeping order
func compact[T any](items []*T) []*T {
	if items == nil {
		return nil
	}
	out := items[:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c

	if c.Resources != nil {
		out.Resources = make([]*Resource, len(c.Resources))
		for i, r := range c.Resources {
			cp := *r
			out.Resources[i] = &cp
		}
	}
	if c.SpellSlots != nil {
		out.SpellSlots = make([]*SpellSlot, len(c.SpellSlots))
		for i, s := range c.SpellSlots {
			cp := *s
			out.SpellSlots[i] = &cp
		}
	}
	if c.Statuses != nil {
		out.Statuses = make([]*Status, len(c.Statuses))
		for i, s := range c.Statuses {
			cp := *s
			out.Statuses[i] = &cp
		}
	}
	if c.Concentration != nil {
		cp := *c.Concentration
		out.Concentration = &cp
	}
	return &out
}
