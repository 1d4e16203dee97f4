package engine

import (
	"fmt"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// CasterBreakdown splits a character's levels by spellcasting progression
type CasterBreakdown struct {
	// Full is the number of levels in full caster classes (Wizard, Cleric, ...)
	Full int
	// Half is the number of levels in half caster classes (Paladin, Ranger)
	Half int
	// Pact is the number of Warlock levels
	Pact int
}

// Total returns the combined level count
func (b CasterBreakdown) Total() int {
	return b.Full + b.Half + b.Pact
}

// String renders the breakdown as full/half/pact
func (b CasterBreakdown) String() string {
	return fmt.Sprintf("full=%d half=%d pact=%d", b.Full, b.Half, b.Pact)
}

// Adjustment records that a breakdown over the character level cap was
// reduced before slots were computed
type Adjustment struct {
	Original   CasterBreakdown
	Normalized CasterBreakdown
}

// Overflow returns how many levels were removed
func (a *Adjustment) Overflow() int {
	return a.Original.Total() - a.Normalized.Total()
}

// SynthesisResult is the output of SynthesizeSpellSlots
type SynthesisResult struct {
	// Slots is merged and ordered pact first, then by ascending level
	Slots []*dnd5e.SpellSlot
	// Breakdown is the breakdown actually used, after coercion and capping
	Breakdown CasterBreakdown
	// Adjustment is non-nil when the input exceeded the level cap
	Adjustment *Adjustment
}

// DamageResult describes how damage was split between temporary and real HP
type DamageResult struct {
	Absorbed int
	Taken    int
}
