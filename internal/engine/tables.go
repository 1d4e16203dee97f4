package engine

import (
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// SlotRow is the number of slots per spell level, index 0 being 1st level
type SlotRow [dnd5e.MaxSpellLevel]int

// fullCasterTable is the multiclass spellcaster table, indexed by effective
// caster level - 1
var fullCasterTable = [dnd5e.MaxCharacterLevel]SlotRow{
	{2, 0, 0, 0, 0, 0, 0, 0, 0},
	{3, 0, 0, 0, 0, 0, 0, 0, 0},
	{4, 2, 0, 0, 0, 0, 0, 0, 0},
	{4, 3, 0, 0, 0, 0, 0, 0, 0},
	{4, 3, 2, 0, 0, 0, 0, 0, 0},
	{4, 3, 3, 0, 0, 0, 0, 0, 0},
	{4, 3, 3, 1, 0, 0, 0, 0, 0},
	{4, 3, 3, 2, 0, 0, 0, 0, 0},
	{4, 3, 3, 3, 1, 0, 0, 0, 0},
	{4, 3, 3, 3, 2, 0, 0, 0, 0},
	{4, 3, 3, 3, 2, 1, 0, 0, 0},
	{4, 3, 3, 3, 2, 1, 0, 0, 0},
	{4, 3, 3, 3, 2, 1, 1, 0, 0},
	{4, 3, 3, 3, 2, 1, 1, 0, 0},
	{4, 3, 3, 3, 2, 1, 1, 1, 0},
	{4, 3, 3, 3, 2, 1, 1, 1, 0},
	{4, 3, 3, 3, 2, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// halfCasterTable is the single-class Paladin/Ranger table, indexed by class
// level - 1
var halfCasterTable = [dnd5e.MaxCharacterLevel]SlotRow{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{2, 0, 0, 0, 0, 0, 0, 0, 0},
	{3, 0, 0, 0, 0, 0, 0, 0, 0},
	{3, 0, 0, 0, 0, 0, 0, 0, 0},
	{4, 2, 0, 0, 0, 0, 0, 0, 0},
	{4, 2, 0, 0, 0, 0, 0, 0, 0},
	{4, 3, 0, 0, 0, 0, 0, 0, 0},
	{4, 3, 0, 0, 0, 0, 0, 0, 0},
	{4, 3, 2, 0, 0, 0, 0, 0, 0},
	{4, 3, 2, 0, 0, 0, 0, 0, 0},
	{4, 3, 3, 0, 0, 0, 0, 0, 0},
	{4, 3, 3, 0, 0, 0, 0, 0, 0},
	{4, 3, 3, 1, 0, 0, 0, 0, 0},
	{4, 3, 3, 1, 0, 0, 0, 0, 0},
	{4, 3, 3, 2, 0, 0, 0, 0, 0},
	{4, 3, 3, 2, 0, 0, 0, 0, 0},
	{4, 3, 3, 3, 1, 0, 0, 0, 0},
	{4, 3, 3, 3, 1, 0, 0, 0, 0},
	{4, 3, 3, 3, 2, 0, 0, 0, 0},
	{4, 3, 3, 3, 2, 0, 0, 0, 0},
}

// FullCasterSlots returns the slot row for an effective caster level.
// Levels above 20 use the level 20 row; levels below 1 have no slots.
func FullCasterSlots(level int) SlotRow {
	return lookup(&fullCasterTable, level)
}

// HalfCasterSlots returns the slot row for a single-class half caster level.
// Levels above 20 use the level 20 row; levels below 1 have no slots.
func HalfCasterSlots(level int) SlotRow {
	return lookup(&halfCasterTable, level)
}

// EffectiveCasterLevel combines full and half caster levels for the
// multiclass table: full + floor(half / 2)
func EffectiveCasterLevel(full, half int) int {
	return full + half/2
}

// StandardSlots picks the right table for a breakdown. A character with half
// caster levels and no full caster levels uses the dedicated half caster
// progression; everyone else uses the multiclass table at the effective level.
// Pact levels never contribute.
func StandardSlots(b CasterBreakdown) SlotRow {
	if b.Full == 0 && b.Half > 0 {
		return HalfCasterSlots(b.Half)
	}
	return FullCasterSlots(EffectiveCasterLevel(b.Full, b.Half))
}

// Sum returns the total number of slots in the row
func (r SlotRow) Sum() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

func lookup(table *[dnd5e.MaxCharacterLevel]SlotRow, level int) SlotRow {
	if level < 1 {
		return SlotRow{}
	}
	if level > dnd5e.MaxCharacterLevel {
		level = dnd5e.MaxCharacterLevel
	}
	return table[level-1]
}
