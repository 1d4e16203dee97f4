package engine

import (
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// ApplyDamage removes amount hit points from c. Temporary hit points are
// spent first and current hit points never drop below zero. Non-positive
// amounts are ignored.
func ApplyDamage(c *dnd5e.Character, amount int) DamageResult {
	if c == nil || amount <= 0 {
		return DamageResult{}
	}

	absorbed := min(max(0, c.TempHP), amount)
	c.TempHP -= absorbed
	remaining := amount - absorbed

	taken := min(c.CurrentHP, remaining)
	c.CurrentHP = max(0, c.CurrentHP-remaining)

	return DamageResult{Absorbed: absorbed, Taken: max(0, taken)}
}

// Heal restores up to amount hit points without exceeding MaxHP and returns
// how many were actually restored. Temporary hit points are not affected.
// Non-positive amounts are ignored.
func Heal(c *dnd5e.Character, amount int) int {
	if c == nil || amount <= 0 {
		return 0
	}

	before := c.CurrentHP
	c.CurrentHP = min(max(0, c.MaxHP), c.CurrentHP+amount)
	return max(0, c.CurrentHP-before)
}

// SetTempHP replaces the character's temporary hit points. Temporary hit
// points do not stack, negative values are treated as zero.
func SetTempHP(c *dnd5e.Character, amount int) {
	if c == nil {
		return
	}
	c.TempHP = max(0, amount)
}

// ParseAmount reads a damage or healing amount with the same leniency as
// ParseCasterLevel. Text without a leading number reads as 0, which applies
// nothing.
func ParseAmount(s string) int {
	return parseLeadingInt(s)
}
