package engine

import (
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// ShortRest restores every short-rest resource and spell slot pool.
// Hit points and death saves are left alone.
func ShortRest(c *dnd5e.Character) {
	if c == nil {
		return
	}
	restore(c, dnd5e.RecoveryShort)
}

// LongRest restores every short- and long-rest resource and spell slot
// pool, restores hit points to maximum, drops temporary hit points and
// clears death saves.
func LongRest(c *dnd5e.Character) {
	if c == nil {
		return
	}
	restore(c, dnd5e.RecoveryShort, dnd5e.RecoveryLong)

	c.CurrentHP = max(0, c.MaxHP)
	c.TempHP = 0
	c.DeathSaves = dnd5e.DeathSaves{}
}

func restore(c *dnd5e.Character, types ...dnd5e.RecoveryType) {
	matches := func(t dnd5e.RecoveryType) bool {
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}

	for _, r := range c.Resources {
		if matches(r.RecoversOn) {
			r.Current = r.Max
		}
	}
	for _, s := range c.SpellSlots {
		if matches(s.RecoversOn) {
			s.Used = 0
		}
	}
}
