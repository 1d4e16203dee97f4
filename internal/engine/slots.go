package engine

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
)

// NormalizeBreakdown coerces negative levels to zero and caps the total at
// the character level limit. Overflow comes out of pact levels first, then
// half caster levels; full caster levels are never reduced. The returned
// Adjustment is nil when nothing had to be removed.
func NormalizeBreakdown(b CasterBreakdown) (CasterBreakdown, *Adjustment) {
	b.Full = max(0, b.Full)
	b.Half = max(0, b.Half)
	b.Pact = max(0, b.Pact)

	over := b.Total() - dnd5e.MaxCharacterLevel
	if over <= 0 {
		return b, nil
	}

	original := b
	fromPact := min(b.Pact, over)
	b.Pact -= fromPact
	over -= fromPact
	if over > 0 {
		b.Half = max(0, b.Half-over)
	}

	return b, &Adjustment{Original: original, Normalized: b}
}

// PactSlots returns the Warlock pact magic pool for a number of Warlock
// levels: one slot at level 1, two slots afterwards, with the slot level
// rising every other level up to 5th.
func PactSlots(pactLevels int) (level, count int) {
	if pactLevels <= 0 {
		return 0, 0
	}
	count = 2
	if pactLevels == 1 {
		count = 1
	}
	level = min((pactLevels+1)/2, dnd5e.MaxPactSlotLevel)
	return level, count
}

// SynthesizeSpellSlots derives a character's spell slot pools from a caster
// breakdown. Standard slots recover on a long rest, pact slots on a short
// rest. Pools sharing level, recovery and pact flag are merged and the
// result is ordered pact first, then by ascending level.
//
// ids may be nil, in which case slots are returned without identifiers.
func SynthesizeSpellSlots(b CasterBreakdown, ids idgen.Generator) *SynthesisResult {
	normalized, adjustment := NormalizeBreakdown(b)

	newID := func() string {
		if ids == nil {
			return ""
		}
		return ids.Generate()
	}

	var out []*dnd5e.SpellSlot
	for i, count := range StandardSlots(normalized) {
		if count <= 0 {
			continue
		}
		out = append(out, &dnd5e.SpellSlot{
			ID:         newID(),
			Level:      i + 1,
			Max:        count,
			Used:       0,
			RecoversOn: dnd5e.RecoveryLong,
			Pact:       false,
		})
	}

	if level, count := PactSlots(normalized.Pact); count > 0 {
		out = append(out, &dnd5e.SpellSlot{
			ID:         newID(),
			Level:      level,
			Max:        count,
			Used:       0,
			RecoversOn: dnd5e.RecoveryShort,
			Pact:       true,
		})
	}

	return &SynthesisResult{
		Slots:      MergeSpellSlots(out),
		Breakdown:  normalized,
		Adjustment: adjustment,
	}
}

type slotGroup struct {
	level      int
	recoversOn dnd5e.RecoveryType
	pact       bool
}

// MergeSpellSlots combines pools that share level, recovery type and pact
// flag. Max values are summed; used values are summed and clamped to the
// merged max. The merged pool keeps the identity of the first pool in its
// group. The input is not modified. The pact flag of every pool is
// re-derived from its recovery type before grouping.
func MergeSpellSlots(slots []*dnd5e.SpellSlot) []*dnd5e.SpellSlot {
	merged := make(map[slotGroup]*dnd5e.SpellSlot, len(slots))
	result := make([]*dnd5e.SpellSlot, 0, len(slots))

	for _, s := range slots {
		if s == nil {
			continue
		}
		slot := *s
		slot.SyncPact()

		key := slotGroup{level: slot.Level, recoversOn: slot.RecoversOn, pact: slot.Pact}
		existing, ok := merged[key]
		if !ok {
			slot.Used = clamp(slot.Used, 0, max(0, slot.Max))
			merged[key] = &slot
			result = append(result, &slot)
			continue
		}

		existing.Max += max(0, slot.Max)
		existing.Used = min(existing.Max, existing.Used+max(0, slot.Used))
	}

	SortSpellSlots(result)
	return result
}

// SortSpellSlots orders pools pact first, then by ascending spell level.
// Equal pools keep their relative order.
func SortSpellSlots(slots []*dnd5e.SpellSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Pact != b.Pact {
			return a.Pact
		}
		return a.Level < b.Level
	})
}

// ParseCasterLevel coerces free text to a non-negative integer the way the level
// inputs of a character sheet are read: leading whitespace is skipped, the
// leading run of digits is used and anything else yields 0.
func ParseCasterLevel(s string) int {
	return parseLeadingInt(s)
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			n = 1_000_000
		}
	}
	if negative {
		return 0
	}
	return n
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
