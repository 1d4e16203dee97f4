package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
)

type SlotsTestSuite struct {
	suite.Suite
	ids *idgen.SequentialGenerator
}

func TestSlotsSuite(t *testing.T) {
	suite.Run(t, new(SlotsTestSuite))
}

func (s *SlotsTestSuite) SetupTest() {
	s.ids = idgen.NewSequential("slot")
}

func levels(slots []*dnd5e.SpellSlot) engine.SlotRow {
	var row engine.SlotRow
	for _, slot := range slots {
		if slot.Pact {
			continue
		}
		row[slot.Level-1] += slot.Max
	}
	return row
}

func (s *SlotsTestSuite) TestNoLevelsNoSlots() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{}, s.ids)

	s.Empty(result.Slots)
	s.Nil(result.Adjustment)
}

func (s *SlotsTestSuite) TestFullCasterCapstone() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 20}, s.ids)

	s.Equal(engine.SlotRow{4, 3, 3, 3, 3, 2, 2, 1, 1}, levels(result.Slots))
	s.Len(result.Slots, 9)
	for _, slot := range result.Slots {
		s.Equal(dnd5e.RecoveryLong, slot.RecoversOn)
		s.False(slot.Pact)
		s.Zero(slot.Used)
	}
}

func (s *SlotsTestSuite) TestHalfCasterUsesOwnTable() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Half: 20}, s.ids)
	s.Equal(engine.SlotRow{4, 3, 3, 3, 2, 0, 0, 0, 0}, levels(result.Slots))

	// single class paladin 2 has slots even though effective level is 1
	result = engine.SynthesizeSpellSlots(engine.CasterBreakdown{Half: 2}, s.ids)
	s.Equal(engine.SlotRow{2}, levels(result.Slots))
}

func (s *SlotsTestSuite) TestMulticlassUsesEffectiveLevel() {
	// wizard 3 / paladin 4 -> effective 5
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 3, Half: 4}, s.ids)
	s.Equal(engine.FullCasterSlots(5), levels(result.Slots))

	// half levels round down
	result = engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 1, Half: 1}, s.ids)
	s.Equal(engine.FullCasterSlots(1), levels(result.Slots))
}

func (s *SlotsTestSuite) TestPactSlots() {
	testCases := []struct {
		name      string
		pact      int
		wantLevel int
		wantMax   int
	}{
		{name: "level 1", pact: 1, wantLevel: 1, wantMax: 1},
		{name: "level 2", pact: 2, wantLevel: 1, wantMax: 2},
		{name: "level 3", pact: 3, wantLevel: 2, wantMax: 2},
		{name: "level 5", pact: 5, wantLevel: 3, wantMax: 2},
		{name: "level 9", pact: 9, wantLevel: 5, wantMax: 2},
		{name: "level 20 caps at 5th", pact: 20, wantLevel: 5, wantMax: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Pact: tc.pact}, s.ids)

			s.Require().Len(result.Slots, 1)
			slot := result.Slots[0]
			s.Equal(tc.wantLevel, slot.Level)
			s.Equal(tc.wantMax, slot.Max)
			s.True(slot.Pact)
			s.Equal(dnd5e.RecoveryShort, slot.RecoversOn)
		})
	}
}

func (s *SlotsTestSuite) TestOverflowReducesHalfAfterPact() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 18, Half: 5}, s.ids)

	s.Require().NotNil(result.Adjustment)
	s.Equal(engine.CasterBreakdown{Full: 18, Half: 2}, result.Breakdown)
	s.Equal(3, result.Adjustment.Overflow())
	s.Equal(engine.FullCasterSlots(19), levels(result.Slots))
}

func (s *SlotsTestSuite) TestOverflowTakesPactFirst() {
	normalized, adj := engine.NormalizeBreakdown(engine.CasterBreakdown{Full: 10, Half: 8, Pact: 5})

	s.Require().NotNil(adj)
	s.Equal(engine.CasterBreakdown{Full: 10, Half: 8, Pact: 2}, normalized)
	s.Equal(engine.CasterBreakdown{Full: 10, Half: 8, Pact: 5}, adj.Original)
}

func (s *SlotsTestSuite) TestOverflowNeverReducesFull() {
	normalized, adj := engine.NormalizeBreakdown(engine.CasterBreakdown{Full: 25, Half: 3, Pact: 2})

	s.Require().NotNil(adj)
	s.Equal(engine.CasterBreakdown{Full: 25}, normalized)
}

func (s *SlotsTestSuite) TestNegativeInputsCoerced() {
	normalized, adj := engine.NormalizeBreakdown(engine.CasterBreakdown{Full: -3, Half: -1, Pact: 4})

	s.Nil(adj)
	s.Equal(engine.CasterBreakdown{Pact: 4}, normalized)
}

func (s *SlotsTestSuite) TestMixedCasterOrdering() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 5, Pact: 3}, s.ids)

	s.Require().Len(result.Slots, 4)
	s.True(result.Slots[0].Pact)
	s.Equal(2, result.Slots[0].Level)
	for i, slot := range result.Slots[1:] {
		s.False(slot.Pact)
		s.Equal(i+1, slot.Level)
	}
}

func (s *SlotsTestSuite) TestIDsAssigned() {
	result := engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 3}, s.ids)

	s.Require().Len(result.Slots, 2)
	s.Equal("slot_1", result.Slots[0].ID)
	s.Equal("slot_2", result.Slots[1].ID)

	result = engine.SynthesizeSpellSlots(engine.CasterBreakdown{Full: 1}, nil)
	s.Require().Len(result.Slots, 1)
	s.Empty(result.Slots[0].ID)
}

func (s *SlotsTestSuite) TestMergeKeepsFirstIdentity() {
	input := []*dnd5e.SpellSlot{
		{ID: "a", Level: 1, Max: 2, Used: 1, RecoversOn: dnd5e.RecoveryLong},
		{ID: "b", Level: 1, Max: 1, Used: 1, RecoversOn: dnd5e.RecoveryShort, Pact: true},
		{ID: "c", Level: 1, Max: 3, Used: 5, RecoversOn: dnd5e.RecoveryLong},
	}

	merged := engine.MergeSpellSlots(input)

	s.Require().Len(merged, 2)
	s.Equal("b", merged[0].ID)
	s.Equal("a", merged[1].ID)
	s.Equal(5, merged[1].Max)
	s.Equal(5, merged[1].Used)

	// input untouched
	s.Equal(2, input[0].Max)
	s.Equal(1, input[0].Used)
}

func (s *SlotsTestSuite) TestMergeRederivesPact() {
	merged := engine.MergeSpellSlots([]*dnd5e.SpellSlot{
		{ID: "a", Level: 2, Max: 1, RecoversOn: dnd5e.RecoveryShort, Pact: false},
		{ID: "b", Level: 2, Max: 1, RecoversOn: dnd5e.RecoveryShort, Pact: true},
	})

	s.Require().Len(merged, 1)
	s.True(merged[0].Pact)
	s.Equal(2, merged[0].Max)
}

func (s *SlotsTestSuite) TestParseCasterLevel() {
	testCases := map[string]int{
		"":      0,
		"7":     7,
		" 12 ":  12,
		"3rd":   3,
		"abc":   0,
		"-4":    0,
		"+5":    5,
		"4.9":   4,
		"00011": 11,
	}

	for in, want := range testCases {
		s.Equal(want, engine.ParseCasterLevel(in), "input %q", in)
	}
}
