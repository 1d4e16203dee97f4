package dnd5e_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

type CharacterTestSuite struct {
	suite.Suite
}

func TestCharacterSuite(t *testing.T) {
	suite.Run(t, new(CharacterTestSuite))
}

func (s *CharacterTestSuite) TestNormalizeClampsEverything() {
	char := &dnd5e.Character{
		ID:         "char_1",
		MaxHP:      20,
		CurrentHP:  35,
		TempHP:     -4,
		DeathSaves: dnd5e.DeathSaves{Success: 7, Failure: -1},
		Resources: []*dnd5e.Resource{
			{ID: "res_1", Current: 9, Max: 3, RecoversOn: dnd5e.RecoveryShort},
		},
		SpellSlots: []*dnd5e.SpellSlot{
			{ID: "slot_1", Level: 1, Max: 2, Used: 5, RecoversOn: dnd5e.RecoveryShort, Pact: false},
			{ID: "slot_2", Level: 2, Max: 3, Used: -1, RecoversOn: dnd5e.RecoveryLong, Pact: true},
		},
	}

	char.Normalize()

	s.Equal(20, char.CurrentHP)
	s.Equal(0, char.TempHP)
	s.Equal(dnd5e.DeathSaves{Success: 3, Failure: 0}, char.DeathSaves)
	s.Equal(3, char.Resources[0].Current)
	s.Equal(2, char.SpellSlots[0].Used)
	s.True(char.SpellSlots[0].Pact)
	s.Equal(0, char.SpellSlots[1].Used)
	s.False(char.SpellSlots[1].Pact)
	s.NotNil(char.Statuses)
}

func (s *CharacterTestSuite) TestNormalizeDropsNullEntries() {
	char := &dnd5e.Character{
		ID:         "char_1",
		MaxHP:      10,
		CurrentHP:  10,
		Resources:  []*dnd5e.Resource{nil, {ID: "res_1", Current: 1, Max: 1}},
		SpellSlots: []*dnd5e.SpellSlot{nil},
		Statuses:   []*dnd5e.Status{{ID: "st_1", Name: "Blessed"}, nil},
	}

	s.NotPanics(char.Normalize)

	s.Require().Len(char.Resources, 1)
	s.Equal("res_1", char.Resources[0].ID)
	s.Empty(char.SpellSlots)
	s.Require().Len(char.Statuses, 1)
	s.Equal("st_1", char.Statuses[0].ID)
	s.NotPanics(func() { char.Clone() })
}

func (s *CharacterTestSuite) TestLookups() {
	char := &dnd5e.Character{
		ID:         "char_1",
		Resources:  []*dnd5e.Resource{{ID: "res_1", Name: "Rage"}},
		SpellSlots: []*dnd5e.SpellSlot{{ID: "slot_1", Level: 1}},
		Statuses:   []*dnd5e.Status{{ID: "st_1", Name: dnd5e.ConditionProne}},
	}

	s.Equal("Rage", char.FindResource("res_1").Name)
	s.Nil(char.FindResource("missing"))
	s.Equal(1, char.FindSpellSlot("slot_1").Level)
	s.Nil(char.FindSpellSlot("missing"))
	s.True(char.HasCondition(dnd5e.ConditionProne))
	s.False(char.HasCondition(dnd5e.ConditionStunned))
	s.False(char.IsConcentrating())
	s.Equal("char_1", char.GetID())
	s.Equal(dnd5e.EntityTypeCharacter, char.GetType())
}

func (s *CharacterTestSuite) TestRosterSelection() {
	roster := dnd5e.NewRoster()
	s.Nil(roster.Selected())

	roster.Characters = append(roster.Characters, &dnd5e.Character{ID: "char_1", Name: "Aria"})
	roster.SelectedCharacterID = "char_1"
	s.Equal("Aria", roster.Selected().Name)

	roster.SelectedCharacterID = "gone"
	s.Nil(roster.Selected())
}

func (s *CharacterTestSuite) TestStandardConditions() {
	s.Len(dnd5e.StandardConditions, 14)
	s.True(dnd5e.IsStandardCondition(dnd5e.ConditionUnconscious))
	s.False(dnd5e.IsStandardCondition("Hexed"))
}

func (s *CharacterTestSuite) TestCloneIsDeep() {
	roster := &dnd5e.Roster{
		SelectedCharacterID: "char_1",
		Characters: []*dnd5e.Character{{
			ID:            "char_1",
			Resources:     []*dnd5e.Resource{{ID: "res_1", Current: 1, Max: 2}},
			SpellSlots:    []*dnd5e.SpellSlot{{ID: "slot_1", Level: 1, Max: 2}},
			Statuses:      []*dnd5e.Status{{ID: "st_1", Name: "Hexed"}},
			Concentration: &dnd5e.Concentration{Spell: "Bless"},
		}},
	}

	clone := roster.Clone()
	s.Equal(roster, clone)

	clone.Characters[0].Resources[0].Current = 0
	clone.Characters[0].SpellSlots[0].Used = 2
	clone.Characters[0].Statuses[0].Name = "Blessed"
	clone.Characters[0].Concentration.Spell = "Haste"
	clone.SelectedCharacterID = ""

	s.Equal(1, roster.Characters[0].Resources[0].Current)
	s.Equal(0, roster.Characters[0].SpellSlots[0].Used)
	s.Equal("Hexed", roster.Characters[0].Statuses[0].Name)
	s.Equal("Bless", roster.Characters[0].Concentration.Spell)
	s.Equal("char_1", roster.SelectedCharacterID)
}
