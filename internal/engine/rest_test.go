package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

type RestTestSuite struct {
	suite.Suite
	char *dnd5e.Character
}

func TestRestSuite(t *testing.T) {
	suite.Run(t, new(RestTestSuite))
}

func (s *RestTestSuite) SetupTest() {
	s.char = &dnd5e.Character{
		ID:         "char_1",
		Name:       "Vex",
		MaxHP:      30,
		CurrentHP:  12,
		TempHP:     4,
		DeathSaves: dnd5e.DeathSaves{Success: 2, Failure: 1},
		Resources: []*dnd5e.Resource{
			{ID: "res_short", Name: "Channel Divinity", Current: 0, Max: 1, RecoversOn: dnd5e.RecoveryShort},
			{ID: "res_long", Name: "Rage", Current: 1, Max: 3, RecoversOn: dnd5e.RecoveryLong},
			{ID: "res_none", Name: "Luck Charm", Current: 0, Max: 1, RecoversOn: dnd5e.RecoveryNone},
		},
		SpellSlots: []*dnd5e.SpellSlot{
			{ID: "slot_pact", Level: 2, Max: 2, Used: 2, RecoversOn: dnd5e.RecoveryShort, Pact: true},
			{ID: "slot_1", Level: 1, Max: 4, Used: 3, RecoversOn: dnd5e.RecoveryLong},
		},
	}
}

func (s *RestTestSuite) TestShortRest() {
	engine.ShortRest(s.char)

	s.Equal(1, s.char.Resources[0].Current)
	s.Equal(1, s.char.Resources[1].Current)
	s.Equal(0, s.char.Resources[2].Current)
	s.Equal(0, s.char.SpellSlots[0].Used)
	s.Equal(3, s.char.SpellSlots[1].Used)

	s.Equal(12, s.char.CurrentHP)
	s.Equal(4, s.char.TempHP)
	s.Equal(dnd5e.DeathSaves{Success: 2, Failure: 1}, s.char.DeathSaves)
}

func (s *RestTestSuite) TestShortRestIdempotent() {
	engine.ShortRest(s.char)
	once := cloneCharacter(s.char)

	engine.ShortRest(s.char)
	s.Equal(once, s.char)
}

func (s *RestTestSuite) TestLongRest() {
	engine.LongRest(s.char)

	s.Equal(1, s.char.Resources[0].Current)
	s.Equal(3, s.char.Resources[1].Current)
	s.Equal(0, s.char.Resources[2].Current)
	s.Equal(0, s.char.SpellSlots[0].Used)
	s.Equal(0, s.char.SpellSlots[1].Used)

	s.Equal(30, s.char.CurrentHP)
	s.Equal(0, s.char.TempHP)
	s.Equal(dnd5e.DeathSaves{}, s.char.DeathSaves)
}

func (s *RestTestSuite) TestLongRestKeepsIdentity() {
	engine.LongRest(s.char)

	s.Equal("slot_pact", s.char.SpellSlots[0].ID)
	s.Equal("slot_1", s.char.SpellSlots[1].ID)
	s.Equal("res_short", s.char.Resources[0].ID)
}

func (s *RestTestSuite) TestNilCharacter() {
	s.NotPanics(func() {
		engine.ShortRest(nil)
		engine.LongRest(nil)
	})
}

func cloneCharacter(c *dnd5e.Character) *dnd5e.Character {
	out := *c
	out.Resources = make([]*dnd5e.Resource, len(c.Resources))
	for i, r := range c.Resources {
		cp := *r
		out.Resources[i] = &cp
	}
	out.SpellSlots = make([]*dnd5e.SpellSlot, len(c.SpellSlots))
	for i, sl := range c.SpellSlots {
		cp := *sl
		out.SpellSlots[i] = &cp
	}
	return &out
}
