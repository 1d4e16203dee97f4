package transfer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tracker/internal/services/transfer"
	"github.com/KirkDiggler/rpg-tracker/internal/testutils"
)

type TransferTestSuite struct {
	suite.Suite
}

func TestTransferSuite(t *testing.T) {
	suite.Run(t, new(TransferTestSuite))
}

func (s *TransferTestSuite) testRoster() *dnd5e.Roster {
	return &dnd5e.Roster{
		SelectedCharacterID: "char_1",
		Characters: []*dnd5e.Character{{
			ID:         "char_1",
			Name:       "Aria",
			MaxHP:      24,
			CurrentHP:  20,
			TempHP:     2,
			DeathSaves: dnd5e.DeathSaves{Failure: 1},
			Resources: []*dnd5e.Resource{
				{ID: "res_1", Name: "Bardic Inspiration", Current: 3, Max: 3, RecoversOn: dnd5e.RecoveryLong},
			},
			SpellSlots: []*dnd5e.SpellSlot{
				{ID: "slot_2", Level: 1, Max: 2, Used: 1, RecoversOn: dnd5e.RecoveryShort, Pact: true},
				{ID: "slot_1", Level: 1, Max: 4, Used: 0, RecoversOn: dnd5e.RecoveryLong},
			},
			Statuses: []*dnd5e.Status{
				{ID: "st_1", Name: "Hexed", Remaining: 10, DurationType: dnd5e.DurationMinutes},
			},
			Concentration: &dnd5e.Concentration{Spell: "Faerie Fire", Since: 1714590000000},
		}},
	}
}

func (s *TransferTestSuite) TestExportImport() {
	var buf bytes.Buffer
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	s.Require().NoError(transfer.Export(&buf, s.testRoster(), at))

	s.Contains(buf.String(), "version: 1")
	s.Contains(buf.String(), "recovers_on: short")
	s.Contains(buf.String(), "exported_at: 2024-05-01T20:00:00Z")

	got, err := transfer.Import(&buf, nil)
	s.Require().NoError(err)
	s.Equal(s.testRoster(), got)
}

func (s *TransferTestSuite) TestImportHandWritten() {
	doc := `
version: 1
selected_character_id: ghost
characters:
  - name: Brom
    max_hp: 12
    current_hp: 40
    spell_slots:
      - level: 2
        max: 2
        used: 5
        recovers_on: long
      - level: 1
        max: 1
        recovers_on: short
    resources:
      - name: Rage
        current: 2
        max: 3
    statuses:
      - name: Prone
        duration_type: rest
`
	got, err := transfer.Import(strings.NewReader(doc), idgen.NewSequential("imp"))
	s.Require().NoError(err)

	s.Empty(got.SelectedCharacterID)
	s.Require().Len(got.Characters, 1)
	c := got.Characters[0]
	s.Equal("imp_1", c.ID)
	s.Equal(12, c.CurrentHP)

	s.Require().Len(c.SpellSlots, 2)
	s.True(c.SpellSlots[0].Pact)
	s.Equal(1, c.SpellSlots[0].Level)
	s.Equal(2, c.SpellSlots[1].Used)
	s.Equal(dnd5e.RecoveryLong, c.Resources[0].RecoversOn)
	s.NotEmpty(c.Statuses[0].ID)
}

func (s *TransferTestSuite) TestImportRejectsDuplicates() {
	doc := `
version: 1
characters:
  - id: a
    name: One
    max_hp: 5
    resources:
      - {id: r, name: Ki, max: 2, recovers_on: short}
      - {id: r, name: Ki, max: 2, recovers_on: short}
  - id: a
    name: Two
    max_hp: 5
`
	_, err := transfer.Import(strings.NewReader(doc), nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "characters[1].id")
	s.Contains(err.Error(), "characters[0].resources[1].id")
}

func (s *TransferTestSuite) TestImportValidation() {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty",
			doc:  "",
			want: "empty",
		},
		{
			name: "wrong version",
			doc:  "version: 7\ncharacters: []\n",
			want: "unsupported format version",
		},
		{
			name: "unknown field",
			doc:  "version: 1\nparty: true\ncharacters: []\n",
			want: "failed to decode",
		},
		{
			name: "bad slot level",
			doc:  "version: 1\ncharacters:\n  - {id: a, name: A, max_hp: 1, spell_slots: [{id: s, level: 12, max: 1}]}\n",
			want: "spell_slots[0].level",
		},
		{
			name: "slot cannot be none",
			doc:  "version: 1\ncharacters:\n  - {id: a, name: A, max_hp: 1, spell_slots: [{id: s, level: 1, max: 1, recovers_on: none}]}\n",
			want: "spell_slots[0].recovers_on",
		},
		{
			name: "missing id without generator",
			doc:  "version: 1\ncharacters:\n  - {name: A, max_hp: 1}\n",
			want: "characters[0].id",
		},
		{
			name: "bad duration",
			doc:  "version: 1\ncharacters:\n  - {id: a, name: A, max_hp: 1, statuses: [{id: x, name: Hexed, duration_type: years}]}\n",
			want: "statuses[0].duration_type",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := transfer.Import(strings.NewReader(tc.doc), nil)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.want)
		})
	}
}

func (s *TransferTestSuite) TestExportNil() {
	var buf bytes.Buffer
	s.True(errors.IsInvalidArgument(transfer.Export(&buf, nil, time.Time{})))
}

func (s *TransferTestSuite) TestFixtureRosterRoundTrip() {
	var buf bytes.Buffer
	s.Require().NoError(transfer.Export(&buf, testutils.CreateTestRoster(), time.Time{}))
	s.NotContains(buf.String(), "exported_at")

	got, err := transfer.Import(&buf, nil)
	s.Require().NoError(err)
	s.Equal(testutils.CreateTestRoster(), got)
}
