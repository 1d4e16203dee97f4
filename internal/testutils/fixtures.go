package testutils

import (
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/testutils/builders"
)

// Fixture IDs
const (
	WarlockID   = "char-warlock"
	BarbarianID = "char-barbarian"
)

// CreateTestWarlock returns a Wizard 3 / Warlock 3 mid-session: wounded,
// concentrating, with a spent pact slot and a condition
func CreateTestWarlock() *dnd5e.Character {
	return builders.NewCharacterBuilder().
		WithID(WarlockID).
		WithName("Ilsa Thorne").
		WithHP(11, 24).
		WithTempHP(3).
		WithSpellSlot("slot-pact", 2, 2, 1, dnd5e.RecoveryShort).
		WithSpellSlot("slot-1", 1, 4, 2, dnd5e.RecoveryLong).
		WithSpellSlot("slot-2", 2, 2, 0, dnd5e.RecoveryLong).
		WithResource("res-arcane", "Arcane Recovery", 0, 1, dnd5e.RecoveryLong).
		WithStatus("st-hexed", "Hex", 10, dnd5e.DurationMinutes).
		WithStatus("st-prone", dnd5e.ConditionProne, 0, dnd5e.DurationRest).
		WithConcentration("Hex", 1709323200000).
		Build()
}

// CreateTestBarbarian returns a martial character at full health
func CreateTestBarbarian() *dnd5e.Character {
	return builders.NewCharacterBuilder().
		WithID(BarbarianID).
		WithName("Borin Stonefist").
		WithHP(45, 45).
		WithResource("res-rage", "Rage", 1, 3, dnd5e.RecoveryLong).
		WithResource("res-second-wind", "Second Wind", 0, 1, dnd5e.RecoveryShort).
		Build()
}

// CreateTestRoster returns both fixture characters with the warlock selected
func CreateTestRoster() *dnd5e.Roster {
	return &dnd5e.Roster{
		Characters:          []*dnd5e.Character{CreateTestWarlock(), CreateTestBarbarian()},
		SelectedCharacterID: WarlockID,
	}
}
