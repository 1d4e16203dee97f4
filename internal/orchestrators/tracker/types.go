package tracker

import (
	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// Character-scoped inputs take a CharacterID. An empty ID means the
// currently selected character.

// CharacterOutput is returned by mutations that only report the new state
type CharacterOutput struct {
	Character *dnd5e.Character
}

// CreateCharacterInput defines the input for creating a character
type CreateCharacterInput struct {
	Name  string
	MaxHP int
}

// CreateCharacterOutput defines the output for creating a character
type CreateCharacterOutput struct {
	Character *dnd5e.Character
	// Selected is true when the new character became the selected one
	Selected bool
}

// ListCharactersInput defines the input for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the output for listing characters
type ListCharactersOutput struct {
	Characters          []*dnd5e.Character
	SelectedCharacterID string
}

// GetCharacterInput defines the input for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the output for getting a character
type GetCharacterOutput struct {
	Character *dnd5e.Character
	Selected  bool
}

// SelectCharacterInput defines the input for selecting a character.
// An empty CharacterID clears the selection.
type SelectCharacterInput struct {
	CharacterID string
}

// SelectCharacterOutput defines the output for selecting a character
type SelectCharacterOutput struct {
	// Character is nil when the selection was cleared
	Character *dnd5e.Character
}

// DeleteCharacterInput defines the input for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the output for deleting a character
type DeleteCharacterOutput struct {
	// SelectionCleared is true when the deleted character was selected
	SelectionCleared bool
}

// ApplyDamageInput defines the input for applying damage. When Notation is
// set the amount is rolled and Amount is ignored.
type ApplyDamageInput struct {
	CharacterID string
	Amount      int
	Notation    string
}

// ApplyDamageOutput defines the output for applying damage
type ApplyDamageOutput struct {
	Character *dnd5e.Character
	Result    engine.DamageResult
	Roll      *Roll
	// ConcentrationDC is the constitution save needed to keep concentrating,
	// or 0 when no save is due
	ConcentrationDC int
}

// HealInput defines the input for healing
type HealInput struct {
	CharacterID string
	Amount      int
	Notation    string
}

// HealOutput defines the output for healing
type HealOutput struct {
	Character *dnd5e.Character
	Healed    int
	Roll      *Roll
}

// SetTempHPInput defines the input for setting temporary hit points
type SetTempHPInput struct {
	CharacterID string
	Amount      int
}

// RestInput defines the input for short and long rests
type RestInput struct {
	CharacterID string
}

// BuildSpellSlotsInput defines the input for deriving spell slots from
// caster levels. Append merges the result into existing pools instead of
// replacing them.
type BuildSpellSlotsInput struct {
	CharacterID string
	Breakdown   engine.CasterBreakdown
	Append      bool
}

// BuildSpellSlotsOutput defines the output for deriving spell slots
type BuildSpellSlotsOutput struct {
	Character *dnd5e.Character
	// Breakdown is the breakdown actually used
	Breakdown engine.CasterBreakdown
	// Adjustment is set when the input had to be reduced to 20 levels
	Adjustment *engine.Adjustment
}

// AddSpellSlotInput defines the input for adding a spell slot pool by hand.
// RecoversOn defaults to long.
type AddSpellSlotInput struct {
	CharacterID string
	Level       int
	Max         int
	RecoversOn  dnd5e.RecoveryType
}

// AddSpellSlotOutput defines the output for adding a spell slot pool
type AddSpellSlotOutput struct {
	Character *dnd5e.Character
	// SlotID identifies the pool the slots ended up in
	SlotID string
}

// SetSlotUsedInput defines the input for marking slots used
type SetSlotUsedInput struct {
	CharacterID string
	SlotID      string
	Used        int
}

// RemoveSpellSlotInput defines the input for removing a spell slot pool
type RemoveSpellSlotInput struct {
	CharacterID string
	SlotID      string
}

// AddResourceInput defines the input for adding a resource. A nil Current
// starts the resource full. RecoversOn defaults to long.
type AddResourceInput struct {
	CharacterID string
	Name        string
	Max         int
	Current     *int
	RecoversOn  dnd5e.RecoveryType
}

// AddResourceOutput defines the output for adding a resource
type AddResourceOutput struct {
	Character  *dnd5e.Character
	ResourceID string
}

// AdjustResourceInput defines the input for spending or regaining uses
type AdjustResourceInput struct {
	CharacterID string
	ResourceID  string
	Delta       int
}

// RemoveResourceInput defines the input for removing a resource
type RemoveResourceInput struct {
	CharacterID string
	ResourceID  string
}

// AddStatusInput defines the input for adding a status. DurationType
// defaults to rounds.
type AddStatusInput struct {
	CharacterID  string
	Name         string
	Remaining    int
	DurationType dnd5e.DurationType
}

// AddStatusOutput defines the output for adding a status
type AddStatusOutput struct {
	Character *dnd5e.Character
	StatusID  string
}

// RemoveStatusInput defines the input for removing a status
type RemoveStatusInput struct {
	CharacterID string
	StatusID    string
}

// ToggleConditionInput defines the input for toggling a standard condition
type ToggleConditionInput struct {
	CharacterID string
	Name        string
}

// ToggleConditionOutput defines the output for toggling a condition
type ToggleConditionOutput struct {
	Character *dnd5e.Character
	// Active reports whether the condition is now applied
	Active bool
}

// StartConcentrationInput defines the input for starting concentration.
// Starting while already concentrating replaces the previous spell.
type StartConcentrationInput struct {
	CharacterID string
	Spell       string
}

// StopConcentrationInput defines the input for ending concentration.
// Confirmed must be true.
type StopConcentrationInput struct {
	CharacterID string
	Confirmed   bool
}

// RecordDeathSaveInput defines the input for recording a death save
type RecordDeathSaveInput struct {
	CharacterID string
	Success     bool
}

// RecordDeathSaveOutput defines the output for recording a death save
type RecordDeathSaveOutput struct {
	Character *dnd5e.Character
	Stable    bool
	Dead      bool
}

// ResetDeathSavesInput defines the input for clearing death saves
type ResetDeathSavesInput struct {
	CharacterID string
}

// SnapshotInput defines the input for copying the whole roster
type SnapshotInput struct{}

// SnapshotOutput defines the output for copying the whole roster
type SnapshotOutput struct {
	Roster *dnd5e.Roster
}

// ReplaceRosterInput defines the input for replacing the whole roster,
// for example from an import
type ReplaceRosterInput struct {
	Roster *dnd5e.Roster
}

// ReplaceRosterOutput defines the output for replacing the roster
type ReplaceRosterOutput struct {
	Characters int
}
