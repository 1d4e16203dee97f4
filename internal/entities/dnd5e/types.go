package dnd5e

// DeathSaves tracks death saving throw successes and failures
type DeathSaves struct {
	Success int `json:"success" yaml:"success"`
	Failure int `json:"failure" yaml:"failure"`
}

// Resource represents a limited-use ability pool (Rage, Bardic Inspiration, ...)
type Resource struct {
	ID         string       `json:"id" yaml:"id"`
	Name       string       `json:"name" yaml:"name"`
	Current    int          `json:"current" yaml:"current"`
	Max        int          `json:"max" yaml:"max"`
	RecoversOn RecoveryType `json:"recoversOn" yaml:"recovers_on"`
}

// SpellSlot represents one tier of castable spell slots
// Pact must always mirror RecoversOn == RecoveryShort; use SyncPact after
// changing RecoversOn.
type SpellSlot struct {
	ID         string       `json:"id" yaml:"id"`
	Level      int          `json:"level" yaml:"level"`
	Max        int          `json:"max" yaml:"max"`
	Used       int          `json:"used" yaml:"used"`
	RecoversOn RecoveryType `json:"recoversOn" yaml:"recovers_on"`
	Pact       bool         `json:"pact" yaml:"pact"`
}

// SyncPact re-derives the pact flag from the recovery type
func (s *SpellSlot) SyncPact() {
	s.Pact = s.RecoversOn == RecoveryShort
}

// Available returns the number of unused slots in the pool
func (s *SpellSlot) Available() int {
	return s.Max - s.Used
}

// Status represents an active condition on a character
type Status struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Remaining    int          `json:"remaining" yaml:"remaining"`
	DurationType DurationType `json:"durationType" yaml:"duration_type"`
}

// Concentration marks an ongoing concentration spell
type Concentration struct {
	Spell string `json:"spell,omitempty" yaml:"spell,omitempty"`
	// Since is a unix millisecond timestamp
	Since int64 `json:"since" yaml:"since"`
}

// Roster is the full tracker state persisted as a single snapshot
type Roster struct {
	Characters          []*Character `json:"characters" yaml:"characters"`
	SelectedCharacterID string       `json:"selectedCharacterId,omitempty" yaml:"selected_character_id,omitempty"`
}

// NewRoster returns an empty roster
func NewRoster() *Roster {
	return &Roster{Characters: []*Character{}}
}

// Find returns the character with the given ID, or nil
func (r *Roster) Find(id string) *Character {
	for _, c := range r.Characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Selected returns the selected character, or nil when nothing is selected
func (r *Roster) Selected() *Character {
	if r.SelectedCharacterID == "" {
		return nil
	}
	return r.Find(r.SelectedCharacterID)
}

// Clone returns a deep copy of the roster
func (r *Roster) Clone() *Roster {
	if r == nil {
		return nil
	}
	out := &Roster{
		Characters:          make([]*Character, len(r.Characters)),
		SelectedCharacterID: r.SelectedCharacterID,
	}
	for i, c := range r.Characters {
		out.Characters[i] = c.Clone()
	}
	return out
}
