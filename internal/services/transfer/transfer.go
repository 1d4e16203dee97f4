// Package transfer reads and writes rosters as YAML documents so a table's
// state can be backed up, edited by hand and moved between stores.
package transfer

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
)

// FormatVersion is written to every export and checked on import
const FormatVersion = 1

type document struct {
	Version             int                `yaml:"version"`
	ExportedAt          time.Time          `yaml:"exported_at,omitempty"`
	SelectedCharacterID string             `yaml:"selected_character_id,omitempty"`
	Characters          []*dnd5e.Character `yaml:"characters"`
}

// Export writes the roster as YAML. exportedAt may be zero.
func Export(w io.Writer, r *dnd5e.Roster, exportedAt time.Time) error {
	if r == nil {
		return errors.InvalidArgument("roster is required")
	}

	doc := document{
		Version:             FormatVersion,
		ExportedAt:          exportedAt.UTC(),
		SelectedCharacterID: r.SelectedCharacterID,
		Characters:          r.Characters,
	}
	if doc.Characters == nil {
		doc.Characters = []*dnd5e.Character{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode roster")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to flush roster")
	}
	return nil
}

// Import reads a roster written by Export or by hand. Unknown fields and
// invalid enum values are rejected. Entities without an ID get one from
// ids; when ids is nil a missing ID is an error. The result is normalised:
// hit points and counters are clamped, pact flags re-derived and spell
// slots sorted.
func Import(r io.Reader, ids idgen.Generator) (*dnd5e.Roster, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.InvalidArgument("document is empty")
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode roster")
	}

	if doc.Version != FormatVersion {
		return nil, errors.InvalidArgumentf("unsupported format version %d, expected %d", doc.Version, FormatVersion)
	}

	vb := errors.NewValidationBuilder()
	characterIDs := make(map[string]bool, len(doc.Characters))
	characters := make([]*dnd5e.Character, 0, len(doc.Characters))

	for i, c := range doc.Characters {
		path := fmt.Sprintf("characters[%d]", i)
		if c == nil {
			vb.Field(path, "is empty")
			continue
		}
		assignID(&c.ID, ids, path+".id", vb)
		if c.ID != "" && characterIDs[c.ID] {
			vb.Fieldf(path+".id", "duplicate character ID %s", c.ID)
		}
		characterIDs[c.ID] = true

		validateCharacter(c, path, ids, vb)
		characters = append(characters, c)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	out := &dnd5e.Roster{
		Characters:          characters,
		SelectedCharacterID: doc.SelectedCharacterID,
	}
	for _, c := range out.Characters {
		c.Normalize()
		engine.SortSpellSlots(c.SpellSlots)
	}
	if out.SelectedCharacterID != "" && out.Find(out.SelectedCharacterID) == nil {
		out.SelectedCharacterID = ""
	}
	return out, nil
}

func assignID(id *string, ids idgen.Generator, field string, vb *errors.ValidationBuilder) {
	if *id != "" {
		return
	}
	if ids == nil {
		vb.RequiredField(field)
		return
	}
	*id = ids.Generate()
}

func validateCharacter(c *dnd5e.Character, path string, ids idgen.Generator, vb *errors.ValidationBuilder) {
	errors.ValidateRequired(path+".name", c.Name, vb)
	errors.ValidateMin(path+".max_hp", c.MaxHP, 0, vb)

	seen := make(map[string]bool)
	unique := func(id, field string) {
		if id == "" {
			return
		}
		if seen[id] {
			vb.Fieldf(field, "duplicate ID %s", id)
		}
		seen[id] = true
	}

	for i, r := range c.Resources {
		field := fmt.Sprintf("%s.resources[%d]", path, i)
		if r == nil {
			vb.Field(field, "is empty")
			continue
		}
		assignID(&r.ID, ids, field+".id", vb)
		unique(r.ID, field+".id")
		errors.ValidateRequired(field+".name", r.Name, vb)
		if r.RecoversOn == "" {
			r.RecoversOn = dnd5e.RecoveryLong
		}
		if !r.RecoversOn.IsValid() {
			vb.Fieldf(field+".recovers_on", "unknown recovery type %q", r.RecoversOn)
		}
	}

	for i, s := range c.SpellSlots {
		field := fmt.Sprintf("%s.spell_slots[%d]", path, i)
		if s == nil {
			vb.Field(field, "is empty")
			continue
		}
		assignID(&s.ID, ids, field+".id", vb)
		unique(s.ID, field+".id")
		errors.ValidateRange(field+".level", s.Level, dnd5e.MinSpellLevel, dnd5e.MaxSpellLevel, vb)
		if s.RecoversOn == "" {
			s.RecoversOn = dnd5e.RecoveryLong
		}
		if s.RecoversOn != dnd5e.RecoveryShort && s.RecoversOn != dnd5e.RecoveryLong {
			vb.Fieldf(field+".recovers_on", "spell slots recover on short or long, got %q", s.RecoversOn)
		}
	}

	for i, st := range c.Statuses {
		field := fmt.Sprintf("%s.statuses[%d]", path, i)
		if st == nil {
			vb.Field(field, "is empty")
			continue
		}
		assignID(&st.ID, ids, field+".id", vb)
		unique(st.ID, field+".id")
		errors.ValidateRequired(field+".name", st.Name, vb)
		if st.DurationType == "" {
			st.DurationType = dnd5e.DurationRounds
		}
		if !st.DurationType.IsValid() {
			vb.Fieldf(field+".duration_type", "unknown duration type %q", st.DurationType)
		}
	}
}
