package roster

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

const (
	errRosterNil = "roster cannot be nil"
	errKeyEmpty  = "key cannot be empty"
)

// encode serialises the roster in the snapshot format shared by every store
func encode(r *dnd5e.Roster) ([]byte, error) {
	if r == nil {
		return nil, errors.InvalidArgument(errRosterNil)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal roster")
	}
	return data, nil
}

func decode(data []byte) (*dnd5e.Roster, error) {
	var r dnd5e.Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal roster")
	}
	if r.Characters == nil {
		r.Characters = []*dnd5e.Character{}
	}
	if err := checkEntries(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// checkEntries rejects snapshots holding null list entries. They decode
// cleanly but cannot be rendered or mutated.
func checkEntries(r *dnd5e.Roster) error {
	for i, c := range r.Characters {
		if c == nil {
			return errors.DataLossf("characters[%d] is null", i)
		}
		for j, res := range c.Resources {
			if res == nil {
				return errors.DataLossf("characters[%d].resources[%d] is null", i, j)
			}
		}
		for j, slot := range c.SpellSlots {
			if slot == nil {
				return errors.DataLossf("characters[%d].spellSlots[%d] is null", i, j)
			}
		}
		for j, st := range c.Statuses {
			if st == nil {
				return errors.DataLossf("characters[%d].statuses[%d] is null", i, j)
			}
		}
	}
	return nil
}
