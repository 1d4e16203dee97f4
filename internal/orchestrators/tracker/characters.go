package tracker

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

const maxNameLength = 64

func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := strings.TrimSpace(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxLength("name", name, maxNameLength, vb)
	errors.ValidateMin("max_hp", input.MaxHP, 1, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char := &dnd5e.Character{
		ID:         o.ids.Generate(),
		Name:       name,
		MaxHP:      input.MaxHP,
		CurrentHP:  input.MaxHP,
		Resources:  []*dnd5e.Resource{},
		SpellSlots: []*dnd5e.SpellSlot{},
		Statuses:   []*dnd5e.Status{},
	}

	var selected bool
	err := o.commit(ctx, func(r *dnd5e.Roster) (Event, error) {
		if r.Find(char.ID) != nil {
			return Event{}, errors.AlreadyExistsf("character %s already exists", char.ID)
		}
		r.Characters = append(r.Characters, char)
		if r.SelectedCharacterID == "" {
			r.SelectedCharacterID = char.ID
			selected = true
		}
		return Event{Type: EventCharacterCreated, CharacterID: char.ID}, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("character created", zap.String("character_id", char.ID), zap.String("name", char.Name))
	return &CreateCharacterOutput{Character: char.Clone(), Selected: selected}, nil
}

func (o *orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	var out ListCharactersOutput
	err := o.read(ctx, func(r *dnd5e.Roster) error {
		out.Characters = make([]*dnd5e.Character, len(r.Characters))
		for i, c := range r.Characters {
			out.Characters[i] = c.Clone()
		}
		out.SelectedCharacterID = r.SelectedCharacterID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		input = &GetCharacterInput{}
	}

	var out GetCharacterOutput
	err := o.read(ctx, func(r *dnd5e.Roster) error {
		c, err := resolve(r, input.CharacterID)
		if err != nil {
			return err
		}
		out.Character = c.Clone()
		out.Selected = c.ID == r.SelectedCharacterID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) SelectCharacter(ctx context.Context, input *SelectCharacterInput) (*SelectCharacterOutput, error) {
	if input == nil {
		input = &SelectCharacterInput{}
	}

	var out SelectCharacterOutput
	err := o.commit(ctx, func(r *dnd5e.Roster) (Event, error) {
		if input.CharacterID == "" {
			if r.SelectedCharacterID == "" {
				return Event{}, nil
			}
			r.SelectedCharacterID = ""
			return Event{Type: EventCharacterSelected}, nil
		}

		c := r.Find(input.CharacterID)
		if c == nil {
			return Event{}, errors.NotFoundf("character %s not found", input.CharacterID)
		}
		out.Character = c.Clone()
		if r.SelectedCharacterID == c.ID {
			return Event{}, nil
		}
		r.SelectedCharacterID = c.ID
		return Event{Type: EventCharacterSelected, CharacterID: c.ID}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		input = &DeleteCharacterInput{}
	}

	var out DeleteCharacterOutput
	err := o.commit(ctx, func(r *dnd5e.Roster) (Event, error) {
		c, err := resolve(r, input.CharacterID)
		if err != nil {
			return Event{}, err
		}

		kept := r.Characters[:0]
		for _, other := range r.Characters {
			if other.ID != c.ID {
				kept = append(kept, other)
			}
		}
		r.Characters = kept

		if r.SelectedCharacterID == c.ID {
			r.SelectedCharacterID = ""
			out.SelectionCleared = true
		}
		return Event{Type: EventCharacterDeleted, CharacterID: c.ID}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
