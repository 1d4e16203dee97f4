// Package tracker owns the roster and routes every change to it through the
// rules engine and the roster repository, publishing each change on an
// rpg-toolkit event bus.
package tracker

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
)

// Service defines the tracker operations
type Service interface {
	// Open (re)loads the roster from the repository. Other methods load
	// lazily, so calling Open is only needed to pick up outside changes.
	Open(ctx context.Context) error
	// Subscribe registers a listener for every tracker event and returns a
	// function removing it
	Subscribe(l Listener) func()

	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	SelectCharacter(ctx context.Context, input *SelectCharacterInput) (*SelectCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)
	Heal(ctx context.Context, input *HealInput) (*HealOutput, error)
	SetTempHP(ctx context.Context, input *SetTempHPInput) (*CharacterOutput, error)

	ShortRest(ctx context.Context, input *RestInput) (*CharacterOutput, error)
	LongRest(ctx context.Context, input *RestInput) (*CharacterOutput, error)

	BuildSpellSlots(ctx context.Context, input *BuildSpellSlotsInput) (*BuildSpellSlotsOutput, error)
	AddSpellSlot(ctx context.Context, input *AddSpellSlotInput) (*AddSpellSlotOutput, error)
	SetSlotUsed(ctx context.Context, input *SetSlotUsedInput) (*CharacterOutput, error)
	RemoveSpellSlot(ctx context.Context, input *RemoveSpellSlotInput) (*CharacterOutput, error)

	AddResource(ctx context.Context, input *AddResourceInput) (*AddResourceOutput, error)
	AdjustResource(ctx context.Context, input *AdjustResourceInput) (*CharacterOutput, error)
	RemoveResource(ctx context.Context, input *RemoveResourceInput) (*CharacterOutput, error)

	AddStatus(ctx context.Context, input *AddStatusInput) (*AddStatusOutput, error)
	RemoveStatus(ctx context.Context, input *RemoveStatusInput) (*CharacterOutput, error)
	ToggleCondition(ctx context.Context, input *ToggleConditionInput) (*ToggleConditionOutput, error)

	StartConcentration(ctx context.Context, input *StartConcentrationInput) (*CharacterOutput, error)
	StopConcentration(ctx context.Context, input *StopConcentrationInput) (*CharacterOutput, error)

	RecordDeathSave(ctx context.Context, input *RecordDeathSaveInput) (*RecordDeathSaveOutput, error)
	ResetDeathSaves(ctx context.Context, input *ResetDeathSavesInput) (*CharacterOutput, error)

	Snapshot(ctx context.Context, input *SnapshotInput) (*SnapshotOutput, error)
	ReplaceRoster(ctx context.Context, input *ReplaceRosterInput) (*ReplaceRosterOutput, error)
}

// Config holds the dependencies for the tracker
type Config struct {
	Repository  roster.Repository
	IDGenerator idgen.Generator
	// Optional, defaults to the system clock
	Clock clock.Clock
	// Optional, defaults to rpg-toolkit dice
	Roller Roller
	// Optional, defaults to a no-op logger
	Logger *zap.Logger
	// Optional, defaults to a private bus. Share one to subscribe to
	// tracker events with SubscribeFunc.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	repo   roster.Repository
	ids    idgen.Generator
	clock  clock.Clock
	roller Roller
	logger *zap.Logger
	bus    events.EventBus

	mu     sync.Mutex
	roster *dnd5e.Roster
}

// NewOrchestrator creates a tracker with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:   cfg.Repository,
		ids:    cfg.IDGenerator,
		clock:  cfg.Clock,
		roller: cfg.Roller,
		logger: cfg.Logger,
		bus:    cfg.EventBus,
	}
	if o.bus == nil {
		o.bus = events.NewBus()
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.roller == nil {
		o.roller = NewRoller()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o, nil
}

func (o *orchestrator) Open(ctx context.Context) error {
	o.mu.Lock()
	o.roster = nil
	err := o.loadLocked(ctx)
	o.mu.Unlock()
	if err != nil {
		return err
	}

	o.publish(ctx, Event{Type: EventRosterLoaded}, nil)
	return nil
}

func (o *orchestrator) Subscribe(l Listener) func() {
	ids := make([]string, 0, len(EventTypes))
	for _, t := range EventTypes {
		ids = append(ids, o.bus.SubscribeFunc(string(t), 0, listenerHandler(l)))
	}

	return func() {
		for _, id := range ids {
			if err := o.bus.Unsubscribe(id); err != nil {
				o.logger.Debug("listener already removed", zap.String("subscription", id))
			}
		}
	}
}

// publish sends the event to the bus. Handler failures are logged, the
// change itself is already persisted.
func (o *orchestrator) publish(ctx context.Context, e Event, target *dnd5e.Character) {
	if err := o.bus.Publish(ctx, newGameEvent(e, target)); err != nil {
		o.logger.Warn("event handler failed",
			zap.String("event", string(e.Type)),
			zap.String("character_id", e.CharacterID),
			zap.Error(err))
	}
}

// loadLocked loads the roster if it is not in memory yet. Caller holds mu.
func (o *orchestrator) loadLocked(ctx context.Context) error {
	if o.roster != nil {
		return nil
	}

	out, err := o.repo.Load(ctx, roster.LoadInput{})
	switch {
	case errors.IsNotFound(err):
		o.logger.Debug("no stored roster, starting empty")
		o.roster = dnd5e.NewRoster()
		return nil
	case err != nil:
		o.logger.Error("failed to load roster", zap.Error(err))
		return errors.Wrap(err, "failed to load roster")
	}

	o.roster = normalizeRoster(out.Roster)
	o.logger.Debug("roster loaded", zap.Int("characters", len(o.roster.Characters)))
	return nil
}

// normalizeRoster enforces every character invariant and drops a selection
// pointing at a character that no longer exists
func normalizeRoster(r *dnd5e.Roster) *dnd5e.Roster {
	if r == nil {
		return dnd5e.NewRoster()
	}
	characters := make([]*dnd5e.Character, 0, len(r.Characters))
	for _, c := range r.Characters {
		if c == nil {
			continue
		}
		characters = append(characters, c)
	}
	r.Characters = characters
	for _, c := range r.Characters {
		c.Normalize()
		engine.SortSpellSlots(c.SpellSlots)
	}
	if r.SelectedCharacterID != "" && r.Find(r.SelectedCharacterID) == nil {
		r.SelectedCharacterID = ""
	}
	return r
}

// read runs fn against the current roster under the lock
func (o *orchestrator) read(ctx context.Context, fn func(r *dnd5e.Roster) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.loadLocked(ctx); err != nil {
		return err
	}
	return fn(o.roster)
}

// commit applies fn to a copy of the roster, persists the copy and only
// then makes it current. The event is published after the lock is released.
func (o *orchestrator) commit(ctx context.Context, fn func(r *dnd5e.Roster) (Event, error)) error {
	event, target, changed, err := o.commitLocked(ctx, fn)
	if err != nil {
		return err
	}
	if changed {
		o.publish(ctx, event, target)
	}
	return nil
}

// commitLocked returns the event to publish and a copy of the character it
// concerns, if that character still exists
func (o *orchestrator) commitLocked(ctx context.Context, fn func(r *dnd5e.Roster) (Event, error)) (Event, *dnd5e.Character, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.loadLocked(ctx); err != nil {
		return Event{}, nil, false, err
	}

	next := o.roster.Clone()
	event, err := fn(next)
	if err != nil {
		return Event{}, nil, false, err
	}
	if event.Type == "" {
		return Event{}, nil, false, nil
	}

	if _, err := o.repo.Save(ctx, roster.SaveInput{Roster: next}); err != nil {
		o.logger.Error("failed to persist roster",
			zap.String("event", string(event.Type)),
			zap.String("character_id", event.CharacterID),
			zap.Error(err))
		return Event{}, nil, false, errors.Wrap(err, "failed to persist roster")
	}

	o.roster = next
	var target *dnd5e.Character
	if event.CharacterID != "" {
		target = next.Find(event.CharacterID).Clone()
	}
	return event, target, true, nil
}

// mutate resolves the character, applies fn and re-establishes the
// character invariants before the roster is persisted. fn returning an
// empty event type means nothing changed and nothing is saved.
func (o *orchestrator) mutate(ctx context.Context, characterID string, fn func(c *dnd5e.Character) (EventType, error)) (*dnd5e.Character, error) {
	var result *dnd5e.Character
	err := o.commit(ctx, func(r *dnd5e.Roster) (Event, error) {
		c, err := resolve(r, characterID)
		if err != nil {
			return Event{}, err
		}

		eventType, err := fn(c)
		if err != nil {
			return Event{}, err
		}
		c.Normalize()
		engine.SortSpellSlots(c.SpellSlots)

		result = c.Clone()
		return Event{Type: eventType, CharacterID: c.ID}, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func resolve(r *dnd5e.Roster, characterID string) (*dnd5e.Character, error) {
	if characterID == "" {
		characterID = r.SelectedCharacterID
	}
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required when no character is selected")
	}

	c := r.Find(characterID)
	if c == nil {
		return nil, errors.NotFoundf("character %s not found", characterID)
	}
	return c, nil
}
