package tracker

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// EventType names the kind of change a mutation made
type EventType string

// Event types
const (
	EventRosterLoaded        EventType = "roster.loaded"
	EventRosterReplaced      EventType = "roster.replaced"
	EventCharacterCreated    EventType = "character.created"
	EventCharacterDeleted    EventType = "character.deleted"
	EventCharacterSelected   EventType = "character.selected"
	EventHitPointsChanged    EventType = "character.hit_points"
	EventRested              EventType = "character.rested"
	EventSpellSlotsChanged   EventType = "character.spell_slots"
	EventResourcesChanged    EventType = "character.resources"
	EventStatusesChanged     EventType = "character.statuses"
	EventConcentrationChange EventType = "character.concentration"
	EventDeathSavesChanged   EventType = "character.death_saves"
)

// CharacterEventTypes are the events published with the changed character
// as their target
var CharacterEventTypes = []EventType{
	EventCharacterCreated,
	EventCharacterDeleted,
	EventCharacterSelected,
	EventHitPointsChanged,
	EventRested,
	EventSpellSlotsChanged,
	EventResourcesChanged,
	EventStatusesChanged,
	EventConcentrationChange,
	EventDeathSavesChanged,
}

// EventTypes lists every event the tracker publishes
var EventTypes = append([]EventType{EventRosterLoaded, EventRosterReplaced}, CharacterEventTypes...)

// ContextKeyCharacterID holds the affected character ID in the event
// context. It is set even when the character no longer exists.
const ContextKeyCharacterID = "character_id"

// Event is the tracker's view of a published bus event.
// CharacterID is empty for roster-wide events.
type Event struct {
	Type        EventType
	CharacterID string
}

// Listener receives state-change notifications. Listeners are called
// synchronously after the tracker lock is released, so they may call back
// into the service.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(e Event)

// OnEvent calls f(e)
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// newGameEvent builds the bus event. target is a copy of the character after
// the change, nil for roster-wide events and deletions.
func newGameEvent(e Event, target *dnd5e.Character) *events.GameEvent {
	var entity core.Entity
	if target != nil {
		entity = target
	}
	ge := events.NewGameEvent(string(e.Type), nil, entity)
	ge.Context().Set(ContextKeyCharacterID, e.CharacterID)
	return ge
}

// EventFrom converts a bus event published by the tracker
func EventFrom(ev events.Event) Event {
	out := Event{Type: EventType(ev.Type())}
	if id, ok := ev.Context().Get(ContextKeyCharacterID); ok {
		out.CharacterID, _ = id.(string)
	}
	return out
}

// TargetCharacter returns the character carried by a tracker event, or nil
func TargetCharacter(ev events.Event) *dnd5e.Character {
	c, _ := ev.Target().(*dnd5e.Character)
	return c
}

func listenerHandler(l Listener) events.HandlerFunc {
	return func(_ context.Context, ev events.Event) error {
		l.OnEvent(EventFrom(ev))
		return nil
	}
}
