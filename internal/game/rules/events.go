package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn structure
	EventBeginTurn   EventType = "BEGIN_TURN"
	EventStepChanged EventType = "STEP_CHANGED"
	EventEndTurn     EventType = "END_TURN"

	// Zone movement
	EventZoneChange     EventType = "ZONE_CHANGE"
	EventDrewCard       EventType = "DREW_CARD"
	EventDiscardedCard  EventType = "DISCARDED_CARD"
	EventLandPlayed     EventType = "LAND_PLAYED"
	EventPermanentDies  EventType = "PERMANENT_DIES"
	EventCommanderMoved EventType = "COMMANDER_MOVED"

	// Stack
	EventSpellCast      EventType = "SPELL_CAST"
	EventSpellCountered EventType = "SPELL_COUNTERED"
	EventTriggered      EventType = "TRIGGERED"
	EventResolved       EventType = "RESOLVED"

	// Life and damage
	EventDamagedPlayer    EventType = "DAMAGED_PLAYER"
	EventDamagedPermanent EventType = "DAMAGED_PERMANENT"
	EventGainedLife       EventType = "GAINED_LIFE"
	EventLostLife         EventType = "LOST_LIFE"
	EventCounterAdded     EventType = "COUNTER_ADDED"

	// Combat
	EventAttackerDeclared EventType = "ATTACKER_DECLARED"
	EventBlockerDeclared  EventType = "BLOCKER_DECLARED"

	// Permanents
	EventTapped   EventType = "TAPPED"
	EventUntapped EventType = "UNTAPPED"

	// Game end
	EventPlayerLost EventType = "PLAYER_LOST"
	EventGameOver   EventType = "GAME_OVER"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	TargetID    string            // ID of the target (card, player, etc.)
	SourceID    string            // ID of the source ability/object
	Controller  string            // Player ID of the controller
	PlayerID    string            // Player ID (often same as Controller, but can differ)
	Amount      int               // Numeric value (damage, life, counters, etc.)
	Flag        bool              // Boolean flag (combat damage, etc.)
	Data        string            // Additional string data
	Targets     []string          // Multiple targets (for multi-target events)
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

type subscription struct {
	handle    int
	eventType EventType // empty for all events
	callback  Listener
}

// EventBus is a synchronous publish/subscribe bus. Listeners run in
// subscription order.
type EventBus struct {
	mu         sync.RWMutex
	subs       []subscription
	nextHandle int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	return bus.SubscribeTyped("", listener)
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.subs = append(bus.subs, subscription{handle: handle, eventType: eventType, callback: listener})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subs {
		if sub.handle == handle {
			bus.subs = append(bus.subs[:i], bus.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to matching listeners. Listeners may publish
// further events.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := make([]subscription, len(bus.subs))
	copy(subs, bus.subs)
	bus.mu.RUnlock()

	for _, sub := range subs {
		if sub.eventType == "" || sub.eventType == event.Type {
			sub.callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, controllerID string) Event {
	return Event{
		Type:       eventType,
		TargetID:   targetID,
		SourceID:   sourceID,
		Controller: controllerID,
		PlayerID:   controllerID,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, controllerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Amount = amount
	return evt
}
