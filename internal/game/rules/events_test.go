package rules

import (
	"testing"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	spellCastCount := 0
	lifeGainCount := 0

	handle := bus.SubscribeTyped(EventSpellCast, func(e Event) {
		spellCastCount++
	})
	bus.SubscribeTyped(EventGainedLife, func(e Event) {
		lifeGainCount += e.Amount
	})

	bus.Publish(NewEvent(EventSpellCast, "card1", "card1", "player1"))
	bus.Publish(NewEventWithAmount(EventGainedLife, "player1", "source1", "player1", 5))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count 1, got %d", spellCastCount)
	}
	if lifeGainCount != 5 {
		t.Fatalf("expected 5 life gained, got %d", lifeGainCount)
	}

	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventSpellCast, "card2", "card2", "player1"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1 after unsubscribe, got %d", spellCastCount)
	}
}

func TestEventBusOrderAndNesting(t *testing.T) {
	bus := NewEventBus()
	var seen []string

	bus.Subscribe(func(e Event) {
		seen = append(seen, "all:"+string(e.Type))
	})
	bus.SubscribeTyped(EventPermanentDies, func(e Event) {
		seen = append(seen, "dies")
		bus.Publish(NewEvent(EventZoneChange, e.TargetID, e.SourceID, e.Controller))
	})

	bus.Publish(NewEvent(EventPermanentDies, "bear", "", "p1"))

	want := []string{"all:PERMANENT_DIES", "dies", "all:ZONE_CHANGE"}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}

	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected nil listener to be rejected, got handle %d", h)
	}
}
