package rules

import (
	"testing"
)

type castCounter struct {
	*BaseWatcher
	casts int
}

func (w *castCounter) Watch(event Event) {
	if event.Type != EventSpellCast {
		return
	}
	w.casts++
	w.SetCondition(true)
}

func (w *castCounter) Reset() {
	w.BaseWatcher.Reset()
	w.casts = 0
}

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()
	perTurn := &castCounter{BaseWatcher: NewBaseWatcher("casts-this-turn", WatcherScopeTurn)}
	perGame := &castCounter{BaseWatcher: NewBaseWatcher("casts-this-game", WatcherScopeGame)}
	registry.Add(perTurn)
	registry.Add(perGame)

	if registry.Get("casts-this-turn") == nil {
		t.Fatal("should retrieve casts-this-turn")
	}

	bus := NewEventBus()
	registry.Attach(bus)
	bus.Publish(NewEvent(EventSpellCast, "spell1", "spell1", "player1"))
	bus.Publish(NewEvent(EventDrewCard, "card1", "", "player1"))

	if perTurn.casts != 1 || perGame.casts != 1 {
		t.Fatalf("expected one cast seen by each watcher, got %d and %d", perTurn.casts, perGame.casts)
	}
	if !perTurn.ConditionMet() {
		t.Fatal("watcher should have condition met")
	}

	registry.ResetScope(WatcherScopeTurn)
	if perTurn.casts != 0 || perTurn.ConditionMet() {
		t.Fatal("turn watcher should be reset")
	}
	if perGame.casts != 1 {
		t.Fatal("game watcher must survive a turn reset")
	}

	registry.Remove("casts-this-game")
	if registry.Get("casts-this-game") != nil {
		t.Fatal("watcher should be removed")
	}
	if WatcherScopeTurn.String() != "TURN" {
		t.Fatalf("unexpected scope name %s", WatcherScopeTurn)
	}
}
