package rules

import (
	"sync"
)

// WatcherScope defines how long a watcher keeps its state.
type WatcherScope int

const (
	// WatcherScopeGame keeps state for the whole game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn is reset when a new turn begins.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes game events and keeps bookkeeping derived from them.
type Watcher interface {
	// Watch is called for every published event; watchers filter internally.
	Watch(event Event)
	// Reset clears the watcher's state.
	Reset()
	// ConditionMet reports whether the tracked condition happened.
	ConditionMet() bool
	Scope() WatcherScope
	Key() string
}

// BaseWatcher provides the bookkeeping shared by all watchers.
type BaseWatcher struct {
	scope     WatcherScope
	key       string
	condition bool
}

// NewBaseWatcher creates a new base watcher.
func NewBaseWatcher(key string, scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{key: key, scope: scope}
}

// Scope returns the watcher's scope.
func (bw *BaseWatcher) Scope() WatcherScope {
	return bw.scope
}

// Key returns the watcher's registry key.
func (bw *BaseWatcher) Key() string {
	return bw.key
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// WatcherRegistry holds the watchers of one game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers []Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{}
}

// Add registers a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) Add(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	for i, w := range wr.watchers {
		if w.Key() == watcher.Key() {
			wr.watchers[i] = watcher
			return
		}
	}
	wr.watchers = append(wr.watchers, watcher)
}

// Remove unregisters the watcher with the given key.
func (wr *WatcherRegistry) Remove(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	for i, w := range wr.watchers {
		if w.Key() == key {
			wr.watchers = append(wr.watchers[:i], wr.watchers[i+1:]...)
			return
		}
	}
}

// Get returns the watcher with the given key, or nil.
func (wr *WatcherRegistry) Get(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, w := range wr.watchers {
		if w.Key() == key {
			return w
		}
	}
	return nil
}

// Notify forwards an event to every watcher.
func (wr *WatcherRegistry) Notify(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, w := range wr.watchers {
		w.Watch(event)
	}
}

// ResetScope resets every watcher of the given scope.
func (wr *WatcherRegistry) ResetScope(scope WatcherScope) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, w := range wr.watchers {
		if w.Scope() == scope {
			w.Reset()
		}
	}
}

// Attach subscribes the registry to a bus.
func (wr *WatcherRegistry) Attach(bus *EventBus) int {
	return bus.Subscribe(wr.Notify)
}
