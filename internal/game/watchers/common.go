// Package watchers holds the per-turn bookkeeping the engine exposes through
// its snapshot: spells cast, creatures died, cards drawn and damage dealt.
package watchers

import (
	"sync"

	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// Registry keys.
const (
	SpellsCastKey    = "SpellsCastWatcher"
	CreaturesDiedKey = "CreaturesDiedWatcher"
	CardsDrawnKey    = "CardsDrawnWatcher"
	PlayerDamageKey  = "PlayerDamageWatcher"
	LandsPlayedKey   = "LandsPlayedWatcher"
)

// perPlayer is a turn-scoped counter keyed by player id.
type perPlayer struct {
	*rules.BaseWatcher
	mu     sync.RWMutex
	counts map[string]int
}

func newPerPlayer(key string) *perPlayer {
	return &perPlayer{
		BaseWatcher: rules.NewBaseWatcher(key, rules.WatcherScopeTurn),
		counts:      make(map[string]int),
	}
}

func (w *perPlayer) add(playerID string, n int) {
	if playerID == "" || n <= 0 {
		return
	}
	w.mu.Lock()
	w.counts[playerID] += n
	w.mu.Unlock()
	w.SetCondition(true)
}

// Count returns the tally for a player.
func (w *perPlayer) Count(playerID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.counts[playerID]
}

// Total returns the tally across all players.
func (w *perPlayer) Total() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	total := 0
	for _, n := range w.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the per-player tallies.
func (w *perPlayer) Counts() map[string]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

// Reset clears the watcher's state.
func (w *perPlayer) Reset() {
	w.BaseWatcher.Reset()
	w.mu.Lock()
	w.counts = make(map[string]int)
	w.mu.Unlock()
}

// SpellsCastWatcher tracks spells cast this turn by controller.
type SpellsCastWatcher struct {
	*perPlayer
}

// NewSpellsCastWatcher creates a new spells cast watcher.
func NewSpellsCastWatcher() *SpellsCastWatcher {
	return &SpellsCastWatcher{perPlayer: newPerPlayer(SpellsCastKey)}
}

// Watch implements the Watcher interface.
func (w *SpellsCastWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventSpellCast {
		return
	}
	w.add(event.Controller, 1)
}

// CreaturesDiedWatcher tracks creatures that died this turn, keyed by the
// controller they died under.
type CreaturesDiedWatcher struct {
	*perPlayer
}

// NewCreaturesDiedWatcher creates a new creatures died watcher.
func NewCreaturesDiedWatcher() *CreaturesDiedWatcher {
	return &CreaturesDiedWatcher{perPlayer: newPerPlayer(CreaturesDiedKey)}
}

// Watch implements the Watcher interface.
func (w *CreaturesDiedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPermanentDies || !event.Flag {
		return
	}
	w.add(event.Controller, 1)
}

// CardsDrawnWatcher tracks cards drawn this turn.
type CardsDrawnWatcher struct {
	*perPlayer
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{perPlayer: newPerPlayer(CardsDrawnKey)}
}

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDrewCard {
		return
	}
	playerID := event.PlayerID
	if playerID == "" {
		playerID = event.Controller
	}
	w.add(playerID, 1)
}

// PlayerDamageWatcher tracks damage dealt to each player this turn.
type PlayerDamageWatcher struct {
	*perPlayer
}

// NewPlayerDamageWatcher creates a new player damage watcher.
func NewPlayerDamageWatcher() *PlayerDamageWatcher {
	return &PlayerDamageWatcher{perPlayer: newPerPlayer(PlayerDamageKey)}
}

// Watch implements the Watcher interface.
func (w *PlayerDamageWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDamagedPlayer {
		return
	}
	w.add(event.TargetID, event.Amount)
}

// LandsPlayedWatcher tracks land drops this turn.
type LandsPlayedWatcher struct {
	*perPlayer
}

// NewLandsPlayedWatcher creates a new lands played watcher.
func NewLandsPlayedWatcher() *LandsPlayedWatcher {
	return &LandsPlayedWatcher{perPlayer: newPerPlayer(LandsPlayedKey)}
}

// Watch implements the Watcher interface.
func (w *LandsPlayedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventLandPlayed {
		return
	}
	w.add(event.Controller, 1)
}

// Standard returns the watchers every game registers.
func Standard() []rules.Watcher {
	return []rules.Watcher{
		NewSpellsCastWatcher(),
		NewCreaturesDiedWatcher(),
		NewCardsDrawnWatcher(),
		NewPlayerDamageWatcher(),
		NewLandsPlayedWatcher(),
	}
}
