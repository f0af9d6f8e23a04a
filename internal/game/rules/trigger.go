package rules

import (
	"sync"

	"github.com/google/uuid"

	"github.com/magefree/commander-engine-go/internal/game/cards"
)

// QueuedTrigger is a triggered ability that has fired but is not yet on the
// stack. It is plain data so it can be inspected and copied freely.
type QueuedTrigger struct {
	ID             string
	Ability        cards.TriggeredAbility
	ControllerID   string
	SourceID       string
	SourceName     string
	IsActivePlayer bool
	Targets        []string
}

// TriggerQueue buffers fired triggers and remembers which stack object each
// one became.
type TriggerQueue struct {
	mu      sync.Mutex
	queued  []QueuedTrigger
	pending map[string]QueuedTrigger
}

// NewTriggerQueue creates an empty queue.
func NewTriggerQueue() *TriggerQueue {
	return &TriggerQueue{pending: make(map[string]QueuedTrigger)}
}

// Enqueue buffers a fired trigger.
func (tq *TriggerQueue) Enqueue(trigger QueuedTrigger) string {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if trigger.ID == "" {
		trigger.ID = uuid.NewString()
	}
	tq.queued = append(tq.queued, trigger)
	return trigger.ID
}

// Len returns the number of buffered triggers.
func (tq *TriggerQueue) Len() int {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return len(tq.queued)
}

// Queued returns a copy of the buffered triggers in firing order.
func (tq *TriggerQueue) Queued() []QueuedTrigger {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	out := make([]QueuedTrigger, len(tq.queued))
	copy(out, tq.queued)
	return out
}

// apnap orders triggers the active player's first, then everyone else's in
// the order they fired.
func apnap(queued []QueuedTrigger) []QueuedTrigger {
	out := make([]QueuedTrigger, 0, len(queued))
	for _, qt := range queued {
		if qt.IsActivePlayer {
			out = append(out, qt)
		}
	}
	for _, qt := range queued {
		if !qt.IsActivePlayer {
			out = append(out, qt)
		}
	}
	return out
}

// Flush hands every buffered trigger to place in APNAP order, records the
// returned stack object id against the trigger and empties the queue. The
// placed objects are returned in placement order.
func (tq *TriggerQueue) Flush(place func(QueuedTrigger) StackObject) []StackObject {
	tq.mu.Lock()
	ordered := apnap(tq.queued)
	tq.queued = nil
	tq.mu.Unlock()

	placed := make([]StackObject, 0, len(ordered))
	for _, qt := range ordered {
		obj := place(qt)
		tq.mu.Lock()
		tq.pending[obj.ID] = qt
		tq.mu.Unlock()
		placed = append(placed, obj)
	}
	return placed
}

// Take returns and forgets the trigger behind a stack object.
func (tq *TriggerQueue) Take(stackObjectID string) (QueuedTrigger, bool) {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	qt, ok := tq.pending[stackObjectID]
	if ok {
		delete(tq.pending, stackObjectID)
	}
	return qt, ok
}

// Pending returns the number of placed triggers that have not resolved.
func (tq *TriggerQueue) Pending() int {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return len(tq.pending)
}
