package rules

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNoPriorityOrder is returned when a priority operation runs before any
// order has been set.
var ErrNoPriorityOrder = errors.New("priority order not set")

// SetPriorityOrder rotates players so that active comes first and hands it
// priority. The order is the pass sequence until it is set again.
func (sm *StackManager) SetPriorityOrder(players []string, active string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	idx := slices.Index(players, active)
	if idx < 0 {
		return fmt.Errorf("active player %s not in priority order", active)
	}
	order := make([]string, 0, len(players))
	order = append(order, players[idx:]...)
	order = append(order, players[:idx]...)
	sm.order = order
	sm.holder = 0
	sm.passes = 0
	return nil
}

// PriorityOrder returns the current rotation, starting with the active player.
func (sm *StackManager) PriorityOrder() []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return slices.Clone(sm.order)
}

// Holder returns the player holding priority, or "" before any order is set.
func (sm *StackManager) Holder() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.order) == 0 {
		return ""
	}
	return sm.order[sm.holder]
}

// ConsecutivePasses returns the length of the current pass run.
func (sm *StackManager) ConsecutivePasses() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.passes
}

// PassPriority hands priority to the next player in rotation and reports
// whether every participant has now passed in succession.
func (sm *StackManager) PassPriority() (bool, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.order) == 0 {
		return false, ErrNoPriorityOrder
	}
	sm.passes++
	sm.holder = (sm.holder + 1) % len(sm.order)
	return sm.passes >= len(sm.order), nil
}

// ResetPriorityAfterResolution returns priority to the active player and
// clears the pass run.
func (sm *StackManager) ResetPriorityAfterResolution(active string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	idx := slices.Index(sm.order, active)
	if idx < 0 {
		return fmt.Errorf("active player %s not in priority order", active)
	}
	sm.holder = idx
	sm.passes = 0
	return nil
}

// ResolutionContext tracks what is currently resolving so nested resolution
// can be bounded.
type ResolutionContext struct {
	mu        sync.Mutex
	resolving []string
	maxDepth  int
}

// NewResolutionContext creates a new resolution context.
func NewResolutionContext() *ResolutionContext {
	return &ResolutionContext{maxDepth: 10}
}

// BeginResolution marks the start of resolving a stack object.
func (rc *ResolutionContext) BeginResolution(id string) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.resolving) >= rc.maxDepth {
		return fmt.Errorf("maximum resolution depth (%d) exceeded", rc.maxDepth)
	}
	rc.resolving = append(rc.resolving, id)
	return nil
}

// EndResolution marks the end of resolving a stack object.
func (rc *ResolutionContext) EndResolution(id string) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.resolving) == 0 {
		return fmt.Errorf("no item currently resolving")
	}
	current := rc.resolving[len(rc.resolving)-1]
	if current != id {
		return fmt.Errorf("resolution mismatch: expected %s, got %s", current, id)
	}
	rc.resolving = rc.resolving[:len(rc.resolving)-1]
	return nil
}

// IsResolving returns true if something is currently resolving.
func (rc *ResolutionContext) IsResolving() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.resolving) > 0
}

// Depth returns the current nesting depth.
func (rc *ResolutionContext) Depth() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.resolving)
}
