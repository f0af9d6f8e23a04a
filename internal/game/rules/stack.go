package rules

import (
	"errors"
	"sync"
)

// ErrStackEmpty is returned when popping or resolving an empty stack.
var ErrStackEmpty = errors.New("stack empty")

// StackObjectKind distinguishes spells from abilities on the stack.
type StackObjectKind string

const (
	StackObjectSpell   StackObjectKind = "SPELL"
	StackObjectAbility StackObjectKind = "ABILITY"
)

// StackObject is a spell or ability waiting to resolve. For a spell SourceID
// is the instance being cast; for an ability it is the source permanent.
type StackObject struct {
	ID          string
	Kind        StackObjectKind
	Controller  string
	SourceID    string
	Name        string
	Effect      string
	Targets     []string
	Counterable bool
	Creature    bool
}

// IsSpell reports whether the object is a spell.
func (o StackObject) IsSpell() bool {
	return o.Kind == StackObjectSpell
}

// StackManager maintains the LIFO stack and the priority rotation around it.
type StackManager struct {
	mu    sync.Mutex
	items []StackObject

	order  []string
	holder int
	passes int
}

// NewStackManager creates an empty stack.
func NewStackManager() *StackManager {
	return &StackManager{}
}

// Push adds an object to the top of the stack. A push re-opens the response
// window, so the consecutive pass run starts over.
func (sm *StackManager) Push(obj StackObject) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.items = append(sm.items, obj)
	sm.passes = 0
}

// Pop removes and returns the top object.
func (sm *StackManager) Pop() (StackObject, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.items) == 0 {
		return StackObject{}, ErrStackEmpty
	}
	idx := len(sm.items) - 1
	obj := sm.items[idx]
	sm.items = sm.items[:idx]
	return obj, nil
}

// Remove removes an object anywhere in the stack by id.
func (sm *StackManager) Remove(id string) (StackObject, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for i, obj := range sm.items {
		if obj.ID == id {
			sm.items = append(sm.items[:i], sm.items[i+1:]...)
			return obj, true
		}
	}
	return StackObject{}, false
}

// Peek returns the top object without removing it.
func (sm *StackManager) Peek() (StackObject, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.items) == 0 {
		return StackObject{}, false
	}
	return sm.items[len(sm.items)-1], true
}

// Find returns the object with the given id.
func (sm *StackManager) Find(id string) (StackObject, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, obj := range sm.items {
		if obj.ID == id {
			return obj, true
		}
	}
	return StackObject{}, false
}

// List returns a copy of the stack from bottom to top.
func (sm *StackManager) List() []StackObject {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]StackObject, len(sm.items))
	copy(out, sm.items)
	return out
}

// Len returns the number of objects on the stack.
func (sm *StackManager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.items)
}

// IsEmpty reports whether the stack is empty.
func (sm *StackManager) IsEmpty() bool {
	return sm.Len() == 0
}
