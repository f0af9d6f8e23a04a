package rules

import (
	"errors"
	"testing"
)

func TestStackManagerLIFO(t *testing.T) {
	sm := NewStackManager()
	for _, id := range []string{"A", "B", "C"} {
		sm.Push(StackObject{ID: id, Kind: StackObjectSpell, Controller: "Alice"})
	}

	top, ok := sm.Peek()
	if !ok || top.ID != "C" {
		t.Fatalf("expected C on top, got %+v", top)
	}
	if list := sm.List(); list[0].ID != "A" || list[2].ID != "C" {
		t.Fatalf("expected bottom-to-top listing, got %+v", list)
	}

	for _, want := range []string{"C", "B", "A"} {
		obj, err := sm.Pop()
		if err != nil {
			t.Fatalf("unexpected error popping: %v", err)
		}
		if obj.ID != want {
			t.Fatalf("expected %s, got %s", want, obj.ID)
		}
	}

	if !sm.IsEmpty() {
		t.Fatalf("expected empty stack after three pops")
	}
	if _, err := sm.Pop(); !errors.Is(err, ErrStackEmpty) {
		t.Fatalf("expected ErrStackEmpty, got %v", err)
	}
	if _, ok := sm.Peek(); ok {
		t.Fatalf("expected Peek on empty stack to fail")
	}
}

func TestStackManagerRemove(t *testing.T) {
	sm := NewStackManager()
	sm.Push(StackObject{ID: "bolt", Kind: StackObjectSpell})
	sm.Push(StackObject{ID: "counterspell", Kind: StackObjectSpell})

	removed, ok := sm.Remove("bolt")
	if !ok || removed.ID != "bolt" {
		t.Fatalf("expected to remove bolt, got %+v", removed)
	}
	if sm.Len() != 1 {
		t.Fatalf("expected 1 item left, got %d", sm.Len())
	}
	if _, ok := sm.Find("bolt"); ok {
		t.Fatalf("bolt should be gone")
	}
	if _, ok := sm.Remove("missing"); ok {
		t.Fatalf("expected Remove of unknown id to fail")
	}
}
