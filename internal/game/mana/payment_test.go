package mana

import (
	"errors"
	"reflect"
	"testing"
)

func TestPlanPayment_ColoredFirst(t *testing.T) {
	sources := []Source{
		{ID: "forest-1", Produces: Green},
		{ID: "mountain-1", Produces: Red},
		{ID: "forest-2", Produces: Green},
	}

	plan, err := PlanPayment(MustParseCost("{1}{R}"), NewPool(), sources)
	if err != nil {
		t.Fatalf("Expected payment plan, got %v", err)
	}
	want := []string{"mountain-1", "forest-1"}
	if !reflect.DeepEqual(plan.Tap, want) {
		t.Errorf("Expected taps %v, got %v", want, plan.Tap)
	}
}

func TestPlanPayment_GenericKeepsScarceColors(t *testing.T) {
	sources := []Source{
		{ID: "island", Produces: Blue},
		{ID: "forest-1", Produces: Green},
		{ID: "forest-2", Produces: Green},
		{ID: "wastes", Produces: Colorless},
	}

	plan, err := PlanPayment(MustParseCost("{2}"), NewPool(), sources)
	if err != nil {
		t.Fatalf("Expected payment plan, got %v", err)
	}
	want := []string{"wastes", "forest-1"}
	if !reflect.DeepEqual(plan.Tap, want) {
		t.Errorf("Expected taps %v, got %v", want, plan.Tap)
	}
}

func TestPlanPayment_UsesFloatingMana(t *testing.T) {
	floating := NewPool()
	floating.Add(Green, 1)
	floating.Add(Colorless, 1)
	sources := []Source{{ID: "forest", Produces: Green}}

	plan, err := PlanPayment(MustParseCost("{1}{G}"), floating, sources)
	if err != nil {
		t.Fatalf("Expected payment plan, got %v", err)
	}
	if len(plan.Tap) != 0 {
		t.Errorf("Expected floating mana to cover the cost, tapped %v", plan.Tap)
	}
	if plan.Floating[Green] != 1 || plan.Floating[Colorless] != 1 {
		t.Errorf("Unexpected floating usage %v", plan.Floating)
	}

	if err := plan.Commit(floating); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if floating.Total() != 0 {
		t.Errorf("Expected pool to be spent, %d left", floating.Total())
	}
}

func TestPlanPayment_Insufficient(t *testing.T) {
	floating := NewPool()
	sources := []Source{
		{ID: "a", Produces: Green},
		{ID: "b", Produces: Green},
		{ID: "c", Produces: Green},
	}

	plan, err := PlanPayment(MustParseCost("{4}{G}"), floating, sources)
	if plan != nil {
		t.Errorf("Expected no plan, got %+v", plan)
	}
	if !errors.Is(err, ErrInsufficientMana) {
		t.Errorf("Expected ErrInsufficientMana, got %v", err)
	}

	if _, err := PlanPayment(MustParseCost("{U}"), floating, sources); !errors.Is(err, ErrInsufficientMana) {
		t.Errorf("Expected colored shortfall to fail, got %v", err)
	}
}

func TestPlan_CommitLeavesPoolOnMismatch(t *testing.T) {
	pool := NewPool()
	pool.Add(Red, 1)
	plan := &Plan{}
	plan.Floating[Red] = 1
	plan.Floating[Blue] = 1

	if err := plan.Commit(pool); err == nil {
		t.Fatal("Expected commit to fail")
	}
	if pool.Get(Red) != 1 {
		t.Errorf("Failed commit must not spend, red=%d", pool.Get(Red))
	}
}
