package rules

import (
	"errors"
	"testing"
)

func TestTurnManagerSequence(t *testing.T) {
	tm := NewTurnManager("Alice")

	expected := []struct {
		phase Phase
		step  Step
	}{
		{PhaseBeginning, StepUntap},
		{PhaseBeginning, StepUpkeep},
		{PhaseBeginning, StepDraw},
		{PhasePrecombatMain, StepMain},
		{PhaseCombat, StepBeginCombat},
		{PhaseCombat, StepDeclareAttackers},
		{PhaseCombat, StepDeclareBlockers},
		{PhaseCombat, StepCombatDamage},
		{PhaseCombat, StepEndCombat},
		{PhasePostcombatMain, StepMain},
		{PhaseEnding, StepEnd},
		{PhaseEnding, StepCleanup},
	}

	for i, exp := range expected {
		if tm.CurrentPhase() != exp.phase {
			t.Fatalf("step %d: expected phase %s, got %s", i, exp.phase, tm.CurrentPhase())
		}
		if tm.CurrentStep() != exp.step {
			t.Fatalf("step %d: expected step %s, got %s", i, exp.step, tm.CurrentStep())
		}
		if i < len(expected)-1 {
			tm.AdvanceStep("")
		}
	}
	if !tm.IsLastStep() {
		t.Fatalf("expected cleanup to be the last step")
	}
}

func TestTurnManagerAdvanceWrapsTurn(t *testing.T) {
	tm := NewTurnManager("Alice")
	for i := 0; i < len(turnSequence)-1; i++ {
		tm.AdvanceStep("Bob")
	}
	if tm.ActivePlayer() != "Alice" || tm.TurnNumber() != 1 {
		t.Fatalf("turn must not change before cleanup ends, got %s turn %d", tm.ActivePlayer(), tm.TurnNumber())
	}

	phase, step := tm.AdvanceStep("Bob")
	if phase != PhaseBeginning || step != StepUntap {
		t.Fatalf("expected wrap to untap, got %s/%s", phase, step)
	}
	if tm.ActivePlayer() != "Bob" {
		t.Fatalf("expected Bob to be active, got %s", tm.ActivePlayer())
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn 2, got %d", tm.TurnNumber())
	}
}

func TestTurnManagerEndTurn(t *testing.T) {
	tm := NewTurnManager("Alice")
	tm.AdvanceStep("")
	tm.AdvanceStep("")

	phase, step := tm.EndTurn("Carol")
	if phase != PhaseBeginning || step != StepUntap || tm.ActivePlayer() != "Carol" || tm.TurnNumber() != 2 {
		t.Fatalf("unexpected state after EndTurn: %s/%s %s turn %d", phase, step, tm.ActivePlayer(), tm.TurnNumber())
	}
}

func TestTurnManagerSetPosition(t *testing.T) {
	tm := NewTurnManager("Alice")

	if err := tm.SetPosition(PhasePostcombatMain, StepMain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.CurrentPhase() != PhasePostcombatMain {
		t.Fatalf("expected postcombat main, got %s", tm.CurrentPhase())
	}

	err := tm.SetPosition(PhaseBeginning, StepCombatDamage)
	if !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
	if tm.CurrentPhase() != PhasePostcombatMain {
		t.Fatalf("failed SetPosition must not move the turn")
	}
	if Step(42).String() != "STEP_42" {
		t.Fatalf("unexpected fallback name %s", Step(42))
	}
}
