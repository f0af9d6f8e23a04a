package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStep is returned for a (phase, step) pair outside the turn structure.
var ErrUnknownStep = errors.New("unknown phase/step")

// Phase represents the broad phases of a turn.
type Phase int

const (
	PhaseBeginning Phase = iota
	PhasePrecombatMain
	PhaseCombat
	PhasePostcombatMain
	PhaseEnding
)

var phaseNames = map[Phase]string{
	PhaseBeginning:      "BEGINNING",
	PhasePrecombatMain:  "PRECOMBAT_MAIN",
	PhaseCombat:         "COMBAT",
	PhasePostcombatMain: "POSTCOMBAT_MAIN",
	PhaseEnding:         "ENDING",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Step represents the individual steps that comprise a turn.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain
	StepBeginCombat
	StepDeclareAttackers
	StepDeclareBlockers
	StepCombatDamage
	StepEndCombat
	StepEnd
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:            "UNTAP",
	StepUpkeep:           "UPKEEP",
	StepDraw:             "DRAW",
	StepMain:             "MAIN",
	StepBeginCombat:      "BEGIN_COMBAT",
	StepDeclareAttackers: "DECLARE_ATTACKERS",
	StepDeclareBlockers:  "DECLARE_BLOCKERS",
	StepCombatDamage:     "COMBAT_DAMAGE",
	StepEndCombat:        "END_COMBAT",
	StepEnd:              "END",
	StepCleanup:          "CLEANUP",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

type turnEntry struct {
	phase Phase
	step  Step
}

var turnSequence = []turnEntry{
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

// TurnManager tracks the active player and turn progression.
type TurnManager struct {
	orderIndex   int
	turnNumber   int
	activePlayer string
}

// NewTurnManager creates a new turn manager initialized at turn 1, untap step.
func NewTurnManager(activePlayer string) *TurnManager {
	return &TurnManager{
		turnNumber:   1,
		activePlayer: strings.TrimSpace(activePlayer),
	}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return turnSequence[tm.orderIndex].phase
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return turnSequence[tm.orderIndex].step
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// IsMainPhase reports whether the current step is either main step.
func (tm *TurnManager) IsMainPhase() bool {
	return tm.CurrentStep() == StepMain
}

// IsLastStep reports whether advancing would start a new turn.
func (tm *TurnManager) IsLastStep() bool {
	return tm.orderIndex == len(turnSequence)-1
}

// AdvanceStep moves to the next step in the turn structure. Past the last
// step the turn number is incremented and nextActivePlayer takes the turn.
func (tm *TurnManager) AdvanceStep(nextActivePlayer string) (Phase, Step) {
	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
		if next := strings.TrimSpace(nextActivePlayer); next != "" {
			tm.activePlayer = next
		}
	}
	return tm.CurrentPhase(), tm.CurrentStep()
}

// EndTurn jumps straight to the untap step of the next turn.
func (tm *TurnManager) EndTurn(nextActivePlayer string) (Phase, Step) {
	tm.orderIndex = len(turnSequence) - 1
	return tm.AdvanceStep(nextActivePlayer)
}

// SetPosition moves to the given (phase, step) within the current turn.
func (tm *TurnManager) SetPosition(phase Phase, step Step) error {
	for i, entry := range turnSequence {
		if entry.phase == phase && entry.step == step {
			tm.orderIndex = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrUnknownStep, phase, step)
}
