package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// AdvanceStep moves to the next step once the stack is empty and every
// player has passed. It is normally driven by Execute with a Pass action.
func (e *Engine) AdvanceStep() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceStep()
}

func (e *Engine) advanceStep() error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	if !e.stack.IsEmpty() {
		return fmt.Errorf("%w: %d object(s) waiting to resolve", ErrStackNotEmpty, e.stack.Len())
	}
	if e.turn.IsLastStep() {
		e.turn.EndTurn(e.nextAlive(e.turn.ActivePlayer()))
		e.beginTurn()
		return nil
	}
	e.turn.AdvanceStep("")
	e.enterStep()
	return nil
}

// beginTurn announces a new turn and enters its untap step.
func (e *Engine) beginTurn() {
	active := e.turn.ActivePlayer()
	e.watchers.ResetScope(rules.WatcherScopeTurn)
	e.emit(rules.NewEvent(rules.EventBeginTurn, "", "", active))
	e.observer.TurnStarted(e.turn.TurnNumber(), active)
	e.logger.Debug("turn started",
		zap.Int("turn", e.turn.TurnNumber()),
		zap.String("active_player", active),
	)
	e.enterStep()
}

// enterStep performs the turn-based actions of the current step, then gives
// the active player priority.
func (e *Engine) enterStep() {
	phase, step := e.turn.CurrentPhase(), e.turn.CurrentStep()
	active := e.activePlayer()

	e.resetPriority()
	evt := rules.NewEvent(rules.EventStepChanged, "", "", active.ID)
	evt.Data = step.String()
	evt.Metadata["phase"] = phase.String()
	e.emit(evt)
	e.observer.StepChanged(phase, step)

	switch step {
	case rules.StepUntap:
		e.untap(active)
	case rules.StepDraw:
		if e.rules.SkipFirstDraw && e.turn.TurnNumber() == 1 {
			break
		}
		e.draw(active, 1)
	case rules.StepCombatDamage:
		e.resolveCombatDamage()
	case rules.StepEndCombat:
		e.clearCombat()
	case rules.StepCleanup:
		e.cleanup(active)
	}

	e.settle()
}

func (e *Engine) untap(p *Player) {
	for _, inst := range e.instancesIn(p.Battlefield()) {
		if inst.Tapped {
			inst.Tapped = false
			e.emit(rules.NewEvent(rules.EventUntapped, inst.ID, "", p.ID))
		}
		inst.SummoningSick = false
	}
	p.LandPlayed = false
	p.ManaPool.Empty()
}

// cleanup clears damage and temporary modifiers, trims the active player's
// hand from the end and empties every pool.
func (e *Engine) cleanup(active *Player) {
	for _, inst := range e.battlefield() {
		inst.ClearUntilEndOfTurn()
	}
	for active.Hand().Len() > e.rules.MaxHandSize {
		id, _ := active.Hand().Last()
		inst := e.instances[id]
		if err := e.moveInstance(inst, cards.ZoneGraveyard); err != nil {
			e.logger.Error("discard failed", zap.String("player_id", active.ID), zap.Error(err))
			return
		}
		e.emit(rules.NewEvent(rules.EventDiscardedCard, inst.ID, "", active.ID))
	}
	for _, p := range e.players {
		p.ManaPool.Empty()
	}
}

func (e *Engine) clearCombat() {
	for _, inst := range e.battlefield() {
		inst.ClearCombat()
	}
	e.blockOrder = nil
}

func (e *Engine) checkRunning() error {
	if !e.started {
		return ErrGameNotStarted
	}
	if e.gameOver {
		return ErrGameOver
	}
	return nil
}
