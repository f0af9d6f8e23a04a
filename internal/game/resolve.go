package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// PassOutcome reports what a pass led to.
type PassOutcome int

const (
	// PassOutcomePassed handed priority to the next player.
	PassOutcomePassed PassOutcome = iota
	// PassOutcomeResolved resolved the top of the stack.
	PassOutcomeResolved
	// PassOutcomeStepEnded means everyone passed on an empty stack; the
	// caller should advance the step.
	PassOutcomeStepEnded
)

var passOutcomeNames = map[PassOutcome]string{
	PassOutcomePassed:    "PASSED",
	PassOutcomeResolved:  "RESOLVED",
	PassOutcomeStepEnded: "STEP_ENDED",
}

func (o PassOutcome) String() string {
	if name, ok := passOutcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("PASS_OUTCOME_%d", int(o))
}

// PassPriority passes for playerID. When every player has passed in
// succession the top of the stack resolves, or, with an empty stack, the
// step is over.
func (e *Engine) PassPriority(playerID string) (PassOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.passPriority(playerID)
}

func (e *Engine) passPriority(playerID string) (PassOutcome, error) {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return PassOutcomePassed, err
	}
	allPassed, err := e.stack.PassPriority()
	if err != nil {
		return PassOutcomePassed, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	e.observer.PriorityPassed(p.ID)
	if !allPassed {
		return PassOutcomePassed, nil
	}
	if e.stack.IsEmpty() {
		return PassOutcomeStepEnded, nil
	}
	if err := e.resolveTop(); err != nil {
		return PassOutcomePassed, err
	}
	return PassOutcomeResolved, nil
}

// ResolveTop resolves the most recently pushed stack object.
func (e *Engine) ResolveTop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkRunning(); err != nil {
		return err
	}
	return e.resolveTop()
}

func (e *Engine) resolveTop() error {
	obj, err := e.stack.Pop()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if err := e.resolution.BeginResolution(obj.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	defer func() {
		if err := e.resolution.EndResolution(obj.ID); err != nil {
			e.logger.Error("resolution bookkeeping", zap.String("object_id", obj.ID), zap.Error(err))
		}
	}()

	switch obj.Kind {
	case rules.StackObjectSpell:
		if err := e.resolveSpell(obj); err != nil {
			return err
		}
	case rules.StackObjectAbility:
		if err := e.resolveAbility(obj); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: stack object %s has kind %q", ErrInternal, obj.ID, obj.Kind)
	}

	e.emit(rules.NewEvent(rules.EventResolved, obj.ID, obj.SourceID, obj.Controller))
	e.observer.StackResolved(obj)
	if err := e.stack.ResetPriorityAfterResolution(e.turn.ActivePlayer()); err != nil {
		e.resetPriority()
	}
	e.settle()
	return nil
}

func (e *Engine) resolveSpell(obj rules.StackObject) error {
	inst, ok := e.instances[obj.SourceID]
	if !ok || inst.Zone != cards.ZoneStack {
		return fmt.Errorf("%w: spell %s has no instance on the stack", ErrInternal, obj.ID)
	}

	if inst.Card.IsPermanent() {
		if err := e.moveInstance(inst, cards.ZoneBattlefield); err != nil {
			return err
		}
		e.logger.Debug("permanent resolved", zap.String("card", inst.Card.Name), zap.String("controller", obj.Controller))
		return nil
	}

	targets, fizzled := e.legalTargets(spellRequirement(inst.Card).Required(), obj.Targets)
	if fizzled {
		e.logger.Debug("spell fizzled", zap.String("card", inst.Card.Name))
	} else {
		for _, eff := range inst.Card.SpellEffects {
			e.applyEffect(eff, obj.Controller, inst.ID, targets)
		}
	}
	return e.moveInstance(inst, cards.ZoneGraveyard)
}

func (e *Engine) resolveAbility(obj rules.StackObject) error {
	qt, ok := e.triggers.Take(obj.ID)
	if !ok {
		return fmt.Errorf("%w: ability %s has no queued trigger", ErrInternal, obj.ID)
	}
	eff := qt.Ability.Effect
	targets, fizzled := e.legalTargets(eff.Requirement().Required(), qt.Targets)
	if fizzled {
		e.logger.Debug("ability fizzled", zap.String("source", qt.SourceName))
		return nil
	}
	e.applyEffect(eff, qt.ControllerID, qt.SourceID, targets)
	return nil
}

// legalTargets drops targets that became illegal while on the stack. An
// object that needed targets and has none left fizzles.
func (e *Engine) legalTargets(required bool, targets []string) ([]string, bool) {
	if !required {
		return nil, false
	}
	var legal []string
	for _, id := range targets {
		if e.targetStillLegal(id) {
			legal = append(legal, id)
		}
	}
	return legal, len(legal) == 0
}

func (e *Engine) targetStillLegal(id string) bool {
	t := engineTargets{e}
	if p, ok := t.TargetPlayer(id); ok {
		return !p.Eliminated
	}
	if _, ok := t.TargetPermanent(id); ok {
		return true
	}
	_, ok := t.TargetStackObject(id)
	return ok
}

// removeStackObject takes an object off the stack without resolving it.
// A countered commander returns to the command zone.
func (e *Engine) removeStackObject(obj rules.StackObject) {
	if _, ok := e.stack.Remove(obj.ID); !ok {
		return
	}
	if !obj.IsSpell() {
		e.triggers.Take(obj.ID)
		return
	}
	inst, ok := e.instances[obj.SourceID]
	if !ok {
		return
	}
	dest := cards.ZoneGraveyard
	if owner, ok := e.playerIndex[inst.OwnerID]; ok && owner.CommanderID == inst.ID {
		dest = cards.ZoneCommand
	}
	if err := e.moveInstance(inst, dest); err != nil {
		e.logger.Error("failed to remove countered spell", zap.String("card", inst.Card.Name), zap.Error(err))
	}
}
