package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// detectTriggers listens on the event bus and queues the triggered
// abilities an event fires. Nothing reaches the stack until flushTriggers.
func (e *Engine) detectTriggers(evt rules.Event) {
	switch evt.Type {
	case rules.EventZoneChange:
		if evt.Data == cards.ZoneBattlefield.String() {
			e.fire(cards.TriggerEntersBattlefield, e.instances[evt.TargetID])
		}
	case rules.EventPermanentDies:
		e.fire(cards.TriggerDies, e.instances[evt.TargetID])
	case rules.EventAttackerDeclared:
		e.fire(cards.TriggerAttacks, e.instances[evt.TargetID])
	case rules.EventBlockerDeclared:
		e.fire(cards.TriggerBlocks, e.instances[evt.TargetID])
	case rules.EventSpellCast:
		e.fire(cards.TriggerCast, e.instances[evt.SourceID])
	case rules.EventStepChanged:
		switch evt.Data {
		case rules.StepUpkeep.String():
			for _, inst := range e.battlefield() {
				e.fire(cards.TriggerUpkeep, inst)
			}
		case rules.StepEnd.String():
			for _, inst := range e.battlefield() {
				e.fire(cards.TriggerEndStep, inst)
			}
		}
	}
}

func (e *Engine) fire(event cards.TriggerEvent, inst *cards.Instance) {
	if inst == nil {
		return
	}
	abilities := inst.Card.TriggersOn(event)
	if len(abilities) == 0 {
		return
	}
	controller, ok := e.playerIndex[inst.ControllerID]
	if !ok || controller.Eliminated {
		return
	}
	active := e.turn.ActivePlayer()
	for _, ability := range abilities {
		ctx := cards.ConditionContext{
			ControllerID:   controller.ID,
			ActivePlayerID: active,
			Source:         inst.Card,
		}
		if !cards.EvaluateCondition(ability.Condition, ctx) {
			continue
		}
		targets, ok := e.chooseTriggerTargets(ability.Effect, inst)
		if !ok {
			e.logger.Debug("trigger has no legal target",
				zap.String("source", inst.Card.Name),
				zap.String("ability", ability.Describe()),
			)
			continue
		}
		e.triggers.Enqueue(rules.QueuedTrigger{
			Ability:        ability,
			ControllerID:   controller.ID,
			SourceID:       inst.ID,
			SourceName:     inst.Card.Name,
			IsActivePlayer: controller.ID == active,
			Targets:        targets,
		})
	}
}

// chooseTriggerTargets picks targets for a trigger. Players default to the
// next alive opponent in turn order; harmful creature effects pick the first
// opposing creature and helpful ones the source or the controller's first
// creature. ok is false when a required target does not exist.
func (e *Engine) chooseTriggerTargets(eff cards.Effect, source *cards.Instance) ([]string, bool) {
	req := eff.Requirement()
	if !req.Required() {
		return nil, true
	}
	opponents := e.opponentsOf(source.ControllerID)

	switch req.Type {
	case targeting.TargetTypePlayer, targeting.TargetTypeOpponent, targeting.TargetTypeAny:
		if len(opponents) == 0 {
			return nil, false
		}
		return []string{opponents[0].ID}, true
	case targeting.TargetTypeCreature:
		if helpful(eff.Kind) {
			if source.Zone == cards.ZoneBattlefield && source.IsCreature() {
				return []string{source.ID}, true
			}
			if p, ok := e.playerIndex[source.ControllerID]; ok {
				for _, inst := range e.instancesIn(p.Battlefield()) {
					if inst.IsCreature() {
						return []string{inst.ID}, true
					}
				}
			}
			return nil, false
		}
		for _, opp := range opponents {
			for _, inst := range e.instancesIn(opp.Battlefield()) {
				if inst.IsCreature() {
					return []string{inst.ID}, true
				}
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func helpful(kind cards.EffectKind) bool {
	return kind == cards.EffectPumpCreature || kind == cards.EffectAddCounters
}

// flushTriggers places every queued trigger on the stack in APNAP order.
func (e *Engine) flushTriggers() {
	placed := e.triggers.Flush(func(qt rules.QueuedTrigger) rules.StackObject {
		obj := rules.StackObject{
			ID:         uuid.NewString(),
			Kind:       rules.StackObjectAbility,
			Controller: qt.ControllerID,
			SourceID:   qt.SourceID,
			Name:       qt.SourceName,
			Effect:     qt.Ability.Describe(),
			Targets:    append([]string(nil), qt.Targets...),
		}
		e.stack.Push(obj)
		e.emit(rules.NewEvent(rules.EventTriggered, obj.ID, qt.SourceID, qt.ControllerID))
		e.observer.TriggerFired(qt)
		e.observer.StackPushed(obj)
		return obj
	})
	if len(placed) == 0 {
		return
	}
	if err := e.stack.ResetPriorityAfterResolution(e.turn.ActivePlayer()); err != nil {
		e.resetPriority()
	}
}
