package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/counters"
	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// applyEffect runs one effect body. Targets have already been checked;
// ones that vanished are skipped.
func (e *Engine) applyEffect(eff cards.Effect, controllerID, sourceID string, targets []string) {
	controller, ok := e.playerIndex[controllerID]
	if !ok {
		e.logger.Error("effect controller not found", zap.String("controller", controllerID))
		return
	}

	switch eff.Kind {
	case cards.EffectDrawCards:
		e.draw(controller, eff.Amount)
	case cards.EffectDealDamage:
		for _, id := range targets {
			e.dealDamage(sourceID, id, eff.Amount)
		}
	case cards.EffectGainLife:
		e.setLife(controller, controller.Life+eff.Amount)
		e.emit(rules.NewEventWithAmount(rules.EventGainedLife, controller.ID, sourceID, controller.ID, eff.Amount))
	case cards.EffectLoseLife:
		victims := targets
		if len(victims) == 0 {
			victims = []string{controller.ID}
		}
		for _, id := range victims {
			if p, ok := e.playerIndex[id]; ok {
				e.setLife(p, p.Life-eff.Amount)
				e.emit(rules.NewEventWithAmount(rules.EventLostLife, p.ID, sourceID, controllerID, eff.Amount))
			}
		}
	case cards.EffectSearchBasicLand:
		e.searchBasicLand(controller)
	case cards.EffectCounterSpell:
		for _, id := range targets {
			obj, ok := e.stack.Find(id)
			if !ok || !obj.Counterable {
				continue
			}
			e.removeStackObject(obj)
			e.emit(rules.NewEvent(rules.EventSpellCountered, obj.ID, sourceID, controllerID))
			e.logger.Debug("spell countered", zap.String("spell", obj.Name))
		}
	case cards.EffectPumpCreature:
		for _, inst := range e.targetCreatures(targets) {
			inst.TempPower += eff.Power
			inst.TempToughness += eff.Toughness
		}
	case cards.EffectAddCounters:
		for _, inst := range e.targetCreatures(targets) {
			inst.Counters.Add(counters.CounterTypeP1P1, eff.Amount)
			e.emit(rules.NewEventWithAmount(rules.EventCounterAdded, inst.ID, sourceID, controllerID, eff.Amount))
		}
	case cards.EffectDestroyCreature:
		for _, inst := range e.targetCreatures(targets) {
			e.killPermanent(inst)
		}
	case cards.EffectCreateToken:
		if _, err := e.createToken(tokenCard(eff.Power, eff.Toughness), controller.ID); err != nil {
			e.logger.Error("token creation failed", zap.Error(err))
		}
	default:
		e.logger.Error("unknown effect kind", zap.String("kind", eff.Kind.String()))
	}
}

func (e *Engine) targetCreatures(targets []string) []*cards.Instance {
	var out []*cards.Instance
	for _, id := range targets {
		inst, ok := e.instances[id]
		if ok && inst.Zone == cards.ZoneBattlefield && inst.IsCreature() {
			out = append(out, inst)
		}
	}
	return out
}

// dealDamage applies non-combat damage to a player or a creature.
func (e *Engine) dealDamage(sourceID, targetID string, amount int) {
	if amount <= 0 {
		return
	}
	if p, ok := e.playerIndex[targetID]; ok {
		e.setLife(p, p.Life-amount)
		e.emit(rules.NewEventWithAmount(rules.EventDamagedPlayer, p.ID, sourceID, "", amount))
		return
	}
	if inst, ok := e.instances[targetID]; ok && inst.Zone == cards.ZoneBattlefield && inst.IsCreature() {
		inst.Damage += amount
		e.emit(rules.NewEventWithAmount(rules.EventDamagedPermanent, inst.ID, sourceID, inst.ControllerID, amount))
	}
}

// searchBasicLand puts the first basic land of the library onto the
// battlefield tapped and shuffles.
func (e *Engine) searchBasicLand(p *Player) {
	for _, inst := range e.instancesIn(p.Library()) {
		if !inst.Card.IsBasicLand() {
			continue
		}
		if err := e.moveInstance(inst, cards.ZoneBattlefield); err != nil {
			e.logger.Error("land search failed", zap.String("player_id", p.ID), zap.Error(err))
			return
		}
		inst.Tapped = true
		break
	}
	p.Library().Shuffle(e.rng)
}

func tokenCard(power, toughness int) *cards.Card {
	return &cards.Card{
		ID:        fmt.Sprintf("token-%d-%d", power, toughness),
		Name:      fmt.Sprintf("%d/%d Token", power, toughness),
		Types:     []cards.Type{cards.TypeCreature},
		Power:     cards.Stat(power),
		Toughness: cards.Stat(toughness),
		Token:     true,
	}
}
