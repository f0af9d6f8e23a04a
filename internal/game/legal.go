package game

import (
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// LegalActions lists what playerID may do right now. Only the priority
// holder has actions; Pass is always among them.
func (e *Engine) LegalActions(playerID string) []Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.legalActions(playerID)
}

func (e *Engine) legalActions(playerID string) []Action {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return nil
	}

	var actions []Action
	if !p.LandPlayed && e.requireSorceryTiming(p) == nil {
		for _, inst := range e.instancesIn(p.Hand()) {
			if inst.IsLand() {
				actions = append(actions, PlayLand{CardID: inst.ID})
			}
		}
	}

	candidates := e.instancesIn(p.Hand())
	if p.CommanderID != "" && p.CommandZone().Contains(p.CommanderID) {
		candidates = append(candidates, e.instances[p.CommanderID])
	}
	available := e.availableMana(p)
	for _, inst := range candidates {
		if inst.IsLand() || e.checkCastTiming(p, inst.Card) != nil {
			continue
		}
		cost := e.castCost(p, inst)
		if !cost.CanPay(available) {
			continue
		}
		base := CastSpell{
			CardID:     inst.ID,
			Cost:       cost.String(),
			CardTypes:  inst.Card.TypeNames(),
			OracleText: inst.Card.OracleText,
			Power:      inst.Card.Power,
			Toughness:  inst.Card.Toughness,
		}
		req := spellRequirement(inst.Card)
		if !req.Required() {
			actions = append(actions, base)
			continue
		}
		for _, target := range e.candidateTargets(p.ID, req) {
			cast := base
			cast.Targets = []string{target}
			actions = append(actions, cast)
		}
	}

	step := e.turn.CurrentStep()
	if step == rules.StepDeclareAttackers && e.turn.ActivePlayer() == p.ID && e.stack.IsEmpty() {
		for _, inst := range e.instancesIn(p.Battlefield()) {
			if !inst.CanAttack() {
				continue
			}
			for _, opp := range e.opponentsOf(p.ID) {
				actions = append(actions, DeclareAttacker{
					CreatureID:     inst.ID,
					TargetPlayerID: opp.ID,
					Power:          inst.Power(),
					Toughness:      inst.Toughness(),
				})
			}
		}
	}
	if step == rules.StepDeclareBlockers && e.turn.ActivePlayer() != p.ID && e.stack.IsEmpty() {
		attackers := e.attackersOn(p.ID)
		for _, blocker := range e.instancesIn(p.Battlefield()) {
			if !blocker.CanBlock() {
				continue
			}
			for _, attacker := range attackers {
				actions = append(actions, DeclareBlocker{
					BlockerID:         blocker.ID,
					AttackerID:        attacker.ID,
					BlockerPower:      blocker.Power(),
					BlockerToughness:  blocker.Toughness(),
					AttackerPower:     attacker.Power(),
					AttackerToughness: attacker.Toughness(),
				})
			}
		}
	}

	return append(actions, Pass{})
}

func (e *Engine) attackersOn(defenderID string) []*cards.Instance {
	var out []*cards.Instance
	for _, inst := range e.battlefield() {
		if inst.Attacking && inst.Defender == defenderID {
			out = append(out, inst)
		}
	}
	return out
}

// candidateTargets lists every id controllerID could choose for req:
// players in seat order, then creatures, then stack objects from the top
// down.
func (e *Engine) candidateTargets(controllerID string, req targeting.TargetRequirement) []string {
	var ids []string
	for _, p := range e.players {
		ids = append(ids, p.ID)
	}
	for _, inst := range e.battlefield() {
		ids = append(ids, inst.ID)
	}
	items := e.stack.List()
	for i := len(items) - 1; i >= 0; i-- {
		ids = append(ids, items[i].ID)
	}

	var legal []string
	for _, id := range ids {
		if e.validator.ValidateTarget(controllerID, id, req) == nil {
			legal = append(legal, id)
		}
	}
	return legal
}
