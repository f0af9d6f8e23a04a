package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// CheckStateBasedActions runs the death sweep and reports how many
// permanents left the battlefield.
func (e *Engine) CheckStateBasedActions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkStateBasedActions()
}

func (e *Engine) checkStateBasedActions() int {
	removed := 0
	stuck := make(map[string]bool)
	for round := 0; round < maxSettleRounds; round++ {
		var dead []*cards.Instance
		for _, inst := range e.battlefield() {
			if inst.IsDead() && !stuck[inst.ID] {
				dead = append(dead, inst)
			}
		}
		if len(dead) == 0 {
			return removed
		}
		for _, inst := range dead {
			if e.killPermanent(inst) {
				removed++
			} else {
				stuck[inst.ID] = true
			}
		}
	}
	e.logger.Error("state-based actions did not settle", zap.Int("rounds", maxSettleRounds))
	return removed
}

// killPermanent takes a permanent off the battlefield. A commander goes to
// the command zone and its owner's tax rises; tokens leave the game; every
// other card goes to its owner's graveyard and fires dies triggers. It
// reports whether the permanent left the battlefield.
func (e *Engine) killPermanent(inst *cards.Instance) bool {
	if inst.Zone != cards.ZoneBattlefield {
		return false
	}
	controllerID := inst.ControllerID
	creature := inst.IsCreature()
	owner := e.playerIndex[inst.OwnerID]

	if owner != nil && owner.CommanderID == inst.ID {
		if err := e.moveInstance(inst, cards.ZoneCommand); err != nil {
			e.logger.Error("commander move failed", zap.String("card", inst.Card.Name), zap.Error(err))
			return false
		}
		owner.CommandTax += e.rules.CommanderTaxIncrement
		evt := rules.NewEventWithAmount(rules.EventCommanderMoved, inst.ID, inst.ID, owner.ID, owner.CommandTax)
		evt.Data = cards.ZoneCommand.String()
		e.emit(evt)
		e.logger.Info("commander returned to command zone",
			zap.String("player_id", owner.ID),
			zap.String("commander", inst.Card.Name),
			zap.Int("command_tax", owner.CommandTax),
		)
		return true
	}

	died := rules.NewEvent(rules.EventPermanentDies, inst.ID, inst.ID, controllerID)
	died.Flag = creature

	if inst.Card.Token {
		// Dies triggers look the instance up, so announce before it is gone.
		inst.ClearCombat()
		e.emit(died)
		if err := e.destroyToken(inst); err != nil {
			e.logger.Error("token removal failed", zap.Error(err))
			return false
		}
		return true
	}

	if err := e.moveInstance(inst, cards.ZoneGraveyard); err != nil {
		e.logger.Error("move to graveyard failed", zap.String("card", inst.Card.Name), zap.Error(err))
		return false
	}
	e.emit(died)
	e.logger.Debug("permanent died", zap.String("card", inst.Card.Name), zap.String("controller", controllerID))
	return true
}

// CheckWinConditions eliminates players who lost and ends the game when at
// most one player remains.
func (e *Engine) CheckWinConditions() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkWinConditions()
}

func (e *Engine) checkWinConditions() {
	if !e.started || e.gameOver {
		return
	}
	changed := false
	for _, p := range e.players {
		if p.Eliminated {
			continue
		}
		if reason := e.lossReason(p); reason != "" {
			e.eliminate(p, reason)
			changed = true
		}
	}
	if changed && !e.gameOver {
		if active := e.activePlayer(); active != nil && !active.Eliminated {
			e.resetPriority()
		}
	}
	e.checkGameOver()
}

func (e *Engine) lossReason(p *Player) string {
	if p.Life <= 0 {
		return fmt.Sprintf("life total %d", p.Life)
	}
	for _, owner := range e.players {
		if dmg := p.CommanderDamage[owner.ID]; dmg >= e.rules.CommanderDamageLimit {
			return fmt.Sprintf("%d commander damage from %s", dmg, owner.ID)
		}
	}
	if p.DrewFromEmpty {
		return "drew from an empty library"
	}
	return ""
}

// eliminate removes a player from play. Their spells and abilities leave
// the stack.
func (e *Engine) eliminate(p *Player, reason string) {
	p.Eliminated = true
	p.LossReason = reason
	for _, obj := range e.stack.List() {
		if obj.Controller == p.ID {
			e.removeStackObject(obj)
		}
	}
	evt := rules.NewEvent(rules.EventPlayerLost, p.ID, "", p.ID)
	evt.Description = reason
	e.emit(evt)
	e.logger.Info("player eliminated", zap.String("player_id", p.ID), zap.String("reason", reason))
}

func (e *Engine) checkGameOver() {
	alive := e.alivePlayers()
	if len(alive) > 1 {
		return
	}
	e.gameOver = true
	if len(alive) == 1 {
		e.winner = alive[0].ID
	}
	evt := rules.NewEvent(rules.EventGameOver, e.winner, "", e.winner)
	e.emit(evt)
	e.observer.GameOver(e.winner)
	e.logger.Info("game over", zap.String("winner", e.winner), zap.Int("turn", e.turn.TurnNumber()))
}
