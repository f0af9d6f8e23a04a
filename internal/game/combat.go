package game

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// AttackDeclaration sends one creature at one player.
type AttackDeclaration struct {
	CreatureID string
	DefenderID string
}

// BlockDeclaration puts one creature in front of one attacker.
type BlockDeclaration struct {
	BlockerID  string
	AttackerID string
}

// DeclareAttackers validates the whole batch and only then marks and taps
// the attackers.
func (e *Engine) DeclareAttackers(playerID string, decls []AttackDeclaration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.declareAttackers(playerID, decls)
}

func (e *Engine) declareAttackers(playerID string, decls []AttackDeclaration) error {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return err
	}
	if e.turn.ActivePlayer() != p.ID {
		return fmt.Errorf("%w: only the active player attacks", ErrIllegalAttack)
	}
	if e.turn.CurrentStep() != rules.StepDeclareAttackers {
		return fmt.Errorf("%w: attackers are declared in the declare attackers step, not %s", ErrWrongStep, e.turn.CurrentStep())
	}
	if !e.stack.IsEmpty() {
		return fmt.Errorf("%w: stack is not empty", ErrWrongStep)
	}
	if len(decls) == 0 {
		return fmt.Errorf("%w: no attackers declared", ErrIllegalAttack)
	}

	attackers := make([]*cards.Instance, len(decls))
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		if seen[d.CreatureID] {
			return fmt.Errorf("%w: %s declared twice", ErrIllegalAttack, d.CreatureID)
		}
		seen[d.CreatureID] = true

		inst, ok := e.instances[d.CreatureID]
		if !ok || inst.Zone != cards.ZoneBattlefield {
			return fmt.Errorf("%w: %s is not on the battlefield", ErrIllegalAttack, d.CreatureID)
		}
		if inst.ControllerID != p.ID {
			return fmt.Errorf("%w: %s is not controlled by %s", ErrIllegalAttack, inst.Card.Name, p.ID)
		}
		if !inst.CanAttack() {
			return fmt.Errorf("%w: %s cannot attack (tapped, summoning sick or defender)", ErrIllegalAttack, inst.Card.Name)
		}
		defender, ok := e.playerIndex[d.DefenderID]
		if !ok || defender.ID == p.ID || defender.Eliminated {
			return fmt.Errorf("%w: %s is not an opponent in the game", ErrIllegalAttack, d.DefenderID)
		}
		attackers[i] = inst
	}

	for i, inst := range attackers {
		inst.Attacking = true
		inst.Defender = decls[i].DefenderID
		inst.Tapped = true
		evt := rules.NewEvent(rules.EventAttackerDeclared, inst.ID, inst.ID, p.ID)
		evt.Data = inst.Defender
		e.emit(evt)
		e.logger.Debug("attacker declared",
			zap.String("creature", inst.Card.Name),
			zap.String("defender", inst.Defender),
		)
	}
	e.settle()
	return nil
}

// DeclareBlockers validates the whole batch and only then marks the
// blockers. Several creatures may block the same attacker.
func (e *Engine) DeclareBlockers(playerID string, decls []BlockDeclaration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.declareBlockers(playerID, decls)
}

func (e *Engine) declareBlockers(playerID string, decls []BlockDeclaration) error {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return err
	}
	if e.turn.CurrentStep() != rules.StepDeclareBlockers {
		return fmt.Errorf("%w: blockers are declared in the declare blockers step, not %s", ErrWrongStep, e.turn.CurrentStep())
	}
	if e.turn.ActivePlayer() == p.ID {
		return fmt.Errorf("%w: the attacking player cannot block", ErrIllegalBlock)
	}
	if !e.stack.IsEmpty() {
		return fmt.Errorf("%w: stack is not empty", ErrWrongStep)
	}
	if len(decls) == 0 {
		return fmt.Errorf("%w: no blockers declared", ErrIllegalBlock)
	}

	blockers := make([]*cards.Instance, len(decls))
	seen := make(map[string]bool, len(decls))
	for i, d := range decls {
		if seen[d.BlockerID] {
			return fmt.Errorf("%w: %s declared twice", ErrIllegalBlock, d.BlockerID)
		}
		seen[d.BlockerID] = true

		blocker, ok := e.instances[d.BlockerID]
		if !ok || blocker.Zone != cards.ZoneBattlefield {
			return fmt.Errorf("%w: %s is not on the battlefield", ErrIllegalBlock, d.BlockerID)
		}
		if blocker.ControllerID != p.ID {
			return fmt.Errorf("%w: %s is not controlled by %s", ErrIllegalBlock, blocker.Card.Name, p.ID)
		}
		if !blocker.CanBlock() {
			return fmt.Errorf("%w: %s cannot block", ErrIllegalBlock, blocker.Card.Name)
		}
		attacker, ok := e.instances[d.AttackerID]
		if !ok || attacker.Zone != cards.ZoneBattlefield || !attacker.Attacking {
			return fmt.Errorf("%w: %s is not attacking", ErrIllegalBlock, d.AttackerID)
		}
		if attacker.Defender != p.ID {
			return fmt.Errorf("%w: %s is not attacking %s", ErrIllegalBlock, attacker.Card.Name, p.ID)
		}
		blockers[i] = blocker
	}

	for i, blocker := range blockers {
		blocker.Blocking = true
		blocker.BlockingTarget = decls[i].AttackerID
		e.blockOrder = append(e.blockOrder, blocker.ID)
		evt := rules.NewEvent(rules.EventBlockerDeclared, blocker.ID, blocker.ID, p.ID)
		evt.Data = blocker.BlockingTarget
		e.emit(evt)
	}
	e.settle()
	return nil
}

// ResolveCombatDamage deals combat damage. It runs on entering the combat
// damage step and is exposed for callers driving combat directly.
func (e *Engine) ResolveCombatDamage() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkRunning(); err != nil {
		return err
	}
	e.resolveCombatDamage()
	e.settle()
	return nil
}

type damageAssignment struct {
	source *cards.Instance
	// exactly one of creature or player is set
	creature *cards.Instance
	player   *Player
	amount   int
}

// resolveCombatDamage computes every assignment before applying any, so
// no creature is removed before all damage is dealt. Attackers with several
// blockers assign lethal damage in declaration order and the rest to the
// last blocker. Combat flags are cleared afterwards; deaths are left to the
// state-based sweep.
func (e *Engine) resolveCombatDamage() {
	var assignments []damageAssignment
	field := e.battlefield()

	for _, attacker := range field {
		if !attacker.Attacking {
			continue
		}
		blockers := e.blockersOf(attacker, field)
		power := max(attacker.Power(), 0)

		if len(blockers) == 0 {
			if defender, ok := e.playerIndex[attacker.Defender]; ok && !defender.Eliminated {
				assignments = append(assignments, damageAssignment{source: attacker, player: defender, amount: power})
			}
			continue
		}

		remaining := power
		for i, blocker := range blockers {
			give := remaining
			if i < len(blockers)-1 {
				lethal := max(blocker.Toughness()-blocker.Damage, 0)
				give = min(lethal, remaining)
			}
			remaining -= give
			assignments = append(assignments, damageAssignment{source: attacker, creature: blocker, amount: give})
			assignments = append(assignments, damageAssignment{source: blocker, creature: attacker, amount: max(blocker.Power(), 0)})
		}
	}

	for _, a := range assignments {
		if a.amount <= 0 {
			continue
		}
		if a.player != nil {
			e.combatDamageToPlayer(a.source, a.player, a.amount)
			continue
		}
		a.creature.Damage += a.amount
		evt := rules.NewEventWithAmount(rules.EventDamagedPermanent, a.creature.ID, a.source.ID, a.source.ControllerID, a.amount)
		evt.Flag = true
		e.emit(evt)
	}

	e.clearCombat()
}

// blockersOf returns the creatures blocking attacker in declaration order.
func (e *Engine) blockersOf(attacker *cards.Instance, field []*cards.Instance) []*cards.Instance {
	var blockers []*cards.Instance
	for _, inst := range field {
		if inst.Blocking && inst.BlockingTarget == attacker.ID {
			blockers = append(blockers, inst)
		}
	}
	slices.SortStableFunc(blockers, func(a, b *cards.Instance) int {
		return slices.Index(e.blockOrder, a.ID) - slices.Index(e.blockOrder, b.ID)
	})
	return blockers
}

func (e *Engine) combatDamageToPlayer(source *cards.Instance, defender *Player, amount int) {
	e.setLife(defender, defender.Life-amount)
	evt := rules.NewEventWithAmount(rules.EventDamagedPlayer, defender.ID, source.ID, source.ControllerID, amount)
	evt.Flag = true
	e.emit(evt)

	owner, ok := e.playerIndex[source.OwnerID]
	if ok && owner.CommanderID == source.ID {
		defender.CommanderDamage[owner.ID] += amount
		e.logger.Debug("commander damage",
			zap.String("defender", defender.ID),
			zap.String("commander_owner", owner.ID),
			zap.Int("total", defender.CommanderDamage[owner.ID]),
		)
	}
}
