// Package simulation plays whole games between scripted agents and keeps
// standings across a series of games.
package simulation

import (
	"slices"

	"github.com/magefree/commander-engine-go/internal/catalog"
	"github.com/magefree/commander-engine-go/internal/game"
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
)

// Agent picks one of the legal actions for the player holding priority.
type Agent interface {
	Choose(view game.View, playerID string, legal []game.Action) game.Action
}

// PassAgent always passes.
type PassAgent struct{}

func (PassAgent) Choose(game.View, string, []game.Action) game.Action { return game.Pass{} }

// Autopilot is a greedy agent. In order of preference it counters an
// opponent's spell, plays a land, attacks where no blocker wins the fight,
// blocks when the blocker survives or the hit would be lethal, and casts its
// most expensive spell with a sensible target. Otherwise it passes.
type Autopilot struct {
	catalog *catalog.Catalog
}

// NewAutopilot creates an autopilot that looks card effects up in c.
func NewAutopilot(c *catalog.Catalog) *Autopilot {
	return &Autopilot{catalog: c}
}

func (a *Autopilot) Choose(view game.View, playerID string, legal []game.Action) game.Action {
	b := newBoard(view, playerID)

	var lands []game.PlayLand
	var casts []game.CastSpell
	var attacks []game.DeclareAttacker
	var blocks []game.DeclareBlocker
	for _, action := range legal {
		switch act := action.(type) {
		case game.PlayLand:
			lands = append(lands, act)
		case game.CastSpell:
			casts = append(casts, act)
		case game.DeclareAttacker:
			attacks = append(attacks, act)
		case game.DeclareBlocker:
			blocks = append(blocks, act)
		}
	}

	if len(lands) > 0 {
		return lands[0]
	}
	if act, ok := a.chooseAttack(b, attacks); ok {
		return act
	}
	if act, ok := a.chooseBlock(b, blocks); ok {
		return act
	}
	if act, ok := a.chooseCast(b, casts); ok {
		return act
	}
	return game.Pass{}
}

func (a *Autopilot) chooseAttack(b *board, attacks []game.DeclareAttacker) (game.DeclareAttacker, bool) {
	var best game.DeclareAttacker
	found := false
	for _, act := range attacks {
		if act.Power <= 0 || !b.safeAttack(act) {
			continue
		}
		defender := b.players[act.TargetPlayerID]
		if !found || defender.Life < b.players[best.TargetPlayerID].Life {
			best, found = act, true
		}
	}
	return best, found
}

func (a *Autopilot) chooseBlock(b *board, blocks []game.DeclareBlocker) (game.DeclareBlocker, bool) {
	incoming := 0
	for _, card := range b.attackersOnMe() {
		incoming += card.Power
	}
	lethal := incoming >= b.me.Life
	for _, act := range blocks {
		if b.blocked(act.AttackerID) {
			continue
		}
		survives := act.BlockerToughness > act.AttackerPower
		trades := act.BlockerPower >= act.AttackerToughness
		if survives || (lethal && (trades || !b.cards[act.BlockerID].Commander)) {
			return act, true
		}
	}
	return game.DeclareBlocker{}, false
}

func (a *Autopilot) chooseCast(b *board, casts []game.CastSpell) (game.CastSpell, bool) {
	var best game.CastSpell
	bestValue, bestScore := -1, -1
	for _, act := range casts {
		card := a.cardFor(b, act.CardID)
		score, ok := 0, true
		if len(act.Targets) > 0 {
			score, ok = b.targetScore(card, act.Targets[0])
		}
		if !ok {
			continue
		}
		value := manaValue(act.Cost)
		if value > bestValue || (value == bestValue && score > bestScore) {
			best, bestValue, bestScore = act, value, score
		}
	}
	return best, bestValue >= 0
}

func (a *Autopilot) cardFor(b *board, instanceID string) *cards.Card {
	if a.catalog == nil {
		return nil
	}
	view, ok := b.cards[instanceID]
	if !ok {
		return nil
	}
	card, _ := a.catalog.Get(view.Name)
	return card
}

func manaValue(cost string) int {
	c, err := mana.ParseCost(cost)
	if err != nil {
		return 0
	}
	return c.ManaValue()
}

// board indexes a view from one player's seat.
type board struct {
	self    string
	me      game.PlayerView
	players map[string]game.PlayerView
	cards   map[string]game.CardView
	stack   map[string]game.StackItemView
}

func newBoard(view game.View, self string) *board {
	b := &board{
		self:    self,
		players: make(map[string]game.PlayerView, len(view.Players)),
		cards:   make(map[string]game.CardView),
		stack:   make(map[string]game.StackItemView, len(view.Stack)),
	}
	for _, p := range view.Players {
		b.players[p.ID] = p
		if p.ID == self {
			b.me = p
		}
		for _, card := range slices.Concat(p.Hand, p.Battlefield) {
			b.cards[card.ID] = card
		}
	}
	if b.me.CommanderID != "" {
		if _, seen := b.cards[b.me.CommanderID]; !seen {
			b.cards[b.me.CommanderID] = game.CardView{ID: b.me.CommanderID, Name: b.me.CommanderName, Commander: true}
		}
	}
	for _, item := range view.Stack {
		b.stack[item.ID] = item
	}
	return b
}

// safeAttack reports whether no untapped creature of the defender would
// kill the attacker and survive.
func (b *board) safeAttack(act game.DeclareAttacker) bool {
	for _, card := range b.players[act.TargetPlayerID].Battlefield {
		if !card.HasStats || card.Tapped {
			continue
		}
		if card.Power >= act.Toughness && card.Toughness > act.Power {
			return false
		}
	}
	return true
}

func (b *board) attackersOnMe() []game.CardView {
	var out []game.CardView
	for _, p := range b.players {
		for _, card := range p.Battlefield {
			if card.Attacking && card.Defender == b.self {
				out = append(out, card)
			}
		}
	}
	return out
}

func (b *board) blocked(attackerID string) bool {
	return slices.ContainsFunc(b.me.Battlefield, func(card game.CardView) bool {
		return card.Blocking && card.BlockingTarget == attackerID
	})
}

// targetScore rates a target for a spell; ok is false when the target
// works against the caster. Unknown cards are treated as harmful.
func (b *board) targetScore(card *cards.Card, target string) (int, bool) {
	var eff cards.Effect
	if card != nil {
		for _, e := range card.SpellEffects {
			if e.Requirement().Required() {
				eff = e
				break
			}
		}
	}

	if item, ok := b.stack[target]; ok {
		return 1, item.Controller != b.self
	}
	if p, ok := b.players[target]; ok {
		if helpful(eff) {
			return 0, p.ID == b.self
		}
		return 100 - p.Life, p.ID != b.self
	}
	creature, ok := b.cards[target]
	if !ok {
		return 0, false
	}
	if helpful(eff) {
		mine := creature.ControllerID == b.self
		return creature.Power, mine && (creature.Attacking || creature.Blocking)
	}
	if creature.ControllerID == b.self {
		return 0, false
	}
	if eff.Kind == cards.EffectDealDamage && creature.Toughness-creature.Damage > eff.Amount {
		return 0, false
	}
	return 200 + creature.Power, true
}

func helpful(eff cards.Effect) bool {
	switch eff.Kind {
	case cards.EffectPumpCreature, cards.EffectAddCounters, cards.EffectGainLife:
		return true
	}
	return false
}
