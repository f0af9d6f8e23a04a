package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

func TestEntersBattlefieldTrigger(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Island"), cards.ZoneBattlefield)
	h.put("p1", basic("Island"), cards.ZoneBattlefield)
	h.put("p1", basic("Island"), cards.ZoneBattlefield)
	elf := h.put("p1", withTrigger(creature("Elvish Visionary", "{1}{U}", 1, 1), cards.TriggerEntersBattlefield, drawOne()), cards.ZoneHand)

	h.exec("p1", CastSpell{CardID: elf.ID})
	h.passRound()

	require.Equal(t, 1, h.e.stack.Len(), "creature resolved and its trigger went on the stack")
	top, _ := h.e.stack.Peek()
	assert.Equal(t, rules.StackObjectAbility, top.Kind)
	assert.Equal(t, elf.ID, top.SourceID)
	assert.Equal(t, "p1", h.e.stack.Holder())

	h.resolveAll()
	assert.Equal(t, 1, h.player("p1").Hand().Len())
	assert.Equal(t, 0, h.e.triggers.Pending())
}

func TestDiesTriggersUseAPNAPOrder(t *testing.T) {
	h := newHarness(t, 2)
	mine := h.put("p1", withTrigger(creature("Sage", "{2}{U}", 2, 2), cards.TriggerDies, drawOne()), cards.ZoneBattlefield)
	theirs := h.put("p2", withTrigger(creature("Sage", "{2}{U}", 2, 2), cards.TriggerDies,
		cards.Effect{Kind: cards.EffectGainLife, Amount: 3}), cards.ZoneBattlefield)

	h.attackStep()
	h.exec("p1", DeclareAttacker{CreatureID: mine.ID, TargetPlayerID: "p2"})
	h.toBlockers()
	h.exec("p2", DeclareBlocker{BlockerID: theirs.ID, AttackerID: mine.ID})
	h.toDamage()

	stack := h.e.stack.List()
	require.Len(t, stack, 2)
	assert.Equal(t, "p1", stack[0].Controller, "active player's trigger goes on the stack first")
	assert.Equal(t, "p2", stack[1].Controller)

	h.resolveAll()
	assert.Equal(t, 1, h.player("p1").Hand().Len())
	assert.Equal(t, 43, h.player("p2").Life)
}

func TestUpkeepTriggerCondition(t *testing.T) {
	h := newHarness(t, 2)
	warden := func() *cards.Card {
		c := creature("Ajani's Pridemate", "{1}{W}", 2, 2)
		c.Triggers = append(c.Triggers, cards.TriggeredAbility{
			Event:     cards.TriggerUpkeep,
			Condition: cards.ConditionControllerIsActive,
			Effect:    cards.Effect{Kind: cards.EffectGainLife, Amount: 1},
		})
		return c
	}
	h.put("p1", warden(), cards.ZoneBattlefield)
	h.put("p2", warden(), cards.ZoneBattlefield)

	require.NoError(t, h.e.advanceStep())
	require.Equal(t, rules.StepUpkeep, h.e.turn.CurrentStep())
	require.Equal(t, 1, h.e.stack.Len())

	h.resolveAll()
	assert.Equal(t, 41, h.player("p1").Life)
	assert.Equal(t, 40, h.player("p2").Life)
}

func TestTriggerWithoutTargetIsSkipped(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	assassin := h.put("p1", withTrigger(creature("Ravenous Chupacabra", "{2}{B}", 2, 2), cards.TriggerEntersBattlefield,
		cards.Effect{Kind: cards.EffectDestroyCreature, Target: targeting.TargetTypeCreature}), cards.ZoneHand)

	h.exec("p1", CastSpell{CardID: assassin.ID})
	h.passRound()

	assert.Equal(t, cards.ZoneBattlefield, assassin.Zone)
	assert.True(t, h.e.stack.IsEmpty(), "no opposing creature to destroy")
}

func TestHarmfulTriggerTargetsOpponent(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	h.put("p1", basic("Swamp"), cards.ZoneBattlefield)
	own := h.put("p1", bears(), cards.ZoneBattlefield)
	victim := h.put("p2", bears(), cards.ZoneBattlefield)
	assassin := h.put("p1", withTrigger(creature("Ravenous Chupacabra", "{2}{B}", 2, 2), cards.TriggerEntersBattlefield,
		cards.Effect{Kind: cards.EffectDestroyCreature, Target: targeting.TargetTypeCreature}), cards.ZoneHand)

	h.exec("p1", CastSpell{CardID: assassin.ID})
	h.resolveAll()

	assert.Equal(t, cards.ZoneGraveyard, victim.Zone)
	assert.Equal(t, cards.ZoneBattlefield, own.Zone)
}
