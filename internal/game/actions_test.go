package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/commander-engine-go/internal/game/cards"
)

func kinds(actions []Action) []ActionKind {
	out := make([]ActionKind, len(actions))
	for i, a := range actions {
		out[i] = a.Kind()
	}
	return out
}

func TestLegalActionsInMainPhase(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Forest"), cards.ZoneBattlefield)
	h.put("p1", basic("Forest"), cards.ZoneBattlefield)
	land := h.put("p1", basic("Forest"), cards.ZoneHand)
	bear := h.put("p1", bears(), cards.ZoneHand)
	h.put("p1", creature("Craw Wurm", "{4}{G}{G}", 6, 4), cards.ZoneHand)

	actions := h.e.LegalActions("p1")
	require.Equal(t, []ActionKind{ActionPlayLand, ActionCastSpell, ActionPass}, kinds(actions))
	assert.Equal(t, PlayLand{CardID: land.ID}, actions[0])

	cast := actions[1].(CastSpell)
	assert.Equal(t, bear.ID, cast.CardID)
	assert.Equal(t, "{1}{G}", cast.Cost)
	assert.Equal(t, []string{"creature"}, cast.CardTypes)
	require.NotNil(t, cast.Power)
	assert.Equal(t, 2, *cast.Power)

	assert.Nil(t, h.e.LegalActions("p2"), "only the priority holder may act")
	assert.Nil(t, h.e.LegalActions("p9"))
}

func TestLegalActionsExpandTargets(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Mountain"), cards.ZoneBattlefield)
	h.put("p1", bolt(), cards.ZoneHand)
	bear := h.put("p2", bears(), cards.ZoneBattlefield)

	var targets []string
	for _, a := range h.e.LegalActions("p1") {
		if cast, ok := a.(CastSpell); ok {
			require.Len(t, cast.Targets, 1)
			targets = append(targets, cast.Targets[0])
		}
	}
	assert.Equal(t, []string{"p1", "p2", bear.ID}, targets)
}

func TestLegalActionsIncludeCommanderWithTax(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	for i := 0; i < 5; i++ {
		h.put("p1", basic("Forest"), cards.ZoneBattlefield)
	}
	cmdr := h.put("p1", creature("Omnath", "{2}{G}", 4, 4), cards.ZoneCommand)
	p1 := h.player("p1")
	p1.CommanderID = cmdr.ID
	p1.CommandTax = 2

	actions := h.e.LegalActions("p1")
	require.Len(t, actions, 2)
	cast := actions[0].(CastSpell)
	assert.Equal(t, cmdr.ID, cast.CardID)
	assert.Equal(t, "{4}{G}", cast.Cost)

	p1.CommandTax = 4
	assert.Equal(t, []ActionKind{ActionPass}, kinds(h.e.LegalActions("p1")))
}

func TestLegalCombatActions(t *testing.T) {
	h := newHarness(t, 3)
	attacker := h.put("p1", bears(), cards.ZoneBattlefield)
	sick := h.put("p1", bears(), cards.ZoneBattlefield)
	sick.SummoningSick = true
	blocker := h.put("p3", bears(), cards.ZoneBattlefield)
	h.put("p2", bears(), cards.ZoneBattlefield)

	h.attackStep()
	actions := h.e.LegalActions("p1")
	require.Equal(t, []ActionKind{ActionDeclareAttacker, ActionDeclareAttacker, ActionPass}, kinds(actions))
	assert.Equal(t, DeclareAttacker{CreatureID: attacker.ID, TargetPlayerID: "p2", Power: 2, Toughness: 2}, actions[0])
	assert.Equal(t, "p3", actions[1].(DeclareAttacker).TargetPlayerID)

	h.exec("p1", actions[1])
	h.toBlockers()
	assert.Equal(t, []ActionKind{ActionPass}, kinds(h.e.LegalActions("p2")), "p2 is not under attack")

	h.exec("p2", Pass{})
	actions = h.e.LegalActions("p3")
	require.Equal(t, []ActionKind{ActionDeclareBlocker, ActionPass}, kinds(actions))
	block := actions[0].(DeclareBlocker)
	assert.Equal(t, blocker.ID, block.BlockerID)
	assert.Equal(t, attacker.ID, block.AttackerID)
}

func TestLegalActionsAllSucceed(t *testing.T) {
	for i := 0; ; i++ {
		h := newHarness(t, 2)
		h.main()
		h.put("p1", basic("Mountain"), cards.ZoneBattlefield)
		h.put("p1", basic("Forest"), cards.ZoneBattlefield)
		h.put("p1", basic("Forest"), cards.ZoneHand)
		h.put("p1", bears(), cards.ZoneHand)
		h.put("p1", bolt(), cards.ZoneHand)
		h.put("p2", bears(), cards.ZoneBattlefield)

		actions := h.e.LegalActions("p1")
		if i == len(actions) {
			break
		}
		res := h.e.Execute("p1", actions[i])
		assert.True(t, res.Success, "%s: %s", describeAction(actions[i]), res.Message)
	}
}

func TestExecuteRejectionsLeaveStateUnchanged(t *testing.T) {
	h := newHarness(t, 2)
	h.main()
	h.put("p1", basic("Forest"), cards.ZoneBattlefield)
	land := h.put("p1", basic("Forest"), cards.ZoneHand)
	wurm := h.put("p1", creature("Craw Wurm", "{4}{G}{G}", 6, 4), cards.ZoneHand)
	bear := h.put("p1", bears(), cards.ZoneBattlefield)
	theirs := h.put("p2", bears(), cards.ZoneBattlefield)
	h.player("p1").LandPlayed = true

	tests := []struct {
		name     string
		playerID string
		action   Action
	}{
		{"nil action", "p1", nil},
		{"unknown player", "p9", Pass{}},
		{"not holding priority", "p2", Pass{}},
		{"second land", "p1", PlayLand{CardID: land.ID}},
		{"land cast as spell", "p1", CastSpell{CardID: land.ID}},
		{"card not in hand", "p1", CastSpell{CardID: theirs.ID}},
		{"unaffordable", "p1", CastSpell{CardID: wurm.ID}},
		{"attack outside combat", "p1", DeclareAttacker{CreatureID: bear.ID, TargetPlayerID: "p2"}},
		{"block on own turn", "p1", DeclareBlocker{BlockerID: bear.ID, AttackerID: theirs.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := h.e.Digest()
			res := h.e.Execute(tt.playerID, tt.action)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, before, h.e.Digest())
		})
	}
}

func TestExecuteBeforeStart(t *testing.T) {
	e := NewEngine(testRules(), nil)
	res := e.Execute("p1", Pass{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, ErrGameNotStarted.Error())
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "play_land", ActionPlayLand.String())
	assert.Equal(t, "cast_spell", ActionCastSpell.String())
	assert.Equal(t, "declare_attacker", ActionDeclareAttacker.String())
	assert.Equal(t, "declare_blocker", ActionDeclareBlocker.String())
	assert.Equal(t, "pass", ActionPass.String())
	assert.Equal(t, "ACTION_9", ActionKind(9).String())
	assert.Equal(t, "STEP_ENDED", PassOutcomeStepEnded.String())
}
