package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/commander-engine-go/internal/config"
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// harness drives an engine directly, bypassing locks; tests are single
// threaded.
type harness struct {
	t       *testing.T
	e       *Engine
	players []string
}

func testRules() config.Rules {
	r := config.DefaultRules()
	r.OpeningHandSize = 0
	return r
}

// newHarness seats n players with 20-card filler libraries and starts the
// game at player one's untap step.
func newHarness(t *testing.T, n int, opts ...Option) *harness {
	return newHarnessWithRules(t, testRules(), n, opts...)
}

func newHarnessWithRules(t *testing.T, r config.Rules, n int, opts ...Option) *harness {
	t.Helper()
	opts = append([]Option{WithSeed(42)}, opts...)
	e := NewEngine(r, zaptest.NewLogger(t), opts...)
	h := &harness{t: t, e: e}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		deck := make([]*cards.Card, 20)
		for j := range deck {
			deck[j] = filler()
		}
		require.NoError(t, e.AddPlayer(PlayerSetup{ID: id, Name: "Player " + id, Deck: deck}))
		h.players = append(h.players, id)
	}
	require.NoError(t, e.StartGame())
	return h
}

func (h *harness) player(id string) *Player {
	h.t.Helper()
	p, err := h.e.player(id)
	require.NoError(h.t, err)
	return p
}

// put creates an instance of card owned by playerID directly in zone.
// Battlefield instances are not summoning sick.
func (h *harness) put(playerID string, card *cards.Card, zone cards.Zone) *cards.Instance {
	h.t.Helper()
	p := h.player(playerID)
	inst := cards.NewInstance(card, playerID)
	inst.Zone = zone
	if zone == cards.ZoneBattlefield {
		inst.SummoningSick = false
	}
	h.e.instances[inst.ID] = inst
	p.Zone(zone).Add(inst.ID)
	return inst
}

// commander seats card as the player's commander on the battlefield.
func (h *harness) commander(playerID string, card *cards.Card) *cards.Instance {
	inst := h.put(playerID, card, cards.ZoneBattlefield)
	h.player(playerID).CommanderID = inst.ID
	return inst
}

// goTo jumps to a step of the current turn without its turn-based actions
// and gives the active player priority.
func (h *harness) goTo(phase rules.Phase, step rules.Step) {
	h.t.Helper()
	require.NoError(h.t, h.e.turn.SetPosition(phase, step))
	h.e.resetPriority()
}

func (h *harness) main() {
	h.goTo(rules.PhasePrecombatMain, rules.StepMain)
}

// exec runs an action and requires it to succeed.
func (h *harness) exec(playerID string, action Action) Result {
	h.t.Helper()
	res := h.e.Execute(playerID, action)
	require.True(h.t, res.Success, "%s %s: %s", playerID, action.Kind(), res.Message)
	return res
}

// passRound has every alive player pass once, starting with the holder.
func (h *harness) passRound() {
	h.t.Helper()
	for range h.e.aliveIDs() {
		h.exec(h.e.stack.Holder(), Pass{})
	}
}

// resolveAll passes until the stack is empty.
func (h *harness) resolveAll() {
	h.t.Helper()
	for i := 0; !h.e.stack.IsEmpty(); i++ {
		require.Less(h.t, i, 100, "stack never emptied")
		_, err := h.e.passPriority(h.e.stack.Holder())
		require.NoError(h.t, err)
	}
}

func (h *harness) ownedInstances(playerID string) int {
	n := 0
	for _, inst := range h.e.instances {
		if inst.OwnerID == playerID {
			n++
		}
	}
	return n
}

// zoneMemberships counts how many zone lists, the stack included, hold
// each of the player's instances.
func (h *harness) zoneMemberships(playerID string) map[string]int {
	seen := map[string]int{}
	p := h.player(playerID)
	for _, z := range cards.PlayerZones {
		for _, id := range p.Zone(z).IDs() {
			seen[id]++
		}
	}
	for _, id := range h.e.stackZone.IDs() {
		if h.e.instances[id].OwnerID == playerID {
			seen[id]++
		}
	}
	return seen
}

func (h *harness) requireConsistentZones(playerID string) {
	h.t.Helper()
	seen := h.zoneMemberships(playerID)
	require.Len(h.t, seen, h.ownedInstances(playerID))
	for id, n := range seen {
		require.Equal(h.t, 1, n, "instance %s is in %d zones", id, n)
		require.NotNil(h.t, h.e.instances[id])
	}
}

func filler() *cards.Card {
	return &cards.Card{ID: "wastes", Name: "Wastes", Types: []cards.Type{cards.TypeLand}, Produces: mana.Colorless}
}

func basic(name string) *cards.Card {
	return &cards.Card{ID: name, Name: name, Types: []cards.Type{cards.TypeLand}}
}

func creature(name, cost string, power, toughness int) *cards.Card {
	return &cards.Card{
		ID:        name,
		Name:      name,
		Cost:      mana.MustParseCost(cost),
		Types:     []cards.Type{cards.TypeCreature},
		Power:     cards.Stat(power),
		Toughness: cards.Stat(toughness),
	}
}

func bears() *cards.Card {
	return creature("Grizzly Bears", "{1}{G}", 2, 2)
}

func withTrigger(card *cards.Card, event cards.TriggerEvent, eff cards.Effect) *cards.Card {
	card.Triggers = append(card.Triggers, cards.TriggeredAbility{Event: event, Effect: eff})
	return card
}

func drawOne() cards.Effect {
	return cards.Effect{Kind: cards.EffectDrawCards, Amount: 1}
}

func spell(name, cost string, t cards.Type, effects ...cards.Effect) *cards.Card {
	return &cards.Card{
		ID:           name,
		Name:         name,
		Cost:         mana.MustParseCost(cost),
		Types:        []cards.Type{t},
		SpellEffects: effects,
	}
}

func bolt() *cards.Card {
	return spell("Lightning Bolt", "{R}", cards.TypeInstant,
		cards.Effect{Kind: cards.EffectDealDamage, Amount: 3, Target: targeting.TargetTypeAny})
}

func counterspell() *cards.Card {
	return spell("Counterspell", "{U}{U}", cards.TypeInstant,
		cards.Effect{Kind: cards.EffectCounterSpell, Target: targeting.TargetTypeSpell})
}

func divination() *cards.Card {
	return spell("Divination", "{2}{U}", cards.TypeSorcery, cards.Effect{Kind: cards.EffectDrawCards, Amount: 2})
}
