package catalog

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
)

// DeckSize is the library size of a Commander deck, commander excluded.
const DeckSize = 99

// Archetype selects the role quotas a deck is built with.
type Archetype string

const (
	ArchetypeRamp     Archetype = "ramp"
	ArchetypeControl  Archetype = "control"
	ArchetypeMidrange Archetype = "midrange"
)

// Archetypes lists every archetype in a stable order.
var Archetypes = []Archetype{ArchetypeRamp, ArchetypeControl, ArchetypeMidrange}

// ParseArchetype accepts an archetype name in any case.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Archetypes, a) {
		return a, nil
	}
	return "", fmt.Errorf("unknown deck archetype %q", s)
}

type role int

const (
	roleRamp role = iota
	roleDraw
	roleRemoval
	roleCounter
	roleCreature
	roleOther
	roleCount
)

// quotas are nonland slots per 99 cards; lands fill the rest.
var quotas = map[Archetype][roleCount]int{
	ArchetypeRamp:     {roleRamp: 12, roleDraw: 10, roleRemoval: 6, roleCounter: 2, roleCreature: 28, roleOther: 5},
	ArchetypeControl:  {roleRamp: 6, roleDraw: 14, roleRemoval: 12, roleCounter: 10, roleCreature: 16, roleOther: 4},
	ArchetypeMidrange: {roleRamp: 8, roleDraw: 10, roleRemoval: 10, roleCounter: 3, roleCreature: 26, roleOther: 6},
}

var basicForColor = map[mana.Color]string{
	mana.White:     "Plains",
	mana.Blue:      "Island",
	mana.Black:     "Swamp",
	mana.Red:       "Mountain",
	mana.Green:     "Forest",
	mana.Colorless: "Wastes",
}

// Deck is a commander with its library.
type Deck struct {
	Archetype Archetype
	Commander *cards.Card
	Cards     []*cards.Card
}

// BuildDeck assembles size cards within the commander's colors. Each role
// cycles through its shuffled candidates, so small pools repeat cards.
// Roles without candidates give their slots to creatures, then to lands.
func BuildDeck(c *Catalog, arch Archetype, commander *cards.Card, size int, rng *rand.Rand) (*Deck, error) {
	quota, ok := quotas[arch]
	if !ok {
		return nil, fmt.Errorf("unknown deck archetype %q", arch)
	}
	if commander == nil || !commander.Commander {
		return nil, fmt.Errorf("deck needs a legendary creature commander")
	}
	if size <= 0 {
		size = DeckSize
	}

	var pools [roleCount][]*cards.Card
	for _, card := range c.Cards() {
		if card.IsLand() || card.Name == commander.Name || !withinIdentity(card, commander) {
			continue
		}
		r := classify(card)
		pools[r] = append(pools[r], card)
	}

	var counts [roleCount]int
	for r := range roleCount {
		counts[r] = quota[r] * size / DeckSize
	}
	for r := range roleCount {
		if r != roleCreature && len(pools[r]) == 0 {
			counts[roleCreature] += counts[r]
			counts[r] = 0
		}
	}
	if len(pools[roleCreature]) == 0 {
		counts[roleCreature] = 0
	}

	deck := &Deck{Archetype: arch, Commander: commander}
	for r := range roleCount {
		deck.Cards = append(deck.Cards, cycle(pools[r], counts[r], rng)...)
	}

	basics, err := basicLands(c, commander)
	if err != nil {
		return nil, err
	}
	for i := 0; len(deck.Cards) < size; i++ {
		deck.Cards = append(deck.Cards, basics[i%len(basics)])
	}
	return deck, nil
}

// withinIdentity reports whether every color of card is a commander color.
func withinIdentity(card, commander *cards.Card) bool {
	for _, color := range card.Colors {
		if !slices.Contains(commander.Colors, color) {
			return false
		}
	}
	return true
}

func classify(card *cards.Card) role {
	effects := slices.Clone(card.SpellEffects)
	for _, ta := range card.Triggers {
		effects = append(effects, ta.Effect)
	}
	has := func(kinds ...cards.EffectKind) bool {
		return slices.ContainsFunc(effects, func(e cards.Effect) bool {
			return slices.Contains(kinds, e.Kind)
		})
	}
	switch {
	case has(cards.EffectSearchBasicLand):
		return roleRamp
	case has(cards.EffectCounterSpell):
		return roleCounter
	case has(cards.EffectDestroyCreature) || (!card.IsCreature() && has(cards.EffectDealDamage)):
		return roleRemoval
	case has(cards.EffectDrawCards):
		return roleDraw
	case card.IsCreature():
		return roleCreature
	}
	return roleOther
}

func cycle(candidates []*cards.Card, n int, rng *rand.Rand) []*cards.Card {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	order := slices.Clone(candidates)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	out := make([]*cards.Card, n)
	for i := range out {
		out[i] = order[i%len(order)]
	}
	return out
}

// basicLands returns one basic per commander color, Wastes for a colorless
// commander.
func basicLands(c *Catalog, commander *cards.Card) ([]*cards.Card, error) {
	colors := commander.Colors
	if len(colors) == 0 {
		colors = []mana.Color{mana.Colorless}
	}
	out := make([]*cards.Card, 0, len(colors))
	for _, color := range colors {
		name := basicForColor[color]
		card, ok := c.Get(name)
		if !ok {
			return nil, fmt.Errorf("catalog has no %s for %s", name, commander.Name)
		}
		out = append(out, card)
	}
	return out, nil
}
