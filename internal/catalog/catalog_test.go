package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
)

func builtinCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewBuiltin(zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestBuiltinCatalog(t *testing.T) {
	c := builtinCatalog(t)
	assert.Equal(t, len(Builtin()), c.Len())

	forest, ok := c.Get("forest")
	require.True(t, ok)
	assert.True(t, forest.IsBasicLand())
	assert.Equal(t, mana.Green, forest.Produces)

	bolt, ok := c.Get(" LIGHTNING BOLT ")
	require.True(t, ok)
	assert.Equal(t, "lightning_bolt", bolt.ID)
	assert.Equal(t, []mana.Color{mana.Red}, bolt.Colors)
	require.Len(t, bolt.SpellEffects, 1)
	assert.Equal(t, cards.EffectDealDamage, bolt.SpellEffects[0].Kind)

	solemn, ok := c.Get("Solemn Simulacrum")
	require.True(t, ok)
	assert.Empty(t, solemn.Colors)
	require.Len(t, solemn.Triggers, 2)
	assert.Equal(t, cards.TriggerEntersBattlefield, solemn.Triggers[0].Event)
	assert.Equal(t, cards.EffectSearchBasicLand, solemn.Triggers[0].Effect.Kind)
	assert.Equal(t, cards.TriggerDies, solemn.Triggers[1].Event)

	kaalia, ok := c.Get("Kaalia of the Vast")
	require.True(t, ok)
	assert.True(t, kaalia.Commander)
	assert.Equal(t, []mana.Color{mana.White, mana.Black, mana.Red}, kaalia.Colors)
	assert.True(t, kaalia.HasKeyword(cards.KeywordFlying))

	for _, commander := range c.Commanders() {
		assert.True(t, commander.IsCreature(), commander.Name)
	}
	assert.Len(t, c.Commanders(), 10)
}

func TestBuildCard(t *testing.T) {
	p := newParser(t)

	t.Run("legendary non-creature is not a commander", func(t *testing.T) {
		card, _, err := BuildCard(p, Record{Name: "Relic", ManaCost: "{3}", Types: []string{"Artifact"}, Legendary: true})
		require.NoError(t, err)
		assert.False(t, card.Commander)
		assert.Equal(t, cards.TypeArtifact, card.Types[0])
	})

	t.Run("spell text on a permanent is reported", func(t *testing.T) {
		_, ignored, err := BuildCard(p, Record{Name: "Odd Wall", ManaCost: "{1}", Types: []string{"creature"}, Power: cards.Stat(0), Toughness: cards.Stat(3), OracleText: "Draw a card."})
		require.NoError(t, err)
		assert.Contains(t, ignored, "spell text on a permanent")
	})

	errs := []struct {
		name string
		rec  Record
	}{
		{"no name", Record{Types: []string{"instant"}}},
		{"bad cost", Record{Name: "Hybrid", ManaCost: "{G/W}", Types: []string{"instant"}}},
		{"no types", Record{Name: "Blank"}},
		{"unknown type", Record{Name: "Tribal Thing", Types: []string{"tribal"}}},
		{"creature without stats", Record{Name: "Ghost", ManaCost: "{1}", Types: []string{"creature"}}},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildCard(p, tt.rec)
			assert.Error(t, err)
		})
	}
}

func TestCatalogAddReplacesByName(t *testing.T) {
	c := New(newParser(t), zaptest.NewLogger(t))
	_, err := c.Add(Record{Name: "Grizzly Bears", ManaCost: "{1}{G}", Types: []string{"creature"}, Power: cards.Stat(2), Toughness: cards.Stat(2)})
	require.NoError(t, err)
	_, err = c.Add(Record{Name: "grizzly bears", ManaCost: "{1}{G}", Types: []string{"creature"}, Power: cards.Stat(3), Toughness: cards.Stat(3)})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	bears, ok := c.Get("Grizzly Bears")
	require.True(t, ok)
	assert.Equal(t, 3, bears.BasePower())

	err = c.AddAll([]Record{{Name: "Bad"}, {Name: "Worse"}, {Name: "Opt", ManaCost: "{U}", Types: []string{"instant"}, OracleText: "Draw a card."}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
	assert.Contains(t, err.Error(), "Worse")
	assert.Equal(t, 2, c.Len())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "nights_whisper", Slug("Night's Whisper"))
	assert.Equal(t, "ruric_thar_the_unbowed", Slug("Ruric Thar, the Unbowed"))
	assert.Equal(t, "wall_of_omens", Slug(" Wall of Omens "))
}
