package catalog

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

func newParser(t *testing.T) *OracleParser {
	t.Helper()
	p, err := NewOracleParser()
	require.NoError(t, err)
	return p
}

func TestOracleSpellEffects(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name string
		card string
		text string
		want []cards.Effect
	}{
		{
			name: "damage to any target",
			card: "Lightning Bolt",
			text: "Lightning Bolt deals 3 damage to any target.",
			want: []cards.Effect{{Kind: cards.EffectDealDamage, Amount: 3, Target: targeting.TargetTypeAny}},
		},
		{
			name: "damage to a player",
			card: "Lava Spike",
			text: "Lava Spike deals 3 damage to target player.",
			want: []cards.Effect{{Kind: cards.EffectDealDamage, Amount: 3, Target: targeting.TargetTypePlayer}},
		},
		{
			name: "counter",
			card: "Counterspell",
			text: "Counter target spell.",
			want: []cards.Effect{{Kind: cards.EffectCounterSpell, Target: targeting.TargetTypeSpell}},
		},
		{
			name: "counter noncreature",
			card: "Negate",
			text: "Counter target noncreature spell.",
			want: []cards.Effect{{Kind: cards.EffectCounterSpell, Target: targeting.TargetTypeNoncreatureSpell}},
		},
		{
			name: "pump",
			card: "Giant Growth",
			text: "Target creature gets +3/+3 until end of turn.",
			want: []cards.Effect{{Kind: cards.EffectPumpCreature, Power: 3, Toughness: 3, Target: targeting.TargetTypeCreature}},
		},
		{
			name: "two sentences",
			card: "Night's Whisper",
			text: "Draw two cards. You lose 2 life.",
			want: []cards.Effect{
				{Kind: cards.EffectDrawCards, Amount: 2},
				{Kind: cards.EffectLoseLife, Amount: 2},
			},
		},
		{
			name: "targeted life loss",
			card: "Drain",
			text: "Target player loses 2 life.",
			want: []cards.Effect{{Kind: cards.EffectLoseLife, Amount: 2, Target: targeting.TargetTypePlayer}},
		},
		{
			name: "tokens",
			card: "Raise the Alarm",
			text: "Create two 1/1 white Soldier creature tokens.",
			want: []cards.Effect{
				{Kind: cards.EffectCreateToken, Power: 1, Toughness: 1},
				{Kind: cards.EffectCreateToken, Power: 1, Toughness: 1},
			},
		},
		{
			name: "targeted opponent life loss",
			card: "Sign in Blood",
			text: "Target opponent loses 2 life.",
			want: []cards.Effect{{Kind: cards.EffectLoseLife, Amount: 2, Target: targeting.TargetTypeOpponent}},
		},
		{
			name: "token count is capped",
			card: "Army",
			text: "Create 500 1/1 white Soldier creature tokens.",
			want: slices.Repeat([]cards.Effect{{Kind: cards.EffectCreateToken, Power: 1, Toughness: 1}}, maxTokensPerEffect),
		},
		{
			name: "counters",
			card: "Battlegrowth",
			text: "Put a +1/+1 counter on target creature.",
			want: []cards.Effect{{Kind: cards.EffectAddCounters, Amount: 1, Target: targeting.TargetTypeCreature}},
		},
		{
			name: "destroy",
			card: "Murder",
			text: "Destroy target creature.",
			want: []cards.Effect{{Kind: cards.EffectDestroyCreature, Target: targeting.TargetTypeCreature}},
		},
		{
			name: "land search",
			card: "Rampant Growth",
			text: "Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.",
			want: []cards.Effect{{Kind: cards.EffectSearchBasicLand}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.card, tt.text)
			assert.Empty(t, got.Ignored)
			assert.Equal(t, tt.want, got.Effects)
			assert.Empty(t, got.Triggers)
		})
	}
}

func TestOracleTriggers(t *testing.T) {
	p := newParser(t)

	t.Run("keyword and enters trigger", func(t *testing.T) {
		got := p.Parse("Mulldrifter", "Flying\nWhen Mulldrifter enters the battlefield, draw two cards.")
		assert.Empty(t, got.Ignored)
		assert.Equal(t, []cards.Keyword{cards.KeywordFlying}, got.Keywords)
		require.Len(t, got.Triggers, 1)
		assert.Equal(t, cards.TriggerEntersBattlefield, got.Triggers[0].Event)
		assert.Equal(t, cards.ConditionAlways, got.Triggers[0].Condition)
		assert.Equal(t, cards.Effect{Kind: cards.EffectDrawCards, Amount: 2}, got.Triggers[0].Effect)
	})

	t.Run("upkeep trigger splits into one ability per effect", func(t *testing.T) {
		got := p.Parse("Phyrexian Arena", "At the beginning of your upkeep, you draw a card and you lose 1 life.")
		assert.Empty(t, got.Ignored)
		require.Len(t, got.Triggers, 2)
		for _, ta := range got.Triggers {
			assert.Equal(t, cards.TriggerUpkeep, ta.Event)
			assert.Equal(t, cards.ConditionControllerIsActive, ta.Condition)
		}
		assert.Equal(t, cards.EffectDrawCards, got.Triggers[0].Effect.Kind)
		assert.Equal(t, cards.EffectLoseLife, got.Triggers[1].Effect.Kind)
	})

	t.Run("each end step has no condition", func(t *testing.T) {
		got := p.Parse("Clock", "At the beginning of each end step, you gain 1 life.")
		require.Len(t, got.Triggers, 1)
		assert.Equal(t, cards.TriggerEndStep, got.Triggers[0].Event)
		assert.Equal(t, cards.ConditionAlways, got.Triggers[0].Condition)
	})

	t.Run("dies trigger with damage", func(t *testing.T) {
		got := p.Parse("Pitchburn Devils", "When Pitchburn Devils dies, it deals 3 damage to any target.")
		require.Len(t, got.Triggers, 1)
		assert.Equal(t, cards.TriggerDies, got.Triggers[0].Event)
		assert.Equal(t, cards.Effect{Kind: cards.EffectDealDamage, Amount: 3, Target: targeting.TargetTypeAny}, got.Triggers[0].Effect)
	})

	t.Run("cast trigger", func(t *testing.T) {
		got := p.Parse("Fireball Kid", "When you cast Fireball Kid, you gain 1 life.")
		require.Len(t, got.Triggers, 1)
		assert.Equal(t, cards.TriggerCast, got.Triggers[0].Event)
		assert.Equal(t, cards.EffectGainLife, got.Triggers[0].Effect.Kind)
	})

	t.Run("self pump on attack", func(t *testing.T) {
		got := p.Parse("Raging Goblin", "Whenever Raging Goblin attacks, Raging Goblin gets +1/+0 until end of turn.")
		require.Len(t, got.Triggers, 1)
		assert.Equal(t, cards.TriggerAttacks, got.Triggers[0].Event)
		assert.Equal(t, cards.Effect{Kind: cards.EffectPumpCreature, Power: 1, Toughness: 0, Target: targeting.TargetTypeCreature}, got.Triggers[0].Effect)
	})
}

func TestOracleUnsupportedText(t *testing.T) {
	p := newParser(t)

	t.Run("short legendary name", func(t *testing.T) {
		got := p.Parse("Ruric Thar, the Unbowed", "Vigilance\nRuric Thar attacks each combat if able.")
		assert.Equal(t, []cards.Keyword{cards.KeywordVigilance}, got.Keywords)
		assert.Equal(t, []string{"~ attacks each combat if able"}, got.Ignored)
	})

	t.Run("reminder text is dropped", func(t *testing.T) {
		got := p.Parse("Bird", "Flying (This creature can't be blocked except by creatures with flying or reach.)")
		assert.Equal(t, []cards.Keyword{cards.KeywordFlying}, got.Keywords)
		assert.Empty(t, got.Ignored)
	})

	t.Run("targeted life gain is rejected", func(t *testing.T) {
		got := p.Parse("Gift", "Target player gains 2 life.")
		assert.Empty(t, got.Effects)
		assert.Len(t, got.Ignored, 1)
	})

	t.Run("activated ability", func(t *testing.T) {
		got := p.Parse("Llanowar Elves", "{T}: Add {G}.")
		assert.Empty(t, got.Effects)
		assert.Empty(t, got.Triggers)
		assert.Len(t, got.Ignored, 1)
	})
}
