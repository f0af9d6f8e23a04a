package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// Oracle sentences are parsed one at a time after lowercasing, dropping
// reminder text and replacing the card's own name with "~".
var oracleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Boost", Pattern: `[+-]\d+/[+-]\d+`},
	{Name: "Stat", Pattern: `\d+/\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Word", Pattern: `[a-z~][a-z~'-]*`},
	{Name: "Punct", Pattern: `[,:;]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

type oracleSentence struct {
	Keywords  []string       `  @( "flying" | "haste" | "vigilance" | "trample" | "flash" | "defender" ) ( "," @( "flying" | "haste" | "vigilance" | "trample" | "flash" | "defender" ) )*`
	Triggered *triggeredText `| @@`
	Effects   *effectChain   `| @@`
}

type triggeredText struct {
	Event   *triggerEvent `@@ ","`
	Effects *effectChain  `@@`
}

type triggerEvent struct {
	Cast   string `  ( "when" | "whenever" ) "you" @"cast" "~"`
	Action string `| ( "when" | "whenever" ) "~" @( "enters" | "dies" | "attacks" | "blocks" ) ( "the" "battlefield" )?`
	Whose  string `| "at" "the" "beginning" "of" @( "your" | "each" )`
	Step   string `  @( "upkeep" | "end" ) "step"?`
}

type effectChain struct {
	Effects []*effectText `@@ ( ( "and" | "then" ) @@ )*`
}

type effectText struct {
	Draw    *drawText     `  @@`
	Damage  *damageText   `| @@`
	Life    *lifeText     `| @@`
	Counter *counterText  `| @@`
	Pump    *pumpText     `| @@`
	Put     *countersText `| @@`
	Destroy *destroyText  `| @@`
	Search  *searchText   `| @@`
	Token   *tokenText    `| @@`
}

type targetText struct {
	Self bool   `  @"~"`
	Any  bool   `| "any" @"target"`
	Kind string `| "target" @( "creature" | "player" | "opponent" | "spell" | "noncreature" ) "spell"?`
}

type drawText struct {
	Verb   string `"you"? @( "draw" | "draws" )`
	Amount string `@( "a" | "an" | "one" | "two" | "three" | "four" | "five" | Int ) ( "card" | "cards" )`
}

type damageText struct {
	Verb   string      `( "~" | "it" ) @( "deals" | "deal" )`
	Amount int         `@Int "damage" "to"`
	Target *targetText `@@`
}

type lifeText struct {
	Target *targetText `( "you" | @@ )?`
	Verb   string      `@( "gain" | "gains" | "lose" | "loses" )`
	Amount int         `@Int "life"`
}

type counterText struct {
	Verb   string      `@"counter"`
	Target *targetText `@@`
}

type pumpText struct {
	Target *targetText `@@`
	Verb   string      `@"gets"`
	Boost  string      `@Boost ( "until" "end" "of" "turn" )?`
}

type countersText struct {
	Verb   string      `@"put"`
	Amount string      `@( "a" | "an" | "one" | "two" | "three" | Int )`
	Kind   string      `@Boost ( "counter" | "counters" ) "on"`
	Target *targetText `@@`
}

type destroyText struct {
	Verb   string      `@"destroy"`
	Target *targetText `@@`
}

type searchText struct {
	Verb string `@"search" "your" "library" "for" "a" "basic" "land" "card" "," "put" "it" "onto" "the" "battlefield" "tapped" "," "then" "shuffle"`
}

type tokenText struct {
	Verb   string   `@"create"`
	Amount string   `@( "a" | "an" | "one" | "two" | "three" | "four" | Int )`
	Stat   string   `@Stat`
	Words  []string `@Word*`
}

// maxTokensPerEffect caps "Create N ..." so a large N cannot flood the
// battlefield.
const maxTokensPerEffect = 10

var (
	reminderText = regexp.MustCompile(`\([^)]*\)`)
	numberWords  = map[string]int{"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5}
)

// Abilities is what the parser could read out of a card's oracle text.
type Abilities struct {
	Keywords []cards.Keyword
	Triggers []cards.TriggeredAbility

	// Effects are the instructions of an instant or sorcery.
	Effects []cards.Effect

	// Ignored lists sentences outside the supported grammar.
	Ignored []string
}

// OracleParser reads the supported subset of rules text.
type OracleParser struct {
	parser *participle.Parser[oracleSentence]
}

// NewOracleParser builds the grammar.
func NewOracleParser() (*OracleParser, error) {
	p, err := participle.Build[oracleSentence](
		participle.Lexer(oracleLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	)
	if err != nil {
		return nil, err
	}
	return &OracleParser{parser: p}, nil
}

// Parse reads text sentence by sentence. Sentences the grammar does not
// cover are reported in Ignored and contribute nothing.
func (p *OracleParser) Parse(name, text string) Abilities {
	var out Abilities
	for _, sentence := range sentences(name, text) {
		parsed, err := p.parser.ParseString("", sentence)
		if err != nil || !out.add(parsed, sentence) {
			out.Ignored = append(out.Ignored, sentence)
		}
	}
	return out
}

func sentences(name, text string) []string {
	text = strings.ToLower(reminderText.ReplaceAllString(text, ""))
	if name != "" {
		name = strings.ToLower(name)
		text = strings.ReplaceAll(text, name, "~")
		// Legendary names are shortened in rules text: "Ruric Thar, the Unbowed" is "Ruric Thar".
		if short, _, ok := strings.Cut(name, ","); ok {
			text = strings.ReplaceAll(text, short, "~")
		}
	}
	var out []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '\n' }) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (a *Abilities) add(s *oracleSentence, text string) bool {
	switch {
	case len(s.Keywords) > 0:
		for _, kw := range s.Keywords {
			a.Keywords = append(a.Keywords, cards.Keyword(kw))
		}
		return true
	case s.Triggered != nil:
		event, condition, ok := s.Triggered.Event.convert()
		if !ok {
			return false
		}
		effects, ok := s.Triggered.Effects.convert()
		if !ok {
			return false
		}
		for _, eff := range effects {
			a.Triggers = append(a.Triggers, cards.TriggeredAbility{
				Event:     event,
				Condition: condition,
				Effect:    eff,
				Text:      text,
			})
		}
		return true
	case s.Effects != nil:
		effects, ok := s.Effects.convert()
		if !ok {
			return false
		}
		a.Effects = append(a.Effects, effects...)
		return true
	}
	return false
}

func (t *triggerEvent) convert() (cards.TriggerEvent, cards.ConditionKind, bool) {
	switch {
	case t.Cast != "":
		return cards.TriggerCast, cards.ConditionAlways, true
	case t.Action != "":
		switch t.Action {
		case "enters":
			return cards.TriggerEntersBattlefield, cards.ConditionAlways, true
		case "dies":
			return cards.TriggerDies, cards.ConditionAlways, true
		case "attacks":
			return cards.TriggerAttacks, cards.ConditionAlways, true
		case "blocks":
			return cards.TriggerBlocks, cards.ConditionAlways, true
		}
	case t.Step != "":
		condition := cards.ConditionAlways
		if t.Whose == "your" {
			condition = cards.ConditionControllerIsActive
		}
		if t.Step == "upkeep" {
			return cards.TriggerUpkeep, condition, true
		}
		return cards.TriggerEndStep, condition, true
	}
	return 0, 0, false
}

func (c *effectChain) convert() ([]cards.Effect, bool) {
	var out []cards.Effect
	for _, e := range c.Effects {
		effects, ok := e.convert()
		if !ok {
			return nil, false
		}
		out = append(out, effects...)
	}
	return out, len(out) > 0
}

func (e *effectText) convert() ([]cards.Effect, bool) {
	one := func(eff cards.Effect) ([]cards.Effect, bool) { return []cards.Effect{eff}, true }

	switch {
	case e.Draw != nil:
		return one(cards.Effect{Kind: cards.EffectDrawCards, Amount: count(e.Draw.Amount)})
	case e.Damage != nil:
		tt, ok := e.Damage.Target.harmful()
		if !ok {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectDealDamage, Amount: e.Damage.Amount, Target: tt})
	case e.Life != nil:
		gain := e.Life.Verb == "gain" || e.Life.Verb == "gains"
		if e.Life.Target == nil {
			kind := cards.EffectLoseLife
			if gain {
				kind = cards.EffectGainLife
			}
			return one(cards.Effect{Kind: kind, Amount: e.Life.Amount})
		}
		if gain {
			return nil, false
		}
		tt, ok := e.Life.Target.harmful()
		if !ok || (tt != targeting.TargetTypePlayer && tt != targeting.TargetTypeOpponent) {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectLoseLife, Amount: e.Life.Amount, Target: tt})
	case e.Counter != nil:
		tt, ok := e.Counter.Target.harmful()
		if !ok || (tt != targeting.TargetTypeSpell && tt != targeting.TargetTypeNoncreatureSpell) {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectCounterSpell, Target: tt})
	case e.Pump != nil:
		power, toughness, ok := boost(e.Pump.Boost)
		if !ok || !e.Pump.Target.creature() {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectPumpCreature, Power: power, Toughness: toughness, Target: targeting.TargetTypeCreature})
	case e.Put != nil:
		if e.Put.Kind != "+1/+1" || !e.Put.Target.creature() {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectAddCounters, Amount: count(e.Put.Amount), Target: targeting.TargetTypeCreature})
	case e.Destroy != nil:
		if e.Destroy.Target.Kind != "creature" {
			return nil, false
		}
		return one(cards.Effect{Kind: cards.EffectDestroyCreature, Target: targeting.TargetTypeCreature})
	case e.Search != nil:
		return one(cards.Effect{Kind: cards.EffectSearchBasicLand})
	case e.Token != nil:
		return e.Token.convert()
	}
	return nil, false
}

func (t *tokenText) convert() ([]cards.Effect, bool) {
	power, toughness, ok := boost(t.Stat)
	if !ok || len(t.Words) == 0 {
		return nil, false
	}
	last := t.Words[len(t.Words)-1]
	if last != "token" && last != "tokens" {
		return nil, false
	}
	n := min(count(t.Amount), maxTokensPerEffect)
	out := make([]cards.Effect, n)
	for i := range out {
		out[i] = cards.Effect{Kind: cards.EffectCreateToken, Power: power, Toughness: toughness}
	}
	return out, n > 0
}

// harmful maps a target phrase for damage, life loss and countering.
func (t *targetText) harmful() (targeting.TargetType, bool) {
	switch {
	case t == nil || t.Self:
		return targeting.TargetTypeNone, false
	case t.Any:
		return targeting.TargetTypeAny, true
	}
	switch t.Kind {
	case "creature":
		return targeting.TargetTypeCreature, true
	case "player":
		return targeting.TargetTypePlayer, true
	case "opponent":
		return targeting.TargetTypeOpponent, true
	case "spell":
		return targeting.TargetTypeSpell, true
	case "noncreature":
		return targeting.TargetTypeNoncreatureSpell, true
	}
	return targeting.TargetTypeNone, false
}

// creature reports whether the phrase picks a creature; "~" counts, since
// helpful triggers choose their own source first.
func (t *targetText) creature() bool {
	return t != nil && (t.Self || t.Kind == "creature")
}

func count(s string) int {
	if n, ok := numberWords[s]; ok {
		return n
	}
	n, _ := strconv.Atoi(s)
	return n
}

// boost splits "+3/+3" or "2/2" into its two numbers.
func boost(s string) (int, int, bool) {
	p, t, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, false
	}
	power, err1 := strconv.Atoi(p)
	toughness, err2 := strconv.Atoi(t)
	return power, toughness, err1 == nil && err2 == nil
}
