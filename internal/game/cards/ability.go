package cards

import (
	"fmt"

	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// TriggerEvent is the game event a triggered ability listens for.
type TriggerEvent int

const (
	TriggerEntersBattlefield TriggerEvent = iota
	TriggerDies
	TriggerAttacks
	TriggerBlocks
	TriggerUpkeep
	TriggerEndStep
	TriggerCast
)

var triggerEventNames = map[TriggerEvent]string{
	TriggerEntersBattlefield: "ETB",
	TriggerDies:              "DIES",
	TriggerAttacks:           "ATTACKS",
	TriggerBlocks:            "BLOCKS",
	TriggerUpkeep:            "UPKEEP",
	TriggerEndStep:           "END_STEP",
	TriggerCast:              "CAST",
}

func (e TriggerEvent) String() string {
	if name, ok := triggerEventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("TRIGGER_%d", int(e))
}

// ConditionKind is an intervening condition checked when a trigger fires.
type ConditionKind int

const (
	ConditionAlways ConditionKind = iota
	ConditionControllerIsActive
	ConditionControllerIsNotActive
	ConditionSourceIsCommander
)

// ConditionContext carries what a condition needs to be evaluated.
type ConditionContext struct {
	ControllerID   string
	ActivePlayerID string
	Source         *Card
}

// EvaluateCondition interprets a condition kind.
func EvaluateCondition(kind ConditionKind, ctx ConditionContext) bool {
	switch kind {
	case ConditionAlways:
		return true
	case ConditionControllerIsActive:
		return ctx.ControllerID == ctx.ActivePlayerID
	case ConditionControllerIsNotActive:
		return ctx.ControllerID != ctx.ActivePlayerID
	case ConditionSourceIsCommander:
		return ctx.Source != nil && ctx.Source.Commander
	default:
		return false
	}
}

// EffectKind enumerates the effect bodies the engine knows how to run.
type EffectKind int

const (
	EffectDrawCards EffectKind = iota
	EffectDealDamage
	EffectGainLife
	EffectLoseLife
	EffectSearchBasicLand
	EffectCounterSpell
	EffectPumpCreature
	EffectAddCounters
	EffectDestroyCreature
	EffectCreateToken
)

var effectKindNames = map[EffectKind]string{
	EffectDrawCards:       "draw_cards",
	EffectDealDamage:      "deal_damage",
	EffectGainLife:        "gain_life",
	EffectLoseLife:        "lose_life",
	EffectSearchBasicLand: "ramp",
	EffectCounterSpell:    "counter_spell",
	EffectPumpCreature:    "pump",
	EffectAddCounters:     "add_counters",
	EffectDestroyCreature: "destroy_creature",
	EffectCreateToken:     "create_token",
}

func (k EffectKind) String() string {
	if name, ok := effectKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EFFECT_%d", int(k))
}

// Effect is a plain-data effect description.
type Effect struct {
	Kind      EffectKind
	Amount    int
	Power     int
	Toughness int
	Target    targeting.TargetType
}

// Requirement returns the target requirement of the effect.
func (e Effect) Requirement() targeting.TargetRequirement {
	return targeting.Single(e.Target)
}

// Describe renders the effect as short rules text.
func (e Effect) Describe() string {
	switch e.Kind {
	case EffectDrawCards:
		if e.Amount == 1 {
			return "draw a card"
		}
		return fmt.Sprintf("draw %d cards", e.Amount)
	case EffectDealDamage:
		return fmt.Sprintf("deal %d damage to %s", e.Amount, e.Requirement().Description())
	case EffectGainLife:
		return fmt.Sprintf("gain %d life", e.Amount)
	case EffectLoseLife:
		return fmt.Sprintf("lose %d life", e.Amount)
	case EffectSearchBasicLand:
		return "search for a basic land and put it onto the battlefield tapped"
	case EffectCounterSpell:
		return "counter " + e.Requirement().Description()
	case EffectPumpCreature:
		return fmt.Sprintf("%s gets %+d/%+d until end of turn", e.Requirement().Description(), e.Power, e.Toughness)
	case EffectAddCounters:
		return fmt.Sprintf("put %d +1/+1 counter(s) on %s", e.Amount, e.Requirement().Description())
	case EffectDestroyCreature:
		return "destroy " + e.Requirement().Description()
	case EffectCreateToken:
		return fmt.Sprintf("create a %d/%d creature token", e.Power, e.Toughness)
	default:
		return e.Kind.String()
	}
}

// TriggeredAbility is a triggered ability definition on a card.
type TriggeredAbility struct {
	Event     TriggerEvent
	Condition ConditionKind
	Effect    Effect
	Text      string
}

// Describe returns the ability text, falling back to a generated one.
func (ta TriggeredAbility) Describe() string {
	if ta.Text != "" {
		return ta.Text
	}
	return fmt.Sprintf("%s: %s", ta.Event, ta.Effect.Describe())
}
