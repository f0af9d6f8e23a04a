package cards

import (
	"github.com/google/uuid"

	"github.com/magefree/commander-engine-go/internal/game/counters"
)

// Instance is one physical copy of a card inside a game.
type Instance struct {
	ID           string
	Card         *Card
	OwnerID      string
	ControllerID string
	// Zone mirrors which zone list holds the id; only the engine moves it.
	Zone Zone

	Tapped         bool
	Attacking      bool
	Defender       string
	Blocking       bool
	BlockingTarget string
	Damage         int
	Counters       *counters.Counters
	TempPower      int
	TempToughness  int
	SummoningSick  bool
}

// NewInstance creates an instance with a fresh id.
func NewInstance(card *Card, ownerID string) *Instance {
	return &Instance{
		ID:            uuid.NewString(),
		Card:          card,
		OwnerID:       ownerID,
		ControllerID:  ownerID,
		Counters:      counters.NewCounters(),
		SummoningSick: true,
	}
}

func (in *Instance) IsLand() bool     { return in.Card.IsLand() }
func (in *Instance) IsCreature() bool { return in.Card.IsCreature() }
func (in *Instance) IsInstant() bool  { return in.Card.IsInstant() }

// Power is base power plus counters plus temporary modifiers.
func (in *Instance) Power() int {
	p, _ := in.Counters.Boost()
	return in.Card.BasePower() + p + in.TempPower
}

// Toughness is base toughness plus counters plus temporary modifiers.
func (in *Instance) Toughness() int {
	_, t := in.Counters.Boost()
	return in.Card.BaseToughness() + t + in.TempToughness
}

// IsDead reports whether a creature should be put into the graveyard.
func (in *Instance) IsDead() bool {
	if !in.IsCreature() {
		return false
	}
	toughness := in.Toughness()
	return toughness <= 0 || in.Damage >= toughness
}

// CanAttack reports whether the creature could be declared as an attacker.
func (in *Instance) CanAttack() bool {
	if !in.IsCreature() || in.Tapped || in.Attacking {
		return false
	}
	if in.Card.HasKeyword(KeywordDefender) {
		return false
	}
	return !in.SummoningSick || in.Card.HasKeyword(KeywordHaste)
}

// CanBlock reports whether the creature could be declared as a blocker.
func (in *Instance) CanBlock() bool {
	return in.IsCreature() && !in.Tapped && !in.Blocking
}

// ClearCombat removes attacking and blocking state.
func (in *Instance) ClearCombat() {
	in.Attacking = false
	in.Defender = ""
	in.Blocking = false
	in.BlockingTarget = ""
}

// ClearUntilEndOfTurn removes damage and temporary modifiers.
func (in *Instance) ClearUntilEndOfTurn() {
	in.Damage = 0
	in.TempPower = 0
	in.TempToughness = 0
}

// ResetForZoneChange returns the instance to a new-object state.
func (in *Instance) ResetForZoneChange() {
	in.ClearCombat()
	in.ClearUntilEndOfTurn()
	in.Counters.Clear()
	in.Tapped = false
	in.SummoningSick = true
	in.ControllerID = in.OwnerID
}
