package targeting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTarget is returned when a target selection is not legal.
var ErrInvalidTarget = errors.New("invalid target")

// TargetType represents the type of target a spell or ability can have.
type TargetType string

const (
	// TargetTypeNone means the effect does not target.
	TargetTypeNone TargetType = ""
	// TargetTypePlayer targets players
	TargetTypePlayer TargetType = "PLAYER"
	// TargetTypeOpponent targets players other than the controller
	TargetTypeOpponent TargetType = "OPPONENT"
	// TargetTypeCreature targets creatures on the battlefield
	TargetTypeCreature TargetType = "CREATURE"
	// TargetTypeAny targets a player or a creature
	TargetTypeAny TargetType = "ANY"
	// TargetTypeSpell targets spells on the stack
	TargetTypeSpell TargetType = "SPELL"
	// TargetTypeNoncreatureSpell targets noncreature spells on the stack
	TargetTypeNoncreatureSpell TargetType = "NONCREATURE_SPELL"
)

// TargetRequirement defines what targets a spell or ability requires.
type TargetRequirement struct {
	Type       TargetType
	MinTargets int
	MaxTargets int
}

// Single is the common "one target of this type" requirement.
func Single(tt TargetType) TargetRequirement {
	if tt == TargetTypeNone {
		return TargetRequirement{}
	}
	return TargetRequirement{Type: tt, MinTargets: 1, MaxTargets: 1}
}

// Required reports whether the requirement needs any target at all.
func (tr TargetRequirement) Required() bool {
	return tr.Type != TargetTypeNone && tr.MaxTargets > 0
}

// Description renders the requirement the way oracle text does.
func (tr TargetRequirement) Description() string {
	switch tr.Type {
	case TargetTypeAny:
		return "any target"
	case TargetTypeNone:
		return "no target"
	default:
		return "target " + strings.ToLower(strings.ReplaceAll(string(tr.Type), "_", " "))
	}
}

// TargetSelection is a set of chosen target ids for one requirement.
// ControllerID is the player choosing them.
type TargetSelection struct {
	ControllerID string
	Targets      []string
	Requirement  TargetRequirement
}

// Validate checks the number of targets and rejects duplicates.
func (ts *TargetSelection) Validate() error {
	if ts == nil {
		return fmt.Errorf("%w: selection is nil", ErrInvalidTarget)
	}
	count := len(ts.Targets)
	if count < ts.Requirement.MinTargets {
		return fmt.Errorf("%w: need at least %d, got %d", ErrInvalidTarget, ts.Requirement.MinTargets, count)
	}
	if count > ts.Requirement.MaxTargets {
		return fmt.Errorf("%w: need at most %d, got %d", ErrInvalidTarget, ts.Requirement.MaxTargets, count)
	}
	seen := make(map[string]bool, count)
	for _, id := range ts.Targets {
		if seen[id] {
			return fmt.Errorf("%w: duplicate target %s", ErrInvalidTarget, id)
		}
		seen[id] = true
	}
	return nil
}
