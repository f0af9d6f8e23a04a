package targeting

import (
	"fmt"
)

// Accessor exposes the parts of a game needed for target checks.
type Accessor interface {
	TargetPlayer(id string) (PlayerInfo, bool)
	TargetPermanent(id string) (PermanentInfo, bool)
	TargetStackObject(id string) (StackInfo, bool)
}

// PlayerInfo describes a player that could be targeted.
type PlayerInfo struct {
	ID         string
	Eliminated bool
}

// PermanentInfo describes a permanent that could be targeted.
type PermanentInfo struct {
	ID           string
	Name         string
	ControllerID string
	Creature     bool
}

// StackInfo describes a stack object that could be targeted.
type StackInfo struct {
	ID          string
	Name        string
	Spell       bool
	Creature    bool
	Counterable bool
}

// Validator validates that selected targets are legal.
type Validator struct {
	game Accessor
}

// NewValidator creates a validator reading from the given game.
func NewValidator(game Accessor) *Validator {
	return &Validator{game: game}
}

// ValidateTarget checks one target id chosen by controllerID against a
// requirement.
func (v *Validator) ValidateTarget(controllerID, id string, req TargetRequirement) error {
	if player, ok := v.game.TargetPlayer(id); ok {
		switch req.Type {
		case TargetTypePlayer, TargetTypeAny:
		case TargetTypeOpponent:
			if player.ID == controllerID {
				return fmt.Errorf("%w: %s is not an opponent", ErrInvalidTarget, id)
			}
		default:
			return fmt.Errorf("%w: %s is a player but %s is required", ErrInvalidTarget, id, req.Description())
		}
		if player.Eliminated {
			return fmt.Errorf("%w: player %s has left the game", ErrInvalidTarget, id)
		}
		return nil
	}

	if perm, ok := v.game.TargetPermanent(id); ok {
		if req.Type != TargetTypeCreature && req.Type != TargetTypeAny {
			return fmt.Errorf("%w: %s is a permanent but %s is required", ErrInvalidTarget, perm.Name, req.Description())
		}
		if !perm.Creature {
			return fmt.Errorf("%w: %s is not a creature", ErrInvalidTarget, perm.Name)
		}
		return nil
	}

	if obj, ok := v.game.TargetStackObject(id); ok {
		switch req.Type {
		case TargetTypeSpell:
		case TargetTypeNoncreatureSpell:
			if obj.Creature {
				return fmt.Errorf("%w: %s is a creature spell", ErrInvalidTarget, obj.Name)
			}
		default:
			return fmt.Errorf("%w: %s is on the stack but %s is required", ErrInvalidTarget, obj.Name, req.Description())
		}
		if !obj.Spell {
			return fmt.Errorf("%w: %s is not a spell", ErrInvalidTarget, obj.Name)
		}
		return nil
	}

	return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
}

// ValidateSelection validates count, duplicates and every individual target.
func (v *Validator) ValidateSelection(selection *TargetSelection) error {
	if err := selection.Validate(); err != nil {
		return err
	}
	for _, id := range selection.Targets {
		if err := v.ValidateTarget(selection.ControllerID, id, selection.Requirement); err != nil {
			return err
		}
	}
	return nil
}
