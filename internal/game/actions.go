package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ActionKind tags the five things a player can do.
type ActionKind int

const (
	ActionPlayLand ActionKind = iota
	ActionCastSpell
	ActionDeclareAttacker
	ActionDeclareBlocker
	ActionPass
)

var actionKindNames = map[ActionKind]string{
	ActionPlayLand:        "play_land",
	ActionCastSpell:       "cast_spell",
	ActionDeclareAttacker: "declare_attacker",
	ActionDeclareBlocker:  "declare_blocker",
	ActionPass:            "pass",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(k))
}

// Action is a proposed move. The set of implementations is closed.
type Action interface {
	Kind() ActionKind
	isAction()
}

// PlayLand plays a land from hand.
type PlayLand struct {
	CardID string
}

// CastSpell casts a card. Cost, CardTypes, OracleText and the stats are
// informational; only CardID and Targets are read by Execute.
type CastSpell struct {
	CardID     string
	Cost       string
	CardTypes  []string
	OracleText string
	Power      *int
	Toughness  *int
	Targets    []string
}

// DeclareAttacker attacks a player with one creature.
type DeclareAttacker struct {
	CreatureID     string
	TargetPlayerID string
	Power          int
	Toughness      int
}

// DeclareBlocker blocks one attacker with one creature.
type DeclareBlocker struct {
	BlockerID         string
	AttackerID        string
	BlockerPower      int
	BlockerToughness  int
	AttackerPower     int
	AttackerToughness int
}

// Pass passes priority.
type Pass struct{}

func (PlayLand) Kind() ActionKind        { return ActionPlayLand }
func (CastSpell) Kind() ActionKind       { return ActionCastSpell }
func (DeclareAttacker) Kind() ActionKind { return ActionDeclareAttacker }
func (DeclareBlocker) Kind() ActionKind  { return ActionDeclareBlocker }
func (Pass) Kind() ActionKind            { return ActionPass }

func (PlayLand) isAction()        {}
func (CastSpell) isAction()       {}
func (DeclareAttacker) isAction() {}
func (DeclareBlocker) isAction()  {}
func (Pass) isAction()            {}

// Result is the outcome of Execute.
type Result struct {
	Success bool
	Message string
}

// Execute applies one action for playerID. It is the only mutation entry
// point for players; every rejection comes back as Success=false with the
// state unchanged.
func (e *Engine) Execute(playerID string, action Action) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	msg, err := e.dispatch(playerID, action)
	result := Result{Success: err == nil, Message: msg}
	if err != nil {
		result.Message = err.Error()
		if errors.Is(err, ErrInternal) {
			e.logger.Error("engine invariant violated",
				zap.String("player_id", playerID),
				zap.String("action", describeAction(action)),
				zap.Error(err),
			)
		} else {
			e.logger.Debug("action rejected",
				zap.String("player_id", playerID),
				zap.String("action", describeAction(action)),
				zap.Error(err),
			)
		}
	}
	if action != nil {
		e.observer.ActionExecuted(playerID, action, result)
	}
	return result
}

func (e *Engine) dispatch(playerID string, action Action) (string, error) {
	switch a := action.(type) {
	case PlayLand:
		return "land played", e.playLand(playerID, a.CardID)
	case CastSpell:
		return "spell cast", e.castSpell(playerID, a.CardID, a.Targets)
	case DeclareAttacker:
		return "attacker declared", e.declareAttackers(playerID, []AttackDeclaration{{CreatureID: a.CreatureID, DefenderID: a.TargetPlayerID}})
	case DeclareBlocker:
		return "blocker declared", e.declareBlockers(playerID, []BlockDeclaration{{BlockerID: a.BlockerID, AttackerID: a.AttackerID}})
	case Pass:
		outcome, err := e.passPriority(playerID)
		if err != nil {
			return "", err
		}
		if outcome == PassOutcomeStepEnded {
			if err := e.advanceStep(); err != nil {
				return "", err
			}
		}
		return outcome.String(), nil
	case nil:
		return "", fmt.Errorf("%w: nil action", ErrUnknownAction)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func describeAction(action Action) string {
	if action == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %+v", action.Kind(), action)
}
