package game

import (
	"errors"

	"github.com/magefree/commander-engine-go/internal/game/mana"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// Rejections. Every one of these leaves the game untouched.
var (
	ErrNotYourPriority   = errors.New("not your priority")
	ErrWrongStep         = errors.New("not allowed in this step")
	ErrNotInHand         = errors.New("card not in hand")
	ErrNotALand          = errors.New("card is not a land")
	ErrLandNotCastable   = errors.New("lands are played, not cast")
	ErrLandAlreadyPlayed = errors.New("land already played this turn")
	ErrIllegalAttack     = errors.New("illegal attack")
	ErrIllegalBlock      = errors.New("illegal block")
	ErrGameOver          = errors.New("game is over")
	ErrGameNotStarted    = errors.New("game not started")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownAction     = errors.New("unknown action")
	ErrStackNotEmpty     = errors.New("stack not empty")

	ErrInsufficientMana = mana.ErrInsufficientMana
	ErrInvalidTarget    = targeting.ErrInvalidTarget
	ErrStackEmpty       = rules.ErrStackEmpty
	ErrUnknownStep      = rules.ErrUnknownStep
)

// ErrInternal marks a broken engine invariant. It is never caused by a
// player's choice.
var ErrInternal = errors.New("internal consistency violation")
