package game

import (
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/rules"
)

// Observer receives notifications about game progress. Implementations must
// not call back into the engine.
type Observer interface {
	TurnStarted(turn int, playerID string)
	StepChanged(phase rules.Phase, step rules.Step)
	CardDrawn(playerID, cardName string)
	LifeChanged(playerID string, oldLife, newLife int)
	StackPushed(obj rules.StackObject)
	StackResolved(obj rules.StackObject)
	PriorityPassed(playerID string)
	TriggerFired(trigger rules.QueuedTrigger)
	ActionExecuted(playerID string, action Action, result Result)
	GameOver(winnerID string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) TurnStarted(int, string)               {}
func (NopObserver) StepChanged(rules.Phase, rules.Step)   {}
func (NopObserver) CardDrawn(string, string)              {}
func (NopObserver) LifeChanged(string, int, int)          {}
func (NopObserver) StackPushed(rules.StackObject)         {}
func (NopObserver) StackResolved(rules.StackObject)       {}
func (NopObserver) PriorityPassed(string)                 {}
func (NopObserver) TriggerFired(rules.QueuedTrigger)      {}
func (NopObserver) ActionExecuted(string, Action, Result) {}
func (NopObserver) GameOver(string)                       {}

// LogObserver writes every notification to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging at debug level, with turn
// starts, actions and the game result at info.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) TurnStarted(turn int, playerID string) {
	o.logger.Info("turn started", zap.Int("turn", turn), zap.String("player_id", playerID))
}

func (o *LogObserver) StepChanged(phase rules.Phase, step rules.Step) {
	o.logger.Debug("step changed", zap.String("phase", phase.String()), zap.String("step", step.String()))
}

func (o *LogObserver) CardDrawn(playerID, cardName string) {
	o.logger.Debug("card drawn", zap.String("player_id", playerID), zap.String("card", cardName))
}

func (o *LogObserver) LifeChanged(playerID string, oldLife, newLife int) {
	o.logger.Debug("life changed",
		zap.String("player_id", playerID),
		zap.Int("old_life", oldLife),
		zap.Int("new_life", newLife),
	)
}

func (o *LogObserver) StackPushed(obj rules.StackObject) {
	o.logger.Debug("stack push",
		zap.String("object_id", obj.ID),
		zap.String("kind", string(obj.Kind)),
		zap.String("name", obj.Name),
		zap.String("controller", obj.Controller),
	)
}

func (o *LogObserver) StackResolved(obj rules.StackObject) {
	o.logger.Debug("stack resolve", zap.String("object_id", obj.ID), zap.String("name", obj.Name))
}

func (o *LogObserver) PriorityPassed(playerID string) {
	o.logger.Debug("priority passed", zap.String("player_id", playerID))
}

func (o *LogObserver) TriggerFired(trigger rules.QueuedTrigger) {
	o.logger.Debug("trigger fired",
		zap.String("source", trigger.SourceName),
		zap.String("controller", trigger.ControllerID),
		zap.String("ability", trigger.Ability.Describe()),
	)
}

func (o *LogObserver) ActionExecuted(playerID string, action Action, result Result) {
	o.logger.Info("action",
		zap.String("player_id", playerID),
		zap.String("kind", action.Kind().String()),
		zap.Bool("success", result.Success),
		zap.String("message", result.Message),
	)
}

func (o *LogObserver) GameOver(winnerID string) {
	if winnerID == "" {
		o.logger.Info("game over: draw")
		return
	}
	o.logger.Info("game over", zap.String("winner", winnerID))
}
