package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/catalog"
	"github.com/magefree/commander-engine-go/internal/config"
	"github.com/magefree/commander-engine-go/internal/game"
)

// ErrNoProgress is returned when a game stops accepting passes.
var ErrNoProgress = errors.New("game made no progress")

// Seat is one player of a game: a deck and the agent playing it.
type Seat struct {
	ID    string
	Name  string
	Deck  *catalog.Deck
	Agent Agent
}

// GameResult is the outcome of one game.
type GameResult struct {
	GameID   string
	Seats    []string
	WinnerID string
	// Capped is set when the turn limit stopped the game.
	Capped     bool
	Turns      int
	Actions    int
	Rejected   int
	Eliminated map[string]string
	Digest     string
	Duration   time.Duration
}

// Draw reports whether the game ended without a winner.
func (r GameResult) Draw() bool {
	return r.WinnerID == ""
}

// Runner plays games to completion.
type Runner struct {
	rules    config.Rules
	sim      config.SimulationConfig
	logger   *zap.Logger
	observer game.Observer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithObserver attaches an observer to every game the runner plays.
func WithObserver(obs game.Observer) RunnerOption {
	return func(r *Runner) {
		r.observer = obs
	}
}

// NewRunner creates a runner.
func NewRunner(rules config.Rules, sim config.SimulationConfig, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sim.MaxTurns <= 0 {
		sim.MaxTurns = 40
	}
	if sim.MaxStepActions <= 0 {
		sim.MaxStepActions = 50
	}
	r := &Runner{rules: rules, sim: sim, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Play runs one game. Each step the priority holder's agent picks an
// action; once a step has seen MaxStepActions actions only passes are
// made, and the game stops after MaxTurns turns.
func (r *Runner) Play(ctx context.Context, seats []Seat, seed int64) (GameResult, error) {
	started := time.Now()
	opts := []game.Option{game.WithSeed(seed), game.WithGameID(ulid.Make().String())}
	if r.observer != nil {
		opts = append(opts, game.WithObserver(r.observer))
	}
	engine := game.NewEngine(r.rules, r.logger, opts...)

	agents := make(map[string]Agent, len(seats))
	result := GameResult{GameID: engine.ID(), Eliminated: make(map[string]string)}
	for _, seat := range seats {
		setup := game.PlayerSetup{ID: seat.ID, Name: seat.Name}
		if seat.Deck != nil {
			setup.Deck = seat.Deck.Cards
			setup.Commander = seat.Deck.Commander
		}
		if err := engine.AddPlayer(setup); err != nil {
			return result, err
		}
		agent := seat.Agent
		if agent == nil {
			agent = PassAgent{}
		}
		agents[seat.ID] = agent
		result.Seats = append(result.Seats, seat.ID)
	}
	if err := engine.StartGame(); err != nil {
		return result, err
	}

	type stepKey struct {
		turn        int
		phase, step string
	}
	var current stepKey
	stepActions := 0

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		view := engine.Snapshot()
		if view.GameOver {
			break
		}
		if view.Turn > r.sim.MaxTurns {
			result.Capped = true
			break
		}

		key := stepKey{view.Turn, view.Phase, view.Step}
		if key != current {
			current, stepActions = key, 0
		}
		stepActions++

		holder := view.PriorityPlayerID
		var action game.Action = game.Pass{}
		if stepActions <= r.sim.MaxStepActions {
			action = agents[holder].Choose(view, holder, engine.LegalActions(holder))
		}
		res := engine.Execute(holder, action)
		result.Actions++
		if res.Success {
			continue
		}
		result.Rejected++
		if _, passed := action.(game.Pass); passed {
			return result, fmt.Errorf("%w: pass by %s rejected: %s", ErrNoProgress, holder, res.Message)
		}
		if res := engine.Execute(holder, game.Pass{}); !res.Success {
			return result, fmt.Errorf("%w: pass by %s rejected: %s", ErrNoProgress, holder, res.Message)
		}
		result.Actions++
	}

	final := engine.Snapshot()
	result.WinnerID = final.WinnerID
	result.Turns = final.Turn
	if result.Capped {
		result.Turns = r.sim.MaxTurns
	}
	result.Digest = engine.Digest()
	result.Duration = time.Since(started)
	for _, p := range final.Players {
		if p.Eliminated {
			result.Eliminated[p.ID] = p.LossReason
		}
	}
	r.logger.Info("game finished",
		zap.String("game_id", result.GameID),
		zap.String("winner", result.WinnerID),
		zap.Int("turns", result.Turns),
		zap.Int("actions", result.Actions),
		zap.Bool("capped", result.Capped),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}
