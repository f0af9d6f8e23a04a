package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magefree/commander-engine-go/internal/catalog"
)

// Points awarded per game.
const (
	PointsWin  = 3
	PointsDraw = 1
)

// Entrant is a deck that plays every game of a series.
type Entrant struct {
	Name      string
	Commander string
	Archetype catalog.Archetype
}

// Standing is an entrant's record in a series.
type Standing struct {
	Name      string
	Commander string
	Archetype catalog.Archetype
	Points    int
	Wins      int
	Losses    int
	Draws     int
}

// Standings accumulates game results. It is safe for concurrent use.
type Standings struct {
	mu      sync.RWMutex
	players map[string]*Standing
	order   []string
}

// NewStandings creates standings for the entrants.
func NewStandings(entrants []Entrant) *Standings {
	s := &Standings{players: make(map[string]*Standing, len(entrants))}
	for _, e := range entrants {
		s.players[e.Name] = &Standing{Name: e.Name, Commander: e.Commander, Archetype: e.Archetype}
		s.order = append(s.order, e.Name)
	}
	return s
}

// Record scores one game. A game without a winner is a draw for every seat
// still in it and a loss for the eliminated ones.
func (s *Standings) Record(result GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range result.Seats {
		if _, ok := s.players[seat]; !ok {
			return fmt.Errorf("seat %s is not in the standings", seat)
		}
	}
	for _, seat := range result.Seats {
		p := s.players[seat]
		_, eliminated := result.Eliminated[seat]
		switch {
		case seat == result.WinnerID:
			p.Wins++
			p.Points += PointsWin
		case result.Draw() && !eliminated:
			p.Draws++
			p.Points += PointsDraw
		default:
			p.Losses++
		}
	}
	return nil
}

// Snapshot returns standings ordered by points, then wins, then seating.
func (s *Standings) Snapshot() []Standing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Standing, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.players[name])
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		return b.Wins - a.Wins
	})
	return out
}

// SeriesReport is the outcome of a series.
type SeriesReport struct {
	ID        string
	Games     []GameResult
	Standings []Standing
	Duration  time.Duration
}

// Series plays a fixed set of entrants against each other many times.
type Series struct {
	runner   *Runner
	catalog  *catalog.Catalog
	entrants []Entrant
	logger   *zap.Logger
}

// NewSeries creates a series. Entrants are seated in order and the first
// seat rotates each game.
func NewSeries(runner *Runner, c *catalog.Catalog, entrants []Entrant, logger *zap.Logger) (*Series, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(entrants) < 2 {
		return nil, fmt.Errorf("series needs at least 2 entrants, has %d", len(entrants))
	}
	seen := make(map[string]bool, len(entrants))
	for _, e := range entrants {
		if seen[e.Name] {
			return nil, fmt.Errorf("entrant %s listed twice", e.Name)
		}
		seen[e.Name] = true
		if _, ok := c.Get(e.Commander); !ok {
			return nil, fmt.Errorf("entrant %s: commander %q is not in the catalog", e.Name, e.Commander)
		}
	}
	return &Series{runner: runner, catalog: c, entrants: entrants, logger: logger}, nil
}

// RandomEntrants picks n commanders and archetypes from the catalog.
func RandomEntrants(c *catalog.Catalog, n int, rng *rand.Rand) ([]Entrant, error) {
	commanders := c.Commanders()
	if len(commanders) == 0 {
		return nil, fmt.Errorf("catalog has no commanders")
	}
	out := make([]Entrant, n)
	for i := range out {
		commander := commanders[rng.IntN(len(commanders))]
		out[i] = Entrant{
			Name:      fmt.Sprintf("p%d", i+1),
			Commander: commander.Name,
			Archetype: catalog.Archetypes[rng.IntN(len(catalog.Archetypes))],
		}
	}
	return out, nil
}

// Run plays games games with up to workers in parallel. Game i is seeded
// with seed+i, so a series is reproducible whatever the worker count.
func (s *Series) Run(ctx context.Context, games, workers int, seed int64, newAgent func() Agent) (*SeriesReport, error) {
	started := time.Now()
	report := &SeriesReport{ID: ulid.Make().String(), Games: make([]GameResult, games)}
	standings := NewStandings(s.entrants)
	log := s.logger.With(zap.String("series_id", report.ID))
	log.Info("series started",
		zap.Int("games", games),
		zap.Int("entrants", len(s.entrants)),
		zap.Int("workers", workers),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range games {
		g.Go(func() error {
			gameSeed := seed + int64(i)
			seats, err := s.seats(i, gameSeed, newAgent)
			if err != nil {
				return err
			}
			result, err := s.runner.Play(ctx, seats, gameSeed)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			report.Games[i] = result
			return standings.Record(result)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Standings = standings.Snapshot()
	report.Duration = time.Since(started)
	log.Info("series finished", zap.Duration("duration", report.Duration))
	return report, nil
}

func (s *Series) seats(game int, seed int64, newAgent func() Agent) ([]Seat, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	n := len(s.entrants)
	seats := make([]Seat, 0, n)
	for k := range n {
		e := s.entrants[(game+k)%n]
		commander, _ := s.catalog.Get(e.Commander)
		deck, err := catalog.BuildDeck(s.catalog, e.Archetype, commander, catalog.DeckSize, rng)
		if err != nil {
			return nil, fmt.Errorf("entrant %s: %w", e.Name, err)
		}
		var agent Agent = PassAgent{}
		if newAgent != nil {
			agent = newAgent()
		}
		seats = append(seats, Seat{ID: e.Name, Name: e.Commander, Deck: deck, Agent: agent})
	}
	return seats, nil
}
