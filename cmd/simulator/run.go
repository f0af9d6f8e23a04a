package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/catalog"
	"github.com/magefree/commander-engine-go/internal/game"
	"github.com/magefree/commander-engine-go/internal/simulation"
)

func newRunCmd(a *app) *cobra.Command {
	var entrantFlags []string
	var passive bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a series of autopilot games and print the standings",
		Long: `Play a series of games between autopilot agents.

Entrants are given as "Commander Name=archetype" and play every game; without
--entrant, random commanders and archetypes are drawn from the catalog.`,
		Example: `  simulator run --games 20 --workers 4
  simulator run --entrant "Kaalia of the Vast=midrange" --entrant "Azami, Lady of Scrolls=control"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, entrantFlags, passive)
		},
	}

	flags := cmd.Flags()
	flags.Int("games", 1, "number of games to play")
	flags.Int("players", 4, "seats per game when entrants are random")
	flags.Int("workers", 1, "games played in parallel")
	flags.Int64("seed", 1, "seed of the first game")
	flags.Int("max-turns", 40, "turn limit before a game is a draw")
	flags.Int("max-step-actions", 50, "actions per step before agents must pass")
	flags.StringArrayVar(&entrantFlags, "entrant", nil, `entrant as "Commander=archetype" (repeatable)`)
	flags.BoolVar(&passive, "passive", false, "seat agents that only pass")
	bindFlags(a.v, flags.Lookup, map[string]string{
		"simulation.games":            "games",
		"simulation.players":          "players",
		"simulation.workers":          "workers",
		"simulation.seed":             "seed",
		"simulation.max_turns":        "max-turns",
		"simulation.max_step_actions": "max-step-actions",
	})
	return cmd
}

func (a *app) run(cmd *cobra.Command, entrantFlags []string, passive bool) error {
	ctx := cmd.Context()
	sim := a.cfg.Simulation

	c, err := catalog.Load(ctx, a.cfg.Catalog, a.logger)
	if err != nil {
		return err
	}

	var entrants []simulation.Entrant
	if len(entrantFlags) > 0 {
		entrants, err = parseEntrants(entrantFlags)
	} else {
		rng := rand.New(rand.NewPCG(uint64(sim.Seed), 0))
		entrants, err = simulation.RandomEntrants(c, sim.Players, rng)
	}
	if err != nil {
		return err
	}

	observer := game.NewLogObserver(a.logger.Named("game"))
	runner := simulation.NewRunner(a.cfg.Rules, sim, a.logger, simulation.WithObserver(observer))
	series, err := simulation.NewSeries(runner, c, entrants, a.logger)
	if err != nil {
		return err
	}

	newAgent := func() simulation.Agent { return simulation.NewAutopilot(c) }
	if passive {
		newAgent = func() simulation.Agent { return simulation.PassAgent{} }
	}
	report, err := series.Run(ctx, sim.Games, sim.Workers, sim.Seed, newAgent)
	if err != nil {
		return err
	}
	a.logger.Info("series complete",
		zap.String("series_id", report.ID),
		zap.Int("games", len(report.Games)),
		zap.Duration("duration", report.Duration),
	)
	return printReport(cmd.OutOrStdout(), report)
}

// parseEntrants names entrants p1, p2... in the order given.
func parseEntrants(entries []string) ([]simulation.Entrant, error) {
	out := make([]simulation.Entrant, 0, len(entries))
	for i, entry := range entries {
		name, archName, found := strings.Cut(entry, "=")
		if !found {
			archName = string(catalog.ArchetypeMidrange)
		}
		arch, err := catalog.ParseArchetype(archName)
		if err != nil {
			return nil, fmt.Errorf("entrant %q: %w", entry, err)
		}
		out = append(out, simulation.Entrant{
			Name:      fmt.Sprintf("p%d", i+1),
			Commander: strings.TrimSpace(name),
			Archetype: arch,
		})
	}
	return out, nil
}

func printReport(w io.Writer, report *simulation.SeriesReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "GAME\tWINNER\tTURNS\tACTIONS\tDIGEST\n")
	for i, g := range report.Games {
		winner := g.WinnerID
		if g.Draw() {
			winner = "draw"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.12s\n", i+1, winner, g.Turns, g.Actions, g.Digest)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "PLAYER\tCOMMANDER\tARCHETYPE\tPOINTS\tW-L-D\n")
	for _, s := range report.Standings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d-%d-%d\n",
			s.Name, s.Commander, s.Archetype, s.Points, s.Wins, s.Losses, s.Draws)
	}
	return tw.Flush()
}
