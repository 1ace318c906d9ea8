package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/blackjack-coach/cmd/blackjack-coach/shared"
	"github.com/lox/blackjack-coach/internal/config"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/session"
	"github.com/lox/blackjack-coach/internal/statistics"
)

// SimulateCmd auto-plays rounds with the advisor and reports aggregate
// statistics, a sanity check that basic strategy behaves as taught
type SimulateCmd struct {
	Rounds   int    `kong:"default='10000',help='Number of rounds to play'"`
	Config   string `kong:"default='blackjack-coach.hcl',help='Path to HCL config file'"`
	Decks    int    `kong:"default='0',help='Override the configured deck count'"`
	Bankroll int    `kong:"default='0',help='Override the configured bankroll'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Bankroll > 0 {
		cfg.Table.Bankroll = c.Bankroll
	}

	rng, seed := shared.SetupRNG(c.Seed)
	logger.Info("simulating", "rounds", c.Rounds, "decks", cfg.Table.Decks, "seed", seed)

	table, err := game.NewTable(rng, game.Config{Decks: cfg.Table.Decks, Logger: logger})
	if err != nil {
		return err
	}
	sess := session.New(table, session.Config{
		Bankroll: cfg.Table.Bankroll,
		BetMin:   cfg.Table.BetMin,
		BetStep:  cfg.Table.BetStep,
		Logger:   logger,
	})

	start := time.Now()
	played, stats, err := sess.AutoPlay(c.Rounds, session.AdvisorPolicy{})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if played < c.Rounds {
		fmt.Printf("Bankroll exhausted after %d of %d rounds.\n\n", played, c.Rounds)
	}
	printStats(stats, sess.Bankroll(), elapsed)
	return nil
}

func printStats(stats *statistics.Statistics, bankroll int, elapsed time.Duration) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Rounds\t%d\t\n", stats.Rounds)
	fmt.Fprintf(w, "Wins\t%d (%.1f%%)\t\n", stats.Wins, stats.WinRate()*100)
	fmt.Fprintf(w, "Losses\t%d (%.1f%%)\t\n", stats.Losses, stats.LossRate()*100)
	fmt.Fprintf(w, "Pushes\t%d (%.1f%%)\t\n", stats.Pushes, stats.PushRate()*100)
	fmt.Fprintf(w, "Busts\t%d (%.1f%%)\t\n", stats.Busts, stats.BustRate()*100)
	fmt.Fprintf(w, "Naturals\t%d\t\n", stats.Naturals)
	fmt.Fprintf(w, "Net credits\t%+d\t\n", stats.Net)
	fmt.Fprintf(w, "Final bankroll\t%d\t\n", bankroll)

	lo, hi := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "Mean/round\t%+.2f (95%% CI %+.2f to %+.2f)\t\n", stats.Mean(), lo, hi)
	fmt.Fprintf(w, "Elapsed\t%s\t\n", elapsed.Round(time.Millisecond))
	w.Flush()
}
