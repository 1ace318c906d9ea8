package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack-coach/cmd/blackjack-coach/shared"
	"github.com/lox/blackjack-coach/internal/config"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/randutil"
	"github.com/lox/blackjack-coach/internal/session"
	"github.com/lox/blackjack-coach/internal/simulator"
	"github.com/lox/blackjack-coach/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Config string `kong:"default='blackjack-coach.hcl',help='Path to HCL config file'"`
	Decks  int    `kong:"default='0',help='Override the configured deck count'"`
	Trials int    `kong:"default='0',help='Override Monte Carlo trials per estimate'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if c.Trials > 0 {
		cfg.Simulation.Trials = c.Trials
	}

	rng, seed := shared.SetupRNG(c.Seed)
	logger.Debug("rng seeded", "seed", seed)

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
	sim := simulator.New(simulator.Config{
		Trials: cfg.Simulation.Trials,
		Logger: logger,
	})

	model := tui.New(sess, sim, randutil.New(rng.Int64()), logger)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
