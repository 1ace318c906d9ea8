package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/blackjack-coach/cmd/blackjack-coach/shared"
	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/randutil"
	"github.com/lox/blackjack-coach/internal/simulator"
	"github.com/lox/blackjack-coach/internal/strategy"
)

// OddsCmd analyses one hand state without playing a session
type OddsCmd struct {
	Hand     string `kong:"arg,required,help='Player hand, e.g. \"Ah6s\"'"`
	Dealer   string `kong:"short='d',help='Dealer up card, e.g. Td'"`
	Decks    int    `kong:"default='6',help='Number of decks in the shoe'"`
	Trials   int    `kong:"default='1000',help='Monte Carlo trials'"`
	Standing bool   `kong:"help='Treat the hand as standing pat (no further player card)'"`
	Seed     *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *OddsCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	playerCards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parsing hand: %w", err)
	}
	if len(playerCards) < 2 {
		return fmt.Errorf("hand needs at least 2 cards, got %d", len(playerCards))
	}

	var dealerCards []deck.Card
	if c.Dealer != "" {
		dealerCards, err = deck.ParseCards(c.Dealer)
		if err != nil {
			return fmt.Errorf("parsing dealer up card: %w", err)
		}
		if len(dealerCards) != 1 {
			return fmt.Errorf("dealer takes exactly 1 up card, got %d", len(dealerCards))
		}
	}

	rng, seed := shared.SetupRNG(c.Seed)
	logger.Debug("rng seeded", "seed", seed)

	table, err := game.NewTable(rng, game.Config{Decks: c.Decks, Logger: logger})
	if err != nil {
		return err
	}
	for _, card := range playerCards {
		if !table.Force(game.SeatPlayer, card) {
			return fmt.Errorf("no undrawn copy of %s left in a %d-deck shoe", card, c.Decks)
		}
	}
	for _, card := range dealerCards {
		if !table.Force(game.SeatDealer, card) {
			return fmt.Errorf("no undrawn copy of %s left in a %d-deck shoe", card, c.Decks)
		}
	}

	sim := simulator.New(simulator.Config{Trials: c.Trials, Logger: logger})
	dist := sim.EstimateOutcomes(
		table.Player(), table.Dealer(), table.ShoeSnapshot(),
		!c.Standing, randutil.New(rng.Int64()))

	printAnalysis(table, dist, c.Trials)
	return nil
}

func printAnalysis(table *game.Table, dist simulator.Distribution, trials int) {
	player := table.Player()

	fmt.Printf("Hand: %s  (total %d", player, player.Value())
	if player.IsSoft() {
		fmt.Print(", soft")
	}
	fmt.Println(")")

	if up, ok := table.DealerUpCard(); ok {
		fmt.Printf("Dealer shows: %s\n", up)
		fmt.Printf("Recommended: %s\n", strategy.Recommend(player, up))
	}

	count := table.CountState()
	fmt.Printf("Hi-Lo count: %+d running, %+.1f true\n\n", count.Running, count.True)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Outcome\tProbability\t\n")
	for _, outcome := range simulator.Outcomes {
		fmt.Fprintf(w, "%s\t%.1f%%\t\n", outcome, dist.Of(outcome)*100)
	}
	w.Flush()

	fmt.Printf("\nNext card probabilities (%d trials, %d cards left):\n", trials, table.Remaining())
	probs := table.CardProbabilities()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for value := 2; value <= 11; value++ {
		label := fmt.Sprintf("%d", value)
		if value == 11 {
			label = "A"
		}
		fmt.Fprintf(w, "%s\t%.1f%%\t\n", label, probs.Of(value)*100)
	}
	w.Flush()
}
