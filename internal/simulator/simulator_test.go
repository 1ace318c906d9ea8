package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/randutil"
)

func hand(s string) game.Hand {
	return game.Hand(deck.MustParseCards(s))
}

func freshShoe(t *testing.T, decks int) []deck.Card {
	t.Helper()
	shoe, err := deck.NewShoe(decks, randutil.New(1))
	require.NoError(t, err)
	return shoe.Snapshot()
}

func TestDistributionSumsToOne(t *testing.T) {
	sim := New(Config{Trials: 1000})
	shoe := freshShoe(t, 6)

	tests := []struct {
		name        string
		player      string
		dealer      string
		roundActive bool
	}{
		{"active round", "Ah6d", "Ks", true},
		{"standing pat", "KhQd", "6s", false},
		{"soft hand", "AhAd", "9c", true},
		{"dealt twenty one", "Ks5d6c", "Ah", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := sim.EstimateOutcomes(hand(tt.player), hand(tt.dealer), shoe, tt.roundActive, randutil.New(2))
			assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
		})
	}
}

func TestBustShortCircuit(t *testing.T) {
	sim := New(Config{Trials: 1000})

	// A nil shoe proves the shoe is never consulted for a busted hand
	dist := sim.EstimateOutcomes(hand("KhQd5c"), hand("6s"), nil, true, nil)

	assert.Equal(t, Distribution{Bust: 1}, dist)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
}

func TestDeterministicWithSeed(t *testing.T) {
	sim := New(Config{Trials: 400}) // below the parallel threshold
	shoe := freshShoe(t, 6)

	a := sim.EstimateOutcomes(hand("Th6d"), hand("9s"), shoe, true, randutil.New(42))
	b := sim.EstimateOutcomes(hand("Th6d"), hand("9s"), shoe, true, randutil.New(42))
	assert.Equal(t, a, b)
}

func TestEmptyPoolDoesNotCrash(t *testing.T) {
	sim := New(Config{Trials: 100})

	// No cards to draw: the player stands as-is and the dealer never
	// reaches 17, so the player's 20 wins every trial.
	dist := sim.EstimateOutcomes(hand("KhQd"), game.Hand{}, []deck.Card{}, true, randutil.New(5))

	assert.InDelta(t, 1.0, dist.Of(Win), 1e-9)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
}

func TestPoolExcludesHeldCardCopies(t *testing.T) {
	sim := New(Config{Trials: 100})

	// The snapshot holds nothing but copies of held cards, so the pool is
	// empty: the player cannot draw and the dealer stays on the up card.
	player := hand("KhQd")
	dealer := hand("6s")
	shoe := deck.MustParseCards("KhKhQdQd6s6s")

	dist := sim.EstimateOutcomes(player, dealer, shoe, true, randutil.New(5))
	assert.InDelta(t, 1.0, dist.Of(Win), 1e-9)
}

func TestTwentyOneStandingNeverLoses(t *testing.T) {
	sim := New(Config{Trials: 2000})
	shoe := freshShoe(t, 6)

	// Standing on 21 the dealer can at best push
	dist := sim.EstimateOutcomes(hand("AsKd"), hand("Th"), shoe, false, randutil.New(9))

	assert.Zero(t, dist.Of(Bust))
	assert.Zero(t, dist.Of(Lose))
	assert.InDelta(t, 1.0, dist.Of(Win)+dist.Of(Push), 1e-9)
}

func TestParallelEstimate(t *testing.T) {
	sim := New(Config{Trials: 10000}) // well above the parallel threshold
	shoe := freshShoe(t, 6)

	// Hard 20 standing against a dealer 6 is a heavy favourite
	dist := sim.EstimateOutcomes(hand("KhQd"), hand("6s"), shoe, false, randutil.New(11))

	assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
	assert.Zero(t, dist.Of(Bust), "no player draw when standing")
	assert.Greater(t, dist.Of(Win), 0.5)
	assert.Greater(t, dist.Of(Win), dist.Of(Lose))
}

func TestDefaultTrials(t *testing.T) {
	sim := New(Config{})
	assert.Equal(t, DefaultTrials, sim.trials)
}
