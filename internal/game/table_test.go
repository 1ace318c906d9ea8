package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/randutil"
)

func newTestTable(t *testing.T, decks int, seed int64) *Table {
	t.Helper()
	table, err := NewTable(randutil.New(seed), Config{Decks: decks})
	require.NoError(t, err)
	return table
}

func TestNewTableInvalidDecks(t *testing.T) {
	_, err := NewTable(randutil.New(1), Config{Decks: 0})
	assert.ErrorIs(t, err, deck.ErrInvalidDecks)
}

func TestDealOrder(t *testing.T) {
	cards := deck.MustParseCards("AhKd5c")
	table := NewTableWithShoe(deck.NewStackedShoe(randutil.New(1), cards...), nil)

	table.Deal()

	assert.Equal(t, Hand(cards[:2]), table.Player())
	assert.Equal(t, Hand(cards[2:]), table.Dealer())

	up, ok := table.DealerUpCard()
	require.True(t, ok)
	assert.Equal(t, cards[2], up)
}

func TestDrawUpdatesCount(t *testing.T) {
	cards := deck.MustParseCards("5hKd8c")
	table := NewTableWithShoe(deck.NewStackedShoe(randutil.New(1), cards...), nil)

	table.Draw(SeatPlayer) // 5: +1
	assert.Equal(t, 1, table.CountState().Running)
	table.Draw(SeatDealer) // K: -1
	assert.Equal(t, 0, table.CountState().Running)
	table.Draw(SeatPlayer) // 8: neutral
	assert.Equal(t, 0, table.CountState().Running)
}

func TestNewRoundClearsHandsKeepsCount(t *testing.T) {
	table := newTestTable(t, 6, 42)
	table.Deal()
	require.NotEmpty(t, table.Player())

	remaining := table.Remaining()
	count := table.CountState().Running
	table.NewRound()

	assert.Empty(t, table.Player())
	assert.Empty(t, table.Dealer())
	assert.Equal(t, remaining, table.Remaining(), "cards are never returned to the shoe")
	assert.Equal(t, count, table.CountState().Running)
}

func TestDrawReshufflesAndResetsCount(t *testing.T) {
	table := newTestTable(t, 1, 7)

	for i := 0; i < deck.DeckSize; i++ {
		table.Draw(SeatPlayer)
	}
	require.Equal(t, 0, table.Remaining())
	// A full single deck nets to a zero Hi-Lo count; the reset below is
	// what matters for partially dealt shoes.
	require.Equal(t, 0, table.CountState().Running)

	card := table.Draw(SeatPlayer)
	assert.Equal(t, deck.DeckSize-1, table.Remaining(), "shoe was rebuilt before the draw")

	var expected int
	switch v := card.PointValue(); {
	case v >= 2 && v <= 6:
		expected = 1
	case v >= 10:
		expected = -1
	}
	assert.Equal(t, expected, table.CountState().Running, "count restarts from the drawn card only")
}

func TestCardProbabilitiesFreshShoe(t *testing.T) {
	table := newTestTable(t, 6, 3)

	probs := table.CardProbabilities()
	assert.InDelta(t, 96.0/312.0, probs.Of(10), 1e-12)
	assert.InDelta(t, 24.0/312.0, probs.Of(11), 1e-12)
	assert.InDelta(t, 24.0/312.0, probs.Of(2), 1e-12)

	sum := 0.0
	for v := 2; v <= 11; v++ {
		sum += probs.Of(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForce(t *testing.T) {
	table := newTestTable(t, 1, 11)

	ace := deck.Card{Suit: deck.Spades, Rank: deck.Ace}
	require.True(t, table.Force(SeatPlayer, ace))
	assert.Equal(t, Hand{ace}, table.Player())
	assert.Equal(t, -1, table.CountState().Running)
	assert.Equal(t, deck.DeckSize-1, table.Remaining())

	assert.False(t, table.Force(SeatPlayer, ace), "only one A♠ in a single deck")
}

func TestTrueCountTracksShoeDepth(t *testing.T) {
	table := newTestTable(t, 6, 99)

	low := deck.MustParseCards("2h3h4h5h6h2d3d4d5d6d")
	for _, c := range low {
		require.True(t, table.Force(SeatPlayer, c))
	}

	state := table.CountState()
	assert.Equal(t, 10, state.Running)
	assert.InDelta(t, 10.0/(302.0/52.0), state.True, 1e-9)
}
