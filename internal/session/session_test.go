package session

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/randutil"
	"github.com/lox/blackjack-coach/internal/statistics"
)

// stackedSession deals the given cards in order: player, player, dealer,
// then whatever the dealer draws.
func stackedSession(t *testing.T, cards string, cfg Config) *Session {
	t.Helper()
	shoe := deck.NewStackedShoe(randutil.New(1), deck.MustParseCards(cards)...)
	return New(game.NewTableWithShoe(shoe, nil), cfg)
}

func TestDealStartsRound(t *testing.T) {
	s := stackedSession(t, "KhQd6s", Config{})
	require.NoError(t, s.Deal())

	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 20, s.Table().Player().Value())
	assert.Len(t, s.Table().Dealer(), 1, "dealer's second card waits for the dealer turn")
	assert.Equal(t, 1000, s.Bankroll(), "no credits move until settlement")
}

func TestStandWinSettlement(t *testing.T) {
	// Dealer draws 6,T,9 = 25 and busts
	s := stackedSession(t, "KhQd6sTs9h", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Stand())

	assert.Equal(t, PhaseRoundOver, s.Phase())
	assert.Equal(t, 1100, s.Bankroll())

	result, ok := s.LastResult()
	require.True(t, ok)
	assert.Equal(t, statistics.ResultWin, result.Result)
	assert.Equal(t, 100, result.Net)
	assert.False(t, result.Bust)
}

func TestStandPushReturnsWager(t *testing.T) {
	// Player 20, dealer K+Q = 20
	s := stackedSession(t, "KhTdKsQh", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Stand())

	assert.Equal(t, 1000, s.Bankroll())
	result, _ := s.LastResult()
	assert.Equal(t, statistics.ResultPush, result.Result)
	assert.Zero(t, result.Net)
}

func TestStandLoseSettlement(t *testing.T) {
	// Player 17, dealer T+9 = 19
	s := stackedSession(t, "Kh7dTs9h", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Stand())

	assert.Equal(t, 900, s.Bankroll())
	result, _ := s.LastResult()
	assert.Equal(t, statistics.ResultLose, result.Result)
	assert.Equal(t, -100, result.Net)
	assert.False(t, result.Bust)
}

func TestHitBustSettlesImmediately(t *testing.T) {
	// Player 14 hits into a king
	s := stackedSession(t, "5h9dTsKh", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Hit())

	assert.Equal(t, PhaseRoundOver, s.Phase())
	assert.Equal(t, 900, s.Bankroll())

	result, _ := s.LastResult()
	assert.Equal(t, statistics.ResultLose, result.Result)
	assert.True(t, result.Bust)
}

func TestHitWithoutBustKeepsPlaying(t *testing.T) {
	// Player 8 hits into a five
	s := stackedSession(t, "5h3dTs5c", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Hit())

	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Equal(t, 13, s.Table().Player().Value())
}

func TestNaturalRecorded(t *testing.T) {
	// Dealer draws to K+9 = 19, player holds a natural
	s := stackedSession(t, "AsKdKs9h", Config{})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Stand())

	result, _ := s.LastResult()
	assert.Equal(t, statistics.ResultWin, result.Result)
	assert.True(t, result.Natural)
}

func TestPhaseErrors(t *testing.T) {
	s := stackedSession(t, "KhQd6sTs9h", Config{})

	assert.ErrorIs(t, s.Hit(), ErrWrongPhase)
	assert.ErrorIs(t, s.Stand(), ErrWrongPhase)

	require.NoError(t, s.Deal())
	assert.ErrorIs(t, s.Deal(), ErrWrongPhase)
}

func TestInsufficientCredits(t *testing.T) {
	// Lose the only bet the bankroll covers
	s := stackedSession(t, "Kh7dTs9h", Config{Bankroll: 100})
	require.NoError(t, s.Deal())
	require.NoError(t, s.Stand())
	require.Equal(t, 0, s.Bankroll())

	assert.ErrorIs(t, s.Deal(), ErrInsufficientCredits)
}

func TestBetAdjustment(t *testing.T) {
	s := stackedSession(t, "KhQd6sTs9h", Config{Bankroll: 250})

	assert.Equal(t, 100, s.Bet())
	s.RaiseBet()
	assert.Equal(t, 200, s.Bet())
	s.RaiseBet()
	assert.Equal(t, 250, s.Bet(), "bet is capped by the bankroll")

	s.LowerBet()
	s.LowerBet()
	s.LowerBet()
	assert.Equal(t, 100, s.Bet(), "bet is floored at the minimum")

	require.NoError(t, s.Deal())
	s.RaiseBet()
	assert.Equal(t, 100, s.Bet(), "bet is locked while a round is live")
}

func TestRoundDurationUsesClock(t *testing.T) {
	mock := quartz.NewMock(t)
	s := stackedSession(t, "KhQd6sTs9h", Config{Clock: mock})

	require.NoError(t, s.Deal())
	mock.Advance(5 * time.Second)
	require.NoError(t, s.Stand())

	result, _ := s.LastResult()
	assert.Equal(t, 5*time.Second, result.Duration)
	assert.Equal(t, 5*time.Second, s.Stats().TotalDuration)
}

func TestAutoPlayWithAdvisor(t *testing.T) {
	table, err := game.NewTable(randutil.New(42), game.Config{Decks: 6})
	require.NoError(t, err)
	s := New(table, Config{Bankroll: 100000})

	played, stats, err := s.AutoPlay(50, AdvisorPolicy{})
	require.NoError(t, err)

	assert.Equal(t, 50, played)
	assert.Equal(t, 50, stats.Rounds)
	require.NoError(t, stats.Validate())
	assert.Equal(t, 100000+stats.Net, s.Bankroll())
}
