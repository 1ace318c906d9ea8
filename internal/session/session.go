// Package session implements the game loop around the engine: bet and
// bankroll bookkeeping, round phases and settlement. The engine itself
// (shoe, hands, counter, simulator, advisor) stays stateless between the
// queries this loop makes.
package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/statistics"
)

// Phase is the round lifecycle state
type Phase int

const (
	PhaseBetting Phase = iota // No round dealt yet
	PhasePlaying              // Player to act
	PhaseRoundOver            // Settled; bet adjustable, next deal starts a round
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseRoundOver:
		return "round over"
	default:
		return "unknown"
	}
}

var (
	// ErrInsufficientCredits means the bankroll no longer covers the bet
	ErrInsufficientCredits = errors.New("bankroll does not cover the bet")

	// ErrWrongPhase means an action arrived outside its legal phase
	ErrWrongPhase = errors.New("action not valid in this phase")
)

// Config holds session options
type Config struct {
	Bankroll int
	BetMin   int
	BetStep  int
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Session drives rounds against a table and settles them against a
// bankroll. Single-threaded: one owning caller mutates it.
type Session struct {
	table    *game.Table
	bankroll int
	bet      int
	betMin   int
	betStep  int
	phase    Phase

	stats      statistics.Statistics
	lastResult statistics.RoundResult
	settled    bool

	clock      quartz.Clock
	roundStart time.Time
	logger     *log.Logger
}

// New creates a session. Zero config fields get the table defaults:
// bankroll 1000, minimum bet 100, bet step 100, real clock.
func New(table *game.Table, cfg Config) *Session {
	if cfg.Bankroll <= 0 {
		cfg.Bankroll = 1000
	}
	if cfg.BetMin <= 0 {
		cfg.BetMin = 100
	}
	if cfg.BetStep <= 0 {
		cfg.BetStep = 100
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Session{
		table:    table,
		bankroll: cfg.Bankroll,
		bet:      cfg.BetMin,
		betMin:   cfg.BetMin,
		betStep:  cfg.BetStep,
		phase:    PhaseBetting,
		clock:    cfg.Clock,
		logger:   cfg.Logger.WithPrefix("session"),
	}
}

// Table returns the underlying table for read-only queries
func (s *Session) Table() *game.Table {
	return s.table
}

// Bankroll returns the current credit balance
func (s *Session) Bankroll() int {
	return s.bankroll
}

// Bet returns the current bet
func (s *Session) Bet() int {
	return s.bet
}

// Phase returns the current round phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Stats returns the accumulated round statistics
func (s *Session) Stats() *statistics.Statistics {
	return &s.stats
}

// LastResult returns the most recently settled round, if any
func (s *Session) LastResult() (statistics.RoundResult, bool) {
	return s.lastResult, s.settled
}

// RaiseBet increases the bet by one step, capped by the bankroll.
// Only legal between rounds.
func (s *Session) RaiseBet() {
	if s.phase == PhasePlaying {
		return
	}
	s.bet = min(s.bet+s.betStep, s.bankroll)
}

// LowerBet decreases the bet by one step, floored at the minimum bet.
// Only legal between rounds.
func (s *Session) LowerBet() {
	if s.phase == PhasePlaying {
		return
	}
	s.bet = max(s.bet-s.betStep, s.betMin)
}

// Deal starts a round: two cards to the player, one to the dealer.
// Fails with ErrInsufficientCredits when the bankroll no longer covers
// the bet.
func (s *Session) Deal() error {
	if s.phase == PhasePlaying {
		return ErrWrongPhase
	}
	if s.bankroll < s.bet {
		return ErrInsufficientCredits
	}
	s.table.Deal()
	s.roundStart = s.clock.Now()
	s.phase = PhasePlaying
	s.logger.Debug("round dealt",
		"player", s.table.Player(), "dealer", s.table.Dealer(), "bet", s.bet)
	return nil
}

// Hit deals the player one more card; a bust settles the round as a loss
func (s *Session) Hit() error {
	if s.phase != PhasePlaying {
		return ErrWrongPhase
	}
	s.table.Draw(game.SeatPlayer)
	if s.table.Player().IsBust() {
		s.settle(statistics.ResultLose, true)
	}
	return nil
}

// Stand ends the player's turn: the dealer draws to 17 or better
// (standing on any 17, soft or hard) and the round settles.
func (s *Session) Stand() error {
	if s.phase != PhasePlaying {
		return ErrWrongPhase
	}
	for s.table.Dealer().Value() < 17 {
		s.table.Draw(game.SeatDealer)
	}

	playerTotal := s.table.Player().Value()
	dealerTotal := s.table.Dealer().Value()
	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		s.settle(statistics.ResultWin, false)
	case playerTotal == dealerTotal:
		s.settle(statistics.ResultPush, false)
	default:
		s.settle(statistics.ResultLose, false)
	}
	return nil
}

// settle transfers the bet and records the round. A win credits the bet,
// a loss debits it, a push returns the wager untouched.
func (s *Session) settle(result statistics.Result, bust bool) {
	var net int
	switch result {
	case statistics.ResultWin:
		net = s.bet
	case statistics.ResultLose:
		net = -s.bet
	}
	s.bankroll += net

	s.lastResult = statistics.RoundResult{
		Net:      net,
		Result:   result,
		Bust:     bust,
		Natural:  s.table.Player().IsBlackjack(),
		Duration: s.clock.Since(s.roundStart),
	}
	s.settled = true
	s.stats.Add(s.lastResult)
	s.phase = PhaseRoundOver

	s.logger.Debug("round settled",
		"result", result, "net", net, "bankroll", s.bankroll,
		"player", s.table.Player().Value(), "dealer", s.table.Dealer().Value())
}
