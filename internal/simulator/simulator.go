// Package simulator estimates blackjack outcome probabilities by Monte
// Carlo sampling against a read-only snapshot of the shoe.
package simulator

import (
	"io"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/randutil"
)

// Outcome tags the result of a single trial
type Outcome int

const (
	Bust Outcome = iota
	Win
	Push
	Lose
)

// Outcomes lists every outcome tag in display order
var Outcomes = [...]Outcome{Bust, Win, Push, Lose}

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Bust:
		return "bust"
	case Win:
		return "win"
	case Push:
		return "push"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Distribution maps each outcome to its estimated probability. The four
// entries sum to 1 (up to floating-point rounding): every trial tallies
// exactly one outcome.
type Distribution [4]float64

// Of returns the probability of an outcome
func (d Distribution) Of(o Outcome) float64 {
	return d[o]
}

// Sum returns the total probability mass, for sanity checks
func (d Distribution) Sum() float64 {
	return d[Bust] + d[Win] + d[Push] + d[Lose]
}

// tally accumulates per-outcome trial counts
type tally [4]int

func (t *tally) add(o Outcome) {
	t[o]++
}

func (t *tally) merge(other tally) {
	for i := range t {
		t[i] += other[i]
	}
}

func (t tally) distribution() Distribution {
	total := 0
	for _, n := range t {
		total += n
	}
	var d Distribution
	if total == 0 {
		return d
	}
	for i, n := range t {
		d[i] = float64(n) / float64(total)
	}
	return d
}

const (
	// DefaultTrials matches the estimator's defined trial semantics
	DefaultTrials = 1000

	// parallelThreshold is the trial count above which worker goroutines
	// are worth their startup cost
	parallelThreshold = 500

	maxWorkers = 8
)

// Config holds simulator options
type Config struct {
	Trials int
	Logger *log.Logger
}

// Simulator runs outcome estimations. It holds no table state; every
// estimate works from the snapshot passed in.
type Simulator struct {
	trials int
	logger *log.Logger
}

// New creates a simulator. A zero Trials falls back to DefaultTrials.
func New(cfg Config) *Simulator {
	trials := cfg.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{trials: trials, logger: logger.WithPrefix("simulator")}
}

// EstimateOutcomes estimates the {bust, win, push, lose} distribution for
// the current hands against a snapshot of the shoe's undrawn cards.
//
// A player hand that is already bust short-circuits to {bust: 1} without
// running trials. Otherwise each trial samples independently from the
// candidate pool (the snapshot minus any card matching one held in either
// hand): while the round is active the trial player takes exactly one
// more card, then a trial dealer draws until reaching 17 or better and
// the totals are compared. Draws are with replacement against the pool;
// true shoe depletion is deliberately not modelled.
func (s *Simulator) EstimateOutcomes(player, dealer game.Hand, shoe []deck.Card, roundActive bool, rng *rand.Rand) Distribution {
	if player.IsBust() {
		return Distribution{Bust: 1}
	}

	pool := candidatePool(shoe, player, dealer)

	var counts tally
	if s.trials >= parallelThreshold {
		counts = s.runParallel(player, dealer, pool, roundActive, rng)
	} else {
		counts = runTrials(player, dealer, pool, roundActive, s.trials, rng)
	}
	return counts.distribution()
}

// candidatePool filters the snapshot down to cards not matching any card
// already held in either hand. Held cards were drawn out of the shoe
// already, so this only strips duplicate copies in a multi-deck shoe.
func candidatePool(shoe []deck.Card, player, dealer game.Hand) []deck.Card {
	var held deck.CardSet
	for _, c := range player {
		held.Add(c)
	}
	for _, c := range dealer {
		held.Add(c)
	}

	pool := make([]deck.Card, 0, len(shoe))
	for _, c := range shoe {
		if !held.Contains(c) {
			pool = append(pool, c)
		}
	}
	return pool
}

// runParallel splits trials across workers, each with an independent rng
// derived from the caller's, and reduces the per-worker tallies.
func (s *Simulator) runParallel(player, dealer game.Hand, pool []deck.Card, roundActive bool, rng *rand.Rand) tally {
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}

	perWorker := s.trials / workers
	remainder := s.trials % workers

	var g errgroup.Group
	results := make(chan tally, workers)

	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		seed := rng.Int64()

		g.Go(func() error {
			workerRng := randutil.New(seed)
			results <- runTrials(player, dealer, pool, roundActive, trials, workerRng)
			return nil
		})
	}

	g.Wait() //nolint:errcheck // workers never fail
	close(results)

	var counts tally
	for result := range results {
		counts.merge(result)
	}
	return counts
}

func runTrials(player, dealer game.Hand, pool []deck.Card, roundActive bool, trials int, rng *rand.Rand) tally {
	var counts tally

	// Trial-local hands are reused across trials
	trialPlayer := make(game.Hand, 0, len(player)+1)
	trialDealer := make(game.Hand, 0, len(dealer)+8)

	for i := 0; i < trials; i++ {
		trialPlayer = append(trialPlayer[:0], player...)
		if roundActive && len(pool) > 0 {
			trialPlayer = append(trialPlayer, pool[rng.IntN(len(pool))])
		}

		playerTotal := trialPlayer.Value()
		if playerTotal > 21 {
			counts.add(Bust)
			continue
		}

		// Dealer always stands at 17 or above, soft or hard
		trialDealer = append(trialDealer[:0], dealer...)
		for trialDealer.Value() < 17 && len(pool) > 0 {
			trialDealer = append(trialDealer, pool[rng.IntN(len(pool))])
		}
		dealerTotal := trialDealer.Value()

		switch {
		case dealerTotal > 21 || playerTotal > dealerTotal:
			counts.add(Win)
		case playerTotal == dealerTotal:
			counts.add(Push)
		default:
			counts.add(Lose)
		}
	}
	return counts
}
