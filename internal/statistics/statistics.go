// Package statistics aggregates round results for session summaries and
// batch simulation reports.
package statistics

import (
	"fmt"
	"math"
	"time"
)

// Result is the settled outcome of a round
type Result int

const (
	ResultWin Result = iota
	ResultLose
	ResultPush
)

// String returns the result name
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	default:
		return "unknown"
	}
}

// RoundResult represents the settled outcome of a single round
type RoundResult struct {
	Net      int           // Credits won (positive) or lost (negative)
	Result   Result        // How the round settled
	Bust     bool          // Player busted (a loss by busting)
	Natural  bool          // Player was dealt a two-card 21
	Duration time.Duration // Wall time from deal to settlement
}

// Statistics tracks aggregate results across rounds
type Statistics struct {
	Rounds int
	Wins   int
	Losses int
	Pushes int
	Busts  int

	Naturals int

	Net     int     // Total credits won/lost
	SumNet  float64 // For mean calculation
	SumNet2 float64 // Sum of squares for variance calculation

	TotalDuration time.Duration
}

// Add incorporates a round result
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	net := float64(result.Net)
	s.Net += result.Net
	s.SumNet += net
	s.SumNet2 += net * net
	s.TotalDuration += result.Duration

	switch result.Result {
	case ResultWin:
		s.Wins++
	case ResultLose:
		s.Losses++
	case ResultPush:
		s.Pushes++
	}
	if result.Bust {
		s.Busts++
	}
	if result.Natural {
		s.Naturals++
	}
}

// Mean returns the arithmetic mean of per-round net credits
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of per-round net credits
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of rounds lost
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// PushRate returns the fraction of rounds pushed
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

// BustRate returns the fraction of rounds lost by busting
func (s *Statistics) BustRate() float64 {
	return s.rate(s.Busts)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// Validate performs internal consistency checks before reporting
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Pushes != s.Rounds {
		return fmt.Errorf("results don't partition rounds: %d wins + %d losses + %d pushes != %d rounds",
			s.Wins, s.Losses, s.Pushes, s.Rounds)
	}
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losses (%d)", s.Busts, s.Losses)
	}
	return nil
}
