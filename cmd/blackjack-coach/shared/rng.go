package shared

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack-coach/internal/randutil"
)

// SetupRNG builds a random source from an optional fixed seed, returning
// the seed actually used so it can be logged for replay.
func SetupRNG(seed *int64) (*rand.Rand, int64) {
	if seed != nil {
		return randutil.New(*seed), *seed
	}
	return randutil.NewFromTime()
}
