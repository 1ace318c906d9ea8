// Package counter implements the Hi-Lo card counting index.
package counter

import "github.com/lox/blackjack-coach/internal/deck"

// State is a point-in-time view of the count
type State struct {
	Running int
	True    float64
}

// Counter maintains a Hi-Lo running count for one shoe. Observe must be
// called exactly once per card physically dealt into a hand; hypothetical
// cards drawn inside simulator trials are never counted.
type Counter struct {
	running int
}

// Observe adjusts the running count for a dealt card:
// 2-6 count +1, tens and Aces count -1, 7-9 are neutral.
func (c *Counter) Observe(card deck.Card) {
	value := card.PointValue()
	switch {
	case value >= 2 && value <= 6:
		c.running++
	case value >= 10:
		c.running--
	}
}

// Reset clears the count. Called when the shoe is rebuilt: the running
// count only means anything for the shoe it was accumulated against.
func (c *Counter) Reset() {
	c.running = 0
}

// Running returns the raw running count
func (c *Counter) Running() int {
	return c.running
}

// True normalises the running count by decks remaining in the shoe.
// An empty shoe yields 0 rather than dividing by zero.
func (c *Counter) True(remainingCards int) float64 {
	if remainingCards == 0 {
		return 0
	}
	remainingDecks := float64(remainingCards) / float64(deck.DeckSize)
	return float64(c.running) / remainingDecks
}

// State captures the running and true count for the given shoe depth
func (c *Counter) State(remainingCards int) State {
	return State{Running: c.running, True: c.True(remainingCards)}
}
