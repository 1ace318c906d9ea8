package game

import (
	"strings"

	"github.com/lox/blackjack-coach/internal/deck"
)

// Hand is an ordered sequence of cards belonging to the player or dealer.
// Order never affects valuation.
type Hand []deck.Card

// Value returns the maximal legal blackjack total: every Ace starts at 11
// and is demoted to 1 while the total exceeds 21 and a demotable Ace
// remains. A returned value above 21 means the hand is bust.
func (h Hand) Value() int {
	total, _ := h.value()
	return total
}

// IsSoft reports whether at least one Ace is still counted as 11 after
// demotion.
func (h Hand) IsSoft() bool {
	_, soft := h.value()
	return soft
}

func (h Hand) value() (total int, soft bool) {
	aces := 0
	for _, c := range h {
		if c.IsAce() {
			aces++
		} else {
			total += c.PointValue()
		}
	}
	total += 11 * aces
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBust reports whether the hand total exceeds 21
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// IsPair reports whether the hand is exactly two cards of equal rank
func (h Hand) IsPair() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

// IsBlackjack reports whether the hand is a natural: two cards totalling 21
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// String returns the hand as space-separated card notation (e.g. "A♠ K♦")
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
