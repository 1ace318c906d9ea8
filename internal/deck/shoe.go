package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a single deck
const DeckSize = 52

// ErrInvalidDecks is returned when a shoe is constructed with fewer
// than one deck.
var ErrInvalidDecks = errors.New("shoe requires at least one deck")

// Shoe is a multi-deck pool of undrawn cards. It is not safe for
// concurrent use; the owning game loop is the only mutator.
type Shoe struct {
	cards    []Card
	numDecks int
	rng      *rand.Rand
}

// NewShoe builds numDecks full 52-card decks and shuffles them with the
// provided rng. The rng is retained for reshuffles.
func NewShoe(numDecks int, rng *rand.Rand) (*Shoe, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDecks, numDecks)
	}
	s := &Shoe{numDecks: numDecks, rng: rng}
	s.rebuild()
	return s, nil
}

// NewStackedShoe builds a shoe that deals the given cards in order.
// Drawing past the stacked cards rebuilds a single shuffled deck.
// Intended for tests and scenario setup.
func NewStackedShoe(rng *rand.Rand, cards ...Card) *Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{cards: stacked, numDecks: 1, rng: rng}
}

func (s *Shoe) rebuild() {
	s.cards = make([]Card, 0, s.numDecks*DeckSize)
	for d := 0; d < s.numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
}

// shuffle performs a Fisher-Yates shuffle over the undrawn cards
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the next card. An empty shoe is first rebuilt
// to a full, freshly shuffled shoe of the same deck count, so Draw never
// fails. The second return value reports whether a rebuild happened;
// callers use it to reset counting state.
func (s *Shoe) Draw() (Card, bool) {
	reshuffled := false
	if len(s.cards) == 0 {
		s.rebuild()
		reshuffled = true
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, reshuffled
}

// Take removes the first undrawn copy of the given card, returning false
// if no copy remains. Used to set up known table states (the odds command
// and tests) while keeping shoe composition consistent.
func (s *Shoe) Take(card Card) bool {
	for i, c := range s.cards {
		if c == card {
			s.cards = append(s.cards[:i:i], s.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Remaining returns the number of undrawn cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// NumDecks returns the deck count the shoe was built with
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Snapshot returns a copy of the undrawn cards. The copy is safe to hand
// to a concurrent reader such as the outcome simulator.
func (s *Shoe) Snapshot() []Card {
	snap := make([]Card, len(s.cards))
	copy(snap, s.cards)
	return snap
}

// ValueFractions maps each blackjack point value (2..11, Ace as 11) to
// the fraction of the undrawn shoe holding that value.
type ValueFractions [12]float64

// Of returns the fraction for a point value, 0 for values outside 2..11
func (v ValueFractions) Of(value int) float64 {
	if value < 2 || value > 11 {
		return 0
	}
	return v[value]
}

// ValueFractions computes the next-card probability for each point value.
// An empty shoe yields all zeros rather than dividing by zero.
func (s *Shoe) ValueFractions() ValueFractions {
	var fractions ValueFractions
	if len(s.cards) == 0 {
		return fractions
	}
	var counts [12]int
	for _, c := range s.cards {
		counts[c.PointValue()]++
	}
	total := float64(len(s.cards))
	for value := 2; value <= 11; value++ {
		fractions[value] = float64(counts[value]) / total
	}
	return fractions
}
