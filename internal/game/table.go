package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-coach/internal/counter"
	"github.com/lox/blackjack-coach/internal/deck"
)

// Seat identifies which hand a card is dealt into
type Seat int

const (
	SeatPlayer Seat = iota
	SeatDealer
)

// String returns the seat name
func (s Seat) String() string {
	switch s {
	case SeatPlayer:
		return "player"
	case SeatDealer:
		return "dealer"
	default:
		return "unknown"
	}
}

// Config holds table construction options
type Config struct {
	Decks  int
	Logger *log.Logger
}

// Table owns one session's shoe, both hands and the Hi-Lo counter.
// It is mutated by a single game-loop caller; simulations operate on
// snapshots taken before trials launch.
type Table struct {
	shoe    *deck.Shoe
	counter counter.Counter
	player  Hand
	dealer  Hand
	logger  *log.Logger
}

// NewTable builds a table with a freshly shuffled shoe of cfg.Decks decks.
// Fails with deck.ErrInvalidDecks when cfg.Decks < 1.
func NewTable(rng *rand.Rand, cfg Config) (*Table, error) {
	shoe, err := deck.NewShoe(cfg.Decks, rng)
	if err != nil {
		return nil, err
	}
	return NewTableWithShoe(shoe, cfg.Logger), nil
}

// NewTableWithShoe builds a table around an existing shoe. Used by tests
// and the odds command to set up known states via stacked shoes.
func NewTableWithShoe(shoe *deck.Shoe, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		shoe:   shoe,
		logger: logger.WithPrefix("table"),
	}
}

// NewRound clears both hands. The shoe and count carry over between rounds.
func (t *Table) NewRound() {
	t.player = nil
	t.dealer = nil
}

// Deal starts a round: two cards to the player, one to the dealer.
// The dealer's second card is only drawn when the dealer plays.
func (t *Table) Deal() {
	t.NewRound()
	t.Draw(SeatPlayer)
	t.Draw(SeatPlayer)
	t.Draw(SeatDealer)
}

// Draw deals one card from the shoe into the given seat's hand and
// updates the count. An exhausted shoe is transparently rebuilt and
// reshuffled; the running count resets with it since a Hi-Lo count is
// only meaningful against the shoe it was accumulated from.
func (t *Table) Draw(seat Seat) deck.Card {
	card, reshuffled := t.shoe.Draw()
	if reshuffled {
		t.counter.Reset()
		t.logger.Debug("shoe exhausted, rebuilt and reshuffled", "decks", t.shoe.NumDecks())
	}
	t.counter.Observe(card)
	switch seat {
	case SeatPlayer:
		t.player = append(t.player, card)
	case SeatDealer:
		t.dealer = append(t.dealer, card)
	}
	t.logger.Debug("dealt card", "seat", seat, "card", card)
	return card
}

// Force deals a specific card from the shoe into the given seat's hand,
// counting it like any other draw. Returns false if no undrawn copy of
// the card remains. Used to set up known scenarios.
func (t *Table) Force(seat Seat, card deck.Card) bool {
	if !t.shoe.Take(card) {
		return false
	}
	t.counter.Observe(card)
	switch seat {
	case SeatPlayer:
		t.player = append(t.player, card)
	case SeatDealer:
		t.dealer = append(t.dealer, card)
	}
	return true
}

// Player returns the player's hand
func (t *Table) Player() Hand {
	return t.player
}

// Dealer returns the dealer's hand
func (t *Table) Dealer() Hand {
	return t.dealer
}

// DealerUpCard returns the dealer's visible card; ok is false before the
// dealer has been dealt one.
func (t *Table) DealerUpCard() (deck.Card, bool) {
	if len(t.dealer) == 0 {
		return deck.Card{}, false
	}
	return t.dealer[0], true
}

// Remaining returns the number of undrawn cards in the shoe
func (t *Table) Remaining() int {
	return t.shoe.Remaining()
}

// ShoeSnapshot returns a copy of the undrawn shoe for simulation
func (t *Table) ShoeSnapshot() []deck.Card {
	return t.shoe.Snapshot()
}

// CardProbabilities returns the next-card probability for each point value
func (t *Table) CardProbabilities() deck.ValueFractions {
	return t.shoe.ValueFractions()
}

// CountState returns the Hi-Lo running and true count
func (t *Table) CountState() counter.State {
	return t.counter.State(t.shoe.Remaining())
}
