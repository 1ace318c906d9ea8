// Package strategy implements a basic-strategy advisor: a deterministic
// mapping from hand state and dealer up card to a recommended action.
package strategy

import (
	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
)

// Action is a recommended play
type Action int

const (
	Hit Action = iota
	Stand
	Split
	Bust
	ConsiderOdds
)

// String returns the action as shown to the player
func (a Action) String() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case Split:
		return "Split"
	case Bust:
		return "Bust"
	case ConsiderOdds:
		return "Consider odds"
	default:
		return "unknown"
	}
}

// Recommend maps the player hand and dealer up card to an action. It is a
// pure function: no randomness, no mutation, and every input maps to a
// defined action.
//
// The rules apply in order, first match wins: bust, made 21, soft totals,
// pairs, then hard totals. Pair point values without an explicit rule
// (e.g. a pair of nines) fall through to ConsiderOdds, deferring to the
// odds panel rather than guessing.
func Recommend(player game.Hand, dealerUp deck.Card) Action {
	total := player.Value()
	// The up card keeps its raw point value here; an Ace reads as 11
	upValue := dealerUp.PointValue()

	switch {
	case total > 21:
		return Bust

	case total == 21:
		return Stand

	case player.IsSoft():
		switch {
		case total >= 19:
			return Stand
		case total == 18:
			if upValue < 9 {
				return Stand
			}
			return Hit
		default:
			return Hit
		}

	case player.IsPair():
		switch pairValue := player[0].PointValue(); {
		case pairValue == 8 || pairValue == 11:
			return Split
		case pairValue == 10:
			return Stand
		case pairValue <= 7:
			return Hit
		}
		// Unmatched pair values (nines) fall out to the default below
		return ConsiderOdds

	case total >= 17:
		return Stand

	case total <= 11:
		return Hit

	case total >= 12 && total <= 16:
		if upValue < 7 {
			return Stand
		}
		return Hit
	}

	return ConsiderOdds
}
