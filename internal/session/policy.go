package session

import (
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/statistics"
	"github.com/lox/blackjack-coach/internal/strategy"
)

// Policy decides the player's action for autoplayed rounds
type Policy interface {
	Action(table *game.Table) strategy.Action
}

// AdvisorPolicy plays rounds by following the basic-strategy advisor
type AdvisorPolicy struct{}

// Action returns the advisor's recommendation for the current table state
func (AdvisorPolicy) Action(t *game.Table) strategy.Action {
	up, ok := t.DealerUpCard()
	if !ok {
		return strategy.Stand
	}
	return strategy.Recommend(t.Player(), up)
}

// PlayRound deals and plays one full round under the given policy.
// Split isn't playable at this table, so a Split recommendation takes a
// card instead; ConsiderOdds stands.
func (s *Session) PlayRound(policy Policy) error {
	if err := s.Deal(); err != nil {
		return err
	}
	for s.phase == PhasePlaying {
		switch policy.Action(s.table) {
		case strategy.Hit, strategy.Split:
			if err := s.Hit(); err != nil {
				return err
			}
		default:
			if err := s.Stand(); err != nil {
				return err
			}
		}
	}
	return nil
}

// AutoPlay plays up to rounds rounds under the policy, stopping early if
// the bankroll can no longer cover the bet. Returns the rounds played.
func (s *Session) AutoPlay(rounds int, policy Policy) (int, *statistics.Statistics, error) {
	played := 0
	for i := 0; i < rounds; i++ {
		if err := s.PlayRound(policy); err != nil {
			if err == ErrInsufficientCredits {
				s.logger.Info("bankroll exhausted", "rounds", played, "bankroll", s.bankroll)
				break
			}
			return played, &s.stats, err
		}
		played++
	}
	if err := s.stats.Validate(); err != nil {
		return played, &s.stats, err
	}
	return played, &s.stats, nil
}
