package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack-coach/internal/deck"
	"github.com/lox/blackjack-coach/internal/game"
	"github.com/lox/blackjack-coach/internal/session"
	"github.com/lox/blackjack-coach/internal/simulator"
)

const barWidth = 24

// View renders the table and the probability panel
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		"",
		m.dealerView(),
		"",
		m.playerView(),
		"",
		MessageStyle.Render(m.promptView()),
		"",
		InfoStyle.Render("space deal · h hit · s stand · ↑/↓ bet · q quit"),
	)

	right := PanelStyle.Render(m.panelView())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) headerView() string {
	count := m.session.Table().CountState()
	header := fmt.Sprintf(" Credits: $%d   Bet: $%d   Run: %+d   True: %+.1f ",
		m.session.Bankroll(), m.session.Bet(), count.Running, count.True)
	return HeaderStyle.Render(header)
}

func (m Model) dealerView() string {
	table := m.session.Table()
	label := TitleStyle.Render("Dealer")
	if len(table.Dealer()) == 0 {
		return label + "\n" + InfoStyle.Render("(waiting for deal)")
	}
	line := renderHand(table.Dealer())
	if m.session.Phase() != session.PhasePlaying {
		line += HandInfoStyle.Render(fmt.Sprintf("  = %d", table.Dealer().Value()))
	}
	return label + "\n" + line
}

func (m Model) playerView() string {
	table := m.session.Table()
	label := TitleStyle.Render("Your Hand")
	if len(table.Player()) == 0 {
		return label + "\n" + InfoStyle.Render("(waiting for deal)")
	}
	total := table.Player().Value()
	suffix := fmt.Sprintf("  = %d", total)
	if table.Player().IsSoft() {
		suffix += " (soft)"
	}
	return label + "\n" + renderHand(table.Player()) + HandInfoStyle.Render(suffix)
}

func (m Model) promptView() string {
	switch m.session.Phase() {
	case session.PhaseBetting:
		return "Press SPACE to deal. UP/DOWN to adjust bet."
	case session.PhasePlaying:
		return "Press H to hit, S to stand."
	case session.PhaseRoundOver:
		result, ok := m.session.LastResult()
		if !ok {
			return "Press SPACE to play again."
		}
		switch {
		case result.Bust:
			return "Bust! Press SPACE to play again."
		case result.Net > 0:
			return "You win! Press SPACE to play again."
		case result.Net < 0:
			return "Dealer wins. Press SPACE to play again."
		default:
			return "Push. Press SPACE to play again."
		}
	}
	return ""
}

func (m Model) panelView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Probability Analysis"))
	b.WriteString("\n\n")

	if m.hasDeal {
		for _, outcome := range simulator.Outcomes {
			b.WriteString(renderBar(outcome, m.dist.Of(outcome)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Recommended Action"))
		b.WriteString("\n")
		b.WriteString(AdviceStyle.Render(m.advice.String()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(InfoStyle.Render("Deal a hand to see outcome odds."))
		b.WriteString("\n\n")
	}

	b.WriteString(TitleStyle.Render("Next Card Probabilities"))
	b.WriteString("\n")
	b.WriteString(renderCardProbabilities(m.session.Table().CardProbabilities()))

	if len(m.logLines) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Rounds"))
		b.WriteString("\n")
		b.WriteString(m.roundLog.View())
	}

	return b.String()
}

// renderHand renders cards with red suits highlighted
func renderHand(h game.Hand) string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// renderBar renders one outcome as a labelled proportional bar
func renderBar(outcome simulator.Outcome, prob float64) string {
	filled := int(prob*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	style := LoseBarStyle
	switch outcome {
	case simulator.Win:
		style = WinBarStyle
	case simulator.Push:
		style = PushBarStyle
	}
	return fmt.Sprintf("%-5s %s %5.1f%%", outcome, style.Render(bar), prob*100)
}

// renderCardProbabilities lays the ten point values out in two columns
func renderCardProbabilities(fractions deck.ValueFractions) string {
	var rows []string
	for row := 0; row < 5; row++ {
		left := row + 2
		right := row + 7
		rows = append(rows, fmt.Sprintf("%s   %s",
			cardProbCell(left, fractions.Of(left)),
			cardProbCell(right, fractions.Of(right))))
	}
	return strings.Join(rows, "\n")
}

func cardProbCell(value int, prob float64) string {
	label := fmt.Sprintf("%d", value)
	if value == 11 {
		label = "A"
	}
	return fmt.Sprintf("Card %-2s %5.1f%%", label, prob*100)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
