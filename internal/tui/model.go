// Package tui renders the playable table with the live probability panel:
// outcome bars, next-card odds, the Hi-Lo count and the advisor's
// recommendation, recomputed after every state change.
package tui

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-coach/internal/session"
	"github.com/lox/blackjack-coach/internal/simulator"
	"github.com/lox/blackjack-coach/internal/strategy"
)

// Model is the Bubble Tea model for the coach table
type Model struct {
	session *session.Session
	sim     *simulator.Simulator
	rng     *rand.Rand
	logger  *log.Logger

	roundLog viewport.Model
	logLines []string

	// Feedback recomputed after every state change
	dist    simulator.Distribution
	advice  strategy.Action
	hasDeal bool

	width    int
	height   int
	quitting bool
}

// New creates the TUI model around a session. The rng drives the Monte
// Carlo estimates; the session owns its own shuffle source.
func New(sess *session.Session, sim *simulator.Simulator, rng *rand.Rand, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vp := viewport.New(40, 8)
	vp.SetContent("")
	return Model{
		session:  sess,
		sim:      sim,
		rng:      rng,
		logger:   logger.WithPrefix("tui"),
		roundLog: vp,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.roundLog.Width = max(msg.Width/3, 30)
		m.roundLog.Height = max(msg.Height-16, 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case " ":
			if m.session.Phase() != session.PhasePlaying {
				if err := m.session.Deal(); err != nil {
					m.logger.Debug("deal refused", "err", err)
					break
				}
				m.refresh()
			}

		case "h":
			if err := m.session.Hit(); err == nil {
				m.afterAction()
			}

		case "s":
			if err := m.session.Stand(); err == nil {
				m.afterAction()
			}

		case "up", "k":
			m.session.RaiseBet()

		case "down", "j":
			m.session.LowerBet()
		}
	}

	var cmd tea.Cmd
	m.roundLog, cmd = m.roundLog.Update(msg)
	return m, cmd
}

// refresh recomputes the probability panel for the current table state.
// Nothing is cached: every query recomputes from the live shoe snapshot.
func (m *Model) refresh() {
	table := m.session.Table()
	player := table.Player()
	if len(player) == 0 {
		m.hasDeal = false
		return
	}
	m.hasDeal = true

	active := m.session.Phase() == session.PhasePlaying
	m.dist = m.sim.EstimateOutcomes(player, table.Dealer(), table.ShoeSnapshot(), active, m.rng)

	if up, ok := table.DealerUpCard(); ok {
		m.advice = strategy.Recommend(player, up)
	}
}

// afterAction refreshes feedback and, when the action settled the round,
// appends it to the round log.
func (m *Model) afterAction() {
	m.refresh()
	if m.session.Phase() != session.PhaseRoundOver {
		return
	}
	result, ok := m.session.LastResult()
	if !ok {
		return
	}
	table := m.session.Table()
	line := fmt.Sprintf("#%d %s %+d (you %d, dealer %d)",
		m.session.Stats().Rounds, result.Result, result.Net,
		table.Player().Value(), table.Dealer().Value())
	m.logLines = append(m.logLines, line)
	m.roundLog.SetContent(joinLines(m.logLines))
	m.roundLog.GotoBottom()
}
