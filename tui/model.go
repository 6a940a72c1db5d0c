package tui

import (
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/gamemaster"
	"connectn/searcher/agent"
	"connectn/utils"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// computerMoveMsg carries the result of a search run off the UI loop.
type computerMoveMsg struct {
	move   game.Move
	metric metrics.SearchMetric
	err    error
}

// Model plays a human at the keyboard against a computer agent.
type Model struct {
	session  *gamemaster.Session
	computer agent.Agent
	human    game.Player
	profile  termenv.Profile

	cursor   int
	thinking bool
	status   string
	err      error
}

func NewModel(session *gamemaster.Session, computer agent.Agent, human game.Player, profile termenv.Profile) Model {
	m := Model{
		session:  session,
		computer: computer,
		human:    human,
		profile:  profile,
		cursor:   session.Board().Columns() / 2,
		status:   "your move",
	}
	if session.ToMove() != human && !session.Over() {
		m.thinking = true
		m.status = "computer is thinking..."
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.thinking {
		return m.computerMove()
	}
	return nil
}

// computerMove searches on a snapshot so the view can keep drawing the
// session meanwhile.
func (m Model) computerMove() tea.Cmd {
	board := m.session.Board()
	toMove := m.session.ToMove()
	computer := m.computer
	return func() tea.Msg {
		move, metric, err := computer.FindMove(board, toMove)
		return computerMoveMsg{move: move, metric: metric, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" || key == "esc" {
			return m, tea.Quit
		}
		if m.session.Over() {
			if key == "enter" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.thinking {
			return m, nil
		}
		return m.handleKey(key)

	case computerMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.err = fmt.Errorf("%s failed to find a move: %w", m.computer.Name(), msg.err)
			return m, tea.Quit
		}
		if _, err := m.session.Play(msg.move); err != nil {
			m.err = fmt.Errorf("%s played an illegal move: %w", m.computer.Name(), err)
			return m, tea.Quit
		}
		log.Debug().Msgf("computer dropped into column %d after %d episodes", msg.move, msg.metric.Episodes)
		m.status = fmt.Sprintf("computer played column %d, your move", msg.move+1)
		m.finish()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	columns := m.session.Board().Columns()
	switch key {
	case "left", "h":
		m.cursor = utils.Clamp(m.cursor-1, 0, columns-1)
	case "right", "l":
		m.cursor = utils.Clamp(m.cursor+1, 0, columns-1)
	case "enter", " ":
		return m.drop()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			column := int(key[0] - '1')
			if column < columns {
				m.cursor = column
				return m.drop()
			}
		}
	}
	return m, nil
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	_, err := m.session.Play(game.Move(m.cursor))
	if errors.Is(err, gamemaster.ErrIllegalMove) {
		m.status = fmt.Sprintf("column %d is full", m.cursor+1)
		return m, nil
	}
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	if m.finish() {
		return m, nil
	}
	m.thinking = true
	m.status = "computer is thinking..."
	return m, m.computerMove()
}

// finish sets the closing status once the session is over.
func (m *Model) finish() bool {
	result, over := m.session.Result()
	if !over {
		return false
	}
	winner, ok := result.Winner()
	switch {
	case !ok:
		m.status = "draw"
	case winner == m.human:
		m.status = "you win"
	default:
		m.status = "computer wins"
	}
	m.status += " - press enter or q to leave"
	return true
}

func (m Model) View() string {
	board := m.session.Board()
	var sb strings.Builder

	disc := m.profile.String(string(m.human.Disc().Rune())).Foreground(m.profile.Color(discColor(m.human))).String()
	if m.thinking || m.session.Over() {
		disc = " "
	}
	sb.WriteString(renderCursor(m.cursor, board.Columns(), disc))
	sb.WriteString(RenderBoard(board, m.profile))
	sb.WriteString("\n" + m.status + "\n")
	if !m.session.Over() {
		sb.WriteString("left/right to move, enter to drop, q to quit\n")
	}
	return sb.String()
}

// Err returns the error that ended the game early, if any.
func (m Model) Err() error {
	return m.err
}

// Result returns the outcome, false while the game is unfinished.
func (m Model) Result() (game.Result, bool) {
	return m.session.Result()
}

// Play runs the interactive game until it ends or the player quits.
func Play(session *gamemaster.Session, computer agent.Agent, human game.Player, in io.Reader, out io.Writer) (game.Result, bool, error) {
	model := NewModel(session, computer, human, termenv.EnvColorProfile())
	final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return game.Draw, false, fmt.Errorf("failed to run terminal ui: %w", err)
	}
	m := final.(Model)
	if m.Err() != nil {
		return game.Draw, false, m.Err()
	}
	result, over := m.Result()
	return result, over, nil
}
