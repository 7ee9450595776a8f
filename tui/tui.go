// Package tui is the terminal front-end for a game against the computer.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"othello/engine"
	"othello/game"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	blackStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	whiteStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	legalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// resultMsg carries a computer move from the background search.
type resultMsg struct {
	from   <-chan engine.Result
	result engine.Result
}

type Model struct {
	session  *engine.Session
	waiting  <-chan engine.Result // Channel the running waitForResult reads
	cursor   game.Move
	snapshot string // File used by save and load; empty disables them
	status   string
	err      error
}

// New wraps a session. snapshot names the file that s and r write and read.
func New(session *engine.Session, snapshot string) Model {
	return Model{
		session:  session,
		waiting:  session.Pending(),
		cursor:   game.Move{Row: 2, Col: 3},
		snapshot: snapshot,
	}
}

func waitForResult(results <-chan engine.Result) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{from: results, result: <-results}
	}
}

// watch starts listening on the session's pending search, if it is not
// already being listened to. Results from any other channel are stale.
func (m *Model) watch() tea.Cmd {
	pending := m.session.Pending()
	if pending == m.waiting {
		return nil
	}
	m.waiting = pending
	if pending == nil {
		return nil
	}
	return waitForResult(pending)
}

func (m Model) Init() tea.Cmd {
	if m.waiting == nil {
		return nil
	}
	return waitForResult(m.waiting)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg)
	case resultMsg:
		current := msg.from == m.waiting
		if current {
			m.waiting = nil
		}
		r := msg.result
		if err := m.session.ApplyResult(r); err != nil {
			m.err = err
		} else if current && r.Found {
			m.status = fmt.Sprintf("%v played %v", r.Player, r.Move)
		}
		return m, m.watch()
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch k := msg.String(); k {
	case "q", "ctrl+c":
		m.session.Close()
		return m, tea.Quit
	case "up":
		m.cursor.Row = (m.cursor.Row + game.Size - 1) % game.Size
	case "down":
		m.cursor.Row = (m.cursor.Row + 1) % game.Size
	case "left":
		m.cursor.Col = (m.cursor.Col + game.Size - 1) % game.Size
	case "right":
		m.cursor.Col = (m.cursor.Col + 1) % game.Size
	case "a", "b", "c", "d", "e", "f", "g", "h":
		m.cursor.Col = int(k[0] - 'a')
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.cursor.Row = int(k[0] - '1')
	case "enter", " ":
		if err := m.session.Play(m.cursor.Row, m.cursor.Col); err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("you played %v", m.cursor)
		}
	case "n":
		m.session.NewGame()
		m.status = "new game"
	case "s":
		m.err = m.save()
	case "r":
		m.err = m.load()
	}
	return m, m.watch()
}

func (m *Model) save() error {
	if m.snapshot == "" {
		return errors.New("no snapshot file configured")
	}
	data, err := m.session.Snapshot().MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.snapshot, data, 0644); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	m.status = "saved to " + m.snapshot
	return nil
}

func (m *Model) load() error {
	if m.snapshot == "" {
		return errors.New("no snapshot file configured")
	}
	data, err := os.ReadFile(m.snapshot)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	var snap game.Snapshot
	if err := snap.UnmarshalBinary(data); err != nil {
		return err
	}
	if err := m.session.Restore(snap); err != nil {
		return err
	}
	m.status = "restored from " + m.snapshot
	return nil
}

func (m Model) View() string {
	b := m.session.Board()
	turn := m.session.Turn()
	human := m.session.Human()

	legal := map[game.Move]bool{}
	if turn == game.TurnOf(human) {
		for _, mv := range b.LegalMoves(human) {
			legal[mv] = true
		}
	}

	var rows strings.Builder
	rows.WriteString(labelStyle.Render("  a b c d e f g h") + "\n")
	for r := 0; r < game.Size; r++ {
		rows.WriteString(labelStyle.Render(fmt.Sprintf("%d", r+1)))
		for c := 0; c < game.Size; c++ {
			mv := game.Move{Row: r, Col: c}
			cell, _ := b.Cell(r, c)
			var s string
			switch {
			case cell == game.CellBlack:
				s = blackStyle.Render("●")
			case cell == game.CellWhite:
				s = whiteStyle.Render("○")
			case legal[mv]:
				s = legalStyle.Render("·")
			default:
				s = "."
			}
			if mv == m.cursor {
				s = cursorStyle.Render(s)
			}
			rows.WriteString(" " + s)
		}
		rows.WriteString("\n")
	}

	var out strings.Builder
	out.WriteString(boardStyle.Render(strings.TrimSuffix(rows.String(), "\n")) + "\n")
	out.WriteString(fmt.Sprintf("Black %d  White %d  (you play %v)\n",
		b.Score(game.Black), b.Score(game.White), human))
	out.WriteString(m.state(b, turn) + "\n")
	if m.status != "" {
		out.WriteString(m.status + "\n")
	}
	if m.err != nil {
		out.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	out.WriteString(helpStyle.Render("arrows/a-h/1-8 move · enter play · n new · s save · r load · q quit"))
	return out.String()
}

func (m Model) state(b *game.Board, turn game.TurnState) string {
	switch {
	case turn == game.GameOver:
		if w := engine.Winner(b); w != "Draw" {
			return "Game over: " + w + " wins"
		}
		return "Game over: draw"
	case turn == game.TurnOf(m.session.Human()):
		return "Your move"
	default:
		return "Computer is thinking..."
	}
}
