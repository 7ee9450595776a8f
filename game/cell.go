package game

import "fmt"

// Cell is the state of a single board cell. The numeric values are the
// snapshot codes.
type Cell uint8

const (
	CellBlack Cell = iota
	CellWhite
	CellEmpty
)

func (c Cell) Valid() bool {
	return c <= CellEmpty
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "x"
	case CellWhite:
		return "o"
	case CellEmpty:
		return "."
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Player is the side to move. Its value matches the Cell holding its disks.
type Player uint8

const (
	Black Player = iota
	White
)

func (p Player) Valid() bool {
	return p <= White
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return p ^ 1
}

// Cell returns the cell state occupied by the player's disks.
func (p Player) Cell() Cell {
	return Cell(p)
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return fmt.Sprintf("Player(%d)", uint8(p))
	}
}

// Move addresses a board cell by row and column.
type Move struct {
	Row int
	Col int
}

// String formats the move as column letter and 1-based row, e.g. "d3".
func (m Move) String() string {
	if !InBounds(m.Row, m.Col) {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove parses a move in the "d3" notation. Column letters may be upper
// or lower case.
func ParseMove(s string) (Move, error) {
	if len(s) != 2 {
		return Move{}, fmt.Errorf("parse move %q: %w", s, ErrOutOfRange)
	}
	c := s[0]
	if c >= 'A' && c <= 'H' {
		c += 'a' - 'A'
	}
	m := Move{Row: int(s[1]) - '1', Col: int(c) - 'a'}
	if !InBounds(m.Row, m.Col) {
		return Move{}, fmt.Errorf("parse move %q: %w", s, ErrOutOfRange)
	}
	return m, nil
}
