package game

import (
	"fmt"
	"strings"
)

const columnLabels = " abcdefgh "

// String renders the board in the text notation:
//
//	 abcdefgh
//	1........1
//	...
//	8........8
//	 abcdefgh
//
// with x for black disks, o for white disks and . for empty cells. Every
// line, including the last, ends with a newline.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString(columnLabels + "\n")
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < Size; col++ {
			sb.WriteString(b.cells[index(row, col)].String())
		}
		sb.WriteByte(byte('1' + row))
		sb.WriteByte('\n')
	}
	sb.WriteString(columnLabels + "\n")
	return sb.String()
}

// ParseBoard reads a board in the notation produced by String. Leading and
// trailing blank lines are ignored, and so is trailing whitespace on the
// label lines.
func ParseBoard(s string) (*Board, error) {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	if len(lines) != Size+2 {
		return nil, fmt.Errorf("parse board: %d lines, want %d: %w", len(lines), Size+2, ErrInvalidBoard)
	}

	b := &Board{}
	for row := 0; row < Size; row++ {
		line := lines[row+1]
		if len(line) < Size+2 {
			return nil, fmt.Errorf("parse board: row %d too short: %w", row+1, ErrInvalidBoard)
		}
		for col := 0; col < Size; col++ {
			var c Cell
			switch line[col+1] {
			case 'x':
				c = CellBlack
			case 'o':
				c = CellWhite
			case '.':
				c = CellEmpty
			default:
				return nil, fmt.Errorf("parse board: unexpected %q at %v: %w",
					line[col+1], Move{Row: row, Col: col}, ErrInvalidBoard)
			}
			b.cells[index(row, col)] = c
			if c != CellEmpty {
				b.discs[c]++
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for literals known to be well formed.
func MustParseBoard(s string) *Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
