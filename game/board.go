package game

import "fmt"

// Board is the 8x8 grid, stored row-major, together with the disk count of
// each player. Boards are plain values: copying one yields an independent
// board. The zero value is not a valid position; use NewBoard.
type Board struct {
	cells [NumCells]Cell
	discs [2]int
}

// NewBoard returns a board set to the standard opening position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset sets the board to the standard opening: the four center cells
// occupied two-and-two, all other cells empty.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = CellEmpty
	}
	mid := Size / 2
	b.cells[index(mid-1, mid-1)] = CellWhite
	b.cells[index(mid, mid)] = CellWhite
	b.cells[index(mid-1, mid)] = CellBlack
	b.cells[index(mid, mid-1)] = CellBlack
	b.discs = [2]int{2, 2}
}

// InBounds reports whether (row, col) addresses a board cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func index(row, col int) int {
	return row*Size + col
}

func checkBounds(row, col int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("cell (%d, %d): %w", row, col, ErrOutOfRange)
	}
	return nil
}

// Cell returns the state of the cell at (row, col).
func (b *Board) Cell(row, col int) (Cell, error) {
	if err := checkBounds(row, col); err != nil {
		return CellEmpty, err
	}
	return b.cells[index(row, col)], nil
}

// SetCell overwrites the cell at (row, col) without applying any rules.
// It exists for restoring saved positions.
func (b *Board) SetCell(row, col int, c Cell) error {
	if err := checkBounds(row, col); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("cell (%d, %d) = %d: %w", row, col, c, ErrInvalidCell)
	}
	i := index(row, col)
	if old := b.cells[i]; old != CellEmpty {
		b.discs[old]--
	}
	if c != CellEmpty {
		b.discs[c]++
	}
	b.cells[i] = c
	return nil
}

// Score returns the number of disks the player has on the board.
func (b *Board) Score(p Player) int {
	if !p.Valid() {
		return 0
	}
	return b.discs[p]
}

// Empties returns the number of empty cells.
func (b *Board) Empties() int {
	return NumCells - b.discs[Black] - b.discs[White]
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Cells returns the row-major cell states.
func (b *Board) Cells() [NumCells]Cell {
	return b.cells
}
