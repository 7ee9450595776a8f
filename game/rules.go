package game

import "fmt"

// The 8 unit vectors a capture line can follow.
var directions = [8]struct{ dr, dc int }{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// captureLength returns how many opponent disks lie strictly between (row,
// col) and the next disk of the player's own color when walking in the
// given direction. It returns 0 if the walk hits an empty cell or the edge
// first.
func (b *Board) captureLength(p Player, row, col, dr, dc int) int {
	own, opp := p.Cell(), p.Opponent().Cell()
	n := 0
	r, c := row+dr, col+dc
	for InBounds(r, c) && b.cells[index(r, c)] == opp {
		n++
		r += dr
		c += dc
	}
	if n == 0 || !InBounds(r, c) || b.cells[index(r, c)] != own {
		return 0
	}
	return n
}

func (b *Board) isValid(p Player, row, col int) bool {
	if b.cells[index(row, col)] != CellEmpty {
		return false
	}
	for _, d := range directions {
		if b.captureLength(p, row, col, d.dr, d.dc) > 0 {
			return true
		}
	}
	return false
}

// IsValidMove reports whether the player may place a disk at (row, col):
// the cell is empty and at least one direction has a capture line.
func (b *Board) IsValidMove(p Player, row, col int) (bool, error) {
	if err := checkBounds(row, col); err != nil {
		return false, err
	}
	if !p.Valid() {
		return false, fmt.Errorf("%v: %w", p, ErrInvalidPlayer)
	}
	return b.isValid(p, row, col), nil
}

// HasValidMove reports whether the player has any legal move.
func (b *Board) HasValidMove(p Player) bool {
	if !p.Valid() {
		return false
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.isValid(p, row, col) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every legal move of the player in row-major order.
// The order is stable and is relied upon for deterministic search.
func (b *Board) LegalMoves(p Player) []Move {
	if !p.Valid() {
		return nil
	}
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.isValid(p, row, col) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// Mobility returns the number of legal moves of the player.
func (b *Board) Mobility(p Player) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.isValid(p, row, col) {
				n++
			}
		}
	}
	return n
}

// GameOver reports whether neither player can move.
func (b *Board) GameOver() bool {
	return !b.HasValidMove(Black) && !b.HasValidMove(White)
}

// MakeMove places the player's disk at (row, col) and flips every captured
// line. It returns the number of flipped disks. The move must be legal.
func (b *Board) MakeMove(p Player, row, col int) (int, error) {
	valid, err := b.IsValidMove(p, row, col)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, fmt.Errorf("%v at %v: %w", p, Move{Row: row, Col: col}, ErrIllegalMove)
	}
	return b.apply(p, row, col), nil
}

// Play is MakeMove addressed by a Move.
func (b *Board) Play(p Player, m Move) (int, error) {
	return b.MakeMove(p, m.Row, m.Col)
}

// ApplyLegal performs a move taken from LegalMoves without validating it again
// and returns the number of flipped disks. Searchers use it on scratch boards.
func (b *Board) ApplyLegal(p Player, m Move) int {
	return b.apply(p, m.Row, m.Col)
}

// apply performs an already validated move. All line lengths are measured
// before any disk is flipped so that one direction cannot affect another.
func (b *Board) apply(p Player, row, col int) int {
	var lengths [len(directions)]int
	for i, d := range directions {
		lengths[i] = b.captureLength(p, row, col, d.dr, d.dc)
	}

	own := p.Cell()
	b.cells[index(row, col)] = own
	flipped := 0
	for i, d := range directions {
		r, c := row, col
		for n := 0; n < lengths[i]; n++ {
			r += d.dr
			c += d.dc
			b.cells[index(r, c)] = own
		}
		flipped += lengths[i]
	}
	b.discs[p] += 1 + flipped
	b.discs[p.Opponent()] -= flipped
	return flipped
}
