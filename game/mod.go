// Package game implements the Othello board, its rules and position evaluation.
package game

import "errors"

// Size is the number of rows and columns on the board.
const Size = 8

// NumCells is the number of cells on the board.
const NumCells = Size * Size

var (
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidCell     = errors.New("invalid cell state")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Evaluates the position to a score from the given player's perspective.
// Implementations must be zero-sum: Evaluate(b, p) == -Evaluate(b, p.Opponent()).
type Evaluate func(b *Board, p Player) int
