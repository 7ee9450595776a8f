// Package searcher selects moves for the computer player.
package searcher

import (
	"context"
	"errors"

	"othello/experiments/metrics"
	"othello/game"
)

var ErrNoLegalMove = errors.New("no legal move")

// Searcher picks a move for p on b. It must not mutate b. A cancelled
// context yields the context's error and no move.
type Searcher interface {
	ComputeMove(ctx context.Context, b *game.Board, p game.Player) (game.Move, error)
}

// Analysis is the outcome of a completed search.
type Analysis struct {
	Move   game.Move
	Metric metrics.SearchMetric
}

// Analyzer is a Searcher that also reports how it reached its decision.
type Analyzer interface {
	Searcher
	Analyze(ctx context.Context, b *game.Board, p game.Player) (Analysis, error)
}
