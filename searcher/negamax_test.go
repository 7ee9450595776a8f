package searcher

import (
	"context"
	"errors"
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const winningMoveBoard = `
 abcdefgh 
1.....x.o1
2oxxxx.oo2
3oxxxxooo3
4oxoxoxoo4
5ooxoxxoo5
6oooxoooo6
7ooooxoox7
8oxxxxxxx8
 abcdefgh 
`

const blackOnlyBoard = `
 abcdefgh 
1xxxxxxxx1
2........2
3........3
4........4
5........5
6........6
7........7
8........8
 abcdefgh 
`

func TestNegamaxComputeMove(t *testing.T) {
	t.Run("finds the winning endgame move", func(t *testing.T) {
		b := game.MustParseBoard(winningMoveBoard)
		before := *b

		a, err := NewNegamax(WithMetrics()).Analyze(context.Background(), b, game.White)

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0}, a.Move, "White should play a1")
		require.True(t, a.Metric.Endgame, "Seven empties should be solved exactly")
		require.Equal(t, 18*game.FinalWeight, a.Metric.Score, "a1 should win by 18 disks")
		require.Equal(t, before, *b, "Search should not mutate the board")
	})

	t.Run("breaks ties by listing order", func(t *testing.T) {
		// The four opening moves are symmetric, so all score the same.
		for depth := 1; depth <= 4; depth++ {
			m, err := NewNegamax(WithDepth(depth)).ComputeMove(context.Background(), game.NewBoard(), game.Black)
			require.NoError(t, err)
			require.Equal(t, game.Move{Row: 2, Col: 3}, m, "Depth %d should pick the first listed move", depth)
		}
	})

	t.Run("depth one maximizes the evaluation", func(t *testing.T) {
		a, err := NewNegamax(WithDepth(1), WithMetrics()).Analyze(context.Background(), game.NewBoard(), game.Black)
		require.NoError(t, err)

		after := game.NewBoard()
		_, err = after.Play(game.Black, a.Move)
		require.NoError(t, err)
		require.Equal(t, game.EvaluatePosition(after, game.Black), a.Metric.Score)
		require.Equal(t, 1, a.Metric.Depth)
	})

	t.Run("fails without a legal move", func(t *testing.T) {
		b := game.MustParseBoard(blackOnlyBoard)
		_, err := NewNegamax().ComputeMove(context.Background(), b, game.White)
		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("returns a legal move throughout a game", func(t *testing.T) {
		n := NewNegamax(WithDepth(2), WithEndgameThreshold(6))
		b := game.NewBoard()
		turn := game.BlacksMove
		for turn != game.GameOver {
			p, _ := turn.ToMove()
			before := *b
			m, err := n.ComputeMove(context.Background(), b, p)
			require.NoError(t, err)
			require.Equal(t, before, *b, "Search should leave the board bit-for-bit unchanged")

			valid, err := b.IsValidMove(p, m.Row, m.Col)
			require.NoError(t, err)
			require.True(t, valid, "%v should be legal for %v", m, p)

			_, err = b.Play(p, m)
			require.NoError(t, err)
			turn = game.NextTurn(b, p)
		}
	})
}

func TestNegamaxEndgameMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := NewNegamax(WithEndgameThreshold(8), WithMetrics())

	for g := 0; g < 5; g++ {
		b, p := randomPosition(rng, 8)
		if b == nil {
			continue
		}
		a, err := n.Analyze(context.Background(), b, p)
		require.NoError(t, err)
		require.Equal(t, minimax(b, p), a.Metric.Score, "Alpha-beta should agree with plain minimax\n%s", b)
	}
}

func TestNegamaxCancellation(t *testing.T) {
	t.Run("cancelled before starting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := game.NewBoard()

		_, err := NewNegamax().ComputeMove(ctx, b, game.Black)

		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, *game.NewBoard(), *b)
	})

	t.Run("cancelled mid-search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		calls := 0
		evaluate := func(b *game.Board, p game.Player) int {
			calls++
			if calls == 100 {
				cancel()
			}
			return game.EvaluatePosition(b, p)
		}
		b := game.NewBoard()

		a, err := NewNegamax(WithDepth(6), WithEvaluationFn(evaluate)).Analyze(ctx, b, game.Black)

		require.True(t, errors.Is(err, context.Canceled), "Cancelled search should report the context error")
		require.Equal(t, Analysis{}, a, "Cancelled search should not return a move")
		require.Equal(t, *game.NewBoard(), *b)
	})

	t.Run("budget never cancels the first iteration", func(t *testing.T) {
		a, err := NewNegamax(WithNodeBudget(1), WithMetrics()).Analyze(context.Background(), game.NewBoard(), game.Black)

		require.NoError(t, err)
		require.Equal(t, 1, a.Metric.Depth, "Only the first iteration should complete")
		require.Equal(t, game.Move{Row: 2, Col: 3}, a.Move)
	})

	t.Run("larger budgets search deeper", func(t *testing.T) {
		small, err := NewNegamax(WithNodeBudget(50), WithMetrics()).Analyze(context.Background(), game.NewBoard(), game.Black)
		require.NoError(t, err)
		large, err := NewNegamax(WithNodeBudget(20000), WithMetrics()).Analyze(context.Background(), game.NewBoard(), game.Black)
		require.NoError(t, err)

		require.Greater(t, large.Metric.Depth, small.Metric.Depth)
	})
}

func TestRandom(t *testing.T) {
	r := NewRandom(1)
	b := game.NewBoard()
	for i := 0; i < 20; i++ {
		m, err := r.ComputeMove(context.Background(), b, game.Black)
		require.NoError(t, err)
		require.Contains(t, b.LegalMoves(game.Black), m)
	}

	_, err := r.ComputeMove(context.Background(), game.MustParseBoard(blackOnlyBoard), game.White)
	require.ErrorIs(t, err, ErrNoLegalMove, "White has no disk to capture with")
}

// randomPosition plays random moves until at most empties cells are empty
// and returns the position with the side to move, or nil if the game ended.
func randomPosition(rng *rand.Rand, empties int) (*game.Board, game.Player) {
	b := game.NewBoard()
	turn := game.BlacksMove
	for b.Empties() > empties {
		p, ok := turn.ToMove()
		if !ok {
			return nil, game.Black
		}
		moves := b.LegalMoves(p)
		b.ApplyLegal(p, moves[rng.Intn(len(moves))])
		turn = game.NextTurn(b, p)
	}
	p, ok := turn.ToMove()
	if !ok {
		return nil, game.Black
	}
	return b, p
}

// minimax is an exhaustive search without pruning.
func minimax(b *game.Board, p game.Player) int {
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		if !b.HasValidMove(p.Opponent()) {
			return game.FinalScore(b, p)
		}
		return -minimax(b, p.Opponent())
	}
	best := -inf
	for _, m := range moves {
		child := *b
		child.ApplyLegal(p, m)
		if v := -minimax(&child, p.Opponent()); v > best {
			best = v
		}
	}
	return best
}

func BenchmarkNegamax5(b *testing.B) {
	n := NewNegamax(WithDepth(5), WithEndgameThreshold(0))
	board := game.NewBoard()
	for i := 0; i < b.N; i++ {
		n.ComputeMove(context.Background(), board, game.Black)
	}
}

func BenchmarkIterativeNegamax(b *testing.B) {
	n := NewNegamax(WithNodeBudget(50000))
	board := game.NewBoard()
	for i := 0; i < b.N; i++ {
		n.ComputeMove(context.Background(), board, game.Black)
	}
}
