package engine

import (
	"context"
	"testing"
	"time"

	"othello/game"
	"othello/searcher"

	"github.com/stretchr/testify/require"
)

// blockingSearcher never finishes on its own; it waits for cancellation.
type blockingSearcher struct {
	started chan struct{}
	stopped chan struct{}
}

func newBlockingSearcher() *blockingSearcher {
	return &blockingSearcher{
		started: make(chan struct{}, 10),
		stopped: make(chan struct{}, 10),
	}
}

func (s *blockingSearcher) ComputeMove(ctx context.Context, b *game.Board, p game.Player) (game.Move, error) {
	s.started <- struct{}{}
	<-ctx.Done()
	s.stopped <- struct{}{}
	return game.Move{}, ctx.Err()
}

func receive(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	require.NotNil(t, ch, "Computer should be thinking")
	select {
	case r := <-ch:
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the computer's move")
		return Result{}
	}
}

func TestSessionTurns(t *testing.T) {
	t.Run("human moves first as black", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(searcher.WithDepth(2)), game.Black)
		defer s.Close()

		require.Equal(t, game.BlacksMove, s.Turn())
		require.Nil(t, s.Pending(), "Computer should wait for the human")
	})

	t.Run("computer replies to a human move", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(searcher.WithDepth(2)), game.Black)
		defer s.Close()

		require.NoError(t, s.Play(2, 3))
		require.Equal(t, game.WhitesMove, s.Turn())
		require.ErrorIs(t, s.Play(2, 2), ErrNotYourTurn, "Human should not move during the computer's turn")

		r := receive(t, s.Pending())
		require.True(t, r.Found)
		require.Equal(t, game.White, r.Player)
		require.NoError(t, s.ApplyResult(r))

		require.Equal(t, game.BlacksMove, s.Turn())
		require.Nil(t, s.Pending())
		b := s.Board()
		require.Equal(t, 6, b.Score(game.Black)+b.Score(game.White), "Two moves should have been played")
	})

	t.Run("computer opens when the human plays white", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(searcher.WithDepth(1)), game.White)
		defer s.Close()

		require.Equal(t, game.BlacksMove, s.Turn())
		r := receive(t, s.Pending())
		require.NoError(t, s.ApplyResult(r))
		require.Equal(t, game.WhitesMove, s.Turn())
	})

	t.Run("rejects illegal human moves", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(), game.Black)
		defer s.Close()

		require.ErrorIs(t, s.Play(0, 0), game.ErrIllegalMove)
		require.ErrorIs(t, s.Play(8, 0), game.ErrOutOfRange)
		require.Equal(t, game.BlacksMove, s.Turn(), "Rejected moves should not change the turn")
		require.Equal(t, *game.NewBoard(), *s.Board())
	})

	t.Run("surfaces search failures", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(), game.Black)
		defer s.Close()

		// White to move with no white disk left is inconsistent, so the
		// search has nothing to play.
		b := game.MustParseBoard(`
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
`)
		require.NoError(t, s.Restore(game.TakeSnapshot(b, game.WhitesMove)))
		r := receive(t, s.Pending())
		require.ErrorIs(t, s.ApplyResult(r), searcher.ErrNoLegalMove)
	})
}

func TestSessionNewGameCancelsSearch(t *testing.T) {
	bs := newBlockingSearcher()
	s := NewSession(bs, game.Black)
	defer s.Close()

	require.NoError(t, s.Play(2, 3))
	stale := s.Pending()
	<-bs.started

	s.NewGame()

	select {
	case <-bs.stopped:
	default:
		t.Fatal("NewGame should wait for the search to stop")
	}
	require.Equal(t, game.BlacksMove, s.Turn())
	require.Equal(t, *game.NewBoard(), *s.Board(), "Board should be reset")

	r := receive(t, stale)
	require.False(t, r.Found, "Cancelled search should not produce a move")
	require.NoError(t, r.Err, "Cancellation is not an error")
	require.NoError(t, s.ApplyResult(r))
	require.Equal(t, *game.NewBoard(), *s.Board(), "Stale result should be ignored")
}

func TestSessionSnapshot(t *testing.T) {
	t.Run("restoring the computer's turn restarts the search", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(searcher.WithDepth(1)), game.Black)
		defer s.Close()
		require.NoError(t, s.Play(2, 3))
		snap := s.Snapshot()
		require.NoError(t, s.ApplyResult(receive(t, s.Pending())))

		data, err := snap.MarshalBinary()
		require.NoError(t, err)
		var restored game.Snapshot
		require.NoError(t, restored.UnmarshalBinary(data))

		other := NewSession(searcher.NewNegamax(searcher.WithDepth(1)), game.Black)
		defer other.Close()
		require.NoError(t, other.Restore(restored))

		require.Equal(t, game.WhitesMove, other.Turn())
		require.Equal(t, snap.Cells, other.Board().Cells())
		r := receive(t, other.Pending())
		require.True(t, r.Found)
		require.NoError(t, other.ApplyResult(r))
	})

	t.Run("finished games accept no moves", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(), game.Black)
		defer s.Close()
		b := game.MustParseBoard(`
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
`)
		require.NoError(t, s.Restore(game.TakeSnapshot(b, game.GameOver)))
		require.Nil(t, s.Pending())
		require.ErrorIs(t, s.Play(1, 1), ErrGameOver)
	})

	t.Run("rejects an invalid turn tag", func(t *testing.T) {
		s := NewSession(searcher.NewNegamax(), game.Black)
		defer s.Close()
		snap := s.Snapshot()
		snap.Turn = 5
		require.ErrorIs(t, s.Restore(snap), game.ErrInvalidSnapshot)
	})
}

func TestWorker(t *testing.T) {
	bs := newBlockingSearcher()
	w := newWorker(bs)
	w.Cancel() // Idle cancel is a no-op

	results, err := w.Start(game.NewBoard(), game.Black, 1)
	require.NoError(t, err)
	<-bs.started
	require.True(t, w.Busy())

	_, err = w.Start(game.NewBoard(), game.Black, 1)
	require.ErrorIs(t, err, ErrSearchInFlight, "Only one search may run at a time")

	w.Cancel()
	require.False(t, w.Busy())
	r := receive(t, results)
	require.False(t, r.Found)
	require.NoError(t, r.Err)
}
