package engine

import (
	"context"
	"errors"
	"sync"

	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

// Result is the outcome of a background search. Found is false when the
// search was cancelled; that is not an error.
type Result struct {
	Player game.Player
	Move   game.Move
	Found  bool
	Err    error
	Metric metrics.SearchMetric

	generation int
}

// worker runs at most one search at a time, on a private copy of the board.
type worker struct {
	searcher searcher.Searcher

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newWorker(s searcher.Searcher) *worker {
	return &worker{searcher: s}
}

// Start launches a search for p. The result is delivered on the returned
// channel, which receives exactly one value.
func (w *worker) Start(b *game.Board, p game.Player, generation int) (<-chan Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busyLocked() {
		return nil, ErrSearchInFlight
	}

	board := *b
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	results := make(chan Result, 1)
	w.cancel, w.done = cancel, done

	go func() {
		r := w.run(ctx, &board, p)
		r.generation = generation
		cancel()
		// Mark the worker idle before publishing, so whoever receives the
		// result can start the next search right away.
		close(done)
		results <- r
	}()
	return results, nil
}

func (w *worker) run(ctx context.Context, b *game.Board, p game.Player) Result {
	r := Result{Player: p}
	var err error
	if a, ok := w.searcher.(searcher.Analyzer); ok {
		var analysis searcher.Analysis
		analysis, err = a.Analyze(ctx, b, p)
		r.Move, r.Metric = analysis.Move, analysis.Metric
	} else {
		r.Move, err = w.searcher.ComputeMove(ctx, b, p)
	}

	switch {
	case err == nil:
		r.Found = true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.Move = game.Move{}
	default:
		r.Err = err
	}
	return r
}

// Cancel requests cancellation of the running search, if any, and waits
// until it has torn down.
func (w *worker) Cancel() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busyLocked()
}

func (w *worker) busyLocked() bool {
	if w.done == nil {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}
