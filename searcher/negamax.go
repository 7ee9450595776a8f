package searcher

import (
	"context"
	"fmt"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"

	"github.com/rs/zerolog/log"
)

// Bound on every score the search can produce.
const inf = 1 << 30

type Option func(n *Negamax)

// Negamax is a depth-bounded negamax search with alpha-beta pruning. Once
// few enough cells are empty it searches to the end of the game instead.
//
// With a node or time budget it deepens iteratively and plays the best move
// of the deepest completed iteration.
type Negamax struct {
	depth    int
	endgame  int
	nodes    int
	duration time.Duration
	evaluate game.Evaluate
	metrics  bool
}

func WithDepth(depth int) Option {
	return func(n *Negamax) {
		if depth > 0 {
			n.depth = depth
		}
	}
}

// WithEndgameThreshold sets the number of empty cells at or below which the
// search solves the game exactly. Zero disables endgame solving.
func WithEndgameThreshold(empties int) Option {
	return func(n *Negamax) {
		if empties >= 0 {
			n.endgame = empties
		}
	}
}

func WithNodeBudget(nodes int) Option {
	return func(n *Negamax) {
		if nodes > 0 {
			n.nodes = nodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(n *Negamax) {
		if duration > 0 {
			n.duration = duration
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(n *Negamax) {
		if evaluate != nil {
			n.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(n *Negamax) {
		n.metrics = true
	}
}

func NewNegamax(options ...Option) *Negamax {
	n := &Negamax{ // Default values
		depth:    meta.SEARCH_DEPTH,
		endgame:  meta.ENDGAME_EMPTIES,
		evaluate: game.EvaluatePosition,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *Negamax) budgeted() bool {
	return n.nodes > 0 || n.duration > 0
}

func (n *Negamax) ComputeMove(ctx context.Context, b *game.Board, p game.Player) (game.Move, error) {
	a, err := n.Analyze(ctx, b, p)
	if err != nil {
		return game.Move{}, err
	}
	return a.Move, nil
}

// Analyze searches a private copy of b; b itself is never written.
func (n *Negamax) Analyze(ctx context.Context, b *game.Board, p game.Player) (Analysis, error) {
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		return Analysis{}, fmt.Errorf("%v to move: %w", p, ErrNoLegalMove)
	}
	root := *b

	collector := metrics.NewDummyCollector()
	if n.metrics {
		collector = metrics.NewCollector()
	}

	empties := root.Empties()
	endgame := empties <= n.endgame
	maxDepth := n.depth
	if endgame || n.budgeted() {
		maxDepth = empties
	}
	minDepth := maxDepth
	if n.budgeted() && !endgame {
		minDepth = 1
	}

	s := &search{ctx: ctx, evaluate: n.evaluate, budget: n.nodes}
	if n.duration > 0 {
		s.deadline = time.Now().Add(n.duration)
	}
	collector.Start(maxDepth, endgame)

	var best game.Move
	completed, score := 0, 0
	for depth := minDepth; depth <= maxDepth; depth++ {
		// The first iteration always runs to completion.
		s.limited = completed > 0
		move, value, ok := s.root(&root, p, moves, depth)
		if !ok {
			break
		}
		best, completed, score = move, depth, value
		collector.CompleteDepth(depth, value)
	}
	collector.AddNodes(s.nodes)

	if s.aborted {
		log.Debug().Msgf("search for %v cancelled after %d nodes", p, s.nodes)
		return Analysis{}, context.Cause(ctx)
	}

	metric := collector.Complete()
	log.Debug().
		Str("player", p.String()).
		Str("move", best.String()).
		Int("depth", completed).
		Int("score", score).
		Int("nodes", s.nodes).
		Bool("endgame", endgame).
		Msg("search complete")

	return Analysis{Move: best, Metric: metric}, nil
}

type search struct {
	ctx      context.Context
	evaluate game.Evaluate
	nodes    int
	budget   int
	deadline time.Time
	// limited is set while the running iteration may be cut short by the
	// node or time budget.
	limited   bool
	aborted   bool
	exhausted bool
}

// visit counts a node and reports whether the search may continue. It polls
// the context on every node.
func (s *search) visit() bool {
	if s.stopped() {
		return false
	}
	s.nodes++
	select {
	case <-s.ctx.Done():
		s.aborted = true
		return false
	default:
	}
	if s.limited {
		if s.budget > 0 && s.nodes > s.budget {
			s.exhausted = true
		} else if !s.deadline.IsZero() && s.nodes%256 == 0 && time.Now().After(s.deadline) {
			s.exhausted = true
		}
	}
	return !s.exhausted
}

func (s *search) stopped() bool {
	return s.aborted || s.exhausted
}

// root searches every move of p to the given depth. Ties keep the move
// listed first. ok is false if the iteration was stopped.
func (s *search) root(b *game.Board, p game.Player, moves []game.Move, depth int) (best game.Move, score int, ok bool) {
	if !s.visit() {
		return game.Move{}, 0, false
	}
	score = -inf
	alpha := -inf
	for _, m := range moves {
		child := *b
		child.ApplyLegal(p, m)
		value := -s.negamax(&child, p.Opponent(), depth-1, -inf, -alpha)
		if s.stopped() {
			return game.Move{}, 0, false
		}
		if value > score {
			best, score = m, value
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, score, true
}

func (s *search) negamax(b *game.Board, p game.Player, depth, alpha, beta int) int {
	if !s.visit() {
		return 0
	}

	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		opponent := p.Opponent()
		if !b.HasValidMove(opponent) {
			return game.FinalScore(b, p)
		}
		// Pass: the opponent moves on the same board without using up depth.
		return -s.negamax(b, opponent, depth, -beta, -alpha)
	}
	if depth <= 0 {
		return s.evaluate(b, p)
	}

	best := -inf
	for _, m := range moves {
		child := *b
		child.ApplyLegal(p, m)
		value := -s.negamax(&child, p.Opponent(), depth-1, -beta, -alpha)
		if s.stopped() {
			return 0
		}
		if value > best {
			best = value
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
