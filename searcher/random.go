package searcher

import (
	"context"
	"fmt"
	"sync"

	"othello/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) ComputeMove(ctx context.Context, b *game.Board, p game.Player) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return game.Move{}, err
	}
	moves := b.LegalMoves(p)
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("%v to move: %w", p, ErrNoLegalMove)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.Intn(len(moves))], nil
}
