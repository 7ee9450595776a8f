package engine

import (
	"context"
	"fmt"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// Local plays a complete game between two searchers.
type Local struct {
	Board        *game.Board
	Agents       [2]searcher.Searcher // Indexed by game.Player
	randomPlies  int
	randomSource searcher.Searcher
}

// WithRandomOpening makes the first plies uniformly random so that repeated
// games between deterministic searchers differ.
func WithRandomOpening(plies int, seed uint64) Option {
	return func(e *Local) {
		if plies > 0 {
			e.randomPlies = plies
			e.randomSource = searcher.NewRandom(seed)
		}
	}
}

func LocalEngine(black, white searcher.Searcher, options ...Option) *Local {
	e := &Local{
		Board:  game.NewBoard(),
		Agents: [2]searcher.Searcher{black, white},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until neither side can move.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	turn := game.InitialTurn(e.Board, game.Black)
	log.Debug().Msgf("%v is starting", turn)

	step := 0
	for turn != game.GameOver && step < meta.MAX_TURNS {
		p, _ := turn.ToMove()

		agent := e.Agents[p]
		if step < e.randomPlies {
			agent = e.randomSource
		}

		mm := metrics.MoveMetric{Step: step + 1, Player: p}
		var err error
		if a, ok := agent.(searcher.Analyzer); ok {
			var analysis searcher.Analysis
			analysis, err = a.Analyze(ctx, e.Board, p)
			mm.Move, mm.SearchMetric = analysis.Move, analysis.Metric
		} else {
			mm.Move, err = agent.ComputeMove(ctx, e.Board, p)
		}
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("move %d for %v: %w", step+1, p, err)
		}

		if _, err := e.Board.Play(p, mm.Move); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("move %d for %v: %w", step+1, p, err)
		}
		moveMetrics = append(moveMetrics, mm)
		step++

		turn = game.NextTurn(e.Board, p)
		if turn == game.TurnOf(p) {
			gameMetric.Passes++
			log.Debug().Msgf("%v passes", p.Opponent())
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.BlackScore = e.Board.Score(game.Black)
	gameMetric.WhiteScore = e.Board.Score(game.White)
	gameMetric.Winner = Winner(e.Board)

	log.Debug().Msgf("game over after %d moves: (black--white) %d--%d", step, gameMetric.BlackScore, gameMetric.WhiteScore)
	return gameMetric, moveMetrics, nil
}

// Winner names the player with more disks, or "Draw".
func Winner(b *game.Board) string {
	black, white := b.Score(game.Black), b.Score(game.White)
	switch {
	case black > white:
		return game.Black.String()
	case white > black:
		return game.White.String()
	default:
		return "Draw"
	}
}
