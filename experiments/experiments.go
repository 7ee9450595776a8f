package experiments

import (
	"context"
	"fmt"

	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"

	"github.com/rs/zerolog/log"
)

// Experiment plays every matchup a number of times, alternating colors, and
// stores the agent configs, games and moves as CSV files.
type Experiment struct {
	Name        string
	Configs     []metrics.AgentConfig
	MatchUps    [][2]metrics.AgentConfig
	Games       int // Per matchup
	RandomPlies int
	Seed        uint64
}

// Tally counts wins per agent ID; draws are counted under -1.
type Tally map[int]int

const draw = -1

// RunDepthExperiment pairs deeper searchers against a depth 1 baseline.
func RunDepthExperiment(ctx context.Context, dir string, games int, seed uint64) (Tally, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, Evaluate: "position"}
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: 2, Endgame: 8, Evaluate: "position"},
		{ID: 2, Depth: 4, Endgame: 10, Evaluate: "position"},
		{ID: 3, Depth: 6, Endgame: meta.ENDGAME_EMPTIES, Evaluate: "position"},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	e := Experiment{
		Name:        "depth",
		Configs:     append(configs, baseline),
		MatchUps:    matchUps,
		Games:       games,
		RandomPlies: meta.RANDOM_PLIES,
		Seed:        seed,
	}
	return e.Run(ctx, dir)
}

// RunEvaluatorExperiment pairs each evaluator against the positional one at
// equal depth.
func RunEvaluatorExperiment(ctx context.Context, dir string, depth, games int, seed uint64) (Tally, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: depth, Evaluate: "position"}
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: depth, Evaluate: "discs"},
		{ID: 2, Depth: depth, Evaluate: "mobility"},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	e := Experiment{
		Name:        "evaluator",
		Configs:     append(configs, baseline),
		MatchUps:    matchUps,
		Games:       games,
		RandomPlies: meta.RANDOM_PLIES,
		Seed:        seed,
	}
	return e.Run(ctx, dir)
}

func (e Experiment) Run(ctx context.Context, dir string) (Tally, error) {
	for _, config := range e.Configs {
		if _, err := CreateNegamax(config); err != nil {
			return nil, err
		}
	}

	count := 0
	tally := Tally{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", e.Name)

	for mi, matchup := range e.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), matchup[0], matchup[1])

		for i := 0; i < e.Games; i++ {
			// Alternate the starting agent
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}

			gameMetric, moveMetrics, err := e.runGame(ctx, black, white, e.Seed+uint64(count))
			if err != nil {
				return tally, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			switch gameMetric.Winner {
			case game.Black.String():
				tally[black.ID]++
			case game.White.String():
				tally[white.ID]++
			default:
				tally[draw]++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%d--%d)",
				mi+1, len(e.MatchUps), i+1, gameMetric.Winner, gameMetric.BlackScore, gameMetric.WhiteScore)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(e.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	if dir == "" {
		return tally, nil
	}
	if err := e.store(dir, gameRecords, moveRecords); err != nil {
		return tally, err
	}
	return tally, nil
}

func (e Experiment) store(dir string, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func (e Experiment) runGame(ctx context.Context, black, white metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	b, err := CreateNegamax(black)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	w, err := CreateNegamax(white)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	local := engine.LocalEngine(b, w, engine.WithRandomOpening(e.RandomPlies, seed))
	return local.Run(ctx)
}

// CreateNegamax builds the searcher described by config. Zero fields and an
// empty Evaluate select the defaults; a negative Endgame disables endgame
// solving.
func CreateNegamax(config metrics.AgentConfig) (*searcher.Negamax, error) {
	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithNodeBudget(config.Nodes),
		searcher.WithDuration(config.Duration),
		searcher.WithMetrics(),
	}
	switch {
	case config.Endgame > 0:
		options = append(options, searcher.WithEndgameThreshold(config.Endgame))
	case config.Endgame < 0:
		options = append(options, searcher.WithEndgameThreshold(0))
	}
	if config.Evaluate != "" {
		evaluate, ok := game.Evaluators[config.Evaluate]
		if !ok {
			return nil, fmt.Errorf("agent %d: unknown evaluator %q", config.ID, config.Evaluate)
		}
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	return searcher.NewNegamax(options...), nil
}
