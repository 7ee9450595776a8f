package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"othello/engine"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "play", "play (terminal UI), self, depth or evaluator")
	depth := flag.Int("depth", meta.SEARCH_DEPTH, "Search depth in plies")
	endgame := flag.Int("endgame", meta.ENDGAME_EMPTIES, "Solve exactly at or below this many empty cells (0 disables)")
	nodes := flag.Int("nodes", 0, "Node budget per move, enables iterative deepening")
	duration := flag.Duration("duration", 0, "Time budget per move, enables iterative deepening")
	evaluate := flag.String("evaluate", "position", "Evaluator: position, mobility or discs")
	human := flag.String("human", "black", "Color played by the human: black or white")
	snapshot := flag.String("snapshot", "othello.snapshot", "File used to save and load games in play mode")
	games := flag.Int("games", meta.GAMES, "Self-play games per matchup")
	baseline := flag.Int("baseline-depth", 1, "Depth of the opponent in self mode")
	randomPlies := flag.Int("random-plies", meta.RANDOM_PLIES, "Random opening plies in self-play")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for random opening plies")
	out := flag.String("out", "results", "Directory for self-play CSV files (empty to skip)")
	level := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "Log file; in play mode logs are discarded without one")
	flag.Parse()

	if err := setupLogging(*mode, *level, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	agent := metrics.AgentConfig{
		ID:       0,
		Depth:    *depth,
		Endgame:  *endgame,
		Nodes:    *nodes,
		Duration: *duration,
		Evaluate: *evaluate,
	}

	if agent.Endgame == 0 {
		agent.Endgame = -1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "play":
		err = play(agent, *human, *snapshot)
	case "self":
		opponent := metrics.AgentConfig{ID: 1, Depth: *baseline, Evaluate: "position"}
		e := experiments.Experiment{
			Name:        "self",
			Configs:     []metrics.AgentConfig{agent, opponent},
			MatchUps:    [][2]metrics.AgentConfig{{agent, opponent}},
			Games:       *games,
			RandomPlies: *randomPlies,
			Seed:        *seed,
		}
		err = report(e.Run(ctx, *out))
	case "depth":
		err = report(experiments.RunDepthExperiment(ctx, *out, *games, *seed))
	case "evaluator":
		err = report(experiments.RunEvaluatorExperiment(ctx, *out, *depth, *games, *seed))
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func setupLogging(mode, level, logFile string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		w = f
	case mode == "play":
		w = io.Discard
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: logFile != ""})
	return nil
}

func play(agent metrics.AgentConfig, color, snapshot string) error {
	var human game.Player
	switch color {
	case "black":
		human = game.Black
	case "white":
		human = game.White
	default:
		return fmt.Errorf("unknown color %q", color)
	}

	s, err := experiments.CreateNegamax(agent)
	if err != nil {
		return err
	}
	session := engine.NewSession(s, human)
	defer session.Close()

	_, err = tea.NewProgram(tui.New(session, snapshot), tea.WithAltScreen()).Run()
	return err
}

func report(tally experiments.Tally, err error) error {
	if err != nil {
		return err
	}
	for id, wins := range tally {
		if id < 0 {
			log.Info().Msgf("draws: %d", wins)
			continue
		}
		log.Info().Msgf("agent %d wins: %d", id, wins)
	}
	return nil
}
