package engine

import (
	"fmt"

	"othello/game"
	"othello/searcher"

	"github.com/rs/zerolog/log"
)

// Session is a game between a human and the computer. It owns the board and
// enforces the turn discipline: the human may only move on their turn, and
// the computer's move is searched in the background and applied through
// ApplyResult.
//
// A Session is not safe for concurrent use; drive it from one goroutine.
type Session struct {
	board      *game.Board
	turn       game.TurnState
	human      game.Player
	worker     *worker
	pending    <-chan Result
	generation int
}

// NewSession starts a new game in which the human plays the given color.
func NewSession(s searcher.Searcher, human game.Player) *Session {
	session := &Session{
		board:  game.NewBoard(),
		human:  human,
		worker: newWorker(s),
	}
	session.NewGame()
	return session
}

// NewGame cancels any running search, waits for it to stop and resets the
// board to the opening position.
func (s *Session) NewGame() {
	s.worker.Cancel()
	s.generation++
	s.pending = nil
	s.board.Reset()
	s.turn = game.BlacksMove
	log.Info().Msgf("new game, human plays %v", s.human)
	s.startComputer()
}

func (s *Session) Board() *game.Board {
	return s.board.Copy()
}

func (s *Session) Turn() game.TurnState {
	return s.turn
}

func (s *Session) Human() game.Player {
	return s.human
}

func (s *Session) Computer() game.Player {
	return s.human.Opponent()
}

// Pending returns the channel on which the running computer search will
// deliver its result, or nil when the computer is not thinking.
func (s *Session) Pending() <-chan Result {
	return s.pending
}

// Play makes the human's move at (row, col).
func (s *Session) Play(row, col int) error {
	if s.turn == game.GameOver {
		return ErrGameOver
	}
	if s.turn != game.TurnOf(s.human) {
		return fmt.Errorf("%v: %w", s.human, ErrNotYourTurn)
	}
	if err := s.move(s.human, game.Move{Row: row, Col: col}); err != nil {
		return err
	}
	s.startComputer()
	return nil
}

// ApplyResult applies a computer move delivered on Pending. Results of
// cancelled or superseded searches are ignored.
func (s *Session) ApplyResult(r Result) error {
	if r.generation != s.generation {
		log.Debug().Msgf("dropping result of a superseded search")
		return nil
	}
	s.pending = nil
	if r.Err != nil {
		return fmt.Errorf("computer search: %w", r.Err)
	}
	if !r.Found {
		return nil
	}
	if s.turn != game.TurnOf(s.Computer()) || r.Player != s.Computer() {
		return fmt.Errorf("%v: %w", r.Player, ErrNotYourTurn)
	}
	if err := s.move(r.Player, r.Move); err != nil {
		return err
	}
	s.startComputer()
	return nil
}

func (s *Session) move(p game.Player, m game.Move) error {
	flipped, err := s.board.Play(p, m)
	if err != nil {
		return err
	}
	log.Debug().Msgf("%v played %v flipping %d", p, m, flipped)

	s.turn = game.NextTurn(s.board, p)
	switch s.turn {
	case game.TurnOf(p):
		log.Info().Msgf("%v has no move and passes", p.Opponent())
	case game.GameOver:
		log.Info().Msgf("game over: (black--white) %d--%d", s.board.Score(game.Black), s.board.Score(game.White))
	}
	return nil
}

// startComputer launches a search when it is the computer's turn.
func (s *Session) startComputer() {
	if s.turn != game.TurnOf(s.Computer()) || s.pending != nil {
		return
	}
	results, err := s.worker.Start(s.board, s.Computer(), s.generation)
	if err != nil {
		// Results are published after the worker goes idle, and every
		// other path cancels the worker first.
		panic(err)
	}
	s.pending = results
}

// Snapshot captures the board and turn state.
func (s *Session) Snapshot() game.Snapshot {
	return game.TakeSnapshot(s.board, s.turn)
}

// Restore replaces the game with a snapshot. A restored computer turn
// restarts the search.
func (s *Session) Restore(snap game.Snapshot) error {
	if !snap.Turn.Valid() {
		return fmt.Errorf("turn %v: %w", snap.Turn, game.ErrInvalidSnapshot)
	}
	s.worker.Cancel()
	s.generation++
	s.pending = nil

	board := game.NewBoard()
	if err := snap.Restore(board); err != nil {
		s.startComputer()
		return err
	}
	s.board = board
	s.turn = snap.Turn
	log.Info().Msgf("restored game at %v", s.turn)
	s.startComputer()
	return nil
}

// Close cancels any running search.
func (s *Session) Close() {
	s.worker.Cancel()
	s.pending = nil
}
