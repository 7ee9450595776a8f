package game

import "fmt"

// TurnState is the turn-sequencing state of a game. The numeric values are
// the snapshot tags.
type TurnState int32

const (
	BlacksMove TurnState = iota
	WhitesMove
	GameOver
)

func (t TurnState) Valid() bool {
	return t >= BlacksMove && t <= GameOver
}

func (t TurnState) String() string {
	switch t {
	case BlacksMove:
		return "BLACKS_MOVE"
	case WhitesMove:
		return "WHITES_MOVE"
	case GameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("TurnState(%d)", int32(t))
	}
}

// ToMove returns the player whose turn it is. ok is false once the game is over.
func (t TurnState) ToMove() (p Player, ok bool) {
	switch t {
	case BlacksMove:
		return Black, true
	case WhitesMove:
		return White, true
	default:
		return Black, false
	}
}

// TurnOf returns the state in which p is to move.
func TurnOf(p Player) TurnState {
	if p == White {
		return WhitesMove
	}
	return BlacksMove
}

// NextTurn is the transition taken after mover completed a move on b. The
// opponent moves next if able; otherwise mover moves again if able; otherwise
// the game is over.
func NextTurn(b *Board, mover Player) TurnState {
	switch next := mover.Opponent(); {
	case b.HasValidMove(next):
		return TurnOf(next)
	case b.HasValidMove(mover):
		return TurnOf(mover)
	default:
		return GameOver
	}
}

// InitialTurn returns the state for a position with p nominally to move,
// passing or ending the game as required.
func InitialTurn(b *Board, p Player) TurnState {
	return NextTurn(b, p.Opponent())
}
