package game

import (
	"encoding/binary"
	"fmt"
)

// SnapshotSize is the encoded size of a Snapshot: one code per cell followed
// by the turn tag as a little-endian int32.
const SnapshotSize = NumCells + 4

// Snapshot is a raw copy of the board and the turn state, sufficient to
// reconstruct a game.
type Snapshot struct {
	Cells [NumCells]Cell
	Turn  TurnState
}

// TakeSnapshot captures the board and turn state.
func TakeSnapshot(b *Board, turn TurnState) Snapshot {
	return Snapshot{Cells: b.Cells(), Turn: turn}
}

// Restore overwrites b with the snapshot's cells.
func (s Snapshot) Restore(b *Board) error {
	for i, c := range s.Cells {
		if err := b.SetCell(i/Size, i%Size, c); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
	}
	return nil
}

func (s Snapshot) MarshalBinary() ([]byte, error) {
	if !s.Turn.Valid() {
		return nil, fmt.Errorf("turn %v: %w", s.Turn, ErrInvalidSnapshot)
	}
	data := make([]byte, SnapshotSize)
	for i, c := range s.Cells {
		if !c.Valid() {
			return nil, fmt.Errorf("cell %d = %d: %w", i, c, ErrInvalidSnapshot)
		}
		data[i] = byte(c)
	}
	binary.LittleEndian.PutUint32(data[NumCells:], uint32(s.Turn))
	return data, nil
}

func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) != SnapshotSize {
		return fmt.Errorf("snapshot length %d, want %d: %w", len(data), SnapshotSize, ErrInvalidSnapshot)
	}
	var out Snapshot
	for i := 0; i < NumCells; i++ {
		c := Cell(data[i])
		if !c.Valid() {
			return fmt.Errorf("cell %d = %d: %w", i, c, ErrInvalidSnapshot)
		}
		out.Cells[i] = c
	}
	out.Turn = TurnState(int32(binary.LittleEndian.Uint32(data[NumCells:])))
	if !out.Turn.Valid() {
		return fmt.Errorf("turn %v: %w", out.Turn, ErrInvalidSnapshot)
	}
	*s = out
	return nil
}
