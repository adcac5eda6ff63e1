package core

import "testing"

// loadBoard builds a board sized to the layout (top row first) and loads it.
func loadBoard(t *testing.T, palette int, rows ...string) (*Board, *Recorder) {
	t.Helper()

	rec := &Recorder{}
	b, err := NewBoard(Options{
		Width:       len(rows[0]),
		Height:      len(rows),
		PaletteSize: palette,
		Seed:        7,
	}, rec)
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	if err := b.Load(rows); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return b, rec
}

// pieceIDs returns the IDs of a set for order-insensitive comparison.
func pieceIDs(m MatchSet) map[uint64]bool {
	ids := make(map[uint64]bool, len(m))
	for _, p := range m {
		ids[p.ID] = true
	}
	return ids
}

// cell returns the piece at c, failing the test on error.
func cell(t *testing.T, b *Board, c Coord) *Piece {
	t.Helper()
	p, err := b.Grid().Get(c)
	if err != nil {
		t.Fatalf("Get(%v) failed: %v", c, err)
	}
	return p
}
