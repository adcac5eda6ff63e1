package core

import (
	"fmt"
	"strings"
)

// Snapshot is a value copy of the board contents for determinism checks.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]int // [y][x], -1 for empty
	NextID uint64
}

// Snapshot returns the current board contents.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Width:  b.grid.Width(),
		Height: b.grid.Height(),
		Cells:  b.grid.Types(),
		NextID: b.nextID,
	}
}

// Rows renders the snapshot as text rows, top row first.
// Types are letters starting at 'A'; empty cells are '.'.
func (s Snapshot) Rows() []string {
	rows := make([]string, 0, s.Height)
	for y := s.Height - 1; y >= 0; y-- {
		var sb strings.Builder
		for x := range s.Width {
			t := s.Cells[y][x]
			if t < 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('A' + t))
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String joins Rows with newlines.
func (s Snapshot) String() string {
	return strings.Join(s.Rows(), "\n")
}

// Load replaces the board contents with a layout in the Rows format.
// It creates fresh pieces and sends no renderer notifications.
func (b *Board) Load(rows []string) error {
	w, h := b.grid.Width(), b.grid.Height()
	if len(rows) != h {
		return fmt.Errorf("%w: layout has %d rows, board has %d", ErrInvalidConfig, len(rows), h)
	}

	for i, row := range rows {
		if len(row) != w {
			return fmt.Errorf("%w: layout row %d has %d cells, board has %d", ErrInvalidConfig, i, len(row), w)
		}
		for x := range w {
			if ch := row[x]; ch != '.' && (ch < 'A' || int(ch-'A') >= b.opts.PaletteSize) {
				return fmt.Errorf("%w: layout cell %q outside palette of %d", ErrInvalidConfig, ch, b.opts.PaletteSize)
			}
		}
	}

	for i, row := range rows {
		y := h - 1 - i
		for x := range w {
			c := C(x, y)
			if row[x] == '.' {
				b.grid.put(c, nil)
				continue
			}
			p := b.newPiece()
			p.Type = PieceType(row[x] - 'A')
			b.place(p, c)
		}
	}
	return nil
}
