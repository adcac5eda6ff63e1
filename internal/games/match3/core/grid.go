package core

import "fmt"

// Grid is the authoritative width x height matrix of cells.
// Cells are stored in row-major order: index = y*W + x. A nil entry is an empty cell.
type Grid struct {
	w     int
	h     int
	cells []*Piece
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, w, h)
	}
	return &Grid{
		w:     w,
		h:     h,
		cells: make([]*Piece, w*h),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// IsValid returns true if the coordinate is within the grid boundaries.
func (g *Grid) IsValid(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

func (g *Grid) outOfBounds(c Coord) error {
	return &OutOfBoundsError{At: c, Width: g.w, Height: g.h}
}

// Get returns the piece at c, or nil for an empty cell.
func (g *Grid) Get(c Coord) (*Piece, error) {
	if !g.IsValid(c) {
		return nil, g.outOfBounds(c)
	}
	return g.cells[g.index(c)], nil
}

// Set stores p (or nil to empty the cell) at c.
// Set does not touch p.Pos; keeping it in agreement is the caller's job.
func (g *Grid) Set(c Coord, p *Piece) error {
	if !g.IsValid(c) {
		return g.outOfBounds(c)
	}
	g.cells[g.index(c)] = p
	return nil
}

// at is Get for callers that already established c is in bounds.
// A failure here is a programming error, so it panics.
func (g *Grid) at(c Coord) *Piece {
	p, err := g.Get(c)
	if err != nil {
		panic(err)
	}
	return p
}

// put is the Set counterpart of at.
func (g *Grid) put(c Coord, p *Piece) {
	if err := g.Set(c, p); err != nil {
		panic(err)
	}
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	count := 0
	for _, p := range g.cells {
		if p == nil {
			count++
		}
	}
	return count
}

// Types returns the per-cell piece types indexed [y][x], with -1 for empty cells.
func (g *Grid) Types() [][]int {
	rows := make([][]int, g.h)
	for y := range g.h {
		rows[y] = make([]int, g.w)
		for x := range g.w {
			if p := g.cells[g.index(C(x, y))]; p != nil {
				rows[y][x] = int(p.Type)
			} else {
				rows[y][x] = -1
			}
		}
	}
	return rows
}
