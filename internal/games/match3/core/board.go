package core

import (
	"fmt"
	"math/rand"
)

const (
	// DefaultMinMatch is the shortest run that counts as a match.
	DefaultMinMatch = 3

	// DefaultMaxFillRetries caps the populator's re-rolls for a single cell.
	DefaultMaxFillRetries = 100

	// MinPaletteSize is the smallest palette the initial fill can work with.
	// It only looks back along rows and columns; refills check every
	// direction and routinely get stuck with three types.
	MinPaletteSize = 3

	// SpawnDropRows is how far above its cell a new piece enters from.
	SpawnDropRows = 2
)

// Options configures a board. They are fixed once the board exists.
type Options struct {
	Width          int
	Height         int
	PaletteSize    int
	MinMatch       int // 0 means DefaultMinMatch
	MaxFillRetries int // 0 means DefaultMaxFillRetries
	Seed           int64
}

// withDefaults fills zero-valued optional fields.
func (o Options) withDefaults() Options {
	if o.MinMatch == 0 {
		o.MinMatch = DefaultMinMatch
	}
	if o.MaxFillRetries == 0 {
		o.MaxFillRetries = DefaultMaxFillRetries
	}
	return o
}

// Validate checks that the options describe a workable board.
func (o Options) Validate() error {
	o = o.withDefaults()
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, o.Width, o.Height)
	case o.PaletteSize < MinPaletteSize:
		return fmt.Errorf("%w: palette of %d types, need at least %d", ErrInvalidConfig, o.PaletteSize, MinPaletteSize)
	case o.MinMatch < 2:
		return fmt.Errorf("%w: minimum match length %d", ErrInvalidConfig, o.MinMatch)
	case o.MaxFillRetries < 1:
		return fmt.Errorf("%w: fill retry cap %d", ErrInvalidConfig, o.MaxFillRetries)
	}
	return nil
}

// Board owns the grid together with everything that mutates it:
// the random source for fills, piece identity and the renderer.
type Board struct {
	grid     *Grid
	opts     Options
	rng      *rand.Rand
	renderer Renderer
	nextID   uint64
}

// NewBoard creates an empty board. Call Populate to fill it.
// A nil renderer is replaced with NopRenderer.
func NewBoard(opts Options, r Renderer) (*Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	grid, err := NewGrid(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = NopRenderer{}
	}

	return &Board{
		grid:     grid,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		renderer: r,
	}, nil
}

// Grid returns the underlying grid for read access.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Options returns the board options with defaults applied.
func (b *Board) Options() Options {
	return b.opts
}

// SetRenderer replaces the renderer. A nil renderer is replaced with NopRenderer.
func (b *Board) SetRenderer(r Renderer) {
	if r == nil {
		r = NopRenderer{}
	}
	b.renderer = r
}

// MatchAt runs MatchAt on the board's grid with its minimum match length.
func (b *Board) MatchAt(c Coord) MatchSet {
	return MatchAt(b.grid, c, b.opts.MinMatch)
}

// Populate performs the initial fill of an empty board.
func (b *Board) Populate() error {
	_, err := b.FillEmptyCells()
	return err
}

// place stores p at c and updates its coordinate to agree.
func (b *Board) place(p *Piece, c Coord) {
	b.grid.put(c, p)
	p.Pos = c
}

func (b *Board) newPiece() *Piece {
	b.nextID++
	return &Piece{ID: b.nextID}
}

// Verify checks that the board is settled: every cell occupied, every
// piece's coordinate in agreement with its cell, and no match anywhere.
func (b *Board) Verify() error {
	for x := range b.grid.Width() {
		for y := range b.grid.Height() {
			c := C(x, y)
			p := b.grid.at(c)
			if p == nil {
				return fmt.Errorf("%w: cell %s is empty", ErrUnsettled, c)
			}
			if p.Pos != c {
				return fmt.Errorf("%w: piece %d in cell %s thinks it is at %s", ErrUnsettled, p.ID, c, p.Pos)
			}
			if m := b.MatchAt(c); len(m) > 0 {
				return fmt.Errorf("%w: match of %d at %s", ErrUnsettled, len(m), c)
			}
		}
	}
	return nil
}
