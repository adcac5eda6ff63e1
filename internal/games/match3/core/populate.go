package core

// FillEmptyCells fills every empty cell with a random palette type, scanning
// columns left to right and each column bottom to top. A cell is re-rolled
// while its piece would complete a match with pieces already placed.
//
// On a board being filled from empty, only the cells below and to the left
// of the cursor can be occupied, so the cheaper backward check is exact.
// A refill after a cascade can have occupied neighbours on any side, so it
// checks all four directions.
//
// Returns the created pieces. If a cell exceeds the retry cap the fill stops
// with an *UnsatisfiableError and that cell stays empty.
func (b *Board) FillEmptyCells() ([]*Piece, error) {
	fromEmpty := b.grid.EmptyCount() == b.grid.Width()*b.grid.Height()

	var spawned []*Piece
	for x := range b.grid.Width() {
		for y := range b.grid.Height() {
			c := C(x, y)
			if b.grid.at(c) != nil {
				continue
			}
			p, err := b.spawnAt(c, fromEmpty)
			if err != nil {
				return spawned, err
			}
			spawned = append(spawned, p)
		}
	}
	return spawned, nil
}

// spawnAt creates a piece at the empty cell c, rolling until it fits.
func (b *Board) spawnAt(c Coord, backwardOnly bool) (*Piece, error) {
	p := b.newPiece()
	b.place(p, c)

	for roll := 1; ; roll++ {
		p.Type = PieceType(b.rng.Intn(b.opts.PaletteSize))
		if !b.completesMatch(c, backwardOnly) {
			b.renderer.Spawned(*p, c.Add(0, SpawnDropRows), c)
			return p, nil
		}
		if roll >= b.opts.MaxFillRetries {
			b.grid.put(c, nil)
			return nil, &UnsatisfiableError{At: c, Rolls: roll, PaletteSize: b.opts.PaletteSize}
		}
	}
}

func (b *Board) completesMatch(c Coord, backwardOnly bool) bool {
	if backwardOnly {
		return HasBackwardMatch(b.grid, c, b.opts.MinMatch)
	}
	return len(b.MatchAt(c)) > 0
}
