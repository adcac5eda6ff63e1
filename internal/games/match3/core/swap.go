package core

// SwapResult is the outcome of AttemptSwap.
type SwapResult struct {
	Accepted bool
	Matches  MatchSet
}

// AttemptSwap exchanges the pieces at a and b and keeps the exchange only
// if it produces a match at either cell. Otherwise the pieces are swapped
// back and the grid ends exactly as it started.
//
// Cells that are out of bounds, identical, not orthogonally adjacent or
// empty make the request a no-op that reports not accepted.
func (b *Board) AttemptSwap(a, c Coord) SwapResult {
	if !b.grid.IsValid(a) || !b.grid.IsValid(c) || !a.Adjacent(c) {
		return SwapResult{}
	}
	pa, pc := b.grid.at(a), b.grid.at(c)
	if pa == nil || pc == nil {
		return SwapResult{}
	}

	b.exchange(pa, pc)

	matches := b.MatchAt(c).Union(b.MatchAt(a))
	if len(matches) == 0 {
		b.exchange(pa, pc)
		return SwapResult{}
	}
	return SwapResult{Accepted: true, Matches: matches}
}

// exchange swaps the cells of two pieces and reports both moves.
func (b *Board) exchange(p, q *Piece) {
	from, to := p.Pos, q.Pos
	b.place(p, to)
	b.place(q, from)
	b.renderer.Moved(*p, from, to)
	b.renderer.Moved(*q, to, from)
}
