package core

import "sort"

// MatchSet is an insertion-ordered set of pieces.
type MatchSet []*Piece

// Contains reports whether p is in the set.
func (m MatchSet) Contains(p *Piece) bool {
	for _, q := range m {
		if q == p {
			return true
		}
	}
	return false
}

// Union returns a new set holding m followed by the members of other not already in m.
func (m MatchSet) Union(other MatchSet) MatchSet {
	result := make(MatchSet, 0, len(m)+len(other))
	result = append(result, m...)
	for _, p := range other {
		if !result.Contains(p) {
			result = append(result, p)
		}
	}
	return result
}

// Columns returns the distinct X coordinates of the set in ascending order.
func (m MatchSet) Columns() []int {
	seen := make(map[int]bool)
	var cols []int
	for _, p := range m {
		if !seen[p.Pos.X] {
			seen[p.Pos.X] = true
			cols = append(cols, p.Pos.X)
		}
	}
	sort.Ints(cols)
	return cols
}

// validDirection reports whether exactly one of dx, dy is nonzero and both are in [-1, 1].
func validDirection(dx, dy int) bool {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	return (dx == 0) != (dy == 0)
}

// RunInDirection walks from origin one step at a time along (dx, dy) and
// returns the contiguous same-type pieces found, in walk order.
// The origin's piece, if present, is included first and seeds the type;
// otherwise the first piece reached seeds it. The walk stops at the first
// cell that is out of bounds, empty, or of a different type.
func RunInDirection(g *Grid, origin Coord, dx, dy int) []*Piece {
	if !validDirection(dx, dy) {
		return nil
	}

	var run []*Piece
	if g.IsValid(origin) {
		if p := g.at(origin); p != nil {
			run = append(run, p)
		}
	}

	for c := origin.Add(dx, dy); g.IsValid(c); c = c.Add(dx, dy) {
		p := g.at(c)
		if p == nil {
			break
		}
		if len(run) > 0 && p.Type != run[0].Type {
			break
		}
		run = append(run, p)
	}
	return run
}

// axisRun returns the full run through origin along one axis,
// ordered from the negative end to the positive end, origin counted once.
func axisRun(g *Grid, origin Coord, dx, dy int) MatchSet {
	backward := RunInDirection(g, origin, -dx, -dy)
	forward := RunInDirection(g, origin, dx, dy)

	run := make(MatchSet, 0, len(backward)+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		run = append(run, backward[i])
	}
	if len(forward) > 1 {
		run = append(run, forward[1:]...)
	}
	return run
}

// MatchAt returns the pieces matched through origin: the vertical run if it
// reaches minLength, unioned with the horizontal run if that one does.
// Each axis qualifies on its own, so an L or T shape whose arms are both
// shorter than minLength is not a match. Returns nil for an empty or
// out-of-bounds origin, or when neither axis qualifies.
func MatchAt(g *Grid, origin Coord, minLength int) MatchSet {
	if !g.IsValid(origin) || g.at(origin) == nil {
		return nil
	}

	var found MatchSet
	if vertical := axisRun(g, origin, 0, 1); len(vertical) >= minLength {
		found = found.Union(vertical)
	}
	if horizontal := axisRun(g, origin, 1, 0); len(horizontal) >= minLength {
		found = found.Union(horizontal)
	}
	return found
}

// HasBackwardMatch reports whether the run strictly downward or strictly
// leftward from origin, origin included, reaches minLength. It is only
// meaningful while filling from empty in x-outer, y-inner order, where the
// cells above and to the right of the fill cursor are still empty.
func HasBackwardMatch(g *Grid, origin Coord, minLength int) bool {
	if !g.IsValid(origin) || g.at(origin) == nil {
		return false
	}
	return len(RunInDirection(g, origin, 0, -1)) >= minLength ||
		len(RunInDirection(g, origin, -1, 0)) >= minLength
}
