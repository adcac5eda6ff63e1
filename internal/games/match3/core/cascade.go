package core

// Phase identifies one unit of cascade work.
type Phase int

const (
	// PhasePass clears the pending matches, collapses the touched columns
	// and re-checks the pieces that fell.
	PhasePass Phase = iota
	// PhaseRefill fills the emptied cells once the board stopped matching.
	PhaseRefill
	// PhaseDone means the cascade has nothing left to do.
	PhaseDone
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePass:
		return "pass"
	case PhaseRefill:
		return "refill"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Report summarizes a cascade.
type Report struct {
	Passes  int // Clear/collapse passes run
	Cleared int // Pieces removed over all passes
	Spawned int // Pieces created by the refill
}

// Cascade resolves a set of matches one phase at a time so the caller can
// let the presentation settle between phases.
type Cascade struct {
	board   *Board
	pending MatchSet
	report  Report
	done    bool
}

// Resolve starts a cascade for the given matches.
func (b *Board) Resolve(matches MatchSet) *Cascade {
	return &Cascade{board: b, pending: matches}
}

// Done reports whether the cascade has completed.
func (c *Cascade) Done() bool {
	return c.done
}

// Report returns the work done so far.
func (c *Cascade) Report() Report {
	return c.report
}

// Next returns the phase the next call to Step will run.
func (c *Cascade) Next() Phase {
	switch {
	case c.done:
		return PhaseDone
	case len(c.pending) > 0:
		return PhasePass
	default:
		return PhaseRefill
	}
}

// Step runs the next phase and returns which one ran.
// While matches are pending it runs a pass; once a pass leaves nothing
// pending it refills and completes. A refill error also completes the
// cascade, leaving the unfillable cell empty.
func (c *Cascade) Step() (Phase, error) {
	if c.done {
		return PhaseDone, nil
	}

	if len(c.pending) > 0 {
		c.report.Cleared += len(c.pending)
		c.report.Passes++
		c.pending = c.board.clearAndCollapse(c.pending)
		return PhasePass, nil
	}

	c.done = true
	spawned, err := c.board.FillEmptyCells()
	c.report.Spawned += len(spawned)
	return PhaseRefill, err
}

// Run steps the cascade to completion.
func (c *Cascade) Run() (Report, error) {
	for !c.done {
		if _, err := c.Step(); err != nil {
			return c.report, err
		}
	}
	return c.report, nil
}

// clearAndCollapse removes the matched pieces, compacts every touched
// column and returns the matches formed by the pieces that moved.
func (b *Board) clearAndCollapse(matches MatchSet) MatchSet {
	for _, p := range matches {
		b.grid.put(p.Pos, nil)
		b.renderer.Removed(*p)
	}

	var moved []*Piece
	for _, x := range matches.Columns() {
		moved = append(moved, b.collapseColumn(x)...)
	}

	var next MatchSet
	for _, p := range moved {
		next = next.Union(b.MatchAt(p.Pos))
	}
	return next
}

// collapseColumn moves the pieces of column x down over the empty cells,
// keeping their relative order, and returns the pieces that moved.
func (b *Board) collapseColumn(x int) []*Piece {
	var moved []*Piece
	write := 0
	for y := range b.grid.Height() {
		p := b.grid.at(C(x, y))
		if p == nil {
			continue
		}
		if y != write {
			from := p.Pos
			b.grid.put(from, nil)
			b.place(p, C(x, write))
			b.renderer.Moved(*p, from, p.Pos)
			moved = append(moved, p)
		}
		write++
	}
	return moved
}
