package core

// State is the interaction state of a board.
type State int

const (
	// StateIdle admits new swap gestures.
	StateIdle State = iota
	// StateLocked discards input while a swap and its cascade resolve.
	StateLocked
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// MoveRecord describes one swap attempt and what it caused.
type MoveRecord struct {
	From     Coord
	To       Coord
	Accepted bool
	Report   Report
}

// gesture tracks a press and its candidate target.
type gesture struct {
	origin    Coord
	target    Coord
	hasOrigin bool
	hasTarget bool
}

// Idle is the state in which gestures are accepted.
// Only Idle has input methods, so locked boards cannot take input.
type Idle struct {
	gesture gesture
}

// Press starts a gesture at c, replacing any pending one.
func (s *Idle) Press(c Coord) {
	s.gesture = gesture{origin: c, hasOrigin: true}
}

// Hover sets c as the candidate target if it is adjacent to the origin,
// and clears the candidate otherwise.
func (s *Idle) Hover(c Coord) {
	if !s.gesture.hasOrigin {
		return
	}
	s.gesture.target = c
	s.gesture.hasTarget = s.gesture.origin.Adjacent(c)
}

// Release ends the gesture over c. If the gesture has a candidate target
// the swap is attempted. It returns the attempt, and a Locked state to
// continue in when the swap was accepted.
func (s *Idle) Release(b *Board, c Coord) (*Locked, MoveRecord, bool) {
	s.Hover(c)
	g := s.gesture
	s.gesture = gesture{}

	if !g.hasOrigin || !g.hasTarget {
		return nil, MoveRecord{}, false
	}

	result := b.AttemptSwap(g.origin, g.target)
	record := MoveRecord{From: g.origin, To: g.target, Accepted: result.Accepted}
	if !result.Accepted {
		return nil, record, true
	}
	return &Locked{cascade: b.Resolve(result.Matches), record: record}, record, true
}

// Locked is the state in which an accepted swap is being resolved.
type Locked struct {
	cascade *Cascade
	record  MoveRecord
}

// Advance runs the next cascade phase.
func (s *Locked) Advance() (Phase, error) {
	phase, err := s.cascade.Step()
	s.record.Report = s.cascade.Report()
	return phase, err
}

// Next returns the phase the next Advance will run.
func (s *Locked) Next() Phase {
	return s.cascade.Next()
}

// Done reports whether the cascade completed and input may resume.
func (s *Locked) Done() bool {
	return s.cascade.Done()
}

// Record returns the swap attempt with the cascade work done so far.
func (s *Locked) Record() MoveRecord {
	return s.record
}

// Controller routes input events from the input collaborator to the
// current state and drives the cascade while locked.
type Controller struct {
	board      *Board
	idle       *Idle
	locked     *Locked
	discarded  int
	onResolved func(MoveRecord)
}

// NewController creates an idle controller for the board.
func NewController(b *Board) *Controller {
	return &Controller{
		board: b,
		idle:  &Idle{},
	}
}

// Board returns the controlled board.
func (c *Controller) Board() *Board {
	return c.board
}

// State returns the current interaction state.
func (c *Controller) State() State {
	if c.locked != nil {
		return StateLocked
	}
	return StateIdle
}

// OnResolved registers fn to be called once per swap attempt: immediately
// for a rejected swap, and after the cascade completes for an accepted one.
func (c *Controller) OnResolved(fn func(MoveRecord)) {
	c.onResolved = fn
}

// Discarded returns how many input events arrived while locked.
func (c *Controller) Discarded() int {
	return c.discarded
}

// Origin returns the pending gesture origin, if any.
func (c *Controller) Origin() (Coord, bool) {
	if c.idle == nil {
		return Coord{}, false
	}
	return c.idle.gesture.origin, c.idle.gesture.hasOrigin
}

// Target returns the pending candidate target, if any.
func (c *Controller) Target() (Coord, bool) {
	if c.idle == nil {
		return Coord{}, false
	}
	return c.idle.gesture.target, c.idle.gesture.hasTarget
}

// Pressed handles a press on cell.
func (c *Controller) Pressed(cell Coord) {
	if c.locked != nil {
		c.discarded++
		return
	}
	c.idle.Press(cell)
}

// Hovered handles the pointer entering cell.
func (c *Controller) Hovered(cell Coord) {
	if c.locked != nil {
		c.discarded++
		return
	}
	c.idle.Hover(cell)
}

// Released handles a release on cell. It returns true if a swap was attempted.
func (c *Controller) Released(cell Coord) bool {
	if c.locked != nil {
		c.discarded++
		return false
	}

	locked, record, attempted := c.idle.Release(c.board, cell)
	if !attempted {
		return false
	}
	if locked == nil {
		c.resolved(record)
		return true
	}

	c.locked = locked
	c.idle = nil
	return true
}

// Cancel drops a pending gesture without attempting a swap.
func (c *Controller) Cancel() {
	if c.idle != nil {
		c.idle.gesture = gesture{}
	}
}

// Advance runs one cascade phase while locked and returns to idle once the
// cascade is done. It returns PhaseDone when idle.
func (c *Controller) Advance() (Phase, error) {
	if c.locked == nil {
		return PhaseDone, nil
	}

	phase, err := c.locked.Advance()
	if c.locked.Done() {
		record := c.locked.Record()
		c.locked = nil
		c.idle = &Idle{}
		c.resolved(record)
	}
	return phase, err
}

// Next returns the phase the next Advance will run, or PhaseDone when idle.
func (c *Controller) Next() Phase {
	if c.locked == nil {
		return PhaseDone
	}
	return c.locked.Next()
}

// Settle advances until the controller is idle again.
func (c *Controller) Settle() error {
	for c.locked != nil {
		if _, err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Swap performs a complete press, hover, release gesture from a to b and
// settles any cascade it starts. Used for replays and scripted play.
func (c *Controller) Swap(a, b Coord) error {
	c.Pressed(a)
	c.Hovered(b)
	c.Released(b)
	return c.Settle()
}

func (c *Controller) resolved(record MoveRecord) {
	if c.onResolved != nil {
		c.onResolved(record)
	}
}
