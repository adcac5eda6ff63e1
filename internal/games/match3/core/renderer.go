package core

// Renderer receives every piece lifecycle change made by the engine.
// Pieces are passed by value; the engine owns the originals.
// Implementations decide their own timing and must not call back into the board.
type Renderer interface {
	// Spawned is called when a new piece is created at to. from is where
	// it should visually enter from, above the board.
	Spawned(p Piece, from, to Coord)

	// Moved is called when a piece changes cell.
	Moved(p Piece, from, to Coord)

	// Removed is called when a piece is cleared from the board.
	Removed(p Piece)
}

// NopRenderer discards all notifications.
type NopRenderer struct{}

func (NopRenderer) Spawned(Piece, Coord, Coord) {}
func (NopRenderer) Moved(Piece, Coord, Coord)   {}
func (NopRenderer) Removed(Piece)               {}

// EventKind identifies a renderer notification.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventMoved
	EventRemoved
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventMoved:
		return "moved"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a recorded renderer notification.
type Event struct {
	Kind  EventKind
	Piece Piece
	From  Coord
	To    Coord
}

// Recorder is a Renderer that keeps every notification in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Spawned(p Piece, from, to Coord) {
	r.Events = append(r.Events, Event{Kind: EventSpawned, Piece: p, From: from, To: to})
}

func (r *Recorder) Moved(p Piece, from, to Coord) {
	r.Events = append(r.Events, Event{Kind: EventMoved, Piece: p, From: from, To: to})
}

func (r *Recorder) Removed(p Piece) {
	r.Events = append(r.Events, Event{Kind: EventRemoved, Piece: p, From: p.Pos, To: p.Pos})
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// MultiRenderer fans notifications out to several renderers in order.
type MultiRenderer []Renderer

func (m MultiRenderer) Spawned(p Piece, from, to Coord) {
	for _, r := range m {
		r.Spawned(p, from, to)
	}
}

func (m MultiRenderer) Moved(p Piece, from, to Coord) {
	for _, r := range m {
		r.Moved(p, from, to)
	}
}

func (m MultiRenderer) Removed(p Piece) {
	for _, r := range m {
		r.Removed(p)
	}
}
