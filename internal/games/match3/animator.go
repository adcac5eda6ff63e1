package match3

import (
	"sort"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// Timings holds animation durations in ticks.
type Timings struct {
	Move    int // One cell-to-cell move
	Remove  int // Pop before a cleared piece disappears
	Spawn   int // Drop-in of a new piece
	Stagger int // Delay between consecutive spawns in one batch
}

// segment is one leg of a sprite's path.
type segment struct {
	from, to core.Coord
	total    int
	elapsed  int
}

// sprite is the animated stand-in for one piece.
type sprite struct {
	id       uint64
	typ      core.PieceType
	pos      core.Coord // Where the sprite rests once its path is done
	path     []segment
	delay    int  // Ticks before the path starts
	spawning bool // Still on its drop-in leg
	removing int  // Pop ticks left; 0 when not being removed
}

// SpriteView is a read-only snapshot of a sprite for drawing.
type SpriteView struct {
	ID       uint64
	Type     core.PieceType
	From     core.Coord
	To       core.Coord
	T        float64 // Progress from From to To in [0, 1]
	Spawning bool
	Removing bool
}

// Animator is the core.Renderer used by the terminal front-end.
// It turns engine notifications into tick-driven tweens and reports
// when everything has come to rest.
type Animator struct {
	timings Timings
	sprites map[uint64]*sprite
	batch   int // Spawns received since the last Tick
}

// NewAnimator creates an animator with the given timings.
func NewAnimator(t Timings) *Animator {
	return &Animator{
		timings: t,
		sprites: make(map[uint64]*sprite),
	}
}

// Spawned starts a drop-in from above the board.
func (a *Animator) Spawned(p core.Piece, from, to core.Coord) {
	a.sprites[p.ID] = &sprite{
		id:       p.ID,
		typ:      p.Type,
		pos:      to,
		path:     []segment{{from: from, to: to, total: max(a.timings.Spawn, 1)}},
		delay:    a.batch * a.timings.Stagger,
		spawning: true,
	}
	a.batch++
}

// Moved queues a move after whatever the sprite is already doing.
func (a *Animator) Moved(p core.Piece, from, to core.Coord) {
	s, ok := a.sprites[p.ID]
	if !ok {
		s = &sprite{id: p.ID, typ: p.Type, pos: from}
		a.sprites[p.ID] = s
	}
	s.path = append(s.path, segment{from: from, to: to, total: max(a.timings.Move, 1)})
	s.pos = to
}

// Removed starts the pop of a cleared piece.
func (a *Animator) Removed(p core.Piece) {
	s, ok := a.sprites[p.ID]
	if !ok {
		return
	}
	// A cleared piece pops where it stands.
	s.path = nil
	s.delay = 0
	s.spawning = false
	s.removing = max(a.timings.Remove, 1)
}

// Tick advances every sprite by one tick.
func (a *Animator) Tick() {
	a.batch = 0
	for id, s := range a.sprites {
		if s.removing > 0 {
			s.removing--
			if s.removing == 0 {
				delete(a.sprites, id)
			}
			continue
		}
		if s.delay > 0 {
			s.delay--
			continue
		}
		if len(s.path) == 0 {
			continue
		}
		seg := &s.path[0]
		seg.elapsed++
		if seg.elapsed >= seg.total {
			s.path = s.path[1:]
			s.spawning = false
		}
	}
}

// Busy reports whether any sprite is still moving or popping.
func (a *Animator) Busy() bool {
	for _, s := range a.sprites {
		if s.removing > 0 || len(s.path) > 0 {
			return true
		}
	}
	return false
}

// Finish jumps every sprite to the end of its path.
func (a *Animator) Finish() {
	for id, s := range a.sprites {
		if s.removing > 0 {
			delete(a.sprites, id)
			continue
		}
		s.path = nil
		s.delay = 0
		s.spawning = false
	}
	a.batch = 0
}

// Clear drops all sprites.
func (a *Animator) Clear() {
	a.sprites = make(map[uint64]*sprite)
	a.batch = 0
}

// Len returns the number of live sprites.
func (a *Animator) Len() int {
	return len(a.sprites)
}

// Sprites returns the current sprite views ordered by piece ID.
func (a *Animator) Sprites() []SpriteView {
	views := make([]SpriteView, 0, len(a.sprites))
	for _, s := range a.sprites {
		views = append(views, s.view())
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].ID < views[j].ID
	})
	return views
}

func (s *sprite) view() SpriteView {
	v := SpriteView{
		ID:       s.id,
		Type:     s.typ,
		From:     s.pos,
		To:       s.pos,
		T:        1,
		Spawning: s.spawning,
		Removing: s.removing > 0,
	}
	if len(s.path) > 0 {
		seg := s.path[0]
		v.From, v.To = seg.from, seg.to
		v.T = float64(seg.elapsed) / float64(seg.total)
	}
	return v
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
