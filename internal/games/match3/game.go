// Package match3 provides the match-3 tile puzzle for the platform.
// The rules live in the core subpackage; this package adapts them to
// screen input, animation pacing and terminal rendering.
package match3

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/match3/internal/config"
	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

// Variant IDs.
const (
	IDStandard = "match3"
	IDClassic  = "match3_classic"
)

// Package-level configuration, set by the CLI before games are created.
var (
	configMu     sync.RWMutex
	activeConfig = config.DefaultMatch3Config()
)

// SetConfig sets the configuration used by games reset after this call.
func SetConfig(cfg config.Match3Config) {
	configMu.Lock()
	defer configMu.Unlock()
	activeConfig = cfg
}

// currentConfig returns a copy of the active configuration.
func currentConfig() config.Match3Config {
	configMu.RLock()
	defer configMu.RUnlock()
	cfg := activeConfig
	cfg.Pieces = append([]config.PieceStyle(nil), activeConfig.Pieces...)
	return cfg
}

func init() {
	registry.Register(IDStandard, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// Game implements the match-3 puzzle.
type Game struct {
	id      string
	title   string
	classic bool // Play with the whole piece catalog

	cfg    config.Match3Config
	styles []pieceStyle
	board  *core.Board
	ctrl   *core.Controller
	anim   *Animator
	pacer  *Pacer

	seed     int64
	tickRate int
	tick     uint64

	// Screen dimensions
	screenW  int
	screenH  int
	layout   layout
	tooSmall bool

	// Keyboard gesture
	cursor core.Coord
	held   bool

	paused   bool
	failed   error
	moves    int
	lastMove *core.MoveRecord

	journal   storage.Journal
	sessionID int64
	logger    *log.Logger
}

// New creates a game that uses the configured palette.
func New() *Game {
	return &Game{
		id:     IDStandard,
		title:  "Match-3",
		logger: log.New(io.Discard),
	}
}

// NewClassic creates a game that plays with every piece in the catalog.
func NewClassic() *Game {
	return &Game{
		id:      IDClassic,
		title:   "Match-3 Classic",
		classic: true,
		logger:  log.New(io.Discard),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetJournal makes the game record its session and moves.
func (g *Game) SetJournal(j storage.Journal) {
	g.journal = j
}

// SetLogger routes the game's logging to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Reset builds and populates a new board.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = currentConfig()
	if g.classic {
		g.cfg.Board.PaletteSize = len(g.cfg.Pieces)
	}

	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	g.tick = 0
	g.paused = false
	g.failed = nil
	g.moves = 0
	g.lastMove = nil
	g.held = false
	g.sessionID = 0
	g.board = nil
	g.ctrl = nil

	g.styles = buildStyles(g.cfg.Palette())
	g.anim = NewAnimator(Timings{
		Move:    ticksFor(g.cfg.Pacing.MoveMS, g.tickRate),
		Remove:  ticksFor(g.cfg.Pacing.RemoveMS, g.tickRate),
		Spawn:   ticksFor(g.cfg.Pacing.SpawnMS, g.tickRate),
		Stagger: ticksFor(g.cfg.Pacing.StaggerMS, g.tickRate),
	})
	g.pacer = NewPacer(g.cfg.Pacing, g.tickRate)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	board, err := core.NewBoard(g.boardOptions(), g.anim)
	if err != nil {
		g.fail(fmt.Errorf("new board: %w", err))
		return
	}
	g.board = board
	g.ctrl = core.NewController(board)
	g.ctrl.OnResolved(g.resolved)
	g.cursor = core.C(g.cfg.Board.Width/2, g.cfg.Board.Height/2)

	if err := board.Populate(); err != nil {
		g.fail(fmt.Errorf("populate: %w", err))
		return
	}

	g.logger.Debug("board ready", "game", g.id, "seed", g.seed,
		"size", fmt.Sprintf("%dx%d", g.cfg.Board.Width, g.cfg.Board.Height),
		"palette", g.cfg.Board.PaletteSize)
	g.beginSession()
}

// Resize adapts the layout to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout, g.tooSmall = newLayout(w, h, g.cfg.Board.Width, g.cfg.Board.Height)
}

func (g *Game) boardOptions() core.Options {
	return core.Options{
		Width:          g.cfg.Board.Width,
		Height:         g.cfg.Board.Height,
		PaletteSize:    g.cfg.Board.PaletteSize,
		MinMatch:       g.cfg.Board.MinMatch,
		MaxFillRetries: g.cfg.Board.MaxFillRetries,
		Seed:           g.seed,
	}
}

// beginSession opens a journal session for the new board.
func (g *Game) beginSession() {
	if g.journal == nil {
		return
	}
	id, err := g.journal.BeginSession(SessionParams(g.id, g.boardOptions()))
	if err != nil {
		g.logger.Warn("journal disabled for this session", "err", err)
		return
	}
	g.sessionID = id
}

// resolved is the controller callback for every finished swap attempt.
func (g *Game) resolved(rec core.MoveRecord) {
	g.moves++
	g.lastMove = &rec

	g.logger.Debug("swap",
		"move", g.moves,
		"from", rec.From,
		"to", rec.To,
		"accepted", rec.Accepted,
		"passes", rec.Report.Passes,
		"cleared", rec.Report.Cleared,
		"spawned", rec.Report.Spawned)

	if g.journal == nil || g.sessionID == 0 {
		return
	}
	if err := g.journal.RecordMove(g.sessionID, MoveEntry(g.moves, rec)); err != nil {
		g.logger.Warn("could not journal move", "move", g.moves, "err", err)
	}
}

// fail stops the game. Step no longer ticks the animator once failed, so
// sprites are brought to rest here.
func (g *Game) fail(err error) {
	g.failed = err
	g.anim.Finish()
	g.logger.Error("board failed", "game", g.id, "seed", g.seed, "err", err)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.failed != nil || g.board == nil {
		return platformcore.StepResult{State: g.State()}
	}

	wasLocked := g.ctrl.State() == core.StateLocked
	g.handlePointer(in.Pointer)
	g.handleKeys(in)
	if !wasLocked && g.ctrl.State() == core.StateLocked {
		g.pacer.Schedule(true, g.ctrl.Next())
	}

	g.anim.Tick()

	if g.ctrl.State() == core.StateLocked && g.pacer.Ready(g.anim.Busy()) {
		phase, err := g.ctrl.Advance()
		if err != nil {
			g.fail(fmt.Errorf("cascade %s: %w", phase, err))
		} else if g.ctrl.State() == core.StateLocked {
			g.pacer.Schedule(false, g.ctrl.Next())
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// handlePointer feeds mouse gestures to the controller.
func (g *Game) handlePointer(events []platformcore.PointerEvent) {
	for _, e := range events {
		cell, ok := g.layout.cellAt(e.X, e.Y)
		switch e.Kind {
		case platformcore.PointerPress:
			if ok {
				g.cursor = cell
				g.held = false
				g.ctrl.Pressed(cell)
			}
		case platformcore.PointerMotion:
			if ok {
				g.ctrl.Hovered(cell)
			}
		case platformcore.PointerRelease:
			if ok {
				g.ctrl.Released(cell)
			} else {
				g.ctrl.Cancel()
			}
		}
	}
}

// handleKeys moves the cursor and turns select presses into a gesture:
// the first select picks a piece up, the second drops it on the cursor.
func (g *Game) handleKeys(in platformcore.InputFrame) {
	dx, dy := 0, 0
	if in.Has(platformcore.ActionLeft) {
		dx--
	}
	if in.Has(platformcore.ActionRight) {
		dx++
	}
	if in.Has(platformcore.ActionUp) {
		dy++
	}
	if in.Has(platformcore.ActionDown) {
		dy--
	}
	if dx != 0 || dy != 0 {
		g.cursor = core.C(
			platformcore.Clamp(g.cursor.X+dx, 0, g.cfg.Board.Width-1),
			platformcore.Clamp(g.cursor.Y+dy, 0, g.cfg.Board.Height-1),
		)
		if g.held {
			g.ctrl.Hovered(g.cursor)
		}
	}

	if in.Has(platformcore.ActionSelect) {
		if g.held {
			g.held = false
			g.ctrl.Released(g.cursor)
		} else {
			g.ctrl.Pressed(g.cursor)
			_, g.held = g.ctrl.Origin()
		}
	}

	if in.Has(platformcore.ActionCancel) {
		g.held = false
		g.ctrl.Cancel()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	s := platformcore.GameState{
		Failed: g.failed != nil,
		Paused: g.paused,
		Moves:  g.moves,
	}
	if g.failed != nil {
		s.Error = g.failed.Error()
	}
	if g.ctrl != nil {
		s.Busy = g.ctrl.State() == core.StateLocked || g.anim.Busy()
	}
	return s
}

// Palette returns the piece styles in play since the last reset.
func (g *Game) Palette() []config.PieceStyle {
	return g.cfg.Palette()
}

// Board returns the engine board, or nil if the last reset failed early.
func (g *Game) Board() *core.Board {
	return g.board
}

// Controller returns the interaction controller.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// SessionID returns the journal session of the current board, or 0.
func (g *Game) SessionID() int64 {
	return g.sessionID
}

// Seed returns the seed of the current board.
func (g *Game) Seed() int64 {
	return g.seed
}
