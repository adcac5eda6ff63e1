package match3

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/match3/internal/config"
	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

// memJournal is an in-memory storage.Journal.
type memJournal struct {
	sessions []storage.SessionParams
	moves    map[int64][]storage.MoveEntry
	failNext bool
}

func (j *memJournal) BeginSession(p storage.SessionParams) (int64, error) {
	if j.failNext {
		j.failNext = false
		return 0, errors.New("disk full")
	}
	j.sessions = append(j.sessions, p)
	if j.moves == nil {
		j.moves = make(map[int64][]storage.MoveEntry)
	}
	return int64(len(j.sessions)), nil
}

func (j *memJournal) RecordMove(id int64, m storage.MoveEntry) error {
	j.moves[id] = append(j.moves[id], m)
	return nil
}

// useConfig installs a board configuration for the duration of a test.
func useConfig(t *testing.T, modify func(*config.Match3Config)) {
	t.Helper()
	cfg := config.DefaultMatch3Config()
	modify(&cfg)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(config.DefaultMatch3Config()) })
}

func runtimeConfig(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newLoadedGame resets a game on a board sized to rows and loads them.
func newLoadedGame(t *testing.T, palette int, rows ...string) (*Game, *memJournal) {
	t.Helper()
	useConfig(t, func(c *config.Match3Config) {
		c.Board.Width = len(rows[0])
		c.Board.Height = len(rows)
		c.Board.PaletteSize = palette
	})

	j := &memJournal{}
	g := New()
	g.SetJournal(j)
	g.Reset(runtimeConfig(11))
	if g.State().Failed {
		t.Fatalf("Reset() failed: %s", g.State().Error)
	}
	if err := g.Board().Load(rows); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	g.anim.Clear()
	return g, j
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// settle steps with empty input until the game is idle.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if !g.State().Busy {
			return
		}
		g.Step(platformcore.NewInputFrame())
	}
	t.Fatalf("game did not settle")
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{IDStandard, IDClassic} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}
}

func TestResetBuildsSettledBoard(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig(5))

	if g.State().Failed {
		t.Fatalf("Reset() failed: %s", g.State().Error)
	}
	if err := g.Board().Verify(); err != nil {
		t.Fatalf("board not settled: %v", err)
	}
	if g.anim.Len() != 64 {
		t.Errorf("expected a sprite per cell, got %d", g.anim.Len())
	}
	if !g.State().Busy {
		t.Errorf("initial drop-in should keep the game busy")
	}
	settle(t, g)
}

func TestClassicUsesWholeCatalog(t *testing.T) {
	g := NewClassic()
	g.Reset(runtimeConfig(5))

	if got := g.Board().Options().PaletteSize; got != 10 {
		t.Errorf("classic palette size = %d, expected 10", got)
	}
	if got := len(g.Palette()); got != 10 {
		t.Errorf("legend lists %d pieces, expected 10", got)
	}
	var _ registry.Paletted = g
	if g.ID() != IDClassic {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	a, b := New(), New()
	a.Reset(runtimeConfig(99))
	b.Reset(runtimeConfig(99))

	if diff := cmp.Diff(a.Board().Snapshot(), b.Board().Snapshot()); diff != "" {
		t.Errorf("same seed gave different boards (-a +b):\n%s", diff)
	}
}

func TestKeyboardSwap(t *testing.T) {
	g, j := newLoadedGame(t, 5,
		"CDADB",
		"AABAC",
	)
	g.cursor = core.C(2, 0)

	g.Step(frame(platformcore.ActionSelect))
	if origin, ok := g.Controller().Origin(); !ok || origin != core.C(2, 0) {
		t.Fatalf("select should pick up the cursor piece, origin = %v, %v", origin, ok)
	}

	g.Step(frame(platformcore.ActionUp))
	if target, ok := g.Controller().Target(); !ok || target != core.C(2, 1) {
		t.Fatalf("moving while held should hover, target = %v, %v", target, ok)
	}

	g.Step(frame(platformcore.ActionSelect))
	if g.Controller().State() != core.StateLocked {
		t.Fatalf("accepted swap should lock the board")
	}

	// Input while resolving is dropped by the controller.
	g.Step(frame(platformcore.ActionSelect))
	if g.Controller().Discarded() == 0 {
		t.Errorf("select while locked should be discarded")
	}

	settle(t, g)

	if g.Controller().State() != core.StateIdle {
		t.Errorf("controller should be idle after settling")
	}
	if err := g.Board().Verify(); err != nil {
		t.Errorf("board not settled: %v", err)
	}

	want := []storage.MoveEntry{{Seq: 1, FromX: 2, FromY: 0, ToX: 2, ToY: 1, Accepted: true, Passes: 1, Cleared: 4, Spawned: 4}}
	if diff := cmp.Diff(want, j.moves[g.SessionID()]); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.State().Moves)
	}
}

func TestPointerRejectedSwap(t *testing.T) {
	g, j := newLoadedGame(t, 4,
		"ABC",
		"BCA",
		"CAB",
	)
	before := g.Board().Snapshot()

	px, py := g.layout.cellOrigin(core.C(0, 0))
	qx, qy := g.layout.cellOrigin(core.C(1, 0))

	f := platformcore.NewInputFrame()
	f.AddPointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: px, Y: py})
	f.AddPointer(platformcore.PointerEvent{Kind: platformcore.PointerMotion, X: qx, Y: qy})
	f.AddPointer(platformcore.PointerEvent{Kind: platformcore.PointerRelease, X: qx, Y: qy})
	g.Step(f)

	if g.Controller().State() != core.StateIdle {
		t.Errorf("rejected swap should not lock")
	}
	if !g.State().Busy {
		t.Errorf("rejected swap should still animate out and back")
	}
	settle(t, g)

	if diff := cmp.Diff(before.Cells, g.Board().Snapshot().Cells); diff != "" {
		t.Errorf("rejected swap changed the board (-before +after):\n%s", diff)
	}
	moves := j.moves[g.SessionID()]
	if len(moves) != 1 || moves[0].Accepted {
		t.Errorf("expected one rejected move in the journal, got %+v", moves)
	}
}

func TestPointerReleaseOffBoardCancels(t *testing.T) {
	g, j := newLoadedGame(t, 4,
		"ABC",
		"BCA",
		"CAB",
	)
	px, py := g.layout.cellOrigin(core.C(0, 0))

	f := platformcore.NewInputFrame()
	f.AddPointer(platformcore.PointerEvent{Kind: platformcore.PointerPress, X: px, Y: py})
	f.AddPointer(platformcore.PointerEvent{Kind: platformcore.PointerRelease, X: 0, Y: 0})
	g.Step(f)

	if _, ok := g.Controller().Origin(); ok {
		t.Errorf("release off the board should drop the gesture")
	}
	if len(j.moves[g.SessionID()]) != 0 {
		t.Errorf("no swap should be journaled")
	}
}

func TestCancelDropsHeldPiece(t *testing.T) {
	g, _ := newLoadedGame(t, 4,
		"ABC",
		"BCA",
		"CAB",
	)

	g.Step(frame(platformcore.ActionSelect))
	g.Step(frame(platformcore.ActionCancel))
	g.Step(frame(platformcore.ActionRight))

	if _, ok := g.Controller().Origin(); ok || g.held {
		t.Errorf("cancel should drop the held piece")
	}
}

func TestPauseFreezesAnimation(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig(3))

	g.Step(frame(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatalf("expected paused")
	}
	before := g.anim.Sprites()
	for range 5 {
		g.Step(platformcore.NewInputFrame())
	}
	if diff := cmp.Diff(before, g.anim.Sprites()); diff != "" {
		t.Errorf("sprites moved while paused (-before +after):\n%s", diff)
	}

	g.Step(frame(platformcore.ActionPause))
	if g.State().Paused {
		t.Errorf("expected unpaused")
	}
}

func TestUnfillableBoardFails(t *testing.T) {
	useConfig(t, func(c *config.Match3Config) {
		c.Board.PaletteSize = 4
		c.Board.MinMatch = 2
		c.Board.MaxFillRetries = 1
	})

	g := New()
	g.Reset(runtimeConfig(1))

	state := g.State()
	if !state.Failed || !strings.Contains(state.Error, "no piece type fits") {
		t.Fatalf("expected an unsatisfiable failure, got %+v", state)
	}
	if g.anim.Busy() || state.Busy {
		t.Errorf("a failed board should be drawn at rest")
	}

	// A failed game keeps running without touching the board.
	g.Step(frame(platformcore.ActionSelect))

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "BOARD STUCK") {
		t.Errorf("failure should be shown on screen")
	}
}

func TestJournalFailureDisablesSession(t *testing.T) {
	j := &memJournal{failNext: true}
	g := New()
	g.SetJournal(j)
	g.Reset(runtimeConfig(2))

	if g.SessionID() != 0 {
		t.Errorf("SessionID() = %d, expected 0 after journal error", g.SessionID())
	}
	if g.State().Failed {
		t.Errorf("journal errors must not fail the game")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	cfg := runtimeConfig(1)
	cfg.ScreenW, cfg.ScreenH = 20, 5
	g.Reset(cfg)

	screen := platformcore.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}

	g.Resize(80, 24)
	screen = platformcore.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "small") {
		t.Errorf("resize should restore the board")
	}
}

func TestRenderShowsEveryPiece(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig(8))
	g.anim.Finish()

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	glyphs := make(map[rune]bool)
	for _, st := range g.styles {
		glyphs[st.glyph] = true
	}

	in := g.layout.interior()
	count := 0
	for y := in.Y; y < in.Bottom(); y++ {
		for x := in.X; x < in.Right(); x++ {
			if glyphs[screen.Get(x, y)] {
				count++
			}
		}
	}
	if count != 64 {
		t.Errorf("expected 64 piece glyphs inside the frame, got %d", count)
	}
	if screen.Get(g.layout.frame.X, g.layout.frame.Y) != '┌' {
		t.Errorf("frame not drawn")
	}
}
