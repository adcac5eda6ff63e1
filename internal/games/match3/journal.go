package match3

import (
	"fmt"

	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/storage"
)

// SessionParams describes a board for the journal.
func SessionParams(gameID string, opts core.Options) storage.SessionParams {
	return storage.SessionParams{
		GameID:         gameID,
		Seed:           opts.Seed,
		Width:          opts.Width,
		Height:         opts.Height,
		PaletteSize:    opts.PaletteSize,
		MinMatch:       opts.MinMatch,
		MaxFillRetries: opts.MaxFillRetries,
	}
}

// BoardOptions rebuilds the board options of a journaled session.
func BoardOptions(p storage.SessionParams) core.Options {
	return core.Options{
		Width:          p.Width,
		Height:         p.Height,
		PaletteSize:    p.PaletteSize,
		MinMatch:       p.MinMatch,
		MaxFillRetries: p.MaxFillRetries,
		Seed:           p.Seed,
	}
}

// MoveEntry converts a swap attempt to a journal row.
func MoveEntry(seq int, rec core.MoveRecord) storage.MoveEntry {
	return storage.MoveEntry{
		Seq:      seq,
		FromX:    rec.From.X,
		FromY:    rec.From.Y,
		ToX:      rec.To.X,
		ToY:      rec.To.Y,
		Accepted: rec.Accepted,
		Passes:   rec.Report.Passes,
		Cleared:  rec.Report.Cleared,
		Spawned:  rec.Report.Spawned,
	}
}

// Divergence is a replayed move whose outcome differs from the journal.
type Divergence struct {
	Seq  int
	Want storage.MoveEntry
	Got  storage.MoveEntry
	// Events are the renderer notifications the replayed move produced.
	Events []core.Event
}

// String describes the divergence for reports.
func (d Divergence) String() string {
	rec := core.Recorder{Events: d.Events}
	return fmt.Sprintf("move %d: journal accepted=%v cleared=%d passes=%d, replay accepted=%v cleared=%d passes=%d (%d moved, %d removed, %d spawned)",
		d.Seq, d.Want.Accepted, d.Want.Cleared, d.Want.Passes, d.Got.Accepted, d.Got.Cleared, d.Got.Passes,
		rec.Count(core.EventMoved), rec.Count(core.EventRemoved), rec.Count(core.EventSpawned))
}

// ReplayResult is the outcome of replaying a journaled session.
type ReplayResult struct {
	Board       *core.Board
	Applied     int
	Divergences []Divergence
}

// Replay rebuilds a session's board from its seed and re-applies every
// journaled swap, checking each outcome against the journal. The renderer
// may be nil; notifications also go to a recorder so divergences can list
// what the move did.
func Replay(p storage.SessionParams, moves []storage.MoveEntry, r core.Renderer) (ReplayResult, error) {
	rec := &core.Recorder{}
	var out core.Renderer = rec
	if r != nil {
		out = core.MultiRenderer{rec, r}
	}

	board, err := core.NewBoard(BoardOptions(p), out)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}
	if err := board.Populate(); err != nil {
		return ReplayResult{}, fmt.Errorf("replay: populate: %w", err)
	}

	result := ReplayResult{Board: board}
	ctrl := core.NewController(board)

	var last core.MoveRecord
	ctrl.OnResolved(func(rec core.MoveRecord) { last = rec })

	for _, m := range moves {
		last = core.MoveRecord{}
		rec.Reset()
		if err := ctrl.Swap(core.C(m.FromX, m.FromY), core.C(m.ToX, m.ToY)); err != nil {
			return result, fmt.Errorf("replay: move %d: %w", m.Seq, err)
		}
		result.Applied++

		got := MoveEntry(m.Seq, last)
		if got.Accepted != m.Accepted || got.Passes != m.Passes || got.Cleared != m.Cleared || got.Spawned != m.Spawned {
			result.Divergences = append(result.Divergences, Divergence{
				Seq:    m.Seq,
				Want:   m,
				Got:    got,
				Events: append([]core.Event(nil), rec.Events...),
			})
		}
	}
	return result, nil
}
