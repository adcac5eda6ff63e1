package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestControllerAcceptedSwapLocksUntilSettled(t *testing.T) {
	b, _ := loadBoard(t, 5,
		"CDADB",
		"AABAC",
	)
	ctrl := NewController(b)

	var records []MoveRecord
	ctrl.OnResolved(func(r MoveRecord) { records = append(records, r) })

	ctrl.Pressed(C(2, 0))
	ctrl.Hovered(C(2, 1))
	if !ctrl.Released(C(2, 1)) {
		t.Fatalf("expected a swap attempt")
	}
	if ctrl.State() != StateLocked {
		t.Fatalf("state = %v, expected locked", ctrl.State())
	}

	// Input while locked is dropped.
	before := b.Snapshot()
	ctrl.Pressed(C(0, 1))
	ctrl.Hovered(C(1, 1))
	if ctrl.Released(C(1, 1)) {
		t.Errorf("release while locked attempted a swap")
	}
	if ctrl.Discarded() != 3 {
		t.Errorf("Discarded() = %d, expected 3", ctrl.Discarded())
	}
	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Errorf("board changed by locked input (-before +after):\n%s", diff)
	}
	if _, ok := ctrl.Origin(); ok {
		t.Errorf("locked controller should have no gesture")
	}

	var phases []Phase
	for ctrl.State() == StateLocked {
		phase, err := ctrl.Advance()
		if err != nil {
			t.Fatalf("Advance() failed: %v", err)
		}
		phases = append(phases, phase)
	}
	if diff := cmp.Diff([]Phase{PhasePass, PhaseRefill}, phases); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}

	expected := []MoveRecord{{
		From:     C(2, 0),
		To:       C(2, 1),
		Accepted: true,
		Report:   Report{Passes: 1, Cleared: 4, Spawned: 4},
	}}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("resolved records mismatch (-want +got):\n%s", diff)
	}
	if err := b.Verify(); err != nil {
		t.Errorf("board not settled: %v", err)
	}

	if phase, err := ctrl.Advance(); phase != PhaseDone || err != nil {
		t.Errorf("Advance() while idle = %v, %v", phase, err)
	}
}

func TestControllerRejectedSwapStaysIdle(t *testing.T) {
	b, rec := loadBoard(t, 3,
		"ABC",
		"BCA",
		"CAB",
	)
	ctrl := NewController(b)

	var records []MoveRecord
	ctrl.OnResolved(func(r MoveRecord) { records = append(records, r) })

	ctrl.Pressed(C(0, 0))
	if !ctrl.Released(C(1, 0)) {
		t.Fatalf("expected a swap attempt")
	}
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, expected idle", ctrl.State())
	}

	expected := []MoveRecord{{From: C(0, 0), To: C(1, 0)}}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("resolved records mismatch (-want +got):\n%s", diff)
	}
	if rec.Count(EventMoved) != 4 {
		t.Errorf("expected out-and-back moves, got %d", rec.Count(EventMoved))
	}
}

func TestControllerGestures(t *testing.T) {
	tests := []struct {
		name      string
		play      func(c *Controller) bool
		attempted bool
	}{
		{
			name: "release on origin",
			play: func(c *Controller) bool {
				c.Pressed(C(1, 1))
				return c.Released(C(1, 1))
			},
		},
		{
			name: "release two cells away",
			play: func(c *Controller) bool {
				c.Pressed(C(0, 0))
				return c.Released(C(2, 0))
			},
		},
		{
			name: "hover adjacent then release elsewhere",
			play: func(c *Controller) bool {
				c.Pressed(C(0, 0))
				c.Hovered(C(1, 0))
				return c.Released(C(2, 2))
			},
		},
		{
			name: "release without press",
			play: func(c *Controller) bool {
				c.Hovered(C(1, 0))
				return c.Released(C(1, 0))
			},
		},
		{
			name: "cancelled gesture",
			play: func(c *Controller) bool {
				c.Pressed(C(0, 0))
				c.Hovered(C(1, 0))
				c.Cancel()
				return c.Released(C(1, 0))
			},
		},
		{
			name: "latest press wins",
			play: func(c *Controller) bool {
				c.Pressed(C(2, 2))
				c.Pressed(C(0, 0))
				c.Hovered(C(1, 0))
				return c.Released(C(1, 0))
			},
			attempted: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := loadBoard(t, 3,
				"ABC",
				"BCA",
				"CAB",
			)
			ctrl := NewController(b)

			var records []MoveRecord
			ctrl.OnResolved(func(r MoveRecord) { records = append(records, r) })

			if got := tc.play(ctrl); got != tc.attempted {
				t.Errorf("attempted = %v, expected %v", got, tc.attempted)
			}
			if tc.attempted && (len(records) != 1 || records[0].From != C(0, 0)) {
				t.Errorf("unexpected records %+v", records)
			}
			if !tc.attempted && len(records) != 0 {
				t.Errorf("expected no records, got %+v", records)
			}
			if _, ok := ctrl.Origin(); ok {
				t.Errorf("gesture should be cleared after release")
			}
		})
	}
}

func TestControllerSwap(t *testing.T) {
	b, _ := loadBoard(t, 5,
		"CDADB",
		"AABAC",
	)
	ctrl := NewController(b)

	if err := ctrl.Swap(C(2, 0), C(2, 1)); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Errorf("Swap() should leave the controller idle")
	}
	if err := b.Verify(); err != nil {
		t.Errorf("board not settled: %v", err)
	}
}
