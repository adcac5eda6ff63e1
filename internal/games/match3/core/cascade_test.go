package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCascadeSingleColumn(t *testing.T) {
	b, rec := loadBoard(t, 3,
		"C",
		"B",
		"A",
		"A",
		"A",
		"C",
		"B",
	)
	below, above := cell(t, b, C(0, 5)), cell(t, b, C(0, 6))

	matches := b.MatchAt(C(0, 3))
	if len(matches) != 3 {
		t.Fatalf("expected the centre run of 3, got %d", len(matches))
	}

	cascade := b.Resolve(matches)
	if cascade.Next() != PhasePass {
		t.Errorf("Next() = %v before the first pass", cascade.Next())
	}
	phase, err := cascade.Step()
	if err != nil || phase != PhasePass {
		t.Fatalf("Step() = %v, %v, expected pass", phase, err)
	}

	want := []string{".", ".", ".", "C", "B", "C", "B"}
	if diff := cmp.Diff(want, b.Snapshot().Rows()); diff != "" {
		t.Errorf("column after collapse (-want +got):\n%s", diff)
	}
	if below.Pos != C(0, 2) || above.Pos != C(0, 3) {
		t.Errorf("fallen pieces at %v and %v, expected (0,2) and (0,3)", below.Pos, above.Pos)
	}
	if rec.Count(EventRemoved) != 3 || rec.Count(EventMoved) != 2 {
		t.Errorf("expected 3 removals and 2 moves, got %d and %d", rec.Count(EventRemoved), rec.Count(EventMoved))
	}

	if cascade.Next() != PhaseRefill {
		t.Errorf("Next() = %v once nothing is pending", cascade.Next())
	}
	phase, err = cascade.Step()
	if err != nil || phase != PhaseRefill {
		t.Fatalf("Step() = %v, %v, expected refill", phase, err)
	}
	if !cascade.Done() {
		t.Errorf("cascade should be done after the refill")
	}
	if phase, _ := cascade.Step(); phase != PhaseDone {
		t.Errorf("Step() after completion = %v, expected done", phase)
	}

	expected := Report{Passes: 1, Cleared: 3, Spawned: 3}
	if diff := cmp.Diff(expected, cascade.Report()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if err := b.Verify(); err != nil {
		t.Errorf("board not settled: %v", err)
	}
}

func TestCascadeChainReaction(t *testing.T) {
	// Clearing the AAA row drops the top B onto the two Bs below it.
	b, _ := loadBoard(t, 5,
		"BCA",
		"AAA",
		"BCB",
		"BAC",
	)

	cascade := b.Resolve(b.MatchAt(C(1, 2)))
	report, err := cascade.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	expected := Report{Passes: 2, Cleared: 6, Spawned: 6}
	if diff := cmp.Diff(expected, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if err := b.Verify(); err != nil {
		t.Errorf("board not settled: %v\n%s", err, b.Snapshot())
	}
}

func TestCascadePreservesColumnOrder(t *testing.T) {
	b, _ := loadBoard(t, 5,
		"D",
		"E",
		"A",
		"B",
		"A",
		"A",
		"C",
	)
	// Clear y=1, y=2 and y=4 so survivors fall past gaps of different sizes.
	var gaps MatchSet
	for _, y := range []int{1, 2, 4} {
		gaps = append(gaps, cell(t, b, C(0, y)))
	}

	order := []uint64{cell(t, b, C(0, 0)).ID, cell(t, b, C(0, 3)).ID, cell(t, b, C(0, 5)).ID, cell(t, b, C(0, 6)).ID}

	b.clearAndCollapse(gaps)

	var got []uint64
	for y := range 4 {
		got = append(got, cell(t, b, C(0, y)).ID)
	}
	if diff := cmp.Diff(order, got); diff != "" {
		t.Errorf("column order changed (-want +got):\n%s", diff)
	}
	for y := 4; y < 7; y++ {
		if cell(t, b, C(0, y)) != nil {
			t.Errorf("cell (0,%d) should be empty after collapse", y)
		}
	}
}

func TestCascadeSettlesRandomBoards(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b, err := NewBoard(Options{Width: 8, Height: 8, PaletteSize: 5, Seed: seed}, nil)
		if err != nil {
			t.Fatalf("NewBoard() failed: %v", err)
		}
		if err := b.Populate(); err != nil {
			t.Fatalf("Populate() failed: %v", err)
		}

		swaps := 0
		for y := range 8 {
			for x := range 7 {
				result := b.AttemptSwap(C(x, y), C(x+1, y))
				if !result.Accepted {
					continue
				}
				swaps++
				report, err := b.Resolve(result.Matches).Run()
				if err != nil {
					t.Fatalf("seed %d: cascade failed: %v", seed, err)
				}
				if report.Passes < 1 || report.Cleared != report.Spawned {
					t.Errorf("seed %d: inconsistent report %+v", seed, report)
				}
				if err := b.Verify(); err != nil {
					t.Fatalf("seed %d: board not settled after swap %d: %v\n%s", seed, swaps, err, b.Snapshot())
				}
			}
		}
	}
}
