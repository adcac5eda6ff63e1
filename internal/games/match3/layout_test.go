package match3

import (
	"testing"

	"github.com/vovakirdan/match3/internal/games/match3/core"
)

func TestLayoutRoundTrip(t *testing.T) {
	l, tooSmall := newLayout(80, 24, 8, 8)
	if tooSmall {
		t.Fatalf("8x8 should fit 80x24")
	}

	for y := range 8 {
		for x := range 8 {
			c := core.C(x, y)
			sx, sy := l.cellOrigin(c)
			got, ok := l.cellAt(sx, sy)
			if !ok || got != c {
				t.Errorf("cellAt(cellOrigin(%v)) = %v, %v", c, got, ok)
			}
			// The gap left of a glyph belongs to the same cell.
			if got, ok := l.cellAt(sx-1, sy); !ok || got != c {
				t.Errorf("gap after %v maps to %v, %v", c, got, ok)
			}
		}
	}
}

func TestLayoutOrientation(t *testing.T) {
	l, _ := newLayout(80, 24, 4, 3)

	_, bottom := l.cellOrigin(core.C(0, 0))
	_, top := l.cellOrigin(core.C(0, 2))
	if bottom <= top {
		t.Errorf("row 0 should be drawn below row 2, got y=%d and y=%d", bottom, top)
	}

	// Spawn rows sit above the interior.
	_, above := l.cellOrigin(core.C(0, 3))
	if l.interior().Contains(l.interior().X+1, above) {
		t.Errorf("row above the board should be outside the interior")
	}
	if l.frame.Y < hudHeight {
		t.Errorf("frame overlaps the HUD")
	}
}

func TestLayoutCellAtOutside(t *testing.T) {
	l, _ := newLayout(80, 24, 4, 4)

	tests := []struct {
		name string
		x, y int
	}{
		{"origin", 0, 0},
		{"on border", l.frame.X, l.frame.Y + 1},
		{"right of board", l.frame.Right() + 1, l.frame.Y + 2},
		{"below board", l.frame.X + 2, l.frame.Bottom() + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c, ok := l.cellAt(tt.x, tt.y); ok {
				t.Errorf("cellAt(%d, %d) = %v, expected none", tt.x, tt.y, c)
			}
		})
	}
}

func TestLayoutTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{19, 12, false},
		{18, 12, true},
		{19, 11, true},
	}
	for _, tt := range tests {
		if _, got := newLayout(tt.w, tt.h, 8, 8); got != tt.want {
			t.Errorf("newLayout(%d, %d) tooSmall = %v, expected %v", tt.w, tt.h, got, tt.want)
		}
	}
}
