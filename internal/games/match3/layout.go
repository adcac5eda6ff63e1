package match3

import (
	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
)

const (
	cellWidth = 2 // Glyph plus a gap
	hudHeight = 2
)

// layout maps board cells to screen positions. The board is drawn
// centered below the HUD with Y=0 as the bottom row.
type layout struct {
	frame  platformcore.Rect // Including the border
	width  int
	height int
}

// newLayout centers a width x height board on the screen. The bool is
// true when the screen is too small to show it.
func newLayout(screenW, screenH, width, height int) (layout, bool) {
	frameW := width*cellWidth + 3
	frameH := height + 2
	area := platformcore.NewRect(0, hudHeight, screenW, screenH-hudHeight)

	l := layout{
		frame:  area.Centered(frameW, frameH),
		width:  width,
		height: height,
	}
	tooSmall := screenW < frameW || screenH < frameH+hudHeight
	return l, tooSmall
}

// interior is the area inside the border.
func (l layout) interior() platformcore.Rect {
	return platformcore.NewRect(l.frame.X+1, l.frame.Y+1, l.frame.W-2, l.frame.H-2)
}

// cellOrigin returns the screen position of a cell's glyph. Cells above
// the board (where new pieces enter) map above the interior.
func (l layout) cellOrigin(c core.Coord) (int, int) {
	in := l.interior()
	return in.X + 1 + c.X*cellWidth, in.Y + (l.height - 1 - c.Y)
}

// cellAt returns the board cell under a screen position.
func (l layout) cellAt(x, y int) (core.Coord, bool) {
	in := l.interior()
	if !in.Contains(x, y) {
		return core.Coord{}, false
	}
	cx := (x - in.X) / cellWidth
	if cx >= l.width {
		return core.Coord{}, false
	}
	return core.C(cx, l.height-1-(y-in.Y)), true
}
