package match3

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/match3/internal/config"
	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// pieceStyle is a resolved config.PieceStyle.
type pieceStyle struct {
	name  string
	glyph rune
	color platformcore.Color
}

// buildStyles resolves the palette. Config validation already checked the
// glyphs and colors, so failures fall back to '?' and the default color.
func buildStyles(palette []config.PieceStyle) []pieceStyle {
	styles := make([]pieceStyle, len(palette))
	for i, p := range palette {
		r, _ := utf8.DecodeRuneInString(p.Glyph)
		if r == utf8.RuneError {
			r = '?'
		}
		c, _ := platformcore.ParseColor(p.Color)
		styles[i] = pieceStyle{name: p.Name, glyph: r, color: c}
	}
	return styles
}

func (g *Game) style(t core.PieceType) pieceStyle {
	if int(t) >= 0 && int(t) < len(g.styles) {
		return g.styles[t]
	}
	return pieceStyle{name: "unknown", glyph: '?', color: platformcore.ColorDefault}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.layout.frame, platformcore.ColorGray)

	if g.board != nil {
		g.renderHighlights(dst)
		g.renderSprites(dst)
	}

	switch {
	case g.failed != nil:
		g.renderMessage(dst, "BOARD STUCK", "Press R for a new board")
	case g.paused:
		g.renderMessage(dst, "PAUSED", "Press P to resume")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderHUD draws the title and session info above the board.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextCentered(0, g.title, platformcore.ColorBrightYellow)

	info := fmt.Sprintf("Moves: %d  Types: %d  Seed: %d", g.moves, g.cfg.Board.PaletteSize, g.seed)
	dst.DrawText(g.layout.frame.X, 1, info)

	status, color := g.status()
	if status != "" {
		x := max(g.layout.frame.Right()-utf8.RuneCountInString(status), g.layout.frame.X)
		dst.DrawTextColored(x, 1, status, color)
	}
}

// status returns the right-hand HUD text.
func (g *Game) status() (string, platformcore.Color) {
	switch {
	case g.failed != nil:
		return "stuck", platformcore.ColorBrightRed
	case g.ctrl != nil && g.ctrl.State() == core.StateLocked:
		return "resolving", platformcore.ColorYellow
	case g.lastMove != nil && !g.lastMove.Accepted:
		return "no match", platformcore.ColorGray
	case g.lastMove != nil:
		return fmt.Sprintf("+%d", g.lastMove.Report.Cleared), platformcore.ColorBrightGreen
	}
	return "", platformcore.ColorDefault
}

// renderHighlights brackets the cursor and the picked-up piece.
func (g *Game) renderHighlights(dst *platformcore.Screen) {
	bracket := func(c core.Coord, color platformcore.Color) {
		x, y := g.layout.cellOrigin(c)
		dst.SetColored(x-1, y, '[', color)
		dst.SetColored(x+1, y, ']', color)
	}

	bracket(g.cursor, platformcore.ColorWhite)
	if g.ctrl == nil {
		return
	}
	if origin, ok := g.ctrl.Origin(); ok {
		bracket(origin, platformcore.ColorBrightYellow)
	}
	if target, ok := g.ctrl.Target(); ok {
		bracket(target, platformcore.ColorYellow)
	}
}

// renderSprites draws every animated piece at its interpolated position.
// Pieces still above the board are clipped.
func (g *Game) renderSprites(dst *platformcore.Screen) {
	in := g.layout.interior()
	for _, s := range g.anim.Sprites() {
		fx, fy := g.layout.cellOrigin(s.From)
		tx, ty := g.layout.cellOrigin(s.To)
		t := easeOutQuad(s.T)
		x, y := platformcore.Lerp(fx, tx, t), platformcore.Lerp(fy, ty, t)
		if !in.Contains(x, y) {
			continue
		}

		st := g.style(s.Type)
		glyph := st.glyph
		if s.Removing {
			glyph = '*'
		}
		dst.SetColored(x, y, glyph, st.color)
	}
}

// renderMessage draws a two-line message over the middle of the board.
func (g *Game) renderMessage(dst *platformcore.Screen, title, hint string) {
	in := g.layout.interior()
	y := in.Y + in.H/2
	dst.DrawTextCentered(y, " "+title+" ", platformcore.ColorBrightRed)
	dst.DrawTextCentered(y+1, " "+hint+" ", platformcore.ColorWhite)
	if g.failed != nil && y+3 < g.screenH {
		dst.DrawTextCentered(g.screenH-1, g.failed.Error(), platformcore.ColorGray)
	}
}
