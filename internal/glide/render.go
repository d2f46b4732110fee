package glide

import (
	"math"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
)

// Glyphs used by the terminal render stage.
const (
	glyphGrid     = '·'
	glyphBody     = '█'
	glyphWick     = '│'
	glyphRising   = '▲'
	glyphLevel    = '◆'
	glyphDiving   = '▼'
	risingBelow   = -10.0 // Rotation under which the player reads as rising
	divingAbove   = 20.0  // Rotation over which the player reads as diving
	playerColor   = core.ColorBrightBlue
	bullishColor  = core.ColorGreen
	bearishColor  = core.ColorRed
	gridLineColor = core.ColorGray
)

// ScreenRenderer draws world snapshots onto a character screen.
// World units are mapped to cells by the configured cell size.
type ScreenRenderer struct {
	cfg    config.RenderConfig
	screen *core.Screen
}

// NewScreenRenderer creates a renderer that draws into screen.
func NewScreenRenderer(cfg config.RenderConfig, screen *core.Screen) *ScreenRenderer {
	return &ScreenRenderer{cfg: cfg, screen: screen}
}

// Screen returns the target buffer.
func (r *ScreenRenderer) Screen() *core.Screen {
	return r.screen
}

// SurfaceSize returns the world size covered by a screen of cols x rows cells.
func SurfaceSize(cfg config.RenderConfig, cols, rows int) (width, height float64) {
	return float64(cols) * cfg.CellWidth, float64(rows) * cfg.CellHeight
}

// Render clears the screen and draws the grid, obstacles and player.
func (r *ScreenRenderer) Render(w World) {
	r.screen.Clear()
	r.drawGrid()
	for _, o := range w.Obstacles {
		r.drawObstacle(o)
	}
	r.drawPlayer(w.Player)
}

func (r *ScreenRenderer) col(x float64) int {
	return int(math.Floor(x / r.cfg.CellWidth))
}

func (r *ScreenRenderer) row(y float64) int {
	return int(math.Floor(y / r.cfg.CellHeight))
}

// drawGrid puts a dot at every grid intersection.
func (r *ScreenRenderer) drawGrid() {
	if r.cfg.GridSpacing <= 0 {
		return
	}
	width, height := SurfaceSize(r.cfg, r.screen.Width(), r.screen.Height())
	for y := 0.0; y < height; y += r.cfg.GridSpacing {
		for x := 0.0; x < width; x += r.cfg.GridSpacing {
			r.screen.SetColor(r.col(x), r.row(y), glyphGrid, gridLineColor)
		}
	}
}

// drawObstacle fills every cell of the column whose center lies outside the
// gap and marks the gap edges with a wick in the middle column.
func (r *ScreenRenderer) drawObstacle(o Obstacle) {
	color := bearishColor
	if o.Bullish {
		color = bullishColor
	}

	left := r.col(o.X)
	right := max(r.col(o.Right()), left+1)
	gapTop := r.row(o.GapY)
	gapBottom := r.row(o.GapY + o.GapSize)

	for y := 0; y < r.screen.Height(); y++ {
		center := (float64(y) + 0.5) * r.cfg.CellHeight
		if center >= o.GapY && center <= o.GapY+o.GapSize {
			continue
		}
		r.screen.DrawHLine(left, y, right-left, glyphBody, color)
	}

	mid := left + (right-left)/2
	r.screen.SetColor(mid, gapTop, glyphWick, color)
	if gapBottom != gapTop {
		r.screen.SetColor(mid, gapBottom, glyphWick, color)
	}
}

func (r *ScreenRenderer) drawPlayer(p Player) {
	r.screen.SetColor(r.col(p.X), r.row(p.Y), playerGlyph(p.Rotation), playerColor)
}

// playerGlyph picks a glyph showing which way the player is heading.
func playerGlyph(rotation float64) rune {
	switch {
	case rotation < risingBelow:
		return glyphRising
	case rotation > divingAbove:
		return glyphDiving
	default:
		return glyphLevel
	}
}
