// Package window hosts the glider in a desktop window using Ebitengine.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/glide"
	"github.com/vovakirdan/baseglide/internal/notify"
	"github.com/vovakirdan/baseglide/internal/round"
	"github.com/vovakirdan/baseglide/internal/storage"
)

const (
	wickLength  = 14
	wickWidth   = 2
	stripHeight = 4
)

var (
	skyTop      = color.RGBA{0x0b, 0x10, 0x20, 0xff}
	skyBottom   = color.RGBA{0x1d, 0x26, 0x3f, 0xff}
	gridColor   = color.RGBA{0xff, 0xff, 0xff, 0x14}
	bullColor   = core.ColorGreen.RGB()
	bearColor   = core.ColorRed.RGB()
	playerColor = core.ColorBrightBlue.RGB()
)

// Options configures the window host.
type Options struct {
	Config config.GlideConfig
	Seed   int64          // 0 derives a seed from the clock
	Store  *storage.Store // nil runs without persistence
	Sound  notify.Sink    // nil runs silently
	Player string
	Ticks  int         // Updates per second; 0 uses physics.reference_fps
	Logger *log.Logger // nil uses the default logger
}

// Game implements ebiten.Game around a glider round.
type Game struct {
	cfg    config.GlideConfig
	round  *round.Round
	logger *log.Logger
	world  glide.World
	input  core.InputFrame
	width  int
	height int
	player *ebiten.Image
}

// NewGame creates an idle game sized to the configured window.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		cfg:    opts.Config,
		logger: logger,
		width:  opts.Config.Window.Width,
		height: opts.Config.Window.Height,
		input:  core.NewInputFrame(),
	}
	g.round = round.New(round.Options{
		Config:   opts.Config,
		Width:    float64(g.width),
		Height:   float64(g.height),
		Seed:     opts.Seed,
		Store:    opts.Store,
		Sound:    opts.Sound,
		Player:   opts.Player,
		Renderer: glide.RendererFunc(func(w glide.World) { g.world = w }),
	})
	g.world = g.round.Driver().Snapshot()
	return g
}

// sampleInput replaces the input frame with this tick's key, mouse and
// touch presses.
func sampleInput(in *core.InputFrame) {
	in.Clear()

	if justPressed(ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		in.Set(core.ActionFlap)
	}
	if justPressed(ebiten.KeyP, ebiten.KeyEscape) {
		in.Set(core.ActionPause)
	}
	if justPressed(ebiten.KeyR, ebiten.KeyEnter) {
		in.Set(core.ActionRestart)
	}
	if justPressed(ebiten.KeyB) {
		in.Set(core.ActionBack)
	}
	if justPressed(ebiten.KeyQ) {
		in.Set(core.ActionQuit)
	}
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Update applies input and advances the round by one frame.
func (g *Game) Update() error {
	sampleInput(&g.input)
	in := g.input
	if in.Has(core.ActionQuit) {
		return ebiten.Termination
	}

	now := time.Now()
	for _, action := range []core.Action{core.ActionPause, core.ActionRestart, core.ActionBack, core.ActionFlap} {
		if in.Has(action) {
			g.round.Handle(action, now)
		}
	}

	driver := g.round.Driver()
	switch driver.State() {
	case glide.StateRunning:
		if g.round.Frame(driver.Token(), now) == glide.FrameEnded {
			g.logger.Info("round over", "score", driver.Score(), "best", g.round.Best())
		}
	case glide.StateIdle, glide.StatePaused:
		g.world = driver.Snapshot()
	}
	return nil
}

// Layout reports the window size as the logical screen and resizes the
// playfield when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.round.Driver().Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Draw paints the last rendered world and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.drawSky(screen)
	g.drawGrid(screen)
	for _, o := range g.world.Obstacles {
		g.drawCandle(screen, o)
	}
	g.drawPlayer(screen)
	g.drawHUD(screen)
}

func (g *Game) drawSky(screen *ebiten.Image) {
	h := float32(g.height)
	for y := float32(0); y < h; y += stripHeight {
		t := float64(y / h)
		vector.DrawFilledRect(screen, 0, y, float32(g.width), stripHeight, lerp(skyTop, skyBottom, t), false)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	step := g.cfg.Render.GridSpacing
	if step <= 0 {
		return
	}
	w, h := float32(g.width), float32(g.height)
	for x := 0.0; x < float64(g.width); x += step {
		vector.StrokeLine(screen, float32(x), 0, float32(x), h, 1, gridColor, false)
	}
	for y := 0.0; y < float64(g.height); y += step {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, gridColor, false)
	}
}

// drawCandle paints an obstacle as two candle bodies with wicks reaching
// into the gap.
func (g *Game) drawCandle(screen *ebiten.Image, o glide.Obstacle) {
	c := bearColor
	if o.Bullish {
		c = bullColor
	}

	x, w := float32(o.X), float32(o.Width)
	gapTop, gapBottom := float32(o.GapY), float32(o.GapY+o.GapSize)
	vector.DrawFilledRect(screen, x, 0, w, gapTop, c, false)
	vector.DrawFilledRect(screen, x, gapBottom, w, float32(g.height)-gapBottom, c, false)

	mid := x + w/2
	vector.StrokeLine(screen, mid, gapTop, mid, gapTop+wickLength, wickWidth, c, false)
	vector.StrokeLine(screen, mid, gapBottom-wickLength, mid, gapBottom, wickWidth, c, false)
}

// drawPlayer paints the glider as a square rotated by its banking angle.
func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.world.Player
	size := int(math.Ceil(p.Radius * 2))
	if size <= 0 {
		return
	}
	if g.player == nil || g.player.Bounds().Dx() != size {
		g.player = ebiten.NewImage(size, size)
		g.player.Fill(playerColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(size)/2, -float64(size)/2)
	op.GeoM.Rotate(p.Rotation * math.Pi / 180)
	op.GeoM.Translate(p.X, p.Y)
	screen.DrawImage(g.player, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	driver := g.round.Driver()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   Best: %d", driver.Score(), g.round.Best()), 10, 10)
	if g.round.StoreErr() != nil {
		ebitenutil.DebugPrintAt(screen, "(scores not saved)", 10, 26)
	}

	var lines []string
	switch driver.State() {
	case glide.StateIdle:
		lines = []string{"Click or press SPACE to start"}
	case glide.StatePaused:
		lines = []string{"PAUSED", "P to resume   B to reset"}
	case glide.StateEnded:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", driver.Score()), "R to retry"}
		if g.round.Last().NewBest {
			lines = append(lines, "NEW BEST!")
		}
	}

	y := g.height/2 - len(lines)*8
	for i, line := range lines {
		// The debug font is 6 pixels wide and 16 pixels tall.
		ebitenutil.DebugPrintAt(screen, line, (g.width-len(line)*6)/2, y+i*16)
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(opts Options) error {
	g := NewGame(opts)

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(opts.Config.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ticks := opts.Ticks
	if ticks <= 0 {
		ticks = opts.Config.Physics.ReferenceFPS
	}
	ebiten.SetTPS(ticks)

	g.logger.Info("opening window", "width", g.width, "height", g.height, "tps", ticks)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
