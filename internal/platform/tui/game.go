package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/glide"
	"github.com/vovakirdan/baseglide/internal/notify"
	"github.com/vovakirdan/baseglide/internal/round"
	"github.com/vovakirdan/baseglide/internal/storage"
)

// hudRows is the number of terminal rows reserved below the playfield.
const hudRows = 2

var (
	hudStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	newBestStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// GameOptions carries everything a round needs from its surroundings.
type GameOptions struct {
	Config  config.GlideConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil runs without persistence
	Sound   notify.Sink    // nil runs silently
	Player  string         // Leaderboard name; empty skips submission
}

// GameModel runs rounds of the glider inside Bubble Tea.
type GameModel struct {
	opts      GameOptions
	round     *round.Round
	renderer  *glide.ScreenRenderer
	keyMapper *KeyMapper
	keys      gameKeys
	help      help.Model
	quitting  bool
	back      bool
}

// NewGameModel creates an idle game sized to the runtime screen.
func NewGameModel(opts GameOptions) GameModel {
	cols, rows := opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-hudRows, 1)
	screen := core.NewScreen(cols, rows)
	renderer := glide.NewScreenRenderer(opts.Config.Render, screen)

	width, height := glide.SurfaceSize(opts.Config.Render, cols, rows)
	r := round.New(round.Options{
		Config:   opts.Config,
		Width:    width,
		Height:   height,
		Seed:     opts.Runtime.Seed,
		Store:    opts.Store,
		Sound:    opts.Sound,
		Player:   opts.Player,
		Renderer: renderer,
	})

	renderer.Render(r.Driver().Snapshot())
	return GameModel{
		opts:      opts,
		round:     r,
		renderer:  renderer,
		keyMapper: NewKeyMapper(),
		keys:      defaultGameKeys(),
		help:      help.New(),
	}
}

// Init starts the first round.
func (m GameModel) Init() tea.Cmd {
	return frameCmd(m.round.Start(time.Now()), m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, quit := m.keyMapper.MapKey(msg)
		if quit {
			m.quitting = true
			m.round.Driver().Reset()
			return m, tea.Quit
		}
		return m.handleAction(action)

	case tea.MouseMsg:
		return m.handleAction(m.keyMapper.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleAction hands an action to the round and schedules a frame chain
// when one starts.
func (m GameModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	res := m.round.Handle(action, time.Now())
	if res.Left {
		m.back = true
	}
	if res.Schedule {
		return m, frameCmd(res.Token, m.opts.Runtime.TickRate)
	}
	return m, nil
}

// handleResize fits the playfield to the terminal. Entities keep their
// positions; only the surface bounds change.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height

	cols, rows := msg.Width, max(msg.Height-hudRows, 1)
	driver := m.round.Driver()
	m.renderer.Screen().Resize(cols, rows)
	driver.Resize(glide.SurfaceSize(m.opts.Config.Render, cols, rows))
	m.help.Width = msg.Width

	if driver.State() != glide.StateEnded {
		m.renderer.Render(driver.Snapshot())
	}
	return m, nil
}

// handleFrame runs one driver frame and keeps the chain alive while it
// renders.
func (m GameModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if m.round.Frame(msg.Token, msg.Time) == glide.FrameRendered {
		return m, frameCmd(msg.Token, m.opts.Runtime.TickRate)
	}
	return m, nil
}

// View renders the playfield with the HUD below it.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Banners go on a copy so the rendered frame stays as the driver left it
	driver := m.round.Driver()
	screen := m.renderer.Screen().Clone()
	switch driver.State() {
	case glide.StateRunning:
		if driver.Score() == 0 {
			drawBanner(screen, screen.Height()*2/3, core.ColorBrightWhite, "Tap SPACE to flap")
		}
	case glide.StatePaused:
		drawBanner(screen, screen.Height()/2-1, core.ColorBrightYellow,
			"P A U S E D",
			"P to resume  ·  B for menu")
	case glide.StateEnded:
		lines := []string{
			"G A M E   O V E R",
			fmt.Sprintf("Score %d", driver.Score()),
			"R to retry  ·  B for menu",
		}
		drawBanner(screen, screen.Height()/2-1, core.ColorBrightRed, lines...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, RenderScreen(screen), m.hud())
}

// hud renders the score line and the key help.
func (m GameModel) hud() string {
	driver := m.round.Driver()
	line := hudStyle.Render(fmt.Sprintf(" Score: %d   Best: %d", driver.Score(), m.round.Best()))
	if driver.State() == glide.StateEnded && m.round.Last().NewBest {
		line += newBestStyle.Render("   NEW BEST!")
	}
	if m.round.StoreErr() != nil {
		line += hudDimStyle.Render("   (scores not saved)")
	}
	return line + "\n" + hudDimStyle.Render(" "+m.help.View(m.keys))
}

// drawBanner writes centered lines starting at row y, padded with a blank
// margin so they stay legible over the playfield.
func drawBanner(s *core.Screen, y int, c core.Color, lines ...string) {
	for i, line := range lines {
		padded := "  " + line + "  "
		x := (s.Width() - len([]rune(padded))) / 2
		s.DrawTextColor(x, y+i, padded, c)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.back
}

// Best returns the best score known to this model.
func (m GameModel) Best() int {
	return m.round.Best()
}

// RunGame starts a standalone Bubble Tea program for one game session.
func RunGame(opts GameOptions) error {
	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
