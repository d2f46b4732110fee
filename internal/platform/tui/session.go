package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/baseglide/internal/audio"
	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/notify"
	"github.com/vovakirdan/baseglide/internal/storage"
)

// screenID is the screen a session is showing.
type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenScores
	screenSettings
)

// SessionOptions configures a menu-driven session.
type SessionOptions struct {
	Config   config.GlideConfig
	Runtime  core.RuntimeConfig
	Store    *storage.Store      // nil runs without persistence
	Sound    *audio.SoundManager // nil runs silently
	Settings storage.Settings    // Initial player settings
	Persist  bool                // Save edited settings to Store
}

// SessionModel manages the full flow: menu -> game/scores/settings -> menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	current  screenID
	menu     MenuModel
	game     GameModel
	scores   ScoreboardModel
	settings SettingsModel
	best     int
	quitting bool
}

// NewSessionModel creates a session showing the main menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	m := SessionModel{opts: opts}
	if opts.Store != nil {
		if best, err := opts.Store.HighScore(); err == nil {
			m.best = best
		}
	}
	if opts.Sound != nil {
		opts.Sound.SetEnabled(opts.Settings.SoundEnabled)
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.best, m.opts.Settings.PlayerName)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.game = NewGameModel(m.gameOptions())
		m.current = screenGame
		return m, m.game.Init()

	case ChoiceLeaderboard:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()

	case ChoiceSettings:
		m.settings = NewSettingsModel(m.opts.Settings, m.opts.Runtime.ScreenW)
		m.current = screenSettings
		return m, m.settings.Init()
	}

	return m, cmd
}

// gameOptions builds the options for a new round from the session.
func (m SessionModel) gameOptions() GameOptions {
	opts := GameOptions{
		Config:  m.opts.Config,
		Runtime: m.opts.Runtime,
		Store:   m.opts.Store,
		Player:  m.opts.Settings.PlayerName,
	}
	if m.opts.Sound != nil {
		opts.Sound = notify.Sink(m.opts.Sound)
	}
	return opts
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}
	m.best = max(m.best, m.game.Best())

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when showing the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateSettings handles updates when editing settings.
func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	if settings, ok := next.(SettingsModel); ok {
		m.settings = settings
	}

	switch {
	case m.settings.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.settings.Saved():
		m.applySettings(m.settings.Result())
		return m.toMenu()

	case m.settings.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// applySettings adopts edited settings, persisting them when configured to.
// A failed save keeps the new values for this session only.
func (m *SessionModel) applySettings(s storage.Settings) {
	m.opts.Settings = s
	if m.opts.Sound != nil {
		m.opts.Sound.SetEnabled(s.SoundEnabled)
	}
	if m.opts.Persist && m.opts.Store != nil {
		//nolint:errcheck // Best-effort save, session continues regardless
		m.opts.Store.SaveSettings(s)
	}
}

// toMenu returns to a fresh main menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// RunSession starts a local menu-driven session.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
