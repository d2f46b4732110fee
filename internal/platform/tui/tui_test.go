package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/glide"
	"github.com/vovakirdan/baseglide/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testGameOptions() GameOptions {
	return GameOptions{
		Config: config.DefaultGlideConfig(),
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: 60,
			Seed:     42,
		},
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{" ", core.ActionFlap, false},
		{"w", core.ActionFlap, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"b", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v %v, expected %v %v", tc.key, action, quit, tc.action, tc.quit)
		}
	}

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if km.MapMouse(click) != core.ActionFlap {
		t.Error("left click should flap")
	}
}

// advance feeds frames of the live chain until the round leaves Running.
func advance(m GameModel, frames int) GameModel {
	now := time.Now()
	for i := 0; i < frames && m.round.Driver().State() == glide.StateRunning; i++ {
		now = now.Add(time.Second / 60)
		next, _ := m.Update(FrameMsg{Token: m.round.Driver().Token(), Time: now})
		m = next.(GameModel)
	}
	return m
}

func TestGameModelLifecycle(t *testing.T) {
	m := NewGameModel(testGameOptions())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should schedule the first frame")
	}
	if m.round.Driver().State() != glide.StateRunning {
		t.Fatalf("state after Init = %v", m.round.Driver().State())
	}

	pausedTok := m.round.Driver().Token()
	next, _ := m.Update(keyMsg("p"))
	m = next.(GameModel)
	if m.round.Driver().State() != glide.StatePaused {
		t.Fatalf("state after pause = %v", m.round.Driver().State())
	}

	// A frame scheduled before the pause is ignored and ends the chain
	_, cmd := m.Update(FrameMsg{Token: pausedTok, Time: time.Now()})
	if cmd != nil {
		t.Error("stale frame should not schedule another")
	}

	next, cmd = m.Update(keyMsg("p"))
	m = next.(GameModel)
	if m.round.Driver().State() != glide.StateRunning || cmd == nil {
		t.Fatalf("resume: state %v cmd %v", m.round.Driver().State(), cmd)
	}

	m = advance(m, 5000)
	if m.round.Driver().State() != glide.StateEnded {
		t.Fatalf("round never ended, state %v", m.round.Driver().State())
	}
	if view := m.View(); view == "" {
		t.Error("game over view is empty")
	}

	next, cmd = m.Update(keyMsg("r"))
	m = next.(GameModel)
	if m.round.Driver().State() != glide.StateRunning || cmd == nil {
		t.Errorf("retry: state %v", m.round.Driver().State())
	}

	next, _ = m.Update(keyMsg("b"))
	if next.(GameModel).BackToMenu() {
		t.Error("back should be ignored while running")
	}
}

func TestGameModelRecordsRound(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testGameOptions()
	opts.Store = store
	opts.Player = "ada"

	m := NewGameModel(opts)
	m.Init()
	m = advance(m, 5000)

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "ada" {
		t.Errorf("expected one recorded round for ada, got %v", scores)
	}
	if m.round.Last().RoundID == "" {
		t.Error("round result was not kept for the HUD")
	}
}

func TestGameModelResizeKeepsRound(t *testing.T) {
	m := NewGameModel(testGameOptions())
	m.Init()
	m = advance(m, 10)
	before := m.round.Driver().Snapshot()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(GameModel)

	after := m.round.Driver().Snapshot()
	if m.round.Driver().State() != glide.StateRunning {
		t.Errorf("resize changed state to %v", m.round.Driver().State())
	}
	if after.Player != before.Player {
		t.Error("resize moved the player")
	}
	if m.renderer.Screen().Width() != 100 || m.renderer.Screen().Height() != 30-hudRows {
		t.Errorf("screen is %dx%d", m.renderer.Screen().Width(), m.renderer.Screen().Height())
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(80, 24, 12, "ada")

	next, _ := m.Update(keyMsg("down"))
	next, _ = next.Update(keyMsg("enter"))
	if got := next.(MenuModel).Selected(); got != ChoiceLeaderboard {
		t.Errorf("Selected() = %v, expected leaderboard", got)
	}

	next, _ = NewMenuModel(80, 24, 0, "").Update(keyMsg("q"))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSettingsModel(t *testing.T) {
	m := NewSettingsModel(storage.Settings{PlayerName: "ada", SoundEnabled: true}, 80)

	var model tea.Model = m
	for _, r := range "bo" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(keyMsg("tab"))
	model, _ = model.Update(keyMsg(" "))
	model, _ = model.Update(keyMsg("enter")) // Toggles again on the sound row
	model, _ = model.Update(keyMsg(" "))
	model, _ = model.Update(keyMsg("tab"))
	model, _ = model.Update(keyMsg("enter"))

	s := model.(SettingsModel)
	if !s.Saved() {
		t.Fatal("enter on save should confirm")
	}
	got := s.Result()
	if got.PlayerName != "adabo" || got.SoundEnabled {
		t.Errorf("Result() = %+v", got)
	}
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := SessionOptions{
		Config:   config.DefaultGlideConfig(),
		Runtime:  testGameOptions().Runtime,
		Store:    store,
		Settings: storage.DefaultSettings(),
		Persist:  true,
	}

	var model tea.Model = NewSessionModel(opts)

	// Settings: type a name and save
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("enter"))
	if model.(SessionModel).current != screenSettings {
		t.Fatalf("expected settings screen, got %v", model.(SessionModel).current)
	}
	for _, r := range "ada" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(keyMsg("enter"))

	s := model.(SessionModel)
	if s.current != screenMenu || s.opts.Settings.PlayerName != "ada" {
		t.Fatalf("after save: screen %v settings %+v", s.current, s.opts.Settings)
	}
	if saved, _ := store.LoadSettings(); saved.PlayerName != "ada" {
		t.Errorf("settings not persisted: %+v", saved)
	}

	// Play
	model, _ = model.Update(keyMsg("enter"))
	if model.(SessionModel).current != screenGame {
		t.Fatalf("expected game screen")
	}
	oldTok := model.(SessionModel).game.round.Driver().Token()
	model, _ = model.Update(keyMsg("p"))
	model, _ = model.Update(keyMsg("b"))
	if model.(SessionModel).current != screenMenu {
		t.Error("b while paused should return to the menu")
	}

	// A tick still in flight from the abandoned game must not drive the new one
	model, _ = model.Update(keyMsg("enter"))
	if model.(SessionModel).current != screenGame {
		t.Fatalf("expected game screen on replay")
	}
	model, cmd := model.Update(FrameMsg{Token: oldTok, Time: time.Now()})
	if cmd != nil {
		t.Error("frame from the abandoned game started a second frame chain")
	}
	model, _ = model.Update(keyMsg("p"))
	model, _ = model.Update(keyMsg("b"))

	// Quit
	_, cmd = model.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q in the menu should quit the program")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorGreen)
	s.DrawTextColor(2, 0, "cd", core.ColorDefault)
	s.DrawTextColor(0, 1, "xyz", core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("row %d width = %d, expected 6", i, w)
		}
	}
	for _, text := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, text) {
			t.Errorf("output is missing %q", text)
		}
	}
}

func TestGameViewLeavesFrameUntouched(t *testing.T) {
	m := NewGameModel(testGameOptions())
	m.Init()
	next, _ := m.Update(keyMsg("p"))
	m = next.(GameModel)

	screen := m.renderer.Screen()
	before := screen.Clone()
	view := m.View()
	m.View()

	if !strings.Contains(view, "P A U S E D") {
		t.Error("paused view should show the banner")
	}
	for y := range screen.Height() {
		for x := range screen.Width() {
			if screen.GetCell(x, y) != before.GetCell(x, y) {
				t.Fatalf("View changed the rendered frame at (%d, %d)", x, y)
			}
		}
	}
}
