package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/baseglide/internal/storage"
)

const maxNameLength = 24

// settingsField is the focused row of the settings form.
type settingsField int

const (
	fieldName settingsField = iota
	fieldSound
	fieldSave
	fieldCount
)

// SettingsModel edits the player name and the sound toggle.
type SettingsModel struct {
	name     textinput.Model
	sound    bool
	focus    settingsField
	width    int
	saved    bool
	back     bool
	quitting bool
}

// NewSettingsModel creates a form prefilled with the current settings.
func NewSettingsModel(current storage.Settings, width int) SettingsModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength
	ti.SetValue(current.PlayerName)
	ti.Focus()

	return SettingsModel{
		name:  ti,
		sound: current.SoundEnabled,
		width: width,
	}
}

// Init starts the cursor blink.
func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the settings form.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, nil
		case "esc":
			m.back = true
			return m, nil
		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus == fieldSound {
				m.sound = !m.sound
				return m, nil
			}
			m.saved = true
			return m, nil
		case " ":
			if m.focus == fieldSound {
				m.sound = !m.sound
				return m, nil
			}
		}
	}

	if m.focus != fieldName {
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// setFocus moves the focus and toggles the text cursor accordingly.
func (m SettingsModel) setFocus(f settingsField) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == fieldName {
		return m, m.name.Focus()
	}
	m.name.Blur()
	return m, nil
}

// View renders the form.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	label := lipgloss.NewStyle().Width(14)
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	row := func(f settingsField, title, value string) string {
		cursor := "  "
		if m.focus == f {
			cursor = active.Render("> ")
			title = active.Render(title)
		}
		return cursor + label.Render(title) + value
	}

	sound := "[ ] off"
	if m.sound {
		sound = "[x] on"
	}
	save := "Save"
	if m.focus == fieldSave {
		save = active.Render("[ Save ]")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(row(fieldName, "Player name", m.name.View()))
	b.WriteString("\n")
	b.WriteString(dim.Render("                Shown on the leaderboard; leave empty to stay off it."))
	b.WriteString("\n\n")
	b.WriteString(row(fieldSound, "Sound", sound))
	b.WriteString("\n\n")
	b.WriteString("  " + save)
	b.WriteString("\n\n")
	b.WriteString(dim.Render("  tab: next field  ·  space: toggle  ·  enter: save  ·  esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the edited settings.
func (m SettingsModel) Result() storage.Settings {
	return storage.Settings{
		PlayerName:   strings.TrimSpace(m.name.Value()),
		SoundEnabled: m.sound,
	}
}

// Saved returns true once the user confirmed the form.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// IsGoingBack returns true if the user cancelled.
func (m SettingsModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
