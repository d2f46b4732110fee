package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLeaderboard
	ChoiceSettings
	ChoiceQuit
)

// menuItems lists the menu in display order.
var menuItems = []struct {
	choice MenuChoice
	title  string
}{
	{ChoicePlay, "Play"},
	{ChoiceLeaderboard, "Leaderboard"},
	{ChoiceSettings, "Settings"},
	{ChoiceQuit, "Quit"},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	best      int
	player    string
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model showing the given best score and
// player name.
func NewMenuModel(width, height, best int, player string) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		best:      best,
		player:    player,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		m.selected = ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = menuItems[m.cursor].choice
		m.quitting = m.selected == ChoiceQuit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B A S E   G L I D E"), m.width))
	b.WriteString("\n\n")

	sub := fmt.Sprintf("Best: %d", m.best)
	if m.player != "" {
		sub = fmt.Sprintf("%s  ·  %s", m.player, sub)
	}
	b.WriteString(centerText(subtitleStyle.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.title
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(subtitleStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone while browsing.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
