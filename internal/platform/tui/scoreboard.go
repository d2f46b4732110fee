package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/baseglide/internal/storage"
)

const maxScores = 100 // Max rows to load per tab

// scoreTab selects which listing the scoreboard shows.
type scoreTab int

const (
	tabLeaderboard scoreTab = iota
	tabRounds
)

func (t scoreTab) title() string {
	if t == tabRounds {
		return "Top Rounds"
	}
	return "Leaderboard"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch list"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the leaderboard and the best recorded rounds.
type ScoreboardModel struct {
	store     *storage.Store
	tab       scoreTab
	rows      []table.Row
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	loadErr   error
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table whose columns fit the current tab and width.
func (m *ScoreboardModel) createTable() table.Model {
	whenTitle := "Updated"
	if m.tab == tabRounds {
		whenTitle = "Played"
	}

	whoWidth := 16
	if avail := m.width - 4 - 6 - 10 - 16 - 8; avail > whoWidth {
		whoWidth = min(avail, 24)
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: whoWidth},
		{Title: "Score", Width: 10},
		{Title: whenTitle, Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fills the table from storage for the current tab.
func (m *ScoreboardModel) load() {
	m.rows = nil
	m.loadErr = nil
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	switch m.tab {
	case tabLeaderboard:
		entries, err := m.store.Leaderboard(maxScores)
		m.loadErr = err
		for i, e := range entries {
			m.rows = append(m.rows, table.Row{
				"#" + humanize.Comma(int64(i+1)),
				e.Player,
				humanize.Comma(int64(e.Score)),
				humanize.Time(e.UpdatedAt),
			})
		}
	case tabRounds:
		entries, err := m.store.TopScores(maxScores)
		m.loadErr = err
		for i, e := range entries {
			who := e.Player
			if who == "" {
				who = "-"
			}
			m.rows = append(m.rows, table.Row{
				"#" + humanize.Comma(int64(i+1)),
				who,
				humanize.Comma(int64(e.Score)),
				humanize.Time(e.CreatedAt),
			})
		}
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.table = m.createTable()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the tab strip with the active tab highlighted.
func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []scoreTab{tabLeaderboard, tabRounds} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.title()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores are unavailable without a database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.rows) == 0 && m.tab == tabLeaderboard:
		return emptyStyle.Render("Nobody is on the board yet.\nSet a name in Settings and play a round!")
	case len(m.rows) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a round to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
