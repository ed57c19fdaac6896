package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/philo/internal/registry"
	"github.com/vovakirdan/philo/internal/storage"
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the reaction stats screen.
type StatsModel struct {
	rows      []table.Row
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	renderer  *lipgloss.Renderer
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewStatsModel creates a stats screen over the journal. The store may be nil.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	var stats map[string]*storage.ReactionStats
	if store != nil {
		stats, _ = store.AllStats()
	}

	h := help.New()
	h.Width = width

	m := StatsModel{
		rows:   StatsRows(registry.List(), stats),
		help:   h,
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// WithRenderer sets the lipgloss renderer used for styling.
func (m StatsModel) WithRenderer(r *lipgloss.Renderer) StatsModel {
	m.renderer = r
	m.table = m.createTable()
	return m
}

// StatsRows builds one table row per game, in registry order.
// Games without journal entries get dashes.
func StatsRows(games []registry.GameInfo, stats map[string]*storage.ReactionStats) []table.Row {
	rows := make([]table.Row, 0, len(games))
	for _, g := range games {
		st, ok := stats[g.ID]
		if !ok || st == nil {
			rows = append(rows, table.Row{g.Title, "0", "0", "0", "-", "-"})
			continue
		}

		avg, last := "-", "-"
		if st.Hits > 0 {
			avg = fmt.Sprintf("%.0fms", st.AvgReactionMS)
		}
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{
			g.Title,
			fmt.Sprintf("%d", st.Hits),
			fmt.Sprintf("%d", st.EarlyTaps),
			fmt.Sprintf("%d", st.Timeouts),
			avg,
			last,
		})
	}
	return rows
}

func (m StatsModel) style() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// createTable creates the table sized to the current window.
func (m StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 22},
		{Title: "Hits", Width: 6},
		{Title: "Early", Width: 6},
		{Title: "Timeout", Width: 8},
		{Title: "Avg", Width: 8},
		{Title: "Last played", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows),
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

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.style().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("REACTION JOURNAL"), m.width))
	b.WriteString("\n\n")

	tableStyle := m.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := m.table.View()
	if len(m.rows) == 0 {
		content = m.style().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4).
			Render("No games registered.")
	}
	b.WriteString(tableStyle.Render(content))
	b.WriteString("\n")

	b.WriteString(m.style().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
