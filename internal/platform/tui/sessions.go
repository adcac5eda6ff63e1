package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

const maxSessions = 200

// SessionLister is the part of the journal the browser reads.
type SessionLister interface {
	RecentSessions(limit int) ([]storage.SessionEntry, error)
}

// SessionsKeyMap defines the key bindings for the session browser.
type SessionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Select, k.Back}
}

// FullHelp returns bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Filter, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns the default browser bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
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

// SessionsModel browses journaled sessions and picks one to replay.
type SessionsModel struct {
	filters  []string // "" for all variants, then registered IDs
	filter   int
	all      []storage.SessionEntry
	shown    []storage.SessionEntry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     SessionsKeyMap
	width    int
	height   int
	chosen   int64
	quitting bool
}

// NewSessionsModel loads the latest sessions from the journal.
func NewSessionsModel(src SessionLister, width, height int) SessionsModel {
	filters := []string{""}
	for _, g := range registry.List() {
		filters = append(filters, g.ID)
	}

	m := SessionsModel{
		filters: filters,
		help:    help.New(),
		keys:    DefaultSessionsKeyMap(),
		width:   width,
		height:  height,
	}
	m.all, m.loadErr = src.RecentSessions(maxSessions)
	m.table = m.createTable()
	m.applyFilter()
	return m
}

// createTable creates the session table sized to the window.
func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 16},
		{Title: "Seed", Width: 20},
		{Title: "Board", Width: 7},
		{Title: "Types", Width: 5},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Header, help and margins
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

// applyFilter shows the sessions of the selected variant.
func (m *SessionsModel) applyFilter() {
	gameID := m.filters[m.filter]
	m.shown = m.shown[:0]
	for _, e := range m.all {
		if gameID == "" || e.GameID == gameID {
			m.shown = append(m.shown, e)
		}
	}

	rows := make([]table.Row, len(m.shown))
	for i, e := range m.shown {
		rows[i] = table.Row{
			strconv.FormatInt(e.ID, 10),
			e.GameID,
			strconv.FormatInt(e.Seed, 10),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			strconv.Itoa(e.PaletteSize),
			strconv.Itoa(e.Moves),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if len(m.shown) > 0 {
				m.chosen = m.shown[m.table.Cursor()].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.applyFilter()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m SessionsModel) View() string {
	if m.quitting || m.chosen != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	variant := "all variants"
	if id := m.filters[m.filter]; id != "" {
		variant = id
	}
	b.WriteString(centerText(titleStyle.Render("SESSIONS - "+variant), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		b.WriteString(boxStyle.Render("Cannot read the journal:\n" + m.loadErr.Error()))
	case len(m.shown) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No sessions journaled yet.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Chosen returns the session picked for replay, or 0.
func (m SessionsModel) Chosen() int64 {
	return m.chosen
}

// RunSessions runs the session browser and returns the chosen session ID,
// or 0 if the user left without choosing.
func RunSessions(src SessionLister, width, height int) (int64, error) {
	p := tea.NewProgram(NewSessionsModel(src, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}
	m, ok := finalModel.(SessionsModel)
	if !ok {
		return 0, nil
	}
	return m.Chosen(), nil
}
