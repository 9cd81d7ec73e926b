package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/storage"
)

// Scene browser layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of the stats sidebar
)

// ScenesKeyMap defines the key bindings for the saved scene browser.
type ScenesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScenesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScenesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultScenesKeyMap returns default key bindings.
func DefaultScenesKeyMap() ScenesKeyMap {
	return ScenesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
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

// ScenesModel is the Bubble Tea model for browsing saved scenes.
type ScenesModel struct {
	store       *storage.Store
	scenes      []storage.SceneInfo
	stats       storage.Stats
	err         error
	table       table.Model
	help        help.Model
	keys        ScenesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool   // True if user pressed back (not quit)
	opened      string // Name of the scene chosen with Enter
	showSidebar bool   // Whether to show the stats sidebar
}

// NewScenesModel creates a new scene browser.
func NewScenesModel(store *storage.Store, width, height int) ScenesModel {
	h := help.New()
	h.ShowAll = false

	m := ScenesModel{
		store:       store,
		keys:        DefaultScenesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *ScenesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Preset", Width: 18},
		{Title: "Size", Width: 9},
		{Title: "Particles", Width: 10},
		{Title: "Saved", Width: 12},
	}

	tableWidth := m.width - 6 // Borders and margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	if extra := tableWidth - 65 - 2*len(columns); extra > 0 {
		columns[0].Width += extra
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(atLeastOne(m.height-8)), // Leave room for header, help, and margins
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

// atLeastOne keeps a table height positive.
func atLeastOne(h int) int {
	if h < 1 {
		return 1
	}
	return h
}

// reload reads the scene list and totals from the store.
func (m *ScenesModel) reload() {
	m.scenes, m.err = nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	m.scenes, m.err = m.store.ListScenes()
	if m.err == nil {
		m.stats, m.err = m.store.Stats()
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded scenes.
func (m *ScenesModel) updateTableRows() {
	rows := make([]table.Row, len(m.scenes))
	for i, s := range m.scenes {
		rows[i] = table.Row{
			s.Name,
			s.Preset,
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			fmt.Sprintf("%d", s.Particles),
			s.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// Init initializes the scene browser.
func (m ScenesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scene browser.
func (m ScenesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Open):
			if row := m.table.SelectedRow(); row != nil {
				m.opened = row[0]
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if row := m.table.SelectedRow(); row != nil && m.store != nil {
				m.err = m.store.DeleteScene(row[0])
				if m.err == nil {
					m.reload()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scene browser.
func (m ScenesModel) View() string {
	if m.quitting || m.goingBack || m.opened != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SAVED SCENES", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content))
	} else {
		b.WriteString(centerText(content, m.width))
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the store totals for the sidebar.
func (m ScenesModel) renderStats() string {
	var sb strings.Builder
	sb.WriteString("Store\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Scenes:    %d\n", m.stats.Scenes)
	fmt.Fprintf(&sb, "Particles: %d\n", m.stats.TotalParticles)
	if !m.stats.LastSaved.IsZero() {
		fmt.Fprintf(&sb, "Last save: %s", m.stats.LastSaved.Format("Jan 02 15:04"))
	}
	return sb.String()
}

// renderTableContent renders the table or empty message.
func (m ScenesModel) renderTableContent() string {
	if len(m.scenes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.store == nil {
			return emptyStyle.Render("No scene store is configured.")
		}
		return emptyStyle.Render("No saved scenes yet.\nPress s in a sandbox to quicksave.")
	}

	return m.table.View()
}

// Opened returns the scene chosen with Enter, or "".
func (m ScenesModel) Opened() string {
	return m.opened
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScenesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScenesModel) IsQuitting() bool {
	return m.quitting
}

// ScenesResult holds the result of running the scene browser.
type ScenesResult struct {
	Scene string // Scene to open; empty when going back or quitting
	Back  bool
}

// RunScenes runs the saved scene browser.
func RunScenes(store *storage.Store, width, height int) (ScenesResult, error) {
	model := NewScenesModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return ScenesResult{}, fmt.Errorf("scenes: %w", err)
	}

	m, ok := finalModel.(ScenesModel)
	if !ok {
		return ScenesResult{}, nil
	}
	return ScenesResult{Scene: m.Opened(), Back: m.IsGoingBack()}, nil
}
