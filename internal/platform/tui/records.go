package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doronn/ggj2026-sub000/internal/levels"
	"github.com/doronn/ggj2026-sub000/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 24  // Width of level list sidebar
	maxRecords         = 100 // Max completions to load per level
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev level"),
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

// RecordsModel is the Bubble Tea model for the level records screen.
type RecordsModel struct {
	levels      []levels.Level // Campaign levels in order
	levelCursor int            // Currently selected level index
	store       *storage.Store
	entries     []storage.CompletionEntry
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show level list sidebar
}

// NewRecordsModel creates a new records model.
func NewRecordsModel(catalog *levels.Catalog, store *storage.Store, width, height int) RecordsModel {
	keys := DefaultRecordsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		levels:      catalog.All(),
		levelCursor: 0,
		store:       store,
		keys:        keys,
		help:        h,
		theme:       GetTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	// Load records for first level
	if len(m.levels) > 0 {
		m.loadRecords(m.levels[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Deaths", Width: 7},
		{Title: "Date", Width: 14},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give the date column the slack if we have more space
	if tableWidth > 50 {
		columns[4].Width = tableWidth - 35
		if columns[4].Width > 18 {
			columns[4].Width = 18
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.PanelBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRecords loads completions for the given level ID.
func (m *RecordsModel) loadRecords(levelID string) {
	if m.store == nil {
		m.entries = nil
		m.updateTableRows()
		return
	}

	entries, err := m.store.TopCompletions(levelID, maxRecords)
	if err != nil {
		m.entries = nil
	} else {
		m.entries = entries
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current records.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%d", e.Deaths),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.Right):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + 1) % len(m.levels)
				m.loadRecords(m.levels[m.levelCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel), key.Matches(msg, m.keys.Left):
			if len(m.levels) > 0 {
				m.levelCursor--
				if m.levelCursor < 0 {
					m.levelCursor = len(m.levels) - 1
				}
				m.loadRecords(m.levels[m.levelCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	title := "LEVEL RECORDS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("LEVEL RECORDS - %s", m.levels[m.levelCursor].Name)
	}

	b.WriteString(m.theme.RecordsTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: level tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(m.theme.RecordsHelp.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the records with a sidebar for level selection.
func (m RecordsModel) renderWideLayout() string {
	// Sidebar (level list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.PanelBorder).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, lvl := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(m.theme.SelectedFg)
		}

		name := lvl.Name
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.PanelBorder).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the records with level tabs above the table.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	// Level tabs (horizontal)
	tabStyle := lipgloss.NewStyle().
		Foreground(m.theme.PanelBorder)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Padding(0, 1)

	tabs := make([]string, len(m.levels))
	for i, lvl := range m.levels {
		shortName := lvl.Name
		if len(shortName) > 10 {
			shortName = shortName[:9] + "."
		}
		if i == m.levelCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	// Wrap tabs if needed
	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 {
		// Just show current level with arrows
		current := m.levels[m.levelCursor].Name
		tabLine = fmt.Sprintf("< %s >", current)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.PanelBorder).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	if len(m.entries) == 0 {
		return m.theme.RecordsEmpty.Render("No completions recorded yet.\nClear this level to set the first record!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRecords(catalog *levels.Catalog, store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRecordsModel(catalog, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
