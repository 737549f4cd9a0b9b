package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/levels"
	"github.com/doronn/ggj2026-sub000/internal/storage"
)

// MenuItem represents a selectable entry in the level menu.
type MenuItem struct {
	LevelID string
	Name    string
	Number  int  // 1-indexed campaign position, 0 for the resume entry
	Resume  bool // restores the latest checkpoint save instead of starting fresh
	Best    int  // best recorded score, meaningful when Runs > 0
	Runs    int  // recorded completions
}

// MenuModel is the Bubble Tea model for the level picker menu.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	scrollOffset int
	width        int
	height       int
	store        *storage.Store
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	quitting     bool
	selected     *MenuItem // Set when user selects an entry
	openRecords  bool      // True if user pressed Tab for the records screen
}

// NewMenuModel creates a new menu model over the level catalog. Records from
// storage annotate each level; a leading resume entry appears when a
// checkpoint save exists.
func NewMenuModel(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, catalog.Len()+1)

	var stats map[string]*storage.LevelStats
	if store != nil {
		// The menu still works without annotations.
		stats, _ = store.AllLevelStats()

		if snap, ok, err := store.LatestCheckpoint(); err == nil && ok {
			if lvl, found := catalog.ByID(snap.LevelID); found {
				items = append(items, MenuItem{
					LevelID: lvl.ID,
					Name:    "Resume checkpoint: " + lvl.Name,
					Resume:  true,
				})
			}
		}
	}

	for i, lvl := range catalog.All() {
		item := MenuItem{
			LevelID: lvl.ID,
			Name:    lvl.Name,
			Number:  i + 1,
		}
		if s, ok := stats[lvl.ID]; ok {
			item.Best = s.BestScore
			item.Runs = s.Runs
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit // Exit menu to show records
	}

	return m, nil
}

// visibleItems returns how many menu entries fit between header and footer.
func (m MenuModel) visibleItems() int {
	visible := m.height - 10
	if visible < 3 {
		visible = 3
	}
	return visible
}

// updateScroll adjusts the scroll offset to keep the cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(m.theme.MenuTitle.Render(centerText("B R E A K I N G   H U E", m.width)))
	b.WriteString("\n\n")

	// Subtitle
	b.WriteString(m.theme.MenuSubtitle.Render(centerText("Select a level", m.width)))
	b.WriteString("\n\n")

	// Level list with scrolling
	visible := m.visibleItems()
	endIdx := m.scrollOffset + visible
	if endIdx > len(m.items) {
		endIdx = len(m.items)
	}

	if m.scrollOffset > 0 {
		b.WriteString(m.theme.MenuItemFaded.Render(centerText("... more above ...", m.width)))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < endIdx; i++ {
		b.WriteString(m.renderItem(i))
		b.WriteString("\n")
	}

	if endIdx < len(m.items) {
		b.WriteString(m.theme.MenuItemFaded.Render(centerText("... more below ...", m.width)))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit"
	b.WriteString(m.theme.Controls.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// renderItem renders one centered menu line with its records annotation.
func (m MenuModel) renderItem(i int) string {
	item := m.items[i]

	cursor := "  "
	style := m.theme.MenuItemNormal
	if i == m.cursor {
		cursor = "> "
		style = m.theme.MenuItemActive
	}

	label := cursor + item.Name
	if !item.Resume {
		label = fmt.Sprintf("%s%2d. %s", cursor, item.Number, item.Name)
	}

	annotation := ""
	if item.Runs > 0 {
		annotation = fmt.Sprintf("  best %d", item.Best)
	}

	padding := (m.width - len(label) - len(annotation)) / 2
	if padding < 0 {
		padding = 0
	}

	return strings.Repeat(" ", padding) + style.Render(label) + m.theme.MenuItemFaded.Render(annotation)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers plain text within given width. Style the result, not
// the input; ANSI escapes inflate the measured length.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID      string
	Resume       bool
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(catalog *levels.Catalog, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(catalog, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsRecords() {
		result.WantsRecords = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.LevelID = m.Selected().LevelID
		result.Resume = m.Selected().Resume
	} else {
		result.Quit = true
	}

	return result, nil
}
