package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/game"
	"github.com/doronn/ggj2026-sub000/internal/storage"
)

// Model is the Bubble Tea model for a local Breaking Hue run.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	resume     *game.Snapshot
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game. A non-nil
// resume snapshot restores that run instead of starting fresh.
func NewModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, resume *game.Snapshot) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		resume:     resume,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.resume != nil {
		// An unusable save leaves the fresh run from the Reset in place.
		//nolint:errcheck
		m.game.ResumeFrom(*m.resume)
	}

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The run keeps going; the game
// re-centers its layout for the new dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Run game simulation; restarts are handled inside the game.
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	persistProgress(m.store, m.game)

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// persistProgress drains finished levels and checkpoint snapshots out of the
// game and writes them to storage. Both writes are best-effort; gameplay
// continues regardless.
func persistProgress(store *storage.Store, g *game.Game) {
	if store == nil {
		g.TakeCompletions()
		g.TakeCheckpointSave()
		return
	}

	for _, c := range g.TakeCompletions() {
		//nolint:errcheck // Best-effort save, game continues regardless
		store.SaveCompletion(c.LevelID, c.Ticks, c.Score, g.Deaths())
		// A finished level's mid-run save is stale now.
		//nolint:errcheck
		store.DeleteCheckpoint(c.LevelID)
	}

	if snap, ok := g.TakeCheckpointSave(); ok {
		//nolint:errcheck // Best-effort save
		store.SaveCheckpoint(snap)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".breakinghue", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, resume *game.Snapshot) error {
	model := NewModel(g, store, cfg, resume)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
