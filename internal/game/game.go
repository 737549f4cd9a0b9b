// Package game is the Breaking Hue shell: it runs the level campaign over
// the world simulation, maps platform input to it, scores the run and draws
// everything into the screen buffer. It holds no IO; persistence and key
// handling live in the platform layer.
package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/levels"
	"github.com/doronn/ggj2026-sub000/internal/world"
)

// Score awards per world event.
const (
	scoreMaskPickup = 5
	scoreGatePhased = 25
	scoreLevelClear = 100
)

// levelClearDelay is how long the cleared overlay shows before the next
// level loads (~1.5 seconds at 60 FPS).
const levelClearDelay = 90

// flashDuration is how long a status flash stays on the HUD.
const flashDuration = 90

// Completion records one finished level for the records table.
type Completion struct {
	LevelID string
	Ticks   uint64
	Score   int
}

// Game drives Breaking Hue: campaign progression, scoring, HUD flashes and
// rendering on top of the pure world simulation. All methods are called from
// the platform's single update loop.
type Game struct {
	catalog *levels.Catalog
	tuning  world.Tuning

	rng   *rand.Rand
	world *world.World
	level levels.Level

	levelNum int // 1-indexed position in the catalog

	screenW int
	screenH int

	score    int
	won      bool
	paused   bool
	tooSmall bool
	failed   string // non-empty when a level could not be built

	clearTicks int // countdown while the cleared overlay shows

	flash      string
	flashColor core.Color
	flashTicks int

	startID string

	completions []Completion
	pendingSave *Snapshot

	// Layout, recomputed on level load and resize.
	hudHeight int
	cellW     int
	offsetX   int
	offsetY   int
}

// New creates a game over the given level catalog and gameplay tuning.
func New(catalog *levels.Catalog, tuning world.Tuning) *Game {
	return &Game{
		catalog:   catalog,
		tuning:    tuning,
		hudHeight: 4,
	}
}

// ID returns the identifier used for records and save slots.
func (g *Game) ID() string {
	return "breakinghue"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Breaking Hue"
}

// StartAt selects the level the next Reset starts from. Unknown IDs fall
// back to the first catalog level. The selection applies once.
func (g *Game) StartAt(levelID string) {
	g.startID = levelID
}

// Reset initializes or restarts the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.score = 0
	g.won = false
	g.paused = false
	g.failed = ""
	g.clearTicks = 0
	g.flash = ""
	g.flashTicks = 0
	g.completions = nil
	g.pendingSave = nil

	start, ok := g.catalog.First()
	if g.startID != "" {
		if lvl, found := g.catalog.ByID(g.startID); found {
			start = lvl
			ok = true
		}
		g.startID = "" // applies once; restart goes back to the campaign start
	}
	if !ok {
		g.failed = "no levels available"
		return
	}
	g.loadLevel(start)
}

// ResumeFrom restores a run persisted at a checkpoint. Call after Reset; the
// screen dimensions and rng from the Reset stay in effect.
func (g *Game) ResumeFrom(snap Snapshot) error {
	lvl, ok := g.catalog.ByID(snap.LevelID)
	if !ok {
		return fmt.Errorf("game: save references unknown level %q", snap.LevelID)
	}
	w, err := world.New(lvl.Def, g.tuning, g.rng.Int63())
	if err != nil {
		return fmt.Errorf("game: rebuilding level %q: %w", snap.LevelID, err)
	}
	w.Restore(snap.World)
	g.install(lvl, w)
	g.score = snap.Score
	g.won = false
	g.failed = ""
	return nil
}

// loadLevel builds the world for a level and makes it current.
func (g *Game) loadLevel(lvl levels.Level) {
	w, err := world.New(lvl.Def, g.tuning, g.rng.Int63())
	if err != nil {
		g.failed = fmt.Sprintf("%s: %v", lvl.ID, err)
		return
	}
	g.install(lvl, w)
}

func (g *Game) install(lvl levels.Level, w *world.World) {
	g.level = lvl
	g.world = w
	g.levelNum = 0
	for i, id := range g.catalog.IDs() {
		if id == lvl.ID {
			g.levelNum = i + 1
			break
		}
	}
	g.clearTicks = 0
	g.calculateLayout()
}

// calculateLayout picks the cell scale and centers the map between the HUD
// and the status lines. Cells render two characters wide when the screen
// affords it, one otherwise.
func (g *Game) calculateLayout() {
	w, h := g.world.Size()
	cols := int(math.Ceil(w))
	rows := int(math.Ceil(h))

	availW := g.screenW - 2
	availH := g.screenH - g.hudHeight - statusHeight

	g.cellW = 2
	if cols*g.cellW > availW {
		g.cellW = 1
	}
	if cols*g.cellW > availW || rows > availH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.offsetX = (g.screenW - cols*g.cellW) / 2
	g.offsetY = g.hudHeight + (availH-rows)/2
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.world != nil {
		g.calculateLayout()
	}
}

// Step advances the game one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) && (g.won || g.failed != "") {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.won || g.paused || g.tooSmall || g.failed != "" || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.flashTicks > 0 {
		g.flashTicks--
	}

	// Cleared overlay holds the world still until the next level loads.
	if g.clearTicks > 0 {
		g.clearTicks--
		if g.clearTicks == 0 {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	res := g.world.Step(input)
	g.consume(res)

	return core.StepResult{State: g.State()}
}

// consume folds one tick's world events into score and HUD flashes.
func (g *Game) consume(res world.StepResult) {
	for _, b := range res.Blocked {
		if b.Entity == world.KindPlayer {
			g.setFlash("Blocked: needs "+b.Required.String(), colorFor(b.Required))
		}
	}
	for _, p := range res.Pickups {
		if p.Entity == world.KindPlayer {
			g.score += scoreMaskPickup
			g.setFlash("Picked up "+p.Color.String(), brightFor(p.Color))
		}
	}
	for range res.FullPickups {
		g.setFlash("Inventory full", core.ColorBrightYellow)
	}
	for _, p := range res.PhaseEnds {
		if p.Entity == world.KindPlayer {
			g.score += scoreGatePhased
			g.setFlash("Phased through "+p.Color.String(), brightFor(p.Color))
		}
	}
	for _, e := range res.Explosions {
		if e.IsPlayer {
			g.setFlash("Boom!", core.ColorBrightRed)
		}
	}
	for range res.Checkpoints {
		g.setFlash("Checkpoint", core.ColorBrightGreen)
		snap := g.Snapshot()
		g.pendingSave = &snap
	}
	for _, r := range res.Respawns {
		g.setFlash(fmt.Sprintf("Respawned (deaths: %d)", r.Deaths), core.ColorBrightRed)
	}

	if res.LevelComplete {
		g.score += scoreLevelClear
		g.completions = append(g.completions, Completion{
			LevelID: g.level.ID,
			Ticks:   g.world.Tick(),
			Score:   g.score,
		})
		g.clearTicks = levelClearDelay
	}
}

// advanceLevel loads the next campaign level, or ends the run after the last
// portal. Masks do not carry over; every level starts from its own spawn.
func (g *Game) advanceLevel() {
	next, ok := g.catalog.Next(g.level.ID)
	if !ok {
		g.won = true
		return
	}
	g.loadLevel(next)
}

func (g *Game) setFlash(msg string, c core.Color) {
	g.flash = msg
	g.flashColor = c
	g.flashTicks = flashDuration
}

// State reports score and flow flags to the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.won || g.failed != "",
		Paused:   g.paused,
	}
}

// Level returns the level currently being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Deaths returns the death count of the current level's run.
func (g *Game) Deaths() int {
	if g.world == nil {
		return 0
	}
	return g.world.Deaths()
}

// TakeCompletions returns the levels finished since the last call and clears
// them. The platform turns these into records.
func (g *Game) TakeCompletions() []Completion {
	done := g.completions
	g.completions = nil
	return done
}

// TakeCheckpointSave returns the snapshot captured at the most recently
// reached checkpoint, once. The platform persists it for play --resume.
func (g *Game) TakeCheckpointSave() (Snapshot, bool) {
	if g.pendingSave == nil {
		return Snapshot{}, false
	}
	snap := *g.pendingSave
	g.pendingSave = nil
	return snap, true
}
