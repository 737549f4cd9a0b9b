package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

// Tuning holds the gameplay pacing knobs. Speeds are world units per tick,
// durations are ticks. The config layer loads overrides from yaml; the
// defaults here are what the built-in campaign is balanced for.
type Tuning struct {
	PlayerSpeed       float64
	PlayerSize        float64
	BotSpeed          float64
	BotSize           float64
	ContactThreshold  float64
	TriggerInflation  float64
	PhaseRamp         float64
	PickupSize        float64
	DropCooldownTicks int
	DropJitter        float64
	BotDespawnTicks   int
}

// DefaultTuning returns the tuning the built-in levels are balanced for,
// assuming 60 ticks per second.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed:       0.25,
		PlayerSize:        0.9,
		BotSpeed:          0.12,
		BotSize:           0.9,
		ContactThreshold:  1.5,
		TriggerInflation:  0.2,
		PhaseRamp:         0.08,
		PickupSize:        0.8,
		DropCooldownTicks: 45,
		DropJitter:        0.35,
		BotDespawnTicks:   30,
	}
}

// GateDef places one barrier gate.
type GateDef struct {
	ID    string
	Rect  core.RectF
	Color hue.Color
}

// BarrelDef places one hazard barrel.
type BarrelDef struct {
	ID    string
	Rect  core.RectF
	Color hue.Color
}

// PickupDef places one collectible mask.
type PickupDef struct {
	ID    string
	Pos   core.Vec2
	Color hue.Color
}

// BotDef places one patrol bot. Speed zero means the tuning default; a
// non-None home color is stocked at spawn and regenerates after barriers of
// covering hue consume it.
type BotDef struct {
	ID         string
	Waypoints  []core.Vec2
	Mode       PathMode
	Speed      float64
	DwellTicks int
	HomeColor  hue.Color
}

// CheckpointDef places one respawn checkpoint.
type CheckpointDef struct {
	ID   string
	Rect core.RectF
}

// Def is the fully-typed description a world is built from. The levels
// package produces one from a parsed level file.
type Def struct {
	Width, Height float64
	PlayerSpawn   core.Vec2
	Walls         []core.RectF
	Gates         []GateDef
	Barrels       []BarrelDef
	Pickups       []PickupDef
	Bots          []BotDef
	Checkpoints   []CheckpointDef
	Portal        core.RectF
}
