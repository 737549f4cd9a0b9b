package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

// BlockedEvent fires on the tick an entity bumps into a barrier it cannot
// pass. Fired once per trigger entry, not per overlapping tick.
type BlockedEvent struct {
	GateID   string
	Entity   EntityKind
	Required hue.Color
}

// PhaseEvent fires when a gate opens a phase session (entity authorized and
// entering) and again when the session closes on exit.
type PhaseEvent struct {
	GateID string
	Entity EntityKind
	Color  hue.Color
}

// PickupEvent fires when a mask leaves the world into an inventory.
type PickupEvent struct {
	PickupID string
	Entity   EntityKind
	Color    hue.Color
}

// InventoryFullEvent fires once when the player walks onto a pickup with no
// free slot. The pickup stays where it is.
type InventoryFullEvent struct {
	PickupID string
	Color    hue.Color
}

// DropEvent fires when a mask enters the world: a player drop, a bot's
// pickup residue, or a destroyed bot shedding its masks.
type DropEvent struct {
	Entity   EntityKind
	Color    hue.Color
	Position core.Vec2
}

// ExplosionEvent fires when a hazard barrel detonates. IsPlayer selects the
// consumer: the checkpoint respawn path or the bot destruction path.
type ExplosionEvent struct {
	BarrelID string
	Color    hue.Color
	IsPlayer bool
}

// BotDestroyedEvent fires when a bot dies; the bot entity lingers for a few
// ticks for the visual layer before despawning.
type BotDestroyedEvent struct {
	BotID string
}

// CheckpointEvent fires the first time the player reaches a checkpoint.
type CheckpointEvent struct {
	CheckpointID string
}

// RespawnEvent fires after the player exploded and the last checkpoint
// snapshot was restored.
type RespawnEvent struct {
	Deaths int
}

// StepResult carries everything one simulation tick produced. The game shell
// turns these into HUD flashes, scoring and persistence calls; tests assert
// on them directly.
type StepResult struct {
	Blocked     []BlockedEvent
	PhaseStarts []PhaseEvent
	PhaseEnds   []PhaseEvent
	Pickups     []PickupEvent
	FullPickups []InventoryFullEvent
	Drops       []DropEvent
	Explosions  []ExplosionEvent
	BotDeaths   []BotDestroyedEvent
	Checkpoints []CheckpointEvent
	Respawns    []RespawnEvent

	// LevelComplete is set on the tick the player reaches the portal.
	LevelComplete bool
}
