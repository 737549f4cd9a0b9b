package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

// MaskPickup is a collectible mask lying in the world, either placed by the
// level or dropped back out of an inventory. Dropped masks carry a short
// cooldown so the dropper does not instantly reabsorb them.
type MaskPickup struct {
	ID      string
	Pos     core.Vec2
	Color   hue.Color
	Size    float64
	Dropped bool

	cooldown     int
	collected    bool
	playerInside bool
}

// Bounds returns the pickup's trigger box centered on its position.
func (p *MaskPickup) Bounds() core.RectF {
	return core.RectFAround(p.Pos, p.Size, p.Size)
}

// Collected reports whether the pickup has left the world.
func (p *MaskPickup) Collected() bool { return p.collected }

// Collectible reports whether the pickup can currently be absorbed.
func (p *MaskPickup) Collectible() bool { return !p.collected && p.cooldown <= 0 }

// Checkpoint is a zone that saves the world state the first time the player
// touches it. Respawns restore the most recently activated checkpoint.
type Checkpoint struct {
	ID        string
	Area      core.RectF
	activated bool
}

// Activated reports whether the checkpoint has been reached.
func (c *Checkpoint) Activated() bool { return c.activated }

// Portal is the level exit zone.
type Portal struct {
	Area core.RectF
}
