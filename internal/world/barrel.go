package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

// HazardBarrel is a colored explosive. It has no pass-through concept: it
// blocks like a wall, and an entity whose combined active color covers the
// barrel color detonates it on trigger contact. A barrel fires exactly once;
// after that it is inert and gone from the world.
type HazardBarrel struct {
	ID     string
	Bounds core.RectF
	Color  hue.Color

	inflate  float64
	exploded bool
	inside   map[string]bool
}

// NewHazardBarrel places a barrel over its solid volume with the given
// trigger skin margin.
func NewHazardBarrel(id string, bounds core.RectF, color hue.Color, inflate float64) *HazardBarrel {
	return &HazardBarrel{
		ID:      id,
		Bounds:  bounds,
		Color:   color,
		inflate: inflate,
		inside:  make(map[string]bool),
	}
}

// Trigger returns the detection volume around the barrel.
func (b *HazardBarrel) Trigger() core.RectF {
	return b.Bounds.Inflate(b.inflate, b.inflate)
}

// Exploded reports whether the barrel has already fired.
func (b *HazardBarrel) Exploded() bool { return b.exploded }

// Observe processes one entity's overlap with the trigger volume this tick
// and returns true when the entity detonates the barrel. Detonation requires
// a fresh trigger entry by an entity whose combined active color contains
// the barrel color; anything else, including repeat contact after the first
// detonation, is a no-op. The world owns the consequences.
func (b *HazardBarrel) Observe(ref EntityRef, bounds core.RectF) bool {
	if b.exploded {
		return false
	}
	overlapping := bounds.Intersects(b.Trigger())
	was := b.inside[ref.ID]
	if overlapping == was {
		return false
	}
	b.inside[ref.ID] = overlapping
	if !overlapping {
		return false
	}
	if !hue.Contains(ref.Cap.GetCombinedActiveColor(), b.Color) {
		// Blocked like a wall, no event.
		return false
	}
	b.exploded = true
	return true
}

// EntityDestroyed forgets trigger tracking for a removed entity.
func (b *HazardBarrel) EntityDestroyed(id string) {
	delete(b.inside, id)
}

// Reset restores the barrel to a snapshot state and clears trigger memory.
func (b *HazardBarrel) Reset(exploded bool) {
	b.exploded = exploded
	b.inside = make(map[string]bool)
}
