package world

import "github.com/doronn/ggj2026-sub000/internal/core"

// moveWithCollision slides a bounding box by delta, resolving each axis
// independently against the solid volumes. Axis separation keeps entities
// able to slide along a wall they are pressed against.
func moveWithCollision(bounds core.RectF, delta core.Vec2, solids []core.RectF) core.RectF {
	moved := bounds

	moved.X += delta.X
	for _, s := range solids {
		if !moved.Intersects(s) {
			continue
		}
		if delta.X > 0 {
			moved.X = s.X - moved.W
		} else if delta.X < 0 {
			moved.X = s.Right()
		}
	}

	moved.Y += delta.Y
	for _, s := range solids {
		if !moved.Intersects(s) {
			continue
		}
		if delta.Y > 0 {
			moved.Y = s.Y - moved.H
		} else if delta.Y < 0 {
			moved.Y = s.Bottom()
		}
	}

	return moved
}

// clampToArea keeps a bounding box inside the playable area.
func clampToArea(bounds core.RectF, w, h float64) core.RectF {
	bounds.X = core.ClampF(bounds.X, 0, w-bounds.W)
	bounds.Y = core.ClampF(bounds.Y, 0, h-bounds.H)
	return bounds
}
