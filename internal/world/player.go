package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/mask"
)

// Player is the one player-controlled entity. Movement intent comes from the
// input frame each tick; the inventory is owned exclusively by the player
// for its whole lifetime.
type Player struct {
	Pos       core.Vec2
	Size      float64
	Speed     float64
	Inventory *mask.Inventory
}

// playerID keys the player's phase sessions and trigger tracking. There is
// exactly one player, so a fixed id is enough.
const playerID = "player"

// Bounds returns the player's collision box centered on its position.
func (p *Player) Bounds() core.RectF {
	return core.RectFAround(p.Pos, p.Size, p.Size)
}

// Ref builds the entity reference gates and barrels hold for the player.
func (p *Player) Ref() EntityRef {
	return EntityRef{
		ID:    playerID,
		Kind:  KindPlayer,
		Cap:   p.Inventory,
		Slots: p.Inventory,
	}
}

// move applies one tick of directional input against the given solids.
func (p *Player) move(dir core.Vec2, solids []core.RectF, areaW, areaH float64) {
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	delta := dir.Normalized().Scale(p.Speed)
	bounds := moveWithCollision(p.Bounds(), delta, solids)
	bounds = clampToArea(bounds, areaW, areaH)
	p.Pos = bounds.Center()
}
