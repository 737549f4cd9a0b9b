package world

import (
	"fmt"
	"math/rand"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
	"github.com/doronn/ggj2026-sub000/internal/mask"
)

// World is the complete simulation for one level. It owns every entity and
// advances them one tick at a time; it never blocks, spawns goroutines or
// touches IO.
type World struct {
	tuning Tuning
	rng    *rand.Rand

	width  float64
	height float64

	player    *Player
	playerRef EntityRef

	walls       []core.RectF
	gates       []*BarrierGate
	barrels     []*HazardBarrel
	pickups     []*MaskPickup
	bots        []*BotAgent
	checkpoints []*Checkpoint
	portal      Portal

	tick    uint64
	deaths  int
	dropSeq int

	checkpointSnap Snapshot
}

// New builds and validates a world from its definition. Wiring errors, a
// colorless barrel, a bot with too few waypoints, a misplaced spawn, fail
// loudly here instead of degrading at runtime.
func New(def Def, tuning Tuning, seed int64) (*World, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("world: area %gx%g is not positive", def.Width, def.Height)
	}
	area := core.NewRectF(0, 0, def.Width, def.Height)
	if !area.ContainsPoint(def.PlayerSpawn) {
		return nil, fmt.Errorf("world: player spawn %v outside area", def.PlayerSpawn)
	}
	if def.Portal.W <= 0 || def.Portal.H <= 0 {
		return nil, fmt.Errorf("world: portal volume is empty")
	}

	w := &World{
		tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),
		width:  def.Width,
		height: def.Height,
		walls:  def.Walls,
		portal: Portal{Area: def.Portal},
	}

	w.player = &Player{
		Pos:       def.PlayerSpawn,
		Size:      tuning.PlayerSize,
		Speed:     tuning.PlayerSpeed,
		Inventory: mask.NewInventory(),
	}
	w.playerRef = w.player.Ref()

	ids := map[string]bool{playerID: true}
	claim := func(id, what string) error {
		if id == "" {
			return fmt.Errorf("world: %s with empty id", what)
		}
		if ids[id] {
			return fmt.Errorf("world: duplicate id %q", id)
		}
		ids[id] = true
		return nil
	}

	for _, gd := range def.Gates {
		if err := claim(gd.ID, "gate"); err != nil {
			return nil, err
		}
		if gd.Rect.W <= 0 || gd.Rect.H <= 0 {
			return nil, fmt.Errorf("world: gate %q has empty volume", gd.ID)
		}
		w.gates = append(w.gates, NewBarrierGate(gd.ID, gd.Rect, gd.Color, tuning.TriggerInflation, tuning.PhaseRamp))
	}

	for _, bd := range def.Barrels {
		if err := claim(bd.ID, "barrel"); err != nil {
			return nil, err
		}
		if bd.Color == hue.None {
			return nil, fmt.Errorf("world: barrel %q has no color", bd.ID)
		}
		w.barrels = append(w.barrels, NewHazardBarrel(bd.ID, bd.Rect, bd.Color, tuning.TriggerInflation))
	}

	for _, pd := range def.Pickups {
		if err := claim(pd.ID, "pickup"); err != nil {
			return nil, err
		}
		if pd.Color == hue.None {
			return nil, fmt.Errorf("world: pickup %q has no color", pd.ID)
		}
		w.pickups = append(w.pickups, &MaskPickup{
			ID:    pd.ID,
			Pos:   pd.Pos,
			Color: pd.Color,
			Size:  tuning.PickupSize,
		})
	}

	for _, bd := range def.Bots {
		if err := claim(bd.ID, "bot"); err != nil {
			return nil, err
		}
		need := 1
		if bd.Mode == PathLoop || bd.Mode == PathPingPong {
			need = 2
		}
		if len(bd.Waypoints) < need {
			return nil, fmt.Errorf("world: bot %q needs at least %d waypoints for %v paths", bd.ID, need, bd.Mode)
		}
		speed := bd.Speed
		if speed <= 0 {
			speed = tuning.BotSpeed
		}
		bot := NewBotAgent(bd.ID, bd.Waypoints, bd.Mode, speed, tuning.BotSize, bd.DwellTicks)
		if bd.HomeColor != hue.None {
			bot.Inventory.SetInitialColor(bd.HomeColor)
		}
		w.bots = append(w.bots, bot)
	}

	for _, cd := range def.Checkpoints {
		if err := claim(cd.ID, "checkpoint"); err != nil {
			return nil, err
		}
		w.checkpoints = append(w.checkpoints, &Checkpoint{ID: cd.ID, Area: cd.Rect})
	}

	// The level start doubles as the initial respawn point.
	w.checkpointSnap = w.Snapshot()
	return w, nil
}

// Size returns the playable area in world units.
func (w *World) Size() (float64, float64) { return w.width, w.height }

// Player returns the player entity.
func (w *World) Player() *Player { return w.player }

// Bots returns the bot agents, dead or alive.
func (w *World) Bots() []*BotAgent { return w.bots }

// Gates returns the barrier gates.
func (w *World) Gates() []*BarrierGate { return w.gates }

// Barrels returns the hazard barrels, including exploded ones.
func (w *World) Barrels() []*HazardBarrel { return w.barrels }

// Pickups returns the world masks, including collected ones.
func (w *World) Pickups() []*MaskPickup { return w.pickups }

// Checkpoints returns the respawn checkpoints.
func (w *World) Checkpoints() []*Checkpoint { return w.checkpoints }

// PortalArea returns the level exit volume.
func (w *World) PortalArea() core.RectF { return w.portal.Area }

// Walls returns the static wall volumes.
func (w *World) Walls() []core.RectF { return w.walls }

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 { return w.tick }

// Deaths returns how many times the player has exploded.
func (w *World) Deaths() int { return w.deaths }

// Step advances the simulation one tick: inventory commands, movement,
// pickups, gates, barrels, checkpoints, portal, in that order. Trigger
// callbacks for a given gate run in entity order (player first, then bots in
// definition order), which pins down event ordering for replays.
func (w *World) Step(input core.InputFrame) StepResult {
	res := StepResult{}
	w.tick++

	w.handleInventoryInput(input, &res)

	solids := w.currentSolids()
	w.movePlayer(input, solids)
	for _, bot := range w.bots {
		bot.Update(w.player, w.tuning.ContactThreshold, solids, w.width, w.height)
	}

	w.updatePickups(&res)
	w.updateGates(&res)
	w.updateBarrels(&res)
	w.updateCheckpoints(&res)

	if w.portal.Area.Intersects(w.player.Bounds()) {
		res.LevelComplete = true
	}

	return res
}

// handleInventoryInput applies the discrete mask commands for this tick.
func (w *World) handleInventoryInput(input core.InputFrame, res *StepResult) {
	inv := w.player.Inventory
	for _, a := range []core.Action{core.ActionToggleSlot1, core.ActionToggleSlot2, core.ActionToggleSlot3} {
		if input.Has(a) {
			inv.ToggleMask(a.ToggleSlot())
		}
	}
	if input.Has(core.ActionDeactivateAll) {
		inv.DeactivateAll()
	}
	if input.Has(core.ActionDropMask) {
		indices := inv.GetActiveSlotIndices()
		if len(indices) > 0 {
			if c := inv.DropMask(indices[0]); c != hue.None {
				w.spawnDrop(c, w.player.Pos, KindPlayer, res)
			}
		}
	}
}

// currentSolids gathers every volume that blocks movement this tick.
func (w *World) currentSolids() []core.RectF {
	solids := make([]core.RectF, 0, len(w.walls)+len(w.gates)+len(w.barrels))
	solids = append(solids, w.walls...)
	for _, g := range w.gates {
		if g.SolidEnabled() {
			solids = append(solids, g.Solid)
		}
	}
	for _, b := range w.barrels {
		if !b.Exploded() {
			solids = append(solids, b.Bounds)
		}
	}
	return solids
}

func (w *World) movePlayer(input core.InputFrame, solids []core.RectF) {
	var dir core.Vec2
	if input.Has(core.ActionMoveLeft) {
		dir.X--
	}
	if input.Has(core.ActionMoveRight) {
		dir.X++
	}
	if input.Has(core.ActionMoveUp) {
		dir.Y--
	}
	if input.Has(core.ActionMoveDown) {
		dir.Y++
	}
	w.player.move(dir, solids, w.width, w.height)
}

func (w *World) updatePickups(res *StepResult) {
	for _, p := range w.pickups {
		if p.collected {
			continue
		}
		if p.cooldown > 0 {
			p.cooldown--
		}

		overlap := p.Bounds().Intersects(w.player.Bounds())
		if overlap && !p.playerInside && p.Collectible() {
			if w.player.Inventory.TryAddMask(p.Color) {
				p.collected = true
				res.Pickups = append(res.Pickups, PickupEvent{PickupID: p.ID, Entity: KindPlayer, Color: p.Color})
			} else {
				// Full inventory: the pickup stays in the world.
				res.FullPickups = append(res.FullPickups, InventoryFullEvent{PickupID: p.ID, Color: p.Color})
			}
		}
		p.playerInside = overlap
		if p.collected {
			continue
		}

		for _, bot := range w.bots {
			if !bot.Alive() || !p.Collectible() {
				continue
			}
			if !p.Bounds().Intersects(bot.Bounds()) {
				continue
			}
			if bot.Inventory.AlreadyHasAllColors(p.Color) {
				// Nothing to gain; the bot walks through.
				continue
			}
			residue := bot.Inventory.TryPickupMask(p.Color)
			if residue == p.Color {
				// Nothing absorbed (no free slot); the bot keeps walking.
				continue
			}
			p.collected = true
			res.Pickups = append(res.Pickups, PickupEvent{PickupID: p.ID, Entity: KindBot, Color: p.Color})
			if residue != hue.None {
				w.spawnDrop(residue, p.Pos, KindBot, res)
			}
			break
		}
	}
}

func (w *World) updateGates(res *StepResult) {
	for _, g := range w.gates {
		g.Observe(w.playerRef, w.player.Bounds(), res)
		for _, bot := range w.bots {
			if !bot.Alive() {
				continue
			}
			g.Observe(bot.Ref(), bot.Bounds(), res)
		}
		g.Advance()
	}
}

func (w *World) updateBarrels(res *StepResult) {
	for _, b := range w.barrels {
		if b.Exploded() {
			continue
		}
		if b.Observe(w.playerRef, w.player.Bounds()) {
			res.Explosions = append(res.Explosions, ExplosionEvent{BarrelID: b.ID, Color: b.Color, IsPlayer: true})
			w.respawnPlayer(res)
			continue
		}
		for _, bot := range w.bots {
			if !bot.Alive() {
				continue
			}
			if b.Observe(bot.Ref(), bot.Bounds()) {
				res.Explosions = append(res.Explosions, ExplosionEvent{BarrelID: b.ID, Color: b.Color, IsPlayer: false})
				w.explodeBot(bot, b.Color, res)
				break
			}
		}
	}
}

func (w *World) updateCheckpoints(res *StepResult) {
	for _, c := range w.checkpoints {
		if c.activated {
			continue
		}
		if !c.Area.Intersects(w.player.Bounds()) {
			continue
		}
		c.activated = true
		w.checkpointSnap = w.Snapshot()
		res.Checkpoints = append(res.Checkpoints, CheckpointEvent{CheckpointID: c.ID})
	}
}

// respawnPlayer restores the last checkpoint snapshot. The death counter and
// the tick clock survive the restore; everything else rewinds.
func (w *World) respawnPlayer(res *StepResult) {
	w.deaths++
	deaths, tick := w.deaths, w.tick
	w.Restore(w.checkpointSnap)
	w.deaths, w.tick = deaths, tick
	res.Respawns = append(res.Respawns, RespawnEvent{Deaths: deaths})
}

// explodeBot runs the bot half of a barrel detonation: the barrel color is
// subtracted first, the remaining masks scatter, then the bot dies and every
// gate and barrel forgets it.
func (w *World) explodeBot(bot *BotAgent, barrelColor hue.Color, res *StepResult) {
	bot.Inventory.ApplyBarrierSubtraction(barrelColor)
	for _, c := range bot.OnExploded(w.tuning.BotDespawnTicks) {
		w.spawnDrop(c, bot.Pos, KindBot, res)
	}
	res.BotDeaths = append(res.BotDeaths, BotDestroyedEvent{BotID: bot.ID})
	for _, g := range w.gates {
		g.EntityDestroyed(bot.ID)
	}
	for _, b := range w.barrels {
		b.EntityDestroyed(bot.ID)
	}
}

// spawnDrop puts a mask back into the world near pos, jittered so repeated
// drops do not stack exactly, with a short cooldown so the dropper cannot
// instantly reabsorb it.
func (w *World) spawnDrop(c hue.Color, pos core.Vec2, by EntityKind, res *StepResult) {
	w.dropSeq++
	j := w.tuning.DropJitter
	at := core.Vec2{
		X: core.ClampF(pos.X+(w.rng.Float64()*2-1)*j, 0, w.width),
		Y: core.ClampF(pos.Y+(w.rng.Float64()*2-1)*j, 0, w.height),
	}
	w.pickups = append(w.pickups, &MaskPickup{
		ID:       fmt.Sprintf("drop-%d", w.dropSeq),
		Pos:      at,
		Color:    c,
		Size:     w.tuning.PickupSize,
		Dropped:  true,
		cooldown: w.tuning.DropCooldownTicks,
	})
	res.Drops = append(res.Drops, DropEvent{Entity: by, Color: c, Position: at})
}
