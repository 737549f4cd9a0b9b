package world

import (
	"reflect"
	"testing"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func mustWorld(t *testing.T, def Def) *World {
	t.Helper()
	w, err := New(def, DefaultTuning(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

// merge folds one tick's events into an accumulator for whole-run assertions.
func merge(into *StepResult, r StepResult) {
	into.Blocked = append(into.Blocked, r.Blocked...)
	into.PhaseStarts = append(into.PhaseStarts, r.PhaseStarts...)
	into.PhaseEnds = append(into.PhaseEnds, r.PhaseEnds...)
	into.Pickups = append(into.Pickups, r.Pickups...)
	into.FullPickups = append(into.FullPickups, r.FullPickups...)
	into.Drops = append(into.Drops, r.Drops...)
	into.Explosions = append(into.Explosions, r.Explosions...)
	into.BotDeaths = append(into.BotDeaths, r.BotDeaths...)
	into.Checkpoints = append(into.Checkpoints, r.Checkpoints...)
	into.Respawns = append(into.Respawns, r.Respawns...)
	if r.LevelComplete {
		into.LevelComplete = true
	}
}

// TestWorldPickupToggleGateFlow walks the canonical loop: collect red and
// blue, activate both, phase a purple gate, deactivate red mid-transit, and
// still lose both masks on exit.
func TestWorldPickupToggleGateFlow(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 24, Height: 8,
		PlayerSpawn: core.Vec2{X: 2, Y: 4},
		Pickups: []PickupDef{
			{ID: "m-red", Pos: core.Vec2{X: 4, Y: 4}, Color: hue.Red},
			{ID: "m-blue", Pos: core.Vec2{X: 6, Y: 4}, Color: hue.Blue},
		},
		Gates:  []GateDef{{ID: "g-purple", Rect: core.NewRectF(11, 0, 1, 8), Color: hue.Purple}},
		Portal: core.NewRectF(23, 0, 1, 1),
	})
	inv := w.Player().Inventory

	var all StepResult
	for tick := 1; tick <= 45; tick++ {
		input := frame(core.ActionMoveRight)
		switch tick {
		case 14:
			// Both masks collected by now; light them up.
			input.Set(core.ActionToggleSlot1)
			input.Set(core.ActionToggleSlot2)
		case 36:
			// Mid-transit: switch red off. The gate already took its snapshot.
			input.Set(core.ActionToggleSlot1)
		}
		merge(&all, w.Step(input))
	}

	if len(all.Pickups) != 2 {
		t.Fatalf("pickup events = %d, expected 2", len(all.Pickups))
	}
	if len(all.PhaseStarts) != 1 || len(all.PhaseEnds) != 1 {
		t.Fatalf("phase events = %d starts, %d ends, expected 1 and 1",
			len(all.PhaseStarts), len(all.PhaseEnds))
	}
	if len(all.Blocked) != 0 {
		t.Errorf("blocked events = %d, expected 0", len(all.Blocked))
	}
	if w.Player().Pos.X < 12.1 {
		t.Errorf("player x = %v, expected past the gate", w.Player().Pos.X)
	}
	if !inv.Slot(0).Empty() || !inv.Slot(1).Empty() {
		t.Errorf("slots = %+v, %+v, expected both consumed on exit",
			inv.Slot(0), inv.Slot(1))
	}
	if w.Gates()[0].State() != GateBlocking {
		t.Error("gate should re-block after the transit")
	}
}

func TestWorldGateBlocksEmptyHanded(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 24, Height: 8,
		PlayerSpawn: core.Vec2{X: 8, Y: 4},
		Gates:       []GateDef{{ID: "g-blue", Rect: core.NewRectF(11, 0, 1, 8), Color: hue.Blue}},
		Portal:      core.NewRectF(23, 0, 1, 1),
	})

	var all StepResult
	for tick := 1; tick <= 50; tick++ {
		merge(&all, w.Step(frame(core.ActionMoveRight)))
	}

	// One rejection on the trigger enter edge, then silence while leaning on
	// the wall.
	if len(all.Blocked) != 1 {
		t.Fatalf("blocked events = %d, expected 1", len(all.Blocked))
	}
	if all.Blocked[0].GateID != "g-blue" || all.Blocked[0].Required != hue.Blue {
		t.Errorf("blocked event = %+v, expected g-blue requiring Blue", all.Blocked[0])
	}
	if x := w.Player().Pos.X; x >= 11 {
		t.Errorf("player x = %v, expected stopped at the gate face", x)
	}
}

func TestWorldCheckpointRespawn(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 24, Height: 8,
		PlayerSpawn: core.Vec2{X: 3, Y: 4},
		Checkpoints: []CheckpointDef{{ID: "cp-1", Rect: core.NewRectF(2, 3, 2, 2)}},
		Pickups:     []PickupDef{{ID: "m-red", Pos: core.Vec2{X: 6, Y: 4}, Color: hue.Red}},
		Barrels:     []BarrelDef{{ID: "b-red", Rect: core.NewRectF(10, 3.5, 1, 1), Color: hue.Red}},
		Portal:      core.NewRectF(23, 0, 1, 1),
	})
	inv := w.Player().Inventory

	var all StepResult
	deathTick := 0
	for tick := 1; tick <= 45 && deathTick == 0; tick++ {
		input := frame(core.ActionMoveRight)
		if tick == 10 {
			input.Set(core.ActionToggleSlot1)
		}
		res := w.Step(input)
		merge(&all, res)
		if len(res.Respawns) > 0 {
			deathTick = tick
		}
	}
	if deathTick == 0 {
		t.Fatal("player never detonated the barrel")
	}

	if len(all.Checkpoints) != 1 {
		t.Fatalf("checkpoint events = %d, expected 1", len(all.Checkpoints))
	}
	if len(all.Explosions) != 1 || !all.Explosions[0].IsPlayer {
		t.Fatalf("explosions = %+v, expected one player detonation", all.Explosions)
	}
	if all.Respawns[0].Deaths != 1 {
		t.Fatalf("respawns = %+v, expected deaths=1", all.Respawns)
	}
	if w.Deaths() != 1 {
		t.Errorf("deaths = %d, expected 1", w.Deaths())
	}

	// The world rewound to the checkpoint: inventory gone, pickup back,
	// barrel re-armed. The clock and death count do not rewind.
	if !inv.Slot(0).Empty() {
		t.Errorf("slot 0 = %+v, expected empty after respawn", inv.Slot(0))
	}
	if w.Pickups()[0].Collected() {
		t.Error("pickup should be restored by the checkpoint rewind")
	}
	if w.Barrels()[0].Exploded() {
		t.Error("barrel should be re-armed by the checkpoint restore")
	}
	if w.Tick() != uint64(deathTick) {
		t.Errorf("tick = %d, expected the clock to keep counting", w.Tick())
	}

	// The rewound pickup is collectible again on the second life.
	for tick := deathTick + 1; tick <= 45; tick++ {
		merge(&all, w.Step(frame(core.ActionMoveRight)))
	}
	if len(all.Pickups) != 2 {
		t.Errorf("pickup events = %d, expected 2 (once per life)", len(all.Pickups))
	}
	if got := inv.Slot(0); got.Color != hue.Red || got.Active {
		t.Errorf("slot 0 = %+v, expected the re-collected red, inactive", got)
	}
}

func TestWorldDropCooldownPreventsReabsorb(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 12, Height: 6,
		PlayerSpawn: core.Vec2{X: 6, Y: 3},
		Portal:      core.NewRectF(10, 5, 1, 1),
	})
	inv := w.Player().Inventory
	inv.TryAddMask(hue.Red)
	inv.ToggleMask(0)

	var all StepResult
	merge(&all, w.Step(frame(core.ActionDropMask)))

	if len(all.Drops) != 1 || all.Drops[0].Color != hue.Red {
		t.Fatalf("drops = %+v, expected one red", all.Drops)
	}
	if !inv.Slot(0).Empty() {
		t.Fatalf("slot 0 = %+v, expected emptied by the drop", inv.Slot(0))
	}

	// Standing on the drop through its whole cooldown picks up nothing.
	for i := 0; i < 60; i++ {
		merge(&all, w.Step(frame()))
	}
	if len(all.Pickups) != 0 {
		t.Fatalf("pickup events while camping the drop = %d, expected 0", len(all.Pickups))
	}

	// Stepping away and back crosses a fresh trigger edge; the cooldown has
	// expired, so now it collects.
	for i := 0; i < 8; i++ {
		merge(&all, w.Step(frame(core.ActionMoveLeft)))
	}
	for i := 0; i < 10; i++ {
		merge(&all, w.Step(frame(core.ActionMoveRight)))
	}

	if len(all.Pickups) != 1 {
		t.Fatalf("pickup events after re-entry = %d, expected 1", len(all.Pickups))
	}
	if got := inv.Slot(0); got.Color != hue.Red || got.Active {
		t.Errorf("slot 0 = %+v, expected red landed inactive", got)
	}
}

func TestWorldInventoryFullLeavesPickup(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 12, Height: 4,
		PlayerSpawn: core.Vec2{X: 2, Y: 2},
		Pickups: []PickupDef{
			{ID: "m-1", Pos: core.Vec2{X: 4, Y: 2}, Color: hue.Red},
			{ID: "m-2", Pos: core.Vec2{X: 5, Y: 2}, Color: hue.Yellow},
			{ID: "m-3", Pos: core.Vec2{X: 6, Y: 2}, Color: hue.Blue},
			{ID: "m-4", Pos: core.Vec2{X: 8, Y: 2}, Color: hue.Green},
		},
		Portal: core.NewRectF(11, 0, 1, 0.5),
	})

	var all StepResult
	for tick := 1; tick <= 25; tick++ {
		merge(&all, w.Step(frame(core.ActionMoveRight)))
	}

	if len(all.Pickups) != 3 {
		t.Fatalf("pickup events = %d, expected 3", len(all.Pickups))
	}
	if len(all.FullPickups) != 1 || all.FullPickups[0].Color != hue.Green {
		t.Fatalf("full-inventory events = %+v, expected one for green", all.FullPickups)
	}
	green := w.Pickups()[3]
	if green.Collected() {
		t.Error("the fourth pickup should stay in the world")
	}
}

func TestWorldBotAbsorbsAndDropsResidue(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 20, Height: 8,
		PlayerSpawn: core.Vec2{X: 2, Y: 6},
		Pickups:     []PickupDef{{ID: "m-orange", Pos: core.Vec2{X: 7, Y: 2}, Color: hue.Orange}},
		Bots: []BotDef{{
			ID:        "bot-1",
			Waypoints: []core.Vec2{{X: 2, Y: 2}, {X: 12, Y: 2}},
			Mode:      PathPingPong,
			Speed:     0.2,
			HomeColor: hue.Red,
		}},
		Portal: core.NewRectF(18, 6, 1, 1),
	})

	var all StepResult
	for tick := 1; tick <= 100; tick++ {
		merge(&all, w.Step(frame()))
	}

	// The bot already holds a red mask, so picking up orange absorbs only the
	// yellow pigment and scatters the red part back.
	if len(all.Pickups) != 1 || all.Pickups[0].Entity != KindBot || all.Pickups[0].Color != hue.Orange {
		t.Fatalf("pickup events = %+v, expected the bot taking orange", all.Pickups)
	}
	if len(all.Drops) != 1 || all.Drops[0].Color != hue.Red || all.Drops[0].Entity != KindBot {
		t.Fatalf("drops = %+v, expected the bot scattering red", all.Drops)
	}
	bot := w.Bots()[0]
	if got := bot.Inventory.GetCombinedActiveColor(); got != hue.Orange {
		t.Errorf("bot combined = %v, expected Orange", got)
	}

	// On the return leg the bot walks over its own red drop and ignores it:
	// it owns that pigment already.
	for _, p := range w.Pickups() {
		if p.Dropped && p.Collected() {
			t.Errorf("drop %s collected, expected the bot to ignore owned pigment", p.ID)
		}
	}
}

func TestWorldBarrelKillsBot(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 16, Height: 6,
		PlayerSpawn: core.Vec2{X: 2, Y: 5},
		Bots: []BotDef{{
			ID:        "bot-1",
			Waypoints: []core.Vec2{{X: 2, Y: 2}, {X: 12, Y: 2}},
			Mode:      PathOneWay,
			Speed:     0.25,
		}},
		Barrels: []BarrelDef{{ID: "b-yellow", Rect: core.NewRectF(8, 1.5, 1, 1), Color: hue.Yellow}},
		Portal:  core.NewRectF(14, 5, 1, 1),
	})
	bot := w.Bots()[0]
	bot.Inventory.TryPickupMask(hue.Green)

	var all StepResult
	for tick := 1; tick <= 60; tick++ {
		merge(&all, w.Step(frame()))
	}

	if len(all.Explosions) != 1 || all.Explosions[0].IsPlayer {
		t.Fatalf("explosions = %+v, expected one bot detonation", all.Explosions)
	}
	if len(all.BotDeaths) != 1 || all.BotDeaths[0].BotID != "bot-1" {
		t.Fatalf("bot deaths = %+v, expected bot-1", all.BotDeaths)
	}
	// Green minus the yellow barrel leaves blue to scatter.
	if len(all.Drops) != 1 || all.Drops[0].Color != hue.Blue {
		t.Fatalf("drops = %+v, expected one blue", all.Drops)
	}
	if bot.Alive() {
		t.Error("bot should be dead")
	}
	if !bot.Removed() {
		t.Error("bot should despawn after the delay")
	}
	if !w.Barrels()[0].Exploded() {
		t.Error("barrel should be spent")
	}
	if w.Deaths() != 0 {
		t.Errorf("player deaths = %d, expected 0", w.Deaths())
	}
}

func TestWorldPortalCompletesLevel(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 10, Height: 4,
		PlayerSpawn: core.Vec2{X: 2, Y: 2},
		Portal:      core.NewRectF(8, 1, 1, 2),
	})

	completed := uint64(0)
	for tick := 1; tick <= 30; tick++ {
		res := w.Step(frame(core.ActionMoveRight))
		if res.LevelComplete {
			completed = w.Tick()
			break
		}
	}
	if completed != 23 {
		t.Errorf("level completed at tick %d, expected 23", completed)
	}
}

func TestWorldDeterminism(t *testing.T) {
	def := Def{
		Width: 30, Height: 8,
		PlayerSpawn: core.Vec2{X: 2, Y: 4},
		Pickups: []PickupDef{
			{ID: "m-red", Pos: core.Vec2{X: 5, Y: 4}, Color: hue.Red},
			{ID: "m-blue", Pos: core.Vec2{X: 7, Y: 4}, Color: hue.Blue},
		},
		Gates:       []GateDef{{ID: "g-purple", Rect: core.NewRectF(12, 0, 1, 8), Color: hue.Purple}},
		Bots:        []BotDef{{ID: "bot-1", Waypoints: []core.Vec2{{X: 16, Y: 2}, {X: 16, Y: 6}}, Mode: PathPingPong, HomeColor: hue.Blue}},
		Barrels:     []BarrelDef{{ID: "b-red", Rect: core.NewRectF(20, 3.5, 1, 1), Color: hue.Red}},
		Checkpoints: []CheckpointDef{{ID: "cp-1", Rect: core.NewRectF(9, 3, 2, 2)}},
		Portal:      core.NewRectF(28, 0, 1, 8),
	}

	script := func(tick int) core.InputFrame {
		input := frame(core.ActionMoveRight)
		if tick%7 == 0 {
			input.Set(core.ActionToggleSlot1)
		}
		if tick%11 == 0 {
			input.Set(core.ActionToggleSlot2)
		}
		if tick%31 == 0 {
			input.Set(core.ActionDropMask)
		}
		return input
	}

	run := func() Snapshot {
		w, err := New(def, DefaultTuning(), 42)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for tick := 1; tick <= 200; tick++ {
			w.Step(script(tick))
		}
		return w.Snapshot()
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical seeds and inputs diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestWorldSnapshotRestoreRoundTrip(t *testing.T) {
	w := mustWorld(t, Def{
		Width: 20, Height: 8,
		PlayerSpawn: core.Vec2{X: 2, Y: 4},
		Pickups:     []PickupDef{{ID: "m-red", Pos: core.Vec2{X: 5, Y: 4}, Color: hue.Red}},
		Bots:        []BotDef{{ID: "bot-1", Waypoints: []core.Vec2{{X: 10, Y: 2}, {X: 10, Y: 6}}, Mode: PathLoop, HomeColor: hue.Yellow}},
		Portal:      core.NewRectF(19, 0, 1, 8),
	})

	for tick := 1; tick <= 30; tick++ {
		input := frame(core.ActionMoveRight)
		if tick == 20 {
			input.Set(core.ActionToggleSlot1)
		}
		w.Step(input)
	}
	snap := w.Snapshot()

	// Diverge, then rewind.
	for tick := 0; tick < 25; tick++ {
		w.Step(frame(core.ActionMoveDown, core.ActionDropMask))
	}
	w.Restore(snap)

	if got := w.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Errorf("restore round trip diverged:\nsaved:    %+v\nrestored: %+v", snap, got)
	}
	if w.Tick() != 30 {
		t.Errorf("tick = %d, expected restored to 30", w.Tick())
	}
}

func TestWorldValidation(t *testing.T) {
	valid := func() Def {
		return Def{
			Width: 10, Height: 10,
			PlayerSpawn: core.Vec2{X: 2, Y: 2},
			Portal:      core.NewRectF(9, 9, 1, 1),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Def)
	}{
		{"zero area", func(d *Def) { d.Width = 0 }},
		{"spawn outside", func(d *Def) { d.PlayerSpawn = core.Vec2{X: 20, Y: 2} }},
		{"empty portal", func(d *Def) { d.Portal = core.RectF{} }},
		{"gate without id", func(d *Def) {
			d.Gates = []GateDef{{Rect: core.NewRectF(5, 0, 1, 10), Color: hue.Red}}
		}},
		{"gate with empty volume", func(d *Def) {
			d.Gates = []GateDef{{ID: "g-1", Color: hue.Red}}
		}},
		{"colorless barrel", func(d *Def) {
			d.Barrels = []BarrelDef{{ID: "b-1", Rect: core.NewRectF(5, 5, 1, 1)}}
		}},
		{"colorless pickup", func(d *Def) {
			d.Pickups = []PickupDef{{ID: "m-1", Pos: core.Vec2{X: 5, Y: 5}}}
		}},
		{"duplicate ids", func(d *Def) {
			d.Pickups = []PickupDef{
				{ID: "m-1", Pos: core.Vec2{X: 4, Y: 4}, Color: hue.Red},
				{ID: "m-1", Pos: core.Vec2{X: 6, Y: 6}, Color: hue.Blue},
			}
		}},
		{"loop bot with one waypoint", func(d *Def) {
			d.Bots = []BotDef{{ID: "bot-1", Waypoints: []core.Vec2{{X: 5, Y: 5}}, Mode: PathLoop}}
		}},
		{"one-way bot with no waypoints", func(d *Def) {
			d.Bots = []BotDef{{ID: "bot-1", Mode: PathOneWay}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid()
			tt.mutate(&def)
			if _, err := New(def, DefaultTuning(), 0); err == nil {
				t.Error("New() succeeded, expected an error")
			}
		})
	}

	if _, err := New(valid(), DefaultTuning(), 0); err != nil {
		t.Errorf("New() with a valid def failed: %v", err)
	}
}
