package world

import (
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
)

// GateState is the barrier state machine: a gate either blocks or is mid
// phase with exactly one entity.
type GateState int

const (
	GateBlocking GateState = iota
	GatePhasing
)

// PhaseSession records who is mid-transit through a gate and what they owe.
// For the player the active slot indices are frozen at entry, so masks
// toggled or dropped mid-transit still pay on exit. Bots pay with whatever
// is active when they leave. At most one session exists per gate; a second
// entity entering while one is phasing is ignored.
type PhaseSession struct {
	EntityID     string
	Required     hue.Color
	SlotsAtStart []int
	HasSnapshot  bool
}

// BarrierGate is a colored wall segment entities phase through when their
// combined active color covers the gate color. It owns two volumes: the
// solid one, toggled off while a session is open, and a slightly larger
// trigger skin used for enter/exit detection so exits cannot be missed at
// normal movement speeds.
type BarrierGate struct {
	ID    string
	Solid core.RectF
	Color hue.Color

	state    GateState
	session  PhaseSession
	progress float64
	rampStep float64
	inflate  float64

	inside map[string]bool
}

// NewBarrierGate wires a gate over its solid volume. rampStep is the per
// tick visual phase progress increment; inflate is the trigger skin margin
// per axis.
func NewBarrierGate(id string, solid core.RectF, color hue.Color, inflate, rampStep float64) *BarrierGate {
	return &BarrierGate{
		ID:       id,
		Solid:    solid,
		Color:    color,
		state:    GateBlocking,
		rampStep: rampStep,
		inflate:  inflate,
		inside:   make(map[string]bool),
	}
}

// State returns the instantaneous gate state.
func (g *BarrierGate) State() GateState { return g.state }

// SolidEnabled reports whether the gate currently blocks movement. The solid
// volume is owned and toggled only by this gate's own state machine.
func (g *BarrierGate) SolidEnabled() bool { return g.state == GateBlocking }

// Trigger returns the detection volume, the solid inflated by the skin
// margin on both axes.
func (g *BarrierGate) Trigger() core.RectF {
	return g.Solid.Inflate(g.inflate, g.inflate)
}

// PhaseProgress returns the visual phase amount in [0, 1]. The value ramps
// toward 1 while phasing and back toward 0 while blocking; the blocking
// state itself flips instantly and never waits for the ramp.
func (g *BarrierGate) PhaseProgress() float64 { return g.progress }

// Session returns the open phase session and whether one exists.
func (g *BarrierGate) Session() (PhaseSession, bool) {
	return g.session, g.state == GatePhasing
}

// Observe processes one entity's overlap with the trigger volume for this
// tick, turning the overlap level into edge-triggered enter/exit calls.
// Events are appended to res.
func (g *BarrierGate) Observe(ref EntityRef, bounds core.RectF, res *StepResult) {
	overlapping := bounds.Intersects(g.Trigger())
	was := g.inside[ref.ID]
	if overlapping == was {
		return
	}
	g.inside[ref.ID] = overlapping
	if overlapping {
		g.onTriggerEnter(ref, res)
	} else {
		g.onTriggerExit(ref, res)
	}
}

func (g *BarrierGate) onTriggerEnter(ref EntityRef, res *StepResult) {
	if g.state == GatePhasing {
		// Single occupancy: whoever is mid-phase keeps the gate; later
		// arrivals are ignored entirely.
		return
	}
	if !ref.Cap.CanPassThrough(g.Color) {
		res.Blocked = append(res.Blocked, BlockedEvent{
			GateID:   g.ID,
			Entity:   ref.Kind,
			Required: g.Color,
		})
		return
	}

	g.session = PhaseSession{EntityID: ref.ID, Required: g.Color}
	if ref.Slots != nil {
		g.session.SlotsAtStart = ref.Slots.GetActiveSlotIndices()
		g.session.HasSnapshot = true
	}
	g.state = GatePhasing
	res.PhaseStarts = append(res.PhaseStarts, PhaseEvent{GateID: g.ID, Entity: ref.Kind, Color: g.Color})
}

func (g *BarrierGate) onTriggerExit(ref EntityRef, res *StepResult) {
	if g.state != GatePhasing || g.session.EntityID != ref.ID {
		// Exit without a matching session is a guarded no-op.
		return
	}

	if g.session.HasSnapshot {
		ref.Slots.ApplyBarrierSubtractionFromSlots(g.session.Required, g.session.SlotsAtStart)
	} else {
		ref.Cap.ApplyBarrierSubtraction(g.session.Required)
		if ref.Bot != nil {
			ref.Bot.TryRegenerateInitialColor(g.session.Required)
		}
	}

	g.state = GateBlocking
	g.session = PhaseSession{}
	res.PhaseEnds = append(res.PhaseEnds, PhaseEvent{GateID: g.ID, Entity: ref.Kind, Color: g.Color})
}

// EntityDestroyed closes the session without subtraction when the phasing
// entity is removed from the world mid-transit, and forgets any trigger
// tracking for it.
func (g *BarrierGate) EntityDestroyed(id string) {
	delete(g.inside, id)
	if g.state == GatePhasing && g.session.EntityID == id {
		g.state = GateBlocking
		g.session = PhaseSession{}
	}
}

// Advance moves the visual phase progress one tick toward its target.
func (g *BarrierGate) Advance() {
	if g.state == GatePhasing {
		g.progress = core.ClampF(g.progress+g.rampStep, 0, 1)
	} else {
		g.progress = core.ClampF(g.progress-g.rampStep, 0, 1)
	}
}

// Reset forces the gate back to blocking with no session and no trigger
// memory, used when the world restores a checkpoint snapshot.
func (g *BarrierGate) Reset() {
	g.state = GateBlocking
	g.session = PhaseSession{}
	g.progress = 0
	g.inside = make(map[string]bool)
}
