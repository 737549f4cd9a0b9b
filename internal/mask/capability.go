package mask

import "github.com/doronn/ggj2026-sub000/internal/hue"

// Capability is the color contract gates and barrels test entities against.
// Both the player inventory and the bot inventory implement it, which keeps
// barrier logic entity-agnostic.
type Capability interface {
	GetCombinedActiveColor() hue.Color
	CanPassThrough(barrier hue.Color) bool
	ApplyBarrierSubtraction(barrier hue.Color)
}

// SlotCapability extends Capability with slot-level access. Gates use it on
// the player path to freeze the set of slots that authorized a phase at
// entry time and to subtract from exactly that set on exit.
type SlotCapability interface {
	Capability
	GetActiveSlotIndices() []int
	ApplyBarrierSubtractionFromSlots(barrier hue.Color, slots []int)
}
