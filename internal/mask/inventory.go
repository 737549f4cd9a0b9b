// Package mask implements the color mask inventories carried by the player
// and by bots. An inventory owns a fixed number of slots; each slot holds a
// color and an active flag. Only active, non-empty slots contribute to the
// combined color that barriers and barrels test against.
package mask

import "github.com/doronn/ggj2026-sub000/internal/hue"

// SlotCount is the fixed inventory capacity. Inventories are never resized.
const SlotCount = 3

// Slot is one inventory position. A color of None means the slot is empty;
// the active flag is meaningful only while the slot holds a mask.
type Slot struct {
	Color  hue.Color
	Active bool
}

// Empty reports whether the slot holds no mask.
func (s Slot) Empty() bool { return s.Color == hue.None }

// SlotSnapshot is the persisted shape of one slot. The byte format around it
// is owned by whoever stores it; the inventory only guarantees the ordered
// {color, active} triple.
type SlotSnapshot struct {
	Color  hue.Color `json:"color"`
	Active bool      `json:"active"`
}

// Snapshot is a wholesale copy of an inventory, ordered by slot index.
type Snapshot [SlotCount]SlotSnapshot

// Inventory is the player-side mask store. Not safe for concurrent use.
type Inventory struct {
	slots [SlotCount]Slot

	onChange []func()
	onToggle []func(slot int, active bool)
}

// NewInventory creates an empty inventory with all slots inactive.
func NewInventory() *Inventory {
	return &Inventory{}
}

// OnChange registers a listener fired whenever slot contents or active flags
// change. Listeners are invoked synchronously, fire-and-forget.
func (inv *Inventory) OnChange(fn func()) {
	inv.onChange = append(inv.onChange, fn)
}

// OnToggle registers a listener fired when a slot's active flag is flipped
// through ToggleMask.
func (inv *Inventory) OnToggle(fn func(slot int, active bool)) {
	inv.onToggle = append(inv.onToggle, fn)
}

func (inv *Inventory) notifyChanged() {
	for _, fn := range inv.onChange {
		fn()
	}
}

func (inv *Inventory) notifyToggled(slot int, active bool) {
	for _, fn := range inv.onToggle {
		fn(slot, active)
	}
}

// Slot returns a copy of the slot at the given index, or an empty slot for
// out-of-range indices.
func (inv *Inventory) Slot(i int) Slot {
	if i < 0 || i >= SlotCount {
		return Slot{}
	}
	return inv.slots[i]
}

// IsFull reports whether every slot holds a mask.
func (inv *Inventory) IsFull() bool {
	for _, s := range inv.slots {
		if s.Empty() {
			return false
		}
	}
	return true
}

// TryAddMask stores a color in the first empty slot, inactive. Returns false
// with no side effect when the inventory is full; the caller leaves the
// source pickup in the world in that case.
func (inv *Inventory) TryAddMask(c hue.Color) bool {
	if c == hue.None {
		return false
	}
	for i := range inv.slots {
		if inv.slots[i].Empty() {
			inv.slots[i] = Slot{Color: c, Active: false}
			inv.notifyChanged()
			return true
		}
	}
	return false
}

// ToggleMask flips the active flag of the given slot. Empty slots and
// out-of-range indices are silent no-ops; input devices may send slot
// indices speculatively.
func (inv *Inventory) ToggleMask(i int) {
	if i < 0 || i >= SlotCount {
		return
	}
	if inv.slots[i].Empty() {
		return
	}
	inv.slots[i].Active = !inv.slots[i].Active
	inv.notifyToggled(i, inv.slots[i].Active)
	inv.notifyChanged()
}

// DeactivateAll clears every slot's active flag regardless of occupancy and
// fires a single change notification.
func (inv *Inventory) DeactivateAll() {
	for i := range inv.slots {
		inv.slots[i].Active = false
	}
	inv.notifyChanged()
}

// DropMask empties the given slot and returns its color. Returns None for an
// already-empty slot or an out-of-range index. The caller is responsible for
// spawning a dropped-mask entity; the inventory knows nothing about world
// geometry.
func (inv *Inventory) DropMask(i int) hue.Color {
	if i < 0 || i >= SlotCount {
		return hue.None
	}
	c := inv.slots[i].Color
	if c == hue.None {
		return hue.None
	}
	inv.slots[i] = Slot{}
	inv.notifyChanged()
	return c
}

// GetCombinedActiveColor returns the OR of every active, non-empty slot.
func (inv *Inventory) GetCombinedActiveColor() hue.Color {
	combined := hue.None
	for _, s := range inv.slots {
		if s.Active && !s.Empty() {
			combined = hue.Combine(combined, s.Color)
		}
	}
	return combined
}

// GetActiveSlotIndices returns the indices of active, non-empty slots in
// ascending order. Index order matters: drop and subtraction logic use the
// first entry as the tie-break.
func (inv *Inventory) GetActiveSlotIndices() []int {
	out := make([]int, 0, SlotCount)
	for i, s := range inv.slots {
		if s.Active && !s.Empty() {
			out = append(out, i)
		}
	}
	return out
}

// CanPassThrough reports whether the combined active color covers the
// barrier color.
func (inv *Inventory) CanPassThrough(barrier hue.Color) bool {
	return hue.CanPassThrough(inv.GetCombinedActiveColor(), barrier)
}

// ApplyBarrierSubtraction subtracts the barrier color from every currently
// active slot. A slot whose color reaches None becomes empty; its active
// flag is left as-is and gets overwritten by the next pickup. This is the
// current-state path used for bots; gates use the from-slots variant for the
// player.
func (inv *Inventory) ApplyBarrierSubtraction(barrier hue.Color) {
	changed := false
	for i := range inv.slots {
		s := &inv.slots[i]
		if !s.Active || s.Empty() {
			continue
		}
		next := hue.Subtract(s.Color, barrier)
		if next != s.Color {
			s.Color = next
			changed = true
		}
	}
	if changed {
		inv.notifyChanged()
	}
}

// ApplyBarrierSubtractionFromSlots subtracts the barrier color from exactly
// the given slot indices, whatever their current active state. This is how a
// gate charges the slots that were active when a phase began, so toggling or
// shuffling masks mid-transit cannot dodge the cost. Out-of-range indices
// are skipped.
func (inv *Inventory) ApplyBarrierSubtractionFromSlots(barrier hue.Color, slots []int) {
	changed := false
	for _, i := range slots {
		if i < 0 || i >= SlotCount {
			continue
		}
		s := &inv.slots[i]
		if s.Empty() {
			continue
		}
		next := hue.Subtract(s.Color, barrier)
		if next != s.Color {
			s.Color = next
			changed = true
		}
	}
	if changed {
		inv.notifyChanged()
	}
}

// Snapshot copies the inventory into its persisted shape.
func (inv *Inventory) Snapshot() Snapshot {
	var snap Snapshot
	for i, s := range inv.slots {
		snap[i] = SlotSnapshot{Color: s.Color, Active: s.Active}
	}
	return snap
}

// Restore overwrites the inventory wholesale from a snapshot and fires a
// single change notification.
func (inv *Inventory) Restore(snap Snapshot) {
	for i, s := range snap {
		inv.slots[i] = Slot{Color: s.Color, Active: s.Active}
	}
	inv.notifyChanged()
}
