package mask

import "github.com/doronn/ggj2026-sub000/internal/hue"

// BotInventory specializes Inventory for bot agents. Bots have no toggle
// input, so everything a bot absorbs lands active, and pickups absorb only
// the pigments the bot does not already own. A bot may also carry a "home"
// color that regenerates after a matching barrier consumes it, keeping
// patrol loops deterministic.
type BotInventory struct {
	Inventory

	initialColor hue.Color
}

// NewBotInventory creates an empty bot inventory with no home color.
func NewBotInventory() *BotInventory {
	return &BotInventory{}
}

// OwnedColor returns the OR of every slot's color, active or not.
func (b *BotInventory) OwnedColor() hue.Color {
	owned := hue.None
	for i := 0; i < SlotCount; i++ {
		owned = hue.Combine(owned, b.Slot(i).Color)
	}
	return owned
}

// AlreadyHasAllColors reports whether every pigment of c is present
// somewhere in the inventory, active or not. Bots walk through pickups they
// have nothing to gain from.
func (b *BotInventory) AlreadyHasAllColors(c hue.Color) bool {
	return hue.Contains(b.OwnedColor(), c)
}

// TryPickupMask absorbs the pigments of c the bot is missing into one free
// slot (active) and returns the part it already held as residue for the
// caller to drop back into the world, conserving color: residue plus the
// absorbed part always equals c. A pigment counts as already held only when
// some slot carries it as a plain primary mask; pigments locked inside a
// secondary mask are not extractable and do not become residue. A return
// value equal to c means nothing was absorbed, either because the bot holds
// all of it or because no slot was free; the caller leaves the source pickup
// where it is.
func (b *BotInventory) TryPickupMask(c hue.Color) hue.Color {
	residue := hue.None
	toAdd := hue.None
	for _, p := range c.Split() {
		if b.hasPrimaryMask(p) {
			residue = hue.Combine(residue, p)
		} else {
			toAdd = hue.Combine(toAdd, p)
		}
	}
	if toAdd == hue.None {
		return c
	}
	if !b.addActive(toAdd) {
		return c
	}
	return residue
}

// hasPrimaryMask reports whether some slot holds exactly the given primary.
func (b *BotInventory) hasPrimaryMask(p hue.Color) bool {
	for i := 0; i < SlotCount; i++ {
		if b.Slot(i).Color == p {
			return true
		}
	}
	return false
}

// SetInitialColor records the bot's home color and stocks it if missing.
func (b *BotInventory) SetInitialColor(c hue.Color) {
	b.initialColor = c
	if c == hue.None {
		return
	}
	if !b.AlreadyHasAllColors(c) {
		b.addActive(c)
	}
}

// InitialColor returns the configured home color, None if unset.
func (b *BotInventory) InitialColor() hue.Color {
	return b.initialColor
}

// TryRegenerateInitialColor restores the home color after a barrier whose
// hue covers it has consumed it. Returns true only when a mask was actually
// re-added.
func (b *BotInventory) TryRegenerateInitialColor(barrier hue.Color) bool {
	if b.initialColor == hue.None {
		return false
	}
	if !hue.Contains(barrier, b.initialColor) {
		return false
	}
	if b.AlreadyHasAllColors(b.initialColor) {
		return false
	}
	return b.addActive(b.initialColor)
}

// DropAllMasks empties every occupied slot and returns the dropped colors in
// slot order. Called when the bot is destroyed so its masks return to the
// world.
func (b *BotInventory) DropAllMasks() []hue.Color {
	dropped := make([]hue.Color, 0, SlotCount)
	for i := range b.slots {
		if b.slots[i].Empty() {
			continue
		}
		dropped = append(dropped, b.slots[i].Color)
		b.slots[i] = Slot{}
	}
	if len(dropped) > 0 {
		b.notifyChanged()
	}
	return dropped
}

// addActive stores a color in the first empty slot with the active flag
// already set. Bots use their whole inventory all the time.
func (b *BotInventory) addActive(c hue.Color) bool {
	for i := range b.slots {
		if b.slots[i].Empty() {
			b.slots[i] = Slot{Color: c, Active: true}
			b.notifyChanged()
			return true
		}
	}
	return false
}
