package mask

import (
	"testing"

	"github.com/doronn/ggj2026-sub000/internal/hue"
)

func TestAlreadyHasAllColors(t *testing.T) {
	b := NewBotInventory()
	b.TryAddMask(hue.Green) // inactive, still counts as owned

	tests := []struct {
		color    hue.Color
		expected bool
	}{
		{hue.Green, true},
		{hue.Yellow, true}, // yellow pigment is inside green
		{hue.Blue, true},
		{hue.Red, false},
		{hue.Purple, false}, // missing red
		{hue.None, true},
	}

	for _, tc := range tests {
		if got := b.AlreadyHasAllColors(tc.color); got != tc.expected {
			t.Errorf("AlreadyHasAllColors(%v) = %v, expected %v", tc.color, got, tc.expected)
		}
	}
}

func TestTryPickupMaskNoOverlap(t *testing.T) {
	// Bot holds green, encounters purple. Green shares a pigment with
	// purple, but only plain primary masks count as extractable, so the
	// whole purple is absorbed and there is nothing to return.
	b := NewBotInventory()
	b.SetInitialColor(hue.Green)

	if b.AlreadyHasAllColors(hue.Purple) {
		t.Fatal("bot with only green should not already have purple")
	}

	residue := b.TryPickupMask(hue.Purple)
	if residue != hue.None {
		t.Errorf("residue = %v, expected None", residue)
	}

	var colors []hue.Color
	for i := 0; i < SlotCount; i++ {
		if s := b.Slot(i); !s.Empty() {
			colors = append(colors, s.Color)
		}
	}
	if len(colors) != 2 || colors[0] != hue.Green || colors[1] != hue.Purple {
		t.Errorf("held colors = %v, expected [Green Purple]", colors)
	}
}

func TestTryPickupMaskResidue(t *testing.T) {
	// Bot holds a plain red mask and encounters orange: only the yellow part
	// is new, the red part comes back out as residue.
	b := NewBotInventory()
	b.SetInitialColor(hue.Red)

	residue := b.TryPickupMask(hue.Orange)
	if residue != hue.Red {
		t.Errorf("residue = %v, expected Red", residue)
	}

	if got := b.Slot(0).Color; got != hue.Red {
		t.Errorf("slot 0 = %v, expected Red untouched", got)
	}
	if got := b.Slot(1).Color; got != hue.Yellow {
		t.Errorf("slot 1 = %v, expected only Yellow newly added", got)
	}
	if s := b.Slot(1); !s.Active {
		t.Error("bot pickups should land active")
	}
}

func TestTryPickupMaskFullInventory(t *testing.T) {
	b := NewBotInventory()
	b.TryAddMask(hue.Green)
	b.TryAddMask(hue.Green)
	b.TryAddMask(hue.Green)

	// Missing red, but no free slot: nothing is absorbed and the full color
	// is handed back so the pickup stays in the world.
	residue := b.TryPickupMask(hue.Red)
	if residue != hue.Red {
		t.Errorf("residue = %v, expected the untouched Red", residue)
	}
	for i := 0; i < SlotCount; i++ {
		if got := b.Slot(i).Color; got != hue.Green {
			t.Errorf("slot %d = %v, expected Green unchanged", i, got)
		}
	}
}

func TestTryPickupMaskNothingMissing(t *testing.T) {
	b := NewBotInventory()
	b.SetInitialColor(hue.Red)

	// Everything in the pickup is already held as a primary mask.
	residue := b.TryPickupMask(hue.Red)
	if residue != hue.Red {
		t.Errorf("residue = %v, expected Red (nothing absorbed)", residue)
	}
	if got := b.Slot(1).Color; got != hue.None {
		t.Errorf("slot 1 = %v, expected still empty", got)
	}
}

func TestSetInitialColor(t *testing.T) {
	b := NewBotInventory()
	b.SetInitialColor(hue.Blue)

	if got := b.InitialColor(); got != hue.Blue {
		t.Errorf("InitialColor() = %v, expected Blue", got)
	}
	if s := b.Slot(0); s.Color != hue.Blue || !s.Active {
		t.Errorf("slot 0 = %+v, expected active Blue", s)
	}
	if got := b.GetCombinedActiveColor(); got != hue.Blue {
		t.Errorf("combined = %v, expected Blue", got)
	}

	// Setting it again must not duplicate the mask.
	b.SetInitialColor(hue.Blue)
	if got := b.Slot(1).Color; got != hue.None {
		t.Errorf("slot 1 = %v, expected empty after repeated SetInitialColor", got)
	}
}

func TestTryRegenerateInitialColor(t *testing.T) {
	b := NewBotInventory()
	b.SetInitialColor(hue.Red)

	// The barrier consumed the home color on exit; a matching hue restores it.
	b.ApplyBarrierSubtraction(hue.Red)
	if got := b.GetCombinedActiveColor(); got != hue.None {
		t.Fatalf("combined after subtraction = %v, expected None", got)
	}

	if !b.TryRegenerateInitialColor(hue.Red) {
		t.Fatal("regeneration should succeed after losing the home color")
	}
	if s := b.Slot(0); s.Color != hue.Red || !s.Active {
		t.Errorf("slot 0 = %+v, expected active Red restored", s)
	}

	// Still holding the home color: nothing to regenerate.
	if b.TryRegenerateInitialColor(hue.Red) {
		t.Error("regeneration should be a no-op while the color is held")
	}

	// A barrier that does not cover the home color never regenerates.
	b.ApplyBarrierSubtraction(hue.Red)
	if b.TryRegenerateInitialColor(hue.Blue) {
		t.Error("a blue barrier should not regenerate a red home color")
	}

	// A superset barrier does: passing purple consumes red and restores it.
	if !b.TryRegenerateInitialColor(hue.Purple) {
		t.Error("a purple barrier covers red and should regenerate it")
	}
}

func TestTryRegenerateWithoutInitialColor(t *testing.T) {
	b := NewBotInventory()
	if b.TryRegenerateInitialColor(hue.Red) {
		t.Error("a bot with no home color never regenerates")
	}
}

func TestDropAllMasks(t *testing.T) {
	b := NewBotInventory()
	b.SetInitialColor(hue.Red)
	b.TryPickupMask(hue.Green)

	dropped := b.DropAllMasks()
	if len(dropped) != 2 || dropped[0] != hue.Red || dropped[1] != hue.Green {
		t.Errorf("dropped = %v, expected [Red Green] in slot order", dropped)
	}
	for i := 0; i < SlotCount; i++ {
		if s := b.Slot(i); !s.Empty() || s.Active {
			t.Errorf("slot %d = %+v, expected cleared", i, s)
		}
	}

	if got := b.DropAllMasks(); len(got) != 0 {
		t.Errorf("second DropAllMasks = %v, expected empty", got)
	}
}

func TestBotInventorySatisfiesCapability(t *testing.T) {
	var _ Capability = NewBotInventory()
	var _ SlotCapability = NewInventory()

	// A bot passing a gate pays with its current state.
	b := NewBotInventory()
	b.SetInitialColor(hue.Orange)
	if !b.CanPassThrough(hue.Yellow) {
		t.Fatal("orange bot should pass a yellow gate")
	}
	b.ApplyBarrierSubtraction(hue.Yellow)
	if got := b.GetCombinedActiveColor(); got != hue.Red {
		t.Errorf("combined after yellow gate = %v, expected Red", got)
	}
}
