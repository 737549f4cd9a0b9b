// Package world implements the frame-stepped simulation: the player, patrol
// bots, color barriers, hazard barrels, pickups, checkpoints and the portal,
// advanced one tick at a time by the game shell. Everything here is
// single-threaded; states that look time-based (phasing, waiting, despawn)
// are explicit counters advanced per tick.
package world

import (
	"github.com/doronn/ggj2026-sub000/internal/mask"
)

// EntityKind tags which side of the player/bot split an entity is on. Gates
// and barrels branch on the kind once, at reference construction, never by
// probing per event.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindBot
)

// String returns the lowercase kind name used in events and logs.
func (k EntityKind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "bot"
}

// EntityRef is the resolved identity a gate or barrel interacts with: a
// stable id, the kind tag, and the color capability views it needs. Slots is
// non-nil only for the player (slot snapshots are a player-path concern);
// Bot is non-nil only for bots (home color regeneration). Refs are built
// once at wiring time.
type EntityRef struct {
	ID    string
	Kind  EntityKind
	Cap   mask.Capability
	Slots mask.SlotCapability
	Bot   *mask.BotInventory
}
