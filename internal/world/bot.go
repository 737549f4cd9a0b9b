package world

import (
	"strings"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
	"github.com/doronn/ggj2026-sub000/internal/mask"
)

// BotState is derived from the agent's flags each tick.
type BotState int

const (
	BotMoving BotState = iota
	BotWaiting
	BotStoppedByPlayer
)

// String returns a human-readable state name.
func (s BotState) String() string {
	switch s {
	case BotMoving:
		return "moving"
	case BotWaiting:
		return "waiting"
	case BotStoppedByPlayer:
		return "stopped"
	default:
		return "unknown"
	}
}

// PathMode selects what a bot does after its last waypoint.
type PathMode int

const (
	PathLoop PathMode = iota
	PathPingPong
	PathOneWay
)

// String returns the level-file name of the mode.
func (m PathMode) String() string {
	switch m {
	case PathLoop:
		return "loop"
	case PathPingPong:
		return "pingpong"
	case PathOneWay:
		return "oneway"
	default:
		return "unknown"
	}
}

// ParsePathMode converts a level-file string to a PathMode.
// Returns PathLoop and false if the string is not recognized.
func ParsePathMode(s string) (PathMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loop", "":
		return PathLoop, true
	case "pingpong", "ping-pong":
		return PathPingPong, true
	case "oneway", "one-way":
		return PathOneWay, true
	default:
		return PathLoop, false
	}
}

// PathState is the mutable patrol position, cloned into and out of save
// snapshots.
type PathState struct {
	WaypointIndex int
	MovingForward bool
	Waiting       bool
	WaitTimer     int
}

// BotAgent is a patrol NPC. It walks its waypoints, absorbs masks it lacks,
// freezes while the player is in contact, and pays gates with its current
// inventory state. Bots never toggle masks; everything they hold is active.
type BotAgent struct {
	ID         string
	Pos        core.Vec2
	Size       float64
	Speed      float64
	Waypoints  []core.Vec2
	Mode       PathMode
	DwellTicks int
	Inventory  *mask.BotInventory

	path         PathState
	stopped      bool
	dead         bool
	removed      bool
	despawnTimer int
}

// NewBotAgent creates a patrol bot at the first waypoint.
func NewBotAgent(id string, waypoints []core.Vec2, mode PathMode, speed, size float64, dwellTicks int) *BotAgent {
	bot := &BotAgent{
		ID:         id,
		Size:       size,
		Speed:      speed,
		Waypoints:  waypoints,
		Mode:       mode,
		DwellTicks: dwellTicks,
		Inventory:  mask.NewBotInventory(),
		path:       PathState{MovingForward: true},
	}
	if len(waypoints) > 0 {
		bot.Pos = waypoints[0]
	}
	return bot
}

// Bounds returns the bot's collision box centered on its position.
func (bot *BotAgent) Bounds() core.RectF {
	return core.RectFAround(bot.Pos, bot.Size, bot.Size)
}

// Ref builds the entity reference gates and barrels hold for this bot.
func (bot *BotAgent) Ref() EntityRef {
	return EntityRef{ID: bot.ID, Kind: KindBot, Cap: bot.Inventory, Bot: bot.Inventory}
}

// State derives the agent's state for HUD and tests.
func (bot *BotAgent) State() BotState {
	if bot.stopped {
		return BotStoppedByPlayer
	}
	if bot.path.Waiting {
		return BotWaiting
	}
	return BotMoving
}

// Path returns a copy of the patrol state.
func (bot *BotAgent) Path() PathState { return bot.path }

// Alive reports whether the bot still interacts with the world.
func (bot *BotAgent) Alive() bool { return !bot.dead }

// Removed reports whether the despawn delay has elapsed after death.
func (bot *BotAgent) Removed() bool { return bot.removed }

// Update advances the bot one tick: despawn countdown when dead, player
// contact handling, dwell timing and waypoint movement in that order.
func (bot *BotAgent) Update(player *Player, contactThreshold float64, solids []core.RectF, areaW, areaH float64) {
	if bot.dead {
		if !bot.removed {
			bot.despawnTimer--
			if bot.despawnTimer <= 0 {
				bot.removed = true
			}
		}
		return
	}

	if bot.stopped {
		if player == nil || bot.Pos.DistanceTo(player.Pos) > contactThreshold {
			bot.stopped = false
		}
		return
	}
	if player != nil && bot.Bounds().Intersects(player.Bounds()) {
		bot.stopped = true
		return
	}

	if bot.path.Waiting {
		bot.path.WaitTimer--
		if bot.path.WaitTimer <= 0 {
			bot.path.Waiting = false
			bot.advance()
		}
		return
	}

	if len(bot.Waypoints) == 0 {
		return
	}
	target := bot.Waypoints[bot.path.WaypointIndex]
	to := target.Sub(bot.Pos)
	dist := to.Len()

	// A one-way bot parked on its final waypoint stays put: zero velocity,
	// no index change, no dwell loop.
	if bot.Mode == PathOneWay && bot.path.WaypointIndex == len(bot.Waypoints)-1 && dist == 0 {
		return
	}

	if dist <= bot.Speed {
		bot.Pos = target
		bot.arrive()
		return
	}

	delta := to.Normalized().Scale(bot.Speed)
	bounds := moveWithCollision(bot.Bounds(), delta, solids)
	bounds = clampToArea(bounds, areaW, areaH)
	bot.Pos = bounds.Center()
}

// arrive handles reaching the current waypoint.
func (bot *BotAgent) arrive() {
	if bot.Mode == PathOneWay && bot.path.WaypointIndex == len(bot.Waypoints)-1 {
		return
	}
	if bot.DwellTicks > 0 {
		bot.path.Waiting = true
		bot.path.WaitTimer = bot.DwellTicks
		return
	}
	bot.advance()
}

// advance steps the waypoint index per path mode.
func (bot *BotAgent) advance() {
	n := len(bot.Waypoints)
	if n < 2 {
		return
	}
	switch bot.Mode {
	case PathLoop:
		bot.path.WaypointIndex = (bot.path.WaypointIndex + 1) % n
	case PathPingPong:
		if bot.path.MovingForward {
			if bot.path.WaypointIndex == n-1 {
				bot.path.MovingForward = false
				bot.path.WaypointIndex--
			} else {
				bot.path.WaypointIndex++
			}
		} else {
			if bot.path.WaypointIndex == 0 {
				bot.path.MovingForward = true
				bot.path.WaypointIndex++
			} else {
				bot.path.WaypointIndex--
			}
		}
	case PathOneWay:
		if bot.path.WaypointIndex < n-1 {
			bot.path.WaypointIndex++
		}
	}
}

// OnExploded marks the bot dead, empties its inventory and starts the
// despawn delay. The dropped colors are returned for the world to scatter;
// repeated calls are no-ops.
func (bot *BotAgent) OnExploded(despawnTicks int) []hue.Color {
	if bot.dead {
		return nil
	}
	bot.dead = true
	bot.stopped = false
	bot.despawnTimer = despawnTicks
	return bot.Inventory.DropAllMasks()
}
