package game

import (
	"github.com/doronn/ggj2026-sub000/internal/world"
)

// FlowState labels where the shell is in its run, for saves and tests.
type FlowState string

const (
	FlowPlaying    FlowState = "playing"
	FlowLevelClear FlowState = "level_clear"
	FlowWon        FlowState = "won"
	FlowPaused     FlowState = "paused"
	FlowFailed     FlowState = "failed"
	FlowTooSmall   FlowState = "too_small"
)

// Snapshot is the full run state: the level being played, the carried score
// and the wholesale world snapshot. It is the unit of persistence for
// checkpoint saves and the unit of comparison for determinism tests.
type Snapshot struct {
	LevelID string         `json:"levelId"`
	Score   int            `json:"score"`
	World   world.Snapshot `json:"world"`
}

// Snapshot captures the current run state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		LevelID: g.level.ID,
		Score:   g.score,
	}
	if g.world != nil {
		snap.World = g.world.Snapshot()
	}
	return snap
}

// Flow derives the current flow state.
func (g *Game) Flow() FlowState {
	switch {
	case g.failed != "":
		return FlowFailed
	case g.tooSmall:
		return FlowTooSmall
	case g.won:
		return FlowWon
	case g.paused:
		return FlowPaused
	case g.clearTicks > 0:
		return FlowLevelClear
	default:
		return FlowPlaying
	}
}
