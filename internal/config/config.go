// Package config provides YAML-based gameplay tuning for Breaking Hue.
package config

import (
	"github.com/doronn/ggj2026-sub000/internal/world"
)

// GameConfig contains every gameplay tuning knob. Values are world units and
// simulation ticks; the built-in levels are balanced for the defaults.
type GameConfig struct {
	Player   PlayerConfig  `yaml:"player"`
	Bots     BotConfig     `yaml:"bots"`
	Barriers BarrierConfig `yaml:"barriers"`
	Masks    MaskConfig    `yaml:"masks"`
}

// PlayerConfig defines player kinematics.
type PlayerConfig struct {
	Speed float64 `yaml:"speed"`
	Size  float64 `yaml:"size"`
}

// BotConfig defines patrol bot kinematics and lifecycle.
type BotConfig struct {
	Speed            float64 `yaml:"speed"`
	Size             float64 `yaml:"size"`
	ContactThreshold float64 `yaml:"contact_threshold"`
	DespawnTicks     int     `yaml:"despawn_ticks"`
}

// BarrierConfig defines gate and barrel trigger behavior.
type BarrierConfig struct {
	TriggerInflation float64 `yaml:"trigger_inflation"`
	PhaseRamp        float64 `yaml:"phase_ramp"`
}

// MaskConfig defines world mask parameters.
type MaskConfig struct {
	PickupSize        float64 `yaml:"pickup_size"`
	DropCooldownTicks int     `yaml:"drop_cooldown_ticks"`
	DropJitter        float64 `yaml:"drop_jitter"`
}

// ToTuning converts the configuration into the simulation's tuning block.
func (c GameConfig) ToTuning() world.Tuning {
	return world.Tuning{
		PlayerSpeed:       c.Player.Speed,
		PlayerSize:        c.Player.Size,
		BotSpeed:          c.Bots.Speed,
		BotSize:           c.Bots.Size,
		ContactThreshold:  c.Bots.ContactThreshold,
		TriggerInflation:  c.Barriers.TriggerInflation,
		PhaseRamp:         c.Barriers.PhaseRamp,
		PickupSize:        c.Masks.PickupSize,
		DropCooldownTicks: c.Masks.DropCooldownTicks,
		DropJitter:        c.Masks.DropJitter,
		BotDespawnTicks:   c.Bots.DespawnTicks,
	}
}
