package config

import (
	_ "embed"
)

//go:embed defaults/breakinghue.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default gameplay tuning, matching the
// embedded YAML. The hardcoded copy survives a corrupted embed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Player: PlayerConfig{
			Speed: 0.25,
			Size:  0.9,
		},
		Bots: BotConfig{
			Speed:            0.12,
			Size:             0.9,
			ContactThreshold: 1.5,
			DespawnTicks:     30,
		},
		Barriers: BarrierConfig{
			TriggerInflation: 0.2,
			PhaseRamp:        0.08,
		},
		Masks: MaskConfig{
			PickupSize:        0.8,
			DropCooldownTicks: 45,
			DropJitter:        0.35,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML, used by the config dump
// command so players can start a custom file from the real defaults.
func GetDefaultYAML() []byte {
	return defaultGameYAML
}
