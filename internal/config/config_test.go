package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	// The shipped YAML and the hardcoded fallback must agree.
	var cfg GameConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("parsing embedded default: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded config = %+v, expected the hardcoded defaults %+v",
			cfg, DefaultGameConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	doc := []byte("player:\n  speed: 0.5\n  size: 0.7\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.Speed != 0.5 || cfg.Player.Size != 0.7 {
		t.Errorf("player = %+v, expected speed 0.5 size 0.7", cfg.Player)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestToTuning(t *testing.T) {
	tuning := DefaultGameConfig().ToTuning()
	if tuning.PlayerSpeed != 0.25 || tuning.DropCooldownTicks != 45 || tuning.BotDespawnTicks != 30 {
		t.Errorf("tuning = %+v, unexpected mapping", tuning)
	}
}
