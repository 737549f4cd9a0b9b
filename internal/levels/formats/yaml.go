// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
	"github.com/doronn/ggj2026-sub000/internal/world"
)

// YAMLLevel represents the YAML structure of a level file.
type YAMLLevel struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Hint        string           `yaml:"hint,omitempty"`
	Size        YAMLSize         `yaml:"size"`
	Player      YAMLPoint        `yaml:"player"`
	Portal      YAMLRect         `yaml:"portal"`
	Walls       []YAMLRect       `yaml:"walls,omitempty"`
	Masks       []YAMLMask       `yaml:"masks,omitempty"`
	Gates       []YAMLGate       `yaml:"gates,omitempty"`
	Barrels     []YAMLBarrel     `yaml:"barrels,omitempty"`
	Bots        []YAMLBot        `yaml:"bots,omitempty"`
	Checkpoints []YAMLCheckpoint `yaml:"checkpoints,omitempty"`
}

// YAMLSize represents the playable area dimensions in world units.
type YAMLSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLPoint is a position in world units.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLRect is a volume in world units, addressed by its top-left corner.
type YAMLRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLMask places a collectible mask.
type YAMLMask struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
}

// YAMLGate places a barrier gate over its solid volume.
type YAMLGate struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Color string  `yaml:"color"`
}

// YAMLBarrel places a hazard barrel.
type YAMLBarrel struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Color string  `yaml:"color"`
}

// YAMLBot places a patrol bot. Color is the bot's home color; speed zero
// means the tuning default.
type YAMLBot struct {
	ID    string      `yaml:"id"`
	Color string      `yaml:"color,omitempty"`
	Mode  string      `yaml:"mode,omitempty"`
	Speed float64     `yaml:"speed,omitempty"`
	Dwell int         `yaml:"dwell,omitempty"`
	Path  []YAMLPoint `yaml:"path"`
}

// YAMLCheckpoint places a respawn checkpoint.
type YAMLCheckpoint struct {
	ID string  `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	W  float64 `yaml:"w"`
	H  float64 `yaml:"h"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID   string
	Name string
	Hint string
	Def  world.Def
}

// ParseYAML parses a YAML level file into a typed definition. Unknown colors
// and path modes are errors naming the offending entity; geometric problems
// are left to the world constructor.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	def := world.Def{
		Width:       yl.Size.W,
		Height:      yl.Size.H,
		PlayerSpawn: core.Vec2{X: yl.Player.X, Y: yl.Player.Y},
		Portal:      core.NewRectF(yl.Portal.X, yl.Portal.Y, yl.Portal.W, yl.Portal.H),
	}

	for _, w := range yl.Walls {
		def.Walls = append(def.Walls, core.NewRectF(w.X, w.Y, w.W, w.H))
	}

	for _, m := range yl.Masks {
		c, ok := hue.ParseColor(m.Color)
		if !ok {
			return Level{}, fmt.Errorf("mask %q: unknown color %q", m.ID, m.Color)
		}
		def.Pickups = append(def.Pickups, world.PickupDef{
			ID:    m.ID,
			Pos:   core.Vec2{X: m.X, Y: m.Y},
			Color: c,
		})
	}

	for _, g := range yl.Gates {
		c, ok := hue.ParseColor(g.Color)
		if !ok {
			return Level{}, fmt.Errorf("gate %q: unknown color %q", g.ID, g.Color)
		}
		def.Gates = append(def.Gates, world.GateDef{
			ID:    g.ID,
			Rect:  core.NewRectF(g.X, g.Y, g.W, g.H),
			Color: c,
		})
	}

	for _, b := range yl.Barrels {
		c, ok := hue.ParseColor(b.Color)
		if !ok {
			return Level{}, fmt.Errorf("barrel %q: unknown color %q", b.ID, b.Color)
		}
		def.Barrels = append(def.Barrels, world.BarrelDef{
			ID:    b.ID,
			Rect:  core.NewRectF(b.X, b.Y, b.W, b.H),
			Color: c,
		})
	}

	for _, b := range yl.Bots {
		home := hue.None
		if b.Color != "" {
			c, ok := hue.ParseColor(b.Color)
			if !ok {
				return Level{}, fmt.Errorf("bot %q: unknown color %q", b.ID, b.Color)
			}
			home = c
		}
		mode, ok := world.ParsePathMode(b.Mode)
		if !ok {
			return Level{}, fmt.Errorf("bot %q: unknown path mode %q", b.ID, b.Mode)
		}
		var waypoints []core.Vec2
		for _, p := range b.Path {
			waypoints = append(waypoints, core.Vec2{X: p.X, Y: p.Y})
		}
		def.Bots = append(def.Bots, world.BotDef{
			ID:         b.ID,
			Waypoints:  waypoints,
			Mode:       mode,
			Speed:      b.Speed,
			DwellTicks: b.Dwell,
			HomeColor:  home,
		})
	}

	for _, c := range yl.Checkpoints {
		def.Checkpoints = append(def.Checkpoints, world.CheckpointDef{
			ID:   c.ID,
			Rect: core.NewRectF(c.X, c.Y, c.W, c.H),
		})
	}

	return Level{ID: yl.ID, Name: yl.Name, Hint: yl.Hint, Def: def}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
