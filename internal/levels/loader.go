// Package levels provides level loading for Breaking Hue: the embedded
// campaign plus optional user level files. This package depends on world but
// world does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doronn/ggj2026-sub000/internal/levels/formats"
	"github.com/doronn/ggj2026-sub000/internal/world"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID   string
	Name string
	Hint string
	Def  world.Def

	// FilePath is empty for embedded campaign levels.
	FilePath string
}

// Builtin returns the embedded campaign levels sorted by ID. The campaign is
// ordered by its numeric ID prefixes.
func Builtin() ([]Level, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded campaign: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: reading embedded %s: %w", e.Name(), err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: embedded %s: %w", e.Name(), err)
		}
		levels = append(levels, Level{
			ID:   parsed.ID,
			Name: parsed.Name,
			Hint: parsed.Hint,
			Def:  parsed.Def,
		})
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a level loader over a directory tree.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering; files that fail to
// parse are skipped so one broken download does not hide the rest.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Hint:     parsed.Hint,
		Def:      parsed.Def,
		FilePath: path,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Catalog is the merged, ID-ordered level set the game runs: the embedded
// campaign plus any user levels. A user level sharing an ID with a campaign
// level replaces it.
type Catalog struct {
	levels []Level
}

// NewCatalog builds the catalog. customDir may be empty or missing; only a
// present-but-unreadable directory is an error.
func NewCatalog(customDir string) (*Catalog, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(builtin))
	levels := make([]Level, len(builtin))
	copy(levels, builtin)
	for i, lvl := range levels {
		byID[lvl.ID] = i
	}

	if customDir != "" {
		if _, err := os.Stat(customDir); err == nil {
			custom, err := NewLoader(customDir).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, lvl := range custom {
				if i, ok := byID[lvl.ID]; ok {
					levels[i] = lvl
					continue
				}
				byID[lvl.ID] = len(levels)
				levels = append(levels, lvl)
			}
		}
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return &Catalog{levels: levels}, nil
}

// NewCatalogFrom builds a catalog over an explicit level set, bypassing the
// embedded campaign and the filesystem.
func NewCatalogFrom(lvls []Level) *Catalog {
	sorted := make([]Level, len(lvls))
	copy(sorted, lvls)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Catalog{levels: sorted}
}

// All returns every level in campaign order.
func (c *Catalog) All() []Level { return c.levels }

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.levels) }

// IDs returns all level IDs in campaign order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.levels))
	for i, lvl := range c.levels {
		ids[i] = lvl.ID
	}
	return ids
}

// ByID returns the level with the given ID.
func (c *Catalog) ByID(id string) (Level, bool) {
	for _, lvl := range c.levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

// First returns the opening campaign level.
func (c *Catalog) First() (Level, bool) {
	if len(c.levels) == 0 {
		return Level{}, false
	}
	return c.levels[0], true
}

// Next returns the level after the given one in campaign order, used when
// the player reaches a portal.
func (c *Catalog) Next(id string) (Level, bool) {
	for i, lvl := range c.levels {
		if lvl.ID == id && i+1 < len(c.levels) {
			return c.levels[i+1], true
		}
	}
	return Level{}, false
}
