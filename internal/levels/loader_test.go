package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doronn/ggj2026-sub000/internal/hue"
	"github.com/doronn/ggj2026-sub000/internal/levels/formats"
	"github.com/doronn/ggj2026-sub000/internal/world"
)

func TestBuiltinCampaign(t *testing.T) {
	levels, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if len(levels) != 5 {
		t.Fatalf("campaign size = %d, expected 5", len(levels))
	}

	wantIDs := []string{"01-first-light", "02-two-tone", "03-powder-keg", "04-the-courier", "05-black-mirror"}
	for i, want := range wantIDs {
		if levels[i].ID != want {
			t.Errorf("level %d id = %q, expected %q", i, levels[i].ID, want)
		}
		if levels[i].Name == "" {
			t.Errorf("level %q has no name", levels[i].ID)
		}
	}

	// Every campaign level must survive world construction: broken geometry
	// or colorless hazards in shipped content fail here, not in front of a
	// player.
	for _, lvl := range levels {
		if _, err := world.New(lvl.Def, world.DefaultTuning(), 0); err != nil {
			t.Errorf("level %q does not build: %v", lvl.ID, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
id: test-level
name: Test Level
hint: Try the thing.
size: { w: 20, h: 10 }
player: { x: 2, y: 5 }
portal: { x: 18, y: 4, w: 1, h: 2 }
walls:
  - { x: 10, y: 0, w: 1, h: 4 }
gates:
  - { id: g-1, x: 10, y: 4, w: 1, h: 3, color: purple }
barrels:
  - { id: b-1, x: 14, y: 4, w: 1, h: 1, color: red }
masks:
  - { id: m-1, x: 5, y: 5, color: blue }
bots:
  - id: bot-1
    color: green
    mode: oneway
    speed: 0.2
    dwell: 12
    path:
      - { x: 4, y: 2 }
      - { x: 16, y: 2 }
checkpoints:
  - { id: cp-1, x: 12, y: 4, w: 2, h: 2 }
`)
	lvl, err := formats.ParseYAML(doc)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if lvl.ID != "test-level" || lvl.Name != "Test Level" || lvl.Hint != "Try the thing." {
		t.Errorf("header = %q/%q/%q, unexpected", lvl.ID, lvl.Name, lvl.Hint)
	}
	if lvl.Def.Width != 20 || lvl.Def.Height != 10 {
		t.Errorf("size = %gx%g, expected 20x10", lvl.Def.Width, lvl.Def.Height)
	}
	if len(lvl.Def.Gates) != 1 || lvl.Def.Gates[0].Color != hue.Purple {
		t.Errorf("gates = %+v, expected one purple", lvl.Def.Gates)
	}
	if len(lvl.Def.Barrels) != 1 || lvl.Def.Barrels[0].Color != hue.Red {
		t.Errorf("barrels = %+v, expected one red", lvl.Def.Barrels)
	}
	if len(lvl.Def.Pickups) != 1 || lvl.Def.Pickups[0].Color != hue.Blue {
		t.Errorf("pickups = %+v, expected one blue", lvl.Def.Pickups)
	}
	if len(lvl.Def.Bots) != 1 {
		t.Fatalf("bots = %+v, expected one", lvl.Def.Bots)
	}
	bot := lvl.Def.Bots[0]
	if bot.HomeColor != hue.Green || bot.Mode != world.PathOneWay || bot.Speed != 0.2 || bot.DwellTicks != 12 {
		t.Errorf("bot = %+v, unexpected", bot)
	}
	if len(bot.Waypoints) != 2 || bot.Waypoints[1].X != 16 {
		t.Errorf("waypoints = %+v, expected two ending at x=16", bot.Waypoints)
	}

	// A bot without a mode defaults to loop; without a color it has no home.
	doc2 := []byte(`
id: modeless
size: { w: 10, h: 10 }
player: { x: 2, y: 2 }
portal: { x: 8, y: 8, w: 1, h: 1 }
bots:
  - id: bot-1
    path: [{ x: 2, y: 5 }, { x: 8, y: 5 }]
`)
	lvl2, err := formats.ParseYAML(doc2)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if lvl2.Def.Bots[0].Mode != world.PathLoop || lvl2.Def.Bots[0].HomeColor != hue.None {
		t.Errorf("bot defaults = %+v, expected loop with no home", lvl2.Def.Bots[0])
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", `
name: nameless
size: { w: 10, h: 10 }
player: { x: 2, y: 2 }
portal: { x: 8, y: 8, w: 1, h: 1 }
`},
		{"unknown gate color", `
id: bad-gate
size: { w: 10, h: 10 }
player: { x: 2, y: 2 }
portal: { x: 8, y: 8, w: 1, h: 1 }
gates:
  - { id: g-1, x: 5, y: 0, w: 1, h: 10, color: mauve }
`},
		{"unknown mask color", `
id: bad-mask
size: { w: 10, h: 10 }
player: { x: 2, y: 2 }
portal: { x: 8, y: 8, w: 1, h: 1 }
masks:
  - { id: m-1, x: 5, y: 5, color: chartreuse }
`},
		{"unknown path mode", `
id: bad-bot
size: { w: 10, h: 10 }
player: { x: 2, y: 2 }
portal: { x: 8, y: 8, w: 1, h: 1 }
bots:
  - { id: bot-1, mode: zigzag, path: [{ x: 2, y: 5 }, { x: 8, y: 5 }] }
`},
		{"not yaml", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formats.ParseYAML([]byte(tt.doc)); err == nil {
				t.Error("ParseYAML() succeeded, expected an error")
			}
		})
	}
}

func writeLevel(t *testing.T, dir, name, doc string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func customDoc(id string) string {
	return "id: " + id + "\n" +
		"name: Custom " + id + "\n" +
		"size: { w: 10, h: 10 }\n" +
		"player: { x: 2, y: 2 }\n" +
		"portal: { x: 8, y: 8, w: 1, h: 1 }\n"
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", customDoc("zz-second"))
	writeLevel(t, dir, "a.yml", customDoc("aa-first"))
	writeLevel(t, dir, "broken.yaml", "gates: {{{")
	writeLevel(t, dir, "notes.txt", "not a level")

	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("loaded %d levels, expected 2 (broken and non-level files skipped)", len(levels))
	}
	if levels[0].ID != "aa-first" || levels[1].ID != "zz-second" {
		t.Errorf("order = %q, %q, expected sorted by id", levels[0].ID, levels[1].ID)
	}
	if levels[0].FilePath == "" {
		t.Error("file-loaded level should record its path")
	}
}

func TestCatalogProgressionAndOverride(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "extra.yaml", customDoc("99-extra"))
	writeLevel(t, dir, "override.yaml", customDoc("01-first-light"))

	cat, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if cat.Len() != 6 {
		t.Fatalf("catalog size = %d, expected 5 builtin + 1 extra", cat.Len())
	}

	first, ok := cat.First()
	if !ok || first.ID != "01-first-light" {
		t.Fatalf("first = %+v, expected the campaign opener", first)
	}
	// The user file with the same ID replaced the embedded one.
	if first.FilePath == "" {
		t.Error("overridden level should come from the user file")
	}

	next, ok := cat.Next("01-first-light")
	if !ok || next.ID != "02-two-tone" {
		t.Errorf("next after opener = %+v, expected 02-two-tone", next)
	}
	next, ok = cat.Next("05-black-mirror")
	if !ok || next.ID != "99-extra" {
		t.Errorf("next after campaign end = %+v, expected the extra level", next)
	}
	if _, ok := cat.Next("99-extra"); ok {
		t.Error("the last level has no next")
	}
	if _, ok := cat.ByID("nope"); ok {
		t.Error("ByID on a missing level should report false")
	}
}

func TestCatalogMissingCustomDir(t *testing.T) {
	cat, err := NewCatalog(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if cat.Len() != 5 {
		t.Errorf("catalog size = %d, expected the builtin campaign only", cat.Len())
	}
}
