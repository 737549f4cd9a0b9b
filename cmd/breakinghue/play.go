package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doronn/ggj2026-sub000/internal/config"
	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/game"
	"github.com/doronn/ggj2026-sub000/internal/levels"
	"github.com/doronn/ggj2026-sub000/internal/platform/tui"
	"github.com/doronn/ggj2026-sub000/internal/storage"
	"github.com/doronn/ggj2026-sub000/internal/world"
)

var (
	flagResume bool
	flagTheme  string
)

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play Breaking Hue",
	Long: `Play the campaign. Without arguments this opens the level picker menu;
with a level ID it jumps straight into that level. --resume restores the
latest checkpoint save.

Controls:
  WASD/Arrows  - Move
  1/2/3        - Toggle mask slot
  X            - Deactivate all masks
  G            - Drop first active mask
  P            - Pause
  R            - Restart (after the campaign ends)
  Q/Ctrl+C     - Quit

Examples:
  breakinghue play
  breakinghue play 03-powder-keg
  breakinghue play --resume
  breakinghue play --seed 42 01-first-light
  breakinghue play --config ./my-tuning.yaml --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the latest checkpoint save")
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")
}

func runPlay(cmd *cobra.Command, args []string) {
	tui.SetTheme(tui.ThemeByName(flagTheme))

	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	tuning := gameCfg.ToTuning()

	catalog, err := levels.NewCatalog(flagLevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open records storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var runErr error
	switch {
	case flagResume:
		runErr = playResume(catalog, tuning, store, cfg, args)
	case len(args) == 1:
		runErr = playLevel(catalog, tuning, store, cfg, args[0])
	default:
		runErr = playMenuLoop(catalog, tuning, store, cfg)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// playLevel runs a single level picked on the command line.
func playLevel(catalog *levels.Catalog, tuning world.Tuning, store *storage.Store, cfg core.RuntimeConfig, levelID string) error {
	if _, ok := catalog.ByID(levelID); !ok {
		return fmt.Errorf("unknown level %q; run 'breakinghue levels' to see the campaign", levelID)
	}

	g := game.New(catalog, tuning)
	g.StartAt(levelID)

	return tui.Run(g, store, cfg, nil)
}

// playResume restores the latest checkpoint save.
func playResume(catalog *levels.Catalog, tuning world.Tuning, store *storage.Store, cfg core.RuntimeConfig, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("--resume picks its own level; drop the level argument")
	}
	if store == nil {
		return fmt.Errorf("records database unavailable; nothing to resume")
	}

	snap, ok, err := store.LatestCheckpoint()
	if err != nil {
		return fmt.Errorf("loading checkpoint: %w", err)
	}
	if !ok {
		return fmt.Errorf("no checkpoint save found; reach a checkpoint pad first")
	}

	g := game.New(catalog, tuning)
	return tui.Run(g, store, cfg, &snap)
}

// playMenuLoop shows the level picker, runs the selection, and returns to the
// menu until the user quits.
func playMenuLoop(catalog *levels.Catalog, tuning world.Tuning, store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		menuResult, err := tui.RunMenu(catalog, store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsRecords {
			goBack, rErr := tui.RunRecords(catalog, store, cfg.ScreenW, cfg.ScreenH)
			if rErr != nil {
				return rErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from records
		}

		if menuResult.LevelID == "" {
			return nil
		}

		g := game.New(catalog, tuning)

		var resume *game.Snapshot
		if menuResult.Resume && store != nil {
			// A vanished save falls back to a fresh run of the same level.
			if snap, ok, lcErr := store.LoadCheckpoint(menuResult.LevelID); lcErr == nil && ok {
				resume = &snap
			}
		}
		if resume == nil {
			g.StartAt(menuResult.LevelID)
		}

		// Fresh seed for each run unless pinned with --seed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if runErr := tui.Run(g, store, cfg, resume); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}

		// Loop back to menu
	}
}
