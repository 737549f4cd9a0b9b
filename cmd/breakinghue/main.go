// breakinghue is a terminal puzzle game about mixing color masks to pass
// matching barrier gates.
//
// Usage:
//
//	breakinghue play              - Start with the level picker menu
//	breakinghue play <level-id>   - Play a specific level
//	breakinghue play --resume     - Resume the latest checkpoint save
//	breakinghue levels            - List campaign levels
//	breakinghue records           - Show completion records
//	breakinghue serve             - Start SSH server for remote play
//	breakinghue config            - Print the default gameplay tuning YAML
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.breakinghue/records.db)
//	--levels <dir>   - Merge custom level YAMLs over the built-in campaign
//	--config <path>  - Use a custom gameplay tuning YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLevelsDir string
	flagConfig    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakinghue",
	Short: "Breaking Hue - a color-mask puzzle in your terminal",
	Long: `Breaking Hue is a terminal puzzle game. Collect red, yellow and blue
masks, toggle them to mix secondary colors, and phase through the barrier
gates that match your active blend. Watch out for hazard barrels and
patrol bots.

Available commands:
  play     - Play the campaign (menu, a specific level, or --resume)
  levels   - List campaign levels
  records  - View completion records
  serve    - Start SSH server for remote play
  config   - Print the default gameplay tuning YAML

Examples:
  breakinghue play
  breakinghue play 03-powder-keg
  breakinghue play --resume
  breakinghue records 03-powder-keg
  breakinghue serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakinghue/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with custom level YAMLs")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay tuning YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
