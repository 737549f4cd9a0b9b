package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doronn/ggj2026-sub000/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the campaign levels in play order. Custom levels from --levels
are merged in; a custom level sharing a built-in ID replaces it.`,
	Run: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	catalog, err := levels.NewCatalog(flagLevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	all := catalog.All()
	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range all {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	// Print header
	fmt.Printf("  %3s  %-*s  %-7s  %s\n", "#", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %3s  %-*s  %-7s  %s\n", "---", maxIDLen, "--", "----", "----")

	// Print levels
	for i, lvl := range all {
		size := fmt.Sprintf("%.0fx%.0f", lvl.Def.Width, lvl.Def.Height)
		fmt.Printf("  %3d  %-*s  %-7s  %s\n", i+1, maxIDLen, lvl.ID, size, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'breakinghue play <id>' to play a level.")
}
