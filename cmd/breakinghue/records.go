package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doronn/ggj2026-sub000/internal/levels"
	"github.com/doronn/ggj2026-sub000/internal/storage"
)

var flagClear bool

var recordsCmd = &cobra.Command{
	Use:   "records [level-id]",
	Short: "Show completion records",
	Long: `Display completion records. Without arguments shows per-level stats and
the most recent completions; with a level ID shows that level's top runs.

Examples:
  breakinghue records
  breakinghue records 03-powder-keg
  breakinghue records 03-powder-keg --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the given level's records")
}

func runRecords(cmd *cobra.Command, args []string) {
	catalog, err := levels.NewCatalog(flagLevelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		runLevelRecords(store, catalog, args[0])
		return
	}

	if flagClear {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a level ID")
		os.Exit(1)
	}

	runOverview(store, catalog)
}

// runLevelRecords prints (or clears) one level's records.
func runLevelRecords(store *storage.Store, catalog *levels.Catalog, levelID string) {
	lvl, ok := catalog.ByID(levelID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'breakinghue levels' to see the campaign.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearCompletions(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing records: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Records cleared for %s.\n", lvl.Name)
		return
	}

	entries, err := store.TopCompletions(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Records - %s\n", lvl.Name)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'breakinghue play %s' to set the first record!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %s\n", "Rank", "Score", "Ticks", "Deaths", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %s\n", "----", "-----", "-----", "------", "----")

	// Print records
	for i, e := range entries {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8d  %-7d  %s\n", i+1, e.Score, e.Ticks, e.Deaths, dateStr)
	}

	fmt.Println()
	if best, bErr := store.BestTicks(levelID); bErr == nil && best > 0 {
		fmt.Printf("Fastest clear: %d ticks\n", best)
	}
}

// runOverview prints campaign-wide stats plus the latest completions.
func runOverview(store *storage.Store, catalog *levels.Catalog) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Campaign records:")
	fmt.Println()

	maxNameLen := 5 // "Level" header
	for _, lvl := range catalog.All() {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %-7s  %s\n", maxNameLen, "Level", "Runs", "Best", "Ticks", "Last played")
	fmt.Printf("  %-*s  %-5s  %-6s  %-7s  %s\n", maxNameLen, "-----", "----", "----", "-----", "-----------")

	for _, lvl := range catalog.All() {
		s, ok := stats[lvl.ID]
		if !ok {
			fmt.Printf("  %-*s  %-5s  %-6s  %-7s  %s\n", maxNameLen, lvl.Name, "-", "-", "-", "-")
			continue
		}
		fmt.Printf("  %-*s  %-5d  %-6d  %-7d  %s\n",
			maxNameLen, lvl.Name, s.Runs, s.BestScore, s.BestTicks, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentCompletions(5)
	if err != nil || len(recent) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent completions:")
	for _, e := range recent {
		name := e.LevelID
		if lvl, ok := catalog.ByID(e.LevelID); ok {
			name = lvl.Name
		}
		fmt.Printf("  %s  %-*s  score %d\n", e.CreatedAt.Format("2006-01-02 15:04"), maxNameLen, name, e.Score)
	}
}
