package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doronn/ggj2026-sub000/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default gameplay tuning YAML",
	Long: `Prints the default gameplay tuning to stdout. Redirect it to a file to
start a custom configuration:

  breakinghue config > ~/.breakinghue/config.yaml

Edited values there apply to every run; --config <path> overrides the file
for a single invocation.`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	if _, err := os.Stdout.Write(config.GetDefaultYAML()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
}
