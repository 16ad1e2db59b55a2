// Package main implements random-walk-note, which opens random notes from an
// Obsidian vault without repeating one until every note has been shown.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "random-walk-note [vault-path]",
		Short: "Open a random note from an Obsidian vault",
		Long: `random-walk-note opens a random note from an Obsidian vault.

Notes already shown are avoided until every candidate has been opened
once, then the review cycle starts over. Folders can be excluded and
candidates restricted to a single tag; both are saved in the vault's
plugin settings (see the config command).`,
		Example: `random-walk-note ~/obsidian
random-walk-note ~/obsidian --count 3 --no-launch
random-walk-note serve ~/obsidian`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWalk,
	}

	cmd.PersistentFlags().String("config", os.Getenv("RANDOM_WALK_CONFIG"), "path to a YAML config file")
	cmd.PersistentFlags().Bool("no-launch", false, "print obsidian:// URIs instead of opening them")
	cmd.Flags().IntP("count", "n", 1, "number of notes to open in a row")
	cmd.Flags().String("tag", "", "tag filter for this run (default: saved setting)")
	cmd.Flags().String("exclude", "", "comma-separated excluded folders for this run (default: saved setting)")

	cmd.AddCommand(newServeCmd(), newConfigCmd(), newTagsCmd())

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}
