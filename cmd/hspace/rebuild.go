package main

import (
	"fmt"

	"github.com/mash-project/hspace/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from source data",
	Long: `Rebuild the SQLite query database from heuristics.jsonl.

Use this after pulling changes from git or if the database becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string `json:"status"`
	Heuristics int    `json:"heuristics"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.HeuristicsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding heuristics database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query database with %d heuristics\n", count)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Heuristics: count})
	}
	return nil
}
