// Package main provides the hspace CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so Cobra errors (unknown flags, bad args) are printed here.
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hspace",
	Short: "Explore the clustering of uploaded heuristics",
	Long: `hspace lays out uploaded heuristics by their clustering result and
lets each user see where their own heuristics fall.

Core features:
  - Heuristic catalog (author/slug names, public or private)
  - Per-user restriction of clustering results, ranked by distance to a reference
  - Filtered node views and pan ranges
  - Interactive HTML rendering with Cytoscape.js

The catalog is stored in git-versionable JSONL with an ephemeral SQLite cache.
All commands output JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// HSPACE_USER may come from a .env file in the working directory.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks global config repo_path first, then current working directory.
func getStartingDirectory() (string, int) {
	if root := config.GetRepoPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
