package main

import (
	"fmt"
	"os"

	"github.com/mash-project/hspace/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hspace repository",
	Long: `Initialize a new hspace repository in the current directory.

Creates:
  .hspace/
  ├── heuristics.jsonl  # Empty catalog
  ├── config.json       # Default config
  └── cache/            # Empty directory (gitignored)

The clustering result (rvcluster.gexf) and MIXMOD table (mixmod.dat) are
looked up next to .hspace/ unless configured otherwise.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains an hspace repository")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .hspace directory: %v", err)
	}

	f, err := os.Create(config.HeuristicsPath(root))
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", config.HeuristicsFile, err)
	}
	f.Close()

	if err := config.NewConfig().Save(root); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.ConfigFile, err)
	}

	if humanOutput {
		fmt.Printf("Initialized hspace repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
