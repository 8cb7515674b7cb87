package main

import (
	"fmt"
	"strings"

	"github.com/mash-project/hspace/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set repository configuration values.

Usage:
  hspace config                                  # Show all config
  hspace config clustering-file                  # Get specific value
  hspace config clustering-file results/rv.gexf  # Set value

Keys:
  clustering-file  GEXF clustering result (relative to the repository root or absolute)
  mixmod-file      MIXMOD cluster table (relative to the repository root or absolute)
  script-url       Cytoscape.js location used by 'hspace viz'

The viewer name and default toggles live in the global config
(~/.config/hspace/config.yml).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			for _, key := range config.ValidKeys {
				value, _ := cfg.Get(key)
				fmt.Printf("%-16s %s\n", strings.ReplaceAll(key, "_", "-")+":", value)
			}
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", args[0], value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (clustering-file, Clustering_File) to
// the stored form (clustering_file).
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "-", "_")
}
