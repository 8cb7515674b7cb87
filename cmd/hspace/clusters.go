package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/heuristic"
	"github.com/mash-project/hspace/internal/mixmod"
	"github.com/spf13/cobra"
)

var clustersFile string

func init() {
	clustersCmd.Flags().StringVarP(&clustersFile, "file", "f", "", "MIXMOD table (default: mixmod_file from config)")
	rootCmd.AddCommand(clustersCmd)
}

var clustersCmd = &cobra.Command{
	Use:   "clusters [author/slug]",
	Short: "Show the MIXMOD cluster table",
	Long: `Show the heuristics of each MIXMOD cluster, ordered by cluster id.
With a heuristic name, show only the cluster containing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClusters,
}

// ClustersResult is the response for the clusters command.
type ClustersResult struct {
	Clusters []mixmod.Cluster `json:"clusters"`
	Count    int              `json:"count"`
}

func runClusters(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(clustersFile)
	if path == "" {
		repoRoot := mustFindRepository()
		cfg := mustLoadConfig(repoRoot)
		path = cfg.MixmodPath(repoRoot)
		if path == "" {
			exitWithError(ExitConfigError, "mixmod_file is not configured\n\nSet it with 'hspace config mixmod_file <path>'.")
		}
	}

	clusters, err := mixmod.ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			exitWithError(ExitConfigError, "mixmod table not found: %s", path)
		}
		exitWithError(ExitDataError, "reading mixmod table: %v", err)
	}

	if len(args) == 1 {
		name := heuristic.Normalize(args[0])
		id, ok := mixmod.Assignments(clusters)[name]
		if !ok {
			exitWithError(ExitError, "%v: %s is in no cluster", heuristic.ErrHeuristicNotFound, name)
		}
		for _, c := range clusters {
			if c.ID == id {
				clusters = []mixmod.Cluster{c}
				break
			}
		}
	}

	if humanOutput {
		for _, c := range clusters {
			fmt.Printf("Cluster %d (%d)\n", c.ID, len(c.Heuristics))
			fmt.Printf("  %s\n", strings.Join(c.Heuristics, "\n  "))
		}
	} else {
		outputJSON(ClustersResult{Clusters: clusters, Count: len(clusters)})
	}
	return nil
}
