package main

import (
	"fmt"

	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/viz"
	"github.com/spf13/cobra"
)

var nodesFlags viewFlags

func init() {
	addViewFlags(nodesCmd, &nodesFlags)
	addToggleFlags(nodesCmd)
	rootCmd.AddCommand(nodesCmd)
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List the heuristics shown for a set of toggles",
	Long: `List the heuristics a viewer would see with the given toggles.

A toggle flag that is not given does not filter; the global config may
set defaults under "toggles". --closest keeps the 11 heuristics nearest
to the reference, in order of distance.

Examples:
  hspace nodes --user alice
  hspace nodes --user alice --public-shared=false
  hspace nodes --user alice --reference alice/haar --closest`,
	Args: cobra.NoArgs,
	RunE: runNodes,
}

// NodesResult is the response for the nodes command.
type NodesResult struct {
	User       string               `json:"user,omitempty"`
	Toggles    viz.Toggles          `json:"toggles"`
	Nodes      []viz.Node           `json:"nodes"`
	Count      int                  `json:"count"`
	Total      int                  `json:"total"`
	Categories map[viz.Category]int `json:"categories"` // over all loaded nodes
}

func runNodes(cmd *cobra.Command, args []string) error {
	doc, user := mustLoadView(&nodesFlags)
	session := mustNewSession(doc)

	toggles := togglesFromFlags(cmd.Flags(), config.GetDefaultToggles())
	nodes := session.View(toggles)

	if humanOutput {
		printNodesHuman(nodes, session.Len(), session.CategoryCounts())
	} else {
		outputJSON(NodesResult{
			User:       user,
			Toggles:    toggles,
			Nodes:      nodes,
			Count:      len(nodes),
			Total:      session.Len(),
			Categories: session.CategoryCounts(),
		})
	}
	return nil
}

func printNodesHuman(nodes []viz.Node, total int, counts map[viz.Category]int) {
	if len(nodes) == 0 {
		fmt.Println("No heuristics shown.")
	}
	for _, n := range nodes {
		dist := ""
		if n.Distance != nil {
			dist = fmt.Sprintf("%.4g", *n.Distance)
		}
		fmt.Printf("%-40s %-14s (%8.3f, %8.3f) %s\n", n.Name, n.Category, n.Position.X, n.Position.Y, dist)
	}
	fmt.Printf("\n%d of %d heuristic(s) shown\n", len(nodes), total)
	for _, c := range []viz.Category{viz.CategoryPublicShared, viz.CategoryUserPublic, viz.CategoryUserPrivate} {
		fmt.Printf("  %-14s %d\n", c, counts[c])
	}
}
