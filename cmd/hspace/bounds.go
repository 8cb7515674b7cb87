package main

import (
	"fmt"

	"github.com/mash-project/hspace/internal/viz"
	"github.com/spf13/cobra"
)

var boundsFlags viewFlags

func init() {
	addViewFlags(boundsCmd, &boundsFlags)
	rootCmd.AddCommand(boundsCmd)
}

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Show the pan range of the view",
	Long: `Show the pan range of a viewer's clustering view: the bounding box of
all visible heuristics, widened by half its span on each side.`,
	Args: cobra.NoArgs,
	RunE: runBounds,
}

// BoundsResult is the response for the bounds command.
type BoundsResult struct {
	Nodes  int        `json:"nodes"`
	Raw    viz.Bounds `json:"raw"`
	Padded viz.Bounds `json:"padded"`
}

func runBounds(cmd *cobra.Command, args []string) error {
	doc, _ := mustLoadView(&boundsFlags)
	session := mustNewSession(doc)

	var tracker viz.Tracker
	for _, n := range session.Nodes() {
		tracker.Observe(n.Position.X, n.Position.Y)
	}
	raw, err := tracker.Raw()
	if err != nil {
		exitWithError(ExitDataError, "computing bounding box: %v", err)
	}

	result := BoundsResult{
		Nodes:  tracker.Observed(),
		Raw:    raw,
		Padded: session.Bounds(),
	}

	if humanOutput {
		fmt.Printf("Heuristics: %d\n", result.Nodes)
		fmt.Printf("x: %s -> %s\n", result.Raw.X, result.Padded.X)
		fmt.Printf("y: %s -> %s\n", result.Raw.Y, result.Padded.Y)
	} else {
		outputJSON(result)
	}
	return nil
}
