package main

import (
	"fmt"
	"os"

	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/gexf"
	"github.com/mash-project/hspace/internal/heuristic"
	"github.com/spf13/cobra"
)

var (
	resultsOutput    string
	resultsUser      string
	resultsReference string
)

func init() {
	resultsCmd.Flags().StringVarP(&resultsOutput, "output", "o", "", "Output file path (default: stdout)")
	addRestrictFlags(resultsCmd, &resultsUser, &resultsReference)
	rootCmd.AddCommand(resultsCmd)
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Write the clustering result restricted to one user",
	Long: `Write the clustering result as GEXF, restricted to the heuristics the
user may see: every public heuristic plus the user's own ones. Edges are
dropped. Kept nodes carry public="true" and/or user="true", and with
--reference a dist attribute holding the squared distance to the
reference heuristic.

Examples:
  hspace results --user alice > alice.gexf
  hspace results --user alice --reference alice/haar -o alice.gexf`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

// ResultsResponse is the response for results written to a file.
type ResultsResponse struct {
	Status    string `json:"status"`
	Path      string `json:"path"`
	User      string `json:"user,omitempty"`
	Nodes     int    `json:"nodes"`
	Removed   int    `json:"removed"`
	Reference string `json:"reference,omitempty"`
}

func runResults(cmd *cobra.Command, args []string) error {
	user := heuristic.Normalize(config.ResolveUser(resultsUser))
	res := mustRestrict(user, resultsReference)

	if resultsReference != "" && res.Reference == "" {
		fmt.Fprintf(os.Stderr, "warning: reference %s is not in the clustering result; no distances written\n", resultsReference)
	}

	if resultsOutput == "" {
		if err := gexf.Write(os.Stdout, res.Document); err != nil {
			exitWithError(ExitError, "writing results: %v", err)
		}
		return nil
	}

	if err := gexf.WriteFile(resultsOutput, res.Document); err != nil {
		exitWithError(ExitError, "writing results: %v", err)
	}

	if humanOutput {
		fmt.Printf("Wrote %d heuristics to %s (%d hidden)\n", len(res.Document.Nodes), resultsOutput, res.Removed)
	} else {
		outputJSON(ResultsResponse{
			Status:    "written",
			Path:      resultsOutput,
			User:      user,
			Nodes:     len(res.Document.Nodes),
			Removed:   res.Removed,
			Reference: res.Reference,
		})
	}
	return nil
}
