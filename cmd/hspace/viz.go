package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mash-project/hspace/internal/viz"
	"github.com/spf13/cobra"
)

var (
	vizFlags     viewFlags
	vizOutput    string
	vizTitle     string
	vizScriptURL string
)

func init() {
	addViewFlags(vizCmd, &vizFlags)
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page title")
	vizCmd.Flags().StringVar(&vizScriptURL, "script-url", "", "Cytoscape.js location, e.g. a local copy for offline use")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate the heuristics space visualization",
	Long: `Generate an interactive HTML page of the clustering view.

Heuristics are placed at their layout positions. Your heuristics have a
gray outline, private ones are drawn larger. The page has checkboxes for
names, the closest heuristics and, when the viewer is known, each
visibility category.

Examples:
  hspace viz --user alice > space.html
  hspace viz --user alice --reference alice/haar -o space.html
  hspace viz --script-url ./cytoscape.min.js -o space.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	doc, user := mustLoadView(&vizFlags)

	session, err := viz.NewSession(doc.VizNodes())
	if err != nil && !errors.Is(err, viz.ErrEmptyRange) {
		return fmt.Errorf("building view: %w", err)
	}

	opts := viz.DefaultOptions()
	opts.CategoryToggles = user != ""
	if vizTitle != "" {
		opts.Title = vizTitle
	}
	opts.ScriptURL = vizScriptURL
	if opts.ScriptURL == "" && vizFlags.input == "" {
		opts.ScriptURL = mustLoadConfig(mustFindRepository()).ScriptURL
	}

	html, err := viz.GenerateHTML(session, opts)
	if err != nil {
		exitWithError(ExitError, "generating HTML: %v", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}

	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		fmt.Printf("Wrote visualization to %s\n", vizOutput)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: vizOutput})
	}
	return nil
}
