package main

import (
	"fmt"
	"strings"

	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/heuristic"
	"github.com/mash-project/hspace/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(heuristicCmd)

	// heuristic add flags
	heuristicAddCmd.Flags().Bool("public", false, "Mark the heuristic as published")
	heuristicAddCmd.Flags().StringP("description", "d", "", "Description text")
	heuristicAddCmd.Flags().Bool("replace", false, "Replace an existing heuristic with the same name")
	heuristicCmd.AddCommand(heuristicAddCmd)

	heuristicCmd.AddCommand(heuristicGetCmd)

	// heuristic list flags
	heuristicListCmd.Flags().StringP("author", "a", "", "Only list heuristics by this author")
	heuristicListCmd.Flags().IntP("limit", "n", DefaultListLimit, "Maximum number of results (0 for all)")
	heuristicCmd.AddCommand(heuristicListCmd)

	// heuristic search flags
	heuristicSearchCmd.Flags().IntP("limit", "n", DefaultListLimit, "Maximum number of results")
	heuristicCmd.AddCommand(heuristicSearchCmd)
}

var heuristicCmd = &cobra.Command{
	Use:   "heuristic",
	Short: "Manage the heuristic catalog",
	Long:  `Commands for managing uploaded heuristics and their visibility.`,
}

// HeuristicAddResult is the response for the heuristic add command.
type HeuristicAddResult struct {
	Status    string              `json:"status"`
	Heuristic heuristic.Heuristic `json:"heuristic"`
}

// HeuristicListResult is the response for list and search commands.
type HeuristicListResult struct {
	Heuristics []heuristic.Heuristic `json:"heuristics"`
	Count      int                   `json:"count"`
}

var heuristicAddCmd = &cobra.Command{
	Use:   "add <author/slug>",
	Short: "Add a heuristic to the catalog",
	Long: `Add a heuristic to the catalog. The author is the part of the name
before the slash.

Examples:
  hspace heuristic add alice/haar-features --public
  hspace heuristic add alice/draft -d "work in progress"`,
	Args: cobra.ExactArgs(1),
	RunE: runHeuristicAdd,
}

func runHeuristicAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	public, _ := cmd.Flags().GetBool("public")
	description, _ := cmd.Flags().GetString("description")
	replace, _ := cmd.Flags().GetBool("replace")

	name := heuristic.Normalize(args[0])
	h := heuristic.Heuristic{
		Name:        name,
		Author:      heuristic.AuthorOf(name),
		Public:      public,
		Description: strings.TrimSpace(description),
	}
	if err := h.Validate(); err != nil {
		exitWithError(ExitDataError, "invalid heuristic: %v", err)
	}

	path := config.HeuristicsPath(repoRoot)
	hs, err := storage.ReadAll(path)
	if err != nil {
		exitWithError(ExitDataError, "reading heuristics: %v", err)
	}

	status, verb := "added", "Added"
	if _, found := storage.FindByName(hs, name); found {
		if !replace {
			exitWithError(ExitDataError, "%v: %s", heuristic.ErrDuplicateName, name)
		}
		hs, _ = storage.Upsert(hs, h)
		if err := storage.WriteAll(path, hs); err != nil {
			exitWithError(ExitError, "writing heuristics: %v", err)
		}
		status, verb = "replaced", "Replaced"
	} else if err := storage.Append(path, h); err != nil {
		exitWithError(ExitError, "writing heuristic: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	if _, err := db.RebuildFromJSONL(path); err != nil {
		exitWithError(ExitDataError, "updating index: %v", err)
	}

	if humanOutput {
		fmt.Printf("%s heuristic: %s (%s)\n", verb, h.Name, visibilityLabel(h.Public))
	} else {
		outputJSON(HeuristicAddResult{Status: status, Heuristic: h})
	}
	return nil
}

var heuristicGetCmd = &cobra.Command{
	Use:   "get <author/slug>",
	Short: "Get a single heuristic by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runHeuristicGet,
}

func runHeuristicGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	name := heuristic.Normalize(args[0])
	h, err := db.GetByName(name)
	if err != nil {
		exitWithError(ExitError, "getting heuristic: %v", err)
	}
	if h == nil {
		exitWithError(ExitError, "%v: %s", heuristic.ErrHeuristicNotFound, name)
	}

	if humanOutput {
		fmt.Println(h.Name)
		fmt.Printf("  Author:      %s\n", h.Author)
		fmt.Printf("  Visibility:  %s\n", visibilityLabel(h.Public))
		if h.Description != "" {
			fmt.Printf("  Description: %s\n", h.Description)
		}
	} else {
		outputJSON(h)
	}
	return nil
}

var heuristicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List heuristics in the catalog",
	Long: `List heuristics ordered by name.

Examples:
  hspace heuristic list
  hspace heuristic list --author alice --limit 0`,
	Args: cobra.NoArgs,
	RunE: runHeuristicList,
}

func runHeuristicList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	author, _ := cmd.Flags().GetString("author")
	limit, _ := cmd.Flags().GetInt("limit")

	hs, err := db.ListHeuristics(strings.ToLower(author), limit)
	if err != nil {
		exitWithError(ExitError, "listing heuristics: %v", err)
	}
	printHeuristics(hs)
	return nil
}

var heuristicSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over heuristic names and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHeuristicSearch,
}

func runHeuristicSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		exitWithError(ExitError, "--limit must be positive")
	}

	hs, err := db.Search(strings.Join(args, " "), limit)
	if err != nil {
		exitWithError(ExitError, "searching heuristics: %v", err)
	}
	printHeuristics(hs)
	return nil
}

func printHeuristics(hs []heuristic.Heuristic) {
	if hs == nil {
		hs = []heuristic.Heuristic{}
	}
	if !humanOutput {
		outputJSON(HeuristicListResult{Heuristics: hs, Count: len(hs)})
		return
	}

	if len(hs) == 0 {
		fmt.Println("No heuristics found.")
		return
	}
	for _, h := range hs {
		line := fmt.Sprintf("%-40s %-8s", h.Name, visibilityLabel(h.Public))
		if h.Description != "" {
			line += " " + truncateString(h.Description, ListDescriptionMaxLen)
		}
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("\n%d heuristic(s)\n", len(hs))
}

// ListDescriptionMaxLen bounds descriptions in list output.
const ListDescriptionMaxLen = 50

func visibilityLabel(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
