package main

import (
	"errors"
	"io/fs"

	"github.com/mash-project/hspace/internal/config"
	"github.com/mash-project/hspace/internal/gexf"
	"github.com/mash-project/hspace/internal/heuristic"
	"github.com/mash-project/hspace/internal/visibility"
	"github.com/mash-project/hspace/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Toggle flag names. A flag that is not given leaves its toggle absent.
const (
	flagPublicShared = "public-shared"
	flagUserPublic   = "user-public"
	flagUserPrivate  = "user-private"
	flagClosest      = "closest"
)

// viewFlags selects where view commands take their nodes from.
type viewFlags struct {
	input     string
	user      string
	reference string
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read an already restricted GEXF file instead of the repository clustering result")
	addRestrictFlags(cmd, &f.user, &f.reference)
}

func addRestrictFlags(cmd *cobra.Command, user, reference *string) {
	cmd.Flags().StringVarP(user, "user", "u", "", "Viewer name (default: $HSPACE_USER, then global config user)")
	cmd.Flags().StringVarP(reference, "reference", "r", "", "Rank heuristics by squared distance to this heuristic")
}

func addToggleFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagPublicShared, true, "Show public heuristics of other users")
	cmd.Flags().Bool(flagUserPublic, true, "Show your public heuristics")
	cmd.Flags().Bool(flagUserPrivate, true, "Show your private heuristics")
	cmd.Flags().Bool(flagClosest, false, "Only show the heuristics closest to the reference")
}

// togglesFromFlags overlays the toggle flags given on the command line on
// defaults. Flags that were not given keep the default, which may be absent.
func togglesFromFlags(fs *pflag.FlagSet, defaults viz.Toggles) viz.Toggles {
	t := defaults
	for _, f := range []struct {
		name string
		dst  **bool
	}{
		{flagPublicShared, &t.PublicShared},
		{flagUserPublic, &t.UserPublic},
		{flagUserPrivate, &t.UserPrivate},
		{flagClosest, &t.ClosestOnly},
	} {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetBool(f.name)
		if err != nil {
			continue
		}
		*f.dst = viz.Bool(v)
	}
	return t
}

// mustRestrict loads the repository clustering result and restricts it to
// what user may see.
func mustRestrict(user, reference string) *visibility.Result {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	doc := mustReadGEXF(cfg.ClusteringPath(repoRoot))

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	res, err := visibility.Restrict(doc, db, user, reference)
	if err != nil {
		exitWithError(ExitError, "restricting clustering result: %v", err)
	}
	return res
}

// mustLoadView returns the view document and the resolved viewer. An input
// file is used as is, apart from ranking by --reference, which replaces
// any distances it carries. A reference that names no node is an error.
func mustLoadView(f *viewFlags) (*gexf.Document, string) {
	user := heuristic.Normalize(config.ResolveUser(f.user))

	if f.input == "" {
		res := mustRestrict(user, f.reference)
		if f.reference != "" && res.Reference == "" {
			exitWithError(ExitDataError, "reference %s is not in the clustering result", f.reference)
		}
		return res.Document, user
	}

	doc := mustReadGEXF(config.ExpandPath(f.input))
	if f.reference != "" && !visibility.RankByReference(doc, doc, f.reference) {
		exitWithError(ExitDataError, "reference %s is not in %s", f.reference, f.input)
	}
	return doc, user
}

func mustReadGEXF(path string) *gexf.Document {
	doc, err := gexf.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			exitWithError(ExitConfigError, "clustering result not found: %s", path)
		}
		exitWithError(ExitDataError, "reading clustering result: %v", err)
	}
	return doc
}

// mustNewSession builds a session, exiting with a data error when no
// node is visible.
func mustNewSession(doc *gexf.Document) *viz.Session {
	s, err := viz.NewSession(doc.VizNodes())
	if err != nil {
		if errors.Is(err, viz.ErrEmptyRange) {
			exitWithError(ExitDataError, "no visible heuristics in the clustering result")
		}
		exitWithError(ExitError, "building view: %v", err)
	}
	return s
}
