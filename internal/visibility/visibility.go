// Package visibility limits a clustering result to the heuristics a user
// may see and ranks them against a reference heuristic.
package visibility

import (
	"fmt"

	"github.com/mash-project/hspace/internal/gexf"
)

// Catalog answers the ownership and publication questions Restrict needs.
type Catalog interface {
	PublicNames() ([]string, error)
	PublicNamesByAuthor(author string) ([]string, error)
	NamesByAuthor(author string) ([]string, error)
}

// Result is a restricted document plus what happened to it.
type Result struct {
	Document  *gexf.Document
	Removed   int
	Reference string // empty when no reference node was found
}

// Restrict returns a copy of doc without edges, keeping only nodes whose
// label is a public heuristic or one of user's own heuristics. Kept nodes
// get public/user flags. When reference matches a node label (first match
// in document order, kept or not), every kept node gets dist set to its
// squared distance to that node. Flags and distances already present in
// doc are discarded. An empty user sees public heuristics only.
func Restrict(doc *gexf.Document, catalog Catalog, user, reference string) (*Result, error) {
	public, err := catalog.PublicNames()
	if err != nil {
		return nil, fmt.Errorf("loading public heuristics: %w", err)
	}

	var userPublic, userAll []string
	if user != "" {
		if userPublic, err = catalog.PublicNamesByAuthor(user); err != nil {
			return nil, fmt.Errorf("loading public heuristics of %s: %w", user, err)
		}
		if userAll, err = catalog.NamesByAuthor(user); err != nil {
			return nil, fmt.Errorf("loading heuristics of %s: %w", user, err)
		}
	}

	publicSet := toSet(public)
	userPublicSet := toSet(userPublic)
	userSet := toSet(userAll)

	src := doc.Clone()
	out := &gexf.Document{
		Mode:            src.Mode,
		DefaultEdgeType: src.DefaultEdgeType,
		Nodes:           make([]gexf.Node, 0, len(src.Nodes)),
	}

	for _, n := range src.Nodes {
		keep := false
		n.Public, n.User, n.Dist = false, false, nil
		if publicSet[n.Label] {
			keep = true
			n.Public = true
			if userPublicSet[n.Label] {
				n.User = true
			}
		}
		if userSet[n.Label] {
			keep = true
			n.User = true
		}

		if keep {
			out.Nodes = append(out.Nodes, n)
		}
	}

	refLabel := ""
	if RankByReference(out, src, reference) {
		refLabel = reference
	}

	return &Result{
		Document:  out,
		Removed:   len(src.Nodes) - len(out.Nodes),
		Reference: refLabel,
	}, nil
}

// RankByReference sets dist on every node of doc to its squared distance to
// the first node of from labelled reference. from may be doc itself. It
// reports false and leaves doc unchanged when reference is empty or not in
// from.
func RankByReference(doc, from *gexf.Document, reference string) bool {
	if reference == "" {
		return false
	}
	i, ok := from.FindNode(reference)
	if !ok {
		return false
	}
	ref := from.Nodes[i].Position
	for j := range doc.Nodes {
		d := SquaredDistance(doc.Nodes[j].Position, ref)
		doc.Nodes[j].Dist = &d
	}
	return true
}

// SquaredDistance returns the squared Euclidean distance between two
// positions in the x/y plane.
func SquaredDistance(a, b gexf.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
