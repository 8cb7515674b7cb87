// Package gexf reads and writes the GEXF documents produced by the
// clustering tools, limited to the parts the heuristic-space view uses:
// nodes with viz positions and colors, visibility attributes and edges.
package gexf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-project/hspace/internal/viz"
)

// Namespaces written on output.
const (
	Namespace    = "http://www.gexf.net/1.2draft"
	VizNamespace = "http://www.gexf.net/1.2draft/viz"
	Version      = "1.2"
)

// ErrMissingPosition is returned for a node without a viz:position.
var ErrMissingPosition = errors.New("missing viz:position")

// Document is a parsed GEXF graph.
type Document struct {
	Mode            string
	DefaultEdgeType string
	Nodes           []Node
	Edges           []Edge
}

// Node is a GEXF node with the attributes set by the visibility filter.
type Node struct {
	ID       string
	Label    string
	Public   bool
	User     bool
	Dist     *float64
	Position Position
	Color    *Color
	Size     *float64
}

// Position is a viz:position element.
type Position struct {
	X, Y, Z float64
}

// Color is a viz:color element.
type Color struct {
	R, G, B uint8
}

// String formats the color as a CSS rgb() value.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// DefaultColor is used for nodes without a viz:color.
var DefaultColor = Color{R: 128, G: 128, B: 128}

// Edge is a GEXF edge.
type Edge struct {
	ID     string
	Source string
	Target string
	Weight *float64
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Mode:            d.Mode,
		DefaultEdgeType: d.DefaultEdgeType,
		Nodes:           make([]Node, len(d.Nodes)),
		Edges:           make([]Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.clone()
	}
	for i, e := range d.Edges {
		if e.Weight != nil {
			w := *e.Weight
			e.Weight = &w
		}
		out.Edges[i] = e
	}
	return out
}

func (n Node) clone() Node {
	if n.Dist != nil {
		d := *n.Dist
		n.Dist = &d
	}
	if n.Color != nil {
		c := *n.Color
		n.Color = &c
	}
	if n.Size != nil {
		s := *n.Size
		n.Size = &s
	}
	return n
}

// VizNodes converts the document nodes to view nodes, in document order.
func (d *Document) VizNodes() []viz.Node {
	nodes := make([]viz.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		vn := viz.NewNode(n.ID, n.Label, viz.Point{X: n.Position.X, Y: n.Position.Y}, n.Public, n.User)
		if n.Dist != nil {
			vn = vn.WithDistance(*n.Dist)
		}
		color := DefaultColor
		if n.Color != nil {
			color = *n.Color
		}
		nodes = append(nodes, vn.Styled(color.String()))
	}
	return nodes
}

// FindNode returns the index of the first node with the given label.
func (d *Document) FindNode(label string) (int, bool) {
	for i, n := range d.Nodes {
		if n.Label == label {
			return i, true
		}
	}
	return -1, false
}

// ReadFile parses the GEXF document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GEXF file: %w", err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read parses a GEXF document. The public and user attributes count as set
// when non-empty.
func Read(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing GEXF: %w", err)
	}

	doc := &Document{
		Mode:            raw.Graph.Mode,
		DefaultEdgeType: raw.Graph.DefaultEdgeType,
		Nodes:           make([]Node, 0, len(raw.Graph.Nodes)),
	}

	for i, xn := range raw.Graph.Nodes {
		n, err := xn.toNode()
		if err != nil {
			return nil, fmt.Errorf("node %d (%q): %w", i, xn.ID, err)
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	for i, xe := range raw.Graph.Edges {
		e := Edge{ID: xe.ID, Source: xe.Source, Target: xe.Target}
		if xe.Weight != "" {
			w, err := strconv.ParseFloat(xe.Weight, 64)
			if err != nil {
				return nil, fmt.Errorf("edge %d: invalid weight %q: %w", i, xe.Weight, err)
			}
			e.Weight = &w
		}
		doc.Edges = append(doc.Edges, e)
	}

	return doc, nil
}

// WriteFile writes the document to path.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating GEXF file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the document with the viz: prefix on visual elements.
func Write(w io.Writer, doc *Document) error {
	out := xmlOutDocument{
		Xmlns:    Namespace,
		XmlnsViz: VizNamespace,
		Version:  Version,
		Graph: xmlOutGraph{
			Mode:            doc.Mode,
			DefaultEdgeType: doc.DefaultEdgeType,
		},
	}
	if len(doc.Nodes) > 0 {
		out.Graph.Nodes = &xmlOutNodes{Nodes: make([]xmlOutNode, 0, len(doc.Nodes))}
		for _, n := range doc.Nodes {
			out.Graph.Nodes.Nodes = append(out.Graph.Nodes.Nodes, fromNode(n))
		}
	}
	if len(doc.Edges) > 0 {
		out.Graph.Edges = &xmlOutEdges{Edges: make([]xmlEdge, 0, len(doc.Edges))}
		for _, e := range doc.Edges {
			xe := xmlEdge{ID: e.ID, Source: e.Source, Target: e.Target}
			if e.Weight != nil {
				xe.Weight = formatFloat(*e.Weight)
			}
			out.Graph.Edges.Edges = append(out.Graph.Edges.Edges, xe)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing GEXF header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding GEXF: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("encoding GEXF: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
