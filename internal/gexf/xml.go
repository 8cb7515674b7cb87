package gexf

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// Wire types. Decoding matches elements by local name so that both
// prefixed (viz:position) and default-namespace documents are accepted.
// Encoding uses literal prefixed names.

type xmlDocument struct {
	XMLName xml.Name `xml:"gexf"`
	Graph   xmlGraph `xml:"graph"`
}

type xmlGraph struct {
	Mode            string    `xml:"mode,attr"`
	DefaultEdgeType string    `xml:"defaultedgetype,attr"`
	Nodes           []xmlNode `xml:"nodes>node"`
	Edges           []xmlEdge `xml:"edges>edge"`
}

type xmlNode struct {
	ID       string       `xml:"id,attr"`
	Label    string       `xml:"label,attr"`
	Public   string       `xml:"public,attr"`
	User     string       `xml:"user,attr"`
	Dist     string       `xml:"dist,attr"`
	Position *xmlPosition `xml:"position"`
	Color    *xmlColor    `xml:"color"`
	Size     *xmlSize     `xml:"size"`
}

type xmlPosition struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr,omitempty"`
}

type xmlColor struct {
	R string `xml:"r,attr"`
	G string `xml:"g,attr"`
	B string `xml:"b,attr"`
}

type xmlSize struct {
	Value string `xml:"value,attr"`
}

type xmlEdge struct {
	ID     string `xml:"id,attr,omitempty"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight string `xml:"weight,attr,omitempty"`
}

type xmlOutDocument struct {
	XMLName  xml.Name    `xml:"gexf"`
	Xmlns    string      `xml:"xmlns,attr"`
	XmlnsViz string      `xml:"xmlns:viz,attr"`
	Version  string      `xml:"version,attr"`
	Graph    xmlOutGraph `xml:"graph"`
}

type xmlOutGraph struct {
	Mode            string       `xml:"mode,attr,omitempty"`
	DefaultEdgeType string       `xml:"defaultedgetype,attr,omitempty"`
	Nodes           *xmlOutNodes `xml:"nodes"`
	Edges           *xmlOutEdges `xml:"edges"`
}

type xmlOutNodes struct {
	Nodes []xmlOutNode `xml:"node"`
}

// A nil *xmlOutEdges omits the edges element entirely.
type xmlOutEdges struct {
	Edges []xmlEdge `xml:"edge"`
}

type xmlOutNode struct {
	ID       string      `xml:"id,attr"`
	Label    string      `xml:"label,attr"`
	Public   string      `xml:"public,attr,omitempty"`
	User     string      `xml:"user,attr,omitempty"`
	Dist     string      `xml:"dist,attr,omitempty"`
	Color    *xmlColor   `xml:"viz:color"`
	Position xmlPosition `xml:"viz:position"`
	Size     *xmlSize    `xml:"viz:size"`
}

func (xn xmlNode) toNode() (Node, error) {
	n := Node{
		ID:     xn.ID,
		Label:  xn.Label,
		Public: xn.Public != "",
		User:   xn.User != "",
	}

	if xn.Position == nil {
		return Node{}, ErrMissingPosition
	}
	var err error
	if n.Position.X, err = parseFloat("x", xn.Position.X); err != nil {
		return Node{}, err
	}
	if n.Position.Y, err = parseFloat("y", xn.Position.Y); err != nil {
		return Node{}, err
	}
	if xn.Position.Z != "" {
		if n.Position.Z, err = parseFloat("z", xn.Position.Z); err != nil {
			return Node{}, err
		}
	}

	if xn.Dist != "" {
		d, err := parseFloat("dist", xn.Dist)
		if err != nil {
			return Node{}, err
		}
		n.Dist = &d
	}

	if xn.Color != nil {
		c, err := xn.Color.toColor()
		if err != nil {
			return Node{}, err
		}
		n.Color = &c
	}

	if xn.Size != nil && xn.Size.Value != "" {
		s, err := parseFloat("size", xn.Size.Value)
		if err != nil {
			return Node{}, err
		}
		n.Size = &s
	}

	return n, nil
}

func (xc xmlColor) toColor() (Color, error) {
	var c Color
	for _, ch := range []struct {
		name string
		raw  string
		dst  *uint8
	}{
		{"r", xc.R, &c.R},
		{"g", xc.G, &c.G},
		{"b", xc.B, &c.B},
	} {
		v, err := strconv.ParseUint(ch.raw, 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color component %s=%q: %w", ch.name, ch.raw, err)
		}
		*ch.dst = uint8(v)
	}
	return c, nil
}

func fromNode(n Node) xmlOutNode {
	out := xmlOutNode{
		ID:    n.ID,
		Label: n.Label,
		Position: xmlPosition{
			X: formatFloat(n.Position.X),
			Y: formatFloat(n.Position.Y),
		},
	}
	if n.Position.Z != 0 {
		out.Position.Z = formatFloat(n.Position.Z)
	}
	if n.Public {
		out.Public = "true"
	}
	if n.User {
		out.User = "true"
	}
	if n.Dist != nil {
		out.Dist = formatFloat(*n.Dist)
	}
	if n.Color != nil {
		out.Color = &xmlColor{
			R: strconv.Itoa(int(n.Color.R)),
			G: strconv.Itoa(int(n.Color.G)),
			B: strconv.Itoa(int(n.Color.B)),
		}
	}
	if n.Size != nil {
		out.Size = &xmlSize{Value: formatFloat(*n.Size)}
	}
	return out
}

func parseFloat(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q: not a finite number", name, raw)
	}
	return v, nil
}
