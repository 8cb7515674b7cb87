package viz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data     CytoscapeNodeData `json:"data"`
	Position Point             `json:"position"`
	Classes  string            `json:"classes"`
}

// CytoscapeNodeData contains the node data fields.
type CytoscapeNodeData struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Public    bool     `json:"public"`
	Color     string   `json:"color,omitempty"`
	FillColor string   `json:"fillColor,omitempty"`
	Radius    int      `json:"radius"`
	Size      int      `json:"size"` // marker diameter, 2*Radius
	Distance  *float64 `json:"dist,omitempty"`
}

// viewPayload is everything the page script needs besides the library.
type viewPayload struct {
	Elements CytoscapeElements   `json:"elements"`
	Bounds   Bounds              `json:"bounds"`
	Views    map[string][]string `json:"views"`
}

// ToCytoscapeNode converts a node. Layout space has y pointing up while
// Cytoscape renders y pointing down, so y is negated.
func ToCytoscapeNode(n Node) CytoscapeNode {
	radius := n.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	return CytoscapeNode{
		Data: CytoscapeNodeData{
			ID:        n.Label,
			Name:      n.Name,
			Public:    n.Public,
			Color:     n.Color,
			FillColor: n.FillColor,
			Radius:    radius,
			Size:      2 * radius,
			Distance:  n.Distance,
		},
		Position: Point{X: n.Position.X, Y: -n.Position.Y},
		Classes:  n.Category.String(),
	}
}

// ViewKey encodes the checkbox states of the page as a lookup key, in the
// order public-shared, user-public, user-private, closest.
func ViewKey(publicShared, userPublic, userPrivate, closest bool) string {
	var sb strings.Builder
	for _, v := range []bool{publicShared, userPublic, userPrivate, closest} {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// PrecomputeViews runs Filter for every checkbox combination and returns
// the visible labels keyed by ViewKey.
func (s *Session) PrecomputeViews() map[string][]string {
	views := make(map[string][]string, 16)
	for mask := 0; mask < 16; mask++ {
		bit := func(i int) bool { return mask&(1<<i) != 0 }
		t := Toggles{
			PublicShared: Bool(bit(0)),
			UserPublic:   Bool(bit(1)),
			UserPrivate:  Bool(bit(2)),
			ClosestOnly:  Bool(bit(3)),
		}
		visible := s.View(t)
		labels := make([]string, 0, len(visible))
		for _, n := range visible {
			labels = append(labels, n.Label)
		}
		views[ViewKey(bit(0), bit(1), bit(2), bit(3))] = labels
	}
	return views
}

// ToCytoscapeJSON converts the session to the JSON payload embedded in the
// HTML page.
func (s *Session) ToCytoscapeJSON() (string, error) {
	payload := viewPayload{
		Elements: CytoscapeElements{Nodes: make([]CytoscapeNode, 0, len(s.nodes))},
		Bounds:   s.bounds,
		Views:    s.PrecomputeViews(),
	}

	for _, n := range s.nodes {
		payload.Elements.Nodes = append(payload.Elements.Nodes, ToCytoscapeNode(n))
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}
