package viz

import "fmt"

// Session holds one loaded clustering result: the full node list and the
// pan range computed while ingesting it. Loading new data means building a
// new Session.
type Session struct {
	nodes  []Node
	bounds Bounds
}

// NewSession ingests nodes in order, tracking their bounding box, and
// finalizes the pan range. An empty node list yields ErrEmptyRange.
func NewSession(nodes []Node) (*Session, error) {
	var tracker Tracker
	for _, n := range nodes {
		tracker.Observe(n.Position.X, n.Position.Y)
	}

	bounds, err := tracker.Finalize()
	if err != nil {
		return nil, fmt.Errorf("computing pan range: %w", err)
	}

	owned := make([]Node, len(nodes))
	copy(owned, nodes)

	return &Session{nodes: owned, bounds: bounds}, nil
}

// Nodes returns a copy of the full node list.
func (s *Session) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len returns the number of nodes in the session.
func (s *Session) Len() int {
	return len(s.nodes)
}

// Bounds returns the finalized pan range.
func (s *Session) Bounds() Bounds {
	return s.bounds
}

// View returns the nodes to render for the given toggles.
func (s *Session) View(t Toggles) []Node {
	return Filter(s.nodes, t)
}

// CategoryCounts returns how many nodes fall in each category.
func (s *Session) CategoryCounts() map[Category]int {
	counts := make(map[Category]int)
	for _, n := range s.nodes {
		counts[n.Category]++
	}
	return counts
}
