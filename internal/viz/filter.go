package viz

import (
	"cmp"
	"math"
	"slices"
)

// ClosestCount is how many nodes the closest-only view keeps.
const ClosestCount = 11

// Toggles holds the display switches of the view. A nil field means the
// switch is absent, which shows everything for that dimension.
type Toggles struct {
	PublicShared *bool `json:"public_shared,omitempty" yaml:"public_shared,omitempty"`
	UserPublic   *bool `json:"user_public,omitempty" yaml:"user_public,omitempty"`
	UserPrivate  *bool `json:"user_private,omitempty" yaml:"user_private,omitempty"`
	ClosestOnly  *bool `json:"closest_only,omitempty" yaml:"closest_only,omitempty"`
}

// Bool returns a pointer to v, for building Toggles literals.
func Bool(v bool) *bool {
	return &v
}

// Hides reports whether nodes of category c are hidden.
func (t Toggles) Hides(c Category) bool {
	var toggle *bool
	switch c {
	case CategoryPublicShared:
		toggle = t.PublicShared
	case CategoryUserPublic:
		toggle = t.UserPublic
	case CategoryUserPrivate:
		toggle = t.UserPrivate
	default:
		return false
	}
	return toggle != nil && !*toggle
}

// Closest reports whether the closest-only ranking is requested.
func (t Toggles) Closest() bool {
	return t.ClosestOnly != nil && *t.ClosestOnly
}

// Filter returns the nodes to display for the given toggles, in display
// order. The input slice is neither modified nor aliased by the result.
func Filter(nodes []Node, t Toggles) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if t.Hides(n.Category) {
			continue
		}
		out = append(out, n)
	}

	if !t.Closest() {
		return out
	}

	slices.SortStableFunc(out, func(a, b Node) int {
		return cmp.Compare(sortDistance(a), sortDistance(b))
	})
	if len(out) > ClosestCount {
		out = out[:ClosestCount:ClosestCount]
	}
	return out
}

// sortDistance maps a missing or NaN distance to +Inf so that such nodes
// rank last.
func sortDistance(n Node) float64 {
	if n.Distance == nil || math.IsNaN(*n.Distance) {
		return math.Inf(1)
	}
	return *n.Distance
}
