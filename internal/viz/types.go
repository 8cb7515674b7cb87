// Package viz provides the heuristic-space view: node filtering, pan range
// tracking and HTML rendering of clustering results.
package viz

// Category is the visibility class of a node, derived from its public and
// ownership flags.
type Category int

const (
	CategoryNone         Category = iota // neither public nor owned by the viewer
	CategoryPublicShared                 // public, owned by someone else
	CategoryUserPublic                   // public, owned by the viewer
	CategoryUserPrivate                  // private, owned by the viewer
)

// CategoryOf derives the category for a pair of flags.
func CategoryOf(public, userOwned bool) Category {
	switch {
	case public && !userOwned:
		return CategoryPublicShared
	case public && userOwned:
		return CategoryUserPublic
	case userOwned:
		return CategoryUserPrivate
	default:
		return CategoryNone
	}
}

// String returns the name used in JSON output and CSS classes.
func (c Category) String() string {
	switch c {
	case CategoryPublicShared:
		return "public-shared"
	case CategoryUserPublic:
		return "user-public"
	case CategoryUserPrivate:
		return "user-private"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Point is a 2D position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one heuristic in the clustering view.
type Node struct {
	Label     string   `json:"label"` // unique id within a node list
	Name      string   `json:"name"`
	Position  Point    `json:"position"`
	Public    bool     `json:"public"`
	UserOwned bool     `json:"user"`
	Distance  *float64 `json:"dist,omitempty"` // squared distance to the reference heuristic
	Category  Category `json:"category"`

	// Presentation
	Color     string `json:"color,omitempty"`
	FillColor string `json:"fillColor,omitempty"`
	Radius    int    `json:"radius,omitempty"`
}

// NewNode builds a node and caches its category.
func NewNode(label, name string, pos Point, public, userOwned bool) Node {
	return Node{
		Label:     label,
		Name:      name,
		Position:  pos,
		Public:    public,
		UserOwned: userOwned,
		Category:  CategoryOf(public, userOwned),
	}
}

// WithDistance returns a copy of n carrying the given distance.
func (n Node) WithDistance(d float64) Node {
	n.Distance = &d
	return n
}

// Marker sizes.
const (
	DefaultRadius = 6
	PrivateRadius = 10
)

// OwnedOutline is the outline color of nodes owned by the viewer.
const OwnedOutline = "#A0A0A0"

// Styled returns a copy of n with marker colors derived from the layout
// color: shared nodes are outlined in that color with a white fill, owned
// nodes are filled with it behind a gray outline, and private nodes are
// drawn larger.
func (n Node) Styled(layoutColor string) Node {
	n.Color = layoutColor
	n.FillColor = "#FFFFFF"
	n.Radius = DefaultRadius
	if n.UserOwned {
		n.Color = OwnedOutline
		n.FillColor = layoutColor
	}
	if !n.Public {
		n.Radius = PrivateRadius
	}
	return n
}
