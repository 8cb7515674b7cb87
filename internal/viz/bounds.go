package viz

import (
	"errors"
	"fmt"
)

// Errors returned by Tracker.Finalize.
var (
	ErrEmptyRange       = errors.New("no points observed")
	ErrAlreadyFinalized = errors.New("range already finalized")
)

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Pad widens r by half its span on each side, doubling the span around a
// fixed center. A zero-width range stays zero-width.
func Pad(r Range) Range {
	c := r.Span() * 0.5
	return Range{Min: r.Min - c, Max: r.Max + c}
}

// Bounds is the pan range of the view on both axes.
type Bounds struct {
	X Range `json:"x"`
	Y Range `json:"y"`
}

// Tracker accumulates the bounding box of observed points. The zero value
// is ready to use.
type Tracker struct {
	x, y      Range
	observed  int
	finalized bool
}

// Observe widens the bounding box to include (x, y). Calls after Finalize
// are ignored.
func (t *Tracker) Observe(x, y float64) {
	if t.finalized {
		return
	}
	if t.observed == 0 {
		t.x = Range{Min: x, Max: x}
		t.y = Range{Min: y, Max: y}
	} else {
		t.x = widen(t.x, x)
		t.y = widen(t.y, y)
	}
	t.observed++
}

// Observed returns how many points have been observed.
func (t *Tracker) Observed() int {
	return t.observed
}

// Raw returns the unpadded bounding box observed so far.
func (t *Tracker) Raw() (Bounds, error) {
	if t.observed == 0 {
		return Bounds{}, ErrEmptyRange
	}
	return Bounds{X: t.x, Y: t.y}, nil
}

// Finalize pads the observed bounding box and closes the tracker. It must
// be called once, after all points have been observed.
func (t *Tracker) Finalize() (Bounds, error) {
	if t.finalized {
		return Bounds{}, ErrAlreadyFinalized
	}
	if t.observed == 0 {
		return Bounds{}, ErrEmptyRange
	}
	t.finalized = true
	return Bounds{X: Pad(t.x), Y: Pad(t.y)}, nil
}

func widen(r Range, v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}
