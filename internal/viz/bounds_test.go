package viz

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestTracker_Example(t *testing.T) {
	var tr Tracker
	tr.Observe(1, 5)
	tr.Observe(3, 1)
	tr.Observe(-2, 9)

	raw, err := tr.Raw()
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}
	if raw.X != (Range{-2, 3}) || raw.Y != (Range{1, 9}) {
		t.Errorf("Raw() = %+v, want x [-2,3] y [1,9]", raw)
	}

	got, err := tr.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if got.X != (Range{-4.5, 5.5}) {
		t.Errorf("X = %v, want [-4.5, 5.5]", got.X)
	}
	if got.Y != (Range{-3, 13}) {
		t.Errorf("Y = %v, want [-3, 13]", got.Y)
	}
}

func TestTracker_FinalizeEmpty(t *testing.T) {
	var tr Tracker
	if _, err := tr.Finalize(); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("Finalize() error = %v, want ErrEmptyRange", err)
	}

	tr.Observe(1, 2)
	if _, err := tr.Finalize(); err != nil {
		t.Errorf("Finalize() after a failed call error = %v", err)
	}
}

func TestTracker_FinalizeTwice(t *testing.T) {
	var tr Tracker
	tr.Observe(0, 0)
	if _, err := tr.Finalize(); err != nil {
		t.Fatalf("first Finalize() error = %v", err)
	}
	if _, err := tr.Finalize(); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Finalize() error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestTracker_ObserveAfterFinalize(t *testing.T) {
	var tr Tracker
	tr.Observe(0, 0)
	tr.Observe(2, 2)
	if _, err := tr.Finalize(); err != nil {
		t.Fatal(err)
	}

	tr.Observe(100, 100)
	if tr.Observed() != 2 {
		t.Errorf("Observed() = %d, want 2", tr.Observed())
	}
	raw, _ := tr.Raw()
	if raw.X.Max != 2 {
		t.Errorf("range widened after Finalize: %v", raw.X)
	}
}

func TestTracker_SinglePointIsZeroWidth(t *testing.T) {
	var tr Tracker
	tr.Observe(4, -1)

	got, err := tr.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if got.X != (Range{4, 4}) || got.Y != (Range{-1, -1}) {
		t.Errorf("Finalize() = %+v, want zero-width ranges at the point", got)
	}
}

// inRange reports whether v lies inside r.
func inRange(r Range, v float64) bool {
	return v >= r.Min && v <= r.Max
}

func pointsGen() *rapid.Generator[[]Point] {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) Point {
		return Point{
			X: rapid.Float64Range(-1e6, 1e6).Draw(t, "x"),
			Y: rapid.Float64Range(-1e6, 1e6).Draw(t, "y"),
		}
	}), 1, 50)
}

func TestTracker_PropertyOrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := pointsGen().Draw(t, "points")
		shuffled := rapid.Permutation(points).Draw(t, "shuffled")

		var a, b Tracker
		for _, p := range points {
			a.Observe(p.X, p.Y)
		}
		for _, p := range shuffled {
			b.Observe(p.X, p.Y)
		}

		ra, _ := a.Raw()
		rb, _ := b.Raw()
		if ra != rb {
			t.Fatalf("raw bounds differ: %+v vs %+v", ra, rb)
		}

		fa, errA := a.Finalize()
		fb, errB := b.Finalize()
		if errA != nil || errB != nil {
			t.Fatalf("Finalize errors: %v, %v", errA, errB)
		}
		if fa != fb {
			t.Fatalf("final bounds differ: %+v vs %+v", fa, fb)
		}
	})
}

func TestTracker_PropertyContainsAllPoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := pointsGen().Draw(t, "points")

		var tr Tracker
		for _, p := range points {
			tr.Observe(p.X, p.Y)
		}
		b, err := tr.Finalize()
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range points {
			if !inRange(b.X, p.X) || !inRange(b.Y, p.Y) {
				t.Fatalf("point %+v outside %+v", p, b)
			}
		}
	})
}

func TestPad_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-1e6, 1e6).Draw(t, "a")
		span := rapid.Float64Range(0, 1e6).Draw(t, "span")
		b := a + span

		got := Pad(Range{Min: a, Max: b})
		want := Range{Min: a - (b-a)/2, Max: b + (b-a)/2}
		if got != want {
			t.Fatalf("Pad([%v,%v]) = %v, want %v", a, b, got, want)
		}
	})
}
