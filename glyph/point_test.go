package glyph

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	a := Point{X: 3, Y: 4}
	b := Point{X: 1, Y: -2}

	if got := a.Add(b); got != (Point{X: 4, Y: 2}) {
		t.Errorf("Add = %+v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Point{X: 2, Y: 6}) {
		t.Errorf("Sub = %+v, want {2 6}", got)
	}
	if got := a.Mul(2); got != (Point{X: 6, Y: 8}) {
		t.Errorf("Mul = %+v, want {6 8}", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %g, want -5", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross = %g, want -10", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %g, want 5", got)
	}
	if got := a.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %g, want 25", got)
	}
}

func TestPointNormalized(t *testing.T) {
	n := Point{X: 3, Y: 4}.Normalized()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalized length = %g, want 1", n.Length())
	}
	if got := (Point{}).Normalized(); got != (Point{}) {
		t.Errorf("zero vector Normalized = %+v, want zero", got)
	}
}

func TestPointLerp(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 20}
	if got := a.Lerp(b, 0.5); got != (Point{X: 5, Y: 10}) {
		t.Errorf("Lerp(0.5) = %+v, want {5 10}", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want a", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want b", got)
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"parallel", Point{X: 1}, Point{X: 2}, 0},
		{"perpendicular", Point{X: 1}, Point{Y: 1}, math.Pi / 2},
		{"opposite", Point{X: 1}, Point{X: -1}, math.Pi},
		{"zero vector", Point{}, Point{X: 1}, 0},
	}
	for _, tt := range tests {
		if got := AngleBetween(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: AngleBetween = %g, want %g", tt.name, got, tt.want)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 1, MinY: 2, MaxX: 4, MaxY: 8}
	if r.Width() != 3 || r.Height() != 6 {
		t.Errorf("Width/Height = %g/%g, want 3/6", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("non-degenerate rect reported empty")
	}
	if !(Rect{}).IsEmpty() {
		t.Error("zero rect should be empty")
	}

	e := r.Expand(1)
	if e.MinX != 0 || e.MinY != 1 || e.MaxX != 5 || e.MaxY != 9 {
		t.Errorf("Expand(1) = %+v", e)
	}

	u := r.Union(Rect{MinX: -1, MinY: 3, MaxX: 2, MaxY: 10})
	if u.MinX != -1 || u.MinY != 2 || u.MaxX != 4 || u.MaxY != 10 {
		t.Errorf("Union = %+v", u)
	}

	var grow Rect
	grow = Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	grow = grow.AddPoint(Point{X: 2, Y: 3})
	grow = grow.AddPoint(Point{X: -1, Y: 7})
	if grow.MinX != -1 || grow.MinY != 3 || grow.MaxX != 2 || grow.MaxY != 7 {
		t.Errorf("AddPoint accumulation = %+v", grow)
	}
}
