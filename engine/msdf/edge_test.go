package msdf

import (
	"math"
	"sort"
	"testing"

	"github.com/gogpu/atlasgen/glyph"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func verifyRoots(t *testing.T, name string, roots, expected []float64, epsilon float64) {
	t.Helper()

	if len(roots) != len(expected) {
		t.Errorf("%s: got %d roots, want %d. roots=%v, expected=%v",
			name, len(roots), len(expected), roots, expected)
		return
	}

	sortedRoots := append([]float64(nil), roots...)
	sort.Float64s(sortedRoots)
	sortedExpected := append([]float64(nil), expected...)
	sort.Float64s(sortedExpected)

	for i := range sortedRoots {
		if !almostEqual(sortedRoots[i], sortedExpected[i], epsilon) {
			t.Errorf("%s: root[%d] = %v, want %v", name, i, sortedRoots[i], sortedExpected[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  float64
		expected []float64
	}{
		{"two roots", 1, 0, -4, []float64{-2, 2}},
		{"double root", 1, -2, 1, []float64{1}},
		{"no real roots", 1, 0, 1, nil},
		{"linear", 0, 2, -4, []float64{2}},
		{"constant", 0, 0, 1, nil},
	}
	for _, tt := range tests {
		verifyRoots(t, tt.name, solveQuadratic(tt.a, tt.b, tt.c), tt.expected, 1e-9)
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		expected   []float64
	}{
		{"three roots (x-1)(x)(x+1)", 1, 0, -1, 0, []float64{-1, 0, 1}},
		{"one root x^3-1", 1, 0, 0, -1, []float64{1}},
		{"triple root (x-2)^3", 1, -6, 12, -8, []float64{2}},
		{"degrades to quadratic", 0, 1, 0, -4, []float64{-2, 2}},
	}
	for _, tt := range tests {
		roots := solveCubic(tt.a, tt.b, tt.c, tt.d)
		// Cardano can report a multiple root more than once; collapse.
		sort.Float64s(roots)
		uniq := roots[:0]
		for i, r := range roots {
			if i == 0 || !almostEqual(r, uniq[len(uniq)-1], 1e-6) {
				uniq = append(uniq, r)
			}
		}
		verifyRoots(t, tt.name, uniq, tt.expected, 1e-6)
	}
}

func TestEdgePointAt(t *testing.T) {
	lin := NewLinearEdge(glyph.Point{X: 0, Y: 0}, glyph.Point{X: 10, Y: 0})
	if p := lin.PointAt(0.5); p.X != 5 || p.Y != 0 {
		t.Errorf("linear midpoint = %+v, want {5 0}", p)
	}

	quad := NewQuadraticEdge(
		glyph.Point{X: 0, Y: 0}, glyph.Point{X: 5, Y: 10}, glyph.Point{X: 10, Y: 0})
	if p := quad.PointAt(0.5); p.X != 5 || p.Y != 5 {
		t.Errorf("quadratic midpoint = %+v, want {5 5}", p)
	}

	cub := NewCubicEdge(
		glyph.Point{X: 0, Y: 0}, glyph.Point{X: 0, Y: 10},
		glyph.Point{X: 10, Y: 10}, glyph.Point{X: 10, Y: 0})
	if p := cub.PointAt(0); p != (glyph.Point{}) {
		t.Errorf("cubic start = %+v, want origin", p)
	}
	if p := cub.PointAt(1); p.X != 10 || p.Y != 0 {
		t.Errorf("cubic end = %+v, want {10 0}", p)
	}
	if p := cub.PointAt(0.5); !almostEqual(p.X, 5, 1e-12) || !almostEqual(p.Y, 7.5, 1e-12) {
		t.Errorf("cubic midpoint = %+v, want {5 7.5}", p)
	}
}

func TestLinearSignedDistanceSign(t *testing.T) {
	// Edge pointing along +X: left side (above) is positive.
	e := NewLinearEdge(glyph.Point{X: 0, Y: 0}, glyph.Point{X: 10, Y: 0})

	above := e.SignedDistance(glyph.Point{X: 5, Y: 3})
	if !almostEqual(above.Distance, 3, 1e-12) {
		t.Errorf("above distance = %g, want 3", above.Distance)
	}
	below := e.SignedDistance(glyph.Point{X: 5, Y: -3})
	if !almostEqual(below.Distance, -3, 1e-12) {
		t.Errorf("below distance = %g, want -3", below.Distance)
	}
	past := e.SignedDistance(glyph.Point{X: 13, Y: 4})
	if !almostEqual(math.Abs(past.Distance), 5, 1e-12) {
		t.Errorf("endpoint distance = %g, want magnitude 5", past.Distance)
	}
}

func TestQuadraticSignedDistance(t *testing.T) {
	e := NewQuadraticEdge(
		glyph.Point{X: 0, Y: 0}, glyph.Point{X: 5, Y: 10}, glyph.Point{X: 10, Y: 0})

	// Directly below the curve apex (curve point (5,5)).
	d := e.SignedDistance(glyph.Point{X: 5, Y: 3})
	if !almostEqual(math.Abs(d.Distance), 2, 1e-6) {
		t.Errorf("apex distance = %g, want magnitude 2", d.Distance)
	}
}

func TestEdgeBounds(t *testing.T) {
	quad := NewQuadraticEdge(
		glyph.Point{X: 0, Y: 0}, glyph.Point{X: 5, Y: 10}, glyph.Point{X: 10, Y: 0})
	b := quad.Bounds()
	// The curve's apex is at y=5, not the control point's y=10.
	if !almostEqual(b.MaxY, 5, 1e-9) {
		t.Errorf("quadratic MaxY = %g, want 5 (curve extremum, not control point)", b.MaxY)
	}
	if b.MinX != 0 || b.MaxX != 10 || b.MinY != 0 {
		t.Errorf("quadratic bounds = %+v", b)
	}

	lin := NewLinearEdge(glyph.Point{X: 3, Y: 7}, glyph.Point{X: 1, Y: 2})
	lb := lin.Bounds()
	if lb.MinX != 1 || lb.MaxX != 3 || lb.MinY != 2 || lb.MaxY != 7 {
		t.Errorf("linear bounds = %+v", lb)
	}
}

func TestHorizontalIntersections(t *testing.T) {
	// Vertical line going up: one crossing, direction up.
	up := NewLinearEdge(glyph.Point{X: 4, Y: 0}, glyph.Point{X: 4, Y: 10})
	cs := up.HorizontalIntersections(5, nil)
	if len(cs) != 1 {
		t.Fatalf("got %d crossings, want 1", len(cs))
	}
	if !almostEqual(cs[0].x, 4, 1e-12) || !cs[0].up {
		t.Errorf("crossing = %+v, want x=4 up", cs[0])
	}

	// Horizontal line never crosses a horizontal scanline.
	flat := NewLinearEdge(glyph.Point{X: 0, Y: 5}, glyph.Point{X: 10, Y: 5})
	if cs := flat.HorizontalIntersections(5, nil); len(cs) != 0 {
		t.Errorf("horizontal edge produced %d crossings", len(cs))
	}

	// A quadratic arch crosses a low scanline twice.
	quad := NewQuadraticEdge(
		glyph.Point{X: 0, Y: 0}, glyph.Point{X: 5, Y: 10}, glyph.Point{X: 10, Y: 0})
	cs = quad.HorizontalIntersections(2, nil)
	if len(cs) != 2 {
		t.Fatalf("arch at y=2: got %d crossings, want 2", len(cs))
	}
	if cs[0].up == cs[1].up {
		t.Error("arch crossings should have opposite directions")
	}
}
