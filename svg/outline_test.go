package svg

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/atlasgen/glyph"
)

func buildTest(t *testing.T, doc string, unitsPerEm float64) *Result {
	t.Helper()
	res, err := BuildOutline(strings.NewReader(doc), unitsPerEm)
	if err != nil {
		t.Fatalf("BuildOutline() error: %v", err)
	}
	return res
}

func TestBuildOutlineCoordinateMapping(t *testing.T) {
	// Y flips, scale is unitsPerEm over view-box height: (0,0) maps to
	// (0,1000) and (100,100) to (1000,0).
	doc := `<svg viewBox="0 0 100 100"><path d="M0 0 L100 100 Z"/></svg>`
	res := buildTest(t, doc, 1000)

	segs := res.Outline.Segments
	if len(segs) < 2 {
		t.Fatalf("got %d segments, want at least 2", len(segs))
	}
	if p := segs[0].Points[0]; p.X != 0 || p.Y != 1000 {
		t.Errorf("(0,0) mapped to (%g, %g), want (0, 1000)", p.X, p.Y)
	}
	if p := segs[1].Points[0]; p.X != 1000 || p.Y != 0 {
		t.Errorf("(100,100) mapped to (%g, %g), want (1000, 0)", p.X, p.Y)
	}
}

func TestBuildOutlineOffsetViewBox(t *testing.T) {
	doc := `<svg viewBox="10 20 100 100"><path d="M10 20 Z"/></svg>`
	res := buildTest(t, doc, 1000)

	// The view-box origin maps to the outline's top-left (0, unitsPerEm).
	p := res.Outline.Segments[0].Points[0]
	if p.X != 0 || p.Y != 1000 {
		t.Errorf("view-box origin mapped to (%g, %g), want (0, 1000)", p.X, p.Y)
	}
}

func TestBuildOutlineNonSquareViewBox(t *testing.T) {
	// Scale is uniform and derived from height only.
	doc := `<svg viewBox="0 0 200 100"><path d="M200 0 Z"/></svg>`
	res := buildTest(t, doc, 1000)

	p := res.Outline.Segments[0].Points[0]
	if p.X != 2000 || p.Y != 1000 {
		t.Errorf("(200,0) mapped to (%g, %g), want (2000, 1000)", p.X, p.Y)
	}
}

func TestBuildOutlineSubpathsClosed(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"explicit close", "M0 0 L10 0 L10 10 Z"},
		{"implicit close at end", "M0 0 L10 0 L10 10"},
		{"implicit close before next moveto", "M0 0 L10 0 M20 20 L30 20 Z"},
		{"curves", "M0 0 C10 0 20 10 20 20 Q10 30 0 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<svg viewBox="0 0 100 100"><path d="` + tt.d + `"/></svg>`
			res := buildTest(t, doc, 1000)
			if !res.Outline.SubpathsClosed() {
				t.Errorf("outline for %q has an open subpath", tt.d)
			}
		})
	}
}

func TestBuildOutlineMultiplePaths(t *testing.T) {
	doc := `<svg viewBox="0 0 100 100">
	  <g><path d="M0 0 L10 0 L10 10 Z"/></g>
	  <path d="M20 20 L30 20 L30 30 Z"/>
	</svg>`
	res := buildTest(t, doc, 1000)

	moveTos := 0
	for _, s := range res.Outline.Segments {
		if s.Op == glyph.OpMoveTo {
			moveTos++
		}
	}
	if moveTos != 2 {
		t.Errorf("got %d subpaths, want 2 (paths appended in document order)", moveTos)
	}
}

func TestBuildOutlineArcNeverUnsupported(t *testing.T) {
	doc := `<svg viewBox="0 0 100 100"><path d="M50 10 A40 40 0 1 1 49.9 10 Z"/></svg>`
	res := buildTest(t, doc, 1000)

	for _, s := range res.Outline.Segments {
		if s.Op == glyph.OpQuadTo {
			continue
		}
		if s.Op != glyph.OpMoveTo && s.Op != glyph.OpLineTo &&
			s.Op != glyph.OpCubicTo && s.Op != glyph.OpClose {
			t.Fatalf("unexpected op %v in arc outline", s.Op)
		}
	}
	if res.Outline.IsEmpty() {
		t.Error("arc outline is empty")
	}
}

func TestBuildOutlineDefaultViewBox(t *testing.T) {
	res := buildTest(t, `<svg><path d="M0 0 L500 500 Z"/></svg>`, 1000)
	if res.ViewBox.Width != 1000 || res.ViewBox.Height != 1000 {
		t.Errorf("default view box = %+v, want 1000x1000", res.ViewBox)
	}

	res = buildTest(t, `<svg width="24px" height="48px"><path d="M0 0 Z"/></svg>`, 1000)
	if res.ViewBox.Width != 24 || res.ViewBox.Height != 48 {
		t.Errorf("attribute view box = %+v, want 24x48", res.ViewBox)
	}
}

func TestResolveViewBoxWhitespace(t *testing.T) {
	// All four XML whitespace characters and commas separate values.
	root := &Node{Attr: map[string]string{"viewBox": "0,0\t100\r\n100"}}
	vb, err := resolveViewBox(root)
	if err != nil {
		t.Fatalf("resolveViewBox() error: %v", err)
	}
	if vb.Width != 100 || vb.Height != 100 {
		t.Errorf("view box = %+v, want 100x100", vb)
	}
}

func TestBuildOutlineDefaultUnitsPerEm(t *testing.T) {
	res := buildTest(t, `<svg viewBox="0 0 10 10"><path d="M0 0 Z"/></svg>`, 0)
	if res.UnitsPerEm != DefaultUnitsPerEm {
		t.Errorf("UnitsPerEm = %g, want %d", res.UnitsPerEm, DefaultUnitsPerEm)
	}
}

func TestBuildOutlineErrors(t *testing.T) {
	var noPath *NoPathDataError
	_, err := BuildOutline(strings.NewReader(`<svg viewBox="0 0 10 10"><rect/></svg>`), 1000)
	if !errors.As(err, &noPath) {
		t.Errorf("document without paths: got %v, want NoPathDataError", err)
	}

	_, err = BuildOutline(strings.NewReader(`<svg viewBox="0 0 10 10"><path d="  "/></svg>`), 1000)
	if !errors.As(err, &noPath) {
		t.Errorf("blank path data: got %v, want NoPathDataError", err)
	}

	var vbErr *ViewBoxError
	for _, doc := range []string{
		`<svg viewBox="0 0 10"><path d="M0 0 Z"/></svg>`,
		`<svg viewBox="0 0 -10 10"><path d="M0 0 Z"/></svg>`,
		`<svg viewBox="0 0 a b"><path d="M0 0 Z"/></svg>`,
	} {
		if _, err := BuildOutline(strings.NewReader(doc), 1000); !errors.As(err, &vbErr) {
			t.Errorf("document %q: got %v, want ViewBoxError", doc, err)
		}
	}

	var unsupported *UnsupportedCommandError
	_, err = BuildOutline(strings.NewReader(`<svg viewBox="0 0 10 10"><path d="M0 0 X1 1"/></svg>`), 1000)
	if !errors.As(err, &unsupported) {
		t.Errorf("unknown command: got %v, want UnsupportedCommandError", err)
	}
}

func TestBuildOutlineBoundsScale(t *testing.T) {
	doc := `<svg viewBox="0 0 24 24"><path d="M2 2 L22 2 L22 22 L2 22 Z"/></svg>`
	res := buildTest(t, doc, 1000)

	b := res.Outline.Bounds()
	want := 20.0 * 1000 / 24
	if math.Abs(b.Width()-want) > 1e-9 || math.Abs(b.Height()-want) > 1e-9 {
		t.Errorf("bounds %gx%g, want %gx%g", b.Width(), b.Height(), want, want)
	}
}
