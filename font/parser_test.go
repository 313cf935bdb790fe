package font

import (
	"testing"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlasgen/glyph"
)

func TestNewParser(t *testing.T) {
	tests := []struct {
		backend string
		want    any
		wantErr bool
	}{
		{"", &XImageParser{}, false},
		{BackendXImage, &XImageParser{}, false},
		{BackendGoText, &GoTextParser{}, false},
		{"freetype", nil, true},
	}
	for _, tt := range tests {
		p, err := NewParser(tt.backend)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewParser(%q) error = nil, want failure", tt.backend)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewParser(%q) error: %v", tt.backend, err)
			continue
		}
		switch tt.want.(type) {
		case *XImageParser:
			if _, ok := p.(*XImageParser); !ok {
				t.Errorf("NewParser(%q) = %T, want *XImageParser", tt.backend, p)
			}
		case *GoTextParser:
			if _, ok := p.(*GoTextParser); !ok {
				t.Errorf("NewParser(%q) = %T, want *GoTextParser", tt.backend, p)
			}
		}
	}
}

func TestParseGarbage(t *testing.T) {
	for _, backend := range []string{BackendXImage, BackendGoText} {
		p, err := NewParser(backend)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Parse([]byte("definitely not a font")); err == nil {
			t.Errorf("%s: Parse(garbage) should fail", backend)
		}
	}
}

func TestFixedToFloat64(t *testing.T) {
	tests := []struct {
		in   fixed.Int26_6
		want float64
	}{
		{fixed.I(10), 10},
		{fixed.I(-3), -3},
		{32, 0.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := fixedToFloat64(tt.in); got != tt.want {
			t.Errorf("fixedToFloat64(%d) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestSegmentsToOutline(t *testing.T) {
	p := func(x, y int) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	}
	segments := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{p(0, 0)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{p(100, 0)}},
		{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{p(100, -100), p(0, -100)}},
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{p(10, -10)}},
		{Op: sfnt.SegmentOpCubeTo, Args: [3]fixed.Point26_6{p(20, -10), p(20, -20), p(10, -20)}},
	}

	o := segmentsToOutline(segments)

	if !o.SubpathsClosed() {
		t.Error("every contour should be implicitly closed")
	}

	wantOps := []glyph.Op{
		glyph.OpMoveTo, glyph.OpLineTo, glyph.OpQuadTo, glyph.OpClose,
		glyph.OpMoveTo, glyph.OpCubicTo, glyph.OpClose,
	}
	if len(o.Segments) != len(wantOps) {
		t.Fatalf("got %d segments, want %d", len(o.Segments), len(wantOps))
	}
	for i, op := range wantOps {
		if o.Segments[i].Op != op {
			t.Errorf("segment %d op = %v, want %v", i, o.Segments[i].Op, op)
		}
	}

	// sfnt Y points down; outlines point up.
	if pt := o.Segments[2].Points[0]; pt.X != 100 || pt.Y != 100 {
		t.Errorf("quad control = %+v, want {100 100}", pt)
	}
}
