package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlasgen/glyph"
)

// XImageParser implements Parser using golang.org/x/image/font/opentype.
type XImageParser struct{}

// Parse implements Parser.Parse.
func (p *XImageParser) Parse(data []byte) (Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &ximageFace{font: f, upem: float64(f.UnitsPerEm())}, nil
}

// ximageFace implements Face using sfnt.Font.
//
// All sfnt queries run at ppem equal to the units-per-em so the fixed
// point results come back in font units.
type ximageFace struct {
	font *opentype.Font
	upem float64
}

func (f *ximageFace) ppem() fixed.Int26_6 {
	return fixed.I(int(f.upem))
}

// FaceName implements Face.FaceName.
func (f *ximageFace) FaceName() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// UnitsPerEm implements Face.UnitsPerEm.
func (f *ximageFace) UnitsPerEm() float64 {
	return f.upem
}

// Ascender implements Face.Ascender.
func (f *ximageFace) Ascender() float64 {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return f.upem
	}
	return fixedToFloat64(m.Ascent)
}

// Descender implements Face.Descender. sfnt reports descent as a positive
// distance below the baseline; Face uses the negative convention.
func (f *ximageFace) Descender() float64 {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return -fixedToFloat64(m.Descent)
}

// Glyph implements Face.Glyph.
func (f *ximageFace) Glyph(r rune) (*glyph.Outline, float64, bool) {
	var buf sfnt.Buffer

	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return nil, 0, false
	}

	advance, err := f.font.GlyphAdvance(&buf, idx, f.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, 0, false
	}

	segments, err := f.font.LoadGlyph(&buf, idx, f.ppem(), nil)
	if err != nil {
		return nil, 0, false
	}

	return segmentsToOutline(segments), fixedToFloat64(advance), true
}

// segmentsToOutline converts sfnt segments into an outline. sfnt's Y axis
// increases downward, so Y is negated; contours are implicitly closed at
// every moveto and at the end.
func segmentsToOutline(segments sfnt.Segments) *glyph.Outline {
	outline := &glyph.Outline{}
	open := false
	pt := func(p fixed.Point26_6) glyph.Point {
		return glyph.Point{X: fixedToFloat64(p.X), Y: -fixedToFloat64(p.Y)}
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				outline.Close()
			}
			outline.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			outline.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			outline.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			outline.CubicTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		outline.Close()
	}
	return outline
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
