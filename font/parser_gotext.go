package font

import (
	"bytes"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/atlasgen/glyph"
)

// GoTextParser implements Parser using go-text/typesetting. It handles a
// wider range of OpenType flavors than the x/image backend, including CFF
// outlines, and resolves richer name table data.
type GoTextParser struct{}

// Parse implements Parser.Parse.
func (p *GoTextParser) Parse(data []byte) (Face, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &gotextFace{face: face, upem: float64(face.Upem())}, nil
}

// gotextFace implements Face using a go-text face. go-text outlines are
// already Y up in font units, so no axis flip is needed.
type gotextFace struct {
	face *gtfont.Face
	upem float64
}

// FaceName implements Face.FaceName.
func (f *gotextFace) FaceName() string {
	return f.face.Describe().Family
}

// UnitsPerEm implements Face.UnitsPerEm.
func (f *gotextFace) UnitsPerEm() float64 {
	return f.upem
}

// Ascender implements Face.Ascender.
func (f *gotextFace) Ascender() float64 {
	if ext, ok := f.face.FontHExtents(); ok {
		return float64(ext.Ascender)
	}
	return f.upem
}

// Descender implements Face.Descender.
func (f *gotextFace) Descender() float64 {
	if ext, ok := f.face.FontHExtents(); ok {
		return float64(ext.Descender)
	}
	return 0
}

// Glyph implements Face.Glyph.
func (f *gotextFace) Glyph(r rune) (*glyph.Outline, float64, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return nil, 0, false
	}

	advance := float64(f.face.HorizontalAdvance(gid))

	data := f.face.GlyphData(gid)
	o, ok := data.(gtfont.GlyphOutline)
	if !ok {
		// Bitmap or SVG glyph data cannot serve as a vector outline.
		return nil, 0, false
	}

	outline := &glyph.Outline{}
	open := false
	pt := func(p gtfont.SegmentPoint) glyph.Point {
		return glyph.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	for _, seg := range o.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				outline.Close()
			}
			outline.MoveTo(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			outline.LineTo(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			outline.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			outline.CubicTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		outline.Close()
	}

	return outline, advance, true
}
