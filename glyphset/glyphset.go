// Package glyphset assembles synthetic glyph-set records around standalone
// outlines so the rasterization engine can treat them uniformly with real
// font glyphs.
package glyphset

import (
	"fmt"

	"github.com/gogpu/atlasgen/glyph"
)

// NotdefAdvanceRatio is the advance width of the fallback glyph as a
// fraction of the em size.
const NotdefAdvanceRatio = 0.6

// notdefInsetRatio is the inset of the fallback box from the em square.
const notdefInsetRatio = 0.1

// Glyph is one entry of a glyph-set record.
type Glyph struct {
	// Name identifies the glyph within the set.
	Name string

	// Rune is the code point assigned to the glyph by the caller.
	// Valid only when HasRune is true; the fallback glyph has none.
	Rune    rune
	HasRune bool

	// AdvanceWidth is the horizontal advance in font units.
	AdvanceWidth float64

	// Outline is the glyph geometry in font units, Y up.
	Outline *glyph.Outline
}

// Set is a minimal glyph-set record: enough vertical metrics and glyph
// entries for a rasterizer to consume it as if it were a real font.
// A set always contains the fallback ".notdef" glyph as its first entry.
// Sets are built once and handed wholesale to the engine; they are not
// mutated afterward.
type Set struct {
	faceName   string
	unitsPerEm float64
	ascender   float64
	descender  float64
	glyphs     []Glyph

	index map[rune]int
}

// New creates an empty set with the given metrics. All field validation
// happens here, not at point of use.
func New(faceName string, unitsPerEm, ascender, descender float64) (*Set, error) {
	if unitsPerEm <= 0 {
		return nil, fmt.Errorf("glyphset: unitsPerEm must be positive, got %g", unitsPerEm)
	}
	if ascender <= descender {
		return nil, fmt.Errorf("glyphset: ascender (%g) must exceed descender (%g)", ascender, descender)
	}
	s := &Set{
		faceName:   faceName,
		unitsPerEm: unitsPerEm,
		ascender:   ascender,
		descender:  descender,
		index:      make(map[rune]int),
	}
	s.glyphs = append(s.glyphs, Glyph{
		Name:         ".notdef",
		AdvanceWidth: NotdefAdvanceRatio * unitsPerEm,
		Outline:      notdefOutline(unitsPerEm),
	})
	return s, nil
}

// EmptyOutlineError is returned when path data normalized successfully but
// yielded no drawing operations.
type EmptyOutlineError struct {
	Name string
}

func (e *EmptyOutlineError) Error() string {
	return fmt.Sprintf("glyphset: glyph %q has no geometry", e.Name)
}

// Add appends a glyph for the given code point. The advance width is the
// greater of the outline's own horizontal extent and minAdvance (typically
// the source canvas width rescaled to font units), so the advance never
// clips the visible shape.
func (s *Set) Add(name string, r rune, outline *glyph.Outline, minAdvance float64) error {
	if outline.IsEmpty() {
		return &EmptyOutlineError{Name: name}
	}
	advance := outline.Bounds().MaxX
	if minAdvance > advance {
		advance = minAdvance
	}
	s.index[r] = len(s.glyphs)
	s.glyphs = append(s.glyphs, Glyph{
		Name:         name,
		Rune:         r,
		HasRune:      true,
		AdvanceWidth: advance,
		Outline:      outline,
	})
	return nil
}

// FaceName returns the name assigned to the set.
func (s *Set) FaceName() string { return s.faceName }

// UnitsPerEm returns the font-design coordinate scale.
func (s *Set) UnitsPerEm() float64 { return s.unitsPerEm }

// Ascender returns the ascender in font units.
func (s *Set) Ascender() float64 { return s.ascender }

// Descender returns the descender in font units (typically negative or zero).
func (s *Set) Descender() float64 { return s.descender }

// Len returns the number of glyphs including the fallback.
func (s *Set) Len() int { return len(s.glyphs) }

// Glyphs returns the ordered glyph entries, fallback first.
func (s *Set) Glyphs() []Glyph { return s.glyphs }

// Glyph returns the outline and advance for a code point.
func (s *Set) Glyph(r rune) (*glyph.Outline, float64, bool) {
	i, ok := s.index[r]
	if !ok {
		return nil, 0, false
	}
	g := s.glyphs[i]
	return g.Outline, g.AdvanceWidth, true
}

// notdefOutline builds the fallback glyph geometry: a hollow square frame
// inset from the em square, with the inner contour wound the opposite way
// so it renders as a box outline.
func notdefOutline(unitsPerEm float64) *glyph.Outline {
	outer := notdefInsetRatio * unitsPerEm
	inner := 2 * notdefInsetRatio * unitsPerEm
	lo, hi := outer, unitsPerEm-outer
	ilo, ihi := inner, unitsPerEm-inner

	o := &glyph.Outline{}
	// Outer contour, counter-clockwise.
	o.MoveTo(glyph.Point{X: lo, Y: lo})
	o.LineTo(glyph.Point{X: hi, Y: lo})
	o.LineTo(glyph.Point{X: hi, Y: hi})
	o.LineTo(glyph.Point{X: lo, Y: hi})
	o.Close()
	// Inner contour, clockwise, forms the hole.
	o.MoveTo(glyph.Point{X: ilo, Y: ilo})
	o.LineTo(glyph.Point{X: ilo, Y: ihi})
	o.LineTo(glyph.Point{X: ihi, Y: ihi})
	o.LineTo(glyph.Point{X: ihi, Y: ilo})
	o.Close()
	return o
}
