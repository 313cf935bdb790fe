// Package engine defines the narrow boundary to the distance-field
// rasterization and packing engine. The conversion core depends only on
// the types here, which keeps the engine swappable and mockable; the
// default implementation lives in the msdf subpackage.
package engine

import (
	"image"
	"math"

	"github.com/gogpu/atlasgen/glyph"
)

// GlyphSource supplies glyph outlines and metrics to the engine. Both real
// fonts and synthetic glyph sets implement it.
type GlyphSource interface {
	// FaceName returns a human-readable name for the source.
	FaceName() string

	// UnitsPerEm returns the font-design coordinate scale.
	UnitsPerEm() float64

	// Ascender returns the ascender in font units.
	Ascender() float64

	// Descender returns the descender in font units.
	Descender() float64

	// Glyph returns the outline (font units, Y up) and advance width for
	// a code point. ok is false when the source defines no such glyph.
	Glyph(r rune) (outline *glyph.Outline, advance float64, ok bool)
}

// GenParams controls distance-field generation.
type GenParams struct {
	// Size is the output pixel size of one em.
	Size int

	// Range is the distance-field spread in output pixels.
	Range float64

	// EdgeColoring selects the channel assignment strategy:
	// "simple" (corner-based, the default) or "none" (single channel
	// duplicated, plain SDF behavior).
	EdgeColoring string

	// EdgeThresholdAngle is the minimum corner angle in radians for the
	// simple coloring strategy.
	EdgeThresholdAngle float64

	// Scanline enables a nonzero-winding sign correction pass.
	Scanline bool
}

// PackParams controls rectangle packing into atlas pages.
type PackParams struct {
	// MaxWidth and MaxHeight bound each page in pixels.
	MaxWidth, MaxHeight int

	// Padding is the gap between packed rectangles in pixels.
	Padding int

	// PowerOfTwo rounds page dimensions up to powers of two.
	PowerOfTwo bool

	// AllowRotation permits 90-degree rotation of rectangles.
	AllowRotation bool

	// Smart shrinks the final page to the used extent.
	Smart bool
}

// Placed is one packed glyph rectangle in atlas pixel space, together
// with its raster metrics. Advance, Left, Top and Range are em-normalized:
// 1.0 equals one em, which renders at GenParams.Size pixels.
type Placed struct {
	// Rune is the code point this rectangle renders.
	Rune rune

	// X, Y, Width, Height locate the rectangle in the page. A glyph with
	// no visible ink has zero width and height.
	X, Y, Width, Height int

	// Rotated is true when the rectangle was packed rotated 90 degrees.
	Rotated bool

	// Advance is the horizontal advance.
	Advance float64

	// Left is the distance of the ink's left edge from the pen position.
	Left float64

	// Top is the height of the ink's top edge above the baseline.
	Top float64

	// Range is the distance-field spread actually used.
	Range float64
}

// Bin is one packed atlas page.
type Bin struct {
	Width, Height int

	// Image holds the page pixels; the distance field occupies the RGB
	// channels, alpha is opaque.
	Image *image.RGBA

	// Rects are the placed rectangles in packing order.
	Rects []Placed
}

// Metrics are font-level vertical metrics, em-normalized. They are copied
// verbatim into the output metadata.
type Metrics struct {
	EmSize             float64
	LineHeight         float64
	AscenderY          float64
	DescenderY         float64
	UnderlineY         float64
	UnderlineThickness float64
}

// Result is the engine's complete response for one conversion.
type Result struct {
	// Bins are the packed pages in production order.
	Bins []Bin

	// Metrics are the source's vertical metrics.
	Metrics Metrics

	// FaceName is the source's resolved name.
	FaceName string
}

// Engine rasterizes a glyph source's charset into packed distance-field
// pages.
type Engine interface {
	Rasterize(src GlyphSource, charset []rune, gen GenParams, pack PackParams) (*Result, error)
}

// SourceMetrics derives em-normalized metrics from a glyph source. The
// underline position follows the common convention of sitting at one tenth
// of an em below the baseline.
func SourceMetrics(src GlyphSource) Metrics {
	upem := src.UnitsPerEm()
	asc := src.Ascender() / upem
	desc := src.Descender() / upem
	return Metrics{
		EmSize:             1,
		LineHeight:         asc - desc,
		AscenderY:          asc,
		DescenderY:         desc,
		UnderlineY:         -0.1,
		UnderlineThickness: 0.05,
	}
}

// PowerOfTwoCeil rounds v up to the next power of two.
func PowerOfTwoCeil(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(v))))
}
