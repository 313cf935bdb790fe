// Package font loads binary fonts (TTF/OTF) and exposes their glyphs as
// outlines in font units, Y up.
//
// The parsing library sits behind the Parser interface so it can be
// swapped: the default backend uses golang.org/x/image/font/opentype, and
// a second backend uses go-text/typesetting.
package font

import (
	"fmt"

	"github.com/gogpu/atlasgen/glyph"
)

// Face is a parsed font ready to supply glyphs to the engine.
type Face interface {
	// FaceName returns the font family name, or "" if unavailable.
	FaceName() string

	// UnitsPerEm returns the font-design coordinate scale.
	UnitsPerEm() float64

	// Ascender returns the ascender in font units.
	Ascender() float64

	// Descender returns the descender in font units (negative below the
	// baseline).
	Descender() float64

	// Glyph returns the outline and advance width for a code point.
	// ok is false when the font maps no glyph for the rune.
	Glyph(r rune) (outline *glyph.Outline, advance float64, ok bool)
}

// Parser parses font data into a Face.
type Parser interface {
	Parse(data []byte) (Face, error)
}

// Parser backend names.
const (
	BackendXImage = "ximage"
	BackendGoText = "gotext"
)

// NewParser returns the parser for the named backend, defaulting to the
// x/image backend for an empty name.
func NewParser(backend string) (Parser, error) {
	switch backend {
	case "", BackendXImage:
		return &XImageParser{}, nil
	case BackendGoText:
		return &GoTextParser{}, nil
	default:
		return nil, fmt.Errorf("font: unknown parser backend %q", backend)
	}
}
