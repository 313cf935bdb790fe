// Package atlas assembles the renderer-facing atlas metadata document from
// the engine's raw placement results.
package atlas

// Page describes one packed texture page.
type Page struct {
	// File is the page's file name without extension: {baseName}_{index}.
	File string `json:"file"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// Glyph is one glyph's quad geometry in atlas pixel space.
type Glyph struct {
	// ID is the originating code point.
	ID int `json:"id"`

	// Page indexes into the document's page list.
	Page int `json:"page"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	XAdvance float64 `json:"xadvance"`
	XOffset  float64 `json:"xoffset"`
	YOffset  float64 `json:"yoffset"`

	// Rotated is present only when the rectangle was packed rotated;
	// consumers treat a missing field as not rotated.
	Rotated bool `json:"rotated,omitempty"`
}

// Info carries the rendering parameters consumers need.
type Info struct {
	// Size is the pixel size of one em.
	Size int `json:"size"`

	// Face is the resolved face name of the glyph source.
	Face string `json:"face"`
}

// Metrics are the source's em-normalized vertical metrics, copied verbatim
// from the engine output.
type Metrics struct {
	EmSize             float64 `json:"emSize"`
	LineHeight         float64 `json:"lineHeight"`
	Ascender           float64 `json:"ascender"`
	Descender          float64 `json:"descender"`
	UnderlineY         float64 `json:"underlineY"`
	UnderlineThickness float64 `json:"underlineThickness"`
}

// Document is the externally visible atlas metadata. Glyph order matches
// the order bins and rectangles were produced (page-major, packing order
// within a page) and is not sorted by code point.
type Document struct {
	Pages         []Page  `json:"pages"`
	Glyphs        []Glyph `json:"glyphs"`
	Info          Info    `json:"info"`
	Metrics       Metrics `json:"metrics"`
	DistanceRange float64 `json:"distanceRange"`
}
