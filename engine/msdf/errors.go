package msdf

import "fmt"

// ConfigError reports an invalid generation or packing parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdf: invalid config." + e.Field + ": " + e.Reason
}

// GlyphTooLargeError is returned when a glyph raster cannot fit into even
// an empty page of the configured maximum dimensions.
type GlyphTooLargeError struct {
	Rune          rune
	Width, Height int
}

func (e *GlyphTooLargeError) Error() string {
	return fmt.Sprintf("msdf: glyph U+%04X raster %dx%d exceeds page size", e.Rune, e.Width, e.Height)
}
