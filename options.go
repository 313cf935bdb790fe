package atlasgen

import (
	"math"

	"github.com/gogpu/atlasgen/engine"
	"github.com/gogpu/atlasgen/font"
)

// Options configures a Converter run. Zero-valued numeric and string
// fields fall back to the defaults of DefaultOptions. Boolean fields do
// not: false is indistinguishable from unset, so a hand-built Options
// leaves Smart off. Start from DefaultOptions and override to keep the
// boolean defaults. Selection fields (charset, output directory) have no
// implicit default.
type Options struct {
	// FontBackend names the font parser: font.BackendXImage or
	// font.BackendGoText. Empty selects font.BackendXImage.
	FontBackend string

	// Charset selects the code points to render.
	Charset CharsetConfig

	// Size is the glyph em size in output pixels.
	Size int

	// Range is the distance-field spread in output pixels.
	Range float64

	// EdgeColoring selects the channel-assignment strategy, "simple"
	// or "none". Empty means "simple".
	EdgeColoring string

	// EdgeThresholdAngle is the corner-detection angle in radians.
	// Zero selects the generator default.
	EdgeThresholdAngle float64

	// Scanline enables the sign-correction pass over rendered glyphs.
	Scanline bool

	// MaxWidth and MaxHeight bound each atlas page.
	MaxWidth  int
	MaxHeight int

	// Padding is the pixel gap inserted between packed glyphs.
	Padding int

	// PowerOfTwo rounds final page dimensions up to powers of two.
	PowerOfTwo bool

	// Smart shrinks each page to its used extent before rounding.
	Smart bool

	// OutputDir receives the generated PNG pages and JSON documents.
	OutputDir string
}

// DefaultOptions returns the options used when a field is left zero.
func DefaultOptions() Options {
	return Options{
		FontBackend: font.BackendXImage,
		Charset:     CharsetConfig{Preset: PresetASCII},
		Size:        42,
		Range:       4,
		MaxWidth:    1024,
		MaxHeight:   1024,
		Padding:     1,
		Smart:       true,
	}
}

// applyDefaults fills zero-valued numeric and string tunables from
// DefaultOptions. Boolean fields are left as given.
func (o Options) applyDefaults() Options {
	def := DefaultOptions()
	if o.FontBackend == "" {
		o.FontBackend = def.FontBackend
	}
	if o.Size == 0 {
		o.Size = def.Size
	}
	if o.Range == 0 {
		o.Range = def.Range
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = def.MaxWidth
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = def.MaxHeight
	}
	return o
}

// ConfigError reports an invalid Options field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlasgen: invalid options." + e.Field + ": " + e.Reason
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	if o.FontBackend != font.BackendXImage && o.FontBackend != font.BackendGoText {
		return &ConfigError{Field: "FontBackend", Reason: "unknown backend " + o.FontBackend}
	}
	if o.Size < 8 {
		return &ConfigError{Field: "Size", Reason: "must be at least 8"}
	}
	if o.Range <= 0 {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	switch o.EdgeColoring {
	case "", "simple", "none":
	default:
		return &ConfigError{Field: "EdgeColoring", Reason: "unknown strategy " + o.EdgeColoring}
	}
	if o.EdgeThresholdAngle < 0 || o.EdgeThresholdAngle > math.Pi {
		return &ConfigError{Field: "EdgeThresholdAngle", Reason: "must be within [0, pi]"}
	}
	if o.MaxWidth < 1 {
		return &ConfigError{Field: "MaxWidth", Reason: "must be at least 1"}
	}
	if o.MaxHeight < 1 {
		return &ConfigError{Field: "MaxHeight", Reason: "must be at least 1"}
	}
	if o.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must not be negative"}
	}
	return nil
}

func (o Options) genParams() engine.GenParams {
	return engine.GenParams{
		Size:               o.Size,
		Range:              o.Range,
		EdgeColoring:       o.EdgeColoring,
		EdgeThresholdAngle: o.EdgeThresholdAngle,
		Scanline:           o.Scanline,
	}
}

func (o Options) packParams() engine.PackParams {
	return engine.PackParams{
		MaxWidth:   o.MaxWidth,
		MaxHeight:  o.MaxHeight,
		Padding:    o.Padding,
		PowerOfTwo: o.PowerOfTwo,
		Smart:      o.Smart,
	}
}
