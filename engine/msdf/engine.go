package msdf

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/atlasgen/engine"
)

// Engine is the default distance-field rasterization and packing engine.
// It renders every charset glyph with tight bounds and packs the rasters
// into as many pages as needed, in charset order.
type Engine struct{}

// New creates the default engine.
func New() *Engine {
	return &Engine{}
}

// binState accumulates one page while packing.
type binState struct {
	alloc  *ShelfAllocator
	glyphs []placedBitmap
	rects  []engine.Placed
}

type placedBitmap struct {
	bitmap *Bitmap
	x, y   int
}

// Rasterize implements engine.Engine.
func (e *Engine) Rasterize(src engine.GlyphSource, charset []rune, gen engine.GenParams, pack engine.PackParams) (*engine.Result, error) {
	if err := validateParams(gen, pack); err != nil {
		return nil, err
	}

	angle := gen.EdgeThresholdAngle
	if angle == 0 {
		angle = math.Pi / 3
	}
	g := &Generator{
		PxRange:        gen.Range,
		AngleThreshold: angle,
		Coloring:       gen.EdgeColoring,
		Scanline:       gen.Scanline,
	}

	upem := src.UnitsPerEm()
	scale := float64(gen.Size) / upem
	rangeEm := gen.Range / float64(gen.Size)

	var bins []*binState
	current := func() *binState {
		if len(bins) == 0 {
			bins = append(bins, &binState{
				alloc: NewShelfAllocator(pack.MaxWidth, pack.MaxHeight, pack.Padding),
			})
		}
		return bins[len(bins)-1]
	}

	for _, r := range charset {
		outline, advance, ok := src.Glyph(r)

		var bitmap *Bitmap
		var left, top float64
		if ok {
			shape := ShapeFromOutline(outline)
			bitmap = g.Render(shape, scale)
			if bitmap != nil {
				left = shape.Bounds.MinX / upem
				top = shape.Bounds.MaxY / upem
			}
		}

		placed := engine.Placed{
			Rune:    r,
			Advance: advance / upem,
			Range:   rangeEm,
		}

		if bitmap == nil {
			// Whitespace or unmapped glyph: no raster, no padding, only
			// the advance matters.
			bin := current()
			bin.rects = append(bin.rects, placed)
			continue
		}

		bin := current()
		x, y, fits := bin.alloc.Allocate(bitmap.Width, bitmap.Height)
		if !fits {
			if !bin.alloc.CanFit(bitmap.Width, bitmap.Height) && len(bin.glyphs) == 0 {
				return nil, &GlyphTooLargeError{Rune: r, Width: bitmap.Width, Height: bitmap.Height}
			}
			fresh := &binState{
				alloc: NewShelfAllocator(pack.MaxWidth, pack.MaxHeight, pack.Padding),
			}
			x, y, fits = fresh.alloc.Allocate(bitmap.Width, bitmap.Height)
			if !fits {
				return nil, &GlyphTooLargeError{Rune: r, Width: bitmap.Width, Height: bitmap.Height}
			}
			bins = append(bins, fresh)
			bin = fresh
		}

		bin.glyphs = append(bin.glyphs, placedBitmap{bitmap: bitmap, x: x, y: y})
		placed.X = x
		placed.Y = y
		placed.Width = bitmap.Width
		placed.Height = bitmap.Height
		placed.Left = left
		placed.Top = top
		bin.rects = append(bin.rects, placed)
	}

	result := &engine.Result{
		Metrics:  engine.SourceMetrics(src),
		FaceName: src.FaceName(),
	}
	for _, bin := range bins {
		result.Bins = append(result.Bins, finalizeBin(bin, pack))
	}
	return result, nil
}

// finalizeBin resolves the page dimensions and composites the glyph
// bitmaps into the page image.
func finalizeBin(bin *binState, pack engine.PackParams) engine.Bin {
	width, height := pack.MaxWidth, pack.MaxHeight
	if pack.Smart {
		width, height = bin.alloc.UsedExtent()
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
	}
	if pack.PowerOfTwo {
		width = engine.PowerOfTwoCeil(width)
		height = engine.PowerOfTwoCeil(height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Opaque black background: far outside for all channels.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	for _, pb := range bin.glyphs {
		for y := 0; y < pb.bitmap.Height; y++ {
			for x := 0; x < pb.bitmap.Width; x++ {
				r, g, b := pb.bitmap.GetPixel(x, y)
				img.SetRGBA(pb.x+x, pb.y+y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return engine.Bin{
		Width:  width,
		Height: height,
		Image:  img,
		Rects:  bin.rects,
	}
}

// validateParams checks generation and packing parameters.
func validateParams(gen engine.GenParams, pack engine.PackParams) error {
	if gen.Size < 8 {
		return &ConfigError{Field: "Size", Reason: "must be at least 8"}
	}
	if gen.Range <= 0 {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	switch gen.EdgeColoring {
	case "", ColoringSimple, ColoringNone:
	default:
		return &ConfigError{Field: "EdgeColoring", Reason: "unknown strategy " + gen.EdgeColoring}
	}
	if gen.EdgeThresholdAngle < 0 || gen.EdgeThresholdAngle > math.Pi {
		return &ConfigError{Field: "EdgeThresholdAngle", Reason: "must be in [0, pi]"}
	}
	if pack.MaxWidth < 1 || pack.MaxHeight < 1 {
		return &ConfigError{Field: "MaxWidth", Reason: "page dimensions must be positive"}
	}
	if pack.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}
