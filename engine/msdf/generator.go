package msdf

import (
	"math"
	"sort"

	"github.com/gogpu/atlasgen/glyph"
)

// Generator renders glyph shapes into distance-field bitmaps. The raster
// for each glyph is sized tightly to its ink plus the distance-field
// spread, rather than a fixed cell, so atlas packing wastes no space.
type Generator struct {
	// PxRange is the distance-field spread in output pixels.
	PxRange float64

	// AngleThreshold is the minimum corner angle in radians for edge
	// coloring.
	AngleThreshold float64

	// Coloring selects the channel assignment strategy: "simple" or "none".
	Coloring string

	// Scanline enables the nonzero-winding sign correction pass.
	Scanline bool
}

// Render rasterizes a shape at the given scale (pixels per font unit).
// The ink's bounding box is padded by half the spread on every side; the
// returned bitmap is nil when the shape has no edges.
func (g *Generator) Render(shape *Shape, scale float64) *Bitmap {
	if shape.EdgeCount() == 0 {
		return nil
	}

	switch g.Coloring {
	case "", ColoringSimple:
		AssignColors(shape, g.AngleThreshold)
	case ColoringNone:
		AssignWhite(shape)
	}

	bounds := shape.Bounds
	pad := g.PxRange / 2
	width := int(math.Ceil(bounds.Width()*scale + g.PxRange))
	height := int(math.Ceil(bounds.Height()*scale + g.PxRange))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	bitmap := NewBitmap(width, height)

	for y := 0; y < height; y++ {
		// Raster rows run top-down; outline Y runs bottom-up.
		oy := bounds.MaxY - (float64(y)+0.5-pad)/scale
		for x := 0; x < width; x++ {
			ox := bounds.MinX + (float64(x)+0.5-pad)/scale

			p := glyph.Point{X: ox, Y: oy}
			r := channelDistance(shape, p, EdgeColor.HasRed)
			gr := channelDistance(shape, p, EdgeColor.HasGreen)
			bl := channelDistance(shape, p, EdgeColor.HasBlue)

			bitmap.SetPixel(x, y,
				distanceToPixel(r.Distance, g.PxRange, scale),
				distanceToPixel(gr.Distance, g.PxRange, scale),
				distanceToPixel(bl.Distance, g.PxRange, scale),
			)
		}
	}

	if g.Scanline {
		g.scanlineCorrect(bitmap, shape, scale, pad)
	}

	return bitmap
}

// Edge coloring strategy names.
const (
	ColoringSimple = "simple"
	ColoringNone   = "none"
)

// channelDistance calculates the minimum signed distance over the edges
// contributing to one channel.
func channelDistance(shape *Shape, p glyph.Point, selected func(EdgeColor) bool) SignedDistance {
	minDist := Infinite()
	for _, contour := range shape.Contours {
		for i := range contour.Edges {
			edge := &contour.Edges[i]
			if !selected(edge.Color) {
				continue
			}
			minDist = minDist.Combine(edge.SignedDistance(p))
		}
	}

	// No edge carried this channel; fall back to all edges so the channel
	// still encodes a meaningful distance.
	if minDist.Distance == math.MaxFloat64 {
		for _, contour := range shape.Contours {
			for i := range contour.Edges {
				minDist = minDist.Combine(contour.Edges[i].SignedDistance(p))
			}
		}
	}
	return minDist
}

// distanceToPixel converts a signed distance in font units to a pixel
// value. 128 represents the edge; the value saturates at plus and minus
// half the spread.
func distanceToPixel(distance, pxRange, scale float64) byte {
	distPx := distance * scale
	normalized := 0.5 + distPx/pxRange
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return byte(math.Round(normalized * 255))
}

// scanlineCorrect forces the median sign of every pixel to agree with the
// nonzero winding rule. Pixels whose median disagrees get all channels set
// to the inverted median, which fixes sign artifacts from overlapping or
// misordered contours at the cost of corner data on those pixels only.
func (g *Generator) scanlineCorrect(bitmap *Bitmap, shape *Shape, scale, pad float64) {
	bounds := shape.Bounds
	var crossings []crossing

	for y := 0; y < bitmap.Height; y++ {
		oy := bounds.MaxY - (float64(y)+0.5-pad)/scale

		crossings = crossings[:0]
		for _, contour := range shape.Contours {
			for i := range contour.Edges {
				crossings = contour.Edges[i].HorizontalIntersections(oy, crossings)
			}
		}
		sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

		for x := 0; x < bitmap.Width; x++ {
			ox := bounds.MinX + (float64(x)+0.5-pad)/scale

			winding := 0
			for _, c := range crossings {
				if c.x <= ox {
					continue
				}
				if c.up {
					winding++
				} else {
					winding--
				}
			}
			inside := winding != 0

			r, gr, bl := bitmap.GetPixel(x, y)
			m := median3(r, gr, bl)
			if (m > 127) != inside {
				inv := 255 - m
				bitmap.SetPixel(x, y, inv, inv, inv)
			}
		}
	}
}

// median3 returns the median of three byte values.
func median3(a, b, c byte) byte {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}
