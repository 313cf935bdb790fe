// Package msdf is the default rasterization and packing engine. It renders
// glyph outlines into multi-channel signed distance fields with tight
// per-glyph bounds and packs the rasters into atlas pages with a shelf
// allocator.
package msdf

import (
	"math"
)

// Bitmap holds one glyph's generated distance field as RGB pixel data,
// row-major, three bytes per pixel. The median of the three channels
// recovers the signed distance; 0.5 sits on the outline edge.
type Bitmap struct {
	Data          []byte
	Width, Height int
}

// NewBitmap allocates a zeroed (far outside) bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Data:   make([]byte, width*height*3),
		Width:  width,
		Height: height,
	}
}

// SetPixel sets the RGB values at (x, y).
func (b *Bitmap) SetPixel(x, y int, r, g, bl byte) {
	offset := (y*b.Width + x) * 3
	b.Data[offset] = r
	b.Data[offset+1] = g
	b.Data[offset+2] = bl
}

// GetPixel returns the RGB values at (x, y).
func (b *Bitmap) GetPixel(x, y int) (r, g, bl byte) {
	offset := (y*b.Width + x) * 3
	return b.Data[offset], b.Data[offset+1], b.Data[offset+2]
}

// SignedDistance is a signed distance with the orthogonality metadata used
// to resolve ties at segment endpoints.
type SignedDistance struct {
	// Distance is the signed Euclidean distance. Positive on the left of
	// the edge direction, so counter-clockwise contours are positive
	// inside.
	Distance float64

	// Dot breaks ties when two candidate distances are equal.
	Dot float64
}

// Infinite returns a signed distance representing infinity.
func Infinite() SignedDistance {
	return SignedDistance{Distance: math.MaxFloat64}
}

// IsCloserThan returns true if d is closer to the edge than other.
func (d SignedDistance) IsCloserThan(other SignedDistance) bool {
	absD := math.Abs(d.Distance)
	absO := math.Abs(other.Distance)
	if absD < absO {
		return true
	}
	if absD > absO {
		return false
	}
	return d.Dot < other.Dot
}

// Combine returns the closer of the two distances.
func (d SignedDistance) Combine(other SignedDistance) SignedDistance {
	if other.IsCloserThan(d) {
		return other
	}
	return d
}
