package atlas

import (
	"fmt"
	"math"

	"github.com/gogpu/atlasgen/engine"
)

// Round2 rounds to two decimal digits. Offsets and advances in the output
// document use this exact rule so the metadata is bit-for-bit reproducible
// across platforms.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Assemble translates the engine's pixel-space placement into the
// metadata document for a rendered size of size pixels per em.
//
// For glyphs with visible ink the offsets compensate for the extra border
// the distance-field spread adds around the silhouette: the raster extends
// half the spread beyond the ink on every side, so the quad must shift by
// that amount. Empty rectangles carry no raster padding and keep offsets
// of exactly zero.
func Assemble(baseName string, res *engine.Result, size int, distanceRange float64) *Document {
	doc := &Document{
		Pages:         make([]Page, 0, len(res.Bins)),
		Glyphs:        []Glyph{},
		Info:          Info{Size: size, Face: res.FaceName},
		DistanceRange: distanceRange,
		Metrics: Metrics{
			EmSize:             res.Metrics.EmSize,
			LineHeight:         res.Metrics.LineHeight,
			Ascender:           res.Metrics.AscenderY,
			Descender:          res.Metrics.DescenderY,
			UnderlineY:         res.Metrics.UnderlineY,
			UnderlineThickness: res.Metrics.UnderlineThickness,
		},
	}

	fsize := float64(size)
	for page, bin := range res.Bins {
		doc.Pages = append(doc.Pages, Page{
			File:   fmt.Sprintf("%s_%d", baseName, page),
			Width:  bin.Width,
			Height: bin.Height,
		})
		for _, rect := range bin.Rects {
			g := Glyph{
				ID:       int(rect.Rune),
				Page:     page,
				X:        rect.X,
				Y:        rect.Y,
				Width:    rect.Width,
				Height:   rect.Height,
				XAdvance: Round2(rect.Advance * fsize),
				Rotated:  rect.Rotated,
			}
			if rect.Width > 0 && rect.Height > 0 {
				g.XOffset = Round2((rect.Left - rect.Range/2) * fsize)
				g.YOffset = Round2((res.Metrics.AscenderY - (rect.Top + rect.Range/2)) * fsize)
			}
			doc.Glyphs = append(doc.Glyphs, g)
		}
	}
	return doc
}
