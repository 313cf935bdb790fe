package msdf

import (
	"math"

	"github.com/gogpu/atlasgen/glyph"
)

// Contour represents a closed contour of edges.
type Contour struct {
	// Edges is the list of edges that form this contour.
	Edges []Edge

	// Winding is the signed area of the contour.
	// Positive = counter-clockwise (filled), negative = clockwise (hole).
	Winding float64
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e Edge) {
	c.Edges = append(c.Edges, e)
}

// Bounds returns the bounding box of all edges in the contour.
func (c *Contour) Bounds() glyph.Rect {
	if len(c.Edges) == 0 {
		return glyph.Rect{}
	}
	bounds := c.Edges[0].Bounds()
	for i := 1; i < len(c.Edges); i++ {
		bounds = bounds.Union(c.Edges[i].Bounds())
	}
	return bounds
}

// CalculateWinding computes and stores the winding via the shoelace formula.
func (c *Contour) CalculateWinding() {
	var area float64
	for i := range c.Edges {
		p0 := c.Edges[i].StartPoint()
		p1 := c.Edges[i].EndPoint()
		area += p0.Cross(p1)
	}
	c.Winding = area / 2
}

// Shape represents a complete glyph shape consisting of closed contours.
type Shape struct {
	Contours []*Contour

	// Bounds is the overall bounding box.
	Bounds glyph.Rect
}

// CalculateBounds computes and stores the overall bounding box.
func (s *Shape) CalculateBounds() {
	if len(s.Contours) == 0 {
		s.Bounds = glyph.Rect{}
		return
	}
	s.Bounds = s.Contours[0].Bounds()
	for i := 1; i < len(s.Contours); i++ {
		s.Bounds = s.Bounds.Union(s.Contours[i].Bounds())
	}
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for _, c := range s.Contours {
		count += len(c.Edges)
	}
	return count
}

// Validate checks that every contour starts and ends at the same point.
func (s *Shape) Validate() bool {
	for _, contour := range s.Contours {
		if len(contour.Edges) == 0 {
			continue
		}
		first := contour.Edges[0].StartPoint()
		last := contour.Edges[len(contour.Edges)-1].EndPoint()
		if math.Abs(first.X-last.X) > 1e-6 || math.Abs(first.Y-last.Y) > 1e-6 {
			return false
		}
	}
	return true
}

// ShapeFromOutline converts an outline into a shape of colored edges.
// Close operations emit the closing line when the current point does not
// already coincide with the subpath start; a moveto while a contour is
// still open finalizes the previous contour as-is.
func ShapeFromOutline(outline *glyph.Outline) *Shape {
	shape := &Shape{}
	if outline.IsEmpty() {
		return shape
	}

	var contour *Contour
	var pos, start glyph.Point

	finish := func() {
		if contour != nil && len(contour.Edges) > 0 {
			contour.CalculateWinding()
			shape.Contours = append(shape.Contours, contour)
		}
		contour = nil
	}

	for _, seg := range outline.Segments {
		switch seg.Op {
		case glyph.OpMoveTo:
			finish()
			contour = &Contour{}
			pos = seg.Points[0]
			start = pos

		case glyph.OpLineTo:
			if contour == nil {
				contour = &Contour{}
				start = pos
			}
			end := seg.Points[0]
			// Skip degenerate lines.
			if end.Sub(pos).LengthSquared() > 1e-12 {
				contour.AddEdge(NewLinearEdge(pos, end))
			}
			pos = end

		case glyph.OpQuadTo:
			if contour == nil {
				contour = &Contour{}
				start = pos
			}
			contour.AddEdge(NewQuadraticEdge(pos, seg.Points[0], seg.Points[1]))
			pos = seg.Points[1]

		case glyph.OpCubicTo:
			if contour == nil {
				contour = &Contour{}
				start = pos
			}
			contour.AddEdge(NewCubicEdge(pos, seg.Points[0], seg.Points[1], seg.Points[2]))
			pos = seg.Points[2]

		case glyph.OpClose:
			if contour != nil {
				if start.Sub(pos).LengthSquared() > 1e-12 {
					contour.AddEdge(NewLinearEdge(pos, start))
				}
				pos = start
				finish()
			}
		}
	}
	finish()

	shape.CalculateBounds()
	return shape
}

// AssignColors assigns edge colors to preserve corners. Edges meeting at
// angles sharper than angleThreshold get different channel colors so the
// median operation keeps the corner crisp.
func AssignColors(shape *Shape, angleThreshold float64) {
	for _, contour := range shape.Contours {
		assignContourColors(contour, angleThreshold)
	}
}

// AssignWhite gives every edge all channels, producing plain single-channel
// distance-field behavior.
func AssignWhite(shape *Shape) {
	for _, contour := range shape.Contours {
		for i := range contour.Edges {
			contour.Edges[i].Color = ColorWhite
		}
	}
}

// assignContourColors assigns colors to edges in a single contour.
func assignContourColors(contour *Contour, angleThreshold float64) {
	n := len(contour.Edges)
	if n == 0 {
		return
	}
	if n == 1 {
		contour.Edges[0].Color = ColorWhite
		return
	}

	// Detect corners between consecutive edges.
	var corners []int
	for i := 0; i < n; i++ {
		prev := &contour.Edges[i]
		next := &contour.Edges[(i+1)%n]
		dirOut := prev.DirectionAt(1).Normalized()
		dirIn := next.DirectionAt(0).Normalized()
		if glyph.AngleBetween(dirOut, dirIn) > angleThreshold {
			corners = append(corners, i)
		}
	}

	if len(corners) == 0 {
		for i := range contour.Edges {
			contour.Edges[i].Color = ColorWhite
		}
		return
	}

	m := len(corners)
	if m == 1 {
		// A single corner cannot separate two runs, so the contour is
		// split into thirds starting at the corner.
		third := (n + 2) / 3
		for j := 0; j < n; j++ {
			idx := (corners[0] + 1 + j) % n
			switch {
			case j < third:
				contour.Edges[idx].Color = ColorCyan
			case j < 2*third:
				contour.Edges[idx].Color = ColorMagenta
			default:
				contour.Edges[idx].Color = ColorYellow
			}
		}
		return
	}

	// Runs between corners alternate between two colors. Every adjacent
	// pair of the CMY colors shares exactly one channel, which is what
	// the median reconstruction needs at a corner. With an odd run count
	// the last run takes the third color so the wrap-around pair still
	// differs.
	for i := 0; i < m; i++ {
		start := corners[i]
		end := corners[(i+1)%m]
		color := ColorCyan
		if i%2 == 1 {
			color = ColorMagenta
		}
		if i == m-1 && m%2 == 1 {
			color = ColorYellow
		}
		if end <= start {
			end += n
		}
		for j := start + 1; j <= end; j++ {
			contour.Edges[j%n].Color = color
		}
	}
}
