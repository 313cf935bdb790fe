// Package glyph provides the outline geometry shared by the SVG importer,
// the synthetic glyph-set assembler, the font loaders and the distance-field
// engine. Outlines are expressed in font-design units with the Y axis
// increasing upward, independent of any rendered pixel size.
package glyph

import "math"

// Op is the type of path operation in an outline.
type Op uint8

const (
	// OpMoveTo starts a new subpath at the target point.
	OpMoveTo Op = iota

	// OpLineTo draws a line to the target point.
	OpLineTo

	// OpQuadTo draws a quadratic Bezier curve.
	OpQuadTo

	// OpCubicTo draws a cubic Bezier curve.
	OpCubicTo

	// OpClose closes the current subpath.
	OpClose
)

// String returns a string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Segment is a single drawing operation of an outline.
type Segment struct {
	// Op is the segment operation type.
	Op Op

	// Points contains the control and end points for this segment.
	//   - MoveTo: Points[0] is the target point
	//   - LineTo: Points[0] is the target point
	//   - QuadTo: Points[0] is control, Points[1] is target
	//   - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	//   - Close: no points
	Points [3]Point
}

// Outline is an ordered sequence of drawing operations describing one or
// more subpaths. A well-formed outline closes every subpath it opens.
type Outline struct {
	Segments []Segment
}

// MoveTo starts a new subpath at p.
func (o *Outline) MoveTo(p Point) {
	o.Segments = append(o.Segments, Segment{Op: OpMoveTo, Points: [3]Point{p}})
}

// LineTo draws a line to p.
func (o *Outline) LineTo(p Point) {
	o.Segments = append(o.Segments, Segment{Op: OpLineTo, Points: [3]Point{p}})
}

// QuadTo draws a quadratic Bezier curve through control ctrl to end.
func (o *Outline) QuadTo(ctrl, end Point) {
	o.Segments = append(o.Segments, Segment{Op: OpQuadTo, Points: [3]Point{ctrl, end}})
}

// CubicTo draws a cubic Bezier curve through controls ctrl1, ctrl2 to end.
func (o *Outline) CubicTo(ctrl1, ctrl2, end Point) {
	o.Segments = append(o.Segments, Segment{Op: OpCubicTo, Points: [3]Point{ctrl1, ctrl2, end}})
}

// Close closes the current subpath.
func (o *Outline) Close() {
	o.Segments = append(o.Segments, Segment{Op: OpClose})
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// SubpathsClosed reports whether every opened subpath is terminated by a
// Close operation before the next MoveTo or the end of the outline.
func (o *Outline) SubpathsClosed() bool {
	open := false
	for _, seg := range o.Segments {
		switch seg.Op {
		case OpMoveTo:
			if open {
				return false
			}
			open = true
		case OpClose:
			open = false
		default:
			if !open {
				return false
			}
		}
	}
	return !open
}

// Bounds returns the control-point bounding box of the outline. Curve
// control points are included, so the box is conservative: it never clips
// the rendered shape. Returns the zero Rect for an empty outline.
func (o *Outline) Bounds() Rect {
	if o.IsEmpty() {
		return Rect{}
	}

	bounds := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	found := false
	for _, seg := range o.Segments {
		for _, p := range seg.Points[:pointCount(seg.Op)] {
			bounds = bounds.AddPoint(p)
			found = true
		}
	}
	if !found {
		return Rect{}
	}
	return bounds
}

// pointCount returns how many entries of Segment.Points are meaningful.
func pointCount(op Op) int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 0
	}
}

// Clone creates a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	clone := &Outline{Segments: make([]Segment, len(o.Segments))}
	copy(clone.Segments, o.Segments)
	return clone
}
