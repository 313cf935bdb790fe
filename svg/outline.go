package svg

import (
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/atlasgen/glyph"
)

// DefaultUnitsPerEm is the font-design coordinate scale outlines are
// normalized to when the caller does not specify one.
const DefaultUnitsPerEm = 1000

// ViewBox is the SVG user-unit coordinate frame of a document.
type ViewBox struct {
	X, Y          float64
	Width, Height float64
}

// Result is a normalized outline together with the view box it was
// derived from. The view box is needed downstream for the advance-width
// rule of synthetic glyphs.
type Result struct {
	Outline    *glyph.Outline
	ViewBox    ViewBox
	UnitsPerEm float64
}

// BuildOutline parses an SVG document and maps every path element into a
// single normalized outline in font-design units.
//
// Path elements are discovered depth-first across the whole tree in
// document order and their command sequences are appended into one
// compound shape. Coordinates are scaled uniformly by the view-box height
// so vertical extents are preserved, and the Y axis is flipped so that Y
// increases upward:
//
//	x' = (x - viewBox.x) * unitsPerEm / viewBox.height
//	y' = (viewBox.y + viewBox.height - y) * unitsPerEm / viewBox.height
//
// Every subpath in the result is closed; a moveto arriving while a subpath
// is still open closes the previous subpath first.
func BuildOutline(r io.Reader, unitsPerEm float64) (*Result, error) {
	root, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return BuildOutlineFromTree(root, unitsPerEm)
}

// BuildOutlineFromTree is BuildOutline applied to an already parsed tree.
func BuildOutlineFromTree(root *Node, unitsPerEm float64) (*Result, error) {
	if unitsPerEm <= 0 {
		unitsPerEm = DefaultUnitsPerEm
	}

	vb, err := resolveViewBox(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	root.Walk(func(n *Node) {
		if n.Name == "path" {
			if d, ok := n.Attr["d"]; ok && strings.TrimSpace(d) != "" {
				paths = append(paths, d)
			}
		}
	})
	if len(paths) == 0 {
		return nil, &NoPathDataError{}
	}

	scale := unitsPerEm / vb.Height
	mapX := func(x float64) float64 { return (x - vb.X) * scale }
	mapY := func(y float64) float64 { return (vb.Y + vb.Height - y) * scale }

	outline := &glyph.Outline{}
	for _, d := range paths {
		cmds, err := parsePathData(d)
		if err != nil {
			return nil, err
		}
		open := false
		for _, cmd := range cmds {
			switch cmd.Op {
			case 'M':
				if open {
					outline.Close()
				}
				outline.MoveTo(glyph.Point{X: mapX(cmd.Args[0]), Y: mapY(cmd.Args[1])})
				open = true
			case 'L':
				outline.LineTo(glyph.Point{X: mapX(cmd.Args[0]), Y: mapY(cmd.Args[1])})
			case 'C':
				outline.CubicTo(
					glyph.Point{X: mapX(cmd.Args[0]), Y: mapY(cmd.Args[1])},
					glyph.Point{X: mapX(cmd.Args[2]), Y: mapY(cmd.Args[3])},
					glyph.Point{X: mapX(cmd.Args[4]), Y: mapY(cmd.Args[5])},
				)
			case 'Q':
				outline.QuadTo(
					glyph.Point{X: mapX(cmd.Args[0]), Y: mapY(cmd.Args[1])},
					glyph.Point{X: mapX(cmd.Args[2]), Y: mapY(cmd.Args[3])},
				)
			case 'Z':
				outline.Close()
				open = false
			default:
				return nil, &UnsupportedCommandError{Command: string(cmd.Op)}
			}
		}
		if open {
			outline.Close()
		}
	}

	return &Result{Outline: outline, ViewBox: vb, UnitsPerEm: unitsPerEm}, nil
}

// resolveViewBox determines the document's coordinate frame: an explicit
// viewBox attribute wins, otherwise width/height attributes are used with
// origin (0,0), defaulting to 1000x1000 when absent.
func resolveViewBox(root *Node) (ViewBox, error) {
	if raw, ok := root.Attr["viewBox"]; ok {
		fields := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
		})
		if len(fields) != 4 {
			return ViewBox{}, &ViewBoxError{Reason: "viewBox must have 4 values"}
		}
		vals := make([]float64, 4)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return ViewBox{}, &ViewBoxError{Reason: "malformed viewBox value " + strconv.Quote(f)}
			}
			vals[i] = v
		}
		vb := ViewBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
		if vb.Width <= 0 || vb.Height <= 0 {
			return ViewBox{}, &ViewBoxError{Reason: "width and height must be positive"}
		}
		return vb, nil
	}

	vb := ViewBox{Width: 1000, Height: 1000}
	if w, ok := dimensionAttr(root, "width"); ok {
		vb.Width = w
	}
	if h, ok := dimensionAttr(root, "height"); ok {
		vb.Height = h
	}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, &ViewBoxError{Reason: "width and height must be positive"}
	}
	return vb, nil
}

// dimensionAttr parses a length attribute, tolerating a trailing unit
// suffix such as "px".
func dimensionAttr(n *Node, name string) (float64, bool) {
	raw, ok := n.Attr[name]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) {
		c := raw[end]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			end++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
