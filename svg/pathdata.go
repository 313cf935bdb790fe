package svg

import (
	"math"
	"strconv"
)

// Command is one normalized path command. After normalization only five
// operations remain, all with absolute coordinates:
//
//	'M' Args: x, y
//	'L' Args: x, y
//	'C' Args: c1x, c1y, c2x, c2y, x, y
//	'Q' Args: cx, cy, x, y
//	'Z' Args: none
type Command struct {
	Op   byte
	Args []float64
}

// parsePathData tokenizes and normalizes an SVG path data string.
// Relative commands become absolute, H/V and smooth-curve shorthands are
// expanded to canonical form, and elliptical arcs are converted to cubic
// Bezier curves. Any command outside the SVG path grammar fails with
// UnsupportedCommandError.
func parsePathData(d string) ([]Command, error) {
	s := &pathScanner{data: d}
	var cmds []Command

	var curX, curY float64     // current point
	var startX, startY float64 // start of current subpath
	var ctl2X, ctl2Y float64   // second control point of the last cubic
	var qctlX, qctlY float64   // control point of the last quadratic
	var lastOp byte            // previous input command, uppercased

	for {
		s.skipSeparators()
		if s.eof() {
			break
		}

		c, ok := s.command()
		if !ok {
			return nil, &PathSyntaxError{Offset: s.pos, Reason: "expected command letter"}
		}
		rel := c >= 'a' && c <= 'z'
		op := c &^ 0x20 // uppercase

		if len(cmds) == 0 && op != 'M' {
			return nil, &PathSyntaxError{Offset: s.pos, Reason: "path must begin with a moveto"}
		}

		switch op {
		case 'M':
			first := true
			for first || s.hasNumber() {
				x, y, err := s.pair()
				if err != nil {
					return nil, err
				}
				if rel {
					x += curX
					y += curY
				}
				if first {
					cmds = append(cmds, Command{Op: 'M', Args: []float64{x, y}})
					startX, startY = x, y
				} else {
					// Extra coordinate pairs after a moveto are implicit linetos.
					cmds = append(cmds, Command{Op: 'L', Args: []float64{x, y}})
				}
				curX, curY = x, y
				first = false
			}

		case 'L':
			first := true
			for first || s.hasNumber() {
				x, y, err := s.pair()
				if err != nil {
					return nil, err
				}
				if rel {
					x += curX
					y += curY
				}
				cmds = append(cmds, Command{Op: 'L', Args: []float64{x, y}})
				curX, curY = x, y
				first = false
			}

		case 'H':
			first := true
			for first || s.hasNumber() {
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				if rel {
					x += curX
				}
				cmds = append(cmds, Command{Op: 'L', Args: []float64{x, curY}})
				curX = x
				first = false
			}

		case 'V':
			first := true
			for first || s.hasNumber() {
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				if rel {
					y += curY
				}
				cmds = append(cmds, Command{Op: 'L', Args: []float64{curX, y}})
				curY = y
				first = false
			}

		case 'C':
			first := true
			for first || s.hasNumber() {
				args, err := s.numbers(6)
				if err != nil {
					return nil, err
				}
				if rel {
					for i := 0; i < 6; i += 2 {
						args[i] += curX
						args[i+1] += curY
					}
				}
				cmds = append(cmds, Command{Op: 'C', Args: args})
				ctl2X, ctl2Y = args[2], args[3]
				curX, curY = args[4], args[5]
				lastOp = 'C'
				first = false
			}

		case 'S':
			first := true
			for first || s.hasNumber() {
				args, err := s.numbers(4)
				if err != nil {
					return nil, err
				}
				if rel {
					for i := 0; i < 4; i += 2 {
						args[i] += curX
						args[i+1] += curY
					}
				}
				// The first control point is the reflection of the previous
				// cubic's second control point, or the current point if the
				// previous command was not a cubic.
				c1x, c1y := curX, curY
				if lastOp == 'C' {
					c1x = 2*curX - ctl2X
					c1y = 2*curY - ctl2Y
				}
				cmds = append(cmds, Command{Op: 'C', Args: []float64{c1x, c1y, args[0], args[1], args[2], args[3]}})
				ctl2X, ctl2Y = args[0], args[1]
				curX, curY = args[2], args[3]
				lastOp = 'C'
				first = false
			}

		case 'Q':
			first := true
			for first || s.hasNumber() {
				args, err := s.numbers(4)
				if err != nil {
					return nil, err
				}
				if rel {
					for i := 0; i < 4; i += 2 {
						args[i] += curX
						args[i+1] += curY
					}
				}
				cmds = append(cmds, Command{Op: 'Q', Args: args})
				qctlX, qctlY = args[0], args[1]
				curX, curY = args[2], args[3]
				lastOp = 'Q'
				first = false
			}

		case 'T':
			first := true
			for first || s.hasNumber() {
				x, y, err := s.pair()
				if err != nil {
					return nil, err
				}
				if rel {
					x += curX
					y += curY
				}
				cx, cy := curX, curY
				if lastOp == 'Q' {
					cx = 2*curX - qctlX
					cy = 2*curY - qctlY
				}
				cmds = append(cmds, Command{Op: 'Q', Args: []float64{cx, cy, x, y}})
				qctlX, qctlY = cx, cy
				curX, curY = x, y
				lastOp = 'Q'
				first = false
			}

		case 'A':
			first := true
			for first || s.hasNumber() {
				rx, err := s.number()
				if err != nil {
					return nil, err
				}
				ry, err := s.number()
				if err != nil {
					return nil, err
				}
				rot, err := s.number()
				if err != nil {
					return nil, err
				}
				largeArc, err := s.flag()
				if err != nil {
					return nil, err
				}
				sweep, err := s.flag()
				if err != nil {
					return nil, err
				}
				x, y, err := s.pair()
				if err != nil {
					return nil, err
				}
				if rel {
					x += curX
					y += curY
				}
				cmds = appendArc(cmds, curX, curY, rx, ry, rot, largeArc, sweep, x, y)
				curX, curY = x, y
				first = false
			}

		case 'Z':
			cmds = append(cmds, Command{Op: 'Z'})
			curX, curY = startX, startY

		default:
			return nil, &UnsupportedCommandError{Command: string(c)}
		}

		if op != 'C' && op != 'S' && op != 'Q' && op != 'T' {
			lastOp = op
		}
	}

	return cmds, nil
}

// appendArc converts an elliptical arc to one or more cubic Bezier curves
// and appends them as 'C' commands. The conversion follows the SVG
// implementation notes (endpoint to center parameterization) and splits the
// arc into segments of at most 90 degrees, each fitted by a single cubic.
func appendArc(cmds []Command, x1, y1, rx, ry, rotDeg float64, largeArc, sweep bool, x2, y2 float64) []Command {
	if x1 == x2 && y1 == y2 {
		return cmds
	}
	// Zero radii degrade to a straight line per the SVG specification.
	if rx == 0 || ry == 0 {
		return append(cmds, Command{Op: 'L', Args: []float64{x2, y2}})
	}

	rx = math.Abs(rx)
	ry = math.Abs(ry)
	phi := rotDeg * math.Pi / 180
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)

	// Step 1: compute the transformed midpoint.
	dx := (x1 - x2) / 2
	dy := (y1 - y2) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Step 2: scale radii up if the endpoints are too far apart.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 3: compute the transformed center.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	rad := num / den
	if rad < 0 {
		rad = 0
	}
	coef := math.Sqrt(rad)
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	// Step 4: compute the start angle and sweep extent.
	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}
	if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if segs < 1 {
		segs = 1
	}
	delta := dtheta / float64(segs)
	// Tangent length for a cubic fit of a delta-radian elliptical arc.
	k := 4.0 / 3.0 * math.Tan(delta/4)

	pointAt := func(theta float64) (float64, float64) {
		ex := rx * math.Cos(theta)
		ey := ry * math.Sin(theta)
		return cx + cosPhi*ex - sinPhi*ey, cy + sinPhi*ex + cosPhi*ey
	}
	derivAt := func(theta float64) (float64, float64) {
		ex := -rx * math.Sin(theta)
		ey := ry * math.Cos(theta)
		return cosPhi*ex - sinPhi*ey, sinPhi*ex + cosPhi*ey
	}

	theta := theta1
	px, py := x1, y1
	for i := 0; i < segs; i++ {
		next := theta + delta
		ex, ey := pointAt(next)
		if i == segs-1 {
			// Land exactly on the requested endpoint.
			ex, ey = x2, y2
		}
		d1x, d1y := derivAt(theta)
		d2x, d2y := derivAt(next)
		cmds = append(cmds, Command{Op: 'C', Args: []float64{
			px + k*d1x, py + k*d1y,
			ex - k*d2x, ey - k*d2y,
			ex, ey,
		}})
		px, py = ex, ey
		theta = next
	}
	return cmds
}

// vectorAngle returns the signed angle from vector u to vector v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	dot := ux*vx + uy*vy
	lenU := math.Hypot(ux, uy)
	lenV := math.Hypot(vx, vy)
	if lenU == 0 || lenV == 0 {
		return 0
	}
	cos := dot / (lenU * lenV)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	angle := math.Acos(cos)
	if ux*vy-uy*vx < 0 {
		angle = -angle
	}
	return angle
}

// pathScanner tokenizes path data into command letters, numbers and flags.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

// command consumes the next command letter, if any.
func (s *pathScanner) command() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	c := s.data[s.pos]
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		s.pos++
		return c, true
	}
	return 0, false
}

// hasNumber reports whether the next token starts a number.
func (s *pathScanner) hasNumber() bool {
	s.skipSeparators()
	if s.eof() {
		return false
	}
	c := s.data[s.pos]
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// number consumes one floating point number.
func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	start := s.pos

	if !s.eof() && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
		s.pos++
	}
	digits := 0
	for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		digits++
	}
	if !s.eof() && s.data[s.pos] == '.' {
		s.pos++
		for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		return 0, &PathSyntaxError{Offset: start, Reason: "expected number"}
	}
	if !s.eof() && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if !s.eof() && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
			s.pos++
		}
		expDigits := 0
		for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			// Not an exponent after all; back off.
			s.pos = mark
		}
	}

	v, err := strconv.ParseFloat(s.data[start:s.pos], 64)
	if err != nil {
		return 0, &PathSyntaxError{Offset: start, Reason: "malformed number"}
	}
	return v, nil
}

// flag consumes a single arc flag, which is always exactly one digit and
// may be written without separators ("0110" is four flags, not a number).
func (s *pathScanner) flag() (bool, error) {
	s.skipSeparators()
	if s.eof() {
		return false, &PathSyntaxError{Offset: s.pos, Reason: "expected arc flag"}
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	default:
		return false, &PathSyntaxError{Offset: s.pos, Reason: "arc flag must be 0 or 1"}
	}
}

// pair consumes two numbers.
func (s *pathScanner) pair() (float64, float64, error) {
	x, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// numbers consumes exactly n numbers.
func (s *pathScanner) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := s.number()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
