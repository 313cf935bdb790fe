package svg

import "fmt"

// NoPathDataError is returned when a document contains no path elements
// with drawable data.
type NoPathDataError struct{}

func (e *NoPathDataError) Error() string {
	return "svg: document contains no path data"
}

// UnsupportedCommandError is returned when path data contains a command
// that cannot be expressed as move/line/cubic/quadratic/close. Partial
// geometry is never silently dropped.
type UnsupportedCommandError struct {
	// Command is the offending command letter as it appeared in the input.
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("svg: unsupported path command %q", e.Command)
}

// PathSyntaxError is returned when path data cannot be tokenized.
type PathSyntaxError struct {
	Offset int
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("svg: invalid path data at offset %d: %s", e.Offset, e.Reason)
}

// ViewBoxError is returned for missing or degenerate view-box geometry.
type ViewBoxError struct {
	Reason string
}

func (e *ViewBoxError) Error() string {
	return "svg: invalid view box: " + e.Reason
}
