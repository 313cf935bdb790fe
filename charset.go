package atlasgen

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset presets.
const (
	// PresetASCII covers printable ASCII, code points 32 through 126.
	PresetASCII = "ascii"

	// PresetLatin1 covers code points 0 through 255.
	PresetLatin1 = "latin1"
)

// CharsetConfig selects the code points to render. Exactly one selection
// source is intended; when several are configured, precedence is fixed:
// an external file wins over an explicit string, which wins over a preset.
type CharsetConfig struct {
	// Preset names a built-in charset: "ascii" or "latin1".
	Preset string

	// Chars selects the distinct code points of an explicit string.
	Chars string

	// File selects the distinct code points of a file's text content.
	// UTF-8 and BOM-marked UTF-16 files are both accepted.
	File string
}

// InvalidCharsetError reports an empty or malformed character selection.
type InvalidCharsetError struct {
	Reason string
}

func (e *InvalidCharsetError) Error() string {
	return "atlasgen: invalid charset: " + e.Reason
}

// ResourceUnavailableError reports an unreadable external charset list.
type ResourceUnavailableError struct {
	Path string
	Err  error
}

func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("atlasgen: cannot read charset file %s: %v", e.Path, e.Err)
}

func (e *ResourceUnavailableError) Unwrap() error { return e.Err }

// Resolve produces the deduplicated, ascending code-point set described by
// the configuration. The result is never empty; an empty selection is a
// usage error.
func (c CharsetConfig) Resolve() ([]rune, error) {
	switch {
	case c.File != "":
		f, err := os.Open(c.File)
		if err != nil {
			return nil, &ResourceUnavailableError{Path: c.File, Err: err}
		}
		defer f.Close()

		// BOMOverride sniffs UTF-16 byte order marks and falls back to
		// plain UTF-8.
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		text, err := io.ReadAll(transform.NewReader(f, dec))
		if err != nil {
			return nil, &ResourceUnavailableError{Path: c.File, Err: err}
		}
		return runeSet(string(text))

	case c.Chars != "":
		return runeSet(c.Chars)

	case c.Preset != "":
		switch c.Preset {
		case PresetASCII:
			return runeRange(32, 126), nil
		case PresetLatin1:
			return runeRange(0, 255), nil
		default:
			return nil, &InvalidCharsetError{Reason: "unknown preset " + fmt.Sprintf("%q", c.Preset)}
		}

	default:
		return nil, &InvalidCharsetError{Reason: "no charset configured"}
	}
}

// runeSet returns the distinct code points of s in ascending order.
// Iteration is by Unicode scalar value: a surrogate pair is one code
// point, not two.
func runeSet(s string) ([]rune, error) {
	seen := make(map[rune]struct{})
	for _, r := range s {
		seen[r] = struct{}{}
	}
	if len(seen) == 0 {
		return nil, &InvalidCharsetError{Reason: "selection is empty"}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	slices.Sort(out)
	return out, nil
}

// runeRange returns the inclusive range [lo, hi].
func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}
