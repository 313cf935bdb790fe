package atlasgen

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/atlasgen/atlas"
	"github.com/gogpu/atlasgen/engine"
	"github.com/gogpu/atlasgen/engine/msdf"
	"github.com/gogpu/atlasgen/font"
	"github.com/gogpu/atlasgen/glyphset"
	"github.com/gogpu/atlasgen/svg"
)

// ConverterOption configures a Converter during creation.
type ConverterOption func(*Converter)

// WithEngine replaces the default distance-field engine. Use this for
// dependency injection of an alternative or mock engine.
func WithEngine(e engine.Engine) ConverterOption {
	return func(c *Converter) {
		c.engine = e
	}
}

// WithParser replaces the font parser selected by Options.FontBackend.
// Use this for dependency injection of an alternative or mock parser.
func WithParser(p font.Parser) ConverterOption {
	return func(c *Converter) {
		c.parser = p
	}
}

// Converter runs complete conversions: input artifact to PNG pages plus a
// JSON metadata document in Options.OutputDir. One Converter handles any
// number of conversions; each conversion builds fresh state.
type Converter struct {
	opts   Options
	engine engine.Engine
	parser font.Parser
}

// NewConverter validates the options and builds a converter around the
// default msdf engine unless WithEngine overrides it.
func NewConverter(opts Options, options ...ConverterOption) (*Converter, error) {
	opts = opts.applyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	parser, err := font.NewParser(opts.FontBackend)
	if err != nil {
		return nil, err
	}
	c := &Converter{
		opts:   opts,
		engine: msdf.New(),
		parser: parser,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// ConvertFont renders the configured charset from a binary font file and
// writes the atlas next to the configured output directory. The returned
// document is the metadata that was written.
func (c *Converter) ConvertFont(path string) (*atlas.Document, error) {
	log := Logger()
	log.Info("converting font", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("atlasgen: read font: %w", err)
	}
	face, err := c.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	charset, err := c.opts.Charset.Resolve()
	if err != nil {
		return nil, err
	}
	log.Debug("charset resolved", "codepoints", len(charset))

	return c.convert(baseName(path), face, charset)
}

// ConvertSVG renders a single SVG file as the glyph for one code point.
func (c *Converter) ConvertSVG(path string, codepoint rune) (*atlas.Document, error) {
	log := Logger()
	log.Info("converting svg", "path", path, "codepoint", codepoint)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("atlasgen: read svg: %w", err)
	}
	defer f.Close()

	res, err := svg.BuildOutline(f, svg.DefaultUnitsPerEm)
	if err != nil {
		return nil, err
	}

	base := baseName(path)
	set, err := glyphset.New(base, res.UnitsPerEm, res.UnitsPerEm, 0)
	if err != nil {
		return nil, err
	}
	minAdvance := res.ViewBox.Width * res.UnitsPerEm / res.ViewBox.Height
	if err := set.Add(base, codepoint, res.Outline, minAdvance); err != nil {
		return nil, err
	}

	return c.convert(base, set, []rune{codepoint})
}

// ConvertDir converts every font and SVG file in dir. Fonts are fully
// processed before any SVG, each group in directory-listing order, and the
// first failure aborts the batch. An SVG's code point comes from its file
// name: a decimal number or a single character.
func (c *Converter) ConvertDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("atlasgen: read dir: %w", err)
	}

	var fonts, svgs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".ttf", ".otf":
			fonts = append(fonts, filepath.Join(dir, name))
		case ".svg":
			svgs = append(svgs, filepath.Join(dir, name))
		}
	}

	for _, path := range fonts {
		if _, err := c.ConvertFont(path); err != nil {
			return err
		}
	}
	for _, path := range svgs {
		cp, err := codepointFromName(path)
		if err != nil {
			return err
		}
		if _, err := c.ConvertSVG(path, cp); err != nil {
			return err
		}
	}
	return nil
}

// convert runs the engine over one glyph source and writes the outputs.
func (c *Converter) convert(base string, src engine.GlyphSource, charset []rune) (*atlas.Document, error) {
	res, err := c.engine.Rasterize(src, charset, c.opts.genParams(), c.opts.packParams())
	if err != nil {
		return nil, err
	}
	doc := atlas.Assemble(base, res, c.opts.Size, c.opts.Range)
	if err := c.writeOutputs(base, res, doc); err != nil {
		return nil, err
	}
	Logger().Info("atlas written",
		"base", base, "pages", len(doc.Pages), "glyphs", len(doc.Glyphs))
	return doc, nil
}

// writeOutputs writes {base}_{i}.png for each bin and {base}.json.
func (c *Converter) writeOutputs(base string, res *engine.Result, doc *atlas.Document) error {
	outDir := c.opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("atlasgen: create output dir: %w", err)
	}

	for i, bin := range res.Bins {
		path := filepath.Join(outDir, fmt.Sprintf("%s_%d.png", base, i))
		if err := writePNG(path, bin); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("atlasgen: encode metadata: %w", err)
	}
	path := filepath.Join(outDir, base+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("atlasgen: write metadata: %w", err)
	}
	return nil
}

func writePNG(path string, bin engine.Bin) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlasgen: create page: %w", err)
	}
	if err := png.Encode(f, bin.Image); err != nil {
		f.Close()
		return fmt.Errorf("atlasgen: encode page: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("atlasgen: write page: %w", err)
	}
	return nil
}

// baseName strips the directory and extension from an input path.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// codepointFromName maps an SVG file name to a code point: "65.svg" is
// U+0041, "A.svg" is also U+0041.
func codepointFromName(path string) (rune, error) {
	base := baseName(path)
	if n, err := strconv.Atoi(base); err == nil && n >= 0 && n <= 0x10FFFF {
		return rune(n), nil
	}
	if utf8.RuneCountInString(base) == 1 {
		r, _ := utf8.DecodeRuneInString(base)
		return r, nil
	}
	return 0, fmt.Errorf("atlasgen: cannot derive code point from file name %q", filepath.Base(path))
}
