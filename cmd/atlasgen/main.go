// Command atlasgen generates MSDF texture atlases from fonts or SVG
// shapes.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/atlasgen"
)

func main() {
	var (
		fontPath  = flag.String("font", "", "input font file (TTF/OTF)")
		svgPath   = flag.String("svg", "", "input SVG file")
		dirPath   = flag.String("dir", "", "input directory (batch mode)")
		codepoint = flag.Int("codepoint", 0, "code point for -svg input")

		preset      = flag.String("charset", "ascii", "charset preset: ascii or latin1")
		chars       = flag.String("chars", "", "explicit characters to render")
		charsetFile = flag.String("charset-file", "", "file listing characters to render")

		size     = flag.Int("size", 42, "glyph em size in pixels")
		distance = flag.Float64("range", 4, "distance-field spread in pixels")
		coloring = flag.String("edge-coloring", "simple", "edge coloring: simple or none")
		angle    = flag.Float64("angle", 0, "corner angle threshold in radians (0 = default)")
		scanline = flag.Bool("scanline", false, "enable scanline sign correction")

		maxWidth  = flag.Int("max-width", 1024, "maximum page width")
		maxHeight = flag.Int("max-height", 1024, "maximum page height")
		padding   = flag.Int("padding", 1, "padding between glyphs in pixels")
		pot       = flag.Bool("pot", false, "round page dimensions to powers of two")
		smart     = flag.Bool("smart", true, "shrink pages to used extent")

		backend = flag.String("font-backend", "", "font parser backend: ximage or gotext")
		outDir  = flag.String("out", ".", "output directory")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	inputs := 0
	for _, s := range []string{*fontPath, *svgPath, *dirPath} {
		if s != "" {
			inputs++
		}
	}
	if inputs != 1 {
		log.Fatal("exactly one of -font, -svg or -dir is required")
	}

	if *verbose {
		atlasgen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := atlasgen.Options{
		FontBackend: *backend,
		Charset: atlasgen.CharsetConfig{
			Preset: *preset,
			Chars:  *chars,
			File:   *charsetFile,
		},
		Size:               *size,
		Range:              *distance,
		EdgeColoring:       *coloring,
		EdgeThresholdAngle: *angle,
		Scanline:           *scanline,
		MaxWidth:           *maxWidth,
		MaxHeight:          *maxHeight,
		Padding:            *padding,
		PowerOfTwo:         *pot,
		Smart:              *smart,
		OutputDir:          *outDir,
	}

	conv, err := atlasgen.NewConverter(opts)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *fontPath != "":
		_, err = conv.ConvertFont(*fontPath)
	case *svgPath != "":
		if *codepoint <= 0 {
			log.Fatal("-svg requires a positive -codepoint")
		}
		_, err = conv.ConvertSVG(*svgPath, rune(*codepoint))
	case *dirPath != "":
		err = conv.ConvertDir(*dirPath)
	}
	if err != nil {
		log.Fatal(err)
	}
}
