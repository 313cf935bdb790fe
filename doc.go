// Package atlasgen converts vector artwork into packed multi-channel
// signed-distance-field (MSDF) texture atlases.
//
// # Overview
//
// atlasgen takes binary fonts (TTF/OTF) or standalone SVG shapes and
// produces one or more PNG atlas pages plus a JSON metadata document
// describing every glyph quad, ready for consumption by a GPU text
// renderer.
//
// # Quick Start
//
//	import "github.com/gogpu/atlasgen"
//
//	opts := atlasgen.DefaultOptions()
//	opts.Charset = atlasgen.CharsetConfig{Preset: atlasgen.PresetASCII}
//	opts.OutputDir = "out"
//
//	conv, err := atlasgen.NewConverter(opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := conv.ConvertFont("Roboto-Regular.ttf"); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Options, Converter, CharsetConfig
//   - glyph: shared outline geometry (points, segments, bounds)
//   - svg: SVG document parsing and path-data normalization
//   - glyphset: synthetic glyph sets assembled from outlines
//   - font: binary font parsing behind a swappable backend interface
//   - engine: the rasterization/packing boundary; engine/msdf is the
//     built-in MSDF implementation
//   - atlas: the output metadata schema and its assembly
//
// A command line front end lives in cmd/atlasgen.
package atlasgen
