package atlas

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/atlasgen/engine"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0},
		{1.006, 1.01},
		{-2.344, -2.34},
		{-2.346, -2.35},
		{0, 0},
		{3.2, 3.2},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func sampleResult() *engine.Result {
	return &engine.Result{
		FaceName: "Test Face",
		Metrics: engine.Metrics{
			EmSize:             1,
			LineHeight:         1.2,
			AscenderY:          0.8,
			DescenderY:         -0.2,
			UnderlineY:         -0.1,
			UnderlineThickness: 0.05,
		},
		Bins: []engine.Bin{
			{
				Width: 128, Height: 64,
				Rects: []engine.Placed{
					{Rune: 'B', X: 0, Y: 0, Width: 20, Height: 24,
						Advance: 0.55, Left: 0.05, Top: 0.7, Range: 0.1},
					{Rune: ' ', Advance: 0.25, Range: 0.1},
				},
			},
			{
				Width: 32, Height: 32,
				Rects: []engine.Placed{
					{Rune: 'A', X: 1, Y: 2, Width: 20, Height: 24,
						Advance: 0.6, Left: 0.02, Top: 0.72, Range: 0.1},
				},
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	doc := Assemble("demo", sampleResult(), 40, 4)

	want := &Document{
		Pages: []Page{
			{File: "demo_0", Width: 128, Height: 64},
			{File: "demo_1", Width: 32, Height: 32},
		},
		Glyphs: []Glyph{
			{ID: 'B', Page: 0, X: 0, Y: 0, Width: 20, Height: 24,
				XAdvance: 22, XOffset: 0, YOffset: 2},
			{ID: ' ', Page: 0, XAdvance: 10},
			{ID: 'A', Page: 1, X: 1, Y: 2, Width: 20, Height: 24,
				XAdvance: 24, XOffset: -1.2, YOffset: 1.2},
		},
		Info: Info{Size: 40, Face: "Test Face"},
		Metrics: Metrics{
			EmSize: 1, LineHeight: 1.2, Ascender: 0.8, Descender: -0.2,
			UnderlineY: -0.1, UnderlineThickness: 0.05,
		},
		DistanceRange: 4,
	}

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleEmptyRectOffsets(t *testing.T) {
	res := &engine.Result{
		Metrics: engine.Metrics{AscenderY: 0.8},
		Bins: []engine.Bin{{
			Width: 16, Height: 16,
			Rects: []engine.Placed{
				// A huge range must not leak into the offsets of an
				// ink-less glyph.
				{Rune: ' ', Advance: 0.3, Range: 10},
			},
		}},
	}

	doc := Assemble("x", res, 100, 4)
	g := doc.Glyphs[0]
	if g.XOffset != 0 || g.YOffset != 0 {
		t.Errorf("empty rect offsets = %g/%g, want exactly 0/0", g.XOffset, g.YOffset)
	}
}

func TestAssembleZeroRangeRecoversRawOffsets(t *testing.T) {
	placed := engine.Placed{
		Rune: 'g', X: 0, Y: 0, Width: 10, Height: 10,
		Advance: 0.5, Left: 0.04, Top: 0.66,
	}
	res := &engine.Result{
		Metrics: engine.Metrics{AscenderY: 0.8},
		Bins:    []engine.Bin{{Width: 16, Height: 16, Rects: []engine.Placed{placed}}},
	}

	doc := Assemble("x", res, 100, 0)
	g := doc.Glyphs[0]
	if g.XOffset != Round2(placed.Left*100) {
		t.Errorf("xoffset = %g, want %g (left only)", g.XOffset, Round2(placed.Left*100))
	}
	if g.YOffset != Round2((0.8-placed.Top)*100) {
		t.Errorf("yoffset = %g, want %g (ascender minus top)", g.YOffset, Round2((0.8-placed.Top)*100))
	}
}

func TestAssembleGlyphOrderPreserved(t *testing.T) {
	// The engine's production order is page-major, not sorted by code
	// point, and must survive assembly untouched.
	doc := Assemble("demo", sampleResult(), 40, 4)

	var ids []int
	for _, g := range doc.Glyphs {
		ids = append(ids, g.ID)
	}
	want := []int{'B', ' ', 'A'}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
	for _, g := range doc.Glyphs {
		if g.Page < 0 || g.Page >= len(doc.Pages) {
			t.Errorf("glyph %d references page %d of %d", g.ID, g.Page, len(doc.Pages))
		}
	}
}

func TestDocumentJSONShape(t *testing.T) {
	doc := Assemble("demo", sampleResult(), 40, 4)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	for _, key := range []string{
		`"pages"`, `"glyphs"`, `"info"`, `"metrics"`, `"distanceRange"`,
		`"xadvance"`, `"xoffset"`, `"yoffset"`, `"emSize"`,
	} {
		if !strings.Contains(s, key) {
			t.Errorf("marshaled document missing %s", key)
		}
	}
	// No placement was rotated, so the field is omitted entirely.
	if strings.Contains(s, `"rotated"`) {
		t.Error("unrotated glyphs should omit the rotated field")
	}

	empty := Assemble("e", &engine.Result{}, 40, 4)
	data, err = json.Marshal(empty)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"glyphs":null`) {
		t.Error("empty glyph list should marshal as [], not null")
	}
}
