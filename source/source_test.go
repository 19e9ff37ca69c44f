// seehuhn.de/go/bevel - bevelled colour fonts from outline fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
)

const testSource = `unitsPerEm: 1000
glyphs:
  - name: A
    width: 600
    contours:
      - start: [100, 0]
        segments: [[500, 0], [500, 700], [100, 700]]
  - name: O
    width: 700
    contours:
      - start: [350, 0]
        segments: [[600, 0, 700, 100, 700, 350], [100, 700]]
  - name: Aacute
    width: 600
    components:
      - base: A
      - base: O
        matrix: [0.5, 0, 0, 0.5, 100, 700]
lib:
  public.glyphOrder: [A, O, Aacute]
features: |
  languagesystem DFLT dflt;
`

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(testSource))
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff([]string{"A", "O", "Aacute"}, f.GlyphNames()); d != "" {
		t.Error(d)
	}

	A := f.Glyph("A")
	if A.Width != 600 {
		t.Errorf("A: got width %g, want 600", A.Width)
	}
	if a := A.Outline.SignedArea(); a != 400*700 {
		t.Errorf("A: got area %g, want %d", a, 400*700)
	}

	O := f.Glyph("O")
	segs := O.Outline.Contours[0].Segments
	if segs[0].Op != outline.OpCubic || segs[0].C2 != (vec.Vec2{X: 700, Y: 100}) {
		t.Errorf("O: wrong first segment %v", segs[0])
	}

	comps := f.Glyph("Aacute").Components
	want := []glyph.Component{
		{Base: "A", Matrix: matrix.Identity},
		{Base: "O", Matrix: matrix.Matrix{0.5, 0, 0, 0.5, 100, 700}},
	}
	if d := cmp.Diff(want, comps); d != "" {
		t.Error(d)
	}

	if !strings.Contains(f.Features(), "languagesystem") {
		t.Errorf("features not read: %q", f.Features())
	}
	if _, ok := f.Lib()["public.glyphOrder"]; !ok {
		t.Error("lib not read")
	}
	if f.Glyph("missing") != nil {
		t.Error("found a missing glyph")
	}
}

func TestWriteRead(t *testing.T) {
	f1, err := Read(strings.NewReader(testSource))
	if err != nil {
		t.Fatal(err)
	}
	f1.Lib()["org.example.palette"] = [][]float64{{1, 0, 0, 1}}

	buf := &bytes.Buffer{}
	if err := Write(buf, f1, nil); err != nil {
		t.Fatal(err)
	}
	f2, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(f1.GlyphNames(), f2.GlyphNames()); d != "" {
		t.Fatal(d)
	}
	for _, name := range f1.GlyphNames() {
		if d := cmp.Diff(f1.Glyph(name), f2.Glyph(name)); d != "" {
			t.Errorf("glyph %s: %s", name, d)
		}
	}
	if f1.Features() != f2.Features() {
		t.Errorf("features changed: %q != %q", f1.Features(), f2.Features())
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate": `glyphs: [{name: A, width: 1}, {name: A, width: 2}]`,
		"segment":   `glyphs: [{name: A, width: 1, contours: [{start: [0, 0], segments: [[1, 2, 3]]}]}]`,
		"start":     `glyphs: [{name: A, width: 1, contours: [{start: [0], segments: []}]}]`,
		"matrix":    `glyphs: [{name: A, width: 1, components: [{base: B, matrix: [1, 0]}]}]`,
		"noname":    `glyphs: [{width: 1}]`,
		"width":     `glyphs: [{name: A, width: -1}]`,
		"upem":      `unitsPerEm: 5`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(src))
			var fontErr *InvalidFontError
			if !errors.As(err, &fontErr) {
				t.Errorf("got %v, want InvalidFontError", err)
			}
		})
	}

	_, err := Read(strings.NewReader("glyphs: []\nunknown: 1\n"))
	if err == nil {
		t.Error("unknown field accepted")
	}
}

func TestRound(t *testing.T) {
	f := New(1000)
	f.SetGlyph(&glyph.Glyph{
		Name:  "x",
		Width: 433.3,
		Outline: outline.Outline{Contours: []outline.Contour{{
			Start: vec.Vec2{X: 0.4, Y: 0.6},
			Segments: []outline.Segment{
				{Op: outline.OpLine, End: vec.Vec2{X: 10.5, Y: -3.2}},
				{Op: outline.OpLine, End: vec.Vec2{X: 3, Y: 7}},
			},
		}}},
	})

	buf := &bytes.Buffer{}
	if err := Write(buf, f, &Options{Round: true}); err != nil {
		t.Fatal(err)
	}
	f2, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	g := f2.Glyph("x")
	if g.Width != 433 {
		t.Errorf("got width %g, want 433", g.Width)
	}
	c := g.Outline.Contours[0]
	if c.Start != (vec.Vec2{X: 0, Y: 1}) || c.Segments[0].End != (vec.Vec2{X: 11, Y: -3}) {
		t.Errorf("coordinates not rounded: %v", c)
	}

	f.Glyph("x").Width = 1e6
	err = Write(&bytes.Buffer{}, f, &Options{Round: true})
	var fontErr *InvalidFontError
	if !errors.As(err, &fontErr) {
		t.Errorf("got %v, want InvalidFontError", err)
	}
}

func TestRoundIntegerUnits(t *testing.T) {
	f := New(1000)
	f.SetGlyph(&glyph.Glyph{
		Name:  "x",
		Width: 433.3,
		Outline: outline.Outline{Contours: []outline.Contour{{
			Start: vec.Vec2{X: 0.4, Y: 0.6},
			Segments: []outline.Segment{
				{Op: outline.OpCubic, C1: vec.Vec2{X: 1.5, Y: 2}, C2: vec.Vec2{X: 3, Y: 4.49}, End: vec.Vec2{X: -7.7, Y: 5}},
			},
		}}},
	})

	buf := &bytes.Buffer{}
	if err := Write(buf, f, &Options{Round: true}); err != nil {
		t.Fatal(err)
	}

	// Every number must decode as a 16-bit integer.
	var ff fileFont[funit.Int16]
	dec := yaml.NewDecoder(bytes.NewReader(buf.Bytes()))
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil {
		t.Fatal(err)
	}
	want := fileGlyph[funit.Int16]{
		Name:  "x",
		Width: 433,
		Contours: []fileContour[funit.Int16]{{
			Start:    []funit.Int16{0, 1},
			Segments: [][]funit.Int16{{2, 2, 3, 4, -8, 5}},
		}},
	}
	if d := cmp.Diff(want, ff.Glyphs[0]); d != "" {
		t.Error(d)
	}

	// without rounding, fractional values are kept
	buf.Reset()
	if err := Write(buf, f, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "width: 433.3") {
		t.Errorf("fractional width lost:\n%s", buf.String())
	}
}

func TestClone(t *testing.T) {
	f1, err := Read(strings.NewReader(testSource))
	if err != nil {
		t.Fatal(err)
	}
	f1.Lib()["nested"] = map[string]any{"list": []any{1, 2}}

	f2 := f1.Clone()
	f2.Glyph("A").Width = 1
	f2.Glyph("A").Outline.Contours[0].Segments[0].End.X = -1
	f2.Lib()["nested"].(map[string]any)["list"].([]any)[0] = 99
	f2.SetGlyph(&glyph.Glyph{Name: "B"})
	f2.SetFeatures("")

	if f1.Glyph("A").Width != 600 {
		t.Error("width shared between clones")
	}
	if f1.Glyph("A").Outline.Contours[0].Segments[0].End.X != 500 {
		t.Error("outline shared between clones")
	}
	if f1.Lib()["nested"].(map[string]any)["list"].([]any)[0] != 1 {
		t.Error("lib shared between clones")
	}
	if f1.Glyph("B") != nil {
		t.Error("glyph set shared between clones")
	}
	if f1.Features() == "" {
		t.Error("features shared between clones")
	}
}

func TestSetGlyphReplaces(t *testing.T) {
	f := New(1000)
	f.SetGlyph(&glyph.Glyph{Name: "a", Width: 1})
	f.SetGlyph(&glyph.Glyph{Name: "b", Width: 2})
	f.SetGlyph(&glyph.Glyph{Name: "a", Width: 3})
	if d := cmp.Diff([]string{"a", "b"}, f.GlyphNames()); d != "" {
		t.Error(d)
	}
	if f.Glyph("a").Width != 3 {
		t.Error("glyph not replaced")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(in, []byte(testSource), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(in)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.yaml")
	if err := Save(out, f, nil); err != nil {
		t.Fatal(err)
	}
	f2, err := Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(f.GlyphNames(), f2.GlyphNames()); d != "" {
		t.Error(d)
	}

	if _, err := Load(filepath.Join(dir, "test.txt")); err == nil {
		t.Error("missing file loaded")
	}
	bad := filepath.Join(dir, "font.pdf")
	os.WriteFile(bad, []byte("%PDF"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("unsupported file type loaded")
	}
}

func TestOutputExt(t *testing.T) {
	for in, want := range map[string]string{".yaml": ".yaml", ".yml": ".yml", ".ttf": ".yaml", ".OTF": ".yaml"} {
		if got := OutputExt(in); got != want {
			t.Errorf("%s: got %s, want %s", in, got, want)
		}
	}
}

func TestDigits(t *testing.T) {
	f := New(1000)
	f.SetGlyph(&glyph.Glyph{
		Name:  "x",
		Width: 433.30000000000007,
		Outline: outline.Outline{Contours: []outline.Contour{{
			Start: vec.Vec2{X: 86.60254037844386, Y: -0.0001},
			Segments: []outline.Segment{
				{Op: outline.OpLine, End: vec.Vec2{X: 10, Y: 20}},
				{Op: outline.OpLine, End: vec.Vec2{X: 3, Y: 7}},
			},
		}}},
	})

	buf := &bytes.Buffer{}
	if err := Write(buf, f, &Options{Digits: 2}); err != nil {
		t.Fatal(err)
	}
	f2, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	g := f2.Glyph("x")
	if g.Width != 433.3 {
		t.Errorf("got width %g, want 433.3", g.Width)
	}
	if s := g.Outline.Contours[0].Start; s != (vec.Vec2{X: 86.6, Y: 0}) {
		t.Errorf("got start %v", s)
	}
}
