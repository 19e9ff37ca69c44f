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

package bevel

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/bevel/color"
	"seehuhn.de/go/bevel/designspace"
	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/internal/squarefont"
	"seehuhn.de/go/bevel/paint"
	"seehuhn.de/go/bevel/source"
)

// writeTestFont writes a font with a single rectangular glyph "A".
func writeTestFont(t *testing.T) string {
	t.Helper()
	f := source.New(1000)
	f.SetGlyph(&glyph.Glyph{Name: ".notdef", Width: 500})
	f.SetGlyph(&glyph.Glyph{
		Name:    "A",
		Width:   600,
		Outline: squarefont.Rect(100, 0, 500, 700),
	})
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := source.Save(path, f, nil); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	path := writeTestFont(t)
	dir := filepath.Dir(path)

	cfg := DefaultConfig()
	cfg.Depths = []Depth{
		{Label: "Shallow", Value: 0},
		{Label: "Normal", Value: 100},
		{Label: "Deep", Value: 200},
	}

	res, err := Run(context.Background(), path, cfg)
	if err != nil {
		t.Fatal(err)
	}

	wantFiles := []string{
		filepath.Join(dir, "test-Shallow.yaml"),
		filepath.Join(dir, "test-Normal.yaml"),
		filepath.Join(dir, "test-Deep.yaml"),
	}
	if d := cmp.Diff(wantFiles, res.Masters); d != "" {
		t.Error(d)
	}
	if res.Designspace != filepath.Join(dir, "test.designspace") {
		t.Errorf("got designspace %q", res.Designspace)
	}

	for i, file := range res.Masters {
		f, err := source.Load(file)
		if err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"A", "A.front", "A.side"} {
			if f.Glyph(name) == nil {
				t.Errorf("%s: missing glyph %s", file, name)
			}
		}
		if f.Glyph(".notdef.side") != nil {
			t.Errorf("%s: .notdef was extruded", file)
		}

		side := f.Glyph("A.side")
		if empty := side.Outline.IsEmpty(); empty != (cfg.Depths[i].Value == 0) {
			t.Errorf("%s: A.side empty=%t", file, empty)
		}
		if w := side.Width; math.Abs(w-600*math.Cos(cfg.ShearAngle)) > 1e-9 {
			t.Errorf("%s: A.side has width %g", file, w)
		}

		r, err := Inspect(f)
		if err != nil {
			t.Fatal(err)
		}
		isDefault := cfg.Depths[i].Label == cfg.DefaultDepth
		if hasColor := len(r.ColorGlyphs) > 0; hasColor != isDefault {
			t.Errorf("%s: colour glyphs %v", file, r.ColorGlyphs)
		}
		if isDefault {
			if len(r.Palettes) != 1 {
				t.Fatalf("got %d palettes, want 1", len(r.Palettes))
			}
			if d := cmp.Diff(color.Default(), r.Palettes[0]); d != "" {
				t.Error(d)
			}
			layers := r.Graph["A"].(*paint.Layers)
			if d := cmp.Diff([]string{"A.side", "A.front"}, layers.Glyphs); d != "" {
				t.Error(d)
			}
		}
	}

	doc, err := designspace.ReadFile(res.Designspace)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Axes) != 1 {
		t.Fatalf("got %d axes", len(doc.Axes))
	}
	axis := doc.Axes[0]
	if axis.Name != "Depth" || axis.Tag != "DPTH" || axis.Minimum != 0 || axis.Maximum != 200 || axis.Default != 100 {
		t.Errorf("got axis %+v", axis)
	}
	if len(doc.Sources) != 3 {
		t.Fatalf("got %d sources", len(doc.Sources))
	}
	for i, src := range doc.Sources {
		if src.Filename != filepath.Base(wantFiles[i]) {
			t.Errorf("source %d: got %q", i, src.Filename)
		}
		if v, _ := src.Value("Depth"); v != cfg.Depths[i].Value {
			t.Errorf("source %d: depth %g", i, v)
		}
	}
}

func TestRunGeometryError(t *testing.T) {
	f := source.New(1000)
	f.SetGlyph(&glyph.Glyph{Name: "A", Width: 600, Outline: squarefont.Rect(100, 0, 500, 700)})
	f.SetGlyph(&glyph.Glyph{Name: "B", Width: 600, Outline: squarefont.Polygon(0, 0, 10, 0, 20, 0)})
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := source.Save(path, f, nil); err != nil {
		t.Fatal(err)
	}

	_, err := Run(context.Background(), path, nil)
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Glyph != "B" {
		t.Fatalf("got %v, want stage error for B", err)
	}

	// nothing is written on failure
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d files, want 1", len(entries))
	}
}

func TestRunCanceled(t *testing.T) {
	path := writeTestFont(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, path, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want %v", err, context.Canceled)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "test.designspace")); err == nil {
		t.Error("designspace was written")
	}
}

func TestRunMissingFile(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "none.yaml"), nil)
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageLoad {
		t.Errorf("got %v, want load error", err)
	}
}
