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

package extrude

import (
	"errors"
	"image"
	"image/draw"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/internal/squarefont"
	"seehuhn.de/go/bevel/outline"
)

func TestExtrudeZeroDepth(t *testing.T) {
	o := squarefont.Rect(0, 0, 10, 10)
	res := Extrude(o, 0.3, 0)
	if !res.IsEmpty() {
		t.Errorf("got %d contours, want 0", len(res.Contours))
	}
}

func TestExtrudeConvex(t *testing.T) {
	for n := 3; n <= 12; n++ {
		xy := make([]float64, 0, 2*n)
		for i := range n {
			phi := 2 * math.Pi * float64(i) / float64(n)
			xy = append(xy, 50*math.Cos(phi), 50*math.Sin(phi))
		}
		o := squarefont.Polygon(xy...)
		for _, deg := range []float64{-30, 0, 45, 90, 170} {
			res := Extrude(o, deg*math.Pi/180, 40)
			if len(res.Contours) > n {
				t.Errorf("%d-gon, %g°: got %d quads", n, deg, len(res.Contours))
			}
			if len(res.Contours) == 0 {
				t.Errorf("%d-gon, %g°: no quads", n, deg)
			}
		}
	}
}

func TestExtrudeWinding(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		o := squarefont.Rect(0, 0, 100, 50)
		if reverse {
			o.Contours[0] = o.Contours[0].Reverse()
		}
		front := o.SignedArea()
		res := Extrude(o, -math.Pi/6, 30)

		// Two edges face the direction (1, -1)/2 strictly.
		if len(res.Contours) != 2 {
			t.Fatalf("got %d quads, want 2", len(res.Contours))
		}
		for i, c := range res.Contours {
			if a := c.SignedArea(); a*front >= 0 {
				t.Errorf("reverse=%t: quad %d has area %g, front has %g",
					reverse, i, a, front)
			}
		}
	}
}

func TestExtrudeParallelEdges(t *testing.T) {
	// Moving a rectangle horizontally, the top and bottom edges are
	// parallel to the direction and are kept as degenerate quads.
	o := squarefont.Rect(0, 0, 100, 50)
	res := Extrude(o, 0, 30)
	if len(res.Contours) != 3 {
		t.Errorf("got %d quads, want 3", len(res.Contours))
	}
}

func TestExtrudeCurves(t *testing.T) {
	k := 50 * 0.5522847498
	b := &outline.Builder{}
	b.MoveTo(50, 0)
	b.CurveTo(50, k, k, 50, 0, 50)
	b.CurveTo(-k, 50, -50, k, -50, 0)
	b.CurveTo(-50, -k, -k, -50, 0, -50)
	b.CurveTo(k, -50, 50, -k, 50, 0)
	b.ClosePath()
	circle, err := b.Outline()
	if err != nil {
		t.Fatal(err)
	}

	// At 45°, the second and fourth quarter circles are split.
	res := Extrude(circle, math.Pi/4, 20)
	if len(res.Contours) != 3 {
		t.Fatalf("got %d pieces, want 3", len(res.Contours))
	}
	for _, c := range res.Contours {
		edges := c.Edges()
		if len(edges) != 4 {
			t.Errorf("got %d edges, want 4", len(edges))
			continue
		}
		if edges[0].Op != outline.OpCubic || edges[2].Op != outline.OpCubic {
			t.Errorf("expected curved front and back edges")
		}
		want := edges[0].P0.Add(vec.Vec2{X: 20 / math.Sqrt2, Y: 20 / math.Sqrt2})
		if d := edges[2].P1.Sub(want).Length(); d > 1e-9 {
			t.Errorf("back edge ends at %v, want %v", edges[2].P1, want)
		}
	}
}

// TestCoverage checks that the front face together with the side face covers
// the whole region swept by the moving outline.
func TestCoverage(t *testing.T) {
	const size = 64
	angle := -math.Pi / 6
	depth := 20.0
	dx, dy := depth*math.Cos(angle), depth*math.Sin(angle)

	front := squarefont.Rect(10, 20, 30, 40)
	side := Extrude(front, angle, depth)

	hull := squarefont.Polygon(
		10+dx, 20+dy,
		30+dx, 20+dy,
		30+dx, 40+dy,
		30, 40,
		10, 40,
		10, 20,
	)

	got := rasterize(size, front)
	for _, c := range side.Contours {
		mask := rasterize(size, outline.Outline{Contours: []outline.Contour{c}})
		for i, a := range mask.Pix {
			got.Pix[i] = uint8(min(int(got.Pix[i])+int(a), 255))
		}
	}
	want := rasterize(size, hull)

	bad := 0
	for i := range got.Pix {
		if diff := int(got.Pix[i]) - int(want.Pix[i]); diff < -3 || diff > 3 {
			bad++
		}
	}
	if bad > 0 {
		t.Errorf("%d pixels differ", bad)
	}
}

func rasterize(size int, o outline.Outline) *image.Alpha {
	flat := o.Flatten(0.1)
	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Src
	for _, c := range flat.Contours {
		z.MoveTo(float32(c.Start.X), float32(c.Start.Y))
		for _, s := range c.Segments {
			z.LineTo(float32(s.End.X), float32(s.End.Y))
		}
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func TestGlyph(t *testing.T) {
	f := squarefont.New()
	angle := -math.Pi / 6
	depth := 100.0

	err := Glyph(f, "A", angle, depth)
	if err != nil {
		t.Fatal(err)
	}

	g := f.Glyph("A")
	if !g.Outline.IsEmpty() {
		t.Error("composite glyph has contours")
	}
	wantComp := []glyph.Component{
		{Base: "A.front", Matrix: matrix.Identity},
		{Base: "A.side", Matrix: matrix.Identity},
	}
	if len(g.Components) != 2 || g.Components[0] != wantComp[0] || g.Components[1] != wantComp[1] {
		t.Errorf("got components %v, want %v", g.Components, wantComp)
	}

	front := f.Glyph("A.front")
	side := f.Glyph("A.side")
	if front == nil || side == nil {
		t.Fatal("missing front or side glyph")
	}
	if front.Width != squarefont.SquareWidth || side.Width != squarefont.SquareWidth {
		t.Errorf("widths %g and %g, want %d", front.Width, side.Width, squarefont.SquareWidth)
	}

	// the front face is moved by half the depth
	wantStart := vec.Vec2{
		X: squarefont.SquareLeft + depth/2*math.Cos(angle),
		Y: squarefont.SquareBottom + depth/2*math.Sin(angle),
	}
	if d := front.Outline.Contours[0].Start.Sub(wantStart).Length(); d > 1e-9 {
		t.Errorf("front starts at %v, want %v", front.Outline.Contours[0].Start, wantStart)
	}

	// the side face reaches back by the full depth
	box := side.Outline.Bounds()
	wantLLx := squarefont.SquareLeft - depth/2*math.Cos(angle)
	if math.Abs(box.LLx-wantLLx) > 1e-9 {
		t.Errorf("side face starts at x=%g, want %g", box.LLx, wantLLx)
	}
	if len(side.Outline.Contours) != 2 {
		t.Errorf("got %d side quads, want 2", len(side.Outline.Contours))
	}
}

func TestGlyphZeroDepth(t *testing.T) {
	f := squarefont.New()
	err := Glyph(f, "A", -math.Pi/6, 0)

	var warn *DegenerateExtrusionWarning
	if !errors.As(err, &warn) {
		t.Fatalf("got %v, want degenerate extrusion warning", err)
	}
	side := f.Glyph("A.side")
	if side == nil {
		t.Fatal("side glyph missing")
	}
	if !side.Outline.IsEmpty() {
		t.Error("side glyph has contours")
	}
	if f.Glyph("A.front").Outline.IsEmpty() {
		t.Error("front glyph is empty")
	}
}

func TestGlyphMissing(t *testing.T) {
	f := squarefont.New()
	if err := Glyph(f, "nowhere", 0, 100); err == nil {
		t.Error("missing error")
	}
}
