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

// Package extrude computes the side faces of glyphs extruded along a fixed
// direction.
//
// A glyph outline, moved along the vector d, sweeps out a region of the
// plane.  This region is the union of the original outline and of one
// quadrilateral for every edge which faces in the direction of d.  The
// quadrilaterals together form the side face of the extruded glyph.
package extrude

import (
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/features"
	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
)

// Extrude returns the side face of the outline o, moved by depth units in
// the direction given by angle (in radians, counter-clockwise from the
// positive x-axis).
//
// The result has one closed contour for every edge piece which faces the
// extrusion direction.  Curves are split where their tangent is parallel to
// the direction, so that every piece faces one way.  Edges parallel to the
// direction are included.  The contours are wound in the opposite direction
// of the filled contours of o.
//
// If depth is zero, the result is empty.
func Extrude(o outline.Outline, angle, depth float64) outline.Outline {
	if depth == 0 || o.IsEmpty() {
		return outline.Outline{}
	}
	d := vec.Vec2{X: depth * math.Cos(angle), Y: depth * math.Sin(angle)}

	// For counter-clockwise filled contours, the outside is to the right
	// of the direction of travel.
	outwardSign := 1.0
	if o.SignedArea() < 0 {
		outwardSign = -1.0
	}

	res := outline.Outline{}
	for _, c := range o.Contours {
		for _, e := range c.Edges() {
			for _, piece := range splitParallel(e, d) {
				t := piece.Tangent(0.5)
				if t == (vec.Vec2{}) {
					continue
				}
				normal := vec.Vec2{X: t.Y, Y: -t.X}.Mul(outwardSign)
				dot := normal.X*d.X + normal.Y*d.Y
				if dot < -parallelTolerance*normal.Length()*d.Length() {
					continue
				}
				res.Contours = append(res.Contours, quad(piece, d))
			}
		}
	}
	return res
}

// parallelTolerance is the relative tolerance used to decide whether an edge
// is parallel to the extrusion direction.
const parallelTolerance = 1e-9

// quad returns the region swept by the edge e when moved by d.
func quad(e outline.Edge, d vec.Vec2) outline.Contour {
	back := outline.Edge{
		Op: e.Op,
		P0: e.P0.Add(d),
		C1: e.C1.Add(d),
		C2: e.C2.Add(d),
		P1: e.P1.Add(d),
	}.Reverse()
	if e.Op != outline.OpCubic {
		back.C1, back.C2 = vec.Vec2{}, vec.Vec2{}
	}
	return outline.Contour{
		Start: e.P0,
		Segments: []outline.Segment{
			{Op: e.Op, C1: e.C1, C2: e.C2, End: e.P1},
			{Op: outline.OpLine, End: back.P0},
			{Op: back.Op, C1: back.C1, C2: back.C2, End: back.P1},
		},
	}
}

// splitParallel splits a cubic edge at all parameters where the tangent is
// parallel to d.  Straight edges are returned unchanged.
func splitParallel(e outline.Edge, d vec.Vec2) []outline.Edge {
	if e.Op != outline.OpCubic {
		return []outline.Edge{e}
	}

	// The tangent is 3·((1-t)²·d1 + 2(1-t)t·d2 + t²·d3).  Its cross product
	// with d is a quadratic polynomial in t.
	cross := func(v vec.Vec2) float64 { return v.X*d.Y - v.Y*d.X }
	a := cross(e.C1.Sub(e.P0))
	b := cross(e.C2.Sub(e.C1))
	c := cross(e.P1.Sub(e.C2))

	var ts []float64
	for _, t := range quadraticRoots(a-2*b+c, 2*(b-a), a) {
		if t > splitEpsilon && t < 1-splitEpsilon {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return []outline.Edge{e}
	}
	slices.Sort(ts)
	ts = slices.Compact(ts)
	return e.SplitAt(ts)
}

// splitEpsilon is the minimal distance of split parameters from the ends of
// a curve.
const splitEpsilon = 1e-9

// quadraticRoots returns the real roots of A·t² + B·t + C.
func quadraticRoots(A, B, C float64) []float64 {
	scale := math.Max(math.Abs(A), math.Max(math.Abs(B), math.Abs(C)))
	if scale == 0 {
		return nil
	}
	if math.Abs(A) <= 1e-12*scale {
		if math.Abs(B) <= 1e-12*scale {
			return nil
		}
		return []float64{-C / B}
	}
	disc := B*B - 4*A*C
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-B / (2 * A)}
	}
	// numerically stable form
	q := -(B + math.Copysign(math.Sqrt(disc), B)) / 2
	return []float64{q / A, C / q}
}

// Glyph splits the glyph with the given name into a front face and a side
// face, both added to the font as separate glyphs.
//
// The glyph is first moved by depth/2 in the direction given by angle.  The
// side face, extruded backwards by the full depth, is stored as the glyph
// name+".side" and a copy of the moved glyph as name+".front".  Both have the
// advance width of the original glyph.  Finally, the glyph itself is
// replaced by a composite of the front and side glyphs.
//
// If depth is zero, the side glyph is created without contours, and a
// [*DegenerateExtrusionWarning] is returned after all glyphs have been
// stored.
func Glyph(f glyph.Font, name string, angle, depth float64) error {
	g := f.Glyph(name)
	if g == nil {
		return fmt.Errorf("extrude: glyph %q not found", name)
	}
	if len(g.Components) > 0 {
		return fmt.Errorf("extrude: glyph %q has components", name)
	}

	half := depth / 2
	g.Outline = g.Outline.Translate(half*math.Cos(angle), half*math.Sin(angle))

	sideName := features.Side(name)
	frontName := features.Front(name)
	f.SetGlyph(&glyph.Glyph{
		Name:    sideName,
		Width:   g.Width,
		Outline: Extrude(g.Outline, angle, -depth),
	})
	f.SetGlyph(g.Rename(frontName))

	g.Outline = outline.Outline{}
	g.Components = []glyph.Component{
		{Base: frontName, Matrix: matrix.Identity},
		{Base: sideName, Matrix: matrix.Identity},
	}

	if depth == 0 {
		return &DegenerateExtrusionWarning{Glyph: name}
	}
	return nil
}

// DegenerateExtrusionWarning is returned by [Glyph] if the extrusion depth is
// zero.  The font is still updated, the side glyph has no contours.
type DegenerateExtrusionWarning struct {
	Glyph string
}

func (w *DegenerateExtrusionWarning) Error() string {
	return fmt.Sprintf("glyph %q: zero extrusion depth, side face is empty", w.Glyph)
}
