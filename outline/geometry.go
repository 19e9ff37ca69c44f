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

package outline

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Edge is a segment together with its start point.
type Edge struct {
	Op     Op
	P0     vec.Vec2
	C1, C2 vec.Vec2
	P1     vec.Vec2
}

// Edges returns the edges of the contour, including the implicit closing
// line if the last segment does not end at the start point.
func (c Contour) Edges() []Edge {
	res := make([]Edge, 0, len(c.Segments)+1)
	cur := c.Start
	for _, s := range c.Segments {
		res = append(res, Edge{Op: s.Op, P0: cur, C1: s.C1, C2: s.C2, P1: s.End})
		cur = s.End
	}
	if cur != c.Start {
		res = append(res, Edge{Op: OpLine, P0: cur, P1: c.Start})
	}
	return res
}

// FromEdges constructs a contour from a closed chain of edges.
// A final straight edge back to the start is left implicit.
func FromEdges(edges []Edge) Contour {
	if len(edges) == 0 {
		return Contour{}
	}
	c := Contour{Start: edges[0].P0}
	for _, e := range edges {
		c.Segments = append(c.Segments, Segment{Op: e.Op, C1: e.C1, C2: e.C2, End: e.P1})
	}
	if n := len(c.Segments); n > 0 && c.Segments[n-1].Op == OpLine && c.Segments[n-1].End == c.Start {
		c.Segments = c.Segments[:n-1]
	}
	return c
}

// Reverse returns the edge traversed in the opposite direction.
func (e Edge) Reverse() Edge {
	return Edge{Op: e.Op, P0: e.P1, C1: e.C2, C2: e.C1, P1: e.P0}
}

// At returns the point at parameter t in [0, 1].
func (e Edge) At(t float64) vec.Vec2 {
	if e.Op != OpCubic {
		return lerp(e.P0, e.P1, t)
	}
	s := 1 - t
	a := s * s * s
	b := 3 * s * s * t
	c := 3 * s * t * t
	d := t * t * t
	return vec.Vec2{
		X: a*e.P0.X + b*e.C1.X + c*e.C2.X + d*e.P1.X,
		Y: a*e.P0.Y + b*e.C1.Y + c*e.C2.Y + d*e.P1.Y,
	}
}

// Tangent returns the derivative of the edge at parameter t.
func (e Edge) Tangent(t float64) vec.Vec2 {
	if e.Op != OpCubic {
		return e.P1.Sub(e.P0)
	}
	s := 1 - t
	d1 := e.C1.Sub(e.P0)
	d2 := e.C2.Sub(e.C1)
	d3 := e.P1.Sub(e.C2)
	return d1.Mul(3 * s * s).Add(d2.Mul(6 * s * t)).Add(d3.Mul(3 * t * t))
}

// Split divides the edge at parameter t, using de Casteljau's algorithm.
func (e Edge) Split(t float64) (Edge, Edge) {
	if e.Op != OpCubic {
		m := lerp(e.P0, e.P1, t)
		return Edge{Op: e.Op, P0: e.P0, P1: m}, Edge{Op: e.Op, P0: m, P1: e.P1}
	}
	p01 := lerp(e.P0, e.C1, t)
	p12 := lerp(e.C1, e.C2, t)
	p23 := lerp(e.C2, e.P1, t)
	p012 := lerp(p01, p12, t)
	p123 := lerp(p12, p23, t)
	m := lerp(p012, p123, t)
	return Edge{Op: OpCubic, P0: e.P0, C1: p01, C2: p012, P1: m},
		Edge{Op: OpCubic, P0: m, C1: p123, C2: p23, P1: e.P1}
}

// SplitAt divides the edge at the given increasing parameters in (0, 1).
func (e Edge) SplitAt(ts []float64) []Edge {
	res := make([]Edge, 0, len(ts)+1)
	rest := e
	prev := 0.0
	for _, t := range ts {
		// map t from the original edge to the remaining piece
		u := (t - prev) / (1 - prev)
		var head Edge
		head, rest = rest.Split(u)
		res = append(res, head)
		prev = t
	}
	return append(res, rest)
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// area returns the contribution of the edge to the signed area of a
// closed contour (Green's theorem).
func (e Edge) area() float64 {
	p0, p1 := e.P0, e.P1
	if e.Op != OpCubic {
		return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
	}
	c1, c2 := e.C1, e.C2
	return (p0.X*(6*c1.Y+3*c2.Y+p1.Y) +
		3*c1.X*(-2*p0.Y+c2.Y+p1.Y) +
		3*c2.X*(-p0.Y-c1.Y+2*p1.Y) +
		p1.X*(-p0.Y-3*c1.Y-6*c2.Y)) / 20
}

// SignedArea returns the area enclosed by the contour.
// The area is positive for counter-clockwise contours (in a coordinate
// system where y points up), and negative for clockwise contours.
func (c Contour) SignedArea() float64 {
	var area float64
	for _, e := range c.Edges() {
		area += e.area()
	}
	return area
}

// SignedArea returns the sum of the signed areas of all contours.
func (o Outline) SignedArea() float64 {
	var area float64
	for _, c := range o.Contours {
		area += c.SignedArea()
	}
	return area
}

// Reverse returns the contour traversed in the opposite direction.
// The start point is unchanged.
func (c Contour) Reverse() Contour {
	edges := c.Edges()
	rev := make([]Edge, len(edges))
	for i, e := range edges {
		rev[len(edges)-1-i] = e.Reverse()
	}
	return FromEdges(rev)
}

// Vertices returns the on-curve points of the contour, starting with the
// start point.
func (c Contour) Vertices() []vec.Vec2 {
	res := make([]vec.Vec2, 0, len(c.Segments)+1)
	res = append(res, c.Start)
	for i, s := range c.Segments {
		if i == len(c.Segments)-1 && s.End == c.Start {
			break
		}
		res = append(res, s.End)
	}
	return res
}

// Flatten returns a copy of the outline where every cubic segment is
// replaced by straight lines.  The distance between the curves and the
// approximating polygons is at most tol.
func (o Outline) Flatten(tol float64) Outline {
	res := Outline{}
	for _, c := range o.Contours {
		nc := Contour{Start: c.Start}
		emit := func(p vec.Vec2) {
			nc.Segments = append(nc.Segments, Segment{Op: OpLine, End: p})
		}
		for _, e := range c.Edges() {
			if e.Op == OpCubic {
				flattenCubic(e, tol*tol, 0, emit)
			} else {
				emit(e.P1)
			}
		}
		res.Contours = append(res.Contours, FromEdges(nc.Edges()))
	}
	return res
}

const maxFlattenDepth = 16

func flattenCubic(e Edge, tolSq float64, depth int, emit func(vec.Vec2)) {
	if depth >= maxFlattenDepth || cubicFlatness(e) <= 16*tolSq {
		emit(e.P1)
		return
	}
	a, b := e.Split(0.5)
	flattenCubic(a, tolSq, depth+1, emit)
	flattenCubic(b, tolSq, depth+1, emit)
}

// cubicFlatness returns 16 times the squared maximal distance between
// the curve and its chord, up to a constant factor.
func cubicFlatness(e Edge) float64 {
	ux := 3*e.C1.X - 2*e.P0.X - e.P1.X
	uy := 3*e.C1.Y - 2*e.P0.Y - e.P1.Y
	vx := 3*e.C2.X - e.P0.X - 2*e.P1.X
	vy := 3*e.C2.Y - e.P0.Y - 2*e.P1.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}
