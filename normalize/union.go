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

package normalize

import (
	"fmt"
	"math"
	"slices"

	"github.com/tdewolff/canvas"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/outline"
)

// RemoveOverlaps computes the union of all contours of o, using the
// non-zero winding rule.  Self-intersecting contours are resolved in the
// same way, so the result has no self-intersections.
//
// Curves are flattened with the given tolerance before the union is
// computed, so the result consists of straight lines only.  In the result,
// outer contours are counter-clockwise and holes are clockwise, every
// contour starts at its lowest-leftmost vertex, and contours are sorted by
// their start points.  Applying RemoveOverlaps to its own output returns
// the same outline.
//
// Degenerate contours (fewer than three distinct vertices, or all vertices
// on one line) cause a [*GeometryError].
func RemoveOverlaps(o outline.Outline, tol float64) (res outline.Outline, err error) {
	if o.IsEmpty() {
		return outline.Outline{}, nil
	}

	flat := o.Flatten(tol)
	p := &canvas.Path{}
	for i, c := range flat.Contours {
		pts := dedup(c.Vertices())
		if len(pts) < 3 {
			return outline.Outline{}, &GeometryError{Contour: i, Reason: "contour has fewer than three distinct points"}
		}
		for _, q := range pts {
			if math.IsNaN(q.X) || math.IsNaN(q.Y) || math.IsInf(q.X, 0) || math.IsInf(q.Y, 0) {
				return outline.Outline{}, &GeometryError{Contour: i, Reason: "non-finite coordinate"}
			}
		}
		if collinear(pts) {
			return outline.Outline{}, &GeometryError{Contour: i, Reason: "contour has zero area"}
		}
		p.MoveTo(pts[0].X, pts[0].Y)
		for _, q := range pts[1:] {
			p.LineTo(q.X, q.Y)
		}
		p.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			res = outline.Outline{}
			err = &GeometryError{Contour: -1, Reason: fmt.Sprint("union failed: ", r)}
		}
	}()

	settled := p.Settle(canvas.NonZero)
	return canonical(polygons(settled)), nil
}

// polygons splits a flat path into its closed polygons.
func polygons(p *canvas.Path) [][]vec.Vec2 {
	var res [][]vec.Vec2
	var cur []vec.Vec2
	flush := func() {
		if len(cur) > 0 {
			res = append(res, cur)
		}
		cur = nil
	}
	s := p.Scanner()
	for s.Scan() {
		end := s.End()
		q := vec.Vec2{X: end.X, Y: end.Y}
		switch s.Cmd() {
		case canvas.MoveToCmd:
			flush()
			cur = []vec.Vec2{q}
		case canvas.CloseCmd:
			cur = append(cur, q)
			flush()
		default:
			// The input is flat, so only straight lines occur here.
			cur = append(cur, q)
		}
	}
	flush()
	return res
}

// collinear reports whether all points lie on one straight line.
func collinear(pts []vec.Vec2) bool {
	a := pts[0]
	far, dist := a, 0.0
	for _, q := range pts[1:] {
		if l := q.Sub(a).Length(); l > dist {
			far, dist = q, l
		}
	}
	if dist == 0 {
		return true
	}
	d := far.Sub(a)
	for _, q := range pts {
		e := q.Sub(a)
		if math.Abs(d.X*e.Y-d.Y*e.X) > collinearEpsilon*dist*dist {
			return false
		}
	}
	return true
}

// collinearEpsilon is the distance from the line, relative to the size
// of the contour, below which a vertex counts as lying on the line.
const collinearEpsilon = 1e-9

// areaEpsilon is the relative area below which a contour is considered
// degenerate.
const areaEpsilon = 1e-12

func boxArea(pts []vec.Vec2) float64 {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return math.Max((maxX-minX)*(maxY-minY), 1)
}

// dedup removes consecutive duplicate points, treating the list as cyclic.
func dedup(pts []vec.Vec2) []vec.Vec2 {
	res := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(res) > 0 && res[len(res)-1] == p {
			continue
		}
		res = append(res, p)
	}
	for len(res) > 1 && res[0] == res[len(res)-1] {
		res = res[:len(res)-1]
	}
	return res
}

// canonical converts the result of a polygon operation into an outline.
func canonical(polys [][]vec.Vec2) outline.Outline {
	var contours [][]vec.Vec2
	for _, c := range polys {
		pts := dropCollinear(dedup(c))
		if len(pts) >= 3 && math.Abs(polygonArea(pts)) > areaEpsilon*boxArea(pts) {
			contours = append(contours, pts)
		}
	}

	// The contours of a union do not overlap, so the nesting depth tells
	// outer contours (even depth) from holes (odd depth).
	for i, c := range contours {
		depth := 0
		probe := interiorProbe(c)
		for j, other := range contours {
			if i != j && pointInPolygon(probe, other) {
				depth++
			}
		}
		ccw := polygonArea(c) > 0
		if ccw != (depth%2 == 0) {
			slices.Reverse(c)
		}
		contours[i] = rotateToLowest(c)
	}
	slices.SortFunc(contours, func(a, b []vec.Vec2) int {
		return comparePoints(a[0], b[0])
	})

	res := outline.Outline{}
	for _, c := range contours {
		oc := outline.Contour{Start: c[0]}
		for _, q := range c[1:] {
			oc.Segments = append(oc.Segments, outline.Segment{Op: outline.OpLine, End: q})
		}
		res.Contours = append(res.Contours, oc)
	}
	return res
}

// dropCollinear removes vertices which lie on the straight line between
// their neighbours.
func dropCollinear(pts []vec.Vec2) []vec.Vec2 {
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		n := len(pts)
		for i := 0; i < n; i++ {
			a, b, c := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
			ab := b.Sub(a)
			bc := c.Sub(b)
			cross := ab.X*bc.Y - ab.Y*bc.X
			scale := ab.Length() * bc.Length()
			if math.Abs(cross) <= 1e-12*scale && ab.X*bc.X+ab.Y*bc.Y > 0 {
				pts = slices.Delete(pts, i, i+1)
				changed = true
				break
			}
		}
	}
	return pts
}

// rotateToLowest rotates the cyclic list so that the smallest point, in the
// order of [comparePoints], comes first.
func rotateToLowest(pts []vec.Vec2) []vec.Vec2 {
	k := 0
	for i := range pts {
		if comparePoints(pts[i], pts[k]) < 0 {
			k = i
		}
	}
	return append(pts[k:len(pts):len(pts)], pts[:k]...)
}

// comparePoints orders points by y coordinate, then by x coordinate.
func comparePoints(a, b vec.Vec2) int {
	switch {
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	default:
		return 0
	}
}

// polygonArea returns the signed area of a closed polygon.
func polygonArea(pts []vec.Vec2) float64 {
	var area float64
	n := len(pts)
	for i := range n {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// interiorProbe returns a point close to the midpoint of the longest edge,
// moved slightly towards the interior of the polygon.
func interiorProbe(pts []vec.Vec2) vec.Vec2 {
	n := len(pts)
	best := 0
	bestLen := -1.0
	for i := range n {
		l := pts[(i+1)%n].Sub(pts[i]).Length()
		if l > bestLen {
			best, bestLen = i, l
		}
	}
	a, b := pts[best], pts[(best+1)%n]
	mid := vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	d := b.Sub(a)
	inward := vec.Vec2{X: -d.Y, Y: d.X} // left normal, interior for ccw
	if polygonArea(pts) < 0 {
		inward = inward.Mul(-1)
	}
	return mid.Add(inward.Mul(1e-6))
}

func pointInPolygon(p vec.Vec2, poly []vec.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// GeometryError indicates that the outline of a glyph cannot be normalised.
type GeometryError struct {
	Glyph string

	// Contour is the index of the offending contour, or -1 if the problem
	// cannot be attributed to a single contour.
	Contour int

	Reason string
}

func (err *GeometryError) Error() string {
	var where string
	if err.Glyph != "" {
		where = fmt.Sprintf("glyph %q: ", err.Glyph)
	}
	if err.Contour >= 0 {
		where += fmt.Sprintf("contour %d: ", err.Contour)
	}
	return "geometry error: " + where + err.Reason
}
