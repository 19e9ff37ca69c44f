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

// Package outline implements glyph outlines made of closed contours.
//
// A contour starts at a point and consists of straight line segments and
// cubic Bézier segments.  Contours are always closed: if the last segment
// does not end at the start point, an implicit straight line joins the two.
// Outlines are built using a [Builder], which implements the [Pen] interface,
// and can be replayed into any other [Pen] using [Outline.Draw].
package outline

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Op identifies the type of a segment.
type Op uint8

// These are the supported segment types.
const (
	OpLine Op = iota + 1
	OpCubic
)

func (op Op) String() string {
	switch op {
	case OpLine:
		return "line"
	case OpCubic:
		return "cubic"
	default:
		return "invalid"
	}
}

// Segment is one piece of a contour.
// The segment starts at the end point of the previous segment, or at the
// start point of the contour for the first segment.
type Segment struct {
	Op Op

	// C1 and C2 are the control points of a cubic segment.
	// They are unused for straight lines.
	C1, C2 vec.Vec2

	End vec.Vec2
}

// Contour is a closed loop of segments.
type Contour struct {
	Start    vec.Vec2
	Segments []Segment
}

// Outline is an ordered sequence of closed contours.
type Outline struct {
	Contours []Contour
}

// IsEmpty reports whether the outline has no contours.
func (o Outline) IsEmpty() bool {
	return len(o.Contours) == 0
}

// Clone returns a deep copy of the outline.
func (o Outline) Clone() Outline {
	if o.Contours == nil {
		return Outline{}
	}
	res := Outline{Contours: make([]Contour, len(o.Contours))}
	for i, c := range o.Contours {
		res.Contours[i] = c.Clone()
	}
	return res
}

// Clone returns a deep copy of the contour.
func (c Contour) Clone() Contour {
	return Contour{
		Start:    c.Start,
		Segments: append([]Segment(nil), c.Segments...),
	}
}

// NumPoints returns the number of on-curve and off-curve points.
func (o Outline) NumPoints() int {
	n := 0
	for _, c := range o.Contours {
		n++
		for _, s := range c.Segments {
			if s.Op == OpCubic {
				n += 3
			} else {
				n++
			}
		}
	}
	return n
}

// Compatible reports whether two outlines have the same contour structure,
// i.e. whether they could be interpolated point by point.
func Compatible(a, b Outline) bool {
	if len(a.Contours) != len(b.Contours) {
		return false
	}
	for i := range a.Contours {
		sa, sb := a.Contours[i].Segments, b.Contours[i].Segments
		if len(sa) != len(sb) {
			return false
		}
		for j := range sa {
			if sa[j].Op != sb[j].Op {
				return false
			}
		}
	}
	return true
}

// Draw replays the outline into the given pen.
func (o Outline) Draw(pen Pen) {
	for _, c := range o.Contours {
		pen.MoveTo(c.Start.X, c.Start.Y)
		for _, s := range c.Segments {
			switch s.Op {
			case OpLine:
				pen.LineTo(s.End.X, s.End.Y)
			case OpCubic:
				pen.CurveTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.End.X, s.End.Y)
			}
		}
		pen.ClosePath()
	}
}

// Apply maps the point p through M.
func Apply(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// Transform returns a copy of the outline with every point mapped through M.
func (o Outline) Transform(M matrix.Matrix) Outline {
	res := Outline{}
	for _, c := range o.Contours {
		nc := Contour{
			Start:    Apply(M, c.Start),
			Segments: make([]Segment, len(c.Segments)),
		}
		for j, s := range c.Segments {
			ns := Segment{Op: s.Op, End: Apply(M, s.End)}
			if s.Op == OpCubic {
				ns.C1 = Apply(M, s.C1)
				ns.C2 = Apply(M, s.C2)
			}
			nc.Segments[j] = ns
		}
		res.Contours = append(res.Contours, nc)
	}
	return res
}

// Translate returns a copy of the outline, shifted by (dx, dy).
func (o Outline) Translate(dx, dy float64) Outline {
	return o.Transform(matrix.Translate(dx, dy))
}

// Bounds returns the bounding box of all on-curve and off-curve points.
// This contains the exact bounding box of the outline.
// The result is the zero rectangle for empty outlines.
func (o Outline) Bounds() rect.Rect {
	var res rect.Rect
	first := true
	add := func(p vec.Vec2) {
		if first {
			res = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			first = false
			return
		}
		res.LLx = math.Min(res.LLx, p.X)
		res.LLy = math.Min(res.LLy, p.Y)
		res.URx = math.Max(res.URx, p.X)
		res.URy = math.Max(res.URy, p.Y)
	}
	for _, c := range o.Contours {
		add(c.Start)
		for _, s := range c.Segments {
			if s.Op == OpCubic {
				add(s.C1)
				add(s.C2)
			}
			add(s.End)
		}
	}
	return res
}

// Pen is the interface used to draw outlines.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

var (
	// ErrOpenContour is reported when a contour is not closed before the next
	// contour starts, or before the outline is finished.
	ErrOpenContour = errors.New("outline: open contour")

	// ErrNoCurrentPoint is reported when a segment is drawn without a
	// preceding MoveTo.
	ErrNoCurrentPoint = errors.New("outline: no current point")
)

// Builder records pen operations into an [Outline].
// The first error encountered is kept and returned by [Builder.Outline].
type Builder struct {
	res  Outline
	cur  *Contour
	last vec.Vec2
	err  error
}

// MoveTo starts a new contour.
func (b *Builder) MoveTo(x, y float64) {
	if b.cur != nil {
		b.setErr(ErrOpenContour)
		b.ClosePath()
	}
	p := vec.Vec2{X: x, Y: y}
	b.cur = &Contour{Start: p}
	b.last = p
}

// LineTo appends a straight line segment to the current contour.
// Zero-length lines are dropped.
func (b *Builder) LineTo(x, y float64) {
	if b.cur == nil {
		b.setErr(ErrNoCurrentPoint)
		return
	}
	p := vec.Vec2{X: x, Y: y}
	if p == b.last {
		return
	}
	b.cur.Segments = append(b.cur.Segments, Segment{Op: OpLine, End: p})
	b.last = p
}

// CurveTo appends a cubic Bézier segment to the current contour.
func (b *Builder) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if b.cur == nil {
		b.setErr(ErrNoCurrentPoint)
		return
	}
	p := vec.Vec2{X: x3, Y: y3}
	b.cur.Segments = append(b.cur.Segments, Segment{
		Op:  OpCubic,
		C1:  vec.Vec2{X: x1, Y: y1},
		C2:  vec.Vec2{X: x2, Y: y2},
		End: p,
	})
	b.last = p
}

// ClosePath closes the current contour.
// An explicit final line back to the start point is removed, since
// contours are closed implicitly.
func (b *Builder) ClosePath() {
	if b.cur == nil {
		b.setErr(ErrNoCurrentPoint)
		return
	}
	c := b.cur
	if n := len(c.Segments); n > 0 && c.Segments[n-1].Op == OpLine && c.Segments[n-1].End == c.Start {
		c.Segments = c.Segments[:n-1]
	}
	if len(c.Segments) > 0 {
		b.res.Contours = append(b.res.Contours, *c)
	}
	b.cur = nil
}

// Outline returns the recorded outline.
func (b *Builder) Outline() (Outline, error) {
	if b.cur != nil {
		b.setErr(ErrOpenContour)
		b.ClosePath()
	}
	return b.res, b.err
}

// Reset discards all recorded data.
func (b *Builder) Reset() {
	*b = Builder{}
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
