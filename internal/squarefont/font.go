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

package squarefont

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
	"seehuhn.de/go/bevel/source"
)

// Geometry of the test glyphs, in font design units.
const (
	SquareLeft   = 100
	SquareRight  = 500
	SquareBottom = 200
	SquareTop    = 600

	HoleLeft   = 200
	HoleRight  = 400
	HoleBottom = 300
	HoleTop    = 500

	UnitsPerEm  = 1000
	NotdefWidth = 500
	SpaceWidth  = 250
	SquareWidth = 500
)

// New returns a new copy of the test font.
func New() *source.Font {
	f := source.New(UnitsPerEm)
	f.SetGlyph(&glyph.Glyph{Name: ".notdef", Width: NotdefWidth})
	f.SetGlyph(&glyph.Glyph{Name: "space", Width: SpaceWidth})
	f.SetGlyph(&glyph.Glyph{
		Name:    "A",
		Width:   SquareWidth,
		Outline: Rect(SquareLeft, SquareBottom, SquareRight, SquareTop),
	})

	ring := Rect(SquareLeft, SquareBottom, SquareRight, SquareTop)
	hole := Rect(HoleLeft, HoleBottom, HoleRight, HoleTop).Contours[0].Reverse()
	ring.Contours = append(ring.Contours, hole)
	f.SetGlyph(&glyph.Glyph{Name: "O", Width: SquareWidth, Outline: ring})

	cross := Rect(SquareLeft, 350, SquareRight, 450)
	cross.Contours = append(cross.Contours, Rect(250, SquareBottom, 350, SquareTop).Contours...)
	f.SetGlyph(&glyph.Glyph{Name: "X", Width: SquareWidth, Outline: cross})

	f.SetGlyph(&glyph.Glyph{
		Name:  "Adot",
		Width: SquareWidth,
		Components: []glyph.Component{
			{Base: "A", Matrix: matrix.Identity},
			{Base: "A", Matrix: matrix.Matrix{0.25, 0, 0, 0.25, 250, 650}},
		},
	})
	return f
}

// Cyclic returns a font with a loop in the component graph.
func Cyclic() *source.Font {
	f := New()
	f.SetGlyph(&glyph.Glyph{
		Name:       "loop1",
		Width:      SquareWidth,
		Components: []glyph.Component{{Base: "A", Matrix: matrix.Identity}, {Base: "loop2", Matrix: matrix.Identity}},
	})
	f.SetGlyph(&glyph.Glyph{
		Name:       "loop2",
		Width:      SquareWidth,
		Components: []glyph.Component{{Base: "loop1", Matrix: matrix.Translate(10, 0)}},
	})
	return f
}

// Rect returns an outline consisting of one counter-clockwise rectangle.
func Rect(left, bottom, right, top float64) outline.Outline {
	b := &outline.Builder{}
	drawRect(b, left, bottom, right, top)
	o, _ := b.Outline()
	return o
}

// Polygon returns an outline consisting of a single polygonal contour.
func Polygon(xy ...float64) outline.Outline {
	b := &outline.Builder{}
	b.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		b.LineTo(xy[i], xy[i+1])
	}
	b.ClosePath()
	o, _ := b.Outline()
	return o
}

func drawRect(path outline.Pen, left, bottom, right, top float64) {
	path.MoveTo(left, bottom)
	path.LineTo(right, bottom)
	path.LineTo(right, top)
	path.LineTo(left, top)
	path.LineTo(left, bottom)
	path.ClosePath()
}
