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
	"testing"
)

func TestNew(t *testing.T) {
	f := New()

	A := f.Glyph("A")
	if A == nil {
		t.Fatal("glyph A missing")
	}
	bbox := A.Outline.Bounds()
	if bbox.LLx != SquareLeft || bbox.URx != SquareRight || bbox.LLy != SquareBottom || bbox.URy != SquareTop {
		t.Errorf("wrong square extent: %v", bbox)
	}
	if a := A.Outline.SignedArea(); a <= 0 {
		t.Errorf("square is not counter-clockwise: area %g", a)
	}

	O := f.Glyph("O")
	if len(O.Outline.Contours) != 2 {
		t.Fatalf("O: got %d contours, want 2", len(O.Outline.Contours))
	}
	if a := O.Outline.Contours[1].SignedArea(); a >= 0 {
		t.Errorf("hole is not clockwise: area %g", a)
	}
	wantArea := float64((SquareRight-SquareLeft)*(SquareTop-SquareBottom) - (HoleRight-HoleLeft)*(HoleTop-HoleBottom))
	if a := O.Outline.SignedArea(); a != wantArea {
		t.Errorf("O: got area %g, want %g", a, wantArea)
	}

	if len(f.Glyph("Adot").Components) != 2 {
		t.Error("Adot should be a composite glyph")
	}

	// every call returns an independent font
	A.Width = 0
	if New().Glyph("A").Width != SquareWidth {
		t.Error("fonts share glyphs")
	}
}

func TestPolygon(t *testing.T) {
	o := Polygon(0, 0, 10, 0, 0, 10)
	if a := o.SignedArea(); a != 50 {
		t.Errorf("got area %g, want 50", a)
	}
}
