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

// Package squarefont provides small in-memory fonts for unit tests.
//
// # Glyphs
//
// The font returned by [New] contains the following glyphs:
//
//   - ".notdef" (blank glyph, width 500)
//   - "space" (blank glyph, width 250)
//   - "A", a square: [100, 500] × [200, 600], width 500
//   - "O", a square ring: outer [100, 500] × [200, 600],
//     inner [200, 400] × [300, 500], width 500
//   - "X", two overlapping rectangles forming a cross, width 500
//   - "Adot", a composite of "A" and a scaled, shifted "A", width 500
//
// [Cyclic] returns a font where the composite glyphs "loop1" and "loop2"
// refer to each other.
//
// Outer contours are counter-clockwise, holes are clockwise.
package squarefont
