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

// Package bevel turns the glyphs of a font into bevelled colour glyphs.
//
// The glyphs are sheared and extruded, so that every glyph looks like a
// slanted three-dimensional block.  Each glyph is split into a front face and
// a side face, which are painted with different gradients.  Several
// extrusion depths are produced, one master font per depth, which together
// form a variable font with a single "Depth" axis.
//
// The processing is split into two steps:
//
//	names, err := bevel.Prepare(font, cfg)  // normalise and shear
//	if err != nil {
//	    log.Fatal(err)
//	}
//	masters, axis, err := bevel.Assemble(font, names, cfg)
//
// [Run] performs both steps for a font file and writes the masters, together
// with a designspace document, next to the input file.
package bevel
