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

// Package glyph defines the glyph records and the font interface used by the
// bevel pipeline.
//
// The pipeline only depends on the [Font] interface.  Concrete font
// containers, for example the YAML font sources in package
// seehuhn.de/go/bevel/source, implement this interface.
package glyph

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/bevel/outline"
)

// Glyph is a named glyph with an outline and an advance width.
type Glyph struct {
	Name string

	// Width is the horizontal advance width in font design units.
	Width float64

	Outline outline.Outline

	// Components lists references to other glyphs, which are drawn in
	// addition to the outline.  Normalised glyphs have no components.
	Components []Component
}

// Component places a copy of another glyph's outline.
type Component struct {
	Base   string
	Matrix matrix.Matrix
}

// Clone returns a deep copy of the glyph.
func (g *Glyph) Clone() *Glyph {
	if g == nil {
		return nil
	}
	res := &Glyph{
		Name:    g.Name,
		Width:   g.Width,
		Outline: g.Outline.Clone(),
	}
	if g.Components != nil {
		res.Components = append([]Component(nil), g.Components...)
	}
	return res
}

// Rename returns a deep copy of the glyph with a different name.
func (g *Glyph) Rename(name string) *Glyph {
	res := g.Clone()
	res.Name = name
	return res
}

// Font gives access to the glyphs and the auxiliary data of a font.
type Font interface {
	// GlyphNames returns the names of all glyphs, in font order.
	GlyphNames() []string

	// Glyph returns the glyph with the given name, or nil if there is no
	// such glyph.  Changes to the returned glyph modify the font.
	Glyph(name string) *Glyph

	// SetGlyph adds a glyph to the font.  If a glyph with the same name
	// exists already, it is replaced in place.  Otherwise the new glyph is
	// appended.
	SetGlyph(g *Glyph)

	// Lib returns the font-wide key-value metadata store.
	// The map is owned by the font and can be modified by the caller.
	Lib() map[string]any

	// Features returns the feature-rule text buffer.
	Features() string

	// SetFeatures replaces the feature-rule text buffer.
	SetFeatures(text string)

	// Clone returns a deep copy of the font.
	Clone() Font
}
