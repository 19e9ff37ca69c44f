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

// Package source implements an in-memory font container together with a
// human-editable YAML file format for it.
//
// Binary TrueType and OpenType fonts can be imported using [ImportSFNT].
// The resulting fonts implement the [glyph.Font] interface.
package source

import (
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/bevel/glyph"
)

// Font is an in-memory font.
type Font struct {
	// UnitsPerEm gives the size of the design grid.
	UnitsPerEm int

	glyphs   []*glyph.Glyph
	index    map[string]int
	lib      map[string]any
	features string
}

var _ glyph.Font = (*Font)(nil)

// New allocates a new, empty font.
func New(unitsPerEm int) *Font {
	return &Font{
		UnitsPerEm: unitsPerEm,
		index:      make(map[string]int),
		lib:        make(map[string]any),
	}
}

// GlyphNames returns the names of all glyphs, in font order.
// This implements the [glyph.Font] interface.
func (f *Font) GlyphNames() []string {
	res := make([]string, len(f.glyphs))
	for i, g := range f.glyphs {
		res[i] = g.Name
	}
	return res
}

// Glyph returns the glyph with the given name, or nil.
// This implements the [glyph.Font] interface.
func (f *Font) Glyph(name string) *glyph.Glyph {
	idx, ok := f.index[name]
	if !ok {
		return nil
	}
	return f.glyphs[idx]
}

// SetGlyph adds or replaces a glyph.
// This implements the [glyph.Font] interface.
func (f *Font) SetGlyph(g *glyph.Glyph) {
	if idx, ok := f.index[g.Name]; ok {
		f.glyphs[idx] = g
		return
	}
	f.index[g.Name] = len(f.glyphs)
	f.glyphs = append(f.glyphs, g)
}

// Lib returns the metadata store of the font.
// This implements the [glyph.Font] interface.
func (f *Font) Lib() map[string]any {
	return f.lib
}

// Features returns the feature file text.
// This implements the [glyph.Font] interface.
func (f *Font) Features() string {
	return f.features
}

// SetFeatures replaces the feature file text.
// This implements the [glyph.Font] interface.
func (f *Font) SetFeatures(text string) {
	f.features = text
}

// Clone returns a deep copy of the font.
// This implements the [glyph.Font] interface.
func (f *Font) Clone() glyph.Font {
	return f.Copy()
}

// Copy is like [Font.Clone], but returns the concrete type.
func (f *Font) Copy() *Font {
	res := &Font{
		UnitsPerEm: f.UnitsPerEm,
		glyphs:     make([]*glyph.Glyph, len(f.glyphs)),
		index:      maps.Clone(f.index),
		lib:        cloneValue(f.lib).(map[string]any),
		features:   f.features,
	}
	for i, g := range f.glyphs {
		res.glyphs[i] = g.Clone()
	}
	return res
}

// cloneValue returns a deep copy of a lib value.
// Maps and slices are copied recursively, other values are shared.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return map[string]any{}
		}
		res := make(map[string]any, len(v))
		for key, x := range v {
			res[key] = cloneValue(x)
		}
		return res
	case []any:
		res := make([]any, len(v))
		for i, x := range v {
			res[i] = cloneValue(x)
		}
		return res
	case []float64:
		return slices.Clone(v)
	case [][]float64:
		res := make([][]float64, len(v))
		for i, x := range v {
			res[i] = slices.Clone(x)
		}
		return res
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}
