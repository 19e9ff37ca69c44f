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

// Package normalize turns glyph outlines into a canonical form suitable for
// further geometric processing.
//
// Normalisation has two steps.  [Decompose] replaces component references by
// the outlines of the referenced glyphs, and [RemoveOverlaps] computes the
// union of all contours, so that the result has no self-intersections and no
// overlapping contours.
package normalize

import (
	"fmt"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
)

// Glyph decomposes the glyph and removes overlaps.  The glyph is modified in
// place.  Curves are approximated by polygons with the given tolerance, in
// font design units.
func Glyph(g *glyph.Glyph, f glyph.Font, tol float64) error {
	if err := Decompose(g, f); err != nil {
		return err
	}
	o, err := RemoveOverlaps(g.Outline, tol)
	if err != nil {
		if gErr, ok := err.(*GeometryError); ok {
			gErr.Glyph = g.Name
		}
		return err
	}
	g.Outline = o
	return nil
}

// Font normalises all glyphs of the font, in font order.
func Font(f glyph.Font, tol float64) error {
	for _, name := range f.GlyphNames() {
		if err := Glyph(f.Glyph(name), f, tol); err != nil {
			return err
		}
	}
	return nil
}

// Decompose replaces all component references of g by the transformed
// outlines of the referenced glyphs.  Nested components are resolved
// recursively.  After Decompose returns without error, g has no components.
func Decompose(g *glyph.Glyph, f glyph.Font) error {
	if len(g.Components) == 0 {
		return nil
	}

	res := g.Outline.Clone()
	err := appendComponents(&res, g, f, matrix.Identity, []string{g.Name})
	if err != nil {
		return err
	}
	g.Outline = res
	g.Components = nil
	return nil
}

func appendComponents(res *outline.Outline, g *glyph.Glyph, f glyph.Font, M matrix.Matrix, stack []string) error {
	for _, comp := range g.Components {
		path := append(stack[:len(stack):len(stack)], comp.Base)
		if slices.Contains(stack, comp.Base) {
			return &ComponentCycleError{Glyph: stack[0], Path: path}
		}
		base := f.Glyph(comp.Base)
		if base == nil {
			return &MissingComponentError{Glyph: stack[0], Base: comp.Base}
		}

		// the component placement is applied first, then the placement of
		// the enclosing glyph
		M2 := comp.Matrix.Mul(M)
		res.Contours = append(res.Contours, base.Outline.Transform(M2).Contours...)
		err := appendComponents(res, base, f, M2, path)
		if err != nil {
			return err
		}
	}
	return nil
}

// ComponentCycleError is returned by [Decompose] if a glyph refers to itself,
// directly or via other composite glyphs.
type ComponentCycleError struct {
	Glyph string

	// Path lists the glyph names along the cycle, starting with Glyph.
	Path []string
}

func (err *ComponentCycleError) Error() string {
	return fmt.Sprintf("glyph %q: circular component reference %q",
		err.Glyph, err.Path)
}

// MissingComponentError is returned by [Decompose] if a component refers to a
// glyph which is not in the font.
type MissingComponentError struct {
	Glyph string
	Base  string
}

func (err *MissingComponentError) Error() string {
	return fmt.Sprintf("glyph %q: component refers to missing glyph %q",
		err.Glyph, err.Base)
}
