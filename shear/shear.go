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

// Package shear slants glyphs by an affine transformation.
//
// The transformation keeps the vertical line x = pivotX fixed.  Points to the
// right of the pivot are moved up, points to the left are moved down, and the
// horizontal distance to the pivot is scaled by cos(angle):
//
//	x' = pivotX + cos(angle)·(x - pivotX)
//	y' = y + sin(angle)·(x - pivotX)
//
// This maps a horizontal line of length l to a line of the same length l,
// tilted by the given angle.
package shear

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
)

// DefaultPivotX is the x coordinate which is kept fixed by the shear, in
// font design units.
const DefaultPivotX = 100

// Transform returns the shear matrix for the given angle (in radians) and
// pivot.
func Transform(angle, pivotX float64) matrix.Matrix {
	cos, tan := math.Cos(angle), math.Tan(angle)
	skew := matrix.Matrix{1, tan, 0, 1, 0, 0}
	return matrix.Translate(-pivotX, 0).
		Mul(matrix.Scale(cos, 1)).
		Mul(skew).
		Mul(matrix.Translate(pivotX, 0))
}

// Inverse returns the inverse of [Transform].
func Inverse(angle, pivotX float64) matrix.Matrix {
	cos, tan := math.Cos(angle), math.Tan(angle)
	skew := matrix.Matrix{1, -tan, 0, 1, 0, 0}
	return matrix.Translate(-pivotX, 0).
		Mul(skew).
		Mul(matrix.Scale(1/cos, 1)).
		Mul(matrix.Translate(pivotX, 0))
}

// Glyph shears the outline of g and adjusts the advance width.
//
// The image of the origin becomes the new origin, and the image of the point
// (width, 0) becomes the new advance position.  Since the shear scales
// horizontal distances by cos(angle), the new width is cos(angle) times the
// old width.
//
// The glyph must not have components.
func Glyph(g *glyph.Glyph, angle, pivotX float64) error {
	if err := checkAngle(angle); err != nil {
		return err
	}
	if len(g.Components) > 0 {
		return fmt.Errorf("glyph %q: %w", g.Name, ErrComposite)
	}

	T := Transform(angle, pivotX)
	lsb := outline.Apply(T, vec.Vec2{}).X
	rsb := outline.Apply(T, vec.Vec2{X: g.Width}).X

	g.Outline = g.Outline.Transform(T.Mul(matrix.Translate(-lsb, 0)))
	g.Width = rsb - lsb
	return nil
}

// Unglyph undoes the effect of [Glyph] with the same parameters.
func Unglyph(g *glyph.Glyph, angle, pivotX float64) error {
	if err := checkAngle(angle); err != nil {
		return err
	}
	if len(g.Components) > 0 {
		return fmt.Errorf("glyph %q: %w", g.Name, ErrComposite)
	}

	T := Transform(angle, pivotX)
	lsb := outline.Apply(T, vec.Vec2{}).X

	g.Outline = g.Outline.Transform(matrix.Translate(lsb, 0).Mul(Inverse(angle, pivotX)))
	g.Width = g.Width / math.Cos(angle)
	return nil
}

func checkAngle(angle float64) error {
	if !(angle > -math.Pi/2 && angle < math.Pi/2) {
		return &AngleError{Angle: angle}
	}
	return nil
}

// AngleError indicates a shear angle outside the open interval (-π/2, π/2).
// For such angles the sheared advance width would be negative or zero.
type AngleError struct {
	Angle float64
}

func (err *AngleError) Error() string {
	return fmt.Sprintf("shear angle %g° is outside (-90°, 90°)", err.Angle*180/math.Pi)
}

// ErrComposite is returned when a glyph with component references is passed
// to [Glyph] or [Unglyph].
var ErrComposite = errors.New("shear: glyph has components")
