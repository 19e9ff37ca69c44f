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

package source

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/internal/float"
	"seehuhn.de/go/bevel/outline"
)

// fileFont is the YAML representation of a font.
//
// Contours are stored as a start point followed by a list of segments.
// A segment with two numbers is a straight line to the given point, a
// segment with six numbers is a cubic Bézier curve given by two control
// points and the end point.
//
// Fonts written with [Options.Round] set store all coordinates as integer
// font units.
type fileFont[T coord] struct {
	UnitsPerEm int            `yaml:"unitsPerEm"`
	Glyphs     []fileGlyph[T] `yaml:"glyphs"`
	Lib        map[string]any `yaml:"lib,omitempty"`
	Features   string         `yaml:"features,omitempty"`
}

// coord is the type of coordinates in the YAML representation.
type coord interface {
	float64 | funit.Int16
}

type fileGlyph[T coord] struct {
	Name       string           `yaml:"name"`
	Width      T                `yaml:"width"`
	Contours   []fileContour[T] `yaml:"contours,omitempty"`
	Components []fileComponent  `yaml:"components,omitempty"`
}

type fileContour[T coord] struct {
	Start    []T   `yaml:"start,flow"`
	Segments [][]T `yaml:"segments,flow"`
}

type fileComponent struct {
	Base   string    `yaml:"base"`
	Matrix []float64 `yaml:"matrix,flow,omitempty"`
}

// Options control how fonts are written.
type Options struct {
	// Round causes all coordinates and advance widths to be rounded to
	// integer font units.
	Round bool

	// Digits, if positive, gives the number of decimal digits kept for
	// coordinates and advance widths.  This is ignored if Round is set.
	Digits int
}

// Read decodes a font from its YAML representation.
func Read(r io.Reader) (*Font, error) {
	var ff fileFont[float64]
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	upem := ff.UnitsPerEm
	if upem == 0 {
		upem = 1000
	}
	if upem < 16 || upem > 16384 {
		return nil, &InvalidFontError{Reason: fmt.Sprintf("invalid unitsPerEm %d", upem)}
	}

	f := New(upem)
	for _, fg := range ff.Glyphs {
		g, err := fg.decode()
		if err != nil {
			return nil, err
		}
		if f.Glyph(g.Name) != nil {
			return nil, &InvalidFontError{Glyph: g.Name, Reason: "duplicate glyph name"}
		}
		f.SetGlyph(g)
	}
	if ff.Lib != nil {
		f.lib = ff.Lib
	}
	f.features = ff.Features
	return f, nil
}

func (fg *fileGlyph[T]) decode() (*glyph.Glyph, error) {
	if fg.Name == "" {
		return nil, &InvalidFontError{Reason: "glyph without name"}
	}
	if !norm.NFC.IsNormalString(fg.Name) {
		return nil, &InvalidFontError{Glyph: fg.Name, Reason: "glyph name not in NFC form"}
	}
	width := float64(fg.Width)
	if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, &InvalidFontError{Glyph: fg.Name, Reason: fmt.Sprintf("invalid width %g", fg.Width)}
	}

	g := &glyph.Glyph{Name: fg.Name, Width: width}
	for _, fc := range fg.Contours {
		if len(fc.Start) != 2 {
			return nil, &InvalidFontError{Glyph: fg.Name, Reason: "contour start must have two coordinates"}
		}
		c := outline.Contour{Start: vec.Vec2{X: float64(fc.Start[0]), Y: float64(fc.Start[1])}}
		for _, s := range fc.Segments {
			switch len(s) {
			case 2:
				c.Segments = append(c.Segments, outline.Segment{
					Op:  outline.OpLine,
					End: vec.Vec2{X: float64(s[0]), Y: float64(s[1])},
				})
			case 6:
				c.Segments = append(c.Segments, outline.Segment{
					Op:  outline.OpCubic,
					C1:  vec.Vec2{X: float64(s[0]), Y: float64(s[1])},
					C2:  vec.Vec2{X: float64(s[2]), Y: float64(s[3])},
					End: vec.Vec2{X: float64(s[4]), Y: float64(s[5])},
				})
			default:
				return nil, &InvalidFontError{
					Glyph:  fg.Name,
					Reason: fmt.Sprintf("segment with %d coordinates", len(s)),
				}
			}
		}
		g.Outline.Contours = append(g.Outline.Contours, c)
	}
	for _, fc := range fg.Components {
		comp := glyph.Component{Base: fc.Base, Matrix: matrix.Identity}
		switch len(fc.Matrix) {
		case 0:
			// identity
		case 6:
			copy(comp.Matrix[:], fc.Matrix)
		default:
			return nil, &InvalidFontError{
				Glyph:  fg.Name,
				Reason: fmt.Sprintf("component matrix with %d entries", len(fc.Matrix)),
			}
		}
		if fc.Base == "" {
			return nil, &InvalidFontError{Glyph: fg.Name, Reason: "component without base glyph"}
		}
		g.Components = append(g.Components, comp)
	}
	return g, nil
}

// Write encodes the font in YAML format.
// If opt is nil, default options are used.
func Write(w io.Writer, f *Font, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Round {
		return writeFont(w, f, toFontUnits)
	}
	conv := func(v float64) (float64, error) { return v, nil }
	if opt.Digits > 0 {
		conv = func(v float64) (float64, error) { return float.Round(v, opt.Digits), nil }
	}
	return writeFont(w, f, conv)
}

func writeFont[T coord](w io.Writer, f *Font, conv func(float64) (T, error)) error {
	ff := fileFont[T]{
		UnitsPerEm: f.UnitsPerEm,
		Features:   f.features,
	}
	if len(f.lib) > 0 {
		ff.Lib = f.lib
	}
	for _, g := range f.glyphs {
		fg, err := encodeGlyph(g, conv)
		if err != nil {
			return err
		}
		ff.Glyphs = append(ff.Glyphs, fg)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&ff); err != nil {
		return err
	}
	return enc.Close()
}

func encodeGlyph[T coord](g *glyph.Glyph, conv func(float64) (T, error)) (fileGlyph[T], error) {
	var firstErr error
	c := func(v float64) T {
		x, err := conv(v)
		if err != nil && firstErr == nil {
			firstErr = &InvalidFontError{Glyph: g.Name, Reason: err.Error()}
		}
		return x
	}

	fg := fileGlyph[T]{Name: g.Name, Width: c(g.Width)}
	for _, cc := range g.Outline.Contours {
		fc := fileContour[T]{
			Start:    []T{c(cc.Start.X), c(cc.Start.Y)},
			Segments: [][]T{},
		}
		for _, s := range cc.Segments {
			switch s.Op {
			case outline.OpCubic:
				fc.Segments = append(fc.Segments, []T{
					c(s.C1.X), c(s.C1.Y), c(s.C2.X), c(s.C2.Y), c(s.End.X), c(s.End.Y),
				})
			default:
				fc.Segments = append(fc.Segments, []T{c(s.End.X), c(s.End.Y)})
			}
		}
		fg.Contours = append(fg.Contours, fc)
	}
	for _, comp := range g.Components {
		fc := fileComponent{Base: comp.Base}
		if comp.Matrix != matrix.Identity {
			fc.Matrix = comp.Matrix[:]
		}
		fg.Components = append(fg.Components, fc)
	}
	return fg, firstErr
}

// toFontUnits rounds v to the nearest integer in the 16-bit range used
// for coordinates in TrueType and OpenType fonts.
func toFontUnits(v float64) (funit.Int16, error) {
	r := math.Round(v)
	if math.IsNaN(r) || r < math.MinInt16 || r > math.MaxInt16 {
		return 0, fmt.Errorf("value %g outside the range of font units", v)
	}
	return funit.Int16(r), nil
}

// InvalidFontError indicates a problem with the font data.
type InvalidFontError struct {
	Glyph  string
	Reason string
}

func (err *InvalidFontError) Error() string {
	if err.Glyph == "" {
		return "source: " + err.Reason
	}
	return fmt.Sprintf("source: glyph %q: %s", err.Glyph, err.Reason)
}
