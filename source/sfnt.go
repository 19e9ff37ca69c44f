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
	"bytes"
	"fmt"
	"io"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"
	sfntglyph "seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/outline"
)

// ImportSFNT converts a TrueType or OpenType font into a font source.
//
// Composite glyphs are imported in decomposed form.  Quadratic curves are
// converted to cubic curves.
func ImportSFNT(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	info.EnsureGlyphNames()

	f := New(int(info.UnitsPerEm))
	numGlyphs := info.NumGlyphs()
	for i := 0; i < numGlyphs; i++ {
		gid := sfntglyph.ID(i)
		name := info.GlyphName(gid)
		if name == "" || f.Glyph(name) != nil {
			name = fmt.Sprintf("glyph%05d", i)
		}

		b := &outline.Builder{}
		open := false
		var cur, start [2]float64
		for cmd, pts := range info.Outlines.Path(gid) {
			switch cmd {
			case path.CmdMoveTo:
				if open {
					b.ClosePath()
				}
				b.MoveTo(pts[0].X, pts[0].Y)
				cur = [2]float64{pts[0].X, pts[0].Y}
				start = cur
				open = true
			case path.CmdLineTo:
				b.LineTo(pts[0].X, pts[0].Y)
				cur = [2]float64{pts[0].X, pts[0].Y}
			case path.CmdQuadTo:
				// degree elevation
				x1 := cur[0] + 2*(pts[0].X-cur[0])/3
				y1 := cur[1] + 2*(pts[0].Y-cur[1])/3
				x2 := pts[1].X + 2*(pts[0].X-pts[1].X)/3
				y2 := pts[1].Y + 2*(pts[0].Y-pts[1].Y)/3
				b.CurveTo(x1, y1, x2, y2, pts[1].X, pts[1].Y)
				cur = [2]float64{pts[1].X, pts[1].Y}
			case path.CmdCubeTo:
				b.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
				cur = [2]float64{pts[2].X, pts[2].Y}
			case path.CmdClose:
				b.ClosePath()
				cur = start
				open = false
			}
		}
		if open {
			b.ClosePath()
		}
		o, err := b.Outline()
		if err != nil {
			return nil, &InvalidFontError{Glyph: name, Reason: err.Error()}
		}

		f.SetGlyph(&glyph.Glyph{
			Name:    name,
			Width:   float64(info.GlyphWidth(gid)),
			Outline: o,
		})
	}
	return f, nil
}
