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

package color

import "fmt"

// Palette is an ordered list of colours.
type Palette []Color

// Check verifies that idx is a valid index into the palette.
func (p Palette) Check(idx int) error {
	if idx < 0 || idx >= len(p) {
		return &PaletteIndexError{Index: idx, Len: len(p)}
	}
	return nil
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	return append(Palette(nil), p...)
}

// Channels returns the palette in the layout used by font source libs.
func (p Palette) Channels() [][]float64 {
	res := make([][]float64, len(p))
	for i, c := range p {
		res[i] = c.Channels()
	}
	return res
}

// Indices into the [Default] palette.
const (
	ShadowBottom = iota
	Shadow
	FrontBottom
	FrontTop
	Top
	Highlight
)

// Default returns the standard bevel palette.
// The entries are addressed by the constants [ShadowBottom], [Shadow],
// [FrontBottom], [FrontTop], [Top] and [Highlight].
// Each call returns a new slice.
func Default() Palette {
	return Palette{
		ShadowBottom: MustHex("f5462d"),
		Shadow:       MustHex("ff8723"),
		FrontBottom:  MustHex("ffd214"),
		FrontTop:     MustHex("ffeb6e"),
		Top:          MustHex("ffed9f"),
		Highlight:    MustHex("ffffff"),
	}
}

// PaletteIndexError indicates a reference to a colour which is not in the
// palette.
type PaletteIndexError struct {
	Index int
	Len   int
}

func (err *PaletteIndexError) Error() string {
	return fmt.Sprintf("color: palette index %d out of range [0, %d)",
		err.Index, err.Len)
}
