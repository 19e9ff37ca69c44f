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

// Package color implements the colours and palettes used for colour glyphs.
//
// Gradients refer to colours by their index in a [Palette], so the order of
// the palette entries is significant.
package color

import (
	"fmt"
	stdcolor "image/color"
	"strconv"
	"strings"
)

// Color is an sRGB colour with alpha.
// All channel values are in the range from 0 to 1.
type Color struct {
	R, G, B, A float64
}

// FromHex parses a colour from a string of 6 or 8 hexadecimal digits,
// optionally preceded by "#".  Six-digit colours are fully opaque.
func FromHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, &HexError{Value: s}
	}
	var ch [4]float64
	ch[3] = 1
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return Color{}, &HexError{Value: s}
		}
		ch[i/2] = float64(v) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// MustHex is like [FromHex] but panics if the string cannot be parsed.
// This is intended for colour constants.
func MustHex(s string) Color {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as eight lower-case hexadecimal digits.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x%02x",
		toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A))
}

// RGBA implements the [image/color.Color] interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = toUint32(c.A)
	r = toUint32(c.R * c.A)
	g = toUint32(c.G * c.A)
	b = toUint32(c.B * c.A)
	return
}

var _ stdcolor.Color = Color{}

// Channels returns the colour as a slice of four channel values.
// This is the layout used for palettes in font source libs.
func (c Color) Channels() []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

// FromChannels is the inverse of [Color.Channels].
func FromChannels(ch []float64) (Color, error) {
	if len(ch) != 3 && len(ch) != 4 {
		return Color{}, fmt.Errorf("color: expected 3 or 4 channels, got %d", len(ch))
	}
	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 1}
	if len(ch) == 4 {
		c.A = ch[3]
	}
	for _, v := range ch {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("color: channel value %g out of range", v)
		}
	}
	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func toUint32(v float64) uint32 {
	return uint32(clamp01(v)*0xffff + 0.5)
}

// HexError is returned by [FromHex] for malformed colour strings.
type HexError struct {
	Value string
}

func (err *HexError) Error() string {
	return fmt.Sprintf("color: invalid hex colour %q", err.Value)
}
