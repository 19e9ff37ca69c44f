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

// Package paint builds the paint graph of layered colour glyphs.
//
// A paint graph maps glyph names to paint nodes.  A [*Glyph] node fills the
// outline of a glyph with a linear gradient, and a [*Layers] node draws the
// colour glyphs of other graph entries on top of each other, starting with
// the first entry.
package paint

import (
	"fmt"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/color"
	"seehuhn.de/go/bevel/features"
	"seehuhn.de/go/bevel/glyph"
)

// Node is a node in a paint graph.
// This is one of [*Glyph] or [*Layers].
type Node interface {
	isNode()
}

// Glyph fills the outline of a glyph.
type Glyph struct {
	Glyph string
	Paint *LinearGradient
}

func (*Glyph) isNode() {}

// Layers draws a sequence of colour glyphs, back to front.
// Every entry is the name of another entry in the same graph.
type Layers struct {
	Glyphs []string
}

func (*Layers) isNode() {}

// Extend describes how a gradient continues beyond its end points.
type Extend uint8

// These are the supported values for [Extend].
const (
	ExtendPad Extend = iota
	ExtendRepeat
	ExtendReflect
)

func (e Extend) String() string {
	switch e {
	case ExtendPad:
		return "pad"
	case ExtendRepeat:
		return "repeat"
	case ExtendReflect:
		return "reflect"
	default:
		return fmt.Sprintf("Extend(%d)", uint8(e))
	}
}

// ParseExtend converts the name of an extend mode into an [Extend] value.
func ParseExtend(s string) (Extend, error) {
	switch s {
	case "pad":
		return ExtendPad, nil
	case "repeat":
		return ExtendRepeat, nil
	case "reflect":
		return ExtendReflect, nil
	default:
		return 0, &GradientError{Reason: fmt.Sprintf("unknown extend mode %q", s)}
	}
}

// ColorStop places a palette colour at a position along a gradient.
type ColorStop struct {
	Offset       float64
	PaletteIndex int
}

// LinearGradient is a linear gradient between palette colours.
//
// The gradient runs from P0 (offset 0) to P1 (offset 1).  Lines of constant
// colour are parallel to the line from P0 to P2.
type LinearGradient struct {
	Stops  []ColorStop
	Extend Extend

	P0, P1, P2 vec.Vec2
}

// Clone returns a deep copy of the gradient.
func (lg *LinearGradient) Clone() *LinearGradient {
	res := *lg
	res.Stops = slices.Clone(lg.Stops)
	return &res
}

// Check verifies that the gradient is well-formed and only refers to colours
// in the palette.
func (lg *LinearGradient) Check(pal color.Palette) error {
	if len(lg.Stops) == 0 {
		return &GradientError{Reason: "no colour stops"}
	}
	if lg.Extend > ExtendReflect {
		return &GradientError{Reason: "invalid extend mode " + lg.Extend.String()}
	}
	prev := 0.0
	for i, stop := range lg.Stops {
		if !(stop.Offset >= 0 && stop.Offset <= 1) {
			return &GradientError{Reason: fmt.Sprintf("stop %d: offset %g outside [0, 1]", i, stop.Offset)}
		}
		if stop.Offset < prev {
			return &GradientError{Reason: fmt.Sprintf("stop %d: offsets are decreasing", i)}
		}
		prev = stop.Offset
		if err := pal.Check(stop.PaletteIndex); err != nil {
			return err
		}
	}
	p1 := lg.P1.Sub(lg.P0)
	p2 := lg.P2.Sub(lg.P0)
	if p1.X*p2.Y-p1.Y*p2.X == 0 {
		return &GradientError{Reason: "gradient points are collinear"}
	}
	return nil
}

// DefaultFront returns the gradient for the front faces.
// The gradient runs from [color.FrontBottom] to [color.FrontTop].
func DefaultFront() *LinearGradient {
	return &LinearGradient{
		Stops: []ColorStop{
			{Offset: 0, PaletteIndex: color.FrontBottom},
			{Offset: 1, PaletteIndex: color.FrontTop},
		},
		Extend: ExtendPad,
		P0:     vec.Vec2{X: 0, Y: -100},
		P1:     vec.Vec2{X: 0, Y: 500},
		P2:     vec.Vec2{X: 87, Y: -50},
	}
}

// DefaultSide returns the gradient for the side faces.
// The gradient runs from [color.ShadowBottom] via [color.Shadow] to
// [color.Top].
func DefaultSide() *LinearGradient {
	return &LinearGradient{
		Stops: []ColorStop{
			{Offset: 0, PaletteIndex: color.ShadowBottom},
			{Offset: 0.65, PaletteIndex: color.Shadow},
			{Offset: 1, PaletteIndex: color.Top},
		},
		Extend: ExtendPad,
		P0:     vec.Vec2{X: 0, Y: 0},
		P1:     vec.Vec2{X: 0, Y: 700},
		P2:     vec.Vec2{X: -87, Y: 50},
	}
}

// Graph maps glyph names to their paint.
type Graph map[string]Node

// Builder constructs paint graphs for extruded glyphs.
type Builder struct {
	front, side *LinearGradient
}

// NewBuilder returns a builder which paints front faces with the gradient
// front and side faces with the gradient side.  Both gradients are checked
// against the palette.
func NewBuilder(pal color.Palette, front, side *LinearGradient) (*Builder, error) {
	if err := front.Check(pal); err != nil {
		return nil, fmt.Errorf("front gradient: %w", err)
	}
	if err := side.Check(pal); err != nil {
		return nil, fmt.Errorf("side gradient: %w", err)
	}
	b := &Builder{
		front: front.Clone(),
		side:  side.Clone(),
	}
	return b, nil
}

// Build returns the paint graph for the given base glyphs.
//
// Every base glyph name gets a [*Layers] node which draws the side face
// first and the front face on top.  The front and side glyphs get
// gradient-filled [*Glyph] nodes.
func (b *Builder) Build(names []string) (Graph, error) {
	g := make(Graph, 3*len(names))
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("paint: empty glyph name")
		}
		if _, dup := g[name]; dup {
			return nil, fmt.Errorf("paint: duplicate glyph %q", name)
		}
		side := features.Side(name)
		front := features.Front(name)
		g[side] = &Glyph{Glyph: side, Paint: b.side}
		g[front] = &Glyph{Glyph: front, Paint: b.front}
		g[name] = &Layers{Glyphs: []string{side, front}}
	}
	return g, nil
}

// Check verifies that every glyph painted by the graph exists in the font,
// that every layer refers to an entry of the graph, and that the graph has
// no cycles.
func (g Graph) Check(f glyph.Font) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case active:
			return fmt.Errorf("paint: cycle through %q", name)
		case done:
			return nil
		}
		state[name] = active
		switch n := g[name].(type) {
		case *Glyph:
			if f.Glyph(n.Glyph) == nil {
				return fmt.Errorf("paint: %q paints missing glyph %q", name, n.Glyph)
			}
		case *Layers:
			for _, layer := range n.Glyphs {
				if _, ok := g[layer]; !ok {
					return fmt.Errorf("paint: %q refers to missing layer %q", name, layer)
				}
				if err := visit(layer); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("paint: %q has unsupported node %T", name, n)
		}
		state[name] = done
		return nil
	}

	for _, name := range sortedKeys(g) {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// GradientError indicates a malformed gradient.
type GradientError struct {
	Reason string
}

func (err *GradientError) Error() string {
	return "paint: invalid gradient: " + err.Reason
}
