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

package paint

import (
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/color"
)

// Keys used to store colour information in the font lib.  These are the keys
// read by the ufo2ft font compiler.
const (
	ColorLayersKey   = "com.github.googlei18n.ufo2ft.colorLayers"
	ColorPalettesKey = "com.github.googlei18n.ufo2ft.colorPalettes"
)

// COLRv1 paint format numbers.
const (
	formatColrLayers     = 1
	formatLinearGradient = 4
	formatGlyph          = 10
	formatColrGlyph      = 11
)

// SetLib stores the paint graph and the palette in a font lib.
func SetLib(lib map[string]any, g Graph, pal color.Palette) {
	lib[ColorPalettesKey] = EncodePalettes(pal)
	lib[ColorLayersKey] = g.Encode()
}

// EncodePalettes converts palettes into the lib representation: a list of
// palettes, each a list of colours given as [r, g, b, a].
func EncodePalettes(pals ...color.Palette) []any {
	res := make([]any, len(pals))
	for i, pal := range pals {
		entries := make([]any, len(pal))
		for j, ch := range pal.Channels() {
			entries[j] = []any{ch[0], ch[1], ch[2], ch[3]}
		}
		res[i] = entries
	}
	return res
}

// Encode converts the graph into the lib representation.
func (g Graph) Encode() map[string]any {
	res := make(map[string]any, len(g))
	for name, node := range g {
		res[name] = encodeNode(node)
	}
	return res
}

func encodeNode(node Node) any {
	switch n := node.(type) {
	case *Glyph:
		return map[string]any{
			"Format": formatGlyph,
			"Glyph":  n.Glyph,
			"Paint":  encodeGradient(n.Paint),
		}
	case *Layers:
		layers := make([]any, len(n.Glyphs))
		for i, name := range n.Glyphs {
			layers[i] = map[string]any{
				"Format": formatColrGlyph,
				"Glyph":  name,
			}
		}
		return []any{formatColrLayers, layers}
	default:
		panic(fmt.Sprintf("paint: unexpected node type %T", node))
	}
}

func encodeGradient(lg *LinearGradient) map[string]any {
	stops := make([]any, len(lg.Stops))
	for i, s := range lg.Stops {
		stops[i] = []any{s.Offset, s.PaletteIndex}
	}
	return map[string]any{
		"Format": formatLinearGradient,
		"ColorLine": map[string]any{
			"ColorStop": stops,
			"Extend":    lg.Extend.String(),
		},
		"x0": lg.P0.X,
		"y0": lg.P0.Y,
		"x1": lg.P1.X,
		"y1": lg.P1.Y,
		"x2": lg.P2.X,
		"y2": lg.P2.Y,
	}
}

// DecodeLib reads a paint graph and the palettes from a font lib.
// If the lib contains no colour information, the result is an empty graph
// and no palettes.
func DecodeLib(lib map[string]any) (Graph, []color.Palette, error) {
	var pals []color.Palette
	if raw, ok := lib[ColorPalettesKey]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, nil, libError(ColorPalettesKey, "not a list")
		}
		for i, rawPal := range list {
			pal, err := decodePalette(rawPal)
			if err != nil {
				return nil, nil, libError(ColorPalettesKey, fmt.Sprintf("palette %d: %v", i, err))
			}
			pals = append(pals, pal)
		}
	}

	g := Graph{}
	if raw, ok := lib[ColorLayersKey]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, nil, libError(ColorLayersKey, "not a map")
		}
		for _, name := range slices.Sorted(maps.Keys(m)) {
			node, err := decodeNode(m[name])
			if err != nil {
				return nil, nil, libError(ColorLayersKey, fmt.Sprintf("glyph %q: %v", name, err))
			}
			g[name] = node
		}
	}
	return g, pals, nil
}

func decodePalette(raw any) (color.Palette, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("not a list")
	}
	pal := make(color.Palette, len(list))
	for i, entry := range list {
		chList, ok := entry.([]any)
		if !ok {
			return nil, fmt.Errorf("colour %d: not a list", i)
		}
		ch := make([]float64, len(chList))
		for j, v := range chList {
			x, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("colour %d: invalid channel value %v", i, v)
			}
			ch[j] = x
		}
		c, err := color.FromChannels(ch)
		if err != nil {
			return nil, fmt.Errorf("colour %d: %w", i, err)
		}
		pal[i] = c
	}
	return pal, nil
}

func decodeNode(raw any) (Node, error) {
	switch n := raw.(type) {
	case []any:
		if len(n) != 2 {
			return nil, fmt.Errorf("malformed layer list")
		}
		if f, ok := toInt(n[0]); !ok || f != formatColrLayers {
			return nil, fmt.Errorf("unsupported format %v", n[0])
		}
		list, ok := n[1].([]any)
		if !ok {
			return nil, fmt.Errorf("malformed layer list")
		}
		layers := &Layers{}
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("malformed layer")
			}
			if f, ok := toInt(m["Format"]); !ok || f != formatColrGlyph {
				return nil, fmt.Errorf("unsupported layer format %v", m["Format"])
			}
			name, ok := m["Glyph"].(string)
			if !ok {
				return nil, fmt.Errorf("layer without glyph name")
			}
			layers.Glyphs = append(layers.Glyphs, name)
		}
		return layers, nil

	case map[string]any:
		if f, ok := toInt(n["Format"]); !ok || f != formatGlyph {
			return nil, fmt.Errorf("unsupported format %v", n["Format"])
		}
		name, ok := n["Glyph"].(string)
		if !ok {
			return nil, fmt.Errorf("missing glyph name")
		}
		paint, ok := n["Paint"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("missing paint")
		}
		lg, err := decodeGradient(paint)
		if err != nil {
			return nil, err
		}
		return &Glyph{Glyph: name, Paint: lg}, nil

	default:
		return nil, fmt.Errorf("unexpected value of type %T", raw)
	}
}

func decodeGradient(m map[string]any) (*LinearGradient, error) {
	if f, ok := toInt(m["Format"]); !ok || f != formatLinearGradient {
		return nil, fmt.Errorf("unsupported paint format %v", m["Format"])
	}
	line, ok := m["ColorLine"].(map[string]any)
	if !ok {
		return nil, &GradientError{Reason: "missing colour line"}
	}

	lg := &LinearGradient{}
	if ext, ok := line["Extend"].(string); ok {
		e, err := ParseExtend(ext)
		if err != nil {
			return nil, err
		}
		lg.Extend = e
	}

	stops, ok := line["ColorStop"].([]any)
	if !ok {
		return nil, &GradientError{Reason: "missing colour stops"}
	}
	for _, raw := range stops {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return nil, &GradientError{Reason: "malformed colour stop"}
		}
		offset, ok1 := toFloat(pair[0])
		idx, ok2 := toInt(pair[1])
		if !ok1 || !ok2 {
			return nil, &GradientError{Reason: "malformed colour stop"}
		}
		lg.Stops = append(lg.Stops, ColorStop{Offset: offset, PaletteIndex: idx})
	}

	var coords [6]float64
	for i, key := range []string{"x0", "y0", "x1", "y1", "x2", "y2"} {
		v, ok := toFloat(m[key])
		if !ok {
			return nil, &GradientError{Reason: "missing coordinate " + key}
		}
		coords[i] = v
	}
	lg.P0 = vec.Vec2{X: coords[0], Y: coords[1]}
	lg.P1 = vec.Vec2{X: coords[2], Y: coords[3]}
	lg.P2 = vec.Vec2{X: coords[4], Y: coords[5]}
	return lg, nil
}

// toFloat converts the numeric types produced by the YAML and TOML decoders
// to float64.
func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func sortedKeys(g Graph) []string {
	return slices.Sorted(maps.Keys(g))
}

// LibError indicates malformed colour information in a font lib.
type LibError struct {
	Key    string
	Reason string
}

func libError(key, reason string) error {
	return &LibError{Key: key, Reason: reason}
}

func (err *LibError) Error() string {
	return fmt.Sprintf("paint: lib key %q: %s", err.Key, err.Reason)
}
