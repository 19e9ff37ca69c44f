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

package bevel

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/bevel/designspace"
	"seehuhn.de/go/bevel/extrude"
	"seehuhn.de/go/bevel/features"
	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/normalize"
	"seehuhn.de/go/bevel/outline"
	"seehuhn.de/go/bevel/paint"
	"seehuhn.de/go/bevel/shear"
)

// Master is one master font of the depth axis.
type Master struct {
	Label string
	Depth float64
	Font  glyph.Font

	// IsDefault is set for the default master, which carries the colour
	// information and the feature rules.
	IsDefault bool
}

// Prepare normalises all glyphs of the font and shears the base glyphs.
// The font is modified in place.
//
// Base glyphs are all glyphs whose name does not start with "." or "_".
// Their names are returned in sorted order.  If cfg is nil, the default
// configuration is used.
func Prepare(f glyph.Font, cfg *Config) ([]string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	for _, name := range f.GlyphNames() {
		log.Debug("normalize", slog.String("glyph", name))
		err := normalize.Glyph(f.Glyph(name), f, cfg.FlattenTolerance)
		if err != nil {
			return nil, &StageError{Stage: StageNormalize, Glyph: name, Err: err}
		}
	}

	names := BaseGlyphs(f)
	for _, name := range names {
		err := shear.Glyph(f.Glyph(name), cfg.ShearAngle, cfg.PivotX)
		if err != nil {
			return nil, &StageError{Stage: StageShear, Glyph: name, Err: err}
		}
	}
	log.Debug("prepared glyphs", slog.Int("count", len(names)))
	return names, nil
}

// BaseGlyphs returns the sorted names of all glyphs which do not start with
// "." or "_".
func BaseGlyphs(f glyph.Font) []string {
	var names []string
	for _, name := range f.GlyphNames() {
		if name == "" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assemble builds one master font for every configured depth.
//
// Every master starts from a deep copy of f, which must have been prepared
// using [Prepare].  The given glyphs are extruded and split into front and
// side glyphs.  The default master also receives the colour palette, the
// paint graph and the feature rules.
//
// The masters are returned in configured order, together with the variation
// axis spanned by the depths.
func Assemble(f glyph.Font, names []string, cfg *Config) ([]*Master, *designspace.Axis, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	b, err := paint.NewBuilder(cfg.Palette, cfg.Front, cfg.Side)
	if err != nil {
		return nil, nil, &StageError{Stage: StagePaint, Err: err}
	}
	graph, err := b.Build(names)
	if err != nil {
		return nil, nil, &StageError{Stage: StagePaint, Err: err}
	}
	rules, err := features.BuildSubstitutionRules(names, cfg.Roles)
	if err != nil {
		return nil, nil, &StageError{Stage: StagePaint, Err: err}
	}

	masters := make([]*Master, len(cfg.Depths))
	errs := make([]error, len(cfg.Depths))
	build := func(i int) {
		d := cfg.Depths[i]
		m := &Master{
			Label:     d.Label,
			Depth:     d.Value,
			Font:      f.Clone(),
			IsDefault: d.Label == cfg.DefaultDepth,
		}
		errs[i] = m.extrude(names, cfg)
		if errs[i] == nil && m.IsDefault {
			errs[i] = m.addColor(names, graph, cfg, rules)
		}
		masters[i] = m
	}

	if cfg.Parallel {
		var wg sync.WaitGroup
		for i := range cfg.Depths {
			wg.Add(1)
			go func() {
				defer wg.Done()
				build(i)
			}()
		}
		wg.Wait()
	} else {
		for i := range cfg.Depths {
			build(i)
			if errs[i] != nil {
				break
			}
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	checkCompatible(masters, names)
	return masters, cfg.axis(), nil
}

func (m *Master) extrude(names []string, cfg *Config) error {
	log := Logger().With(slog.String("master", m.Label))
	degenerate := 0
	for _, name := range names {
		err := extrude.Glyph(m.Font, name, cfg.ExtrudeAngle, m.Depth)
		var warn *extrude.DegenerateExtrusionWarning
		if errors.As(err, &warn) {
			log.Debug("degenerate extrusion", slog.String("glyph", name))
			degenerate++
			continue
		} else if err != nil {
			return &StageError{Stage: StageExtrude, Master: m.Label, Glyph: name, Err: err}
		}
	}
	if degenerate > 0 {
		log.Warn("side faces are empty",
			slog.Float64("depth", m.Depth), slog.Int("glyphs", degenerate))
	}
	return nil
}

func (m *Master) addColor(names []string, graph paint.Graph, cfg *Config, rules string) error {
	if err := graph.Check(m.Font); err != nil {
		return &StageError{Stage: StagePaint, Master: m.Label, Err: err}
	}
	paint.SetLib(m.Font.Lib(), graph, cfg.Palette)
	m.Font.SetFeatures(m.Font.Features() + rules)
	Logger().Debug("added colour layers",
		slog.String("master", m.Label), slog.Int("glyphs", len(names)))
	return nil
}

// checkCompatible logs a warning for every side glyph whose point structure
// differs between the default master and another master.  Such glyphs
// cannot be interpolated.
func checkCompatible(masters []*Master, names []string) {
	var ref *Master
	for _, m := range masters {
		if m.IsDefault {
			ref = m
		}
	}
	if ref == nil {
		return
	}
	log := Logger()
	for _, m := range masters {
		if m == ref {
			continue
		}
		var bad []string
		for _, name := range names {
			side := features.Side(name)
			a, b := ref.Font.Glyph(side), m.Font.Glyph(side)
			if a == nil || b == nil || !outline.Compatible(a.Outline, b.Outline) {
				bad = append(bad, side)
			}
		}
		if len(bad) > 0 {
			log.Warn("masters are not interpolation compatible",
				slog.String("master", m.Label),
				slog.String("default", ref.Label),
				slog.Any("glyphs", bad))
		}
	}
}
