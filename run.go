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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"seehuhn.de/go/bevel/color"
	"seehuhn.de/go/bevel/designspace"
	"seehuhn.de/go/bevel/glyph"
	"seehuhn.de/go/bevel/paint"
	"seehuhn.de/go/bevel/source"
)

// Result lists the files written by [Run].
type Result struct {
	Masters     []string
	Designspace string
}

// Run reads the font at inputPath, builds the bevel masters and writes them
// to the directory of the input file.
//
// For an input file "dir/name.yaml", the masters are written to
// "dir/name-<label>.yaml", one per depth, and the designspace document to
// "dir/name.designspace".  Binary input fonts are written as YAML font
// sources.  All masters are built before the first file is written.  If cfg
// is nil, the default configuration is used.
func Run(ctx context.Context, inputPath string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := Logger()

	f, err := source.Load(inputPath)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	log.Info("loaded font", slog.String("file", inputPath), slog.Int("glyphs", len(f.GlyphNames())))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := Prepare(f, cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	masters, axis, err := Assemble(f, names, cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	ext = source.OutputExt(ext)

	res := &Result{
		Designspace: filepath.Join(dir, stem+".designspace"),
	}
	doc := designspace.New(axis)
	fonts := make([]*source.Font, len(masters))
	for i, m := range masters {
		sf, ok := m.Font.(*source.Font)
		if !ok {
			return nil, fmt.Errorf("master %s: unexpected font type %T", m.Label, m.Font)
		}
		if m.IsDefault {
			if _, err := Inspect(sf); err != nil {
				return nil, &StageError{Stage: StagePaint, Master: m.Label, Err: err}
			}
		}
		fonts[i] = sf

		name := stem + "-" + m.Label + ext
		res.Masters = append(res.Masters, filepath.Join(dir, name))
		doc.AddSource(name, m.Label, map[string]float64{axis.Name: m.Depth})
	}
	if err := doc.Check(); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	opt := &source.Options{Round: cfg.Round, Digits: cfg.Digits}
	for i, path := range res.Masters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := source.Save(path, fonts[i], opt); err != nil {
			return nil, &StageError{Stage: StageWrite, Master: masters[i].Label, Err: err}
		}
		log.Info("wrote master", slog.String("file", path), slog.Float64("depth", masters[i].Depth))
	}
	if err := doc.WriteFile(res.Designspace); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}
	log.Info("wrote designspace", slog.String("file", res.Designspace))

	return res, nil
}

// Report summarises the colour information of a font.
type Report struct {
	Palettes []color.Palette
	Graph    paint.Graph

	// ColorGlyphs lists the glyphs drawn using layers, in sorted order.
	ColorGlyphs []string
}

// Inspect reads the colour information stored in the lib of a font and
// checks that it is consistent with the glyphs of the font.
func Inspect(f glyph.Font) (*Report, error) {
	graph, pals, err := paint.DecodeLib(f.Lib())
	if err != nil {
		return nil, err
	}
	if err := graph.Check(f); err != nil {
		return nil, err
	}
	if len(graph) > 0 && len(pals) == 0 {
		return nil, fmt.Errorf("paint graph without palette")
	}
	for name, node := range graph {
		if g, ok := node.(*paint.Glyph); ok {
			for _, pal := range pals {
				if err := g.Paint.Check(pal); err != nil {
					return nil, fmt.Errorf("glyph %q: %w", name, err)
				}
			}
		}
	}

	r := &Report{Palettes: pals, Graph: graph}
	for _, name := range BaseGlyphs(f) {
		if _, ok := graph[name].(*paint.Layers); ok {
			r.ColorGlyphs = append(r.ColorGlyphs, name)
		}
	}
	return r, nil
}
