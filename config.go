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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/bevel/color"
	"seehuhn.de/go/bevel/designspace"
	"seehuhn.de/go/bevel/features"
	"seehuhn.de/go/bevel/paint"
	"seehuhn.de/go/bevel/shear"
)

// Depth is an extrusion depth, together with the label used in the names of
// the master files.
type Depth struct {
	Label string
	Value float64
}

// Config holds the parameters of the bevel effect.
type Config struct {
	// ShearAngle is the angle by which glyphs are slanted, in radians.
	ShearAngle float64

	// PivotX is the x coordinate which is kept fixed by the shear.
	PivotX float64

	// ExtrudeAngle is the direction of the extrusion, in radians.
	ExtrudeAngle float64

	// Depths lists the masters to build, in output order.
	Depths []Depth

	// DefaultDepth is the label of the default master.  Only this master
	// carries the colour palette, the paint graph and the feature rules.
	DefaultDepth string

	// AxisName and AxisTag describe the variation axis.  The bounds of the
	// axis are derived from the depths.
	AxisName string
	AxisTag  string

	Palette color.Palette
	Front   *paint.LinearGradient
	Side    *paint.LinearGradient
	Roles   []features.Role

	// FlattenTolerance is the maximal distance between curves and their
	// polygonal approximation, used for overlap removal.
	FlattenTolerance float64

	// Round causes coordinates to be rounded to integers when masters are
	// written.
	Round bool

	// Digits, if positive, limits the number of decimal digits of
	// coordinates when masters are written.
	Digits int

	// Parallel causes the masters to be built concurrently.
	Parallel bool
}

// DefaultConfig returns the standard bevel configuration.
func DefaultConfig() *Config {
	return &Config{
		ShearAngle:   30 * math.Pi / 180,
		PivotX:       shear.DefaultPivotX,
		ExtrudeAngle: -30 * math.Pi / 180,
		Depths: []Depth{
			{Label: "Normal", Value: 100},
			{Label: "Deep", Value: 200},
			{Label: "Shallow", Value: 0},
		},
		DefaultDepth:     "Normal",
		AxisName:         "Depth",
		AxisTag:          "DPTH",
		Palette:          color.Default(),
		Front:            paint.DefaultFront(),
		Side:             paint.DefaultSide(),
		Roles:            features.DefaultRoles(),
		FlattenTolerance: 1,
	}
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() error {
	if !(cfg.ShearAngle > -math.Pi/2 && cfg.ShearAngle < math.Pi/2) {
		return &ConfigError{Field: "shear-angle", Reason: "must be between -90 and 90 degrees"}
	}
	if math.IsNaN(cfg.ExtrudeAngle) || math.IsInf(cfg.ExtrudeAngle, 0) {
		return &ConfigError{Field: "extrude-angle", Reason: "not a number"}
	}
	if !(cfg.FlattenTolerance > 0) {
		return &ConfigError{Field: "flatten-tolerance", Reason: "must be positive"}
	}
	if cfg.Digits < 0 {
		return &ConfigError{Field: "digits", Reason: "must not be negative"}
	}
	if len(cfg.Depths) == 0 {
		return &ConfigError{Field: "depth", Reason: "no depths given"}
	}

	labels := make(map[string]bool)
	values := make(map[float64]bool)
	hasDefault := false
	for _, d := range cfg.Depths {
		if d.Label == "" {
			return &ConfigError{Field: "depth", Reason: "empty label"}
		}
		if labels[d.Label] {
			return &ConfigError{Field: "depth", Reason: fmt.Sprintf("duplicate label %q", d.Label)}
		}
		if values[d.Value] {
			return &ConfigError{Field: "depth", Reason: fmt.Sprintf("duplicate depth %g", d.Value)}
		}
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return &ConfigError{Field: "depth", Reason: fmt.Sprintf("%s: invalid depth", d.Label)}
		}
		labels[d.Label] = true
		values[d.Value] = true
		hasDefault = hasDefault || d.Label == cfg.DefaultDepth
	}
	if !hasDefault {
		return &ConfigError{Field: "default-depth", Reason: fmt.Sprintf("no depth labelled %q", cfg.DefaultDepth)}
	}

	if err := cfg.axis().Check(); err != nil {
		return &ConfigError{Field: "axis", Err: err}
	}
	if cfg.Front == nil || cfg.Side == nil {
		return &ConfigError{Field: "gradient", Reason: "missing gradient"}
	}
	if _, err := paint.NewBuilder(cfg.Palette, cfg.Front, cfg.Side); err != nil {
		return &ConfigError{Field: "gradient", Err: err}
	}
	if err := features.Check(cfg.Roles); err != nil {
		return &ConfigError{Field: "role", Err: err}
	}
	return nil
}

// axis returns the variation axis spanned by the configured depths.
func (cfg *Config) axis() *designspace.Axis {
	a := &designspace.Axis{Name: cfg.AxisName, Tag: cfg.AxisTag}
	for i, d := range cfg.Depths {
		if i == 0 || d.Value < a.Minimum {
			a.Minimum = d.Value
		}
		if i == 0 || d.Value > a.Maximum {
			a.Maximum = d.Value
		}
		if d.Label == cfg.DefaultDepth {
			a.Default = d.Value
		}
	}
	return a
}

// The following types describe the TOML configuration file.  All fields are
// optional, missing values are taken from [DefaultConfig].  Angles are given
// in degrees.

type fileConfig struct {
	ShearAngle       *float64        `toml:"shear-angle"`
	PivotX           *float64        `toml:"pivot-x"`
	ExtrudeAngle     *float64        `toml:"extrude-angle"`
	DefaultDepth     *string         `toml:"default-depth"`
	FlattenTolerance *float64        `toml:"flatten-tolerance"`
	Round            *bool           `toml:"round"`
	Digits           *int            `toml:"digits"`
	Parallel         *bool           `toml:"parallel"`
	Palette          []string        `toml:"palette"`
	Axis             *fileAxis       `toml:"axis"`
	Depths           []fileDepth     `toml:"depth"`
	Roles            []features.Role `toml:"role"`
	Front            *fileGradient   `toml:"front-gradient"`
	Side             *fileGradient   `toml:"side-gradient"`
}

type fileAxis struct {
	Name string `toml:"name"`
	Tag  string `toml:"tag"`
}

type fileDepth struct {
	Label string  `toml:"label"`
	Value float64 `toml:"value"`
}

type fileGradient struct {
	Extend string     `toml:"extend"`
	Stops  []fileStop `toml:"stops"`
	P0     []float64  `toml:"p0"`
	P1     []float64  `toml:"p1"`
	P2     []float64  `toml:"p2"`
}

type fileStop struct {
	Offset float64 `toml:"offset"`
	Color  int     `toml:"color"`
}

// LoadConfig reads a configuration file in TOML format.
// Settings not given in the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadConfig(fd)
}

// ReadConfig reads a configuration in TOML format.
// Settings not given in the input keep their default values.
func ReadConfig(r io.Reader) (*Config, error) {
	var fc fileConfig
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return nil, &ConfigError{Err: err}
	}

	cfg := DefaultConfig()
	setDegrees(&cfg.ShearAngle, fc.ShearAngle)
	setDegrees(&cfg.ExtrudeAngle, fc.ExtrudeAngle)
	set(&cfg.PivotX, fc.PivotX)
	set(&cfg.DefaultDepth, fc.DefaultDepth)
	set(&cfg.FlattenTolerance, fc.FlattenTolerance)
	set(&cfg.Round, fc.Round)
	set(&cfg.Digits, fc.Digits)
	set(&cfg.Parallel, fc.Parallel)

	if fc.Palette != nil {
		cfg.Palette = make(color.Palette, len(fc.Palette))
		for i, s := range fc.Palette {
			c, err := color.FromHex(s)
			if err != nil {
				return nil, &ConfigError{Field: "palette", Err: err}
			}
			cfg.Palette[i] = c
		}
	}
	if fc.Axis != nil {
		if fc.Axis.Name != "" {
			cfg.AxisName = fc.Axis.Name
		}
		if fc.Axis.Tag != "" {
			cfg.AxisTag = fc.Axis.Tag
		}
	}
	if fc.Depths != nil {
		cfg.Depths = make([]Depth, len(fc.Depths))
		for i, d := range fc.Depths {
			cfg.Depths[i] = Depth{Label: d.Label, Value: d.Value}
		}
	}
	if fc.Roles != nil {
		cfg.Roles = fc.Roles
	}

	var err error
	if fc.Front != nil {
		cfg.Front, err = fc.Front.decode("front-gradient")
		if err != nil {
			return nil, err
		}
	}
	if fc.Side != nil {
		cfg.Side, err = fc.Side.decode("side-gradient")
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fg *fileGradient) decode(field string) (*paint.LinearGradient, error) {
	lg := &paint.LinearGradient{}
	if fg.Extend != "" {
		e, err := paint.ParseExtend(fg.Extend)
		if err != nil {
			return nil, &ConfigError{Field: field, Err: err}
		}
		lg.Extend = e
	}
	for _, s := range fg.Stops {
		lg.Stops = append(lg.Stops, paint.ColorStop{Offset: s.Offset, PaletteIndex: s.Color})
	}
	points := []*vec.Vec2{&lg.P0, &lg.P1, &lg.P2}
	for i, xy := range [][]float64{fg.P0, fg.P1, fg.P2} {
		if len(xy) != 2 {
			return nil, &ConfigError{Field: field, Reason: fmt.Sprintf("p%d: need two coordinates", i)}
		}
		*points[i] = vec.Vec2{X: xy[0], Y: xy[1]}
	}
	return lg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDegrees(dst *float64, src *float64) {
	if src != nil {
		*dst = *src * math.Pi / 180
	}
}
