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

// Package features names the alternate glyphs produced by the extrusion and
// writes the feature rules which give access to them.
package features

import (
	"fmt"
	"strings"
)

// Suffixes of the alternate glyphs.
const (
	FrontSuffix     = ".front"
	SideSuffix      = ".side"
	HighlightSuffix = ".highlight"
)

// Front returns the name of the front face glyph for the base glyph name.
func Front(name string) string {
	return name + FrontSuffix
}

// Side returns the name of the side face glyph for the base glyph name.
func Side(name string) string {
	return name + SideSuffix
}

// Highlight returns the name of the highlight glyph for the base glyph name.
// No highlight glyphs are currently generated; the name is reserved.
func Highlight(name string) string {
	return name + HighlightSuffix
}

// Role maps a feature tag to the suffix of the glyphs it substitutes.
type Role struct {
	Tag    string `toml:"tag"`
	Suffix string `toml:"suffix"`
}

// DefaultRoles returns the stylistic sets which expose the front and side
// glyphs on their own.
func DefaultRoles() []Role {
	return []Role{
		{Tag: "ss01", Suffix: FrontSuffix},
		{Tag: "ss02", Suffix: SideSuffix},
	}
}

// Check verifies that all roles have valid feature tags.
func Check(roles []Role) error {
	for _, r := range roles {
		if !validTag(r.Tag) {
			return &TagError{Tag: r.Tag}
		}
	}
	return nil
}

// BuildSubstitutionRules returns feature file text which substitutes the
// given glyphs by their alternates, one feature per role.
//
// The text starts with a newline, so that it can be appended to existing
// feature code.
func BuildSubstitutionRules(names []string, roles []Role) (string, error) {
	if err := Check(roles); err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "@glyphs_plain = ["+strings.Join(names, " ")+"];")
	for _, r := range roles {
		alt := make([]string, len(names))
		for i, name := range names {
			alt[i] = name + r.Suffix
		}
		lines = append(lines, "@glyphs_"+r.Tag+" = ["+strings.Join(alt, " ")+"];")
	}
	lines = append(lines, "")
	for _, r := range roles {
		lines = append(lines,
			"feature "+r.Tag+" {",
			"  sub @glyphs_plain by @glyphs_"+r.Tag+";",
			"} "+r.Tag+";")
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

// validTag reports whether tag is a four-character OpenType tag made of
// printable ASCII characters.
func validTag(tag string) bool {
	if len(tag) != 4 {
		return false
	}
	for i := range len(tag) {
		if tag[i] < 0x20 || tag[i] > 0x7E {
			return false
		}
	}
	return tag[0] != ' '
}

// TagError indicates an invalid OpenType feature tag.
type TagError struct {
	Tag string
}

func (err *TagError) Error() string {
	return fmt.Sprintf("invalid feature tag %q", err.Tag)
}
