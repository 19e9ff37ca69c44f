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

// Package designspace reads and writes designspace documents, which describe
// the masters of a variable font and their position along the variation axes.
package designspace

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/bevel/internal/atomicfile"
)

// Format is the version of the document format written by this package.
const Format = "4.1"

// Document is a designspace document.
type Document struct {
	XMLName xml.Name `xml:"designspace"`
	Format  string   `xml:"format,attr"`
	Axes    []*Axis  `xml:"axes>axis"`
	Sources []Source `xml:"sources>source"`
}

// Axis is a variation axis.
type Axis struct {
	Tag     string  `xml:"tag,attr"`
	Name    string  `xml:"name,attr"`
	Minimum float64 `xml:"minimum,attr"`
	Maximum float64 `xml:"maximum,attr"`
	Default float64 `xml:"default,attr"`
}

// Source is a master font of the designspace.
type Source struct {
	// Filename is the path of the master, relative to the document.
	Filename string `xml:"filename,attr"`

	Name     string      `xml:"name,attr,omitempty"`
	Location []Dimension `xml:"location>dimension"`
}

// Dimension gives the position of a source along one axis.
type Dimension struct {
	Name   string  `xml:"name,attr"`
	XValue float64 `xml:"xvalue,attr"`
}

// New returns an empty document with the given axes.
func New(axes ...*Axis) *Document {
	return &Document{
		Format: Format,
		Axes:   axes,
	}
}

// AddSource appends a master at the given location.  The location maps axis
// names to axis values; dimensions are stored in axis order.
func (d *Document) AddSource(filename, name string, location map[string]float64) {
	src := Source{Filename: filename, Name: name}
	for _, axis := range d.Axes {
		if v, ok := location[axis.Name]; ok {
			src.Location = append(src.Location, Dimension{Name: axis.Name, XValue: v})
		}
	}
	d.Sources = append(d.Sources, src)
}

// Value returns the position of the source along the named axis.
func (s *Source) Value(axis string) (float64, bool) {
	for _, dim := range s.Location {
		if dim.Name == axis {
			return dim.XValue, true
		}
	}
	return 0, false
}

// Check verifies that the axes are well-formed, and that every source lies
// within the axis bounds.
func (d *Document) Check() error {
	names := make(map[string]bool)
	tags := make(map[string]bool)
	for _, a := range d.Axes {
		if err := a.Check(); err != nil {
			return err
		}
		if names[a.Name] {
			return &Error{Reason: fmt.Sprintf("duplicate axis name %q", a.Name)}
		}
		if tags[a.Tag] {
			return &Error{Reason: fmt.Sprintf("duplicate axis tag %q", a.Tag)}
		}
		names[a.Name] = true
		tags[a.Tag] = true
	}

	seen := make(map[string]string)
	for _, src := range d.Sources {
		if src.Filename == "" {
			return &Error{Reason: "source without file name"}
		}
		key := ""
		for _, a := range d.Axes {
			v, ok := src.Value(a.Name)
			if !ok {
				v = a.Default
			}
			if v < a.Minimum || v > a.Maximum {
				return &Error{Reason: fmt.Sprintf("source %q: %s=%g outside [%g, %g]",
					src.Filename, a.Name, v, a.Minimum, a.Maximum)}
			}
			key += fmt.Sprintf("%g,", v)
		}
		if other, dup := seen[key]; dup {
			return &Error{Reason: fmt.Sprintf("sources %q and %q have the same location",
				other, src.Filename)}
		}
		seen[key] = src.Filename
		for _, dim := range src.Location {
			if !names[dim.Name] {
				return &Error{Reason: fmt.Sprintf("source %q: unknown axis %q", src.Filename, dim.Name)}
			}
		}
	}
	return nil
}

// Check verifies that the axis has a name, a four-character tag and
// consistent bounds.
func (a *Axis) Check() error {
	if a.Name == "" {
		return &Error{Reason: "axis without name"}
	}
	if len(a.Tag) != 4 {
		return &Error{Reason: fmt.Sprintf("axis %q: invalid tag %q", a.Name, a.Tag)}
	}
	if !(a.Minimum <= a.Default && a.Default <= a.Maximum) {
		return &Error{Reason: fmt.Sprintf("axis %q: need minimum <= default <= maximum, got %g, %g, %g",
			a.Name, a.Minimum, a.Default, a.Maximum)}
	}
	return nil
}

// Encode writes the document in XML format.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a document in XML format.
func Decode(r io.Reader) (*Document, error) {
	d := &Document{}
	if err := xml.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("designspace: %w", err)
	}
	if d.Format == "" {
		return nil, &Error{Reason: "missing format version"}
	}
	return d, nil
}

// WriteFile checks the document and writes it to the named file.
// The file is replaced atomically.
func (d *Document) WriteFile(path string) error {
	if err := d.Check(); err != nil {
		return err
	}
	return atomicfile.WriteFile(path, d.Encode)
}

// ReadFile reads a document from the named file.
func ReadFile(path string) (*Document, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Decode(fd)
}

// Error indicates an invalid designspace document.
type Error struct {
	Reason string
}

func (err *Error) Error() string {
	return "designspace: " + err.Reason
}
