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

package designspace

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func depthAxis() *Axis {
	return &Axis{Tag: "DPTH", Name: "Depth", Minimum: 0, Default: 100, Maximum: 200}
}

func TestEncode(t *testing.T) {
	d := New(depthAxis())
	d.AddSource("font-Normal.yaml", "Normal", map[string]float64{"Depth": 100})

	buf := &bytes.Buffer{}
	if err := d.Encode(buf); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<designspace format="4.1">
  <axes>
    <axis tag="DPTH" name="Depth" minimum="0" maximum="200" default="100"></axis>
  </axes>
  <sources>
    <source filename="font-Normal.yaml" name="Normal">
      <location>
        <dimension name="Depth" xvalue="100"></dimension>
      </location>
    </source>
  </sources>
</designspace>
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Error(d)
	}
}

func TestRoundTrip(t *testing.T) {
	d := New(depthAxis())
	d.AddSource("a.yaml", "Normal", map[string]float64{"Depth": 100})
	d.AddSource("b.yaml", "Deep", map[string]float64{"Depth": 200})
	d.AddSource("c.yaml", "Shallow", map[string]float64{"Depth": 0})

	path := filepath.Join(t.TempDir(), "test.designspace")
	if err := d.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	d2, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(d, d2, cmpopts.IgnoreFields(Document{}, "XMLName")); diff != "" {
		t.Error(diff)
	}

	v, ok := d2.Sources[1].Value("Depth")
	if !ok || v != 200 {
		t.Errorf("got %g, %t", v, ok)
	}
}

func TestCheck(t *testing.T) {
	cases := map[string]func(d *Document){
		"bounds": func(d *Document) { d.Axes[0].Default = 300 },
		"tag":    func(d *Document) { d.Axes[0].Tag = "DEPTH" },
		"outside": func(d *Document) {
			d.AddSource("x.yaml", "", map[string]float64{"Depth": 250})
		},
		"duplicate location": func(d *Document) {
			d.AddSource("x.yaml", "", map[string]float64{"Depth": 100})
		},
		"duplicate axis": func(d *Document) { d.Axes = append(d.Axes, depthAxis()) },
		"unknown axis": func(d *Document) {
			d.Sources[0].Location = append(d.Sources[0].Location, Dimension{Name: "Width", XValue: 1})
		},
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			d := New(depthAxis())
			d.AddSource("a.yaml", "Normal", map[string]float64{"Depth": 100})
			modify(d)
			err := d.Check()
			var dsErr *Error
			if !errors.As(err, &dsErr) {
				t.Errorf("got %v, want designspace error", err)
			}
		})
	}
}

func TestWriteFileInvalid(t *testing.T) {
	d := New(&Axis{Tag: "DPTH", Name: "Depth", Minimum: 10, Default: 0, Maximum: 5})
	path := filepath.Join(t.TempDir(), "bad.designspace")
	if err := d.WriteFile(path); err == nil {
		t.Error("invalid document was written")
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("file exists")
	}
}

func TestDecodeMissingFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("<designspace></designspace>"))
	if err == nil {
		t.Error("missing format not detected")
	}
}
