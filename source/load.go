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

package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/bevel/internal/atomicfile"
)

// Load reads a font from a file.
// Files with extension ".yaml" or ".yml" are read as font sources,
// files with extension ".ttf" or ".otf" are imported using [ImportSFNT].
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Read(bytes.NewReader(data))
	case ".ttf", ".otf":
		return ImportSFNT(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("source: %s: unsupported file type", path)
	}
}

// Save writes the font to a YAML file.
// The file is replaced atomically, so that a failed write never leaves a
// partially written font behind.
func Save(path string, f *Font, opt *Options) error {
	return atomicfile.WriteFile(path, func(w io.Writer) error {
		return Write(w, f, opt)
	})
}

// OutputExt returns the file extension used for saving fonts which were
// loaded from a file with the given extension.  Binary fonts are saved as
// YAML font sources.
func OutputExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ext
	default:
		return ".yaml"
	}
}
