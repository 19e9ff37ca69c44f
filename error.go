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

import "fmt"

// Stage names used in [StageError].
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageShear     = "shear"
	StageExtrude   = "extrude"
	StagePaint     = "paint"
	StageWrite     = "write"
)

// StageError wraps an error which occurred while processing a glyph.
type StageError struct {
	Stage string

	// Glyph is the name of the glyph being processed, or the empty string
	// for errors which concern the whole font.
	Glyph string

	// Master is the label of the master being built, if any.
	Master string

	Err error
}

func (err *StageError) Error() string {
	msg := err.Stage
	if err.Master != "" {
		msg += " [" + err.Master + "]"
	}
	if err.Glyph != "" {
		msg += fmt.Sprintf(" glyph %q", err.Glyph)
	}
	return msg + ": " + err.Err.Error()
}

func (err *StageError) Unwrap() error {
	return err.Err
}

// ConfigError indicates an invalid configuration.
type ConfigError struct {
	Field  string
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (err *ConfigError) Error() string {
	reason := err.Reason
	if reason == "" && err.Err != nil {
		reason = err.Err.Error()
	}
	if err.Field == "" {
		return "invalid configuration: " + reason
	}
	return "invalid configuration: " + err.Field + ": " + reason
}

func (err *ConfigError) Unwrap() error {
	return err.Err
}
