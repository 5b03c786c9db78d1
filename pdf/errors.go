// seehuhn.de/go/pdffixture - deterministic PDF files for extraction tests
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

package pdf

import (
	"errors"
	"fmt"
	"strconv"
)

// MalformedFileError indicates that a PDF file could not be parsed.
type MalformedFileError struct {
	Err error
	Loc []string
	Pos int64
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	for i := len(err.Loc) - 1; i >= 0; i-- {
		middle = " " + err.Loc[i] + middle
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// Errorf returns a new [MalformedFileError] with the formatted message.
func Errorf(format string, a ...any) error {
	return &MalformedFileError{Err: fmt.Errorf(format, a...)}
}

// Wrap adds location information to a [MalformedFileError].
// Other errors are wrapped using fmt.Errorf.
func Wrap(err error, loc string) error {
	if err == nil {
		return nil
	}
	var e *MalformedFileError
	if errors.As(err, &e) {
		return &MalformedFileError{
			Err: e.Err,
			Loc: append([]string{loc}, e.Loc...),
			Pos: e.Pos,
		}
	}
	return fmt.Errorf("%s: %w", loc, err)
}

// VersionError is returned when trying to use a feature in a PDF file which
// is not supported by the PDF version used.
type VersionError struct {
	Operation string
	Earliest  Version
}

func (err *VersionError) Error() string {
	return fmt.Sprintf("%s requires PDF version %s or newer", err.Operation, err.Earliest)
}

var (
	errClosed     = errors.New("PDF writer is closed")
	errOpenStream = errors.New("PDF stream still open")
	errNoPages    = errors.New("missing /Pages in the document catalog")
)
