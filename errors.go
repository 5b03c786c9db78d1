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

package pdffixture

import "errors"

// These errors are returned by the fixture generators.  Use [errors.Is] to
// test for them, since the returned errors usually carry more detail.
var (
	// ErrInvalidGeometry indicates coordinates outside the page box, a
	// font size which is not a positive, finite number, or an empty page.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupportedFont indicates an unknown font, a font without
	// bundled metrics, or text which the font cannot encode.
	ErrUnsupportedFont = errors.New("unsupported font")

	// ErrDanglingPageReference indicates an outline entry whose target
	// page does not belong to the document.
	ErrDanglingPageReference = errors.New("dangling page reference")

	// ErrDanglingParentReference indicates an outline entry whose parent
	// entry does not belong to the document.
	ErrDanglingParentReference = errors.New("dangling parent reference")

	// ErrEncodingFailure indicates that the PDF file could not be
	// produced.  Errors of this kind are of type [*EncodingError].
	ErrEncodingFailure = errors.New("PDF encoding failed")

	// ErrSerialized is returned when a document is modified after it has
	// been written.
	ErrSerialized = errors.New("document already written")
)

// EncodingError is returned when the PDF library fails to produce a file.
// It matches [ErrEncodingFailure] and unwraps to the underlying error.
type EncodingError struct {
	Op  string
	Err error
}

func (err *EncodingError) Error() string {
	return "pdffixture: " + err.Op + ": " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *EncodingError) Unwrap() error {
	return err.Err
}

// Is makes the error match [ErrEncodingFailure].
func (err *EncodingError) Is(target error) bool {
	return target == ErrEncodingFailure
}

func encodingError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &EncodingError{Op: op, Err: err}
}
