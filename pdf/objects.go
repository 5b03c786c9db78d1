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
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Object represents an object in a PDF file.  The native PDF object types
// Array, Bool, Dict, Integer, Name, Real, Reference, *Stream and String
// implement this interface.  The PDF null object is represented by nil.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	var s string
	if x {
		s = "true"
	} else {
		s = "false"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	s, err := formatReal(float64(x))
	if err != nil {
		return err
	}
	if !strings.Contains(s, ".") {
		s += "."
	}
	_, err = io.WriteString(w, s)
	return err
}

// Number represents a numeric value in a PDF file.  Integral values are
// written without a decimal point.
type Number float64

// PDF implements the [Object] interface.
func (x Number) PDF(w io.Writer) error {
	s, err := formatReal(float64(x))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func formatReal(x float64) (string, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return "", fmt.Errorf("cannot represent %g in a PDF file", x)
	}
	if x == 0 {
		// avoid "-0"
		return "0", nil
	}
	return strconv.FormatFloat(x, 'f', -1, 64), nil
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
type String []byte

// PDF implements the [Object] interface.
//
// Strings which consist mostly of printable ASCII characters are written
// as literal strings, all other strings in hexadecimal form.
func (x String) PDF(w io.Writer) error {
	printable := 0
	for _, c := range x {
		if c >= 0x20 && c < 0x7f {
			printable++
		}
	}
	if 4*printable < 3*len(x) {
		_, err := fmt.Fprintf(w, "<%X>", []byte(x))
		return err
	}

	var buf strings.Builder
	buf.Grow(len(x) + 2)
	buf.WriteByte('(')
	for _, c := range x {
		if esc, ok := stringEscapes[c]; ok {
			buf.WriteString(esc)
		} else if c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&buf, "\\%03o", c)
		} else {
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
	_, err := io.WriteString(w, buf.String())
	return err
}

// stringEscapes lists the characters which are written as escape
// sequences in literal strings.  Parentheses are always escaped, so that
// unbalanced strings need no special treatment.
var stringEscapes = map[byte]string{
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\b': `\b`,
	'\f': `\f`,
	'(':  `\(`,
	')':  `\)`,
	'\\': `\\`,
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	var buf strings.Builder
	buf.WriteByte('/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c == '#' || !isRegular(c) || c < 0x21 || c > 0x7e {
			fmt.Fprintf(&buf, "#%02x", c)
			continue
		}
		buf.WriteByte(c)
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// Operator represents an operator in a content stream, for example "Tj".
// Operators are not PDF objects, but they share the syntax of content
// streams with them.
type Operator string

// PDF implements the [Object] interface.
func (x Operator) PDF(w io.Writer) error {
	_, err := io.WriteString(w, string(x))
	return err
}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err := io.WriteString(w, " ")
			if err != nil {
				return err
			}
		}
		err = writeObject(w, val)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// Dict represent a Dictionary object in a PDF file.
type Dict map[Name]Object

// PDF implements the [Object] interface.
// Keys are written in sorted order and null values are omitted, so that
// the output only depends on the contents of the dictionary.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}

	keys := make([]Name, 0, len(x))
	for key := range x {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, name := range keys {
		val := x[name]
		if val == nil {
			continue
		}

		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		err = name.PDF(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, " ")
		if err != nil {
			return err
		}
		err = val.PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

// Stream represent a stream object in a PDF file.
// R holds the (encoded) stream data.
type Stream struct {
	Dict
	R io.Reader
}

// PDF implements the [Object] interface.
// The /Length entry of the dictionary must be correct.
func (x *Stream) PDF(w io.Writer) error {
	err := x.Dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nstream\n")
	if err != nil {
		return err
	}
	_, err = io.Copy(w, x.R)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nendstream")
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
// The lower 32 bits hold the object number, the next 16 bits the generation
// number.  The zero value does not refer to any object.
type Reference uint64

// NewReference returns a new reference to the given object.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

func (x Reference) String() string {
	s := "obj_" + strconv.FormatUint(uint64(x.Number()), 10)
	if gen := x.Generation(); gen > 0 {
		s += "@" + strconv.FormatUint(uint64(gen), 10)
	}
	return s
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", x.Number(), x.Generation())
	return err
}

func writeObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}

// Format returns the PDF representation of obj as a string.
// This is mostly useful for error messages and tests.
func Format(obj Object) string {
	buf := &bytes.Buffer{}
	err := writeObject(buf, obj)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

var isSpace = map[byte]bool{
	0:  true,
	9:  true,
	10: true,
	12: true,
	13: true,
	32: true,
}

var isDelimiter = map[byte]bool{
	'(': true,
	')': true,
	'<': true,
	'>': true,
	'[': true,
	']': true,
	'{': true,
	'}': true,
	'/': true,
	'%': true,
}
