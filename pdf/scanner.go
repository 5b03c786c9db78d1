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
	"strconv"
)

// A Scanner splits PDF data into objects.  The same scanner is used for the
// body of PDF files and for content streams.  Keywords which are not part of
// an object (for example "obj", "R" or content stream operators like "Tj")
// are returned as values of type [Operator].
type Scanner struct {
	data []byte
	pos  int

	// base is the file offset of data[0], for error messages
	base int64
}

// NewScanner returns a new scanner which reads from data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

func (s *Scanner) filePos() int64 {
	return s.base + int64(s.pos)
}

func (s *Scanner) errorf(format string, a ...any) error {
	return &MalformedFileError{
		Pos: s.filePos(),
		Err: fmt.Errorf(format, a...),
	}
}

// Next returns the next object or operator.  Indirect references of the form
// "a b R" inside arrays and dictionaries are combined into [Reference]
// values, top-level references are returned as three separate tokens.
// The PDF null object is returned as nil.  At the end of the input, io.EOF
// is returned.
func (s *Scanner) Next() (Object, error) {
	s.skipWhiteSpace()
	if s.pos >= len(s.data) {
		return nil, io.EOF
	}

	c := s.data[s.pos]
	switch {
	case c == '/':
		return s.readName()
	case c == '(':
		return s.readLiteralString()
	case c == '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			return s.readDict()
		}
		return s.readHexString()
	case c == '[':
		return s.readArray()
	case c == ']', c == '>', c == ')', c == '{', c == '}':
		return nil, s.errorf("unexpected %q", c)
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		return s.readNumber()
	}

	start := s.pos
	for s.pos < len(s.data) && isRegular(s.data[s.pos]) {
		s.pos++
	}
	word := string(s.data[start:s.pos])
	switch word {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return nil, nil
	}
	return Operator(word), nil
}

// readValue reads an object, combining "a b R" into a reference.
func (s *Scanner) readValue() (Object, error) {
	obj, err := s.Next()
	if err != nil {
		return nil, err
	}
	a, isInt := obj.(Integer)
	if !isInt {
		return obj, nil
	}

	save := s.pos
	obj2, err := s.Next()
	b, ok := obj2.(Integer)
	if err == nil && ok {
		obj3, err := s.Next()
		if err == nil && obj3 == Operator("R") && a >= 0 && b >= 0 && b <= 65535 {
			return NewReference(uint32(a), uint16(b)), nil
		}
	}
	s.pos = save
	return a, nil
}

func (s *Scanner) readNumber() (Object, error) {
	start := s.pos
	hasDot := false
scan:
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !hasDot:
			hasDot = true
		case (c == '+' || c == '-') && s.pos == start:
		default:
			break scan
		}
		s.pos++
	}
	text := string(s.data[start:s.pos])

	if hasDot {
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &MalformedFileError{Pos: s.base + int64(start), Err: err}
		}
		return Real(x), nil
	}
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &MalformedFileError{Pos: s.base + int64(start), Err: err}
	}
	return Integer(x), nil
}

func (s *Scanner) readName() (Name, error) {
	s.pos++ // skip "/"

	var res []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && s.pos+2 < len(s.data) {
			hi, ok1 := hexDigit(s.data[s.pos+1])
			lo, ok2 := hexDigit(s.data[s.pos+2])
			if ok1 && ok2 {
				res = append(res, hi<<4|lo)
				s.pos += 3
				continue
			}
		}
		res = append(res, c)
		s.pos++
	}
	return Name(res), nil
}

func (s *Scanner) readLiteralString() (String, error) {
	s.pos++ // skip "("

	var res []byte
	level := 0
	for {
		if s.pos >= len(s.data) {
			return nil, s.errorf("unterminated string")
		}
		c := s.data[s.pos]
		s.pos++

		switch c {
		case '(':
			level++
		case ')':
			if level == 0 {
				return String(res), nil
			}
			level--
		case '\r':
			// EOL markers in strings are read as "\n"
			if s.pos < len(s.data) && s.data[s.pos] == '\n' {
				s.pos++
			}
			c = '\n'
		case '\\':
			if s.pos >= len(s.data) {
				return nil, s.errorf("unterminated string")
			}
			c = s.data[s.pos]
			s.pos++
			switch c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
				continue
			case '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := c - '0'
				for k := 0; k < 2 && s.pos < len(s.data); k++ {
					d := s.data[s.pos]
					if d < '0' || d > '7' {
						break
					}
					val = val*8 + (d - '0')
					s.pos++
				}
				c = val
			}
		}
		res = append(res, c)
	}
}

func (s *Scanner) readHexString() (String, error) {
	s.pos++ // skip "<"

	var res []byte
	var hi byte
	first := true
	for {
		if s.pos >= len(s.data) {
			return nil, s.errorf("unterminated hex string")
		}
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		d, ok := hexDigit(c)
		if !ok {
			if isSpace[c] {
				continue
			}
			return nil, s.errorf("invalid character %q in hex string", c)
		}
		if first {
			hi = d
		} else {
			res = append(res, hi<<4|d)
		}
		first = !first
	}
	if !first {
		res = append(res, hi<<4)
	}
	return String(res), nil
}

func (s *Scanner) readArray() (Array, error) {
	s.pos++ // skip "["

	var array Array
	for {
		s.skipWhiteSpace()
		if s.pos >= len(s.data) {
			return nil, s.errorf("unterminated array")
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return array, nil
		}

		obj, err := s.readValue()
		if err != nil {
			return nil, err
		}
		array = append(array, obj)
	}
}

func (s *Scanner) readDict() (Dict, error) {
	s.pos += 2 // skip "<<"

	dict := Dict{}
	for {
		s.skipWhiteSpace()
		if s.pos+1 < len(s.data) && s.data[s.pos] == '>' && s.data[s.pos+1] == '>' {
			s.pos += 2
			return dict, nil
		}
		if s.pos >= len(s.data) || s.data[s.pos] != '/' {
			return nil, s.errorf("expected name in dictionary")
		}

		key, err := s.readName()
		if err != nil {
			return nil, err
		}
		val, err := s.readValue()
		if err != nil {
			return nil, err
		}
		if val != nil {
			dict[key] = val
		}
	}
}

// readIndirectObject reads an object of the form "n g obj ... endobj".
// The function getLength is used to resolve the /Length entry of streams.
func (s *Scanner) readIndirectObject(getLength func(Object) (Integer, error)) (Reference, Object, error) {
	obj, err := s.Next()
	if err != nil {
		return 0, nil, err
	}
	number, ok1 := obj.(Integer)
	obj, err = s.Next()
	if err != nil {
		return 0, nil, err
	}
	generation, ok2 := obj.(Integer)
	obj, err = s.Next()
	if err != nil {
		return 0, nil, err
	}
	if !ok1 || !ok2 || obj != Operator("obj") || number < 0 || generation < 0 {
		return 0, nil, s.errorf("invalid indirect object header")
	}
	ref := NewReference(uint32(number), uint16(generation))

	val, err := s.readValue()
	if err != nil {
		return 0, nil, err
	}

	obj, err = s.Next()
	if err != nil {
		return 0, nil, err
	}
	if obj == Operator("stream") {
		dict, ok := val.(Dict)
		if !ok {
			return 0, nil, s.errorf("stream without dictionary")
		}
		length, err := getLength(dict["Length"])
		if err != nil {
			return 0, nil, Wrap(err, "stream /Length")
		}
		stm, err := s.readStreamData(dict, int(length))
		if err != nil {
			return 0, nil, err
		}
		val = stm

		obj, err = s.Next()
		if err != nil {
			return 0, nil, err
		}
	}
	if obj != Operator("endobj") {
		return 0, nil, s.errorf("missing endobj")
	}
	return ref, val, nil
}

func (s *Scanner) readStreamData(dict Dict, length int) (*Stream, error) {
	// "stream" is followed by CRLF or LF
	if s.pos < len(s.data) && s.data[s.pos] == '\r' {
		s.pos++
	}
	if s.pos >= len(s.data) || s.data[s.pos] != '\n' {
		return nil, s.errorf("missing end of line after stream keyword")
	}
	s.pos++

	if length < 0 || s.pos+length > len(s.data) {
		return nil, s.errorf("invalid stream length %d", length)
	}
	body := s.data[s.pos : s.pos+length]
	s.pos += length

	obj, err := s.Next()
	if err != nil {
		return nil, err
	}
	if obj != Operator("endstream") {
		return nil, s.errorf("missing endstream")
	}

	return &Stream{
		Dict: dict,
		R:    bytes.NewReader(body),
	}, nil
}

func (s *Scanner) skipWhiteSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			continue
		}
		if !isSpace[c] {
			return
		}
		s.pos++
	}
}

func isRegular(c byte) bool {
	return !isSpace[c] && !isDelimiter[c]
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

