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
	"errors"
	"fmt"
	"io"
	"strconv"
)

func (pdf *Writer) writeXRefTable(trailer Dict) error {
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	for i := uint32(0); i < pdf.nextRef; i++ {
		pos, ok := pdf.xref[i]
		if ok {
			_, err = fmt.Fprintf(pdf.w, "%010d 00000 n\r\n", pos)
		} else {
			// free object
			_, err = io.WriteString(pdf.w, "0000000000 65535 f\r\n")
		}
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(pdf.w, "trailer\n")
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

type xRefEntry struct {
	Pos        int64
	Generation uint16
}

// findXRef locates the start of the last cross-reference section.
func findXRef(data []byte) (int64, error) {
	tail := data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, &MalformedFileError{Err: errors.New("startxref not found")}
	}
	s := NewScanner(tail[idx+len("startxref"):])
	obj, err := s.Next()
	if err != nil {
		return 0, err
	}
	pos, ok := obj.(Integer)
	if !ok || pos < 0 || int64(pos) >= int64(len(data)) {
		return 0, &MalformedFileError{Err: errors.New("invalid startxref value")}
	}
	return int64(pos), nil
}

// readXRef reads all cross-reference sections of a file, following the
// /Prev links in the trailer dictionaries.  Only classical cross-reference
// tables are supported.
func readXRef(data []byte) (map[uint32]*xRefEntry, Dict, error) {
	start, err := findXRef(data)
	if err != nil {
		return nil, nil, err
	}

	xref := make(map[uint32]*xRefEntry)
	var trailer Dict
	seen := map[int64]bool{}
	for {
		if seen[start] {
			return nil, nil, &MalformedFileError{
				Pos: start,
				Err: errors.New("loop in xref /Prev chain"),
			}
		}
		seen[start] = true

		dict, err := readXRefTable(xref, data, start)
		if err != nil {
			return nil, nil, err
		}
		if trailer == nil {
			trailer = dict
		}

		prev, ok := dict["Prev"].(Integer)
		if !ok {
			break
		}
		if prev < 0 || int64(prev) >= int64(len(data)) {
			return nil, nil, &MalformedFileError{Err: errors.New("invalid /Prev in trailer")}
		}
		start = int64(prev)
	}
	return xref, trailer, nil
}

func readXRefTable(xref map[uint32]*xRefEntry, data []byte, start int64) (Dict, error) {
	s := NewScanner(data[start:])
	s.base = start

	obj, err := s.Next()
	if err != nil {
		return nil, err
	}
	if obj != Operator("xref") {
		return nil, &MalformedFileError{
			Pos: start,
			Err: errors.New("xref streams are not supported"),
		}
	}

	for {
		obj, err := s.Next()
		if err != nil {
			return nil, err
		}
		if obj == Operator("trailer") {
			break
		}
		first, ok1 := obj.(Integer)
		obj, err = s.Next()
		if err != nil {
			return nil, err
		}
		count, ok2 := obj.(Integer)
		if !ok1 || !ok2 || first < 0 || count < 0 {
			return nil, &MalformedFileError{Pos: s.filePos(), Err: errors.New("invalid xref subsection header")}
		}
		for i := range int64(count) {
			err := decodeXRefEntry(xref, s, uint32(int64(first)+i))
			if err != nil {
				return nil, err
			}
		}
	}

	obj, err = s.Next()
	if err != nil {
		return nil, err
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, &MalformedFileError{Pos: s.filePos(), Err: errors.New("invalid trailer")}
	}
	return trailer, nil
}

func decodeXRefEntry(xref map[uint32]*xRefEntry, s *Scanner, number uint32) error {
	s.skipWhiteSpace()
	if s.pos+18 > len(s.data) {
		return &MalformedFileError{Pos: s.filePos(), Err: io.ErrUnexpectedEOF}
	}
	line := s.data[s.pos : s.pos+18]
	s.pos += 18

	pos, err1 := strconv.ParseInt(string(line[0:10]), 10, 64)
	gen, err2 := strconv.ParseUint(string(line[11:16]), 10, 16)
	if err1 != nil || err2 != nil || line[10] != ' ' || line[16] != ' ' {
		return &MalformedFileError{Pos: s.filePos(), Err: errors.New("malformed xref entry")}
	}

	if _, exists := xref[number]; exists {
		// entries from later updates take precedence
		return nil
	}
	switch line[17] {
	case 'n':
		xref[number] = &xRefEntry{Pos: pos, Generation: uint16(gen)}
	case 'f':
		xref[number] = &xRefEntry{Pos: -1, Generation: uint16(gen)}
	default:
		return &MalformedFileError{Pos: s.filePos(), Err: errors.New("malformed xref entry")}
	}
	return nil
}
