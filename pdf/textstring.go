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
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// PDF 2.0 sections: 7.9.2.2

// TextString creates a String object using the "text string" encoding,
// i.e. using either PDFDocEncoding or UTF-16BE encoding with a byte order
// mark.
func TextString(s string) String {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := pdfDocEncode(r)
		if !ok {
			goto useUTF16
		}
		buf = append(buf, c)
	}
	return String(buf)

useUTF16:
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	res, err := enc.String(s)
	if err != nil {
		// s contains invalid UTF-8; replace the offending bytes
		res, _ = enc.String(strings.ToValidUTF8(s, "�"))
	}
	return String(res)
}

// AsTextString interprets x as a PDF "text string" and returns
// the corresponding utf-8 encoded string.
func (x String) AsTextString() string {
	switch {
	case bytes.HasPrefix(x, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		res, err := dec.Bytes(x)
		if err != nil {
			return string(bytes.ToValidUTF8(x[2:], []byte("�")))
		}
		return string(res)
	case bytes.HasPrefix(x, []byte{0xEF, 0xBB, 0xBF}) && utf8.Valid(x[3:]):
		// PDF 2.0 allows UTF-8 with a byte order mark
		return string(x[3:])
	}

	rr := make([]rune, len(x))
	for i, c := range x {
		rr[i] = pdfDocDecode(c)
	}
	return string(rr)
}

func pdfDocEncode(r rune) (byte, bool) {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return byte(r), true
	case r >= 0x20 && r <= 0x7E:
		return byte(r), true
	case r >= 0xA1 && r <= 0xFF && r != 0xAD:
		return byte(r), true
	}
	for i, s := range pdfDocSpecial {
		if s == r && s != noRune {
			return byte(i + 0x80), true
		}
	}
	return 0, false
}

func pdfDocDecode(c byte) rune {
	switch {
	case c >= 0x18 && c <= 0x1F:
		return pdfDocLow[c-0x18]
	case c >= 0x80 && c <= 0xA0:
		r := pdfDocSpecial[c-0x80]
		if r == noRune {
			return utf8.RuneError
		}
		return r
	case c == 0xAD:
		return utf8.RuneError
	}
	return rune(c)
}

const noRune = -1

var pdfDocLow = [8]rune{'˘', 'ˇ', 'ˆ', '˙', '˝', '˛', '˚', '˜'}

// pdfDocSpecial lists the characters for codes 0x80 to 0xA0.
var pdfDocSpecial = [33]rune{
	'•', '†', '‡', '…', '—', '–', 'ƒ', '⁄',
	'‹', '›', '−', '‰', '„', '“', '”', '‘',
	'’', '‚', '™', 'ﬁ', 'ﬂ', 'Ł', 'Œ', 'Š',
	'Ÿ', 'Ž', 'ı', 'ł', 'œ', 'š', 'ž', noRune,
	'€',
}
