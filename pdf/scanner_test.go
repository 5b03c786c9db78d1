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
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScannerNext(t *testing.T) {
	cases := []struct {
		in  string
		val Object
	}{
		{"null", nil},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"0", Integer(0)},
		{"+12", Integer(12)},
		{"-7", Integer(-7)},
		{"1.5", Real(1.5)},
		{"-.25", Real(-0.25)},
		{"4.", Real(4)},
		{"/Name", Name("Name")},
		{"/A#20B", Name("A B")},
		{"/", Name("")},
		{"(hello)", String("hello")},
		{"(a(b)c)", String("a(b)c")},
		{`(a\)b)`, String("a)b")},
		{`(\101\102)`, String("AB")},
		{"(line\\\nbreak)", String("linebreak")},
		{"(cr\r\nlf)", String("cr\nlf")},
		{"<48656c6c6f>", String("Hello")},
		{"<4 8 6>", String("H`")},
		{"[1 2 R /x]", Array{NewReference(1, 2), Name("x")}},
		{"[1 2 3]", Array{Integer(1), Integer(2), Integer(3)}},
		{"[]", Array(nil)},
		{"<</A 1/B[true]/C null>>", Dict{"A": Integer(1), "B": Array{Bool(true)}}},
		{"% comment\n42", Integer(42)},
		{"Tj", Operator("Tj")},
	}
	for _, test := range cases {
		s := NewScanner([]byte(test.in))
		val, err := s.Next()
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if d := cmp.Diff(test.val, val); d != "" {
			t.Errorf("%q: (-want +got):\n%s", test.in, d)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	cases := []string{
		"(unterminated",
		"<4x>",
		"[1 2",
		"<</A 1",
		")",
	}
	for _, in := range cases {
		s := NewScanner([]byte(in))
		_, err := s.Next()
		var e *MalformedFileError
		if !errors.As(err, &e) {
			t.Errorf("%q: expected MalformedFileError, got %v", in, err)
		}
	}

	s := NewScanner([]byte("  % only a comment"))
	_, err := s.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestContentStreamTokens(t *testing.T) {
	s := NewScanner([]byte("BT /F1 12 Tf 100 700 Td (Hi) Tj ET"))
	var got []Object
	for {
		obj, err := s.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		got = append(got, obj)
	}
	expected := []Object{
		Operator("BT"),
		Name("F1"), Integer(12), Operator("Tf"),
		Integer(100), Integer(700), Operator("Td"),
		String("Hi"), Operator("Tj"),
		Operator("ET"),
	}
	if d := cmp.Diff(expected, got); d != "" {
		t.Errorf("tokens (-want +got):\n%s", d)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Integer(-3), "-3"},
		{Real(2), "2."},
		{Number(2), "2"},
		{Number(0.5), "0.5"},
		{Name("A B"), "/A#20B"},
		{String("a(b"), `(a\(b)`},
		{String("(x)"), `(\(x\))`},
		{String("\xff\xfe"), "<FFFE>"},
		{String("\x00\x01\x02"), "<000102>"},
		{Array{Integer(1), Name("x")}, "[1 /x]"},
		{Dict{"B": Integer(2), "A": Integer(1)}, "<<\n/A 1\n/B 2\n>>"},
		{NewReference(5, 0), "5 0 R"},
		{&Rectangle{URx: 595.276, URy: 841.89}, "[0 0 595.28 841.89]"},
	}
	for _, test := range cases {
		if got := Format(test.in); got != test.out {
			t.Errorf("Format(%v) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestTextString(t *testing.T) {
	for _, s := range []string{"", "Chapter 1", "Voß", "€ and •", "日本語", "a­b"} {
		enc := TextString(s)
		if got := enc.AsTextString(); got != s {
			t.Errorf("%q: round trip gave %q", s, got)
		}
	}
	if got := TextString("Chapter 1"); string(got) != "Chapter 1" {
		t.Errorf("ASCII text was not stored as PDFDocEncoding: %q", got)
	}
}
