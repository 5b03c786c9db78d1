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

package graphics

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/pdf"
)

type noObjects struct{}

func (noObjects) Get(pdf.Reference) (pdf.Object, error) {
	return nil, nil
}

func TestBuilderOutput(t *testing.T) {
	b := NewContentStreamBuilder()
	b.TextBegin()
	b.TextSetFont(standard.Helvetica.Must(), 12)
	b.TextFirstLine(100, 592)
	w := b.TextShow("Hello")
	b.TextEnd()

	cs, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-27.336) > 1e-9 {
		t.Errorf("wrong width %g", w)
	}

	buf := &bytes.Buffer{}
	_, err = cs.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	expected := "BT\n/F1 12 Tf\n100 592 Td\n(Hello) Tj\nET\n"
	if got := buf.String(); got != expected {
		t.Errorf("wrong content stream:\n%s", got)
	}

	x, y := b.TextPos()
	if math.Abs(x-127.336) > 1e-9 || y != 592 {
		t.Errorf("wrong text position (%g, %g)", x, y)
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewContentStreamBuilder()
	b.TextShow("no text object")
	if b.Err == nil {
		t.Error("text shown outside a text object")
	}

	b = NewContentStreamBuilder()
	b.TextBegin()
	b.TextShow("no font")
	if b.Err == nil {
		t.Error("text shown without a font")
	}

	b = NewContentStreamBuilder()
	b.TextBegin()
	b.TextSetFont(standard.Helvetica.Must(), 10)
	b.TextShow("日本")
	var encErr *standard.EncodeError
	if _, err := b.Build(); err == nil || !errors.As(err, &encErr) {
		t.Errorf("expected EncodeError, got %v", err)
	}

	b = NewContentStreamBuilder()
	b.PushGraphicsState()
	if _, err := b.Build(); err == nil {
		t.Error("unbalanced q accepted")
	}

	b = NewContentStreamBuilder()
	b.PopGraphicsState()
	if b.Err == nil {
		t.Error("Q without q accepted")
	}
}

func TestRoundTrip(t *testing.T) {
	helvetica := standard.Helvetica.Must()
	courier := standard.Courier.Must()

	b := NewContentStreamBuilder()
	b.PushGraphicsState()
	b.Transform(matrix.Translate(10, 20))
	b.TextBegin()
	b.TextSetFont(helvetica, 12)
	b.TextFirstLine(100, 592)
	b.TextShow("Hi")
	b.TextSetFont(courier, 10)
	b.TextSetMatrix(matrix.Translate(50, 60))
	b.TextShow("ab")
	b.TextEnd()
	b.PopGraphicsState()
	cs, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(cs.Resources.Font) != 2 {
		t.Errorf("expected 2 fonts, got %d", len(cs.Resources.Font))
	}

	buf := &bytes.Buffer{}
	_, err = cs.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}

	fonts := pdf.Dict{}
	for name, F := range cs.Resources.Font {
		fonts[name] = pdf.Dict{
			"Type":     pdf.Name("Font"),
			"Subtype":  pdf.Name("Type1"),
			"BaseFont": pdf.Name(F),
		}
	}
	r, err := NewReader(noObjects{}, pdf.Dict{"Font": fonts})
	if err != nil {
		t.Fatal(err)
	}
	var got []Glyph
	r.DrawGlyph = func(g Glyph) error {
		got = append(got, g)
		return nil
	}
	stm := &pdf.Stream{
		Dict: pdf.Dict{"Length": pdf.Integer(buf.Len())},
		R:    bytes.NewReader(buf.Bytes()),
	}
	err = r.ScanContentStream(stm)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Glyph{
		{Text: "H", Font: standard.Helvetica, X: 110, Y: 612, Width: 8.664, Size: 12},
		{Text: "i", Font: standard.Helvetica, X: 118.664, Y: 612, Width: 2.664, Size: 12},
		{Text: "a", Font: standard.Courier, X: 60, Y: 80, Width: 6, Size: 10},
		{Text: "b", Font: standard.Courier, X: 66, Y: 80, Width: 6, Size: 10},
	}
	if d := cmp.Diff(expected, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("glyphs (-want +got):\n%s", d)
	}

	// the graphics state is restored after Q
	if r.CTM != matrix.Identity || r.TextFont != nil {
		t.Errorf("graphics state not restored: CTM = %v", r.CTM)
	}
}

func TestWriteToCount(t *testing.T) {
	b := NewContentStreamBuilder()
	b.TextBegin()
	b.TextEnd()
	cs, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	buf := &strings.Builder{}
	n, err := cs.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) || buf.String() != "BT\nET\n" {
		t.Errorf("wrote %d bytes: %q", n, buf.String())
	}
}
