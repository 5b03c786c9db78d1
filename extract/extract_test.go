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

package extract

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdffixture/document"
	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/outline"
	"seehuhn.de/go/pdffixture/pdf"
)

func readBack(t *testing.T, buf *bytes.Buffer) *pdf.Reader {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestWords(t *testing.T) {
	buf := &bytes.Buffer{}
	page, err := document.WriteSinglePage(buf, document.Letter, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	F := standard.Helvetica.Must()
	page.TextBegin()
	page.TextSetFont(F, 12)
	page.TextFirstLine(100, 592)
	page.TextShow("Hello")
	page.TextEnd()
	page.TextBegin()
	page.TextSetFont(F, 12)
	page.TextFirstLine(160, 592)
	page.TextShow("World")
	page.TextEnd()

	// a scaled line with two words
	page.PushGraphicsState()
	page.Transform(matrix.Scale(2, 2))
	page.TextBegin()
	page.TextSetFont(standard.Courier.Must(), 10)
	page.TextFirstLine(10, 20)
	page.TextShow("ab  cd")
	page.TextEnd()
	page.PopGraphicsState()
	err = page.Close()
	if err != nil {
		t.Fatal(err)
	}

	r := readBack(t, buf)
	words, err := Words(r, 0)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Word{
		{Text: "Hello", X: 100, Y: 592, Width: 27.336, Height: 12, Font: standard.Helvetica, FontSize: 12},
		{Text: "World", X: 160, Y: 592, Width: 31.332, Height: 12, Font: standard.Helvetica, FontSize: 12},
		{Text: "ab", X: 20, Y: 40, Width: 24, Height: 20, Font: standard.Courier, FontSize: 20},
		{Text: "cd", X: 68, Y: 40, Width: 24, Height: 20, Font: standard.Courier, FontSize: 20},
	}
	if d := cmp.Diff(expected, words, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("words (-want +got):\n%s", d)
	}

	b := words[0].Bounds()
	if d := cmp.Diff(rect.Rect{LLx: 100, LLy: 592, URx: 127.336, URy: 604}, b, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("bounds (-want +got):\n%s", d)
	}

	lines, err := Lines(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	var text []string
	for _, l := range lines {
		text = append(text, l.Text)
	}
	if d := cmp.Diff([]string{"Hello", "World", "ab  cd"}, text); d != "" {
		t.Errorf("lines (-want +got):\n%s", d)
	}

	if _, err := Words(r, 1); err == nil {
		t.Error("missing page not reported")
	}
}

func TestAdjacentRuns(t *testing.T) {
	// Two strings shown directly after each other form a single word.
	buf := &bytes.Buffer{}
	page, err := document.WriteSinglePage(buf, document.A5, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	page.TextBegin()
	page.TextSetFont(standard.Helvetica.Must(), 10)
	page.TextFirstLine(50, 50)
	page.TextShow("foo")
	page.TextShow("bar")
	page.TextEnd()
	err = page.Close()
	if err != nil {
		t.Fatal(err)
	}

	words, err := Words(readBack(t, buf), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Text != "foobar" {
		t.Errorf("unexpected words %v", words)
	}
}

func TestTOC(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := document.WriteMultiPage(buf, document.A4, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	var refs []pdf.Reference
	for range 3 {
		p := doc.AddPage()
		err = p.Close()
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, p.Ref)
	}

	o := &outline.Outline{}
	a := o.AddItem("A")
	a.Destination = outline.FitPage(refs[0])
	a.AddChild("A.1").Destination = outline.FitPage(refs[2])
	o.AddItem("no target")
	o.AddItem("B").Destination = outline.FitPage(refs[1])
	err = o.Write(doc.RM)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	toc, err := TOC(readBack(t, buf))
	if err != nil {
		t.Fatal(err)
	}
	expected := []Entry{
		{Title: "A", Level: 0, Page: 0},
		{Title: "A.1", Level: 1, Page: 2},
		{Title: "no target", Level: 0, Page: -1},
		{Title: "B", Level: 0, Page: 1},
	}
	if d := cmp.Diff(expected, toc); d != "" {
		t.Errorf("TOC (-want +got):\n%s", d)
	}
}

func TestTOCEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	page, err := document.WriteSinglePage(buf, document.A5, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = page.Close()
	if err != nil {
		t.Fatal(err)
	}

	toc, err := TOC(readBack(t, buf))
	if err != nil {
		t.Fatal(err)
	}
	if toc == nil || len(toc) != 0 {
		t.Errorf("expected empty TOC, got %#v", toc)
	}
}
