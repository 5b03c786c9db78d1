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

package document

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/graphics"
	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

func readGlyphText(t *testing.T, r *pdf.Reader, p *pagetree.Page) string {
	t.Helper()
	resources, err := pdf.GetDict(r, p.Dict["Resources"])
	if err != nil {
		t.Fatal(err)
	}
	gr, err := graphics.NewReader(r, resources)
	if err != nil {
		t.Fatal(err)
	}
	text := ""
	gr.DrawGlyph = func(g graphics.Glyph) error {
		text += g.Text
		return nil
	}
	err = gr.ScanContentStream(p.Dict["Contents"])
	if err != nil {
		t.Fatal(err)
	}
	return text
}

func TestSinglePage(t *testing.T) {
	buf := &bytes.Buffer{}
	page, err := WriteSinglePage(buf, A4, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	page.TextBegin()
	page.TextSetFont(standard.TimesRoman.Must(), 12)
	page.TextFirstLine(72, 720)
	page.TextShow("single")
	page.TextEnd()
	err = page.Close()
	if err != nil {
		t.Fatal(err)
	}
	if page.Ref == 0 {
		t.Error("page reference not set after Close")
	}
	if page.Close() == nil {
		t.Error("second Close succeeded")
	}

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	p, err := pagetree.GetPage(r, catalog.Pages, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Ref != page.Ref {
		t.Errorf("page reference %s, expected %s", p.Ref, page.Ref)
	}
	box, err := pdf.GetRectangle(r, p.Dict["MediaBox"])
	if err != nil {
		t.Fatal(err)
	}
	if !box.NearlyEqual(A4, 0.01) {
		t.Errorf("wrong page size %s", box)
	}
	if got := readGlyphText(t, r, p); got != "single" {
		t.Errorf("wrong page text %q", got)
	}
}

func TestSinglePageNoSize(t *testing.T) {
	page, err := WriteSinglePage(&bytes.Buffer{}, nil, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Close() == nil {
		t.Error("page without size was accepted")
	}
}

func TestMultiPage(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := WriteMultiPage(buf, Letter, pdf.V1_7, &pdf.WriterOptions{HumanReadable: true})
	if err != nil {
		t.Fatal(err)
	}

	F := standard.Helvetica.Must()
	words := []string{"one", "two", "three"}
	var refs []pdf.Reference
	for _, word := range words {
		page := doc.AddPage()
		page.TextBegin()
		page.TextSetFont(F, 10)
		page.TextFirstLine(50, 50)
		page.TextShow(word)
		page.TextEnd()
		err = page.Close()
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, page.Ref)
	}

	open := doc.AddPage()
	if doc.Close() == nil {
		t.Error("document with open page was closed")
	}
	err = open.Close()
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	if doc.NumPages() != 4 {
		t.Errorf("expected 4 pages, got %d", doc.NumPages())
	}

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	var gotRefs []pdf.Reference
	var gotText []string
	for p, err := range pagetree.All(r, catalog.Pages) {
		if err != nil {
			t.Fatal(err)
		}
		box, err := pdf.GetRectangle(r, p.Dict["MediaBox"])
		if err != nil {
			t.Fatal(err)
		}
		if !box.NearlyEqual(Letter, 0.01) {
			t.Errorf("page %s: wrong page size %s", p.Ref, box)
		}
		gotRefs = append(gotRefs, p.Ref)
		gotText = append(gotText, readGlyphText(t, r, p))
	}
	if d := cmp.Diff(refs, gotRefs[:3]); d != "" {
		t.Errorf("page references (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"one", "two", "three", ""}, gotText); d != "" {
		t.Errorf("page text (-want +got):\n%s", d)
	}

	// all pages share one font dictionary
	fonts := map[pdf.Object]bool{}
	for p, err := range pagetree.All(r, catalog.Pages) {
		if err != nil {
			t.Fatal(err)
		}
		res, _ := pdf.GetDict(r, p.Dict["Resources"])
		fontDict, _ := pdf.GetDict(r, res["Font"])
		for _, ref := range fontDict {
			fonts[ref] = true
		}
	}
	if len(fonts) != 1 {
		t.Errorf("expected one embedded font, got %d", len(fonts))
	}
}

func BenchmarkMultiPage(b *testing.B) {
	F := standard.Courier.Must()
	buf := &bytes.Buffer{}
	for b.Loop() {
		buf.Reset()
		doc, err := WriteMultiPage(buf, A5, pdf.V1_7, nil)
		if err != nil {
			b.Fatal(err)
		}
		for range 3 {
			page := doc.AddPage()
			page.TextBegin()
			page.TextSetFont(F, 10)
			page.TextFirstLine(10, 10)
			page.TextShow("benchmark")
			page.TextEnd()
			err = page.Close()
			if err != nil {
				b.Fatal(err)
			}
		}
		err = doc.Close()
		if err != nil {
			b.Fatal(err)
		}
	}
}
