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

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/pdffixture/document"
	"seehuhn.de/go/pdffixture/extract"
	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/metadata"
	"seehuhn.de/go/pdffixture/outline"
	"seehuhn.de/go/pdffixture/pdf"
)

func openPDF(t *testing.T, data []byte) *pdf.Reader {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSimpleFixture(t *testing.T) {
	tp, err := SimpleFixture(nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	n, err := tp.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}

	words, err := extract.Words(openPDF(t, buf.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckWords(words, tp.Expected(), DefaultTolerance); err != nil {
		t.Error(err)
	}

	// the ground truth itself
	want := []extract.Word{
		{Text: "Hello", X: 100, Y: 592, Width: 27.3, Height: 12},
		{Text: "World", X: 160, Y: 592, Width: 31.3, Height: 12},
	}
	if err := CheckWords(words, want, 0.1); err != nil {
		t.Error(err)
	}
}

func TestTOCFixture(t *testing.T) {
	doc, err := TOCFixture(nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	_, err = doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}

	expected := []TOCEntry{
		{Title: "Chapter 1", Page: 0, Depth: 0},
		{Title: "Chapter 2", Page: 1, Depth: 0},
		{Title: "Chapter 3", Page: 2, Depth: 0},
		{Title: "Section 3.1", Page: 2, Depth: 1},
		{Title: "Chapter 4", Page: 3, Depth: 0},
	}
	if d := cmp.Diff(expected, doc.Walk()); d != "" {
		t.Errorf("Walk (-want +got):\n%s", d)
	}

	r := openPDF(t, buf.Bytes())
	toc, err := extract.TOC(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckTOC(toc, doc.Walk()); err != nil {
		t.Error(err)
	}

	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if catalog.PageMode != "UseOutlines" {
		t.Errorf("wrong page mode %q", catalog.PageMode)
	}

	// Chapter 3 is open, so all five entries are visible.
	root, err := pdf.GetDict(r, catalog.Outlines)
	if err != nil {
		t.Fatal(err)
	}
	if root["Count"] != pdf.Integer(5) {
		t.Errorf("root /Count = %v, expected 5", root["Count"])
	}
	tree, err := outline.Read(r)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range tree.Items {
		if open := len(item.Children) > 0; item.Open != open {
			t.Errorf("%s: open = %t", item.Title, item.Open)
		}
	}

	// page 3 carries the heading and two body lines
	words, err := extract.Words(r, 2)
	if err != nil {
		t.Fatal(err)
	}
	want, err := doc.ExpectedWords(PageHandle{doc: doc, index: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckWords(words, want, DefaultTolerance); err != nil {
		t.Error(err)
	}
	if len(words) < 3 || words[0].Text != "Chapter" || words[0].Height != 16 {
		t.Errorf("unexpected heading words %v", words)
	}
	last := words[len(words)-1]
	if last.Text != "Collection" || last.Y != 630 {
		t.Errorf("unexpected last word %+v", last)
	}
}

func TestDeterministic(t *testing.T) {
	opt := &Options{Title: "Déjà vu"}
	var out [2][]byte
	for i := range out {
		doc, err := TOCFixture(opt)
		if err != nil {
			t.Fatal(err)
		}
		buf := &bytes.Buffer{}
		_, err = doc.WriteTo(buf)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = buf.Bytes()
	}
	if !bytes.Equal(out[0], out[1]) {
		t.Error("output differs between runs")
	}
}

func TestPageEdges(t *testing.T) {
	box := &pdf.Rectangle{URx: 200, URy: 100}
	type testCase struct {
		x, y float64
		ok   bool
	}
	cases := []testCase{
		{0, 0, true},
		{200, 100, true},
		{200, 0, true},
		{0, 100, true},
		{201, 50, false},
		{100, 101, false},
		{-1, 50, false},
		{100, -1, false},
		{math.NaN(), 50, false},
		{math.Inf(1), 50, false},
	}
	for _, c := range cases {
		items := []TextItem{{Text: "x", X: c.x, Y: c.y, Font: standard.Courier, Size: 10}}
		_, err := CreateTextPage(items, box)
		if c.ok && err != nil {
			t.Errorf("(%g, %g): unexpected error %v", c.x, c.y, err)
		} else if !c.ok && !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("(%g, %g): expected ErrInvalidGeometry, got %v", c.x, c.y, err)
		}
	}
}

func TestTextPageErrors(t *testing.T) {
	type testCase struct {
		name     string
		item     TextItem
		pageSize *pdf.Rectangle
		want     error
	}
	good := TextItem{Text: "a", X: 10, Y: 10, Font: standard.Helvetica, Size: 10}
	with := func(f func(*TextItem)) TextItem {
		item := good
		f(&item)
		return item
	}
	cases := []testCase{
		{"zero size", with(func(i *TextItem) { i.Size = 0 }), nil, ErrInvalidGeometry},
		{"negative size", with(func(i *TextItem) { i.Size = -12 }), nil, ErrInvalidGeometry},
		{"infinite size", with(func(i *TextItem) { i.Size = math.Inf(1) }), nil, ErrInvalidGeometry},
		{"NaN size", with(func(i *TextItem) { i.Size = math.NaN() }), nil, ErrInvalidGeometry},
		{"empty text", with(func(i *TextItem) { i.Text = "" }), nil, ErrInvalidGeometry},
		{"empty page", good, &pdf.Rectangle{URx: 100}, ErrInvalidGeometry},
		{"unknown font", with(func(i *TextItem) { i.Font = "Comic-Sans" }), nil, ErrUnsupportedFont},
		{"no metrics", with(func(i *TextItem) { i.Font = standard.Symbol }), nil, ErrUnsupportedFont},
		{"unencodable", with(func(i *TextItem) { i.Text = "日本語" }), nil, ErrUnsupportedFont},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := CreateTextPage([]TextItem{c.item}, c.pageSize)
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestExpectedSplitsWords(t *testing.T) {
	tp, err := CreateTextPage([]TextItem{
		{Text: "two words", X: 10, Y: 20, Font: standard.Courier, Size: 10},
	}, document.A5)
	if err != nil {
		t.Fatal(err)
	}
	want := []extract.Word{
		{Text: "two", X: 10, Y: 20, Width: 18, Height: 10, Font: standard.Courier, FontSize: 10},
		{Text: "words", X: 34, Y: 20, Width: 30, Height: 10, Font: standard.Courier, FontSize: 10},
	}
	if d := cmp.Diff(want, tp.Expected(), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("expected words (-want +got):\n%s", d)
	}

	buf := &bytes.Buffer{}
	_, err = tp.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	words, err := extract.Words(openPDF(t, buf.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckWords(words, want, 1e-6); err != nil {
		t.Error(err)
	}
}

func TestBodyLineEndings(t *testing.T) {
	doc := NewOutlineDocument(nil)
	p, err := doc.CreatePageWithHeading("", "first\r\nsecond\n\nfourth")
	if err != nil {
		t.Fatal(err)
	}
	words, err := doc.ExpectedWords(p)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	var ys []float64
	for _, w := range words {
		got = append(got, w.Text)
		ys = append(ys, w.Y)
	}
	if d := cmp.Diff([]string{"first", "second", "fourth"}, got); d != "" {
		t.Errorf("words (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{650, 630, 590}, ys); d != "" {
		t.Errorf("baselines (-want +got):\n%s", d)
	}
}

func TestOutlineErrors(t *testing.T) {
	doc := NewOutlineDocument(nil)
	other := NewOutlineDocument(nil)

	p, err := doc.CreatePageWithHeading("Page", "")
	if err != nil {
		t.Fatal(err)
	}
	q, err := other.CreatePageWithHeading("Other", "")
	if err != nil {
		t.Fatal(err)
	}
	otherEntry, err := other.AddOutlineEntry("other", q, NoParent)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := doc.AddOutlineEntry("x", q, NoParent); !errors.Is(err, ErrDanglingPageReference) {
		t.Errorf("foreign page: got %v", err)
	}
	if _, err := doc.AddOutlineEntry("x", PageHandle{}, NoParent); !errors.Is(err, ErrDanglingPageReference) {
		t.Errorf("zero page handle: got %v", err)
	}
	if _, err := doc.AddOutlineEntry("x", p, otherEntry); !errors.Is(err, ErrDanglingParentReference) {
		t.Errorf("foreign parent: got %v", err)
	}

	if _, err := doc.CreatePageWithHeading("日本", ""); !errors.Is(err, ErrUnsupportedFont) {
		t.Errorf("unencodable heading: got %v", err)
	}
	box := *document.A5
	box.URy = 600
	small := NewOutlineDocument(&box)
	if _, err := small.CreatePageWithHeading("Too high", ""); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("heading outside the page: got %v", err)
	}

	_, err = doc.AddOutlineEntry("ok", p, NoParent)
	if err != nil {
		t.Fatal(err)
	}
	_, err = doc.WriteTo(&bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.CreatePageWithHeading("late", ""); !errors.Is(err, ErrSerialized) {
		t.Errorf("page added after writing: got %v", err)
	}
	if _, err := doc.AddOutlineEntry("late", p, NoParent); !errors.Is(err, ErrSerialized) {
		t.Errorf("entry added after writing: got %v", err)
	}
}

func TestWalkOrder(t *testing.T) {
	doc := NewOutlineDocument(nil)
	var pages []PageHandle
	for range 3 {
		p, err := doc.CreatePageWithHeading("", "")
		if err != nil {
			t.Fatal(err)
		}
		pages = append(pages, p)
	}
	a, _ := doc.AddOutlineEntry("a", pages[0], NoParent)
	b, _ := doc.AddOutlineEntry("b", pages[1], NoParent)
	doc.AddOutlineEntry("a1", pages[0], a)
	b1, _ := doc.AddOutlineEntry("b1", pages[1], b)
	doc.AddOutlineEntry("a2", pages[2], a)
	doc.AddOutlineEntry("b1x", pages[2], b1)

	expected := []TOCEntry{
		{"a", 0, 0},
		{"a1", 0, 1},
		{"a2", 2, 1},
		{"b", 1, 0},
		{"b1", 1, 1},
		{"b1x", 2, 2},
	}
	if d := cmp.Diff(expected, doc.Walk()); d != "" {
		t.Errorf("Walk (-want +got):\n%s", d)
	}

	buf := &bytes.Buffer{}
	_, err := doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	toc, err := extract.TOC(openPDF(t, buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckTOC(toc, expected); err != nil {
		t.Error(err)
	}
}

func TestEmptyOutline(t *testing.T) {
	doc := NewOutlineDocument(nil)
	_, err := doc.CreatePageWithHeading("Only page", "some text")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	_, err = doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	r := openPDF(t, buf.Bytes())
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if catalog.Outlines != 0 {
		t.Error("empty outline was written")
	}
	toc, err := extract.TOC(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(toc) != 0 {
		t.Errorf("unexpected TOC %v", toc)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	tp, err := SimpleFixture(&Options{Title: "Simple", Version: pdf.V2_0})
	if err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(dir, "simple.pdf")
	err = tp.WriteFile(name)
	if err != nil {
		t.Fatal(err)
	}

	r, err := pdf.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Version != pdf.V2_0 {
		t.Errorf("wrong version %s", r.Version)
	}
	info, err := r.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Simple" || info.Producer != Producer {
		t.Errorf("wrong info dictionary %+v", info)
	}
	catalog, err := r.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	meta, err := metadata.Extract(r, catalog.Metadata)
	if err != nil {
		t.Fatal(err)
	}
	if meta == nil || meta.Title() != "Simple" {
		t.Errorf("wrong XMP metadata")
	}

	// a document without pages is valid
	doc := NewOutlineDocument(&pdf.Rectangle{URx: 100, URy: 100})
	if err := doc.WriteFile(filepath.Join(dir, "empty.pdf")); err != nil {
		t.Fatal(err)
	}

	// a failing document leaves no file behind
	doc = NewOutlineDocument(nil)
	doc.pageSize = &pdf.Rectangle{}
	bad2 := filepath.Join(dir, "bad2.pdf")
	if err := doc.WriteFile(bad2); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := os.Stat(bad2); !os.IsNotExist(err) {
		t.Error("partial file was written")
	}
}

func TestEncodingError(t *testing.T) {
	err := encodingError("test", errors.New("boom"))
	if !errors.Is(err, ErrEncodingFailure) {
		t.Error("EncodingError does not match ErrEncodingFailure")
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) || encErr.Op != "test" {
		t.Errorf("unexpected error %v", err)
	}
	if encodingError("test", nil) != nil {
		t.Error("nil error was wrapped")
	}

	tp, err := SimpleFixture(&Options{Version: pdf.Version(99)})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tp.WriteTo(&bytes.Buffer{})
	if !errors.Is(err, ErrEncodingFailure) {
		t.Errorf("invalid version: expected ErrEncodingFailure, got %v", err)
	}
}

func TestCheckWords(t *testing.T) {
	want := []extract.Word{{Text: "a", X: 10, Y: 10, Width: 5, Height: 10}}
	near := []extract.Word{{Text: "a", X: 10.4, Y: 9.6, Width: 5, Height: 10}}
	far := []extract.Word{{Text: "a", X: 10.6, Y: 10, Width: 5, Height: 10}}
	if err := CheckWords(near, want, DefaultTolerance); err != nil {
		t.Error(err)
	}
	if err := CheckWords(far, want, DefaultTolerance); err == nil {
		t.Error("position difference not detected")
	}
	if err := CheckWords(far, want, 1); err != nil {
		t.Errorf("larger tolerance: %v", err)
	}
	if err := CheckWords(nil, want, 1); err == nil {
		t.Error("missing word not detected")
	}
}
