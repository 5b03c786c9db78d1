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
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/pdffixture/document"
	"seehuhn.de/go/pdffixture/extract"
	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/outline"
	"seehuhn.de/go/pdffixture/pdf"
)

// Layout of the pages created by [OutlineDocument.CreatePageWithHeading].
const (
	HeadingFont     = standard.Helvetica
	HeadingSize     = 16.0
	HeadingX        = 100.0
	HeadingY        = 700.0
	BodySize        = 12.0
	BodyY           = 650.0
	BodyLineSpacing = 20.0
)

// OutlineDocument is a multi-page document with a heading on every page and
// a document outline whose entries point at the pages.
//
// Pages and outline entries are referred to by handles.  A handle is only
// valid for the document which created it.
type OutlineDocument struct {
	// Opt, if not nil, controls details of the PDF output.
	Opt *Options

	pageSize *pdf.Rectangle
	pages    []headingPage
	entries  []outlineEntry
	written  bool
}

type headingPage struct {
	items []TextItem
}

// outlineEntry is stored in a flat list.  The parent index is -1 for
// top-level entries.  Since parents are created before their children,
// parent < own index always holds.
type outlineEntry struct {
	title  string
	page   int
	parent int
}

// PageHandle refers to a page of an [OutlineDocument].
type PageHandle struct {
	doc   *OutlineDocument
	index int
}

// Index returns the 0-based page number.
func (h PageHandle) Index() int {
	return h.index
}

// EntryHandle refers to an outline entry of an [OutlineDocument].
// The zero value is [NoParent].
type EntryHandle struct {
	doc   *OutlineDocument
	index int
}

// NoParent is used as the parent of top-level outline entries.
var NoParent EntryHandle

// TOCEntry is an outline entry, as returned by [OutlineDocument.Walk].
type TOCEntry struct {
	Title string

	// Page is the 0-based number of the target page.
	Page int

	// Depth is 0 for top-level entries.
	Depth int
}

// NewOutlineDocument returns an empty document.  All pages have the given
// size.  If pageSize is nil, [DefaultPageSize] is used.
func NewOutlineDocument(pageSize *pdf.Rectangle) *OutlineDocument {
	if pageSize == nil {
		pageSize = DefaultPageSize
	}
	return &OutlineDocument{pageSize: pageSize}
}

// NumPages returns the number of pages in the document.
func (doc *OutlineDocument) NumPages() int {
	return len(doc.pages)
}

// CreatePageWithHeading appends a new page to the document.  A non-empty
// heading is shown in 16pt Helvetica at (100, 700).  The body is shown in
// 12pt Helvetica, starting at (100, 650), and every further line of the
// body is placed 20pt below the previous one.
func (doc *OutlineDocument) CreatePageWithHeading(title, body string) (PageHandle, error) {
	if doc.written {
		return PageHandle{}, ErrSerialized
	}
	if err := checkPageSize(doc.pageSize); err != nil {
		return PageHandle{}, err
	}

	var items []TextItem
	if title != "" {
		items = append(items, TextItem{
			Text: title,
			X:    HeadingX,
			Y:    HeadingY,
			Font: HeadingFont,
			Size: HeadingSize,
		})
	}
	if body != "" {
		for i, line := range strings.Split(body, "\n") {
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				continue
			}
			items = append(items, TextItem{
				Text: line,
				X:    HeadingX,
				Y:    BodyY - float64(i)*BodyLineSpacing,
				Font: HeadingFont,
				Size: BodySize,
			})
		}
	}

	// reuse the checks of the text page generator
	_, err := CreateTextPage(items, doc.pageSize)
	if err != nil {
		return PageHandle{}, fmt.Errorf("page %d: %w", len(doc.pages), err)
	}

	doc.pages = append(doc.pages, headingPage{items: items})
	return PageHandle{doc: doc, index: len(doc.pages) - 1}, nil
}

// AddOutlineEntry adds an entry to the document outline.  The entry
// becomes the last child of parent, or the last top-level entry if parent
// is [NoParent].
func (doc *OutlineDocument) AddOutlineEntry(title string, target PageHandle, parent EntryHandle) (EntryHandle, error) {
	if doc.written {
		return EntryHandle{}, ErrSerialized
	}
	if target.doc != doc || target.index < 0 || target.index >= len(doc.pages) {
		return EntryHandle{}, fmt.Errorf("outline entry %q: %w", title, ErrDanglingPageReference)
	}

	parentIdx := -1
	if parent != NoParent {
		if parent.doc != doc || parent.index < 0 || parent.index >= len(doc.entries) {
			return EntryHandle{}, fmt.Errorf("outline entry %q: %w", title, ErrDanglingParentReference)
		}
		parentIdx = parent.index
	}

	doc.entries = append(doc.entries, outlineEntry{
		title:  title,
		page:   target.index,
		parent: parentIdx,
	})
	return EntryHandle{doc: doc, index: len(doc.entries) - 1}, nil
}

// Walk returns the outline entries in depth-first order, with children in
// the order they were added.
func (doc *OutlineDocument) Walk() []TOCEntry {
	children := doc.children()
	res := make([]TOCEntry, 0, len(doc.entries))
	var walk func(parent, depth int)
	walk = func(parent, depth int) {
		for _, idx := range children[parent] {
			e := doc.entries[idx]
			res = append(res, TOCEntry{Title: e.title, Page: e.page, Depth: depth})
			walk(idx, depth+1)
		}
	}
	walk(-1, 0)
	return res
}

// children maps each entry index to the indices of its children.
// Top-level entries are listed under -1.
func (doc *OutlineDocument) children() map[int][]int {
	res := make(map[int][]int)
	for i, e := range doc.entries {
		res[e.parent] = append(res[e.parent], i)
	}
	return res
}

// ExpectedWords returns the words which text extraction should find on
// the given page.
func (doc *OutlineDocument) ExpectedWords(page PageHandle) ([]extract.Word, error) {
	if page.doc != doc || page.index < 0 || page.index >= len(doc.pages) {
		return nil, ErrDanglingPageReference
	}
	tp, err := CreateTextPage(doc.pages[page.index].items, doc.pageSize)
	if err != nil {
		return nil, err
	}
	words := tp.Expected()
	for i := range words {
		words[i].Page = page.index
	}
	return words, nil
}

// WriteTo writes the PDF file to w.  After the document has been written,
// no more pages or outline entries can be added.
// This implements the [io.WriterTo] interface.
func (doc *OutlineDocument) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	err := doc.encode(buf)
	if err != nil {
		return 0, err
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, encodingError("write", err)
	}
	return n, nil
}

// WriteFile writes the PDF file to the named file.  If an error occurs,
// no file is created.
func (doc *OutlineDocument) WriteFile(name string) error {
	return writeFile(name, func(buf *bytes.Buffer) error {
		return doc.encode(buf)
	})
}

func (doc *OutlineDocument) encode(w io.Writer) error {
	if err := checkPageSize(doc.pageSize); err != nil {
		return err
	}
	out, err := document.WriteMultiPage(w, doc.pageSize, doc.Opt.version(), doc.Opt.writerOptions())
	if err != nil {
		return encodingError("create document", err)
	}
	err = doc.Opt.addMetadata(out.RM)
	if err != nil {
		return encodingError("metadata", err)
	}

	F, err := HeadingFont.New()
	if err != nil {
		return encodingError("load font", err)
	}
	refs := make([]pdf.Reference, len(doc.pages))
	for i, p := range doc.pages {
		page := out.AddPage()
		for _, item := range p.items {
			page.TextBegin()
			page.TextSetFont(F, item.Size)
			page.TextFirstLine(item.X, item.Y)
			page.TextShow(item.Text)
			page.TextEnd()
		}
		err = page.Close()
		if err != nil {
			return encodingError(fmt.Sprintf("write page %d", i), err)
		}
		refs[i] = page.Ref
	}

	o := doc.buildOutline(refs)
	err = o.Write(out.RM)
	if err != nil {
		return encodingError("write outline", err)
	}
	if len(o.Items) > 0 {
		out.Out.Catalog.PageMode = "UseOutlines"
	}

	err = out.Close()
	if err != nil {
		return encodingError("close document", err)
	}
	doc.written = true
	return nil
}

// buildOutline converts the flat entry list into an outline tree.
func (doc *OutlineDocument) buildOutline(pageRefs []pdf.Reference) *outline.Outline {
	o := &outline.Outline{}
	items := make([]*outline.Item, len(doc.entries))
	for i, e := range doc.entries {
		var item *outline.Item
		if e.parent < 0 {
			item = o.AddItem(e.title)
		} else {
			item = items[e.parent].AddChild(e.title)
		}
		item.Destination = outline.FitPage(pageRefs[e.page])
		items[i] = item
	}
	for _, item := range items {
		item.Open = len(item.Children) > 0
	}
	return o
}
