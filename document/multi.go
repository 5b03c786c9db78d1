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
	"fmt"
	"io"

	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

// MultiPage represents a PDF document with several pages.
// All pages share the same page size, which is stored in the root of the
// page tree.
type MultiPage struct {
	Out *pdf.Writer
	RM  *pdf.ResourceManager

	tree    *pagetree.Writer
	numOpen int
}

// CreateMultiPage creates a new PDF document with the given page size.
// The document is written to the file with the given name.
func CreateMultiPage(fileName string, pageSize *pdf.Rectangle, v pdf.Version, opt *pdf.WriterOptions) (*MultiPage, error) {
	out, err := pdf.Create(fileName, v, opt)
	if err != nil {
		return nil, err
	}
	return multiPage(out, pageSize), nil
}

// WriteMultiPage creates a new PDF document with the given page size.
// The document is written to the given writer.
func WriteMultiPage(w io.Writer, pageSize *pdf.Rectangle, v pdf.Version, opt *pdf.WriterOptions) (*MultiPage, error) {
	out, err := pdf.NewWriter(w, v, opt)
	if err != nil {
		return nil, err
	}
	return multiPage(out, pageSize), nil
}

func multiPage(out *pdf.Writer, pageSize *pdf.Rectangle) *MultiPage {
	tree := pagetree.NewWriter(out)
	if pageSize != nil {
		tree.RootAttributes = pdf.Dict{"MediaBox": pageSize}
	}
	return &MultiPage{
		Out:  out,
		RM:   pdf.NewResourceManager(out),
		tree: tree,
	}
}

// AddPage starts a new page.  The page is added to the document when
// its Close method is called.  Pages appear in the document in the order
// in which they are closed.
func (doc *MultiPage) AddPage() *Page {
	doc.numOpen++

	p := newPage(doc.Out, doc.RM, doc.tree)
	p.inherits = doc.tree.RootAttributes["MediaBox"] != nil
	p.closeFn = func(*Page) error {
		doc.numOpen--
		return nil
	}
	return p
}

// NumPages returns the number of pages which have been closed so far.
func (doc *MultiPage) NumPages() int {
	return doc.tree.NumPages()
}

// Close writes the page tree, the document catalog and the cross-reference
// table to the file.  All pages must be closed before the document is
// closed.
func (doc *MultiPage) Close() error {
	if doc.numOpen != 0 {
		return fmt.Errorf("%d pages still open", doc.numOpen)
	}

	ref, err := doc.tree.Close()
	if err != nil {
		return err
	}
	doc.Out.Catalog.Pages = ref

	err = doc.RM.Close()
	if err != nil {
		return err
	}

	return doc.Out.Close()
}
