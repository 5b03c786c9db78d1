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
	"io"

	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

// CreateSinglePage creates a new PDF document consisting of a single page.
// The document is written to the file with the given name.
func CreateSinglePage(fileName string, pageSize *pdf.Rectangle, v pdf.Version, opt *pdf.WriterOptions) (*Page, error) {
	out, err := pdf.Create(fileName, v, opt)
	if err != nil {
		return nil, err
	}
	return singlePage(out, pageSize), nil
}

// WriteSinglePage creates a new PDF document consisting of a single page.
// The document is written to the given writer.
func WriteSinglePage(w io.Writer, pageSize *pdf.Rectangle, v pdf.Version, opt *pdf.WriterOptions) (*Page, error) {
	out, err := pdf.NewWriter(w, v, opt)
	if err != nil {
		return nil, err
	}
	return singlePage(out, pageSize), nil
}

func singlePage(w *pdf.Writer, pageSize *pdf.Rectangle) *Page {
	rm := pdf.NewResourceManager(w)
	tree := pagetree.NewWriter(w)

	p := newPage(w, rm, tree)
	p.MediaBox = pageSize
	p.closeFn = closeSinglePage
	return p
}

func closeSinglePage(p *Page) error {
	ref, err := p.tree.Close()
	if err != nil {
		return err
	}
	p.Out.Catalog.Pages = ref

	err = p.RM.Close()
	if err != nil {
		return err
	}

	return p.Out.Close()
}
