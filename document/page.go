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
	"errors"
	"maps"

	"seehuhn.de/go/pdffixture/graphics"
	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

// Page represents a page in a PDF document.
// The contents of the page can be drawn using the
// [graphics.ContentStreamBuilder] methods.
type Page struct {
	// ContentStreamBuilder is used to draw the contents of the page.
	*graphics.ContentStreamBuilder

	// RM is the resource manager for embedding resources.
	RM *pdf.ResourceManager

	// Out is the PDF file which contains this page.
	Out *pdf.Writer

	// MediaBox, if not nil, is stored in the page dictionary.
	// If MediaBox is nil, the page inherits the page size from
	// the page tree.
	MediaBox *pdf.Rectangle

	// PageDict holds additional entries for the page dictionary.
	// The values at the time when the page is closed will be written
	// to the PDF file.
	PageDict pdf.Dict

	// Ref, if non-zero, is the pdf reference for this page.
	// This can be set by the user, to use a specific reference.
	// If Ref is zero when the page is closed, a new reference will
	// be allocated.  After Close, Ref holds the reference of the
	// page dictionary.
	Ref pdf.Reference

	tree     *pagetree.Writer
	inherits bool
	closeFn  func(p *Page) error
}

func newPage(out *pdf.Writer, rm *pdf.ResourceManager, tree *pagetree.Writer) *Page {
	return &Page{
		ContentStreamBuilder: graphics.NewContentStreamBuilder(),
		RM:                   rm,
		Out:                  out,
		PageDict:             pdf.Dict{},
		tree:                 tree,
	}
}

// SetPageSize sets the media box of the page.
func (p *Page) SetPageSize(paper *pdf.Rectangle) {
	p.MediaBox = paper
}

// Close writes the page to the PDF file.
// The page contents can no longer be modified after this call.
func (p *Page) Close() error {
	if p.ContentStreamBuilder == nil {
		return errors.New("page already closed")
	}
	cs, err := p.ContentStreamBuilder.Build()
	if err != nil {
		return err
	}
	if p.MediaBox == nil && !p.inherits {
		return errors.New("page size not set")
	}

	contentRef := p.Out.Alloc()
	stm, err := p.Out.OpenStream(contentRef, nil, true)
	if err != nil {
		return err
	}
	_, err = cs.WriteTo(stm)
	if err != nil {
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	resources, err := cs.Resources.Embed(p.RM)
	if err != nil {
		return err
	}

	dict := maps.Clone(p.PageDict)
	if dict == nil {
		dict = pdf.Dict{}
	}
	dict["Contents"] = contentRef
	dict["Resources"] = resources
	if p.MediaBox != nil {
		dict["MediaBox"] = p.MediaBox
	}

	if p.Ref == 0 {
		p.Ref = p.Out.Alloc()
	}
	err = p.tree.AppendPageRef(p.Ref, dict)
	if err != nil {
		return err
	}

	// Disable the builder, but keep p.Ref accessible for inspection.
	p.ContentStreamBuilder = nil

	if p.closeFn != nil {
		return p.closeFn(p)
	}
	return nil
}

