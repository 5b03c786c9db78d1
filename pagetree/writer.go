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

// Package pagetree implements PDF page trees.
package pagetree

import (
	"errors"
	"maps"

	"seehuhn.de/go/pdffixture/pdf"
)

// Writer writes a page tree to a PDF file.
//
// Pages are collected in memory and the tree is written when the Writer is
// closed.  The resulting tree is balanced, with at most maxDegree children
// per node.
type Writer struct {
	Out *pdf.Writer

	// RootAttributes are inheritable page attributes (for example
	// /MediaBox) which are stored in the root node of the tree.
	RootAttributes pdf.Dict

	pages    []*node
	isClosed bool
}

type node struct {
	ref       pdf.Reference
	dict      pdf.Dict
	pageCount int
}

// NewWriter creates a new page tree which adds pages to the PDF document w.
func NewWriter(w *pdf.Writer) *Writer {
	return &Writer{Out: w}
}

// AppendPage adds a new page to the page tree and returns the reference
// which will be used for the page dictionary.  The /Type and /Parent
// entries are set automatically.
func (w *Writer) AppendPage(dict pdf.Dict) (pdf.Reference, error) {
	ref := w.Out.Alloc()
	err := w.AppendPageRef(ref, dict)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// AppendPageRef adds a new page to the page tree, using the given reference
// for the page dictionary.
func (w *Writer) AppendPageRef(ref pdf.Reference, dict pdf.Dict) error {
	if w.isClosed {
		return errPageTreeClosed
	}
	dict = maps.Clone(dict)
	if dict == nil {
		dict = pdf.Dict{}
	}
	dict["Type"] = pdf.Name("Page")
	w.pages = append(w.pages, &node{ref: ref, dict: dict, pageCount: 1})
	return nil
}

// NumPages returns the number of pages added so far.
func (w *Writer) NumPages() int {
	return len(w.pages)
}

// Close writes the complete page tree to the PDF file and returns a
// reference to the root node.  A page tree without pages consists of a
// single, empty /Pages node.
func (w *Writer) Close() (pdf.Reference, error) {
	if w.isClosed {
		return 0, errPageTreeClosed
	}
	w.isClosed = true

	// All page dictionaries are written before the intermediate nodes, so
	// that the object order follows the page order.
	level := w.pages
	var internal []*node
	for len(level) > 1 || len(internal) == 0 {
		var next []*node
		for start := 0; start < len(level) || start == 0; start += maxDegree {
			end := min(start+maxDegree, len(level))
			parent := &node{ref: w.Out.Alloc()}
			kids := pdf.Array{}
			for _, child := range level[start:end] {
				child.dict["Parent"] = parent.ref
				kids = append(kids, child.ref)
				parent.pageCount += child.pageCount
			}
			parent.dict = pdf.Dict{
				"Type":  pdf.Name("Pages"),
				"Kids":  kids,
				"Count": pdf.Integer(parent.pageCount),
			}
			next = append(next, parent)
			if end == len(level) {
				break
			}
		}
		internal = append(internal, next...)
		level = next
	}
	root := level[0]
	for key, val := range w.RootAttributes {
		root.dict[key] = val
	}

	for _, p := range w.pages {
		err := w.Out.Put(p.ref, p.dict)
		if err != nil {
			return 0, pdf.Wrap(err, "page tree")
		}
	}
	for i := len(internal) - 1; i >= 0; i-- {
		err := w.Out.Put(internal[i].ref, internal[i].dict)
		if err != nil {
			return 0, pdf.Wrap(err, "page tree")
		}
	}
	return root.ref, nil
}

const maxDegree = 16

var errPageTreeClosed = errors.New("page tree is closed")
