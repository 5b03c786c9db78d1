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
	"seehuhn.de/go/pdffixture/outline"
	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

// Entry is an outline item, as returned by [TOC].
type Entry struct {
	Title string

	// Level is the nesting depth, starting at 0 for top-level items.
	Level int

	// Page is the 0-based number of the target page, or -1 if the item
	// has no destination inside the document.
	Page int
}

// TOC returns the document outline, flattened in depth-first order.
// Documents without an outline give an empty list.
func TOC(r *pdf.Reader) ([]Entry, error) {
	o, err := outline.Read(r)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return []Entry{}, nil
	}

	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	pages, err := pagetree.FindPages(r, catalog.Pages)
	if err != nil {
		return nil, err
	}
	pageNo := make(map[pdf.Reference]int, len(pages))
	for i, ref := range pages {
		pageNo[ref] = i
	}

	res := []Entry{}
	var walk func(items []*outline.Item, level int)
	walk = func(items []*outline.Item, level int) {
		for _, item := range items {
			e := Entry{Title: item.Title, Level: level, Page: -1}
			if item.Destination != nil {
				if no, ok := pageNo[item.Destination.Page]; ok {
					e.Page = no
				}
			}
			res = append(res, e)
			walk(item.Children, level+1)
		}
	}
	walk(o.Items, 0)
	return res, nil
}
