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

// Package outline reads and writes document outlines (bookmarks).
//
// The outline is a tree of items.  Each item has a title and usually a
// destination, which names the page shown when the item is activated.
package outline

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdffixture/pdf"
)

// PDF 2.0 sections: 12.3.3

// Outline is the root of a document outline.
type Outline struct {
	Items []*Item
}

// Item is a node of the outline tree, other than the root.
type Item struct {
	Title string

	// Destination is the view shown when the item is activated.
	// Items without destination are allowed.
	Destination *Destination

	// Color (PDF 1.4) is the RGB color of the title text.  Components
	// are in the range 0 to 1.  The zero value gives black text.
	Color [3]float64

	// Bold and Italic (PDF 1.4) select the style of the title text.
	Bold, Italic bool

	// Open is true if the children of the item are initially shown.
	Open bool

	Children []*Item
}

// AddItem adds a new top-level item at the end of the outline.
func (o *Outline) AddItem(title string) *Item {
	it := &Item{Title: title}
	o.Items = append(o.Items, it)
	return it
}

// AddChild adds a new child item after the existing children.
func (item *Item) AddChild(title string) *Item {
	it := &Item{Title: title}
	item.Children = append(item.Children, it)
	return it
}

// maxItems limits the size of outlines read from files.
const maxItems = 65536

// Read reads the document outline of a PDF file.
// If the file has no outline, nil is returned.
func Read(r *pdf.Reader) (*Outline, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	if catalog.Outlines == 0 {
		return nil, nil
	}

	rootDict, err := pdf.GetDictTyped(r, catalog.Outlines, "Outlines")
	if err != nil {
		return nil, pdf.Wrap(err, "outline root")
	}

	rd := &outlineReader{
		r:       r,
		visited: map[pdf.Reference]bool{catalog.Outlines: true},
	}
	items, err := rd.siblings(rootDict["First"])
	if err != nil {
		return nil, err
	}
	return &Outline{Items: items}, nil
}

type outlineReader struct {
	r       pdf.Getter
	visited map[pdf.Reference]bool
}

// siblings reads a linked list of items, following the /Next entries.
func (rd *outlineReader) siblings(first pdf.Object) ([]*Item, error) {
	var items []*Item
	next, _ := first.(pdf.Reference)
	for next != 0 {
		if rd.visited[next] {
			return nil, pdf.Errorf("loop in outline at %s", next)
		}
		rd.visited[next] = true
		if len(rd.visited) > maxItems {
			return nil, errors.New("outline has too many items")
		}

		dict, err := pdf.GetDict(rd.r, next)
		if err != nil {
			return nil, err
		} else if dict == nil {
			return nil, pdf.Errorf("missing outline item %s", next)
		}
		it, err := rd.decode(dict)
		if err != nil {
			return nil, pdf.Wrap(err, "outline item "+next.String())
		}
		items = append(items, it)

		next, _ = dict["Next"].(pdf.Reference)
	}
	return items, nil
}

func (rd *outlineReader) decode(dict pdf.Dict) (*Item, error) {
	title, err := pdf.GetString(rd.r, dict["Title"])
	if err != nil {
		return nil, pdf.Wrap(err, "/Title")
	}
	it := &Item{Title: title.AsTextString()}

	if dict["Dest"] != nil {
		it.Destination, err = DecodeDestination(rd.r, dict["Dest"])
		if err != nil {
			return nil, pdf.Wrap(err, "/Dest")
		}
	}

	if c, _ := pdf.GetArray(rd.r, dict["C"]); len(c) == 3 {
		for i := range c {
			x, _ := pdf.GetNumber(rd.r, c[i])
			it.Color[i] = float64(x)
		}
	}
	flags, _ := pdf.GetInteger(rd.r, dict["F"])
	it.Italic = flags&1 != 0
	it.Bold = flags&2 != 0

	count, _ := pdf.GetInteger(rd.r, dict["Count"])
	it.Open = count > 0

	it.Children, err = rd.siblings(dict["First"])
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Write adds the outline to a PDF file and records it in the document
// catalog.  Nothing is written for an outline without items.
//
// Objects are written in tree order, every item before its children.
func (o *Outline) Write(rm *pdf.ResourceManager) error {
	if o == nil || len(o.Items) == 0 {
		return nil
	}
	out := rm.Out

	// Allocate all references first, since siblings refer to each other.
	refs := map[*Item]pdf.Reference{}
	var alloc func(items []*Item)
	alloc = func(items []*Item) {
		for _, it := range items {
			refs[it] = out.Alloc()
			alloc(it.Children)
		}
	}
	rootRef := out.Alloc()
	alloc(o.Items)

	root := pdf.Dict{
		"Type":  pdf.Name("Outlines"),
		"First": refs[o.Items[0]],
		"Last":  refs[o.Items[len(o.Items)-1]],
	}
	visible := 0
	for _, it := range o.Items {
		visible++
		if it.Open {
			visible += it.openDescendants()
		}
	}
	root["Count"] = pdf.Integer(visible)
	err := out.Put(rootRef, root)
	if err != nil {
		return err
	}

	var put func(parent pdf.Reference, items []*Item) error
	put = func(parent pdf.Reference, items []*Item) error {
		for i, it := range items {
			dict, err := it.asDict(out)
			if err != nil {
				return fmt.Errorf("outline item %q: %w", it.Title, err)
			}
			dict["Parent"] = parent
			if i > 0 {
				dict["Prev"] = refs[items[i-1]]
			}
			if i+1 < len(items) {
				dict["Next"] = refs[items[i+1]]
			}
			if n := len(it.Children); n > 0 {
				dict["First"] = refs[it.Children[0]]
				dict["Last"] = refs[it.Children[n-1]]
				// negative for closed items
				count := it.openDescendants()
				if !it.Open {
					count = -count
				}
				dict["Count"] = pdf.Integer(count)
			}

			ref := refs[it]
			err = out.Put(ref, dict)
			if err != nil {
				return err
			}
			err = put(ref, it.Children)
			if err != nil {
				return err
			}
		}
		return nil
	}
	err = put(rootRef, o.Items)
	if err != nil {
		return err
	}

	out.Catalog.Outlines = rootRef
	return nil
}

// openDescendants returns the number of descendants which are visible
// while the item is open.
func (item *Item) openDescendants() int {
	n := 0
	for _, child := range item.Children {
		n++
		if child.Open {
			n += child.openDescendants()
		}
	}
	return n
}

// asDict returns the entries of the item dictionary which do not refer to
// other items.
func (item *Item) asDict(out *pdf.Writer) (pdf.Dict, error) {
	dict := pdf.Dict{
		"Title": pdf.TextString(item.Title),
	}

	if item.Destination != nil {
		dest, err := item.Destination.Encode()
		if err != nil {
			return nil, err
		}
		dict["Dest"] = dest
	}

	if item.Color != [3]float64{} {
		if err := pdf.CheckVersion(out, "outline item color", pdf.V1_4); err != nil {
			return nil, err
		}
		var c pdf.Array
		for _, x := range item.Color {
			if !(x >= 0 && x <= 1) {
				return nil, fmt.Errorf("color component %g not in [0, 1]", x)
			}
			c = append(c, pdf.Number(x))
		}
		dict["C"] = c
	}

	var flags pdf.Integer
	if item.Italic {
		flags |= 1
	}
	if item.Bold {
		flags |= 2
	}
	if flags != 0 {
		if err := pdf.CheckVersion(out, "outline item style", pdf.V1_4); err != nil {
			return nil, err
		}
		dict["F"] = flags
	}
	return dict, nil
}
