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

package pagetree

import (
	"errors"
	"fmt"
	"iter"

	"seehuhn.de/go/pdffixture/pdf"
)

// inheritable lists the page attributes which can be inherited from
// ancestor nodes in the page tree.
var inheritable = []pdf.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// Page is a page dictionary, together with its reference.
// Inherited attributes are copied into Dict.
type Page struct {
	Ref  pdf.Reference
	Dict pdf.Dict
}

// NumPages returns the number of pages in the document.
func NumPages(r pdf.Getter, root pdf.Reference) (int, error) {
	dict, err := pdf.GetDictTyped(r, root, "Pages")
	if err != nil {
		return 0, pdf.Wrap(err, "page tree root")
	}
	count, err := pdf.GetInteger(r, dict["Count"])
	if err != nil {
		return 0, pdf.Wrap(err, "page tree root")
	}
	return int(count), nil
}

// All iterates over the pages of the document, in order.  If an error
// occurs, the iteration stops and the error is returned as the second value
// of the last pair.
func All(r pdf.Getter, root pdf.Reference) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		type frame struct {
			kids  pdf.Array
			attrs pdf.Dict
		}

		rootDict, err := pdf.GetDictTyped(r, root, "Pages")
		if err != nil {
			yield(nil, pdf.Wrap(err, "page tree root"))
			return
		}
		seen := map[pdf.Reference]bool{root: true}
		kids, err := pdf.GetArray(r, rootDict["Kids"])
		if err != nil {
			yield(nil, err)
			return
		}
		stack := []frame{{kids: kids, attrs: inherit(nil, rootDict)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.kids) == 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			kid := top.kids[0]
			top.kids = top.kids[1:]

			ref, ok := kid.(pdf.Reference)
			if !ok {
				yield(nil, errInvalidPageTree)
				return
			}
			if seen[ref] {
				yield(nil, &pdf.MalformedFileError{
					Err: fmt.Errorf("page tree node %s visited twice", ref),
				})
				return
			}
			seen[ref] = true

			dict, err := pdf.GetDict(r, ref)
			if err != nil {
				yield(nil, err)
				return
			}
			tp, err := pdf.GetName(r, dict["Type"])
			if err != nil {
				yield(nil, err)
				return
			}
			switch tp {
			case "Pages":
				kids, err := pdf.GetArray(r, dict["Kids"])
				if err != nil {
					yield(nil, err)
					return
				}
				stack = append(stack, frame{kids: kids, attrs: inherit(top.attrs, dict)})
			case "Page":
				page := &Page{Ref: ref, Dict: pdf.Dict{}}
				for key, val := range top.attrs {
					page.Dict[key] = val
				}
				for key, val := range dict {
					page.Dict[key] = val
				}
				if !yield(page, nil) {
					return
				}
			default:
				yield(nil, errInvalidPageTree)
				return
			}
		}
	}
}

// GetPage returns the page with the given index.  Pages are numbered
// starting from 0.
func GetPage(r pdf.Getter, root pdf.Reference, pageNo int) (*Page, error) {
	if pageNo < 0 {
		return nil, fmt.Errorf("page %d not found", pageNo)
	}
	i := 0
	for page, err := range All(r, root) {
		if err != nil {
			return nil, err
		}
		if i == pageNo {
			return page, nil
		}
		i++
	}
	return nil, fmt.Errorf("page %d not found", pageNo)
}

// FindPages returns the references of all page dictionaries, in order.
func FindPages(r pdf.Getter, root pdf.Reference) ([]pdf.Reference, error) {
	var res []pdf.Reference
	for page, err := range All(r, root) {
		if err != nil {
			return nil, err
		}
		res = append(res, page.Ref)
	}
	return res, nil
}

func inherit(parent, node pdf.Dict) pdf.Dict {
	res := pdf.Dict{}
	for key, val := range parent {
		res[key] = val
	}
	for _, key := range inheritable {
		if val, ok := node[key]; ok {
			res[key] = val
		}
	}
	return res
}

var errInvalidPageTree = &pdf.MalformedFileError{
	Err: errors.New("invalid page tree"),
}
