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

import "seehuhn.de/go/pdffixture/document"

// SimpleFixture returns the text page used for testing word positions:
// "Hello" at (100, 592) and "World" at (160, 592), both in 12pt Helvetica,
// on a US Letter page.
func SimpleFixture(opt *Options) (*TextPage, error) {
	items := []TextItem{
		{Text: "Hello", X: 100, Y: 592, Font: "Helvetica", Size: 12},
		{Text: "World", X: 160, Y: 592, Font: "Helvetica", Size: 12},
	}
	tp, err := CreateTextPage(items, document.Letter)
	if err != nil {
		return nil, err
	}
	tp.Opt = opt
	return tp, nil
}

// TOCFixture returns the document used for testing outline extraction.
// The document has four pages with headings "Chapter 1" to "Chapter 4".
// The outline has one top-level entry per page, and the entry for
// chapter 3 has a child "Section 3.1" which points at the third page.
func TOCFixture(opt *Options) (*OutlineDocument, error) {
	chapters := []struct {
		heading, body string
	}{
		{"Chapter 1", "This is the introduction chapter."},
		{"Chapter 2", "This is the background chapter."},
		{"Chapter 3", "This is the methods chapter.\nSection 3.1: Data Collection"},
		{"Chapter 4", "This is the results chapter."},
	}

	doc := NewOutlineDocument(document.Letter)
	doc.Opt = opt
	var pages []PageHandle
	for _, ch := range chapters {
		p, err := doc.CreatePageWithHeading(ch.heading, ch.body)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}

	var chapter3 EntryHandle
	for i, ch := range chapters {
		e, err := doc.AddOutlineEntry(ch.heading, pages[i], NoParent)
		if err != nil {
			return nil, err
		}
		if i == 2 {
			chapter3 = e
		}
	}
	_, err := doc.AddOutlineEntry("Section 3.1", pages[2], chapter3)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
