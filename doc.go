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

// Package pdffixture generates small, deterministic PDF files for testing
// text and outline extraction.
//
// Two generators are provided.  [CreateTextPage] places text items at
// exact coordinates on a single page, using one of the standard 14 fonts.
// [OutlineDocument] builds a multi-page document with a heading on every
// page and a document outline (bookmarks) pointing at the pages.
//
// Both generators know the ground truth for the files they produce:
// [TextPage.Expected] returns the words with their positions and sizes, and
// [OutlineDocument.Walk] returns the outline in depth-first order.  The
// package [seehuhn.de/go/pdffixture/extract] recovers the same information
// from a PDF file, so that the two can be compared.
//
// The output only depends on the construction parameters.  Generating a
// fixture twice gives identical bytes.
package pdffixture
