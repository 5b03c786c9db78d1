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

// Package pdf implements the low-level object layer used to write and read
// the fixture files.
//
// PDF files are treated as containers holding a sequence of objects
// (typically dictionaries and streams).  Objects are written sequentially,
// but can be read in any order.
//
// A [Writer] is used to write objects to a new PDF file:
//
//	w, err := pdf.Create("out.pdf", pdf.V1_7, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	... add objects using w.Put() and w.OpenStream() ...
//
//	w.Catalog.Pages = pageTreeRoot
//	err = w.Close()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A [Reader] is used to read the objects back:
//
//	r, err := pdf.Open("out.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	catalog, err := r.Catalog()
//
// The following types implement the native PDF object types:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	*Stream
//	String
//
// The PDF null object is represented by nil.  Output of the [Writer] is
// deterministic, which makes the package suitable for generating test
// fixtures which are compared byte for byte.
package pdf
