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
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdffixture/pdf"
)

func writeTree(t *testing.T, numPages int) ([]pdf.Reference, *pdf.Reader) {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}

	tree := NewWriter(w)
	tree.RootAttributes = pdf.Dict{
		"MediaBox": &pdf.Rectangle{URx: 612, URy: 792},
	}
	var refs []pdf.Reference
	for i := range numPages {
		ref, err := tree.AppendPage(pdf.Dict{
			"PieceNo": pdf.Integer(i),
		})
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, ref)
	}
	if tree.NumPages() != numPages {
		t.Errorf("NumPages() = %d", tree.NumPages())
	}
	w.Catalog.Pages, err = tree.Close()
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	return refs, r
}

func TestPageTree(t *testing.T) {
	for _, numPages := range []int{0, 1, 2, 16, 17, 256, 300} {
		t.Run(fmt.Sprintf("%d", numPages), func(t *testing.T) {
			refs, r := writeTree(t, numPages)
			catalog, err := r.Catalog()
			if err != nil {
				t.Fatal(err)
			}

			n, err := NumPages(r, catalog.Pages)
			if err != nil {
				t.Fatal(err)
			}
			if n != numPages {
				t.Errorf("NumPages = %d, want %d", n, numPages)
			}

			found, err := FindPages(r, catalog.Pages)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(refs, found); d != "" {
				t.Errorf("page order (-want +got):\n%s", d)
			}

			if numPages == 0 {
				return
			}
			last := numPages - 1
			page, err := GetPage(r, catalog.Pages, last)
			if err != nil {
				t.Fatal(err)
			}
			if page.Dict["PieceNo"] != pdf.Integer(last) {
				t.Errorf("wrong page %v", page.Dict["PieceNo"])
			}
			mediaBox, err := pdf.GetRectangle(r, page.Dict["MediaBox"])
			if err != nil {
				t.Fatal(err)
			}
			if mediaBox == nil || !mediaBox.NearlyEqual(&pdf.Rectangle{URx: 612, URy: 792}, 1e-6) {
				t.Errorf("MediaBox not inherited: %v", mediaBox)
			}

			_, err = GetPage(r, catalog.Pages, numPages)
			if err == nil {
				t.Error("missing page found")
			}
		})
	}
}

func TestClosedTree(t *testing.T) {
	w, err := pdf.NewWriter(&bytes.Buffer{}, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	tree := NewWriter(w)
	_, err = tree.Close()
	if err != nil {
		t.Fatal(err)
	}
	_, err = tree.AppendPage(nil)
	if err == nil {
		t.Error("page added to closed tree")
	}
}
