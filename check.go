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

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdffixture/extract"
)

// DefaultTolerance is the default tolerance, in points, used when
// comparing extracted positions and sizes with the expected values.
const DefaultTolerance = 0.5

// CheckWords compares the words found by text extraction with the expected
// words.  Positions, widths and heights must agree within tol points,
// the texts must agree exactly.  The returned error lists all differences,
// or is nil if the words agree.
func CheckWords(got, want []extract.Word, tol float64) error {
	var errs []error
	if len(got) != len(want) {
		errs = append(errs, fmt.Errorf("found %d words, expected %d", len(got), len(want)))
	}
	for i := range min(len(got), len(want)) {
		g, w := got[i], want[i]
		if g.Text != w.Text {
			errs = append(errs, fmt.Errorf("word %d: text %q, expected %q", i, g.Text, w.Text))
			continue
		}
		check := func(what string, a, b float64) {
			if !(math.Abs(a-b) <= tol) {
				errs = append(errs, fmt.Errorf("word %d (%q): %s %g, expected %g",
					i, w.Text, what, a, b))
			}
		}
		check("x", g.X, w.X)
		check("y", g.Y, w.Y)
		check("width", g.Width, w.Width)
		check("height", g.Height, w.Height)
	}
	return errors.Join(errs...)
}

// CheckTOC compares an extracted outline with the ground truth from
// [OutlineDocument.Walk].
func CheckTOC(got []extract.Entry, want []TOCEntry) error {
	var errs []error
	if len(got) != len(want) {
		errs = append(errs, fmt.Errorf("found %d outline entries, expected %d", len(got), len(want)))
	}
	for i := range min(len(got), len(want)) {
		g, w := got[i], want[i]
		if g.Title != w.Title || g.Page != w.Page || g.Level != w.Depth {
			errs = append(errs, fmt.Errorf("entry %d: got %q (page %d, level %d), expected %q (page %d, level %d)",
				i, g.Title, g.Page, g.Level, w.Title, w.Page, w.Depth))
		}
	}
	return errors.Join(errs...)
}
