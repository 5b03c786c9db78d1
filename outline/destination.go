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

package outline

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdffixture/pdf"
)

// PDF 2.0 sections: 12.3.2.2

// DestinationType identifies the view used by a destination.
type DestinationType pdf.Name

// These are the destination types supported by this package.
const (
	Fit DestinationType = "Fit"
	XYZ DestinationType = "XYZ"
)

// Unset marks a coordinate of an XYZ destination which should retain its
// current value.  Use math.IsNaN() to test for this value.
var Unset = math.NaN()

// Destination is an explicit destination, naming a page and the view to
// use for the page.
type Destination struct {
	// Page is the page dictionary of the target page.
	Page pdf.Reference

	// Type is the view type.  The zero value is treated as [Fit].
	Type DestinationType

	// Left, Top and Zoom are used for [XYZ] destinations only.
	Left, Top, Zoom float64
}

// FitPage returns a destination which shows the whole page.
func FitPage(page pdf.Reference) *Destination {
	return &Destination{Page: page, Type: Fit}
}

// Encode returns the PDF array representing the destination.
func (d *Destination) Encode() (pdf.Array, error) {
	if d.Page == 0 {
		return nil, errors.New("destination without target page")
	}
	switch d.Type {
	case Fit, "":
		return pdf.Array{d.Page, pdf.Name(Fit)}, nil
	case XYZ:
		res := pdf.Array{d.Page, pdf.Name(XYZ)}
		for _, v := range []float64{d.Left, d.Top, d.Zoom} {
			switch {
			case math.IsNaN(v):
				res = append(res, nil)
			case math.IsInf(v, 0):
				return nil, fmt.Errorf("invalid XYZ destination coordinate %g", v)
			default:
				res = append(res, pdf.Number(v))
			}
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported destination type %q", d.Type)
	}
}

// DecodeDestination reads an explicit destination from a PDF file.
// Named destinations are not supported.
func DecodeDestination(r pdf.Getter, obj pdf.Object) (*Destination, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if len(a) < 2 {
		return nil, pdf.Errorf("malformed destination %s", pdf.Format(a))
	}
	page, ok := a[0].(pdf.Reference)
	if !ok {
		return nil, pdf.Errorf("destination does not refer to a page")
	}
	tp, err := pdf.GetName(r, a[1])
	if err != nil {
		return nil, err
	}

	d := &Destination{Page: page, Type: DestinationType(tp)}
	switch d.Type {
	case XYZ:
		vals := []*float64{&d.Left, &d.Top, &d.Zoom}
		for i, p := range vals {
			*p = Unset
			if 2+i >= len(a) || a[2+i] == nil {
				continue
			}
			x, err := pdf.GetNumber(r, a[2+i])
			if err != nil {
				return nil, err
			}
			*p = float64(x)
		}
	default:
		// Other fit types only differ in the view; the target page is
		// all that is kept.
		d.Type = Fit
	}
	return d, nil
}
