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

package pdf

import (
	"fmt"
	"io"
	"math"
)

// Rectangle represents a PDF rectangle.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// GetRectangle reads a rectangle from a PDF file.  The corners may be
// given in any order; the result is normalised so that LLx <= URx and
// LLy <= URy.  If obj is null, nil is returned.
func GetRectangle(r Getter, obj Object) (*Rectangle, error) {
	a, err := GetArray(r, obj)
	if a == nil || err != nil {
		return nil, err
	}
	if len(a) != 4 {
		return nil, &MalformedFileError{
			Err: fmt.Errorf("rectangle with %d coordinates", len(a)),
		}
	}

	var c [4]float64
	for i := range a {
		x, err := GetNumber(r, a[i])
		if err != nil {
			return nil, err
		}
		c[i] = float64(x)
	}
	return &Rectangle{
		LLx: min(c[0], c[2]),
		LLy: min(c[1], c[3]),
		URx: max(c[0], c[2]),
		URy: max(c[1], c[3]),
	}, nil
}

func (rect *Rectangle) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", rect.LLx, rect.LLy, rect.URx, rect.URy)
}

// PDF implements the [Object] interface.
// Coordinates are rounded to two decimal places.
func (rect *Rectangle) PDF(w io.Writer) error {
	round := func(x float64) Object {
		return Number(math.Round(x*100) / 100)
	}
	return Array{round(rect.LLx), round(rect.LLy), round(rect.URx), round(rect.URy)}.PDF(w)
}

// Dx returns the width of the rectangle.
func (rect *Rectangle) Dx() float64 {
	return rect.URx - rect.LLx
}

// Dy returns the height of the rectangle.
func (rect *Rectangle) Dy() float64 {
	return rect.URy - rect.LLy
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the boundary are considered to be inside.
func (rect *Rectangle) Contains(x, y float64) bool {
	return x >= rect.LLx && x <= rect.URx && y >= rect.LLy && y <= rect.URy
}

// NearlyEqual reports whether the corner coordinates of two rectangles
// differ by less than eps.
func (rect *Rectangle) NearlyEqual(other *Rectangle, eps float64) bool {
	return math.Abs(rect.LLx-other.LLx) < eps &&
		math.Abs(rect.LLy-other.LLy) < eps &&
		math.Abs(rect.URx-other.URx) < eps &&
		math.Abs(rect.URy-other.URy) < eps
}
