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

package graphics

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffixture/font/standard"
)

// State collects the graphics state parameters which are relevant for
// placing text.
//
// See section 8.4 of ISO 32000-2:2020.
type State struct {
	// CTM is the current transformation matrix, which maps user space
	// coordinates to device coordinates.
	CTM matrix.Matrix

	TextMatrix     matrix.Matrix
	TextLineMatrix matrix.Matrix

	// TextFont is the current font.  This is nil if the font was not set,
	// or if no metrics are known for the font.
	TextFont     *standard.Instance
	TextFontName standard.Font
	TextFontSize float64

	TextCharacterSpacing  float64
	TextWordSpacing       float64
	TextHorizontalScaling float64
	TextLeading           float64
	TextRise              float64
}

// NewState returns the initial graphics state of a page.
func NewState() State {
	return State{
		CTM:                   matrix.Identity,
		TextMatrix:            matrix.Identity,
		TextLineMatrix:        matrix.Identity,
		TextHorizontalScaling: 1,
	}
}

// TextPos returns the current text position in user space.
func (s *State) TextPos() (x, y float64) {
	M := s.TextMatrix.Mul(s.CTM)
	return M[4], M[5]
}

// advance moves the text position by the width of a glyph.
// w is the glyph width in text space units, before scaling by the
// font size.
func (s *State) advance(w float64, isSpace bool) {
	tx := w*s.TextFontSize + s.TextCharacterSpacing
	if isSpace {
		tx += s.TextWordSpacing
	}
	tx *= s.TextHorizontalScaling
	s.TextMatrix = matrix.Translate(tx, 0).Mul(s.TextMatrix)
}
