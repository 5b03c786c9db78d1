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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/pdf"
)

// ContentStreamBuilder records content stream operators, while keeping
// track of the graphics state.
//
// The first error stops the builder.  All further calls are ignored, and
// the error is kept in the Err field and returned by [Build].
type ContentStreamBuilder struct {
	State
	Err error

	res *Resources
	ops []Operator

	// open holds the currently open q and BT operators, innermost last.
	open  []pdf.Operator
	saved []State
}

// NewContentStreamBuilder returns a builder for an empty content stream.
func NewContentStreamBuilder() *ContentStreamBuilder {
	return &ContentStreamBuilder{
		State: NewState(),
		res:   &Resources{},
	}
}

// Build returns the recorded operators, together with the resources they
// use.  All q and BT operators must have been closed.
func (b *ContentStreamBuilder) Build() (*ContentStream, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	if n := len(b.open); n > 0 {
		return nil, fmt.Errorf("content stream ends inside %s", b.open[n-1])
	}
	return &ContentStream{Resources: b.res, Operators: b.ops}, nil
}

func (b *ContentStreamBuilder) inText() bool {
	n := len(b.open)
	return n > 0 && b.open[n-1] == "BT"
}

// allowed reports whether op can be used at this point.  Operators are
// either text operators, which are only valid inside BT/ET, or page
// level operators.  If both is set, op is allowed everywhere.
func (b *ContentStreamBuilder) allowed(op pdf.Operator, text, both bool) bool {
	if b.Err != nil {
		return false
	}
	if both || b.inText() == text {
		return true
	}
	where := "outside"
	if b.inText() {
		where = "inside"
	}
	b.Err = fmt.Errorf("operator %s not allowed %s a text object", op, where)
	return false
}

func (b *ContentStreamBuilder) emit(op pdf.Operator, args ...pdf.Object) {
	b.ops = append(b.ops, Operator{Name: op, Args: args})
}

func (b *ContentStreamBuilder) emitMatrix(op pdf.Operator, m matrix.Matrix) {
	args := make([]pdf.Object, len(m))
	for i, x := range m {
		args[i] = pdf.Number(x)
	}
	b.emit(op, args...)
}

// PushGraphicsState saves the graphics state (operator "q").
func (b *ContentStreamBuilder) PushGraphicsState() {
	if !b.allowed("q", false, false) {
		return
	}
	b.saved = append(b.saved, b.State)
	b.open = append(b.open, "q")
	b.emit("q")
}

// PopGraphicsState restores the last saved graphics state (operator "Q").
func (b *ContentStreamBuilder) PopGraphicsState() {
	if !b.allowed("Q", false, false) {
		return
	}
	n := len(b.saved)
	if n == 0 {
		b.Err = errors.New("Q without matching q")
		return
	}
	b.State = b.saved[n-1]
	b.saved = b.saved[:n-1]
	b.open = b.open[:len(b.open)-1]
	b.emit("Q")
}

// Transform modifies the current transformation matrix (operator "cm").
// The new CTM is m × CTM.
func (b *ContentStreamBuilder) Transform(m matrix.Matrix) {
	if !b.allowed("cm", false, false) {
		return
	}
	b.CTM = m.Mul(b.CTM)
	b.emitMatrix("cm", m)
}

// TextBegin starts a text object (operator "BT").
// Every call must be matched by a call to [ContentStreamBuilder.TextEnd].
func (b *ContentStreamBuilder) TextBegin() {
	if !b.allowed("BT", false, false) {
		return
	}
	b.open = append(b.open, "BT")
	b.TextMatrix = matrix.Identity
	b.TextLineMatrix = matrix.Identity
	b.emit("BT")
}

// TextEnd ends the current text object (operator "ET").
func (b *ContentStreamBuilder) TextEnd() {
	if !b.allowed("ET", true, false) {
		return
	}
	b.open = b.open[:len(b.open)-1]
	b.emit("ET")
}

// TextSetFont selects the font and font size (operator "Tf").
// The font is added to the resources of the content stream.
func (b *ContentStreamBuilder) TextSetFont(F *standard.Instance, size float64) {
	if !b.allowed("Tf", true, true) {
		return
	}
	b.TextFont = F
	b.TextFontName = F.Font
	b.TextFontSize = size
	b.emit("Tf", b.res.nameFor(F.Font), pdf.Number(size))
}

// TextFirstLine moves the text position to (x, y), relative to the start
// of the current line (operator "Td").
func (b *ContentStreamBuilder) TextFirstLine(x, y float64) {
	if !b.allowed("Td", true, false) {
		return
	}
	b.TextLineMatrix = matrix.Translate(x, y).Mul(b.TextLineMatrix)
	b.TextMatrix = b.TextLineMatrix
	b.emit("Td", pdf.Number(x), pdf.Number(y))
}

// TextSetMatrix sets the text matrix and the text line matrix
// (operator "Tm").
func (b *ContentStreamBuilder) TextSetMatrix(M matrix.Matrix) {
	if !b.allowed("Tm", true, false) {
		return
	}
	b.TextLineMatrix = M
	b.TextMatrix = M
	b.emitMatrix("Tm", M)
}

// TextShowRaw shows a string which is already encoded for the current
// font (operator "Tj").
func (b *ContentStreamBuilder) TextShowRaw(s pdf.String) {
	if !b.allowed("Tj", true, false) {
		return
	}
	if b.TextFont == nil {
		b.Err = errors.New("Tj: no font selected")
		return
	}
	for _, c := range s {
		b.advance(b.TextFont.CodeWidth(pdf.String{c}, 1), c == ' ')
	}
	b.emit("Tj", s)
}

// TextShow encodes s for the current font and shows it.
// The return value is the advance width of the text, in text space units.
func (b *ContentStreamBuilder) TextShow(s string) float64 {
	if !b.allowed("Tj", true, false) {
		return 0
	}
	if b.TextFont == nil {
		b.Err = errors.New("Tj: no font selected")
		return 0
	}
	code, err := b.TextFont.Encode(s)
	if err != nil {
		b.Err = err
		return 0
	}
	b.TextShowRaw(code)
	return b.TextFont.CodeWidth(code, b.TextFontSize)
}
