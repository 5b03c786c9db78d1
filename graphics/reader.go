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
	"io"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/pdf"
)

// A Reader interprets PDF content streams and keeps track of the
// graphics state.
type Reader struct {
	R pdf.Getter
	State

	// DrawGlyph, if not nil, is called for every glyph shown.
	DrawGlyph func(g Glyph) error

	fonts map[pdf.Name]standard.Font
	stack []State
}

// Glyph describes a single glyph shown on a page.
// Positions and sizes are given in user space units.
type Glyph struct {
	Text string
	Font standard.Font

	// X and Y give the origin of the glyph on the baseline.
	X, Y float64

	// Width is the advance width of the glyph.
	Width float64

	// Size is the effective font size.
	Size float64
}

// NewReader creates a new Reader.  The resource dictionary is used to
// look up the fonts referenced by the content stream.
func NewReader(r pdf.Getter, resources pdf.Dict) (*Reader, error) {
	fonts := make(map[pdf.Name]standard.Font)
	fontDict, err := pdf.GetDict(r, resources["Font"])
	if err != nil {
		return nil, pdf.Wrap(err, "font resources")
	}
	for name, obj := range fontDict {
		dict, err := pdf.GetDictTyped(r, obj, "Font")
		if err != nil {
			return nil, pdf.Wrap(err, "font "+string(name))
		}
		baseFont, err := pdf.GetName(r, dict["BaseFont"])
		if err != nil {
			return nil, pdf.Wrap(err, "font "+string(name))
		}
		fonts[name] = standard.Font(baseFont)
	}

	return &Reader{
		R:     r,
		State: NewState(),
		fonts: fonts,
	}, nil
}

// ScanContentStream interprets a content stream.
// Obj can be either a stream or an array of streams.
func (r *Reader) ScanContentStream(obj pdf.Object) error {
	contents, err := pdf.Resolve(r.R, obj)
	if err != nil {
		return err
	}

	var parts []pdf.Object
	if a, isArray := contents.(pdf.Array); isArray {
		parts = a
	} else if contents != nil {
		parts = []pdf.Object{contents}
	}
	for _, part := range parts {
		stm, err := pdf.GetStream(r.R, part)
		if err != nil {
			return err
		}
		if stm == nil {
			continue
		}
		if err := r.scanPDFStream(stm); err != nil {
			return pdf.Wrap(err, "content stream")
		}
	}
	return nil
}

func (r *Reader) scanPDFStream(stm *pdf.Stream) error {
	body, err := pdf.ReadStream(r.R, stm)
	if err != nil {
		return err
	}

	s := pdf.NewScanner(body)
	var args []pdf.Object
	for {
		obj, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		op, isOp := obj.(pdf.Operator)
		if !isOp {
			args = append(args, obj)
			continue
		}
		if h := handlers[op]; h != nil {
			err = h(r, operands(args))
			if err != nil {
				return err
			}
		}
		args = args[:0]
	}
}

// operands holds the arguments of a content stream operator.
type operands []pdf.Object

func (a operands) num(i int) (float64, bool) {
	if i >= len(a) {
		return 0, false
	}
	return getNumber(a[i])
}

func (a operands) nums(n int) ([]float64, bool) {
	if len(a) < n {
		return nil, false
	}
	res := make([]float64, n)
	for i := range res {
		x, ok := getNumber(a[i])
		if !ok {
			return nil, false
		}
		res[i] = x
	}
	return res, true
}

func (a operands) matrix() (matrix.Matrix, bool) {
	var m matrix.Matrix
	x, ok := a.nums(6)
	if ok {
		copy(m[:], x)
	}
	return m, ok
}

// str returns the last operand as a string.
func (a operands) str() (pdf.String, bool) {
	if len(a) == 0 {
		return nil, false
	}
	s, ok := a[len(a)-1].(pdf.String)
	return s, ok
}

// handlers lists the operators which influence the position of text.
// All other operators are ignored.
var handlers map[pdf.Operator]func(*Reader, operands) error

func init() {
	setter := func(field func(*State) *float64, scale float64) func(*Reader, operands) error {
		return func(r *Reader, a operands) error {
			if x, ok := a.num(0); ok {
				*field(&r.State) = x * scale
			}
			return nil
		}
	}
	moveTo := func(setLeading bool) func(*Reader, operands) error {
		return func(r *Reader, a operands) error {
			d, ok := a.nums(2)
			if !ok {
				return nil
			}
			if setLeading {
				r.TextLeading = -d[1]
			}
			r.TextLineMatrix = matrix.Translate(d[0], d[1]).Mul(r.TextLineMatrix)
			r.TextMatrix = r.TextLineMatrix
			return nil
		}
	}

	handlers = map[pdf.Operator]func(*Reader, operands) error{
		"q": func(r *Reader, _ operands) error {
			r.stack = append(r.stack, r.State)
			return nil
		},
		"Q": func(r *Reader, _ operands) error {
			if n := len(r.stack); n > 0 {
				r.State = r.stack[n-1]
				r.stack = r.stack[:n-1]
			}
			return nil
		},
		"cm": func(r *Reader, a operands) error {
			if m, ok := a.matrix(); ok {
				r.CTM = m.Mul(r.CTM)
			}
			return nil
		},
		"BT": func(r *Reader, _ operands) error {
			r.TextMatrix = matrix.Identity
			r.TextLineMatrix = matrix.Identity
			return nil
		},
		"Tc": setter(func(s *State) *float64 { return &s.TextCharacterSpacing }, 1),
		"Tw": setter(func(s *State) *float64 { return &s.TextWordSpacing }, 1),
		"Tz": setter(func(s *State) *float64 { return &s.TextHorizontalScaling }, 0.01),
		"TL": setter(func(s *State) *float64 { return &s.TextLeading }, 1),
		"Ts": setter(func(s *State) *float64 { return &s.TextRise }, 1),
		"Tf": (*Reader).setFont,
		"Td": moveTo(false),
		"TD": moveTo(true),
		"Tm": func(r *Reader, a operands) error {
			if m, ok := a.matrix(); ok {
				r.TextMatrix = m
				r.TextLineMatrix = m
			}
			return nil
		},
		"T*": func(r *Reader, _ operands) error {
			r.nextLine()
			return nil
		},
		"Tj": func(r *Reader, a operands) error {
			if s, ok := a.str(); ok {
				return r.showString(s)
			}
			return nil
		},
		"'": func(r *Reader, a operands) error {
			if s, ok := a.str(); ok {
				r.nextLine()
				return r.showString(s)
			}
			return nil
		},
		"\"": func(r *Reader, a operands) error {
			spacing, ok1 := a.nums(2)
			s, ok2 := a.str()
			if !ok1 || !ok2 || len(a) < 3 {
				return nil
			}
			r.TextWordSpacing = spacing[0]
			r.TextCharacterSpacing = spacing[1]
			r.nextLine()
			return r.showString(s)
		},
		"TJ": (*Reader).showKerned,
	}
}

func (r *Reader) setFont(a operands) error {
	size, ok := a.num(1)
	if !ok {
		return nil
	}
	name, ok := a[0].(pdf.Name)
	if !ok {
		return nil
	}
	F := r.fonts[name]
	r.TextFontName = F
	r.TextFontSize = size
	r.TextFont = nil
	if !F.HasMetrics() {
		return nil
	}
	inst, err := F.New()
	if err != nil {
		return err
	}
	r.TextFont = inst
	return nil
}

// showKerned implements the TJ operator.  Numbers in the array move the
// text position to the left, in thousandths of the font size.
func (r *Reader) showKerned(a operands) error {
	if len(a) == 0 {
		return nil
	}
	elems, _ := a[0].(pdf.Array)
	for _, elem := range elems {
		if s, ok := elem.(pdf.String); ok {
			if err := r.showString(s); err != nil {
				return err
			}
			continue
		}
		if x, ok := getNumber(elem); ok {
			tx := -x / 1000 * r.TextFontSize * r.TextHorizontalScaling
			r.TextMatrix = matrix.Translate(tx, 0).Mul(r.TextMatrix)
		}
	}
	return nil
}

func (r *Reader) nextLine() {
	r.TextLineMatrix = matrix.Translate(0, -r.TextLeading).Mul(r.TextLineMatrix)
	r.TextMatrix = r.TextLineMatrix
}

func (r *Reader) showString(s pdf.String) error {
	for _, c := range s {
		var w float64
		if r.TextFont != nil {
			w = r.TextFont.CodeWidth(pdf.String{c}, 1)
		}

		M := matrix.Translate(0, r.TextRise).Mul(r.TextMatrix).Mul(r.CTM)
		x0, y0 := M[4], M[5]
		r.advance(w, c == ' ')
		M = matrix.Translate(0, r.TextRise).Mul(r.TextMatrix).Mul(r.CTM)

		if r.DrawGlyph == nil {
			continue
		}
		g := Glyph{
			Text:  standard.Decode(pdf.String{c}),
			Font:  r.TextFontName,
			X:     x0,
			Y:     y0,
			Width: math.Hypot(M[4]-x0, M[5]-y0),
			Size:  r.TextFontSize * math.Hypot(M[2], M[3]),
		}
		err := r.DrawGlyph(g)
		if err != nil {
			return err
		}
	}
	return nil
}

func getNumber(obj pdf.Object) (float64, bool) {
	switch x := obj.(type) {
	case pdf.Integer:
		return float64(x), true
	case pdf.Real:
		return float64(x), true
	case pdf.Number:
		return float64(x), true
	default:
		return 0, false
	}
}
