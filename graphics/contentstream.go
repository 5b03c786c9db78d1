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
	"bufio"
	"io"
	"maps"
	"slices"
	"strconv"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/pdf"
)

// ContentStream is a sequence of content stream operators, together with
// the resources these operators refer to.
type ContentStream struct {
	Resources *Resources
	Operators []Operator
}

// Operator is a single operator in a content stream, for example "Tj".
type Operator struct {
	Name pdf.Operator
	Args []pdf.Object
}

// WriteTo writes the content stream operators to w, one operator per line.
func (cs *ContentStream) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, op := range cs.Operators {
		for _, arg := range op.Args {
			if arg == nil {
				bw.WriteString("null ")
				continue
			}
			err := arg.PDF(bw)
			if err != nil {
				return cw.n, err
			}
			bw.WriteByte(' ')
		}
		bw.WriteString(string(op.Name))
		bw.WriteByte('\n')
	}
	err := bw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return n, err
}

// Resources lists the fonts used by a content stream.
type Resources struct {
	Font map[pdf.Name]standard.Font
}

func (res *Resources) nameFor(F standard.Font) pdf.Name {
	for name, G := range res.Font {
		if G == F {
			return name
		}
	}
	if res.Font == nil {
		res.Font = make(map[pdf.Name]standard.Font)
	}
	name := pdf.Name("F" + strconv.Itoa(len(res.Font)+1))
	res.Font[name] = F
	return name
}

// Embed writes the fonts to the PDF file and returns the resource
// dictionary for the content stream.
func (res *Resources) Embed(rm *pdf.ResourceManager) (pdf.Dict, error) {
	dict := pdf.Dict{}
	if len(res.Font) > 0 {
		fonts := pdf.Dict{}
		// sorted, so that object numbers do not depend on map order
		for _, name := range slices.Sorted(maps.Keys(res.Font)) {
			F := res.Font[name]
			ref, err := rm.Embed(F)
			if err != nil {
				return nil, err
			}
			fonts[name] = ref
		}
		dict["Font"] = fonts
	}
	return dict, nil
}
