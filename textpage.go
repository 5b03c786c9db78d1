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
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"seehuhn.de/go/pdffixture/document"
	"seehuhn.de/go/pdffixture/extract"
	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/pdf"
)

// TextItem is a string shown at a fixed position on a page.
type TextItem struct {
	Text string

	// X and Y give the origin of the first glyph, in PDF user space
	// (origin at the bottom left, y increasing upwards).
	X, Y float64

	// Font is one of the standard 14 fonts, for example "Helvetica".
	Font standard.Font

	// Size is the font size in points.
	Size float64
}

// TextPage is a single-page document with text items at known positions.
// Use [CreateTextPage] to construct a TextPage.
type TextPage struct {
	// Opt, if not nil, controls details of the PDF output.
	Opt *Options

	pageSize *pdf.Rectangle
	items    []placedItem
}

type placedItem struct {
	TextItem
	font *standard.Instance
	code pdf.String
}

// CreateTextPage validates the text items and prepares a single-page
// document showing them.  If pageSize is nil, [DefaultPageSize] is used.
// Nothing is written until [TextPage.WriteTo] or [TextPage.WriteFile] is
// called.
//
// The origin of every item must lie inside the page box, where points on
// the boundary count as inside.  The font must be one of the standard
// fonts with bundled metrics, and the size must be positive.
func CreateTextPage(items []TextItem, pageSize *pdf.Rectangle) (*TextPage, error) {
	if pageSize == nil {
		pageSize = DefaultPageSize
	}
	if err := checkPageSize(pageSize); err != nil {
		return nil, err
	}

	fonts := map[standard.Font]*standard.Instance{}
	placed := make([]placedItem, 0, len(items))
	for i, item := range items {
		if item.Text == "" {
			return nil, fmt.Errorf("%w: item %d: empty text", ErrInvalidGeometry, i)
		}
		if err := checkPoint(pageSize, item.X, item.Y); err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i, item.Text, err)
		}
		if !(item.Size > 0) || math.IsInf(item.Size, 0) {
			return nil, fmt.Errorf("%w: item %d (%q): invalid font size %g",
				ErrInvalidGeometry, i, item.Text, item.Size)
		}

		F, ok := fonts[item.Font]
		if !ok {
			var err error
			F, err = loadFont(item.Font)
			if err != nil {
				return nil, fmt.Errorf("item %d (%q): %w", i, item.Text, err)
			}
			fonts[item.Font] = F
		}
		code, err := F.Encode(item.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrUnsupportedFont, i, err)
		}

		placed = append(placed, placedItem{TextItem: item, font: F, code: code})
	}

	tp := &TextPage{
		pageSize: pageSize,
		items:    placed,
	}
	return tp, nil
}

func loadFont(name standard.Font) (*standard.Instance, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %q is not a standard font", ErrUnsupportedFont, name)
	}
	F, err := name.New()
	if errors.Is(err, standard.ErrNoMetrics) {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFont, err)
	} else if err != nil {
		return nil, encodingError("load font "+string(name), err)
	}
	return F, nil
}

// PageSize returns the page box of the document.
func (tp *TextPage) PageSize() *pdf.Rectangle {
	return tp.pageSize
}

// Items returns the text items shown on the page.
func (tp *TextPage) Items() []TextItem {
	res := make([]TextItem, len(tp.items))
	for i, item := range tp.items {
		res[i] = item.TextItem
	}
	return res
}

// Expected returns the words which text extraction should find on the
// page, in the order the items were given.  An item containing spaces
// contributes one word for every run of non-space characters.  The width
// of a word is the sum of the glyph widths from the font metrics, the
// height is the font size.
func (tp *TextPage) Expected() []extract.Word {
	var res []extract.Word
	for _, item := range tp.items {
		x := item.X
		for _, run := range splitRuns(item.Text) {
			code, _ := item.font.Encode(run)
			w := item.font.CodeWidth(code, item.Size)
			if strings.TrimSpace(run) == run {
				res = append(res, extract.Word{
					Text:     run,
					X:        x,
					Y:        item.Y,
					Width:    w,
					Height:   item.Size,
					Font:     item.Font,
					FontSize: item.Size,
				})
			}
			x += w
		}
	}
	return res
}

// splitRuns splits s into alternating runs of white space and other
// characters.
func splitRuns(s string) []string {
	var res []string
	start := 0
	prev := false
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != prev {
			res = append(res, s[start:i])
			start = i
		}
		prev = isSpace
	}
	if start < len(s) {
		res = append(res, s[start:])
	}
	return res
}

// WriteTo writes the PDF file to w.
// This implements the [io.WriterTo] interface.
func (tp *TextPage) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	err := tp.encode(buf)
	if err != nil {
		return 0, err
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, encodingError("write", err)
	}
	return n, nil
}

// WriteFile writes the PDF file to the named file.  If an error occurs,
// no file is created.
func (tp *TextPage) WriteFile(name string) error {
	return writeFile(name, func(buf *bytes.Buffer) error {
		return tp.encode(buf)
	})
}

func (tp *TextPage) encode(w io.Writer) error {
	page, err := document.WriteSinglePage(w, tp.pageSize, tp.Opt.version(), tp.Opt.writerOptions())
	if err != nil {
		return encodingError("create document", err)
	}
	err = tp.Opt.addMetadata(page.RM)
	if err != nil {
		return encodingError("metadata", err)
	}

	for _, item := range tp.items {
		page.TextBegin()
		page.TextSetFont(item.font, item.Size)
		page.TextFirstLine(item.X, item.Y)
		page.TextShowRaw(item.code)
		page.TextEnd()
	}

	err = page.Close()
	if err != nil {
		return encodingError("write page", err)
	}
	return nil
}
