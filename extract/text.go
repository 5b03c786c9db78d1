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

// Package extract recovers text positions and the outline from PDF files.
//
// The functions in this package understand the files written by this
// module: simple fonts from the standard 14 font set, text shown with
// the usual text operators, and explicit outline destinations.
package extract

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdffixture/font/standard"
	"seehuhn.de/go/pdffixture/graphics"
	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

// Line is a run of glyphs which are shown next to each other on the same
// baseline, using the same font.
type Line struct {
	Text string

	// X and Y give the origin of the first glyph.
	X, Y float64

	// Width is the sum of the glyph advance widths.
	Width float64

	Font     standard.Font
	FontSize float64
}

// Word is a maximal run of non-space characters within a [Line].
type Word struct {
	Text string

	// X and Y give the origin of the first glyph, on the baseline.
	X, Y float64

	// Width is the advance width of the word.  Height is the font size.
	Width, Height float64

	Font     standard.Font
	FontSize float64

	// Page is the 0-based page number.
	Page int
}

// Bounds returns the rectangle covered by the word, from the baseline up
// to one font size above the baseline.
func (w *Word) Bounds() rect.Rect {
	return rect.Rect{
		LLx: w.X,
		LLy: w.Y,
		URx: w.X + w.Width,
		URy: w.Y + w.Height,
	}
}

// Lines returns the text runs on the given page, in content stream order.
// Page numbers start at 0.
func Lines(r *pdf.Reader, pageNo int) ([]Line, error) {
	runs, err := glyphRuns(r, pageNo)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(runs))
	for _, run := range runs {
		var text strings.Builder
		for _, g := range run {
			text.WriteString(g.Text)
		}
		first, last := run[0], run[len(run)-1]
		lines = append(lines, Line{
			Text:     text.String(),
			X:        first.X,
			Y:        first.Y,
			Width:    last.X + last.Width - first.X,
			Font:     first.Font,
			FontSize: first.Size,
		})
	}
	return lines, nil
}

// Words returns the words on the given page, in content stream order.
// Page numbers start at 0.
func Words(r *pdf.Reader, pageNo int) ([]Word, error) {
	runs, err := glyphRuns(r, pageNo)
	if err != nil {
		return nil, err
	}

	var words []Word
	for _, run := range runs {
		start := -1
		for i := 0; i <= len(run); i++ {
			isSpace := i == len(run) || strings.TrimSpace(run[i].Text) == ""
			if !isSpace && start < 0 {
				start = i
			}
			if isSpace && start >= 0 {
				words = append(words, makeWord(run[start:i], pageNo))
				start = -1
			}
		}
	}
	return words, nil
}

func makeWord(glyphs []graphics.Glyph, pageNo int) Word {
	var text strings.Builder
	for _, g := range glyphs {
		text.WriteString(g.Text)
	}
	first, last := glyphs[0], glyphs[len(glyphs)-1]
	return Word{
		Text:     text.String(),
		X:        first.X,
		Y:        first.Y,
		Width:    last.X + last.Width - first.X,
		Height:   first.Size,
		Font:     first.Font,
		FontSize: first.Size,
		Page:     pageNo,
	}
}

// glyphRuns returns the glyphs shown on a page, grouped into runs of
// adjacent glyphs.
func glyphRuns(r *pdf.Reader, pageNo int) ([][]graphics.Glyph, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	page, err := pagetree.GetPage(r, catalog.Pages, pageNo)
	if err != nil {
		return nil, err
	}
	resources, err := pdf.GetDict(r, page.Dict["Resources"])
	if err != nil {
		return nil, pdf.Wrap(err, "page resources")
	}

	gr, err := graphics.NewReader(r, resources)
	if err != nil {
		return nil, err
	}

	var runs [][]graphics.Glyph
	var cur []graphics.Glyph
	gr.DrawGlyph = func(g graphics.Glyph) error {
		if len(cur) > 0 && !continues(cur[len(cur)-1], g) {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, g)
		return nil
	}
	err = gr.ScanContentStream(page.Dict["Contents"])
	if err != nil {
		return nil, err
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs, nil
}

// continues reports whether the glyph g directly follows prev on the
// same baseline.
func continues(prev, g graphics.Glyph) bool {
	if g.Font != prev.Font || math.Abs(g.Size-prev.Size) > 1e-6 {
		return false
	}
	if math.Abs(g.Y-prev.Y) > 1e-6 {
		return false
	}
	gap := g.X - (prev.X + prev.Width)
	return math.Abs(gap) <= 0.1*prev.Size
}
