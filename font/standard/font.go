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

// Package standard provides access to the 14 standard PDF fonts.
//
// Text is encoded using WinAnsiEncoding.  Glyph metrics are available for
// the Courier and Helvetica families and for Times-Roman.  The remaining
// standard fonts can be named, but no metrics are available for them.
package standard

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/pdffixture/pdf"
)

// Font identifies the individual fonts.
type Font string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	CourierOblique       Font = "Courier-Oblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	HelveticaOblique     Font = "Helvetica-Oblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesBoldItalic      Font = "Times-BoldItalic"
	TimesItalic          Font = "Times-Italic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

// ErrNoMetrics is returned by [Font.New] for standard fonts where no glyph
// metrics are available.
var ErrNoMetrics = errors.New("no font metrics available")

// All lists the 14 standard PDF fonts defined in this package.
var All = []Font{
	Courier,
	CourierBold,
	CourierBoldOblique,
	CourierOblique,
	Helvetica,
	HelveticaBold,
	HelveticaBoldOblique,
	HelveticaOblique,
	TimesRoman,
	TimesBold,
	TimesBoldItalic,
	TimesItalic,
	Symbol,
	ZapfDingbats,
}

// IsValid reports whether f is one of the 14 standard fonts.
func (f Font) IsValid() bool {
	for _, g := range All {
		if f == g {
			return true
		}
	}
	return false
}

// HasMetrics reports whether glyph metrics are available for f.
func (f Font) HasMetrics() bool {
	_, ok := metricsFile[f]
	return ok
}

// New returns a new font instance for the given standard font.
func (f Font) New() (*Instance, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%q is not a standard PDF font", string(f))
	}
	m, err := loadMetrics(f)
	if err != nil {
		return nil, err
	}
	return &Instance{Font: f, m: m}, nil
}

// Must returns a new font instance for the given standard font.
// It panics if the there is an error.
func (f Font) Must() *Instance {
	inst, err := f.New()
	if err != nil {
		panic(err)
	}
	return inst
}

// Embed adds the font dictionary to a PDF file.
// Standard fonts are never embedded as font programs.  For fonts with
// metrics, the glyph widths and a font descriptor are included, so that
// readers without built-in metrics for the standard fonts can still
// position the text.
//
// This implements the [pdf.Embedder] interface.
func (f Font) Embed(rm *pdf.ResourceManager) (pdf.Object, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%q is not a standard PDF font", string(f))
	}
	w := rm.Out

	fontDict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name(f),
	}
	if f != Symbol && f != ZapfDingbats {
		fontDict["Encoding"] = pdf.Name("WinAnsiEncoding")
	}

	var extra []pdf.Object
	var extraRefs []pdf.Reference
	if f.HasMetrics() {
		m, err := loadMetrics(f)
		if err != nil {
			return nil, err
		}

		fdRef := w.Alloc()
		fontDict["FontDescriptor"] = fdRef
		extra = append(extra, f.descriptor(m))
		extraRefs = append(extraRefs, fdRef)

		widths := m.widthArray(fontDict)
		if len(widths) > 10 {
			widthsRef := w.Alloc()
			fontDict["Widths"] = widthsRef
			extra = append(extra, widths)
			extraRefs = append(extraRefs, widthsRef)
		} else {
			fontDict["Widths"] = widths
		}
	}

	ref := w.Alloc()
	err := w.Put(ref, fontDict)
	if err != nil {
		return nil, err
	}
	for i, obj := range extra {
		err := w.Put(extraRefs[i], obj)
		if err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// widthArray sets /FirstChar and /LastChar in fontDict and returns the
// matching /Widths array.  Codes without a glyph at either end of the
// range are left out; inside the range they get width 0, which is also
// the /MissingWidth of the font descriptor.
func (m *metrics) widthArray(fontDict pdf.Dict) pdf.Array {
	firstChar, lastChar := 0, 255
	for lastChar > 0 && !m.has[lastChar] {
		lastChar--
	}
	for firstChar < lastChar && !m.has[firstChar] {
		firstChar++
	}

	widths := make(pdf.Array, lastChar-firstChar+1)
	for i := range widths {
		widths[i] = pdf.Number(m.widths[firstChar+i])
	}
	fontDict["FirstChar"] = pdf.Integer(firstChar)
	fontDict["LastChar"] = pdf.Integer(lastChar)
	return widths
}

// Font descriptor flags, see section 9.8.2 of ISO 32000-2:2020.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
)

// style gives the font descriptor values which are not part of the glyph
// metrics.  The numbers are taken from the Adobe AFM files of the core
// fonts.
type style struct {
	bbox        [4]float64
	italicAngle float64
	stemV       float64
	flags       int
}

var styles = map[Font]style{
	Courier:              {[4]float64{-23, -250, 715, 805}, 0, 51, flagFixedPitch | flagSerif},
	CourierOblique:       {[4]float64{-27, -250, 849, 805}, -12, 51, flagFixedPitch | flagSerif | flagItalic},
	CourierBold:          {[4]float64{-113, -250, 749, 801}, 0, 106, flagFixedPitch | flagSerif},
	CourierBoldOblique:   {[4]float64{-57, -250, 869, 801}, -12, 106, flagFixedPitch | flagSerif | flagItalic},
	Helvetica:            {[4]float64{-166, -225, 1000, 931}, 0, 88, 0},
	HelveticaOblique:     {[4]float64{-170, -225, 1116, 931}, -12, 88, flagItalic},
	HelveticaBold:        {[4]float64{-170, -228, 1003, 962}, 0, 140, 0},
	HelveticaBoldOblique: {[4]float64{-174, -228, 1114, 962}, -12, 140, flagItalic},
	TimesRoman:           {[4]float64{-168, -218, 1000, 898}, 0, 84, flagSerif},
}

func (f Font) descriptor(m *metrics) pdf.Dict {
	st := styles[f]
	bbox := pdf.Array{}
	for _, x := range st.bbox {
		bbox = append(bbox, pdf.Integer(x))
	}
	return pdf.Dict{
		"Type":         pdf.Name("FontDescriptor"),
		"FontName":     pdf.Name(f),
		"Flags":        pdf.Integer(st.flags | flagNonsymbolic),
		"FontBBox":     bbox,
		"ItalicAngle":  pdf.Number(st.italicAngle),
		"Ascent":       pdf.Number(m.ascent),
		"Descent":      pdf.Number(m.descent),
		"CapHeight":    pdf.Number(m.capHeight),
		"StemV":        pdf.Number(st.stemV),
		"MissingWidth": pdf.Integer(0),
	}
}

// Instance is a standard font together with its metrics.
type Instance struct {
	Font Font

	m *metrics
}

// Encode converts text to a PDF string using WinAnsiEncoding.
// An error is returned if the text contains characters which cannot be
// represented, or for which the font has no glyph.
func (f *Instance) Encode(text string) (pdf.String, error) {
	res := make(pdf.String, 0, len(text))
	for _, r := range text {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || !f.m.has[c] {
			return nil, &EncodeError{Font: f.Font, Char: r}
		}
		res = append(res, c)
	}
	return res, nil
}

// Decode converts a WinAnsi-encoded PDF string back to text.
func Decode(s pdf.String) string {
	rr := make([]rune, len(s))
	for i, c := range s {
		rr[i] = charmap.Windows1252.DecodeByte(c)
	}
	return string(rr)
}

// Width returns the advance width of text, set at the given font size.
func (f *Instance) Width(text string, size float64) (float64, error) {
	s, err := f.Encode(text)
	if err != nil {
		return 0, err
	}
	return f.CodeWidth(s, size), nil
}

// CodeWidth returns the advance width of an encoded string.
// Codes which are not mapped to a glyph have width zero.
func (f *Instance) CodeWidth(s pdf.String, size float64) float64 {
	var w float64
	for _, c := range s {
		w += f.m.widths[c]
	}
	return w * size / 1000
}

// CapHeight returns the height of capital letters, in glyph space units.
func (f *Instance) CapHeight() float64 {
	return f.m.capHeight
}

// Ascent returns the ascent of the font, in glyph space units.
func (f *Instance) Ascent() float64 {
	return f.m.ascent
}

// Descent returns the descent of the font, in glyph space units.
// The value is negative.
func (f *Instance) Descent() float64 {
	return f.m.descent
}

// IsFixedPitch reports whether all glyphs have the same width.
func (f *Instance) IsFixedPitch() bool {
	return f.m.isFixedPitch
}

// EncodeError is returned when text cannot be represented in a font.
type EncodeError struct {
	Font Font
	Char rune
}

func (err *EncodeError) Error() string {
	return fmt.Sprintf("font %s cannot encode %q", err.Font, err.Char)
}
