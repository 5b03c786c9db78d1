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

package standard

import (
	"embed"
	"fmt"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/postscript/type1/names"
)

//go:embed afm/*.afm
var afmFiles embed.FS

// metricsFile gives the AFM file used for each font.  The oblique fonts
// have the same advance widths as the upright versions.
var metricsFile = map[Font]string{
	Courier:              "Courier",
	CourierOblique:       "Courier",
	CourierBold:          "Courier-Bold",
	CourierBoldOblique:   "Courier-Bold",
	Helvetica:            "Helvetica",
	HelveticaOblique:     "Helvetica",
	HelveticaBold:        "Helvetica-Bold",
	HelveticaBoldOblique: "Helvetica-Bold",
	TimesRoman:           "Times-Roman",
}

// metrics holds the glyph widths for the 256 codes of WinAnsiEncoding.
type metrics struct {
	widths [256]float64
	has    [256]bool

	capHeight    float64
	ascent       float64
	descent      float64
	isFixedPitch bool
}

var (
	metricsMutex sync.Mutex
	metricsCache = map[string]*metrics{}
)

func loadMetrics(f Font) (*metrics, error) {
	fileName, ok := metricsFile[f]
	if !ok {
		return nil, fmt.Errorf("font %s: %w", f, ErrNoMetrics)
	}

	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if m, ok := metricsCache[fileName]; ok {
		return m, nil
	}

	fd, err := afmFiles.Open("afm/" + fileName + ".afm")
	if err != nil {
		return nil, err // should not happen
	}
	defer fd.Close()
	info, err := afm.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", f, err)
	}

	// Glyph names are mapped to characters via the Adobe Glyph List.
	byRune := make(map[rune]string)
	for name := range info.Glyphs {
		rr := []rune(names.ToUnicode(name, ""))
		if len(rr) != 1 {
			continue
		}
		if prev, seen := byRune[rr[0]]; seen && prev < name {
			continue
		}
		byRune[rr[0]] = name
	}

	m := &metrics{
		capHeight:    float64(info.CapHeight),
		ascent:       float64(info.Ascent),
		descent:      float64(info.Descent),
		isFixedPitch: info.IsFixedPitch,
	}
	for code := 32; code < 256; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))

		var name string
		switch r {
		case '\u00a0': // no-break space
			name = "space"
		case '\u00ad': // soft hyphen
			name = "hyphen"
		default:
			name = byRune[r]
		}

		glyph, found := info.Glyphs[name]
		if !found || glyph == nil {
			continue
		}
		m.widths[code] = float64(glyph.WidthX)
		m.has[code] = true
	}
	if m.ascent == 0 {
		m.ascent = m.capHeight
	}

	metricsCache[fileName] = m
	return m, nil
}
