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
	"fmt"
	"math"
	"os"

	"seehuhn.de/go/pdffixture/document"
	"seehuhn.de/go/pdffixture/metadata"
	"seehuhn.de/go/pdffixture/pdf"
)

// Producer is stored in the document information dictionary of all
// generated files.
const Producer = "seehuhn.de/go/pdffixture"

// Options controls details of the generated PDF files.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// Version is the PDF version of the output.  The zero value
	// selects PDF 1.7.
	Version pdf.Version

	// Title, if non-empty, is stored in the document information
	// dictionary and in an XMP metadata stream.
	Title string

	// HumanReadable disables compression of content streams.
	HumanReadable bool
}

func (opt *Options) version() pdf.Version {
	if opt == nil || opt.Version == 0 {
		return pdf.V1_7
	}
	return opt.Version
}

func (opt *Options) writerOptions() *pdf.WriterOptions {
	if opt == nil {
		return nil
	}
	return &pdf.WriterOptions{HumanReadable: opt.HumanReadable}
}

// addMetadata installs the document information dictionary and, if a
// title is set, the XMP metadata stream.
func (opt *Options) addMetadata(rm *pdf.ResourceManager) error {
	info := &pdf.Info{Producer: Producer}
	rm.Out.Info = info
	if opt == nil || opt.Title == "" {
		return nil
	}
	info.Title = opt.Title

	stm, err := metadata.New(opt.Title, Producer, rm.Out.Version)
	if err != nil {
		return err
	}
	ref, err := rm.Embed(stm)
	if err != nil {
		return err
	}
	rm.Out.Catalog.Metadata = ref.(pdf.Reference)
	return nil
}

// DefaultPageSize is used when a nil page size is given.
var DefaultPageSize = document.Letter

// checkPageSize verifies that the page box is non-empty and finite.
func checkPageSize(box *pdf.Rectangle) error {
	for _, x := range []float64{box.LLx, box.LLy, box.URx, box.URy} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: page box %s is not finite", ErrInvalidGeometry, box)
		}
	}
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return fmt.Errorf("%w: empty page box %s", ErrInvalidGeometry, box)
	}
	return nil
}

// checkPoint verifies that (x, y) lies inside the page box.
// Points on the boundary are allowed.
func checkPoint(box *pdf.Rectangle, x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || !box.Contains(x, y) {
		return fmt.Errorf("%w: point (%g, %g) outside page box %s",
			ErrInvalidGeometry, x, y, box)
	}
	return nil
}

// writeFile writes data to the named file.  The data is produced
// completely before the file is created, so that failures never leave
// a partial file behind.
func writeFile(name string, produce func(*bytes.Buffer) error) error {
	buf := &bytes.Buffer{}
	err := produce(buf)
	if err != nil {
		return err
	}
	err = os.WriteFile(name, buf.Bytes(), 0o644)
	if err != nil {
		return encodingError("write "+name, err)
	}
	return nil
}
