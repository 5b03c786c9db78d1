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

// Package metadata implements XMP metadata streams for PDF documents.
package metadata

import (
	"bytes"
	"fmt"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdffixture/pdf"
)

// PDF 2.0 sections: 14.3

// Stream represents an XMP metadata stream.
//
// The metadata may either refer to a PDF document as a whole, or to
// individual objects within the document.
type Stream struct {
	Data *xmp.Packet
}

// PDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type PDF struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}

// New returns a metadata stream for a document with the given title
// and producer.  No dates are included, so that the packet only depends
// on the arguments.
func New(title, producer string, v pdf.Version) (*Stream, error) {
	dc := &xmp.DublinCore{}
	if title != "" {
		dc.Title.Set(language.Und, title)
	}
	pdfInfo := &PDF{}
	if producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(producer)
	}
	pdfInfo.PDFVersion = xmp.NewText(v.String())

	packet := xmp.NewPacket()
	err := packet.Set(dc, pdfInfo)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Extract reads an XMP metadata stream from a PDF file.
// If ref is nil, nil is returned without an error.
func Extract(r pdf.Getter, ref pdf.Object) (*Stream, error) {
	if ref == nil {
		return nil, nil
	}
	body, err := pdf.ReadStream(r, ref)
	if err != nil {
		return nil, err
	}

	packet, err := xmp.Read(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return &Stream{Data: packet}, nil
}

// Title returns the document title stored in the Dublin Core
// namespace, or the empty string if no title is set.
func (s *Stream) Title() string {
	dc := &xmp.DublinCore{}
	s.Data.Get(dc)
	if t := dc.Title.Default.V; t != "" {
		return t
	}
	// fall back to the first language, in a deterministic order
	var best string
	var bestTag string
	for tag, val := range dc.Title.V {
		if best == "" || fmt.Sprint(tag) < bestTag {
			best, bestTag = val.V, fmt.Sprint(tag)
		}
	}
	return best
}

// Embed adds the XMP metadata stream to the PDF file.
// This implements the [pdf.Embedder] interface.
func (s *Stream) Embed(rm *pdf.ResourceManager) (pdf.Object, error) {
	w := rm.Out
	if err := pdf.CheckVersion(w, "XMP metadata stream", pdf.V1_4); err != nil {
		return nil, err
	}
	ref := w.Alloc()

	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	// Metadata streams are left uncompressed, so that tools which do not
	// understand PDF can still find the packet.
	body, err := w.OpenStream(ref, dict, false)
	if err != nil {
		return nil, err
	}

	opt := &xmp.PacketOptions{
		Pretty: w.GetOptions().HumanReadable,
	}
	err = s.Data.Write(body, opt)
	if err != nil {
		return nil, err
	}

	err = body.Close()
	if err != nil {
		return nil, err
	}

	return ref, nil
}

// Equal reports whether s and other represent the same XMP metadata.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Data.Equal(other.Data)
}
