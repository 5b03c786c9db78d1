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

package pdf

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"hash"
	"io"
	"maps"
	"os"

	"golang.org/x/crypto/blake2b"
)

// WriterOptions allows to influence the way a PDF file is generated.
type WriterOptions struct {
	// HumanReadable disables compression of streams.
	HumanReadable bool
}

// Writer represents a PDF file open for writing.
// Objects are written sequentially, in the order of the calls to
// [Writer.Put] and [Writer.OpenStream].
//
// Output is deterministic: the same sequence of calls always produces the
// same bytes.  The file identifier in the trailer is a hash of the file
// body, rather than a random value.
type Writer struct {
	// Version is the PDF version of the file.
	Version Version

	// Catalog is written to the file when the Writer is closed.
	// Catalog.Pages must be set before Close is called.
	Catalog *Catalog

	// Info, if not nil, is written to the file as the document information
	// dictionary.
	Info *Info

	w       *posWriter
	opt     WriterOptions
	xref    map[uint32]int64
	nextRef uint32

	inStream  bool
	isClosed  bool
	closeBase bool
}

// NewWriter prepares a PDF file for writing.
func NewWriter(w io.Writer, v Version, opt *WriterOptions) (*Writer, error) {
	verString, err := v.ToString()
	if err != nil {
		return nil, err
	}
	h, err := blake2b.New(16, nil)
	if err != nil {
		return nil, err
	}

	out := &Writer{
		Version: v,
		Catalog: &Catalog{},

		w:       &posWriter{w: w, hash: h},
		xref:    make(map[uint32]int64),
		nextRef: 1,
	}
	if opt != nil {
		out.opt = *opt
	}

	_, err = fmt.Fprintf(out.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close() must be called to write the trailer and to close the
// underlying file.
func Create(name string, v Version, opt *WriterOptions) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(fd, v, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	w.closeBase = true
	return w, nil
}

// GetOptions returns the options the Writer was created with.
func (pdf *Writer) GetOptions() WriterOptions {
	return pdf.opt
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	ref := NewReference(pdf.nextRef, 0)
	pdf.nextRef++
	return ref
}

// Put writes obj to the PDF file, as the indirect object ref.
// The reference must have been allocated using [Writer.Alloc] and
// every reference can be written at most once.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.isClosed {
		return errClosed
	}
	if pdf.inStream {
		return errOpenStream
	}
	return pdf.put(ref, obj)
}

func (pdf *Writer) put(ref Reference, obj Object) error {
	number := ref.Number()
	if number == 0 || number >= pdf.nextRef {
		return fmt.Errorf("reference %s was not allocated", ref)
	}
	if _, seen := pdf.xref[number]; seen {
		return fmt.Errorf("object %s already written", ref)
	}

	pdf.xref[number] = pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", number, ref.Generation())
	if err != nil {
		return err
	}
	err = writeObject(pdf.w, obj)
	if err != nil {
		return err
	}
	_, err = io.WriteString(pdf.w, "\nendobj\n")
	return err
}

// OpenStream opens a stream for writing, as the indirect object ref.  The
// entries /Length and /Filter are filled in automatically.  If compress is
// true (and the writer was not created with the HumanReadable option), the
// stream data is compressed using the FlateDecode filter.
//
// No other objects can be written until the returned stream is closed.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, compress bool) (io.WriteCloser, error) {
	if pdf.isClosed {
		return nil, errClosed
	}
	if pdf.inStream {
		return nil, errOpenStream
	}

	stm := &streamWriter{
		parent: pdf,
		ref:    ref,
		dict:   maps.Clone(dict),
		buf:    &bytes.Buffer{},
	}
	if stm.dict == nil {
		stm.dict = Dict{}
	}
	if compress && !pdf.opt.HumanReadable {
		zw, err := zlib.NewWriterLevel(stm.buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		stm.zw = zw
		stm.dict["Filter"] = Name("FlateDecode")
	}
	pdf.inStream = true
	return stm, nil
}

type streamWriter struct {
	parent *Writer
	ref    Reference
	dict   Dict
	buf    *bytes.Buffer
	zw     *zlib.Writer
}

func (s *streamWriter) Write(p []byte) (int, error) {
	if s.parent == nil {
		return 0, errors.New("write to closed stream")
	}
	if s.zw != nil {
		return s.zw.Write(p)
	}
	return s.buf.Write(p)
}

func (s *streamWriter) Close() error {
	if s.parent == nil {
		return errors.New("stream already closed")
	}
	if s.zw != nil {
		err := s.zw.Close()
		if err != nil {
			return err
		}
	}

	pdf := s.parent
	s.parent = nil
	pdf.inStream = false

	s.dict["Length"] = Integer(s.buf.Len())
	return pdf.put(s.ref, &Stream{Dict: s.dict, R: s.buf})
}

// Close writes the document catalog, the cross-reference table and the
// trailer to the file.  If the Writer was created using [Create], the
// underlying file is closed as well.
func (pdf *Writer) Close() error {
	if pdf.isClosed {
		return errClosed
	}
	if pdf.inStream {
		return errOpenStream
	}
	if pdf.Catalog == nil || pdf.Catalog.Pages == 0 {
		return errNoPages
	}

	trailer := Dict{}
	if pdf.Info != nil {
		infoRef := pdf.Alloc()
		err := pdf.put(infoRef, pdf.Info.AsDict())
		if err != nil {
			return err
		}
		trailer["Info"] = infoRef
	}

	catalogRef := pdf.Alloc()
	err := pdf.put(catalogRef, pdf.Catalog.AsDict())
	if err != nil {
		return err
	}

	id := String(pdf.w.hash.Sum(nil))
	trailer["Size"] = Integer(pdf.nextRef)
	trailer["Root"] = catalogRef
	trailer["ID"] = Array{id, id}

	xRefPos := pdf.w.pos
	err = pdf.writeXRefTable(trailer)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	if err != nil {
		return err
	}
	pdf.isClosed = true

	if pdf.closeBase {
		if c, ok := pdf.w.w.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}

type posWriter struct {
	w    io.Writer
	hash hash.Hash
	pos  int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.hash.Write(p[:n])
	w.pos += int64(n)
	return n, err
}
