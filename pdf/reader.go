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
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader represents a PDF file opened for reading.
//
// The reader supports files with classical cross-reference tables, as
// produced by [Writer].  Object streams, cross-reference streams and
// encryption are not supported.
type Reader struct {
	// Version is the PDF version given in the file header.
	Version Version

	// Trailer is the trailer dictionary of the file.
	Trailer Dict

	data  []byte
	xref  map[uint32]*xRefEntry
	cache map[Reference]Object
}

// Open opens the named PDF file for reading.  The complete file is read
// into memory.
func Open(fname string) (*Reader, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// NewReader creates a new Reader object.
func NewReader(data io.ReaderAt, size int64) (*Reader, error) {
	buf := make([]byte, size)
	n, err := data.ReadAt(buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, err
	}

	version, err := readHeaderVersion(buf)
	if err != nil {
		return nil, err
	}

	xref, trailer, err := readXRef(buf)
	if err != nil {
		return nil, err
	}
	if _, ok := trailer["Root"].(Reference); !ok {
		return nil, &MalformedFileError{Err: errors.New("missing /Root in trailer")}
	}
	if trailer["Encrypt"] != nil {
		return nil, errors.New("encrypted PDF files are not supported")
	}

	r := &Reader{
		Version: version,
		Trailer: trailer,
		data:    buf,
		xref:    xref,
		cache:   make(map[Reference]Object),
	}
	return r, nil
}

// Close closes the Reader.
// Since the file contents are held in memory, this only releases the
// cached objects.
func (r *Reader) Close() error {
	r.cache = nil
	r.data = nil
	return nil
}

// Catalog returns the document catalog of the file.
func (r *Reader) Catalog() (*Catalog, error) {
	return DecodeCatalog(r, r.Trailer["Root"])
}

// Info returns the document information dictionary, or nil if the file
// has no information dictionary.
func (r *Reader) Info() (*Info, error) {
	return DecodeInfo(r, r.Trailer["Info"])
}

// Get reads an indirect object from the PDF file.  If the object is not
// present, nil is returned without an error.
//
// This implements the [Getter] interface.
func (r *Reader) Get(ref Reference) (Object, error) {
	if r.data == nil {
		return nil, errors.New("reader is closed")
	}
	if obj, ok := r.cache[ref]; ok {
		return obj, nil
	}

	entry := r.xref[ref.Number()]
	if entry == nil || entry.Pos < 0 || entry.Generation != ref.Generation() {
		return nil, nil
	}
	if entry.Pos >= int64(len(r.data)) {
		return nil, &MalformedFileError{
			Pos: entry.Pos,
			Err: fmt.Errorf("object %s is outside the file", ref),
		}
	}

	s := NewScanner(r.data[entry.Pos:])
	s.base = entry.Pos
	getLength := func(obj Object) (Integer, error) {
		if obj == ref {
			return 0, errors.New("stream length refers to the stream itself")
		}
		return GetInteger(r, obj)
	}
	found, obj, err := s.readIndirectObject(getLength)
	if err != nil {
		return nil, err
	}
	if found != ref {
		return nil, &MalformedFileError{
			Pos: entry.Pos,
			Err: fmt.Errorf("xref entry for %s points to %s", ref, found),
		}
	}

	r.cache[ref] = obj
	return obj, nil
}

func readHeaderVersion(data []byte) (Version, error) {
	const prefix = "%PDF-"
	if !bytes.HasPrefix(data, []byte(prefix)) || len(data) < len(prefix)+3 {
		return 0, &MalformedFileError{Err: errors.New("PDF header not found")}
	}
	return ParseVersion(string(data[len(prefix) : len(prefix)+3]))
}
