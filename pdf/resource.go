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
	"errors"
	"fmt"
)

// Embedder represents a PDF resource (for example a font) which has not yet
// been associated with a specific PDF file.
//
// Types implementing Embedder must be comparable, so that they can be used
// as map keys, and they must not contain any pdf.Reference values.
type Embedder interface {
	// Embed writes the resource to the PDF file and returns the PDF
	// representation of the resource, usually a reference.
	Embed(rm *ResourceManager) (Object, error)
}

// ResourceManager helps to avoid duplicate resources in a PDF file.
// Each [Embedder] is embedded at most once.
type ResourceManager struct {
	Out *Writer

	embedded map[Embedder]Object
	isClosed bool
}

// NewResourceManager creates a new ResourceManager.
func NewResourceManager(w *Writer) *ResourceManager {
	return &ResourceManager{
		Out:      w,
		embedded: make(map[Embedder]Object),
	}
}

// Embed embeds a resource in the PDF file.  If the resource is already
// present in the file, the existing PDF object is returned.
func (rm *ResourceManager) Embed(r Embedder) (Object, error) {
	if val, ok := rm.embedded[r]; ok {
		return val, nil
	}
	if rm.isClosed {
		return nil, errors.New("resource manager is already closed")
	}

	val, err := r.Embed(rm)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resource: %w", err)
	}
	rm.embedded[r] = val
	return val, nil
}

// Close marks the resource manager as closed.  After Close has been called,
// no new resources can be embedded.
func (rm *ResourceManager) Close() error {
	rm.isClosed = true
	return nil
}
