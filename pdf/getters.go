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
	"io"
)

// Getter represents a PDF file opened for reading.
type Getter interface {
	Get(Reference) (Object, error)
}

// Resolve resolves references to indirect objects.
//
// If obj is a [Reference], the function reads the corresponding object from
// the file and returns the result.  Chains of references are followed until
// a non-reference object is found.  If obj is not a [Reference], it is
// returned unchanged.
func Resolve(r Getter, obj Object) (Object, error) {
	origObj := obj

	count := 0
	for {
		ref, isReference := obj.(Reference)
		if !isReference {
			return obj, nil
		}
		count++
		if count > 16 {
			return nil, &MalformedFileError{
				Err: errors.New("too many levels of indirection"),
				Loc: []string{"object " + origObj.(Reference).String()},
			}
		}

		var err error
		obj, err = r.Get(ref)
		if err != nil {
			return nil, err
		}
	}
}

func resolveAndCast[T Object](r Getter, obj Object) (x T, err error) {
	obj, err = Resolve(r, obj)
	if err != nil || obj == nil {
		return x, err
	}

	x, ok := obj.(T)
	if ok {
		return x, nil
	}
	return x, &MalformedFileError{
		Err: fmt.Errorf("expected %T but got %T", x, obj),
	}
}

// Helper functions for getting objects of a specific type.  Each of these
// functions calls Resolve on the object before converting it to the desired
// type.  If the object is null, the zero value is returned without error.
// If the object has the wrong type, an error is returned.
var (
	GetArray   = resolveAndCast[Array]
	GetBool    = resolveAndCast[Bool]
	GetDict    = resolveAndCast[Dict]
	GetInteger = resolveAndCast[Integer]
	GetName    = resolveAndCast[Name]
	GetStream  = resolveAndCast[*Stream]
	GetString  = resolveAndCast[String]
)

// GetNumber resolves references and makes sure the resulting object is an
// Integer or a Real.
func GetNumber(r Getter, obj Object) (Number, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch x := obj.(type) {
	case Integer:
		return Number(x), nil
	case Real:
		return Number(x), nil
	case Number:
		return x, nil
	default:
		return 0, &MalformedFileError{
			Err: fmt.Errorf("expected number but got %T", obj),
		}
	}
}

// GetDictTyped resolves references and makes sure the resulting object is a
// dictionary.  If the dictionary has a /Type entry, its value must equal
// tp.  A missing /Type entry is accepted.
func GetDictTyped(r Getter, obj Object, tp Name) (Dict, error) {
	dict, err := GetDict(r, obj)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, &MalformedFileError{Err: fmt.Errorf("missing %s dictionary", tp)}
	}
	val, err := GetName(r, dict["Type"])
	if err != nil {
		return nil, err
	}
	if val != "" && val != tp {
		return nil, &MalformedFileError{
			Err: fmt.Errorf("expected dictionary of type %q, got %q", tp, val),
		}
	}
	return dict, nil
}

// ReadStream returns the decoded contents of a stream.  Only the
// FlateDecode filter is supported.
func ReadStream(r Getter, obj Object) ([]byte, error) {
	stm, err := GetStream(r, obj)
	if err != nil {
		return nil, err
	}
	if stm == nil {
		return nil, nil
	}

	// Streams may be cached by the reader, so we always start from the
	// beginning.
	if seeker, ok := stm.R.(io.Seeker); ok {
		_, err := seeker.Seek(0, io.SeekStart)
		if err != nil {
			return nil, err
		}
	}

	var filters []Name
	switch f := stm.Dict["Filter"].(type) {
	case nil:
	case Name:
		filters = []Name{f}
	case Array:
		for _, elem := range f {
			name, err := GetName(r, elem)
			if err != nil {
				return nil, err
			}
			filters = append(filters, name)
		}
	default:
		return nil, Errorf("invalid /Filter entry %s", Format(f))
	}

	data, err := io.ReadAll(stm.R)
	if err != nil {
		return nil, err
	}
	for _, name := range filters {
		switch name {
		case "FlateDecode", "Fl":
			zr, err := zlib.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, Wrap(err, "FlateDecode")
			}
			data, err = io.ReadAll(zr)
			if err != nil {
				return nil, Wrap(err, "FlateDecode")
			}
		default:
			return nil, fmt.Errorf("unsupported filter %q", name)
		}
	}
	return data, nil
}
