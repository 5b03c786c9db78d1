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

// PDF 2.0 sections: 7.7.2 14.3.3

// Catalog represents the entries of the document catalog which are used
// by this library.
type Catalog struct {
	Pages    Reference
	Outlines Reference
	Metadata Reference

	// PageMode specifies how the document is displayed when opened,
	// for example "UseOutlines".  The zero value omits the entry.
	PageMode Name
}

// AsDict returns the catalog as a PDF dictionary.
func (c *Catalog) AsDict() Dict {
	dict := Dict{
		"Type":  Name("Catalog"),
		"Pages": c.Pages,
	}
	if c.Outlines != 0 {
		dict["Outlines"] = c.Outlines
	}
	if c.Metadata != 0 {
		dict["Metadata"] = c.Metadata
	}
	if c.PageMode != "" {
		dict["PageMode"] = c.PageMode
	}
	return dict
}

// DecodeCatalog reads the document catalog from the given dictionary.
func DecodeCatalog(r Getter, obj Object) (*Catalog, error) {
	dict, err := GetDictTyped(r, obj, "Catalog")
	if err != nil {
		return nil, Wrap(err, "document catalog")
	}

	c := &Catalog{}
	var ok bool
	if c.Pages, ok = dict["Pages"].(Reference); !ok {
		return nil, Errorf("document catalog: invalid /Pages entry")
	}
	c.Outlines, _ = dict["Outlines"].(Reference)
	c.Metadata, _ = dict["Metadata"].(Reference)
	c.PageMode, _ = GetName(r, dict["PageMode"])
	return c, nil
}

// Info represents a document information dictionary.
// Empty fields are omitted from the file.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}

// AsDict returns the information dictionary as a PDF dictionary.
func (info *Info) AsDict() Dict {
	dict := Dict{}
	set := func(key Name, val string) {
		if val != "" {
			dict[key] = TextString(val)
		}
	}
	set("Title", info.Title)
	set("Author", info.Author)
	set("Subject", info.Subject)
	set("Creator", info.Creator)
	set("Producer", info.Producer)
	return dict
}

// DecodeInfo reads a document information dictionary.
func DecodeInfo(r Getter, obj Object) (*Info, error) {
	dict, err := GetDict(r, obj)
	if err != nil {
		return nil, Wrap(err, "document information dictionary")
	}
	if dict == nil {
		return nil, nil
	}

	info := &Info{}
	get := func(key Name) string {
		s, _ := GetString(r, dict[key])
		return s.AsTextString()
	}
	info.Title = get("Title")
	info.Author = get("Author")
	info.Subject = get("Subject")
	info.Creator = get("Creator")
	info.Producer = get("Producer")
	return info, nil
}
