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

// Pdf-fixtures writes the PDF files used for testing word position and
// outline extraction, and prints the expected extraction results.
//
// Usage:
//
//	pdf-fixtures [-dir DIR] [-version 1.7] [-title TITLE] [-human]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"seehuhn.de/go/pdffixture"
	"seehuhn.de/go/pdffixture/pdf"
)

var (
	dir     = flag.String("dir", ".", "output directory")
	version = flag.String("version", "1.7", "PDF version of the output files")
	title   = flag.String("title", "", "document title for the metadata")
	human   = flag.Bool("human", false, "write uncompressed content streams")
)

func main() {
	flag.Parse()
	err := run()
	if err != nil {
		log.Fatal(err)
	}
}

func run() error {
	v, err := pdf.ParseVersion(*version)
	if err != nil {
		return err
	}
	opt := &pdffixture.Options{
		Version:       v,
		Title:         *title,
		HumanReadable: *human,
	}

	err = os.MkdirAll(*dir, 0o755)
	if err != nil {
		return err
	}

	simple, err := pdffixture.SimpleFixture(opt)
	if err != nil {
		return err
	}
	fname := filepath.Join(*dir, "simple.pdf")
	err = simple.WriteFile(fname)
	if err != nil {
		return err
	}
	fmt.Println("created", fname)
	fmt.Println("expected positions:")
	for _, w := range simple.Expected() {
		fmt.Printf("  %s: x=%g, y=%g, width=%.3f, height=%g\n",
			w.Text, w.X, w.Y, w.Width, w.Height)
	}

	toc, err := pdffixture.TOCFixture(opt)
	if err != nil {
		return err
	}
	fname = filepath.Join(*dir, "toc-test.pdf")
	err = toc.WriteFile(fname)
	if err != nil {
		return err
	}
	entries := toc.Walk()
	fmt.Println()
	fmt.Println("created", fname)
	fmt.Printf("%d pages, %d outline entries:\n", toc.NumPages(), len(entries))
	for _, e := range entries {
		fmt.Printf("  %*s%s -> page %d\n", 2*e.Depth, "", e.Title, e.Page)
	}

	return nil
}
