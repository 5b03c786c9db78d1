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

// Pdf-fixture-inspect shows the words and the document outline found in a
// PDF file.
//
// Usage:
//
//	pdf-fixture-inspect FILENAME
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/pdffixture/extract"
	"seehuhn.de/go/pdffixture/pagetree"
	"seehuhn.de/go/pdffixture/pdf"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: pdf-fixture-inspect FILENAME")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	err := run(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
}

func run(fname string) error {
	r, err := pdf.Open(fname)
	if err != nil {
		return err
	}
	defer r.Close()

	catalog, err := r.Catalog()
	if err != nil {
		return err
	}
	numPages, err := pagetree.NumPages(r, catalog.Pages)
	if err != nil {
		return err
	}

	for pageNo := range numPages {
		lines, err := extract.Lines(r, pageNo)
		if err != nil {
			return err
		}
		words, err := extract.Words(r, pageNo)
		if err != nil {
			return err
		}

		fmt.Printf("page %d: %d lines, %d words\n", pageNo+1, len(lines), len(words))
		for _, l := range lines {
			fmt.Printf("  %q %s %g at (%.2f, %.2f)\n", l.Text, l.Font, l.FontSize, l.X, l.Y)
		}
		for _, w := range words {
			b := w.Bounds()
			fmt.Printf("    %-20s x=%.2f y=%.2f w=%.2f h=%.2f\n",
				w.Text, b.LLx, b.LLy, b.Dx(), b.Dy())
		}
	}

	toc, err := extract.TOC(r)
	if err != nil {
		return err
	}
	fmt.Println()
	if len(toc) == 0 {
		fmt.Println("no document outline")
		return nil
	}

	width := lineWidth()
	for _, e := range toc {
		line := strings.Repeat("  ", e.Level) + e.Title
		if e.Page >= 0 {
			label := fmt.Sprintf(" page %d", e.Page+1)
			rep := max(width-len(line)-len(label)-2, 3)
			line += "  " + strings.Repeat(".", rep) + label
		}
		fmt.Println(line)
	}
	return nil
}

// lineWidth returns the width of the terminal, or 80 if standard output
// is not a terminal.
func lineWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		return 80
	}
	return width
}
