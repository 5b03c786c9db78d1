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

import "fmt"

// Version represents a version of the PDF standard.
type Version int

// PDF versions supported by this library.
const (
	_ Version = iota
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a PDF version string like "1.7" or "2.0".
func ParseVersion(verString string) (Version, error) {
	switch verString {
	case "1.4":
		return V1_4, nil
	case "1.5":
		return V1_5, nil
	case "1.6":
		return V1_6, nil
	case "1.7":
		return V1_7, nil
	case "2.0":
		return V2_0, nil
	}
	return 0, fmt.Errorf("unsupported PDF version %q", verString)
}

// ToString returns the string representation of ver, e.g. "1.7".
func (ver Version) ToString() (string, error) {
	switch ver {
	case V1_4:
		return "1.4", nil
	case V1_5:
		return "1.5", nil
	case V1_6:
		return "1.6", nil
	case V1_7:
		return "1.7", nil
	case V2_0:
		return "2.0", nil
	}
	return "", fmt.Errorf("unsupported PDF version %d", int(ver))
}

func (ver Version) String() string {
	s, err := ver.ToString()
	if err != nil {
		return fmt.Sprintf("Version(%d)", int(ver))
	}
	return s
}

// CheckVersion checks whether the PDF file being written has version
// minVersion or later.  If the version is new enough, nil is returned.
// Otherwise a [VersionError] for the given operation is returned.
func CheckVersion(w *Writer, operation string, minVersion Version) error {
	if w.Version >= minVersion {
		return nil
	}
	return &VersionError{Operation: operation, Earliest: minVersion}
}
