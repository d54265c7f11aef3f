// SPDX-License-Identifier: MPL-2.0

// Package version implements the dotted-numeric version scheme used by
// lockfile entries and recipe filenames (e.g. "1.2.3", "0.11", "2.0.0.1").
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed dotted-numeric version. The original text is preserved
// so that String round-trips exactly (recipe filenames must not be rewritten
// with a normalized form).
type Version struct {
	raw   string
	parts []int
}

// Parse parses a dot-separated numeric version string. Every component must
// be a non-negative decimal integer; an empty string or an empty component
// is an error.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	fields := strings.Split(s, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || f == "" {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a non-negative integer", s, f)
		}
		parts = append(parts, n)
	}

	return Version{raw: s, parts: parts}, nil
}

// MustParse is a test/constant helper that panics on invalid input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether s parses as a dotted-numeric version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String returns the original version text.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether v is the zero Version (never produced by Parse).
func (v Version) IsZero() bool {
	return v.raw == ""
}

// Compare orders two versions component-wise. Missing trailing components
// compare as zero, so "1.2" == "1.2.0". Returns -1, 0, or +1.
func Compare(a, b Version) int {
	n := max(len(a.parts), len(b.parts))
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a.parts) {
			av = a.parts[i]
		}
		if i < len(b.parts) {
			bv = b.parts[i]
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// Less reports whether a orders strictly before b.
func Less(a, b Version) bool {
	return Compare(a, b) < 0
}
