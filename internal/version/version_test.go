// SPDX-License-Identifier: MPL-2.0

package version

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "single component", input: "7"},
		{name: "three components", input: "1.2.3"},
		{name: "four components", input: "2.0.0.1"},
		{name: "leading zeros allowed", input: "1.02.3"},
		{name: "empty string", input: "", expectErr: true},
		{name: "empty component", input: "1..3", expectErr: true},
		{name: "trailing dot", input: "1.2.", expectErr: true},
		{name: "alpha component", input: "1.2.beta", expectErr: true},
		{name: "negative component", input: "1.-2", expectErr: true},
		{name: "semver prerelease", input: "1.2.3-rc1", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Parse(%q): expected error, got %v", tt.input, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want round-trip of %q", v.String(), tt.input)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2", "1.2.0", 0},
		{"1.2.0.0", "1.2", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.10", "1.9", 1},
		{"0.9.9", "1.0", -1},
		{"2", "1.999.999", 1},
		{"1.02", "1.2", 0},
	}

	for _, tt := range tests {
		got := Compare(MustParse(tt.a), MustParse(tt.b))
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Compare must be antisymmetric.
		if rev := Compare(MustParse(tt.b), MustParse(tt.a)); rev != -tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, rev, -tt.want)
		}
	}
}

func TestLess(t *testing.T) {
	t.Parallel()

	if !Less(MustParse("1.2.3"), MustParse("1.3")) {
		t.Error("expected 1.2.3 < 1.3")
	}
	if Less(MustParse("1.2"), MustParse("1.2.0")) {
		t.Error("1.2 and 1.2.0 must compare equal")
	}
}
