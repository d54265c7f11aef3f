// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"strings"
	"testing"
)

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		command   string
		want      []string
		expectErr bool
	}{
		{
			name:    "plain words",
			command: "forge manifest",
			want:    []string{"forge", "manifest"},
		},
		{
			name:    "quoted argument with spaces",
			command: `forge pin --lockfile "my deps.lock"`,
			want:    []string{"forge", "pin", "--lockfile", "my deps.lock"},
		},
		{
			name:    "single quotes",
			command: "tool 'a b' c",
			want:    []string{"tool", "a b", "c"},
		},
		{
			name:      "empty command",
			command:   "",
			expectErr: true,
		},
		{
			name:      "unterminated quote",
			command:   `tool "oops`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			argv, err := SplitCommand(tt.command)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("SplitCommand(%q): expected error, got %v", tt.command, argv)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitCommand(%q): unexpected error: %v", tt.command, err)
			}
			if len(argv) != len(tt.want) {
				t.Fatalf("SplitCommand(%q) = %v, want %v", tt.command, argv, tt.want)
			}
			for i := range argv {
				if argv[i] != tt.want[i] {
					t.Errorf("argv[%d] = %q, want %q", i, argv[i], tt.want[i])
				}
			}
		})
	}
}

func TestExitStatusError(t *testing.T) {
	t.Parallel()

	err := &ExitStatusError{Argv: []string{"forge", "manifest", "zlib"}, Code: 3}
	if !strings.Contains(err.Error(), "forge manifest zlib") {
		t.Errorf("error message missing argv: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "status 3") {
		t.Errorf("error message missing exit code: %q", err.Error())
	}
}
