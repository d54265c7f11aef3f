// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stoker-cli/internal/version"
)

func TestParseFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base        string
		wantName    string
		wantVersion string
		wantOK      bool
	}{
		{base: "zlib-1.3.1.recipe", wantName: "zlib", wantVersion: "1.3.1", wantOK: true},
		{base: "icu-four-c-74.2.recipe", wantName: "icu-four-c", wantVersion: "74.2", wantOK: true},
		{base: "libfoo-7.recipe", wantName: "libfoo", wantVersion: "7", wantOK: true},
		{base: "zlib-1.3.1.txt", wantOK: false},
		{base: "zlib.recipe", wantOK: false},
		{base: "zlib-.recipe", wantOK: false},
		{base: "-1.2.recipe", wantOK: false},
		{base: "zlib-1.2-rc1.recipe", wantOK: false},
		{base: "README", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			t.Parallel()

			name, v, ok := ParseFilename(tt.base)
			if ok != tt.wantOK {
				t.Fatalf("ParseFilename(%q) ok = %v, want %v", tt.base, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if name != tt.wantName || v.String() != tt.wantVersion {
				t.Errorf("ParseFilename(%q) = (%s, %s), want (%s, %s)",
					tt.base, name, v, tt.wantName, tt.wantVersion)
			}
		})
	}
}

// seedRecipe creates an empty recipe file under dir following the naming convention.
func seedRecipe(t *testing.T, dir, pkg, ver string) {
	t.Helper()
	pkgDir := filepath.Join(dir, pkg)
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatalf("failed to create package dir: %v", err)
	}
	path := filepath.Join(pkgDir, fmt.Sprintf("%s-%s%s", pkg, ver, Ext))
	if err := os.WriteFile(path, []byte("# recipe\n"), 0o644); err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRecipe(t, dir, "zlib", "1.3.1")
	seedRecipe(t, dir, "openssl", "3.0.12")
	seedRecipe(t, dir, "openssl", "1.1.1")
	// Noise that must be skipped silently.
	seedRecipe(t, dir, "openssl", "3.1.0")
	if err := os.WriteFile(filepath.Join(dir, "openssl", "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "zlib", "other-2.0.recipe"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "toplevel-1.0.recipe"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := NewStore(dir).Scan()
	if err != nil {
		t.Fatalf("Scan() unexpected error: %v", err)
	}

	if got := set.Packages(); len(got) != 2 || got[0] != "openssl" || got[1] != "zlib" {
		t.Fatalf("Packages() = %v, want [openssl zlib]", got)
	}

	ssl := set.Recipes("openssl")
	if len(ssl) != 3 {
		t.Fatalf("Recipes(openssl) = %d entries, want 3", len(ssl))
	}
	// Ascending version order.
	want := []string{"1.1.1", "3.0.12", "3.1.0"}
	for i, f := range ssl {
		if f.Version.String() != want[i] {
			t.Errorf("Recipes(openssl)[%d] = %s, want %s", i, f.Version, want[i])
		}
	}

	latest, ok := set.Latest("openssl")
	if !ok || latest.Version.String() != "3.1.0" {
		t.Errorf("Latest(openssl) = %v, %v; want 3.1.0", latest.Version, ok)
	}
	if _, ok := set.Latest("missing"); ok {
		t.Error("Latest(missing) = ok, want not found")
	}
}

func TestScanDuplicateVersion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRecipe(t, dir, "zlib", "1.2")
	seedRecipe(t, dir, "zlib", "1.2.0")

	_, err := NewStore(dir).Scan()
	if err == nil || !strings.Contains(err.Error(), "two recipes") {
		t.Fatalf("Scan() error = %v, want duplicate-version error", err)
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	path, err := store.Create("brotli", version.MustParse("1.1.0"))
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if filepath.Base(path) != "brotli-1.1.0.recipe" {
		t.Errorf("Create() path = %s, want brotli-1.1.0.recipe", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read created recipe: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `name = "brotli"`) {
		t.Error("created recipe missing package name")
	}
	if !strings.Contains(text, `version = "1.1.0"`) {
		t.Error("created recipe missing version")
	}
	if !strings.Contains(text, fmt.Sprintf("Copyright %d", time.Now().Year())) {
		t.Error("created recipe missing current-year copyright")
	}

	// No overwrite of an existing version.
	if _, err := store.Create("brotli", version.MustParse("1.1.0")); err == nil {
		t.Error("Create() should refuse to overwrite an existing recipe")
	}
}

func TestUprev(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedRecipe(t, dir, "zlib", "1.3.0")
	store := NewStore(dir)

	if err := store.Uprev("zlib", version.MustParse("1.3.0"), version.MustParse("1.3.1")); err != nil {
		t.Fatalf("Uprev() unexpected error: %v", err)
	}

	if _, err := os.Stat(store.Path("zlib", version.MustParse("1.3.1"))); err != nil {
		t.Errorf("uprevved recipe missing: %v", err)
	}
	if _, err := os.Stat(store.Path("zlib", version.MustParse("1.3.0"))); !os.IsNotExist(err) {
		t.Errorf("old recipe still present after uprev")
	}

	// Source gone now, so a second uprev must fail.
	if err := store.Uprev("zlib", version.MustParse("1.3.0"), version.MustParse("1.4.0")); err == nil {
		t.Error("Uprev() from missing source should fail")
	}

	// Target collision must fail.
	seedRecipe(t, dir, "zlib", "1.2.0")
	if err := store.Uprev("zlib", version.MustParse("1.2.0"), version.MustParse("1.3.1")); err == nil {
		t.Error("Uprev() onto existing target should fail")
	}
}
