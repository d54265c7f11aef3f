// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Lockfile != "deps.lock" {
		t.Errorf("Lockfile = %q, want deps.lock", cfg.Lockfile)
	}
	if cfg.RecipesDir != "recipes" {
		t.Errorf("RecipesDir = %q, want recipes", cfg.RecipesDir)
	}
	if cfg.Tools.Manifest == "" || cfg.Tools.Lock == "" {
		t.Error("default tool commands must be non-empty")
	}
	if cfg.Lint.Compiler == "" || cfg.Lint.Analyzer == "" {
		t.Error("default lint commands must be non-empty")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Lockfile != DefaultConfig().Lockfile {
		t.Errorf("Lockfile = %q, want default", cfg.Lockfile)
	}
}

func TestLoadFromCUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
lockfile: "third_party/deps.lock"

tools: {
	manifest: "forge manifest --quiet"
}

ui: {
	verbose: true
}
`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Lockfile != "third_party/deps.lock" {
		t.Errorf("Lockfile = %q, want override", cfg.Lockfile)
	}
	if cfg.Tools.Manifest != "forge manifest --quiet" {
		t.Errorf("Tools.Manifest = %q, want override", cfg.Tools.Manifest)
	}
	// Unset values keep their defaults.
	if cfg.Tools.Lock != DefaultConfig().Tools.Lock {
		t.Errorf("Tools.Lock = %q, want default", cfg.Tools.Lock)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`recipes_dir: "rcp"`+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.RecipesDir != "rcp" {
		t.Errorf("RecipesDir = %q, want rcp", cfg.RecipesDir)
	}

	// Explicit missing file is an error, not a fallback.
	_, err = NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	if err == nil {
		t.Fatal("Load() with missing explicit path should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `lockfile: "unterminated`,
			wantErr: "load configuration",
		},
		{
			name:    "schema violation",
			content: `lockfile: 42` + "\n",
			wantErr: "load configuration",
		},
		{
			name:    "blank tool command",
			content: `tools: {manifest: "  "}` + "\n",
			wantErr: "validate configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	orig.UI.Verbose = true
	orig.Lint.CacheDir = "/tmp/stoker-cache"

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(GenerateCUE(orig)), 0o644); err != nil {
		t.Fatalf("failed to write generated config: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated config failed: %v", err)
	}
	if *cfg != *orig {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", cfg, orig)
	}
}
