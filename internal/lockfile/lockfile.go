// SPDX-License-Identifier: MPL-2.0

// Package lockfile reads the TOML dependency lockfile (deps.lock by default).
//
// The lockfile records the exact resolved version of every third-party
// dependency:
//
//	version = 1
//
//	[[package]]
//	name = "zlib"
//	version = "1.3.1"
//
// stoker only ever reads this file; version pins are changed through the
// external lock-updater tool so that the file stays consistent with whatever
// else that tool maintains.
package lockfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"stoker-cli/internal/version"
)

type (
	// Lockfile is the parsed lockfile document.
	Lockfile struct {
		// FormatVersion is the lockfile format version.
		FormatVersion int `toml:"version"`

		// Entries are the raw [[package]] entries in file order.
		Entries []Entry `toml:"package"`
	}

	// Entry is one [[package]] entry.
	Entry struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	}

	// Package is a validated (name, parsed version) pair.
	Package struct {
		Name    string
		Version version.Version
	}
)

// Load reads and parses the lockfile at path.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	var lock Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile %s: %w", path, err)
	}

	if err := lock.validate(path); err != nil {
		return nil, err
	}

	return &lock, nil
}

// validate rejects duplicate package names. Invariant: one resolved version
// per package.
func (l *Lockfile) validate(path string) error {
	seen := make(map[string]int, len(l.Entries))
	for i, e := range l.Entries {
		if e.Name == "" {
			continue
		}
		if first, dup := seen[e.Name]; dup {
			return fmt.Errorf("lockfile %s: package %q appears twice (entries %d and %d)", path, e.Name, first, i)
		}
		seen[e.Name] = i
	}
	return nil
}

// Packages returns the well-formed entries as parsed packages, sorted by
// name. Entries with an empty name or version, or a version that does not
// parse as dotted-numeric, are skipped (malformed entries are not fatal for
// a manually supervised tool; Skipped reports them).
func (l *Lockfile) Packages() []Package {
	pkgs := make([]Package, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Name == "" || e.Version == "" {
			continue
		}
		v, err := version.Parse(e.Version)
		if err != nil {
			continue
		}
		pkgs = append(pkgs, Package{Name: e.Name, Version: v})
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs
}

// Skipped returns the entries that Packages filtered out, with a reason each.
// The uprev command reports these so silent skips stay visible in verbose runs.
func (l *Lockfile) Skipped() []string {
	var out []string
	for i, e := range l.Entries {
		switch {
		case e.Name == "":
			out = append(out, fmt.Sprintf("entry %d: missing package name", i))
		case e.Version == "":
			out = append(out, fmt.Sprintf("package %q: missing version", e.Name))
		case !version.IsValid(e.Version):
			out = append(out, fmt.Sprintf("package %q: version %q is not dotted-numeric", e.Name, e.Version))
		}
	}
	return out
}
