// SPDX-License-Identifier: MPL-2.0

// Package recipe manages the build-recipe tree.
//
// Recipes live at <recipes_dir>/<package>/<package>-<version>.recipe, one
// file per package version. The filename is the source of truth for the
// recipe's version: uprevving a recipe is a rename, not a content rewrite.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stoker-cli/internal/version"
)

// Ext is the recipe file extension, including the dot.
const Ext = ".recipe"

type (
	// File is one recipe file discovered by Scan.
	File struct {
		// Package is the package name (equals the parent directory name).
		Package string
		// Version is the version parsed from the filename.
		Version version.Version
		// Path is the absolute path of the recipe file.
		Path string
	}

	// Set holds all discovered recipes grouped by package. Each package's
	// recipes are sorted ascending by version.
	Set struct {
		byPackage map[string][]File
	}

	// Store scans and mutates a recipe tree rooted at Dir.
	Store struct {
		// Dir is the root of the recipe tree.
		Dir string
	}
)

// NewStore creates a Store for the given recipes directory.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// ParseFilename extracts (name, version) from a recipe filename such as
// "icu-four-c-74.2.recipe". The version starts after the last dash whose
// remainder parses as dotted-numeric, so package names may contain dashes.
// ok is false for filenames that do not match the convention.
func ParseFilename(base string) (name string, ver version.Version, ok bool) {
	stem, found := strings.CutSuffix(base, Ext)
	if !found || stem == "" {
		return "", version.Version{}, false
	}

	i := strings.LastIndex(stem, "-")
	if i <= 0 || i == len(stem)-1 {
		return "", version.Version{}, false
	}

	v, err := version.Parse(stem[i+1:])
	if err != nil {
		return "", version.Version{}, false
	}

	return stem[:i], v, true
}

// Scan walks the recipe tree and returns the discovered recipes. Files that
// do not match the naming convention, or whose embedded name does not match
// their parent directory, are skipped. Two files claiming the same package
// and version are an error (at most one recipe per package per version).
func (s *Store) Scan() (*Set, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes directory %s: %w", s.Dir, err)
	}

	set := &Set{byPackage: make(map[string][]File)}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pkg := entry.Name()

		files, err := os.ReadDir(filepath.Join(s.Dir, pkg))
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe directory for %s: %w", pkg, err)
		}

		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name, v, ok := ParseFilename(f.Name())
			if !ok || name != pkg {
				continue
			}
			set.byPackage[pkg] = append(set.byPackage[pkg], File{
				Package: pkg,
				Version: v,
				Path:    filepath.Join(s.Dir, pkg, f.Name()),
			})
		}
	}

	for pkg, files := range set.byPackage {
		sort.Slice(files, func(i, j int) bool { return version.Less(files[i].Version, files[j].Version) })
		for i := 1; i < len(files); i++ {
			if version.Compare(files[i-1].Version, files[i].Version) == 0 {
				return nil, fmt.Errorf("package %s has two recipes for version %s (%s, %s)",
					pkg, files[i].Version, filepath.Base(files[i-1].Path), filepath.Base(files[i].Path))
			}
		}
		set.byPackage[pkg] = files
	}

	return set, nil
}

// Packages returns the discovered package names, sorted.
func (set *Set) Packages() []string {
	names := make([]string, 0, len(set.byPackage))
	for name := range set.byPackage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipes returns the recipes for a package, sorted ascending by version.
func (set *Set) Recipes(pkg string) []File {
	return set.byPackage[pkg]
}

// Latest returns the highest-versioned recipe for a package, if any.
func (set *Set) Latest(pkg string) (File, bool) {
	files := set.byPackage[pkg]
	if len(files) == 0 {
		return File{}, false
	}
	return files[len(files)-1], true
}

// Path returns the conventional path of a recipe file, whether or not it exists.
func (s *Store) Path(pkg string, v version.Version) string {
	return filepath.Join(s.Dir, pkg, fmt.Sprintf("%s-%s%s", pkg, v, Ext))
}

// Uprev renames a package's recipe from one version to another. The target
// must not already exist and the source must.
func (s *Store) Uprev(pkg string, from, to version.Version) error {
	src := s.Path(pkg, from)
	dst := s.Path(pkg, to)

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("recipe %s does not exist: %w", filepath.Base(src), err)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("recipe %s already exists", filepath.Base(dst))
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to uprev recipe for %s: %w", pkg, err)
	}
	return nil
}
