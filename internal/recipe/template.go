// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"stoker-cli/internal/version"
)

// recipeTemplate is the skeleton written for brand-new recipes. The copyright
// year is the year of creation; the source and build sections are left for
// the author to fill in before the manifest can be regenerated.
const recipeTemplate = `# Copyright {{.Year}} The Stoker Authors. All rights reserved.
# Build recipe for {{.Name}}.

name = "{{.Name}}"
version = "{{.Version}}"

[source]
# url = ""
# sha256 = ""

[build]
# configure = []
# steps = []
`

var tmpl = template.Must(template.New("recipe").Parse(recipeTemplate))

// Create writes a new recipe for pkg at the given version from the fixed
// template. The package directory is created if needed; an existing recipe
// for the same version is never overwritten.
func (s *Store) Create(pkg string, v version.Version) (string, error) {
	path := s.Path(pkg, v)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("recipe %s already exists", filepath.Base(path))
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Name    string
		Version string
		Year    int
	}{
		Name:    pkg,
		Version: v.String(),
		Year:    time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render recipe template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create recipe directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write recipe: %w", err)
	}

	return path, nil
}
