// SPDX-License-Identifier: MPL-2.0

// Package uprev reconciles the dependency lockfile against the recipe tree.
//
// For every package in the lockfile there are three possible outcomes: no
// recipe exists (offer to create one), the newest recipe is ahead of the
// lockfile (offer to pin the lockfile back to the known-good recipe version),
// or the newest recipe is behind (offer to uprev the recipe to the lockfile
// version). Matching versions need no action.
package uprev

import (
	"fmt"

	"stoker-cli/internal/lockfile"
	"stoker-cli/internal/recipe"
	"stoker-cli/internal/version"
)

// Action is the decision for one package.
type Action int

const (
	// ActionNone means the recipe and lockfile agree.
	ActionNone Action = iota
	// ActionCreate means no recipe exists and one should be created.
	ActionCreate
	// ActionDowngradeLock means the recipe is newer; the lockfile should be
	// pinned back to the recipe version via the lock tool.
	ActionDowngradeLock
	// ActionUprevRecipe means the lockfile is newer; the recipe should be
	// renamed to the lockfile version.
	ActionUprevRecipe
)

// String returns a short human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "up-to-date"
	case ActionCreate:
		return "create recipe"
	case ActionDowngradeLock:
		return "downgrade lockfile"
	case ActionUprevRecipe:
		return "uprev recipe"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Decision is the planned outcome for one lockfile package.
type Decision struct {
	// Package is the package name.
	Package string
	// LockVersion is the version resolved in the lockfile.
	LockVersion version.Version
	// RecipeVersion is the newest recipe version; zero when no recipe exists.
	RecipeVersion version.Version
	// Action is the planned action.
	Action Action
}

// Plan computes a decision per lockfile package, in lockfile (name) order.
// Recipes for packages absent from the lockfile are not decisions; see
// Orphans.
func Plan(pkgs []lockfile.Package, recipes *recipe.Set) []Decision {
	decisions := make([]Decision, 0, len(pkgs))
	for _, pkg := range pkgs {
		d := Decision{Package: pkg.Name, LockVersion: pkg.Version}

		latest, ok := recipes.Latest(pkg.Name)
		if !ok {
			d.Action = ActionCreate
			decisions = append(decisions, d)
			continue
		}

		d.RecipeVersion = latest.Version
		switch version.Compare(latest.Version, pkg.Version) {
		case 1:
			d.Action = ActionDowngradeLock
		case -1:
			d.Action = ActionUprevRecipe
		default:
			d.Action = ActionNone
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// Orphans returns recipe package names that have no lockfile entry. They are
// reported but never acted on; removing recipes is out of scope for uprev.
func Orphans(pkgs []lockfile.Package, recipes *recipe.Set) []string {
	locked := make(map[string]struct{}, len(pkgs))
	for _, pkg := range pkgs {
		locked[pkg.Name] = struct{}{}
	}

	var orphans []string
	for _, name := range recipes.Packages() {
		if _, ok := locked[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans
}
