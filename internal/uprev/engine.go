// SPDX-License-Identifier: MPL-2.0

package uprev

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"stoker-cli/internal/execx"
	"stoker-cli/internal/recipe"
)

type (
	// ConfirmFunc asks the user a yes/no question. Production wiring uses
	// tui.Confirm; tests substitute a canned answer.
	ConfirmFunc func(title, description string) (bool, error)

	// Engine applies planned decisions: it prompts, mutates the recipe tree,
	// and runs the follow-up tools.
	Engine struct {
		// Store is the recipe tree being maintained.
		Store *recipe.Store
		// Runner executes the external tools.
		Runner execx.Runner
		// ManifestTool is the argv prefix of the manifest regenerator; the
		// package name is appended.
		ManifestTool []string
		// LockTool is the argv prefix of the lock updater; the package name
		// and target version are appended.
		LockTool []string
		// Confirm gates every mutation.
		Confirm ConfirmFunc
		// Out receives status lines.
		Out io.Writer
		// Log receives verbose diagnostics.
		Log *log.Logger
		// AssumeYes skips confirmation prompts.
		AssumeYes bool
		// DryRun prints what would happen without prompting or mutating.
		DryRun bool
	}

	// Summary counts what a Run did.
	Summary struct {
		Created    int
		Downgraded int
		Uprevved   int
		Unchanged  int
		Declined   int
	}
)

// Run applies each decision in order. The first tool or filesystem failure
// aborts the run; earlier mutations are not rolled back (this is a manually
// supervised tool and the follow-up tools are idempotent).
func (e *Engine) Run(ctx context.Context, decisions []Decision) (Summary, error) {
	var sum Summary

	for _, d := range decisions {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		if err := e.apply(ctx, d, &sum); err != nil {
			return sum, err
		}
	}

	return sum, nil
}

func (e *Engine) apply(ctx context.Context, d Decision, sum *Summary) error {
	switch d.Action {
	case ActionNone:
		sum.Unchanged++
		e.Log.Debug("package up-to-date", "package", d.Package, "version", d.LockVersion.String())
		return nil

	case ActionCreate:
		title := fmt.Sprintf("Create recipe %s-%s?", d.Package, d.LockVersion)
		ok, err := e.confirm(title, "No recipe exists for this lockfile entry")
		if err != nil || !ok {
			if !ok && err == nil {
				sum.Declined++
			}
			return err
		}
		if e.DryRun {
			return nil
		}

		path, err := e.Store.Create(d.Package, d.LockVersion)
		if err != nil {
			return fmt.Errorf("failed to create recipe for %s: %w", d.Package, err)
		}
		fmt.Fprintf(e.Out, "created %s\n", path)
		sum.Created++
		return e.regenManifest(ctx, d.Package)

	case ActionDowngradeLock:
		title := fmt.Sprintf("Pin %s back to %s in the lockfile?", d.Package, d.RecipeVersion)
		desc := fmt.Sprintf("Recipe %s is newer than lockfile %s", d.RecipeVersion, d.LockVersion)
		ok, err := e.confirm(title, desc)
		if err != nil || !ok {
			if !ok && err == nil {
				sum.Declined++
			}
			return err
		}
		if e.DryRun {
			return nil
		}

		argv := append(append([]string{}, e.LockTool...), d.Package, d.RecipeVersion.String())
		if err := e.runTool(ctx, argv); err != nil {
			return fmt.Errorf("lock update for %s failed: %w", d.Package, err)
		}
		fmt.Fprintf(e.Out, "pinned %s to %s\n", d.Package, d.RecipeVersion)
		sum.Downgraded++
		return nil

	case ActionUprevRecipe:
		title := fmt.Sprintf("Uprev %s recipe %s to %s?", d.Package, d.RecipeVersion, d.LockVersion)
		ok, err := e.confirm(title, "Renames the recipe file to the lockfile version")
		if err != nil || !ok {
			if !ok && err == nil {
				sum.Declined++
			}
			return err
		}
		if e.DryRun {
			return nil
		}

		if err := e.Store.Uprev(d.Package, d.RecipeVersion, d.LockVersion); err != nil {
			return fmt.Errorf("failed to uprev recipe for %s: %w", d.Package, err)
		}
		fmt.Fprintf(e.Out, "uprevved %s: %s -> %s\n", d.Package, d.RecipeVersion, d.LockVersion)
		sum.Uprevved++
		return e.regenManifest(ctx, d.Package)

	default:
		return fmt.Errorf("unknown action %d for package %s", d.Action, d.Package)
	}
}

// confirm resolves the gate for one mutation. Dry runs and --yes short-circuit
// to true without prompting.
func (e *Engine) confirm(title, description string) (bool, error) {
	if e.DryRun {
		fmt.Fprintf(e.Out, "would ask: %s\n", title)
		return true, nil
	}
	if e.AssumeYes {
		return true, nil
	}
	return e.Confirm(title, description)
}

// regenManifest reruns the manifest tool for pkg after a recipe mutation.
func (e *Engine) regenManifest(ctx context.Context, pkg string) error {
	argv := append(append([]string{}, e.ManifestTool...), pkg)
	if err := e.runTool(ctx, argv); err != nil {
		return fmt.Errorf("manifest regeneration for %s failed: %w", pkg, err)
	}
	return nil
}

func (e *Engine) runTool(ctx context.Context, argv []string) error {
	e.Log.Debug("running tool", "command", strings.Join(argv, " "))
	return e.Runner.Run(ctx, argv, execx.Options{Stdout: e.Out, Stderr: e.Out})
}
