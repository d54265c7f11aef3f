// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stoker-cli/internal/execx"
	"stoker-cli/internal/issue"
	"stoker-cli/internal/lockfile"
	"stoker-cli/internal/recipe"
	"stoker-cli/internal/tui"
	"stoker-cli/internal/uprev"
)

// newUprevCommand creates the `stoker uprev` command.
func newUprevCommand() *cobra.Command {
	var (
		lockPath   string
		recipesDir string
		assumeYes  bool
		dryRun     bool
	)

	uprevCmd := &cobra.Command{
		Use:   "uprev",
		Short: "Reconcile the lockfile against the recipe tree",
		Long: `Reconcile the dependency lockfile against the recipe tree.

For every package in the lockfile, stoker compares the resolved version
against the newest recipe and proposes one of:

  create     no recipe exists; write one from the template
  uprev      the lockfile moved ahead; rename the recipe
  pin        the recipe is ahead; pin the lockfile back via the lock tool

Every change is confirmed interactively unless --yes is given. After a
recipe changes, the manifest tool reruns for that package.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lockPath == "" {
				lockPath = cfg.Lockfile
			}
			if recipesDir == "" {
				recipesDir = cfg.RecipesDir
			}
			return runUprev(cmd, lockPath, recipesDir, assumeYes, dryRun)
		},
	}

	uprevCmd.Flags().StringVar(&lockPath, "lockfile", "", "lockfile path (default from config)")
	uprevCmd.Flags().StringVar(&recipesDir, "recipes", "", "recipes directory (default from config)")
	uprevCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "apply all changes without prompting")
	uprevCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the plan without changing anything")

	return uprevCmd
}

func runUprev(cmd *cobra.Command, lockPath, recipesDir string, assumeYes, dryRun bool) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr())

	lock, err := lockfile.Load(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rendered, _ := issue.Get(issue.LockfileNotFoundId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
		}
		return err
	}
	for _, reason := range lock.Skipped() {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+reason)
	}

	store := recipe.NewStore(recipesDir)
	set, err := store.Scan()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rendered, _ := issue.Get(issue.RecipesDirNotFoundId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
		}
		return err
	}

	pkgs := lock.Packages()
	decisions := uprev.Plan(pkgs, set)

	for _, orphan := range uprev.Orphans(pkgs, set) {
		logger.Debug("recipe has no lockfile entry", "package", orphan)
	}

	manifestTool, err := execx.SplitCommand(cfg.Tools.Manifest)
	if err != nil {
		return err
	}
	lockTool, err := execx.SplitCommand(cfg.Tools.Lock)
	if err != nil {
		return err
	}

	engine := &uprev.Engine{
		Store:        store,
		Runner:       execx.New(),
		ManifestTool: manifestTool,
		LockTool:     lockTool,
		Confirm: func(title, description string) (bool, error) {
			return tui.Confirm(tui.ConfirmOptions{Title: title, Description: description})
		},
		Out:       out,
		Log:       logger,
		AssumeYes: assumeYes,
		DryRun:    dryRun,
	}

	sum, err := engine.Run(cmd.Context(), decisions)
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(out, SubtitleStyle.Render("Aborted."))
			return &ExitError{Code: 1, Err: err}
		}
		var exitErr *execx.ExitStatusError
		if errors.As(err, &exitErr) {
			rendered, _ := issue.Get(issue.ToolFailedId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
			return &ExitError{Code: exitErr.Code, Err: err}
		}
		return err
	}

	fmt.Fprintf(out, "%s %d created, %d uprevved, %d pinned, %d declined, %d up-to-date\n",
		SuccessStyle.Render("Done:"),
		sum.Created, sum.Uprevved, sum.Downgraded, sum.Declined, sum.Unchanged)
	return nil
}
