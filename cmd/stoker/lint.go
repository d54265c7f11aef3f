// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stoker-cli/internal/execx"
	"stoker-cli/internal/issue"
	"stoker-cli/internal/lint"
)

// newLintCommand creates the `stoker lint` command.
func newLintCommand() *cobra.Command {
	var fresh bool

	lintCmd := &cobra.Command{
		Use:   "lint [-- analyzer args]",
		Short: "Run the static analyzer with the project suppression list",
		Long: `Run the static analyzer with the project suppression list.

The compiler is asked for its sysroot so the analyzer resolves the same
standard library the build uses. The built-in suppression list is passed
as -A flags; arguments after -- go to the analyzer verbatim.

The run fails if the analyzer exits non-zero or reports any warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, fresh, args)
		},
	}

	lintCmd.Flags().BoolVar(&fresh, "fresh", false, "discard the analyzer cache before running")

	return lintCmd
}

func runLint(cmd *cobra.Command, fresh bool, extraArgs []string) error {
	compiler, err := execx.SplitCommand(cfg.Lint.Compiler)
	if err != nil {
		return err
	}
	analyzer, err := execx.SplitCommand(cfg.Lint.Analyzer)
	if err != nil {
		return err
	}

	cacheDir := cfg.Lint.CacheDir
	if cacheDir == "" {
		if userCache, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(userCache, "stoker", "lint")
		}
	}

	runner := &lint.Runner{
		Exec:     execx.New(),
		Compiler: compiler,
		Analyzer: analyzer,
		CacheDir: cacheDir,
		Fresh:    fresh,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Log:      newLogger(cmd.ErrOrStderr()),
	}

	if err := runner.Run(cmd.Context(), extraArgs); err != nil {
		var warnErr *lint.WarningsError
		if errors.As(err, &warnErr) {
			rendered, _ := issue.Get(issue.AnalyzerWarningsId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
			return &ExitError{Code: 1, Err: err}
		}
		var exitErr *execx.ExitStatusError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.Code, Err: err}
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" analyzer reported no warnings")
	return nil
}
