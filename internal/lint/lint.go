// SPDX-License-Identifier: MPL-2.0

// Package lint wraps the static analyzer: it resolves the compiler sysroot,
// appends the curated suppression list, forwards extra arguments, and fails
// the run when the analyzer reports warnings.
package lint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"stoker-cli/internal/execx"
)

type (
	// Runner executes one analyzer run.
	Runner struct {
		// Exec runs the compiler and the analyzer.
		Exec execx.Runner
		// Compiler is the compiler argv prefix, used only to print the sysroot.
		Compiler []string
		// Analyzer is the analyzer argv prefix.
		Analyzer []string
		// CacheDir is the analyzer cache directory; removed when Fresh is set,
		// reused otherwise. Empty means no cache management.
		CacheDir string
		// Fresh discards the cache before running.
		Fresh bool
		// Out and Err receive the analyzer's output streams.
		Out io.Writer
		Err io.Writer
		// Log receives verbose diagnostics.
		Log *log.Logger
	}

	// WarningsError reports an analyzer run that exited zero but produced
	// warning diagnostics.
	WarningsError struct {
		Count int
	}
)

// Error implements the error interface.
func (e *WarningsError) Error() string {
	if e.Count == 1 {
		return "analyzer reported 1 warning"
	}
	return fmt.Sprintf("analyzer reported %d warnings", e.Count)
}

// Run performs the analyzer run. extraArgs are forwarded to the analyzer
// verbatim, after the sysroot and suppression arguments.
func (r *Runner) Run(ctx context.Context, extraArgs []string) error {
	if r.Fresh && r.CacheDir != "" {
		r.Log.Debug("discarding analyzer cache", "dir", r.CacheDir)
		if err := os.RemoveAll(r.CacheDir); err != nil {
			return fmt.Errorf("failed to remove analyzer cache %s: %w", r.CacheDir, err)
		}
	}

	sysroot, err := r.resolveSysroot(ctx)
	if err != nil {
		return err
	}

	argv := append([]string{}, r.Analyzer...)
	argv = append(argv, "--sysroot", sysroot)
	argv = append(argv, SuppressionArgs()...)
	argv = append(argv, extraArgs...)

	r.Log.Debug("running analyzer", "command", strings.Join(argv, " "))

	// The warning scan needs a copy of both streams; the user still sees the
	// output live.
	var captured bytes.Buffer
	opts := execx.Options{
		Stdout: io.MultiWriter(r.Out, &captured),
		Stderr: io.MultiWriter(r.Err, &captured),
	}

	runErr := r.Exec.Run(ctx, argv, opts)
	warnings := countWarnings(captured.String())

	if runErr != nil {
		return fmt.Errorf("analyzer failed: %w", runErr)
	}
	if warnings > 0 {
		return &WarningsError{Count: warnings}
	}
	return nil
}

// resolveSysroot asks the compiler for its sysroot so the analyzer resolves
// the same standard library the build uses.
func (r *Runner) resolveSysroot(ctx context.Context) (string, error) {
	argv := append(append([]string{}, r.Compiler...), "--print", "sysroot")
	out, err := r.Exec.Output(ctx, argv)
	if err != nil {
		return "", fmt.Errorf("failed to resolve compiler sysroot: %w", err)
	}
	sysroot := strings.TrimSpace(out)
	if sysroot == "" {
		return "", fmt.Errorf("compiler printed an empty sysroot")
	}
	return sysroot, nil
}

// countWarnings counts diagnostic lines in analyzer output. A diagnostic line
// starts with "warning:" or carries it after a file:line:col prefix.
func countWarnings(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "warning:") || strings.Contains(line, ": warning:") {
			count++
		}
	}
	return count
}
