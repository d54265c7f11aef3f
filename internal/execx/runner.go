// SPDX-License-Identifier: MPL-2.0

// Package execx runs the external tools stoker wraps (the manifest
// regenerator, the lock updater, the compiler, and the analyzer).
package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

type (
	// Options controls how a child process is run.
	Options struct {
		// Dir is the working directory ("" = inherit).
		Dir string
		// Stdout/Stderr receive the child's output (nil = inherit).
		Stdout io.Writer
		Stderr io.Writer
		// Env is appended to the inherited environment.
		Env []string
	}

	// Runner runs external commands. The uprev engine and the lint runner
	// depend on this interface so tests can substitute a recording fake.
	Runner interface {
		// Run executes argv and waits for it to finish.
		Run(ctx context.Context, argv []string, opts Options) error
		// Output executes argv and returns its trimmed stdout.
		Output(ctx context.Context, argv []string) (string, error)
	}

	// ExitStatusError reports a child process that exited non-zero.
	ExitStatusError struct {
		Argv []string
		Code int
	}

	osRunner struct{}
)

// New returns the os/exec-backed Runner.
func New() Runner {
	return &osRunner{}
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", strings.Join(e.Argv, " "), e.Code)
}

// SplitCommand splits a configured tool command string into argv using shell
// quoting rules, so values like `forge pin --lockfile "deps.lock"` behave as
// expected. Environment expansion is disabled: config values are literal.
func SplitCommand(command string) ([]string, error) {
	argv, err := shell.Fields(command, func(string) string { return "" })
	if err != nil {
		return nil, fmt.Errorf("failed to parse tool command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tool command is empty")
	}
	return argv, nil
}

// Run executes argv, streaming output to the configured writers.
func (r *osRunner) Run(ctx context.Context, argv []string, opts Options) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitStatusError{Argv: argv, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return nil
}

// Output executes argv and captures stdout; stderr passes through so tool
// failures stay visible.
func (r *osRunner) Output(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitStatusError{Argv: argv, Code: exitErr.ExitCode()}
		}
		return "", fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}
