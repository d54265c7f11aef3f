// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for stoker.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"stoker-cli/internal/config"
	"stoker-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables diagnostic logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the resolved configuration, loaded before any RunE fires.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "stoker",
		Short: "Keep build recipes and the dependency lockfile in step",
		Long: TitleStyle.Render("stoker") + SubtitleStyle.Render(" - build-recipe maintenance") + `

stoker reconciles the dependency lockfile against the tree of versioned
build recipes: it creates missing recipes, uprevs stale ones, and pins
the lockfile back when a recipe is ahead. It also wraps the static
analyzer with the project's suppression list.

` + SubtitleStyle.Render("Examples:") + `
  stoker uprev              Reconcile lockfile and recipes
  stoker uprev --dry-run    Show the plan without changing anything
  stoker lint -- src/       Run the analyzer over src/
  stoker config show        Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stoker/config.cue)")

	rootCmd.AddCommand(newUprevCommand())
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newConfigCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the config file before any subcommand runs.
func initRootConfig() {
	opts := config.LoadOptions{ConfigFilePath: cfgFile}

	loaded, err := config.NewProvider().Load(context.Background(), opts)
	if err != nil {
		// Surface config errors but keep going on defaults; an explicit
		// --config path that fails is re-checked by the subcommand.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger builds the diagnostic logger for a command run. Debug output only
// appears with --verbose.
func newLogger(w io.Writer) *log.Logger {
	logger := log.New(w)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
