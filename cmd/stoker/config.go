// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stoker-cli/internal/config"
	"stoker-cli/internal/issue"
)

// newConfigCommand creates the `stoker config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stoker configuration",
		Long: `Manage stoker configuration.

Configuration is stored in:
  - Linux: ~/.config/stoker/config.cue
  - macOS: ~/Library/Application Support/stoker/config.cue
  - Windows: %APPDATA%\stoker\config.cue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfigFile(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	current, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(cmd.ErrOrStderr(), rendered)
		return err
	}

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	cfgDir, dirErr := config.ConfigDir()
	cfgPath := ""
	if dirErr == nil {
		cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("lockfile"), SuccessStyle.Render(current.Lockfile))
	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("recipes_dir"), SuccessStyle.Render(current.RecipesDir))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("tools"))
	fmt.Fprintf(out, "  manifest: %s\n", SuccessStyle.Render(current.Tools.Manifest))
	fmt.Fprintf(out, "  lock: %s\n", SuccessStyle.Render(current.Tools.Lock))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("lint"))
	fmt.Fprintf(out, "  compiler: %s\n", SuccessStyle.Render(current.Lint.Compiler))
	fmt.Fprintf(out, "  analyzer: %s\n", SuccessStyle.Render(current.Lint.Analyzer))
	if current.Lint.CacheDir != "" {
		fmt.Fprintf(out, "  cache_dir: %s\n", SuccessStyle.Render(current.Lint.CacheDir))
	} else {
		fmt.Fprintf(out, "  cache_dir: %s\n", SubtitleStyle.Render("(platform default)"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", current.UI.Verbose)))

	return nil
}

func initConfigFile(cmd *cobra.Command) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
