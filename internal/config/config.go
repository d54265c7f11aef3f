// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"stoker-cli/internal/issue"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "stoker"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the stoker configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("lockfile", defaults.Lockfile)
	v.SetDefault("recipes_dir", defaults.RecipesDir)
	v.SetDefault("tools.manifest", defaults.Tools.Manifest)
	v.SetDefault("tools.lock", defaults.Tools.Lock)
	v.SetDefault("lint.compiler", defaults.Lint.Compiler)
	v.SetDefault("lint.analyzer", defaults.Lint.Analyzer)
	v.SetDefault("lint.cache_dir", defaults.Lint.CacheDir)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// An explicit config file path must exist and parse; there is no silent
	// fallback when the user asked for a specific file.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'stoker config init' to create a default config").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, wrapConfigParseError(err, opts.ConfigFilePath)
		}
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapConfigParseError(err, cuePath)
			}
		case fileExists(ConfigFileName + "." + ConfigFileExt):
			// A config.cue in the working directory wins over defaults so a
			// repository can pin its own tool commands.
			localPath := ConfigFileName + "." + ConfigFileExt
			if err := loadCUEIntoViper(v, localPath); err != nil {
				return nil, wrapConfigParseError(err, localPath)
			}
		}
		// No config file found: defaults, no error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects values the schema cannot: blank-but-set paths and tool
// commands.
func (c *Config) validate() error {
	check := func(field, value string) error {
		if strings.TrimSpace(value) == "" {
			return issue.NewErrorContext().
				WithOperation("validate configuration").
				WithSuggestion(fmt.Sprintf("Set %s to a non-empty value or remove it to use the default", field)).
				Wrap(fmt.Errorf("%s is blank", field)).
				BuildError()
		}
		return nil
	}

	for field, value := range map[string]string{
		"lockfile":       c.Lockfile,
		"recipes_dir":    c.RecipesDir,
		"tools.manifest": c.Tools.Manifest,
		"tools.lock":     c.Tools.Lock,
		"lint.compiler":  c.Lint.Compiler,
		"lint.analyzer":  c.Lint.Analyzer,
	} {
		if err := check(field, value); err != nil {
			return err
		}
	}
	return nil
}

func wrapConfigParseError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the schema ('stoker config show' prints the resolved config)").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cctx := cuecontext.New()

	schemaValue := cctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := cctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	// Unify with the schema; Concrete(false) because all fields are optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config %s does not match schema: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file unless one already exists.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE renders a Config as CUE text.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// stoker configuration file.\n\n")

	sb.WriteString(fmt.Sprintf("lockfile:    %q\n", cfg.Lockfile))
	sb.WriteString(fmt.Sprintf("recipes_dir: %q\n", cfg.RecipesDir))

	sb.WriteString("\ntools: {\n")
	sb.WriteString(fmt.Sprintf("\tmanifest: %q\n", cfg.Tools.Manifest))
	sb.WriteString(fmt.Sprintf("\tlock:     %q\n", cfg.Tools.Lock))
	sb.WriteString("}\n")

	sb.WriteString("\nlint: {\n")
	sb.WriteString(fmt.Sprintf("\tcompiler: %q\n", cfg.Lint.Compiler))
	sb.WriteString(fmt.Sprintf("\tanalyzer: %q\n", cfg.Lint.Analyzer))
	if cfg.Lint.CacheDir != "" {
		sb.WriteString(fmt.Sprintf("\tcache_dir: %q\n", cfg.Lint.CacheDir))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
