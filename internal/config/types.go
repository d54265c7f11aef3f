// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Config is the resolved stoker configuration.
	Config struct {
		// Lockfile is the path of the dependency lockfile, relative to the
		// working directory unless absolute.
		Lockfile string `mapstructure:"lockfile"`

		// RecipesDir is the root of the recipe tree.
		RecipesDir string `mapstructure:"recipes_dir"`

		// Tools configures the external commands stoker invokes after
		// mutations.
		Tools ToolsConfig `mapstructure:"tools"`

		// Lint configures the analyzer wrapper.
		Lint LintConfig `mapstructure:"lint"`

		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// ToolsConfig holds shell-quoted command strings. stoker appends the
	// package name (manifest tool) or package name and version (lock tool)
	// as trailing arguments.
	ToolsConfig struct {
		// Manifest regenerates integrity/checksum metadata for a recipe.
		Manifest string `mapstructure:"manifest"`

		// Lock pins a package in the lockfile to a given version.
		Lock string `mapstructure:"lock"`
	}

	// LintConfig configures the `stoker lint` wrapper.
	LintConfig struct {
		// Compiler is queried with `--print sysroot`.
		Compiler string `mapstructure:"compiler"`

		// Analyzer is the static-analysis binary to wrap.
		Analyzer string `mapstructure:"analyzer"`

		// CacheDir is the analyzer build cache. Empty means the platform
		// user cache dir under "stoker".
		CacheDir string `mapstructure:"cache_dir"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables diagnostic logging by default.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Lockfile:   "deps.lock",
		RecipesDir: "recipes",
		Tools: ToolsConfig{
			Manifest: "forge manifest",
			Lock:     "forge pin",
		},
		Lint: LintConfig{
			Compiler: "rustc",
			Analyzer: "clippy-driver",
		},
	}
}
