// SPDX-License-Identifier: MPL-2.0

// Package config loads stoker configuration. The config file is CUE
// (config.cue), validated against an embedded #Config schema and merged into
// viper on top of the built-in defaults, so a missing or partial file always
// yields a complete Config.
package config
