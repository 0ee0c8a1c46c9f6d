// SPDX-License-Identifier: MPL-2.0

// Package config loads the tool's own settings: logging and terminal
// presentation. These are deliberately separate from the invocation contract
// — the argument parser never consults configuration or the environment, so
// settings here can only change how the tool reports, never what it does
// with a program.
//
// Precedence, lowest to highest: built-in defaults, an optional config file
// under the platform config directory, then BRIL_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/ananyagoenka/bril/internal/issue"
)

const (
	// AppName is the application name, used for the config directory and the
	// environment variable prefix.
	AppName = "bril"
	// ConfigFileName is the config file name within the config directory.
	ConfigFileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. BRIL_LOG_LEVEL.
	EnvPrefix = "BRIL"
)

type (
	// Config holds the tool settings.
	Config struct {
		// LogLevel is one of trace, debug, info, warn, error.
		LogLevel string `mapstructure:"log_level"`
		// LogFormat is "text" or "json".
		LogFormat string `mapstructure:"log_format"`
		// UI groups terminal presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds terminal presentation settings.
	UIConfig struct {
		// Color enables styled output on stderr.
		Color bool `mapstructure:"color"`
	}

	// LoadOptions selects explicit config sources, mainly for tests.
	LoadOptions struct {
		// ConfigFilePath, when set, is read instead of the default location
		// and must exist.
		ConfigFilePath string
		// ConfigDirPath overrides the platform config directory lookup.
		ConfigDirPath string
	}
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		UI:        UIConfig{Color: true},
	}
}

// Dir returns the bril configuration directory using platform conventions:
// %APPDATA% on Windows, ~/Library/Application Support on macOS, and
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func Dir() (string, error) {
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

// Load resolves settings according to the documented precedence. A missing
// config file is not an error (defaults apply); an explicitly requested file
// that is missing or malformed is.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("ui.color", defaults.UI.Color)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, required, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if required || fileExists(path) {
				return nil, issue.NewContext().
					WithOperation("load configuration").
					WithResource(path).
					WithSuggestion("Check that the file contains valid TOML").
					WithSuggestion("Remove the file to fall back to defaults").
					Wrap(err).
					Err()
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, issue.NewContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check the setting names against the documented schema").
			Wrap(err).
			Err()
	}
	return &cfg, nil
}

// resolveConfigFile picks the config file to read. The second return value
// reports whether the file must exist.
func resolveConfigFile(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", true, issue.NewContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				Err()
		}
		return opts.ConfigFilePath, true, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		dir, err = Dir()
		if err != nil {
			// No resolvable config dir (e.g. no HOME); run on defaults.
			return "", false, nil
		}
	}

	path := filepath.Join(dir, ConfigFileName)
	if !fileExists(path) {
		return "", false, nil
	}
	return path, false, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
