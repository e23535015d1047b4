// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gotopts-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const (
	// AppName is the application name.
	AppName = "gotopts"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes the environment variables that override config keys,
	// e.g. GOTOPTS_LOG_LEVEL.
	EnvPrefix = "GOTOPTS"
	// EnvConfigFile names a config file to load instead of the default lookup.
	EnvConfigFile = EnvPrefix + "_CONFIG"

	extCUE  = ".cue"
	extTOML = ".toml"

	// maxFileSize bounds the config files read into memory.
	maxFileSize = 1 << 20
)

// Keys lists every configuration key.
var Keys = []string{
	"delimiter",
	"help_option",
	"show_help_on_no_arguments",
	"options_and_arguments_option",
	"badges",
	"colors",
	"log_level",
}

// ErrUnsupportedFormat is returned for config files that are neither CUE nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the gotopts configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
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

// loadWithOptions layers defaults, the config file and GOTOPTS_* environment
// variables, in increasing precedence.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("delimiter", defaults.Delimiter)
	v.SetDefault("help_option", defaults.HelpOption)
	v.SetDefault("show_help_on_no_arguments", defaults.ShowHelpOnNoArguments)
	v.SetDefault("options_and_arguments_option", defaults.OptionsAndArgumentsOption)
	v.SetDefault("badges", defaults.Badges)
	v.SetDefault("colors", defaults.Colors)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	path, err := resolveFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE or TOML syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse configuration").
			WithResource(path).
			WithSuggestion("Boolean keys accept true or false").
			WithIssue(issue.ConfigInvalidId).
			Wrap(err).
			BuildError()
	}
	cfg.Path = path

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Use a help option template such as --help or -h|--help").
			WithSuggestion("Use one of the log levels debug, info, warn, error or fatal").
			WithIssue(issue.ConfigInvalidId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// resolveFile picks the config file to load: the explicit path, then
// $GOTOPTS_CONFIG, then config.cue and config.toml in the config directory.
// It returns "" when no file applies.
func resolveFile(opts LoadOptions) (string, error) {
	explicit := opts.ConfigFilePath
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		if !fileExists(explicit) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(explicit).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Unset " + EnvConfigFile + " to use the default lookup").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", explicit)).
				BuildError()
		}
		return explicit, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	for _, ext := range []string{extCUE, extTOML} {
		if path := filepath.Join(dir, ConfigFileName+ext); fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxFileSize {
		return fmt.Errorf("config file is larger than %d bytes", maxFileSize)
	}

	var settings map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extCUE:
		settings, err = decodeCUE(data, path)
	case extTOML:
		settings, err = decodeTOML(data)
	default:
		err = fmt.Errorf("%w: %q (use %s or %s)", ErrUnsupportedFormat, ext, extCUE, extTOML)
	}
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// decodeCUE validates a CUE file against the #Config schema and decodes it.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, cueError(userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, cueError(err)
	}

	var settings map[string]any
	if err := unified.Decode(&settings); err != nil {
		return nil, cueError(err)
	}
	return settings, nil
}

// decodeTOML decodes a TOML file and rejects unknown keys.
func decodeTOML(data []byte) (map[string]any, error) {
	var settings map[string]any
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&settings); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	for key := range settings {
		if !slices.Contains(Keys, key) {
			return nil, fmt.Errorf("unknown config key %q", key)
		}
	}
	return settings, nil
}

func cueError(err error) error {
	return errors.New(strings.TrimSpace(cueerrors.Details(err, nil)))
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
