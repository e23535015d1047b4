// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"gotopts-cli/internal/tool"
	"gotopts-cli/pkg/declaration"
	"gotopts-cli/pkg/wire"

	"github.com/charmbracelet/log"
)

const (
	// LogLevelDebug logs decoded and dropped declarations and exit codes.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings such as output names that are not shell variables.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
	// LogLevelFatal logs fatal errors only.
	LogLevelFatal LogLevel = "fatal"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidHelpOption is the sentinel error wrapped by InvalidHelpOptionError.
	ErrInvalidHelpOption = errors.New("invalid help option")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is a charmbracelet/log level name.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// HelpOption is an option template such as "--help" or "-h|--help".
	// The zero value disables the help option of scripts.
	HelpOption string

	// InvalidHelpOptionError is returned when a HelpOption is not a valid option template.
	InvalidHelpOptionError struct {
		Value HelpOption
		Err   error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// the field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the settings gotopts applies to every script command.
	Config struct {
		// Delimiter separates tokens inside the argument blob unless -d is given.
		Delimiter string `json:"delimiter" mapstructure:"delimiter"`
		// HelpOption is the help option template of script commands.
		HelpOption HelpOption `json:"help_option" mapstructure:"help_option"`
		// ShowHelpOnNoArguments prints the script help when the blob holds no tokens.
		ShowHelpOnNoArguments bool `json:"show_help_on_no_arguments" mapstructure:"show_help_on_no_arguments"`
		// OptionsAndArgumentsOption adds --opts-args to script commands.
		OptionsAndArgumentsOption bool `json:"options_and_arguments_option" mapstructure:"options_and_arguments_option"`
		// Badges marks required arguments and valued options in script help.
		Badges bool `json:"badges" mapstructure:"badges"`
		// Colors enables ANSI colors in script help.
		Colors bool `json:"colors" mapstructure:"colors"`
		// LogLevel is the level of the gotopts logger.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`

		// Path is the configuration file that was loaded, or "" for defaults only.
		Path string `json:"-" mapstructure:"-"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Delimiter:                 wire.DefaultDelimiter,
		HelpOption:                tool.DefaultHelpOption,
		ShowHelpOnNoArguments:     true,
		OptionsAndArgumentsOption: false,
		Badges:                    true,
		Colors:                    false,
		LogLevel:                  LogLevelWarn,
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.HelpOption.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel names a charmbracelet/log level.
func (l LogLevel) IsValid() (bool, []error) {
	if _, err := log.ParseLevel(string(l)); err != nil {
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
	return true, nil
}

// Level returns the log level, falling back to warn for unknown names.
func (l LogLevel) Level() log.Level {
	level, err := log.ParseLevel(string(l))
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error, fatal)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the HelpOption.
func (h HelpOption) String() string { return string(h) }

// IsValid returns whether the HelpOption is empty or a valid option template.
func (h HelpOption) IsValid() (bool, []error) {
	if h == "" {
		return true, nil
	}
	if _, err := declaration.NewOption(declaration.OptionParams{Template: string(h)}); err != nil {
		return false, []error{&InvalidHelpOptionError{Value: h, Err: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHelpOptionError.
func (e *InvalidHelpOptionError) Error() string {
	return fmt.Sprintf("invalid help option %q: %v", e.Value, e.Err)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidHelpOptionError) Unwrap() error { return ErrInvalidHelpOption }
