// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gotopts-cli/pkg/declaration"

	"github.com/charmbracelet/log"
)

const (
	// DefaultHelpOption is the help option template used when none is configured.
	DefaultHelpOption = "--help"

	helpFlagName     = "help"
	versionFlagName  = "version"
	optsArgsFlagName = "opts-args"
)

// ErrInvalidSettings is returned when tool settings cannot produce a command.
var ErrInvalidSettings = errors.New("invalid tool settings")

type (
	// Settings describe one tool: its identity, its declarations and how help is shown.
	// The zero value is not usable; Name and Title are required.
	Settings struct {
		Name           string
		Title          string
		Version        string
		BottomHelpText string

		// HelpOption is the help option template, e.g. "--help" or "-h|--help".
		// An empty template hides the help option from usage text.
		HelpOption string
		// ShowHelpOnNoArguments prints help and fails when the tool gets no tokens at all.
		ShowHelpOnNoArguments bool
		// OptionsAndArgumentsOption adds --opts-args, which dumps parsed inputs and exits.
		OptionsAndArgumentsOption bool
		// Badges appends * to required arguments, § to single-value and + to
		// multi-value options in help.
		Badges bool
		// Colors enables ANSI styling in help.
		Colors bool

		Options   []*declaration.Declaration
		Arguments []*declaration.Declaration

		Logger *log.Logger
	}

	// SettingsError is returned by New when the settings are unusable.
	// It wraps ErrInvalidSettings for errors.Is() compatibility.
	SettingsError struct {
		Field  string
		Reason string
	}

	// helpOption is the parsed help option template.
	helpOption struct {
		short string
		long  string
	}
)

// Error implements the error interface for SettingsError.
func (e *SettingsError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

// HelpToken is the command-line token that requests help, or "" without a help option.
func (s Settings) HelpToken() string {
	h, err := parseHelpOption(s.HelpOption)
	if err != nil || h == nil {
		return ""
	}
	if h.long != "" {
		return "--" + h.long
	}
	return "-" + h.short
}

func (s Settings) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// validate checks identity fields and that every alias maps to exactly one flag.
func (s Settings) validate() (*helpOption, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, &SettingsError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, &SettingsError{Field: "title", Reason: "is required"}
	}
	help, err := parseHelpOption(s.HelpOption)
	if err != nil {
		return nil, err
	}

	longs := map[string]bool{helpFlagName: true}
	shorts := map[string]bool{}
	if help != nil {
		longs[help.long] = help.long != ""
		shorts[help.short] = help.short != ""
	}
	if s.Version != "" {
		longs[versionFlagName] = true
	}
	if s.OptionsAndArgumentsOption {
		longs[optsArgsFlagName] = true
	}

	for _, d := range s.Options {
		if d == nil || !d.IsOption() {
			return nil, &SettingsError{Field: "options", Reason: "must only contain option declarations"}
		}
		name := flagName(d)
		if longs[name] || (d.Short != "" && shorts[d.Short]) {
			return nil, &declaration.InvalidOptionError{Template: d.Template, Reason: "alias is already in use"}
		}
		longs[name] = true
		if d.Short != "" {
			shorts[d.Short] = true
		}
	}

	seen := map[string]bool{}
	for _, d := range s.Arguments {
		if d == nil || !d.IsArgument() {
			return nil, &SettingsError{Field: "arguments", Reason: "must only contain argument declarations"}
		}
		if seen[d.Name] {
			return nil, &declaration.InvalidArgumentError{Name: d.Name, Reason: "name is already in use"}
		}
		seen[d.Name] = true
	}
	return help, nil
}

// parseHelpOption returns nil for an empty template.
func parseHelpOption(template string) (*helpOption, error) {
	if template == "" {
		return nil, nil
	}
	d, err := declaration.NewOption(declaration.OptionParams{Template: template})
	if err != nil {
		return nil, err
	}
	return &helpOption{short: d.Short, long: d.Long}, nil
}

// flagName is the pflag name of an option: its long name, or its short name when it
// has none.
func flagName(d *declaration.Declaration) string {
	if d.Long != "" {
		return d.Long
	}
	return d.Short
}
