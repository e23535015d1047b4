// SPDX-License-Identifier: MPL-2.0

// Package gotopts implements the gotopts command: it decodes the declarations a
// shell script passes with -a and -o, runs the script's own command over the
// argument blob and prints the resulting assignments for the script to eval.
package gotopts

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"gotopts-cli/internal/config"
	"gotopts-cli/internal/shellscript"
	"gotopts-cli/internal/tool"
	"gotopts-cli/pkg/declaration"
	"gotopts-cli/pkg/wire"

	"github.com/charmbracelet/log"
)

const (
	// Name is the command name.
	Name = "gotopts"
	// Title is the one-line description shown in help.
	Title = "Parse Shell Script Command Line Options and Arguments"

	// malformedArgsMessage is written when the argument blob is not bracketed.
	malformedArgsMessage = "Invalid arguments provided to script."
)

// BottomHelpText documents the declaration mini-DSL.
const BottomHelpText = `Script argument (-a):
  name;description[;r:required][;e:canBeEmpty][;f:function][;t:type][;d:default]
Script option (-o):
  template;description[;o:arity][;f:function][;t:type][;d:default]

  template    short and long aliases separated by commas, e.g. -m,--multiple
  required    1 or t for true, 0 or f for false (default true)
  canBeEmpty  1 or t for true, 0 or f for false (default false)
  arity       n for no value (default), s for a single value, m for multiple values
  function    check run on the value: d, !d, f, !f, fail
  type        n for number, anything else for string (default)
  default     default value

Output lines have the form <prefix>_opt_<name>="<values>" and <prefix>_arg_<name>="<values>".`

// Option and argument names of the gotopts command.
const (
	optArgument  = "a"
	optBottom    = "b"
	optDelimiter = "d"
	optHelp      = "h"
	optOption    = "o"
	optPrefix    = "p"
	optVersion   = "v"

	argName  = "name"
	argTitle = "title"
	argArgs  = "args"
)

// New builds the gotopts tool. cfg supplies the delimiter default and the settings
// applied to every script command; version is reported by --version.
func New(cfg *config.Config, version string, logger *log.Logger) (*tool.Tool, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	options, arguments, err := declarations(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	r := &runner{cfg: cfg}
	return tool.New(tool.Settings{
		Name:                  Name,
		Title:                 Title,
		Version:               version,
		BottomHelpText:        BottomHelpText,
		HelpOption:            tool.DefaultHelpOption,
		ShowHelpOnNoArguments: true,
		Badges:                cfg.Badges,
		Options:               options,
		Arguments:             arguments,
		Logger:                logger,
	}, r.execute)
}

func declarations(delimiter string) (options, arguments []*declaration.Declaration, err error) {
	var defaultDelimiter []string
	if delimiter != "" {
		defaultDelimiter = []string{delimiter}
	}

	for _, p := range []declaration.OptionParams{
		{Template: "-a|--argument", Description: "Script argument", Arity: declaration.ArityMultiValue},
		{Template: "-b|--bottom", Description: "Script bottom help text", Arity: declaration.AritySingleValue},
		{
			Template:    "-d|--delimiter",
			Description: "Script arguments delimiter",
			Arity:       declaration.AritySingleValue,
			Defaults:    defaultDelimiter,
		},
		{Template: "-h|--script-help", Description: "Script help"},
		{Template: "-o|--option", Description: "Script option", Arity: declaration.ArityMultiValue},
		{Template: "-p|--prefix", Description: "Script argument prefix", Arity: declaration.AritySingleValue},
		{Template: "-v|--script-version", Description: "Script version", Arity: declaration.AritySingleValue},
	} {
		d, err := declaration.NewOption(p)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, d)
	}

	for _, p := range []declaration.ArgumentParams{
		{Name: argName, Description: "Script name", Required: true},
		{Name: argTitle, Description: "Script title", Required: true},
		{
			Name:        argArgs,
			Description: "Script provided arguments encapsulated in box brackets ([]) and delimited with pipes (|)",
			CanBeEmpty:  true,
		},
	} {
		d, err := declaration.NewArgument(p)
		if err != nil {
			return nil, nil, err
		}
		arguments = append(arguments, d)
	}
	return options, arguments, nil
}

type runner struct {
	cfg *config.Config
}

func (r *runner) execute(ctx context.Context, inv *tool.Invocation) error {
	logger := inv.Logger

	arguments, err := decodeAll(logger, inv.Option(optArgument).Raw(), declaration.DecodeArgument)
	if err != nil {
		return err
	}
	options, err := decodeAll(logger, inv.Option(optOption).Raw(), declaration.DecodeOption)
	if err != nil {
		return err
	}

	settings := tool.Settings{
		Name:                      first(inv.Argument(argName)),
		Title:                     first(inv.Argument(argTitle)),
		Version:                   first(inv.Option(optVersion)),
		BottomHelpText:            first(inv.Option(optBottom)),
		HelpOption:                string(r.cfg.HelpOption),
		ShowHelpOnNoArguments:     r.cfg.ShowHelpOnNoArguments,
		OptionsAndArgumentsOption: r.cfg.OptionsAndArgumentsOption,
		Badges:                    r.cfg.Badges,
		Colors:                    r.cfg.Colors,
		Arguments:                 arguments,
		Options:                   options,
		Logger:                    logger,
	}

	var tokens []string
	if inv.Option(optHelp).ValueExists() {
		if token := settings.HelpToken(); token != "" {
			tokens = append(tokens, token)
		}
	}

	split, err := wire.SplitArgs(first(inv.Argument(argArgs)), first(inv.Option(optDelimiter)))
	if err != nil {
		logger.Debug("malformed argument blob", "error", err)
		fmt.Fprintln(inv.Stderr, malformedArgsMessage)
		return &tool.ExitError{Code: tool.ExitFailure}
	}
	tokens = append(tokens, split...)

	script, err := shellscript.New(settings)
	if err != nil {
		return fmt.Errorf("build the script command %q: %w", settings.Name, err)
	}

	var out bytes.Buffer
	code := script.Run(ctx, tokens, &out, inv.Stderr)
	logger.Debug("script command finished", "script", settings.Name, "tokens", len(tokens), "exit", code)
	if !code.IsSuccess() {
		_, _ = out.WriteTo(inv.Stdout)
		return &tool.ExitError{Code: code}
	}

	lines, err := wire.Unwrap(out.String(), first(inv.Option(optPrefix)))
	if err != nil {
		// help, version or the option dump
		_, _ = out.WriteTo(inv.Stdout)
		return &tool.ExitError{Code: tool.ExitFailure}
	}
	for _, line := range lines {
		fmt.Fprintln(inv.Stdout, line)
	}
	return nil
}

// decodeAll decodes each mini-DSL string. Strings that do not follow the grammar
// are dropped; any other failure is returned.
func decodeAll(logger *log.Logger, raw []string, decode func(string) (*declaration.Declaration, error)) ([]*declaration.Declaration, error) {
	decls := make([]*declaration.Declaration, 0, len(raw))
	for _, s := range raw {
		d, err := decode(s)
		if errors.Is(err, declaration.ErrNoMatch) {
			logger.Debug("dropping declaration", "declaration", s)
			continue
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("decoded declaration", "kind", d.Kind, "name", d.Name, "input", d.InputKind())
		decls = append(decls, d)
	}
	return decls, nil
}

// first returns the first resolved value of in as text, or "".
func first(in *declaration.Input) string {
	if in == nil {
		return ""
	}
	v, ok := in.First()
	if !ok {
		return ""
	}
	return v.String()
}
