// SPDX-License-Identifier: MPL-2.0

// Package shellscript implements the command built for one calling shell script.
// Once the script's tokens are parsed and valid, it runs the post-parse checks named
// by each declaration's tag and writes the encoded assignments for the script.
package shellscript

import (
	"context"
	"fmt"

	"gotopts-cli/internal/check"
	"gotopts-cli/internal/tool"
	"gotopts-cli/pkg/declaration"
	"gotopts-cli/pkg/wire"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// New creates the tool for a script described by settings.
func New(settings tool.Settings) (*tool.Tool, error) {
	return tool.New(settings, execute)
}

func execute(_ context.Context, inv *tool.Invocation) error {
	inputs := emitted(inv)

	if failures := runChecks(inv.Logger, inputs); len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(inv.Stderr, "%s: %s\n", inv.Name, f)
		}
		return &tool.ExitError{Code: tool.ExitFailure}
	}

	entries := Entries(inputs)
	for _, e := range entries {
		if !syntax.ValidName(e.Name) {
			inv.Logger.Warn("output name is not a valid shell variable name", "name", e.Name)
		}
	}
	fmt.Fprint(inv.Stdout, wire.Encode(entries))
	return nil
}

// emitted selects the inputs that are written out: options given on the command
// line, then every argument, each in declaration order. Option defaults alone do not
// emit an option.
func emitted(inv *tool.Invocation) []*declaration.Input {
	all := inv.Inputs()
	inputs := make([]*declaration.Input, 0, len(all))
	for _, in := range all {
		if in.Declaration().IsOption() && len(in.Raw()) == 0 {
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// runChecks runs the tagged check of every input that has a value and returns one
// "<kind> <name>: <detail>" line per failure.
func runChecks(logger *log.Logger, inputs []*declaration.Input) []string {
	var failures []string
	for _, in := range inputs {
		d := in.Declaration()
		if d.Tag == "" || !in.ValueExists() {
			continue
		}
		if _, ok := check.Lookup(d.Tag); !ok {
			logger.Debug("no check for tag", "input", d.Name, "tag", d.Tag, "known", check.Tags())
			continue
		}
		first, _ := in.First()
		if detail := check.Run(d.Tag, first.String()); detail != "" {
			failures = append(failures, fmt.Sprintf("%s %s: %s", d.Kind, d.Name, detail))
		}
	}
	return failures
}

// Entries converts inputs to output entries named "<opt|arg>_<name>".
func Entries(inputs []*declaration.Input) []wire.Entry {
	entries := make([]wire.Entry, 0, len(inputs))
	for _, in := range inputs {
		d := in.Declaration()
		entries = append(entries, wire.Entry{
			Name:   d.Prefix() + "_" + d.Name,
			Values: in.Strings(),
		})
	}
	return entries
}
