// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"context"
	"fmt"
	"io"

	"gotopts-cli/pkg/declaration"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type (
	// Handler runs the tool once its inputs passed basic validation.
	// Returning an *ExitError sets the exit code; other errors are reported as
	// "<Kind>: <message>".
	Handler func(ctx context.Context, inv *Invocation) error

	// Invocation is one parsed run of a tool.
	Invocation struct {
		Name      string
		Options   []*declaration.Input
		Arguments []*declaration.Input
		Stdout    io.Writer
		Stderr    io.Writer
		Logger    *log.Logger
	}

	// Tool is a command-line tool built from declarations.
	Tool struct {
		settings Settings
		help     *helpOption
		handler  Handler
	}

	// flags holds the flag state of one built command.
	flags struct {
		recorders []*recorder
		helpAlias *bool
		version   *bool
		optsArgs  *bool
	}
)

// New validates the settings and creates a tool that runs handler.
func New(settings Settings, handler Handler) (*Tool, error) {
	help, err := settings.validate()
	if err != nil {
		return nil, err
	}
	if handler == nil {
		handler = func(context.Context, *Invocation) error { return nil }
	}
	return &Tool{settings: settings, help: help, handler: handler}, nil
}

// Settings returns the settings the tool was created with.
func (t *Tool) Settings() Settings {
	return t.settings
}

// Command builds a fresh cobra command for the tool. Each command parses once.
func (t *Tool) Command() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:                   usageLine(t.settings.Name, t.settings.Arguments),
		Short:                 t.settings.Title,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.execute(cmd, args, f)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false
	for _, d := range t.settings.Options {
		f.recorders = append(f.recorders, addFlag(fs, d))
	}
	t.addBuiltinFlags(fs, f)

	cmd.SetFlagErrorFunc(flagError)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		t.writeHelp(c.OutOrStdout())
	})
	return cmd
}

// Run parses args, runs the tool and reports any failure on stderr.
func (t *Tool) Run(ctx context.Context, args []string, stdout, stderr io.Writer) ExitCode {
	cmd := t.Command()
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	code := Report(stderr, executeSafely(ctx, cmd))
	t.settings.logger().Debug("tool finished", "name", t.settings.Name, "exit", code)
	return code
}

func executeSafely(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return cmd.ExecuteContext(ctx)
}

func (t *Tool) addBuiltinFlags(fs *pflag.FlagSet, f *flags) {
	const helpUsage = "Show help information"

	// cobra requires a bool flag named "help"; the configured template either
	// decorates it or adds an alias next to it.
	h := t.help
	helpShort := ""
	if h != nil && (h.long == "" || h.long == helpFlagName) {
		helpShort = h.short
	}
	fs.BoolP(helpFlagName, helpShort, false, helpUsage)
	if h == nil || (h.long != "" && h.long != helpFlagName) {
		_ = fs.MarkHidden(helpFlagName)
	}
	if h != nil && h.long != "" && h.long != helpFlagName {
		f.helpAlias = fs.BoolP(h.long, h.short, false, helpUsage)
	}

	if t.settings.Version != "" {
		f.version = fs.Bool(versionFlagName, false, "Show version information")
	}
	if t.settings.OptionsAndArgumentsOption {
		f.optsArgs = fs.Bool(optsArgsFlagName, false, "Show options and arguments and exit.")
	}
}

func (t *Tool) execute(cmd *cobra.Command, args []string, f *flags) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := t.settings.logger()

	if f.helpAlias != nil && *f.helpAlias {
		return cmd.Help()
	}
	if f.version != nil && *f.version {
		t.writeVersion(stdout)
		return nil
	}
	if t.settings.ShowHelpOnNoArguments && len(args) == 0 && cmd.Flags().NFlag() == 0 {
		_ = cmd.Help()
		return exitFailure()
	}
	if len(args) > len(t.settings.Arguments) {
		return &UsageError{Message: fmt.Sprintf("Unrecognized command or argument '%s'", args[len(t.settings.Arguments)])}
	}

	inv := t.bind(f, args, stdout, stderr)
	if !t.canExecute(inv, stderr) {
		return exitFailure()
	}
	if f.optsArgs != nil && *f.optsArgs {
		writeOptionsAndArguments(stdout, inv)
		return nil
	}

	logger.Debug("executing", "name", t.settings.Name, "options", len(inv.Options), "arguments", len(inv.Arguments))
	return t.handler(cmd.Context(), inv)
}

func (t *Tool) bind(f *flags, args []string, stdout, stderr io.Writer) *Invocation {
	inv := &Invocation{
		Name:   t.settings.Name,
		Stdout: stdout,
		Stderr: stderr,
		Logger: t.settings.logger(),
	}
	for _, r := range f.recorders {
		inv.Options = append(inv.Options, declaration.Bind(r.decl, r.values))
	}
	for i, d := range t.settings.Arguments {
		var raw []string
		if i < len(args) {
			raw = []string{args[i]}
		}
		inv.Arguments = append(inv.Arguments, declaration.Bind(d, raw))
	}
	return inv
}

// canExecute applies basic validity to every input and reports failures on w.
func (t *Tool) canExecute(inv *Invocation, w io.Writer) bool {
	logger := t.settings.logger()
	ok := true
	if err := firstInvalid(inv.Options); err != nil {
		logger.Debug("invalid option", "error", err)
		fmt.Fprint(w, "Invalid option(s). ")
		ok = false
	}
	if err := firstInvalid(inv.Arguments); err != nil {
		logger.Debug("invalid argument", "error", err)
		fmt.Fprint(w, "Missing or invalid argument(s). ")
		ok = false
	}
	if ok {
		return true
	}
	if token := t.settings.HelpToken(); token != "" {
		fmt.Fprintf(w, "Use %s for more information.\n", token)
	} else {
		fmt.Fprintln(w)
	}
	return false
}

func firstInvalid(inputs []*declaration.Input) error {
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Option returns the bound option with the given name, or nil.
func (inv *Invocation) Option(name string) *declaration.Input {
	return findInput(inv.Options, name)
}

// Argument returns the bound argument with the given name, or nil.
func (inv *Invocation) Argument(name string) *declaration.Input {
	return findInput(inv.Arguments, name)
}

// Inputs returns the options followed by the arguments.
func (inv *Invocation) Inputs() []*declaration.Input {
	inputs := make([]*declaration.Input, 0, len(inv.Options)+len(inv.Arguments))
	inputs = append(inputs, inv.Options...)
	return append(inputs, inv.Arguments...)
}

func findInput(inputs []*declaration.Input, name string) *declaration.Input {
	for _, in := range inputs {
		if in.Declaration().Name == name {
			return in
		}
	}
	return nil
}
