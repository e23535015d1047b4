// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"gotopts-cli/internal/config"
	"gotopts-cli/internal/gotopts"
	"gotopts-cli/internal/issue"
	"gotopts-cli/internal/tool"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// Execute runs gotopts with the process arguments and exits with its exit code.
// This is called by main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)))
}

// Run loads the configuration, runs gotopts with args and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (code tool.ExitCode) {
	defer func() {
		if r := recover(); r != nil {
			code = tool.Report(stderr, &tool.PanicError{Value: r})
		}
	}()

	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{})
	if err != nil {
		issue.Explain(stderr, err, false, issue.StyleNoTTY)
		return tool.ExitFailure
	}

	logger := log.NewWithOptions(stderr, log.Options{
		Prefix: gotopts.Name,
		Level:  cfg.LogLevel.Level(),
	})
	if cfg.Path != "" {
		logger.Debug("configuration loaded", "path", cfg.Path)
	}

	tl, err := gotopts.New(cfg, getVersionString(), logger)
	if err != nil {
		return tool.Report(stderr, err)
	}

	root := newRootCommand(tl.Command())
	root.SetArgs(append([]string{tl.Settings().Name}, args...))
	root.SetOut(stdout)
	root.SetErr(stderr)

	code = tool.ExitSuccess
	err = fang.Execute(
		ctx,
		root,
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithVersion(Version),
		fang.WithCommit(Commit),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			code = tool.Report(w, err)
		}),
	)
	if err != nil && code.IsSuccess() {
		code = tool.ExitFailure
	}
	return code
}

// newRootCommand hosts the gotopts command under a bare root. fang replaces the
// help of the command it executes; the hosted command keeps its own.
func newRootCommand(sub *cobra.Command) *cobra.Command {
	root := &cobra.Command{
		Use:           sub.Name(),
		Short:         gotopts.Title,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(sub)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
