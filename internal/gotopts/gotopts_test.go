// SPDX-License-Identifier: MPL-2.0

package gotopts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gotopts-cli/internal/config"
	"gotopts-cli/internal/tool"

	"github.com/google/go-cmp/cmp"
)

var (
	fixtureArguments = []string{
		"arg1;Argument 1",
		"arg2;Argument 2;e:1;t:i",
		"arg3;Argument 3;r:0;d:three",
	}
	fixtureOptions = []string{
		"-m,--multiple;Multiple-value option;o:m",
		"-n,--no;No-value option;o:n",
		"-s,--single;Single-value option;o:s",
	}
)

// fixtureArgs returns the gotopts command line for the fixture script, with extra
// gotopts options placed before the positional arguments.
func fixtureArgs(blob string, extra ...string) []string {
	var args []string
	for _, a := range fixtureArguments {
		args = append(args, "-a", a)
	}
	for _, o := range fixtureOptions {
		args = append(args, "-o", o)
	}
	args = append(args, extra...)
	return append(args, "script", "Test script", blob)
}

func runGotopts(t *testing.T, cfg *config.Config, args ...string) (stdout, stderr string, code tool.ExitCode) {
	t.Helper()

	tl, err := New(cfg, "1.0.0", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var out, errOut bytes.Buffer
	code = tl.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRun_Fixture(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runGotopts(t, nil, fixtureArgs("[-m|xyz|-m|abc|foo bar|2]")...)
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %q)", code, stderr)
	}
	want := "opt_m=\"xyz,abc\"\narg_arg1=\"foo bar\"\narg_arg2=\"2\"\narg_arg3=\"three\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestRun_Prefix(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("[-n|a|1]", "-p", "my")...)
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "my_opt_n=\"on\"\nmy_arg_arg1=\"a\"\nmy_arg_arg2=\"1\"\nmy_arg_arg3=\"three\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Delimiter(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("[-s;x|y;a b;3]", "-d", ";")...)
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "opt_s=\"x|y\"\narg_arg1=\"a b\"\narg_arg2=\"3\"\narg_arg3=\"three\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ConfiguredDelimiter(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Delimiter = ","
	stdout, _, code := runGotopts(t, cfg, fixtureArgs("[a,1]")...)
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, "arg_arg1=\"a\"\narg_arg2=\"1\"\n") {
		t.Errorf("stdout = %q, want tokens split on ','", stdout)
	}
}

func TestRun_MalformedBlob(t *testing.T) {
	t.Parallel()

	for _, blob := range []string{"xyz|abc", "[foo", "foo]", "["} {
		t.Run(blob, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := runGotopts(t, nil, fixtureArgs(blob)...)
			if code != tool.ExitFailure {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if want := "Invalid arguments provided to script.\n"; stderr != want {
				t.Errorf("stderr = %q, want %q", stderr, want)
			}
		})
	}
}

func TestRun_UnmatchedDeclarationsAreDropped(t *testing.T) {
	t.Parallel()

	args := append([]string{"-a", "not a declaration", "-o", "--bad template;x"}, fixtureArgs("[foo|2]")...)
	stdout, stderr, code := runGotopts(t, nil, args...)
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %q)", code, stderr)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want nothing for a dropped declaration", stderr)
	}
	want := "arg_arg1=\"foo\"\narg_arg2=\"2\"\narg_arg3=\"three\"\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidDeclaration(t *testing.T) {
	t.Parallel()

	// Matches the grammar, but "m" is not an option alias.
	args := append([]string{"-o", "m,--many;Many;o:m"}, fixtureArgs("[foo|2]")...)
	stdout, stderr, code := runGotopts(t, nil, args...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.HasPrefix(stderr, "InvalidOptionError: ") {
		t.Errorf("stderr = %q, want an InvalidOptionError report", stderr)
	}
}

func TestRun_DuplicateDeclarations(t *testing.T) {
	t.Parallel()

	args := append([]string{"-o", "-m,--more;More;o:s"}, fixtureArgs("[foo|2]")...)
	_, stderr, code := runGotopts(t, nil, args...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	want := "InvalidOptionError: build the script command \"script\": option \"-m|--multiple\": alias is already in use\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_ScriptHelp(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("[foo|2]", "-h", "-v", "2.0")...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	for _, want := range []string{"script - Test script", "2.0", "--multiple", "arg1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout, want)
		}
	}
	if strings.Contains(stdout, "arg_arg1=") {
		t.Errorf("stdout = %q, want help instead of assignments", stdout)
	}
}

func TestRun_ScriptHelpInBlob(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("[--help]", "-b", "Bottom of the script help.")...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout, "Bottom of the script help.") {
		t.Errorf("stdout = %q, want the bottom help text", stdout)
	}
}

func TestRun_ScriptVersion(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("[--version]", "-v", "3.1")...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if want := "script - Test script\n3.1\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_EmptyBlobShowsHelp(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil, fixtureArgs("")...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout, "script - Test script") {
		t.Errorf("stdout = %q, want the script help", stdout)
	}
}

func TestRun_ScriptValidationFailure(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runGotopts(t, nil, fixtureArgs("[]")...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if want := "Missing or invalid argument(s). Use --help for more information.\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_FailTag(t *testing.T) {
	t.Parallel()

	args := []string{"-a", "file;File;f:fail", "script", "Test script", "[a.txt]"}
	stdout, stderr, code := runGotopts(t, nil, args...)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if want := "script: argument file: FAIL.\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_NoArguments(t *testing.T) {
	t.Parallel()

	stdout, _, code := runGotopts(t, nil)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	for _, want := range []string{Name + " - " + Title, "1.0.0", "--script-help", "Script argument (-a):"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout, want)
		}
	}
}

func TestNew_Settings(t *testing.T) {
	t.Parallel()

	tl, err := New(nil, "dev", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s := tl.Settings()
	if s.Name != Name || s.Version != "dev" {
		t.Errorf("Settings() = %s %s, want %s dev", s.Name, s.Version, Name)
	}

	var names []string
	for _, o := range s.Options {
		names = append(names, o.Name)
	}
	for _, a := range s.Arguments {
		names = append(names, a.Name)
	}
	want := []string{"a", "b", "d", "h", "o", "p", "v", "name", "title", "args"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("declaration names mismatch (-want +got):\n%s", diff)
	}
}
