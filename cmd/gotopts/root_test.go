// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gotopts-cli/internal/config"
	"gotopts-cli/internal/tool"
)

// isolate points the configuration lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv("GOTOPTS_LOG_LEVEL", "")
	t.Setenv("GOTOPTS_DELIMITER", "")
	return dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, code tool.ExitCode) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestRun_Assignments(t *testing.T) {
	isolate(t)

	stdout, stderr, code := run(t,
		"-a", "file;File",
		"-o", "-q,--quiet;Quiet",
		"script", "Script title", "[-q|a.txt]")
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %q)", code, stderr)
	}
	if want := "opt_q=\"on\"\narg_file=\"a.txt\"\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_HelpIsNotReplaced(t *testing.T) {
	isolate(t)

	stdout, _, code := run(t, "--help")
	if code != tool.ExitSuccess {
		t.Errorf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"gotopts - Parse Shell Script Command Line Options and Arguments", "--script-help", "Script argument (-a):"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout, want)
		}
	}
}

func TestRun_NoArguments(t *testing.T) {
	isolate(t)

	stdout, _, code := run(t)
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stdout, "gotopts - ") {
		t.Errorf("stdout = %q, want the help text", stdout)
	}
}

func TestRun_Version(t *testing.T) {
	isolate(t)

	stdout, _, code := run(t, "--version")
	if code != tool.ExitSuccess {
		t.Errorf("exit code = %d, want 0", code)
	}
	if want := "gotopts - Parse Shell Script Command Line Options and Arguments\ndev (built from source)\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_UsageError(t *testing.T) {
	isolate(t)

	_, stderr, code := run(t, "--nope")
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if want := "Unrecognized option '--nope'\n"; stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup applies to Linux")
	}
	dir := isolate(t)
	cfgDir := filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("delimiter = \",\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := run(t, "-a", "a;A", "-a", "b;B", "script", "Script title", "[x,y]")
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %q)", code, stderr)
	}
	if want := "arg_a=\"x\"\narg_b=\"y\"\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.cue")
	if err := os.WriteFile(path, []byte(`log_level: "loud"`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigFile, path)

	stdout, stderr, code := run(t, "-a", "a;A", "script", "Script title", "[x]")
	if code != tool.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, path) {
		t.Errorf("stderr = %q, want it to name %s", stderr, path)
	}
}

func TestRun_DebugLogging(t *testing.T) {
	isolate(t)
	t.Setenv("GOTOPTS_LOG_LEVEL", "debug")

	stdout, stderr, code := run(t, "-a", "not a declaration", "-a", "a;A", "script", "Script title", "[x]")
	if code != tool.ExitSuccess {
		t.Fatalf("exit code = %d, want 0 (stderr: %q)", code, stderr)
	}
	if want := "arg_a=\"x\"\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "dropping declaration") {
		t.Errorf("stderr = %q, want the debug log", stderr)
	}
}

func TestGetVersionString(t *testing.T) {
	t.Parallel()

	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}
}
