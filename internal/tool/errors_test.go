// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"gotopts-cli/pkg/declaration"
)

func TestReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode ExitCode
		want     string
	}{
		{name: "nil", err: nil, wantCode: ExitSuccess},
		{name: "reported exit", err: &ExitError{Code: 4}, wantCode: 4},
		{name: "zero exit code", err: &ExitError{Code: 0}, wantCode: ExitFailure},
		{name: "out of range exit code", err: &ExitError{Code: 300}, wantCode: ExitFailure},
		{
			name:     "exit with cause",
			err:      &ExitError{Code: 2, Err: errors.New("boom")},
			wantCode: 2,
			want:     "Error: boom\n",
		},
		{name: "usage", err: &UsageError{Message: "Nope"}, wantCode: ExitFailure, want: "Nope\n"},
		{
			name:     "wrapped usage",
			err:      fmt.Errorf("parse: %w", &UsageError{Message: "Nope"}),
			wantCode: ExitFailure,
			want:     "Nope\n",
		},
		{
			name:     "path error",
			err:      &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist},
			wantCode: ExitFailure,
			want:     "PathError: open /x: file does not exist\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if got := Report(&buf, tt.err); got != tt.wantCode {
				t.Errorf("Report() = %d, want %d", got, tt.wantCode)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	invalid := &declaration.InvalidOptionError{Template: "x", Reason: "bad"}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "typed", err: invalid, want: "InvalidOptionError"},
		{name: "wrapped", err: fmt.Errorf("loading: %w", invalid), want: "InvalidOptionError"},
		{name: "unexported", err: errors.New("plain"), want: "Error"},
		{name: "value type", err: StatusError(7), want: "StatusError"},
		{name: "panic", err: &PanicError{Value: "x"}, want: "PanicError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

// StatusError is an error with a value receiver.
type StatusError int

func (e StatusError) Error() string { return fmt.Sprintf("code %d", int(e)) }

func TestPanicError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	if !errors.Is(&PanicError{Value: cause}, cause) {
		t.Error("PanicError does not unwrap an error value")
	}
	if errors.Unwrap(&PanicError{Value: 42}) != nil {
		t.Error("PanicError unwraps a non-error value")
	}
	if got := (&PanicError{Value: 42}).Error(); got != "42" {
		t.Errorf("Error() = %q, want %q", got, "42")
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	for _, code := range []ExitCode{0, 1, 255} {
		if err := code.Validate(); err != nil {
			t.Errorf("ExitCode(%d).Validate() = %v", code, err)
		}
	}
	for _, code := range []ExitCode{-1, 256} {
		err := code.Validate()
		var invalid *InvalidExitCodeError
		if !errors.As(err, &invalid) || !errors.Is(err, ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d).Validate() = %v, want InvalidExitCodeError", code, err)
		}
	}
	if !ExitSuccess.IsSuccess() || ExitFailure.IsSuccess() {
		t.Error("IsSuccess() mismatch")
	}
	if ExitFailure.String() != "1" {
		t.Errorf("String() = %q", ExitFailure.String())
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
	cause := errors.New("cause")
	err := &ExitError{Code: 1, Err: cause}
	if err.Error() != "cause" || !errors.Is(err, cause) {
		t.Errorf("ExitError does not expose its cause: %v", err)
	}
}
