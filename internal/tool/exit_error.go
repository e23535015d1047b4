// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess means the tool produced its structured output.
	ExitSuccess ExitCode = 0
	// ExitFailure covers usage errors, failed checks and unexpected errors alike.
	ExitFailure ExitCode = 1
)

// ErrInvalidExitCode is wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is the status a tool run ends with. Shells only see 0-255.
	ExitCode int

	// InvalidExitCodeError reports an ExitCode a shell cannot observe.
	InvalidExitCodeError struct {
		Value ExitCode
	}

	// ExitError signals a non-zero exit code from a RunE handler. A nil Err means the
	// failure has already been reported on the error stream.
	ExitError struct {
		Code ExitCode
		Err  error
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d is outside 0-255", e.Value)
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + e.Code.String()
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitFailure reports an already-written failure.
func exitFailure() error {
	return &ExitError{Code: ExitFailure}
}
