// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"reflect"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type (
	// UsageError is a command-line parsing failure. Its message is shown as-is.
	UsageError struct {
		Message string
	}

	// PanicError carries a value recovered from a panic during execution.
	PanicError struct {
		Value any
	}
)

// Error implements the error interface for UsageError.
func (e *UsageError) Error() string {
	return e.Message
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Report writes err to w the way a tool reports failures and returns the exit code
// for it. Usage errors are written verbatim, errors already reported through an
// ExitError are not written again, and anything else is written as "<Kind>: <message>".
func Report(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.Code
		if code.Validate() != nil || code.IsSuccess() {
			code = ExitFailure
		}
		if exitErr.Err != nil {
			Report(w, exitErr.Err)
		}
		return code
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, usageErr.Message)
		return ExitFailure
	}

	fmt.Fprintf(w, "%s: %s\n", ErrorKind(err), err.Error())
	return ExitFailure
}

// ErrorKind names the type of err: the exported type name of err, or of the first
// error in its chain with one, and "Error" when there is none.
func ErrorKind(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		t := reflect.TypeOf(e)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if name := t.Name(); name != "" && token.IsExported(name) {
			return name
		}
	}
	return "Error"
}

// flagError converts pflag parse failures into usage errors.
func flagError(_ *cobra.Command, err error) error {
	var (
		notExist      *pflag.NotExistError
		valueRequired *pflag.ValueRequiredError
		invalidSyntax *pflag.InvalidSyntaxError
		unexpected    *UnexpectedValueError
	)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		// pflag reserves -h for help when no flag claims it.
		return &UsageError{Message: "Unrecognized option '-h'"}
	case errors.As(err, &unexpected):
		return &UsageError{Message: unexpected.Error()}
	case errors.As(err, &notExist):
		if notExist.GetSpecifiedShortnames() != "" {
			return &UsageError{Message: fmt.Sprintf("Unrecognized option '-%s'", notExist.GetSpecifiedName())}
		}
		return &UsageError{Message: fmt.Sprintf("Unrecognized option '--%s'", notExist.GetSpecifiedName())}
	case errors.As(err, &valueRequired):
		return &UsageError{Message: fmt.Sprintf("Missing value for option '%s'", valueRequired.GetSpecifiedName())}
	case errors.As(err, &invalidSyntax):
		return &UsageError{Message: fmt.Sprintf("Unrecognized option '%s'", invalidSyntax.GetSpecifiedFlag())}
	default:
		return &UsageError{Message: err.Error()}
	}
}
