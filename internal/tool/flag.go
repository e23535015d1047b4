// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"errors"
	"fmt"
	"strings"

	"gotopts-cli/pkg/declaration"

	"github.com/spf13/pflag"
)

// noValueOn is recorded for each occurrence of a no-value option.
const noValueOn = "on"

var (
	// ErrUnexpectedValue is returned when an option receives a value it cannot take.
	ErrUnexpectedValue = errors.New("unexpected option value")

	_ pflag.Value = (*recorder)(nil)
)

type (
	// recorder is a pflag.Value that keeps every raw value given for one option,
	// without splitting on commas.
	recorder struct {
		decl   *declaration.Declaration
		values []string
	}

	// UnexpectedValueError is returned for a second value of a single-value option or
	// an explicit value for a no-value option.
	// It wraps ErrUnexpectedValue for errors.Is() compatibility.
	UnexpectedValueError struct {
		Option string
		Value  string
	}
)

// Error implements the error interface for UnexpectedValueError.
func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("Unexpected value '%s' for option '%s'", e.Value, e.Option)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnexpectedValueError) Unwrap() error {
	return ErrUnexpectedValue
}

func newRecorder(d *declaration.Declaration) *recorder {
	return &recorder{decl: d}
}

func (r *recorder) String() string {
	if len(r.values) > 0 {
		return strings.Join(r.values, ",")
	}
	return strings.Join(r.decl.Defaults, ",")
}

func (r *recorder) Set(value string) error {
	switch r.decl.Arity {
	case declaration.ArityNoValue:
		if value != noValueOn {
			return &UnexpectedValueError{Option: r.decl.Name, Value: value}
		}
	case declaration.AritySingleValue:
		if len(r.values) > 0 {
			return &UnexpectedValueError{Option: r.decl.Name, Value: value}
		}
	}
	r.values = append(r.values, value)
	return nil
}

func (r *recorder) Type() string {
	switch r.decl.Arity {
	case declaration.ArityNoValue:
		return ""
	case declaration.ArityMultiValue:
		return r.decl.ValueType.String() + "s"
	default:
		return r.decl.ValueType.String()
	}
}

// addFlag registers the option on fs and returns its recorder. A short-only option
// uses its letter as both flag name and shorthand.
func addFlag(fs *pflag.FlagSet, d *declaration.Declaration) *recorder {
	r := newRecorder(d)
	f := fs.VarPF(r, flagName(d), d.Short, d.Description)
	if d.Arity == declaration.ArityNoValue {
		f.NoOptDefVal = noValueOn
	}
	return r
}
