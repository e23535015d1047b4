// SPDX-License-Identifier: MPL-2.0

package declaration

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue is returned when a required argument resolves to no values.
	ErrMissingValue = errors.New("missing value")
	// ErrEmptyValue is returned when an argument that cannot be empty resolves to an empty value.
	ErrEmptyValue = errors.New("empty value")
)

type (
	// Input binds a declaration to the raw values parsed for it in one invocation.
	// Coercion runs on first read and its result, success or failure, is kept for
	// the lifetime of the Input.
	Input struct {
		decl *Declaration
		raw  []string
		memo coercion
	}

	// coercion is the memo cell for Input.Values.
	coercion struct {
		done   bool
		values []Value
		err    error
	}

	// ValidationError reports the rule an input failed.
	ValidationError struct {
		Kind Kind
		Name string
		Err  error
	}
)

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Name, e.Err)
}

// Unwrap returns the failed rule.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Bind creates the input for d with the raw values parsed from the command line.
func Bind(d *Declaration, raw []string) *Input {
	return &Input{decl: d, raw: cloneStrings(raw)}
}

// Declaration returns the bound declaration.
func (in *Input) Declaration() *Declaration {
	return in.decl
}

// Raw returns the values parsed from the command line, without defaults.
func (in *Input) Raw() []string {
	return cloneStrings(in.raw)
}

// Resolved returns the parsed values, or the declaration's defaults if nothing was parsed.
func (in *Input) Resolved() []string {
	if len(in.raw) > 0 {
		return cloneStrings(in.raw)
	}
	return cloneStrings(in.decl.Defaults)
}

// Values returns the resolved values coerced to the declared value type.
func (in *Input) Values() ([]Value, error) {
	if !in.memo.done {
		in.memo.values, in.memo.err = CoerceAll(in.Resolved(), in.decl.ValueType)
		in.memo.done = true
	}
	return in.memo.values, in.memo.err
}

// Strings renders the coerced values back to text. It returns nil when coercion fails.
func (in *Input) Strings() []string {
	values, err := in.Values()
	if err != nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

// First returns the first coerced value.
func (in *Input) First() (Value, bool) {
	values, err := in.Values()
	if err != nil || len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// ValueExists reports whether coercion succeeds and at least one value resolved.
func (in *Input) ValueExists() bool {
	values, err := in.Values()
	return err == nil && len(values) > 0
}

// Validate applies the validity rules in order and returns the first failure.
// Options are only checked for coercion.
func (in *Input) Validate() error {
	if _, err := in.Values(); err != nil {
		return &ValidationError{Kind: in.decl.Kind, Name: in.decl.Name, Err: err}
	}
	if !in.decl.IsArgument() {
		return nil
	}
	resolved := in.Resolved()
	if in.decl.Required && len(resolved) == 0 {
		return &ValidationError{Kind: in.decl.Kind, Name: in.decl.Name, Err: ErrMissingValue}
	}
	if !in.decl.CanBeEmpty {
		for _, v := range resolved {
			if v == "" {
				return &ValidationError{Kind: in.decl.Kind, Name: in.decl.Name, Err: ErrEmptyValue}
			}
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds.
func (in *Input) IsValid() bool {
	return in.Validate() == nil
}
