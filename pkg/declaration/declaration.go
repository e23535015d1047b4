// SPDX-License-Identifier: MPL-2.0

package declaration

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindOption declares a named option such as -m or --multiple.
	KindOption Kind = iota + 1
	// KindArgument declares a positional argument.
	KindArgument
)

const (
	// ArityNoValue options are switches; their presence records the value "on".
	ArityNoValue Arity = iota
	// AritySingleValue options take exactly one value.
	AritySingleValue
	// ArityMultiValue options take one value per occurrence.
	ArityMultiValue
)

const (
	// InputArgument is an optional argument.
	InputArgument InputKind = "argument"
	// InputArgumentRequired is a required argument that rejects empty values.
	InputArgumentRequired InputKind = "argument-required"
	// InputArgumentCanBeEmpty is a required argument that accepts an empty value.
	InputArgumentCanBeEmpty InputKind = "argument-can-be-empty"
	// InputOptionNoValue is a switch recorded as "on" when given.
	InputOptionNoValue InputKind = "option-no-value"
	// InputOptionSingleValue is an option given at most once with one value.
	InputOptionSingleValue InputKind = "option-single-value"
	// InputOptionMultiValue is an option that collects a value per occurrence.
	InputOptionMultiValue InputKind = "option-multi-value"
)

var (
	// ErrInvalidOption is returned when an option declaration is malformed.
	ErrInvalidOption = errors.New("invalid option declaration")
	// ErrInvalidArgument is returned when an argument declaration is malformed.
	ErrInvalidArgument = errors.New("invalid argument declaration")
)

type (
	// Kind discriminates the two declaration variants.
	Kind int

	// Arity is how many values an option takes.
	Arity int

	// InputKind combines the declaration kind with its arity or requirement flags.
	InputKind string

	// Declaration describes one option or positional argument of a script.
	// Fields below the Kind-specific markers are only meaningful for that kind.
	// Build declarations with NewOption or NewArgument so the invariants hold.
	Declaration struct {
		Kind        Kind
		Name        string
		Description string
		ValueType   ValueType
		// Defaults are used when nothing is parsed for the declaration; the first is primary.
		Defaults []string
		// Tag is an opaque user tag. The shell script command reads it as a post-parse check.
		Tag string

		// Option only.
		Template string
		Short    string
		Long     string
		Arity    Arity

		// Argument only.
		Required   bool
		CanBeEmpty bool
	}

	// OptionParams are the inputs to NewOption.
	OptionParams struct {
		// Template lists the aliases separated by '|', e.g. "-m|--multiple".
		Template    string
		Description string
		Arity       Arity
		ValueType   ValueType
		Defaults    []string
		Tag         string
	}

	// ArgumentParams are the inputs to NewArgument.
	ArgumentParams struct {
		Name        string
		Description string
		Required    bool
		CanBeEmpty  bool
		ValueType   ValueType
		Defaults    []string
		Tag         string
	}

	// InvalidOptionError is returned when an option declaration cannot be built.
	// It wraps ErrInvalidOption for errors.Is() compatibility.
	InvalidOptionError struct {
		Template string
		Reason   string
	}

	// InvalidArgumentError is returned when an argument declaration cannot be built.
	// It wraps ErrInvalidArgument for errors.Is() compatibility.
	InvalidArgumentError struct {
		Name   string
		Reason string
	}
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindArgument:
		return "argument"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (a Arity) String() string {
	switch a {
	case ArityNoValue:
		return "no-value"
	case AritySingleValue:
		return "single-value"
	case ArityMultiValue:
		return "multi-value"
	default:
		return fmt.Sprintf("Arity(%d)", int(a))
	}
}

// Error implements the error interface for InvalidOptionError.
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("option %q: %s", e.Template, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOptionError) Unwrap() error {
	return ErrInvalidOption
}

// Error implements the error interface for InvalidArgumentError.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Name, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NewOption builds an option declaration from its template and settings.
// NoValue options accept neither defaults nor a non-string value type.
func NewOption(p OptionParams) (*Declaration, error) {
	short, long, err := parseTemplate(p.Template)
	if err != nil {
		return nil, err
	}
	switch p.Arity {
	case ArityNoValue, AritySingleValue, ArityMultiValue:
	default:
		return nil, &InvalidOptionError{Template: p.Template, Reason: fmt.Sprintf("unknown arity %d", int(p.Arity))}
	}
	vt := p.ValueType.orDefault()
	if p.Arity == ArityNoValue {
		if len(p.Defaults) > 0 {
			return nil, &InvalidOptionError{Template: p.Template, Reason: "a no-value option cannot have default values"}
		}
		if vt != ValueTypeString {
			return nil, &InvalidOptionError{Template: p.Template, Reason: "a no-value option cannot have a value type"}
		}
	}

	name := short
	if name == "" {
		name = long
	}
	return &Declaration{
		Kind:        KindOption,
		Name:        name,
		Description: p.Description,
		ValueType:   vt,
		Defaults:    cloneStrings(p.Defaults),
		Tag:         p.Tag,
		Template:    p.Template,
		Short:       short,
		Long:        long,
		Arity:       p.Arity,
	}, nil
}

// NewArgument builds a positional argument declaration.
// An argument that can be empty is always required.
func NewArgument(p ArgumentParams) (*Declaration, error) {
	if p.Name == "" {
		return nil, &InvalidArgumentError{Name: p.Name, Reason: "name must not be empty"}
	}
	return &Declaration{
		Kind:        KindArgument,
		Name:        p.Name,
		Description: p.Description,
		ValueType:   p.ValueType.orDefault(),
		Defaults:    cloneStrings(p.Defaults),
		Tag:         p.Tag,
		Required:    p.Required || p.CanBeEmpty,
		CanBeEmpty:  p.CanBeEmpty,
	}, nil
}

// IsOption reports whether d declares an option.
func (d *Declaration) IsOption() bool { return d.Kind == KindOption }

// IsArgument reports whether d declares a positional argument.
func (d *Declaration) IsArgument() bool { return d.Kind == KindArgument }

// DefaultValue returns the primary default value, if any.
func (d *Declaration) DefaultValue() (string, bool) {
	if len(d.Defaults) == 0 {
		return "", false
	}
	return d.Defaults[0], true
}

// Prefix is the output name prefix for the declaration kind: "opt" or "arg".
func (d *Declaration) Prefix() string {
	if d.IsOption() {
		return "opt"
	}
	return "arg"
}

// InputKind returns the combined kind tag of the declaration.
func (d *Declaration) InputKind() InputKind {
	if d.IsOption() {
		switch d.Arity {
		case AritySingleValue:
			return InputOptionSingleValue
		case ArityMultiValue:
			return InputOptionMultiValue
		default:
			return InputOptionNoValue
		}
	}
	switch {
	case d.CanBeEmpty:
		return InputArgumentCanBeEmpty
	case d.Required:
		return InputArgumentRequired
	default:
		return InputArgument
	}
}

// Label is how the declaration is shown in help: the template for options,
// the name for arguments.
func (d *Declaration) Label() string {
	if d.IsOption() {
		return d.Template
	}
	return d.Name
}

// parseTemplate splits an option template into its short and long names.
func parseTemplate(template string) (short, long string, err error) {
	if template == "" {
		return "", "", &InvalidOptionError{Template: template, Reason: "template must not be empty"}
	}
	for alias := range strings.SplitSeq(template, "|") {
		switch {
		case strings.HasPrefix(alias, "--"):
			name := alias[2:]
			if !isOptionName(name) {
				return "", "", &InvalidOptionError{Template: template, Reason: fmt.Sprintf("invalid long alias %q", alias)}
			}
			if long != "" {
				return "", "", &InvalidOptionError{Template: template, Reason: "more than one long alias"}
			}
			long = name
		case strings.HasPrefix(alias, "-"):
			name := alias[1:]
			if len(name) != 1 || !isOptionName(name) {
				return "", "", &InvalidOptionError{Template: template, Reason: fmt.Sprintf("short alias %q must be a single character", alias)}
			}
			if short != "" {
				return "", "", &InvalidOptionError{Template: template, Reason: "more than one short alias"}
			}
			short = name
		default:
			return "", "", &InvalidOptionError{Template: template, Reason: fmt.Sprintf("alias %q must start with '-' or '--'", alias)}
		}
	}
	return short, long, nil
}

func isOptionName(s string) bool {
	if s == "" || s[0] == '-' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
