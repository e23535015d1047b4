// SPDX-License-Identifier: MPL-2.0

package declaration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoMatch is returned when a mini-DSL string does not follow the declaration grammar.
var ErrNoMatch = errors.New("declaration does not match grammar")

var (
	argumentPattern = regexp.MustCompile(`(?i)^(?P<name>[a-z0-9_]+?);(?P<desc>.*?)(;r:(?P<req>[01ft]))?(;e:(?P<cbe>[01ft]))?(;f:(?P<func>.*?))?(;t:(?P<type>.*?))?(;d:(?P<def>.*?))?$`)
	optionPattern   = regexp.MustCompile(`(?i)^(?P<temp>[a-z0-9_\-,]+?);(?P<desc>.*?)(;o:(?P<opt>.*?))?(;f:(?P<func>.*?))?(;t:(?P<type>.*?))?(;d:(?P<def>.*?))?$`)
)

type (
	// NoMatchError is returned when a mini-DSL string cannot be decoded.
	// It wraps ErrNoMatch for errors.Is() compatibility.
	NoMatchError struct {
		Kind  Kind
		Input string
	}

	// groups holds the named submatches of one decoded string.
	groups struct {
		re      *regexp.Regexp
		s       string
		indexes []int
	}
)

// Error implements the error interface for NoMatchError.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s declaration %q: %v", e.Kind, e.Input, ErrNoMatch)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

// DecodeArgument decodes an argument mini-DSL string:
//
//	name;description[;r:required][;e:canBeEmpty][;f:func][;t:type][;d:default]
//
// required defaults to true and canBeEmpty to false; only "1" and "t" mean true.
func DecodeArgument(s string) (*Declaration, error) {
	g, ok := match(argumentPattern, s)
	if !ok {
		return nil, &NoMatchError{Kind: KindArgument, Input: s}
	}

	required := true
	if v, ok := g.get("req"); ok {
		required = isTrue(v)
	}
	canBeEmpty := false
	if v, ok := g.get("cbe"); ok {
		canBeEmpty = isTrue(v)
	}
	name, _ := g.get("name")
	desc, _ := g.get("desc")
	tag, _ := g.get("func")
	typ, _ := g.get("type")

	return NewArgument(ArgumentParams{
		Name:        name,
		Description: desc,
		Required:    required,
		CanBeEmpty:  canBeEmpty,
		ValueType:   ParseValueType(typ),
		Defaults:    g.defaults(),
		Tag:         tag,
	})
}

// DecodeOption decodes an option mini-DSL string:
//
//	template;description[;o:optionType][;f:func][;t:type][;d:default]
//
// Aliases in the template are separated by commas. The option type is "m" for
// multi-value, "s" for single-value and anything else for no-value.
func DecodeOption(s string) (*Declaration, error) {
	g, ok := match(optionPattern, s)
	if !ok {
		return nil, &NoMatchError{Kind: KindOption, Input: s}
	}

	temp, _ := g.get("temp")
	desc, _ := g.get("desc")
	opt, _ := g.get("opt")
	tag, _ := g.get("func")
	typ, _ := g.get("type")

	return NewOption(OptionParams{
		Template:    strings.ReplaceAll(temp, ",", "|"),
		Description: desc,
		Arity:       parseArity(opt),
		ValueType:   ParseValueType(typ),
		Defaults:    g.defaults(),
		Tag:         tag,
	})
}

func match(re *regexp.Regexp, s string) (groups, bool) {
	indexes := re.FindStringSubmatchIndex(s)
	if indexes == nil {
		return groups{}, false
	}
	return groups{re: re, s: s, indexes: indexes}, true
}

// get returns the named submatch and whether the group participated in the match.
func (g groups) get(name string) (string, bool) {
	i := g.re.SubexpIndex(name)
	if i < 0 || g.indexes[2*i] < 0 {
		return "", false
	}
	return g.s[g.indexes[2*i]:g.indexes[2*i+1]], true
}

func (g groups) defaults() []string {
	if v, ok := g.get("def"); ok {
		return []string{v}
	}
	return nil
}

func isTrue(v string) bool {
	return v == "1" || v == "t"
}

func parseArity(code string) Arity {
	switch code {
	case "m":
		return ArityMultiValue
	case "s":
		return AritySingleValue
	default:
		return ArityNoValue
	}
}
