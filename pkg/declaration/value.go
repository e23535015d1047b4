// SPDX-License-Identifier: MPL-2.0

package declaration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ErrCoercion is returned when a raw value cannot be coerced to the declared value type.
var ErrCoercion = errors.New("value cannot be coerced")

// numberPattern accepts an optional sign, digits and at most one decimal point.
// apd alone would also accept exponents, NaN and Infinity.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

type (
	// Value is a coerced input value. The set of implementations is closed:
	// StringValue and NumberValue.
	Value interface {
		// Type reports the variant of the value.
		Type() ValueType
		// String renders the value back to text for output.
		String() string

		sealed()
	}

	// StringValue is the identity coercion of a raw value.
	StringValue string

	// NumberValue is a decimal number parsed from a raw value.
	NumberValue struct {
		d *apd.Decimal
	}

	// CoercionError is returned when a raw value does not parse as its declared type.
	// It wraps ErrCoercion for errors.Is() compatibility.
	CoercionError struct {
		Value string
		Type  ValueType
	}
)

// Type implements Value.
func (StringValue) Type() ValueType { return ValueTypeString }

func (v StringValue) String() string { return string(v) }

func (StringValue) sealed() {}

// Type implements Value.
func (NumberValue) Type() ValueType { return ValueTypeNumber }

// String renders the number in plain decimal notation, keeping its scale:
// "+5" renders as "5", ".5" as "0.5" and "2.50" as "2.50".
func (v NumberValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.Text('f')
}

func (NumberValue) sealed() {}

// Error implements the error interface for CoercionError.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("value %q is not a valid %s", e.Value, e.Type)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}

// Coerce converts a raw value to the given value type.
func Coerce(raw string, t ValueType) (Value, error) {
	switch t.orDefault() {
	case ValueTypeNumber:
		return parseNumber(raw)
	default:
		return StringValue(raw), nil
	}
}

// CoerceAll coerces every raw value. The first failure fails the whole sequence.
func CoerceAll(raws []string, t ValueType) ([]Value, error) {
	values := make([]Value, 0, len(raws))
	for _, raw := range raws {
		v, err := Coerce(raw, t)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseNumber(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if !numberPattern.MatchString(s) {
		return nil, &CoercionError{Value: raw, Type: ValueTypeNumber}
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, &CoercionError{Value: raw, Type: ValueTypeNumber}
	}
	if d.IsZero() {
		d.Negative = false
	}
	return NumberValue{d: d}, nil
}
