// SPDX-License-Identifier: MPL-2.0

package declaration

const (
	// ValueTypeString keeps the parsed text as-is. It is the default value type.
	ValueTypeString ValueType = "string"
	// ValueTypeNumber parses the text as an arbitrary-precision decimal number.
	ValueTypeNumber ValueType = "number"
)

// ValueType is the target type parsed values are coerced to.
type ValueType string

// ParseValueType maps a mini-DSL type code to a ValueType.
// Only "n" selects Number; every other code, including "", is String.
func ParseValueType(code string) ValueType {
	if code == "n" {
		return ValueTypeNumber
	}
	return ValueTypeString
}

// String returns the value type name.
func (t ValueType) String() string {
	return string(t.orDefault())
}

func (t ValueType) orDefault() ValueType {
	if t == "" {
		return ValueTypeString
	}
	return t
}
