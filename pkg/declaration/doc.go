// SPDX-License-Identifier: MPL-2.0

// Package declaration describes the options and positional arguments a shell script
// accepts, and how the values parsed for them are read back as typed values.
//
// A Declaration is built once, either directly with NewOption/NewArgument or from a
// compact mini-DSL string with DecodeOption/DecodeArgument:
//
//	arg1;Input file;f:f
//	arg2;Count;r:0;t:n;d:1
//	-m,--multiple;Multiple-value option;o:m
//
// Parsed values are bound to a declaration as an Input. An Input falls back to the
// declaration's defaults when nothing was parsed, coerces lazily to the declared value
// type, and reports whether it satisfies the required/can-be-empty/type rules.
package declaration
