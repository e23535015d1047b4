// SPDX-License-Identifier: MPL-2.0

// Package wire implements the text formats exchanged between gotopts and the shell
// script that calls it.
//
// The argument blob carries the script's own command-line tokens as one word:
//
//	[-m|xyz|-m|abc|foo bar|2]
//
// The encoded output is a bracketed list of shell assignments, one per line, which
// the outer command unwraps and prints for the script to eval:
//
//	[opt_m="xyz,abc"
//	arg_arg1="foo bar"
//	]
//
// Values are neither quoted nor escaped beyond the surrounding double quotes, so a
// value containing a comma, a double quote or a dollar sign does not survive eval
// unchanged.
package wire
