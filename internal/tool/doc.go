// SPDX-License-Identifier: MPL-2.0

// Package tool turns a set of option and argument declarations into a runnable
// command-line tool.
//
// A Tool wraps a cobra command whose flags record the raw values parsed for each
// declared option. After parsing, the recorded values and positional arguments are
// bound to their declarations, checked for basic validity, and handed to the tool's
// Handler. The same engine drives both the gotopts command itself and the per-script
// command built from decoded declarations.
package tool
