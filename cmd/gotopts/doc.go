// SPDX-License-Identifier: MPL-2.0

// Package cmd wires the gotopts command to the process: it loads the
// configuration, builds the logger and runs the command through fang.
package cmd
