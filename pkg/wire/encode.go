// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"errors"
	"strings"
)

// ErrNotEncoded is returned by Unwrap when the text is not a bracketed output block.
var ErrNotEncoded = errors.New("text is not an encoded output block")

// Entry is one named output line.
type Entry struct {
	// Name is the full variable name, e.g. "opt_m" or "arg_file".
	Name   string
	Values []string
}

// Line renders the entry as name="v1,v2".
func (e Entry) Line() string {
	return e.Name + `="` + strings.Join(e.Values, ",") + `"`
}

// Encode renders the entries as a bracketed block with one newline-terminated line
// per entry.
func Encode(entries []Entry) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, e := range entries {
		b.WriteString(e.Line())
		b.WriteByte('\n')
	}
	b.WriteByte(']')
	return b.String()
}

// Unwrap strips the brackets from an encoded block and returns its non-empty lines.
// When prefix is not empty every line is prefixed with prefix and an underscore.
func Unwrap(text, prefix string) ([]string, error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, ErrNotEncoded
	}
	var lines []string
	for line := range strings.SplitSeq(text[1:len(text)-1], "\n") {
		if line == "" {
			continue
		}
		if prefix != "" {
			line = prefix + "_" + line
		}
		lines = append(lines, line)
	}
	return lines, nil
}
