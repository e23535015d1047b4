// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultDelimiter separates tokens in an argument blob.
const DefaultDelimiter = "|"

// ErrMalformedArgs is returned when an argument blob is not enclosed in brackets.
var ErrMalformedArgs = errors.New("malformed argument blob")

// MalformedArgsError wraps ErrMalformedArgs for errors.Is() compatibility.
type MalformedArgsError struct {
	Blob string
}

// Error implements the error interface for MalformedArgsError.
func (e *MalformedArgsError) Error() string {
	return fmt.Sprintf("argument blob %q must be enclosed in '[' and ']'", e.Blob)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *MalformedArgsError) Unwrap() error {
	return ErrMalformedArgs
}

// SplitArgs splits an argument blob such as "[-m|xyz|foo bar]" into its tokens.
// An empty blob has no tokens, and "[]" has a single empty token. An empty
// delimiter leaves the interior as one token.
func SplitArgs(blob, delimiter string) ([]string, error) {
	if blob == "" {
		return nil, nil
	}
	if len(blob) < 2 || !strings.HasPrefix(blob, "[") || !strings.HasSuffix(blob, "]") {
		return nil, &MalformedArgsError{Blob: blob}
	}
	interior := blob[1 : len(blob)-1]
	if delimiter == "" {
		return []string{interior}, nil
	}
	return strings.Split(interior, delimiter), nil
}
