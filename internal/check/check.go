// SPDX-License-Identifier: MPL-2.0

// Package check implements the post-parse checks a script can attach to an option or
// argument through its declaration tag.
package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"syscall"
)

const (
	TagDirExists  = "d"
	TagDirAbsent  = "!d"
	TagFileExists = "f"
	TagFileAbsent = "!f"
	TagAlwaysFail = "fail"
)

// Check inspects a value and returns a failure detail, or "" when the value passes.
type Check func(value string) (string, error)

var checks = map[string]Check{
	TagDirExists: func(v string) (string, error) {
		ok, err := isDir(v)
		if err != nil || ok {
			return "", err
		}
		return fmt.Sprintf("directory '%s' does not exist", v), nil
	},
	TagDirAbsent: func(v string) (string, error) {
		ok, err := isDir(v)
		if err != nil || !ok {
			return "", err
		}
		return fmt.Sprintf("directory '%s' already exists", v), nil
	},
	TagFileExists: func(v string) (string, error) {
		ok, err := isFile(v)
		if err != nil || ok {
			return "", err
		}
		return fmt.Sprintf("file '%s' does not exist", v), nil
	},
	TagFileAbsent: func(v string) (string, error) {
		ok, err := isFile(v)
		if err != nil || !ok {
			return "", err
		}
		return fmt.Sprintf("file '%s' already exists", v), nil
	},
	TagAlwaysFail: func(string) (string, error) {
		return "FAIL.", nil
	},
}

// Lookup returns the check registered for tag. Unknown tags have no check.
func Lookup(tag string) (Check, bool) {
	c, ok := checks[tag]
	return c, ok
}

// Tags lists the known check tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(checks))
	for tag := range checks {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Run applies the check for tag to value and returns the failure detail, or "" when
// the value passes or the tag has no check. Errors are folded into the detail.
func Run(tag, value string) string {
	c, ok := Lookup(tag)
	if !ok {
		return ""
	}
	detail, err := c(value)
	if err != nil {
		return "Error: " + err.Error()
	}
	return detail
}

func isDir(path string) (bool, error) {
	info, err := stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

func isFile(path string) (bool, error) {
	info, err := stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// stat returns a nil FileInfo and no error when path does not exist.
func stat(path string) (fs.FileInfo, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	return info, err
}
