// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown guides that are
// rendered with glamour when such an error reaches the user.
package issue
