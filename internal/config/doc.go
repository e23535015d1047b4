// SPDX-License-Identifier: MPL-2.0

// Package config handles gotopts configuration using Viper, with CUE or TOML as the
// file format.
//
// The file is $GOTOPTS_CONFIG when set, otherwise config.cue or config.toml in
// ~/.config/gotopts (or the XDG equivalent on Linux, ~/Library/Application Support/gotopts
// on macOS, %APPDATA%\gotopts on Windows). CUE files are validated against the embedded
// config_schema.cue. GOTOPTS_<KEY> environment variables override file values.
package config
