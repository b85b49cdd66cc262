// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/chemikaze/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/chemikaze/config.cue on macOS, %APPDATA%\chemikaze\config.cue
// on Windows), falling back to config.cue in the working directory. Values can be
// overridden with CHEMIKAZE_* environment variables, e.g. CHEMIKAZE_BATCH_JOBS=4.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
