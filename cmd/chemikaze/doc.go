// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for chemikaze.
//
// The root command is run through fang for styled help and errors. Every
// subcommand receives the App composition root, loads configuration through
// its ConfigProvider and writes to the App's streams, so tests can drive the
// commands without touching the process environment.
package cmd
