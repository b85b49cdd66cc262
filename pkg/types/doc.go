// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the command line and the
// internal packages: process exit codes and filesystem paths.
package types
