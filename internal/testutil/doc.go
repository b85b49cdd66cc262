// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// It covers environment variable management (MustSetenv, MustUnsetenv), file
// creation (MustMkdirAll, MustWriteFile) and home directory overrides
// (SetHomeDir). FakeClock stands in for the wall clock in batch timings.
package testutil
