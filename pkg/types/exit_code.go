// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess means every formula was processed.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure: bad flags, unreadable files, invalid config.
	ExitFailure ExitCode = 1
	// ExitParseFailure means at least one formula was rejected as malformed.
	ExitParseFailure ExitCode = 2
	// ExitOutOfMemory means a formula could not be given scratch space and
	// processing stopped.
	ExitOutOfMemory ExitCode = 3
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// Max returns the more severe of two exit codes. Out of memory outranks
// parse failures, which outrank generic failures.
func (c ExitCode) Max(other ExitCode) ExitCode {
	if severity(other) > severity(c) {
		return other
	}
	return c
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

func severity(c ExitCode) int {
	switch c {
	case ExitSuccess:
		return 0
	case ExitParseFailure:
		return 2
	case ExitOutOfMemory:
		return 3
	default:
		return 1
	}
}
