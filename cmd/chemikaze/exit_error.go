// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/elsci/chemikaze/pkg/mf"
	"github.com/elsci/chemikaze/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps a parser error to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case errors.Is(err, mf.ErrOutOfMemory):
		return types.ExitOutOfMemory
	case errors.Is(err, mf.ErrParse), errors.Is(err, mf.ErrNullInput):
		return types.ExitParseFailure
	default:
		return types.ExitFailure
	}
}
