// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"errors"
	"fmt"

	"github.com/elsci/chemikaze/pkg/mf"
)

// ErrInvalidOptions is the sentinel wrapped by InvalidOptionsError.
var ErrInvalidOptions = errors.New("invalid batch options")

type (
	// Options controls a batch run.
	Options struct {
		// Repeats is the number of timed passes over the input.
		Repeats int
		// Warmup runs one untimed pass before the timed ones.
		Warmup bool
		// Jobs is the number of workers sharing the lines of each pass.
		Jobs int
		// FailFast stops at the first malformed formula. Otherwise failures
		// are collected and the run continues.
		FailFast bool
		// SkipBlank ignores lines that are empty after trimming. Otherwise
		// they are reported as empty formulas.
		SkipBlank bool
		// MaxFormulaLength is the scratch budget per formula; longer lines
		// fail as out of memory.
		MaxFormulaLength int
		// CollectRows keeps a Row per parsed formula of the first timed
		// pass in Stats.Rows, for the CSV report.
		CollectRows bool
	}

	// InvalidOptionsError lists every option that failed validation.
	InvalidOptionsError struct {
		FieldErrors []error
	}
)

// DefaultOptions returns options for a single fail-fast pass.
func DefaultOptions() Options {
	return Options{
		Repeats:          1,
		Jobs:             1,
		FailFast:         true,
		SkipBlank:        true,
		MaxFormulaLength: mf.DefaultMaxLength,
	}
}

// Validate reports every field that is out of range.
func (o Options) Validate() error {
	var errs []error
	if o.Repeats < 1 {
		errs = append(errs, fmt.Errorf("repeats must be at least 1, got %d", o.Repeats))
	}
	if o.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", o.Jobs))
	}
	if o.MaxFormulaLength < 1 {
		errs = append(errs, fmt.Errorf("max formula length must be at least 1, got %d", o.MaxFormulaLength))
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidOptions, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidOptions for errors.Is() compatibility.
func (e *InvalidOptionsError) Unwrap() error { return ErrInvalidOptions }
