// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "parse failure is valid", value: ExitParseFailure, wantValid: true},
		{name: "out of memory is valid", value: ExitOutOfMemory, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
		{name: "large positive is invalid", value: 1000, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("ExitCode(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want bool
	}{
		{ExitSuccess, true},
		{ExitFailure, false},
		{ExitParseFailure, false},
		{255, false},
	}

	for _, tt := range tests {
		if got := tt.code.IsSuccess(); got != tt.want {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeMax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b ExitCode
		want ExitCode
	}{
		{ExitSuccess, ExitSuccess, ExitSuccess},
		{ExitSuccess, ExitFailure, ExitFailure},
		{ExitFailure, ExitParseFailure, ExitParseFailure},
		{ExitParseFailure, ExitFailure, ExitParseFailure},
		{ExitOutOfMemory, ExitParseFailure, ExitOutOfMemory},
		{ExitParseFailure, ExitOutOfMemory, ExitOutOfMemory},
		{ExitSuccess, 42, 42},
	}

	for _, tt := range tests {
		if got := tt.a.Max(tt.b); got != tt.want {
			t.Errorf("ExitCode(%d).Max(%d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}
