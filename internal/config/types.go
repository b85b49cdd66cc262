// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/elsci/chemikaze/pkg/mf"
)

const (
	// OutputFormatText prints the canonical formula, e.g. "H2O".
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON prints element counts as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML prints element counts as YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatTOML prints element counts as TOML.
	OutputFormatTOML OutputFormat = "toml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MaxJobs bounds batch.jobs.
	MaxJobs = 1024
	// MaxFormulaLengthLimit bounds batch.max_formula_length.
	MaxFormulaLengthLimit = 1 << 30
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrOutOfRange is the sentinel error wrapped by OutOfRangeError.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidBatchConfig is the sentinel error wrapped by InvalidBatchConfigError.
	ErrInvalidBatchConfig = errors.New("invalid batch config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how parse results are printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutOfRangeError is returned when a numeric setting is outside [Min, Max].
	OutOfRangeError struct {
		Field string
		Value int
		Min   int
		Max   int
	}

	// InvalidOutputConfigError is returned when an OutputConfig has invalid fields.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidBatchConfigError is returned when a BatchConfig has invalid fields.
	// It wraps ErrInvalidBatchConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidBatchConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output configures how results are printed
		Output OutputConfig `json:"output" yaml:"output" toml:"output" mapstructure:"output"`
		// Batch configures the batch command
		Batch BatchConfig `json:"batch" yaml:"batch" toml:"batch" mapstructure:"batch"`
		// UI configures the user interface
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
	}

	// OutputConfig configures result printing.
	OutputConfig struct {
		// Format is one of text, json, yaml, toml
		Format OutputFormat `json:"format" yaml:"format" toml:"format" mapstructure:"format"`
	}

	// BatchConfig configures the batch command.
	BatchConfig struct {
		// Repeats is the number of timed passes over the input (default: 1)
		Repeats int `json:"repeats" yaml:"repeats" toml:"repeats" mapstructure:"repeats"`
		// Warmup runs one untimed pass before the timed ones
		Warmup bool `json:"warmup" yaml:"warmup" toml:"warmup" mapstructure:"warmup"`
		// Jobs is the number of parallel workers (default: 1)
		Jobs int `json:"jobs" yaml:"jobs" toml:"jobs" mapstructure:"jobs"`
		// FailFast stops at the first malformed formula (default: true)
		FailFast bool `json:"fail_fast" yaml:"fail_fast" toml:"fail_fast" mapstructure:"fail_fast"`
		// SkipBlank ignores lines that are empty after trimming (default: true)
		SkipBlank bool `json:"skip_blank" yaml:"skip_blank" toml:"skip_blank" mapstructure:"skip_blank"`
		// MaxFormulaLength is the scratch budget per formula in bytes
		MaxFormulaLength int `json:"max_formula_length" yaml:"max_formula_length" toml:"max_formula_length" mapstructure:"max_formula_length"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, yaml, toml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error {
	return ErrInvalidOutputFormat
}

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats,
// and a list of validation errors if it is not.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for OutOfRangeError.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// Unwrap returns ErrOutOfRange for errors.Is() compatibility.
func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

func checkRange(field string, value, lo, hi int) []error {
	if value < lo || value > hi {
		return []error{&OutOfRangeError{Field: field, Value: value, Min: lo, Max: hi}}
	}
	return nil
}

// IsValid returns whether the OutputConfig has valid fields.
func (c OutputConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		return false, []error{&InvalidOutputConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the BatchConfig has valid fields.
// Bool fields need no validation.
func (c BatchConfig) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, checkRange("batch.repeats", c.Repeats, 1, math.MaxInt32)...)
	errs = append(errs, checkRange("batch.jobs", c.Jobs, 1, MaxJobs)...)
	errs = append(errs, checkRange("batch.max_formula_length", c.MaxFormulaLength, 1, MaxFormulaLengthLimit)...)
	if len(errs) > 0 {
		return false, []error{&InvalidBatchConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBatchConfigError.
func (e *InvalidBatchConfigError) Error() string {
	return fmt.Sprintf("invalid batch config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBatchConfig for errors.Is() compatibility.
func (e *InvalidBatchConfigError) Unwrap() error { return ErrInvalidBatchConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Output.IsValid(), Batch.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Batch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError. The message
// lists the leaf field errors so it stands on its own in CLI output.
func (e *InvalidConfigError) Error() string {
	var leaves []error
	for _, err := range e.FieldErrors {
		leaves = append(leaves, leafErrors(err)...)
	}
	return fmt.Sprintf("invalid config: %v", errors.Join(leaves...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func leafErrors(err error) []error {
	switch e := err.(type) {
	case *InvalidOutputConfigError:
		return e.FieldErrors
	case *InvalidBatchConfigError:
		return e.FieldErrors
	case *InvalidUIConfigError:
		return e.FieldErrors
	default:
		return []error{err}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: OutputFormatText,
		},
		Batch: BatchConfig{
			Repeats:          1,
			Warmup:           false,
			Jobs:             1,
			FailFast:         true,
			SkipBlank:        true,
			MaxFormulaLength: mf.DefaultMaxLength,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
