// SPDX-License-Identifier: MPL-2.0

package mf

import (
	"errors"
	"fmt"
)

const (
	// KindParse means the formula is malformed. Callers can reject the formula
	// and continue with the next one.
	KindParse Kind = iota + 1
	// KindOutOfMemory means the scratch space for the formula could not be
	// provided. Batch callers should stop.
	KindOutOfMemory
	// KindNullInput means no formula was given at all.
	KindNullInput
)

// Reasons reported by Parse errors.
const (
	ReasonEmptyFormula          = "Empty Molecular Formula"
	ReasonMismatchedParentheses = "the opening and closing parentheses don't match."
	ReasonOverflow              = "Atom count overflows 32 bits"

	reasonUnknownSymbol    = "Unknown chemical symbol: "
	reasonUnexpectedSymbol = "Unexpected symbol: "
)

var (
	// ErrParse is wrapped by every error of KindParse.
	ErrParse = errors.New("invalid molecular formula")
	// ErrOutOfMemory is wrapped by every error of KindOutOfMemory.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrNullInput is wrapped by every error of KindNullInput.
	ErrNullInput = errors.New("null input")

	// ErrEmptyFormula is wrapped when the formula is empty after trimming.
	ErrEmptyFormula = errors.New("empty molecular formula")
	// ErrUnknownSymbol is wrapped when an element symbol is not in the catalogue.
	ErrUnknownSymbol = errors.New("unknown chemical symbol")
	// ErrUnexpectedSymbol is wrapped when a byte cannot appear in a formula.
	ErrUnexpectedSymbol = errors.New("unexpected symbol")
	// ErrMismatchedParentheses is wrapped when group nesting is unbalanced.
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	// ErrOverflow is wrapped when a coefficient or total does not fit in 32 bits.
	ErrOverflow = errors.New("atom count overflow")
)

type (
	// Kind classifies an Error.
	Kind int

	// Error is returned by every parsing function. It wraps the sentinel of its
	// Kind and, for Parse errors, a sentinel describing the cause, so both
	// errors.Is(err, ErrParse) and errors.Is(err, ErrUnknownSymbol) work.
	Error struct {
		// Kind classifies the failure.
		Kind Kind
		// Formula is the offending input (trimmed), or "" when there was none.
		Formula string
		// Reason is the human-readable explanation.
		Reason string
		// Pos is the byte offset within Formula the error refers to, or -1.
		Pos int

		cause error
	}
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "Parse"
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindNullInput:
		return "NullInput"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error implements the error interface. Parse errors read
// "Couldn't parse <formula>. <reason>".
func (e *Error) Error() string {
	if e.Formula == "" {
		return e.Reason
	}
	return "Couldn't parse " + e.Formula + ". " + e.Reason
}

// Unwrap returns the kind sentinel and, when known, the cause sentinel.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	switch e.Kind {
	case KindParse:
		errs = append(errs, ErrParse)
	case KindOutOfMemory:
		errs = append(errs, ErrOutOfMemory)
	case KindNullInput:
		errs = append(errs, ErrNullInput)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// IsParse reports whether err is a recoverable Parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

func newParseError(mf []byte, pos int, reason string, cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Formula: string(mf),
		Reason:  reason,
		Pos:     pos,
		cause:   cause,
	}
}

func unknownSymbolError(mf []byte, start, end int) *Error {
	return newParseError(mf, start, reasonUnknownSymbol+string(mf[start:end]), ErrUnknownSymbol)
}

func unexpectedSymbolError(mf []byte, pos int) *Error {
	return newParseError(mf, pos, reasonUnexpectedSymbol+describeByte(mf[pos]), ErrUnexpectedSymbol)
}

func mismatchedParenthesesError(mf []byte, pos int) *Error {
	return newParseError(mf, pos, ReasonMismatchedParentheses, ErrMismatchedParentheses)
}

func overflowError(mf []byte, pos int) *Error {
	return newParseError(mf, pos, ReasonOverflow, ErrOverflow)
}

func emptyFormulaError() *Error {
	return &Error{Kind: KindParse, Reason: ReasonEmptyFormula, Pos: -1, cause: ErrEmptyFormula}
}

func nullInputError() *Error {
	return &Error{Kind: KindNullInput, Reason: "Expected a Molecular Formula, got nil", Pos: -1}
}

func outOfMemoryError(mf []byte, limit int) *Error {
	return &Error{
		Kind:   KindOutOfMemory,
		Reason: fmt.Sprintf("Couldn't allocate scratch memory for %d bytes (limit %d)", len(mf), limit),
		Pos:    -1,
	}
}

// describeByte renders printable ASCII as-is and anything else as a hex escape.
func describeByte(b byte) string {
	if b >= 0x21 && b <= 0x7E {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02X", b)
}
