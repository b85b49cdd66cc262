// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strconv"
	"strings"
)

type (
	// ActionableError reports a failed step of a chemikaze command, such as
	// reading a formula file, together with hints for the user.
	ActionableError struct {
		// Operation is the failed step as a verb phrase ("read formula file").
		Operation string
		// Resource is the path the step worked on, if any.
		Resource string
		// Suggestions are printed below the message, one per line.
		Suggestions []string
		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext accumulates the parts of an ActionableError. Callers set the
	// operation and resource up front and add suggestions once they know which
	// failure they are handling:
	//
	//	ctx := issue.NewErrorContext().
	//		WithOperation("read formula file").
	//		WithResource(path)
	//	if errors.Is(err, fs.ErrPermission) {
	//		ctx = ctx.WithSuggestion("Check the file permissions")
	//	}
	//	return ctx.Wrap(err).BuildError()
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, "failed to "+e.Operation)
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause, so errors.Is finds fs.ErrNotExist and friends.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message followed by a bulleted list of suggestions. In
// verbose mode every error of the cause chain is listed as well, numbered
// from the outermost.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if e.HasSuggestions() {
		sb.WriteString("\n")
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • ")
			sb.WriteString(s)
		}
	}

	if !verbose || e.Cause == nil {
		return sb.String()
	}

	sb.WriteString("\n\nError chain:")
	for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
		sb.WriteString("\n  " + strconv.Itoa(i) + ". " + err.Error())
	}
	return sb.String()
}

// HasSuggestions reports whether any hint is attached.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the failed step.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the path the step worked on.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends a hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns a copy of the accumulated error, or nil when no operation
// was set. Later changes to the builder do not affect returned errors.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build returning the error interface, with a nil
// *ActionableError mapped to a nil error.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
