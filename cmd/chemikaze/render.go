// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elsci/chemikaze/internal/issue"
	"github.com/elsci/chemikaze/pkg/mf"
)

// renderParseError prints a parser error with a caret under the offending
// byte. line is the 1-based input line, or 0 when the formula came from an
// argument. In verbose mode the matching issue catalog entry follows.
func renderParseError(w io.Writer, err *mf.Error, line int, s *session) {
	prefix := ""
	if line > 0 {
		prefix = fmt.Sprintf("line %d: ", line)
	}
	fmt.Fprintln(w, ErrorStyle.Render("✗ ")+prefix+err.Error())

	if err.Pos >= 0 && err.Pos < len(err.Formula) {
		fmt.Fprintln(w, "  "+err.Formula)
		fmt.Fprintln(w, "  "+strings.Repeat(" ", err.Pos)+caretStyle.Render("^"))
	}

	if !s.verbose {
		return
	}
	rendered, renderErr := issue.Get(issueForParseError(err)).Render(s.glamourStyle)
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// issueForParseError picks the issue catalog entry explaining err.
func issueForParseError(err error) issue.Id {
	switch {
	case errors.Is(err, mf.ErrUnknownSymbol):
		return issue.UnknownElementId
	case errors.Is(err, mf.ErrMismatchedParentheses):
		return issue.MismatchedParenthesesId
	case errors.Is(err, mf.ErrEmptyFormula):
		return issue.EmptyFormulaId
	case errors.Is(err, mf.ErrOutOfMemory):
		return issue.FormulaTooLongId
	default:
		return issue.FormulaParseErrorId
	}
}
