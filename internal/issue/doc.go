// SPDX-License-Identifier: MPL-2.0

// Package issue explains chemikaze failures to the user.
//
// ActionableError names the step that failed (reading a formula file, writing
// a CSV report, loading the configuration) together with the path involved
// and what to try next. The issue catalog holds longer Markdown explanations
// of formula and configuration problems, rendered with glamour in verbose
// mode.
package issue
