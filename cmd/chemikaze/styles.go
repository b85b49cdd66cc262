// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states and canonical formulas.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and the position caret.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for commands, keys and element symbols.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Base styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names, configuration keys and symbols.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// caretStyle underlines the offending byte of a formula.
	caretStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// tableCellStyle pads element table cells.
	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// tableHeaderStyle is for element table headers.
	tableHeaderStyle = tableCellStyle.
				Bold(true).
				Foreground(ColorPrimary)
)
