// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/pkg/element"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newElementsCommand creates the `chemikaze elements` command.
func newElementsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the element catalogue",
		Long: `List every element chemikaze recognizes in canonical order.

The id is the element's position in the catalogue, which is also the order
used when printing canonical formulas. The bucket is the slot of the symbol
in the lookup hash table.`,
		Args: cobra.NoArgs,
		RunE: app.runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			if s.format != config.OutputFormatText {
				return writeDocument(app.stdout, s.format, newElementsDocument())
			}
			_, err := fmt.Fprintln(app.stdout, renderElementsTable())
			return err
		}),
	}
}

func renderElementsTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		Headers("ID", "SYMBOL", "BUCKET").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	for _, e := range element.All() {
		t.Row(strconv.Itoa(int(e)), e.Symbol(), strconv.Itoa(e.Bucket()))
	}

	return t.Render()
}
