// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/elsci/chemikaze/internal/batch"
	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/pkg/element"
	"github.com/elsci/chemikaze/pkg/mf"
	"github.com/elsci/chemikaze/pkg/types"

	"github.com/spf13/cobra"
)

// newParseCommand creates the `chemikaze parse` command.
func newParseCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var hydrogens bool

	cmd := &cobra.Command{
		Use:   "parse <formula>... | -",
		Short: "Parse molecular formulas",
		Long: `Parse molecular formulas and print their canonical form.

The canonical form lists every element once, in catalogue order, followed by
its atom count when above 1. Groups in () or [] are multiplied by the number
after them, components joined by '.' are summed with their leading
coefficient, and a trailing charge such as 2- is ignored.

Pass '-' to read one formula per line from standard input.

Examples:
  chemikaze parse HOH                      H2O
  chemikaze parse "NH3.2CH3"               H9C2N
  chemikaze parse -o json "[CH4CH4]2+"     Structured atom counts`,
		Args: cobra.MinimumNArgs(1),
		RunE: app.runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			formulas, err := collectFormulas(app.stdin, args)
			if err != nil {
				return err
			}
			return runParse(app, s, formulas, hydrogens)
		}),
	}

	cmd.Flags().BoolVar(&hydrogens, "hydrogens", false, "print only the hydrogen count of each formula")

	return cmd
}

// collectFormulas expands '-' into the non-blank lines of stdin.
func collectFormulas(stdin io.Reader, args []string) ([]string, error) {
	formulas := make([]string, 0, len(args))
	for _, arg := range args {
		if !types.FilesystemPath(arg).IsStdin() {
			formulas = append(formulas, arg)
			continue
		}
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		for _, line := range batch.SplitLines(buf, true) {
			formulas = append(formulas, string(line.Text))
		}
	}
	return formulas, nil
}

func runParse(app *App, s *session, formulas []string, hydrogens bool) error {
	parser := mf.NewParser(mf.WithMaxLength(s.cfg.Batch.MaxFormulaLength))

	exitCode := types.ExitSuccess
	failed := 0
	doc := parseDocument{Results: make([]formulaDocument, 0, len(formulas))}

	for _, formula := range formulas {
		counts, err := parser.Parse(formula)
		if err != nil {
			failed++
			exitCode = exitCode.Max(exitCodeFor(err))
		}

		if s.format != config.OutputFormatText {
			doc.Results = append(doc.Results, newFormulaDocument(formula, counts, err))
			continue
		}

		if err != nil {
			var mfErr *mf.Error
			if !errors.As(err, &mfErr) {
				return err
			}
			renderParseError(app.stderr, mfErr, 0, s)
			continue
		}
		if hydrogens {
			fmt.Fprintln(app.stdout, counts.Get(element.Hydrogen))
		} else {
			fmt.Fprintln(app.stdout, counts.String())
		}
	}

	if s.format != config.OutputFormatText {
		if err := writeDocument(app.stdout, s.format, doc); err != nil {
			return fmt.Errorf("failed to write %s output: %w", s.format, err)
		}
	}

	if exitCode.IsSuccess() {
		return nil
	}
	return &ExitError{
		Code: exitCode,
		Err:  fmt.Errorf("%d of %d formulas failed to parse", failed, len(formulas)),
	}
}
