// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/elsci/chemikaze/internal/batch"
	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/internal/issue"
	"github.com/elsci/chemikaze/pkg/types"

	"github.com/spf13/cobra"
)

// batchFlagValues holds the batch flags. Each one overrides its batch.*
// configuration key only when set on the command line.
type batchFlagValues struct {
	repeats   int
	warmup    bool
	jobs      int
	failFast  bool
	skipBlank bool
	csvPath   string
}

// newBatchCommand creates the `chemikaze batch` command.
func newBatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	bf := &batchFlagValues{}

	cmd := &cobra.Command{
		Use:   "batch <file> | -",
		Short: "Parse a file of formulas, one per line",
		Long: `Parse a file of molecular formulas, one per line, and report how many
hydrogen atoms they contain together with the parse throughput.

Lines may end in \n or \r\n. Blank lines are skipped unless batch.skip_blank
is false. Pass '-' to read standard input.

Examples:
  chemikaze batch formulas.txt
  chemikaze batch --repeats 50 --warmup formulas.txt    Benchmark the parser
  chemikaze batch -j 8 --fail-fast=false formulas.txt   Report every bad line
  chemikaze batch --csv hydrogens.csv formulas.txt      Write a per-formula report`,
		Args: cobra.ExactArgs(1),
		RunE: app.runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			opts := batchOptions(cmd, s.cfg.Batch, bf)
			return runBatch(cmd.Context(), app, s, types.FilesystemPath(args[0]), opts, types.FilesystemPath(bf.csvPath))
		}),
	}

	cmd.Flags().IntVarP(&bf.repeats, "repeats", "n", 1, "number of timed passes over the input")
	cmd.Flags().BoolVar(&bf.warmup, "warmup", false, "run one untimed pass first")
	cmd.Flags().IntVarP(&bf.jobs, "jobs", "j", 1, "number of parallel workers")
	cmd.Flags().BoolVar(&bf.failFast, "fail-fast", true, "stop at the first malformed formula")
	cmd.Flags().BoolVar(&bf.skipBlank, "skip-blank", true, "ignore blank lines")
	cmd.Flags().StringVar(&bf.csvPath, "csv", "", "write a Formula,Hydrogen_Count report to this file")

	return cmd
}

// batchOptions merges the configuration with the flags set on the command line.
func batchOptions(cmd *cobra.Command, cfg config.BatchConfig, bf *batchFlagValues) batch.Options {
	opts := batch.Options{
		Repeats:          cfg.Repeats,
		Warmup:           cfg.Warmup,
		Jobs:             cfg.Jobs,
		FailFast:         cfg.FailFast,
		SkipBlank:        cfg.SkipBlank,
		MaxFormulaLength: cfg.MaxFormulaLength,
	}

	changed := cmd.Flags().Changed
	if changed("repeats") {
		opts.Repeats = bf.repeats
	}
	if changed("warmup") {
		opts.Warmup = bf.warmup
	}
	if changed("jobs") {
		opts.Jobs = bf.jobs
	}
	if changed("fail-fast") {
		opts.FailFast = bf.failFast
	}
	if changed("skip-blank") {
		opts.SkipBlank = bf.skipBlank
	}
	return opts
}

func runBatch(ctx context.Context, app *App, s *session, input types.FilesystemPath, opts batch.Options, csvPath types.FilesystemPath) error {
	opts.CollectRows = csvPath != ""

	var runnerOpts []batch.RunnerOption
	if app.Clock != nil {
		runnerOpts = append(runnerOpts, batch.WithClock(app.Clock))
	}
	runner, err := batch.NewRunner(opts, runnerOpts...)
	if err != nil {
		return err
	}

	buf, err := readInput(app.stdin, input)
	if err != nil {
		return err
	}

	stats, err := runner.Run(ctx, buf)
	if err != nil {
		var failure *batch.Failure
		if !errors.As(err, &failure) {
			return err
		}
		renderParseError(app.stderr, failure.Err, failure.Line, s)
		return &ExitError{Code: exitCodeFor(failure.Err), Err: fmt.Errorf("batch stopped at line %d", failure.Line)}
	}

	if s.format == config.OutputFormatText {
		if opts.Warmup {
			fmt.Fprintf(app.stdout, "Finished warmup in %.2fs\n", stats.Warmup.Seconds())
		}
		fmt.Fprintln(app.stdout, stats.Summary())
		for _, failure := range stats.Failures {
			renderParseError(app.stderr, failure.Err, failure.Line, s)
		}
	} else if err := writeDocument(app.stdout, s.format, newBatchDocument(stats)); err != nil {
		return fmt.Errorf("failed to write %s output: %w", s.format, err)
	}

	if csvPath != "" {
		if err := writeReport(stats.Rows, csvPath); err != nil {
			return err
		}
		if s.format == config.OutputFormatText {
			fmt.Fprintf(app.stdout, "%s Results saved to %s\n", SuccessStyle.Render("✓"), csvPath)
		}
	}

	if len(stats.Failures) > 0 {
		return &ExitError{
			Code: types.ExitParseFailure,
			Err:  fmt.Errorf("%d of %d formulas failed to parse", len(stats.Failures), stats.Lines),
		}
	}
	return nil
}

// readInput reads the whole input file, or standard input for '-'.
func readInput(stdin io.Reader, path types.FilesystemPath) ([]byte, error) {
	if path.IsStdin() {
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return buf, nil
	}

	buf, err := os.ReadFile(path.String())
	if err == nil {
		return buf, nil
	}

	ctx := issue.NewErrorContext().
		WithOperation("read formula file").
		WithResource(path.String())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		actionable := ctx.WithSuggestion("Verify the file path is correct").
			WithSuggestion("Pass '-' to read formulas from standard input").
			Wrap(err).
			BuildError()
		return nil, newServiceError(actionable, issue.FileNotFoundId, ErrorStyle.Render("✗ ")+actionable.Error()+"\n")
	case errors.Is(err, fs.ErrPermission):
		actionable := ctx.WithSuggestion("Check the file permissions").
			Wrap(err).
			BuildError()
		return nil, newServiceError(actionable, issue.PermissionDeniedId, ErrorStyle.Render("✗ ")+actionable.Error()+"\n")
	default:
		return nil, ctx.Wrap(err).BuildError()
	}
}

// writeReport writes the per-formula hydrogen CSV report.
func writeReport(rows []batch.Row, path types.FilesystemPath) (err error) {
	f, err := os.Create(path.String())
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("write CSV report").
			WithResource(path.String()).
			WithSuggestion("Check that the directory exists and is writable").
			Wrap(err).
			BuildError()
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close CSV report: %w", closeErr)
		}
	}()

	return batch.WriteCSV(f, rows)
}
