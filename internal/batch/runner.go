// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/elsci/chemikaze/pkg/element"
	"github.com/elsci/chemikaze/pkg/mf"

	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many lines a worker parses between context checks.
const cancelCheckInterval = 1024

type (
	// Clock abstracts time so tests can measure passes deterministically.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	// RunnerOption configures a Runner.
	RunnerOption func(*Runner)

	// Runner parses every line of an input buffer according to its Options.
	// A Runner is safe for concurrent use.
	Runner struct {
		opts   Options
		parser *mf.Parser
		clock  Clock
	}

	// Failure is a formula that could not be parsed.
	Failure struct {
		// Line is the 1-based line number of the formula.
		Line int
		// Err is the parser error.
		Err *mf.Error
	}

	passResult struct {
		parsed    uint64
		hydrogens uint64
		failures  []Failure
		rows      []Row
	}

	systemClock struct{}
)

// WithClock replaces the wall clock used to time passes.
func WithClock(c Clock) RunnerOption {
	return func(r *Runner) {
		r.clock = c
	}
}

// NewRunner creates a Runner after validating opts.
func NewRunner(opts Options, runnerOpts ...RunnerOption) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		opts:   opts,
		parser: mf.NewParser(mf.WithMaxLength(opts.MaxFormulaLength)),
		clock:  systemClock{},
	}
	for _, opt := range runnerOpts {
		opt(r)
	}
	return r, nil
}

// Options returns the options the Runner was created with.
func (r *Runner) Options() Options {
	return r.opts
}

// Run parses buf once per repeat, after an optional warmup pass. Only the
// repeats are timed. With FailFast the first failure is returned as a
// *Failure error; out-of-memory failures are always returned that way.
// Otherwise the failures of one pass are listed in Stats.Failures, and with
// CollectRows its parsed formulas in Stats.Rows.
func (r *Runner) Run(ctx context.Context, buf []byte) (*Stats, error) {
	lines := SplitLines(buf, r.opts.SkipBlank)
	stats := &Stats{Lines: len(lines)}

	if r.opts.Warmup {
		start := r.clock.Now()
		if _, err := r.pass(ctx, lines, false); err != nil {
			return nil, err
		}
		stats.Warmup = r.clock.Since(start)
		slog.Debug("warmup pass finished", "lines", len(lines), "elapsed", stats.Warmup)
	}

	start := r.clock.Now()
	for i := range r.opts.Repeats {
		res, err := r.pass(ctx, lines, i == 0 && r.opts.CollectRows)
		if err != nil {
			return nil, err
		}
		stats.Formulas += res.parsed
		stats.Hydrogens += res.hydrogens
		stats.Bytes += int64(len(buf))
		stats.Passes++
		if i == 0 {
			stats.Failures = res.failures
			stats.Rows = res.rows
		}
	}
	stats.Elapsed = r.clock.Since(start)

	slog.Debug("batch finished",
		"passes", stats.Passes,
		"jobs", r.opts.Jobs,
		"formulas", stats.Formulas,
		"failures", len(stats.Failures),
		"elapsed", stats.Elapsed)

	return stats, nil
}

// pass parses every line once, spreading the lines across the workers, and
// keeps a Row per parsed line when collect is set.
// Shares hold consecutive lines, so when several shares hit a fatal failure
// the one from the lowest-numbered share is returned. A share stops early
// only once a share before it has failed.
func (r *Runner) pass(ctx context.Context, lines []Line, collect bool) (passResult, error) {
	shares := partition(lines, r.opts.Jobs)
	results := make([]passResult, len(shares))
	fatal := make([]*Failure, len(shares))

	var firstFatal atomic.Int64
	firstFatal.Store(int64(len(shares)))

	g, gctx := errgroup.WithContext(ctx)
	for i, share := range shares {
		g.Go(func() error {
			earlierFailed := func() bool { return firstFatal.Load() < int64(i) }
			res, failure, err := r.parseShare(gctx, share, collect, earlierFailed)
			results[i] = res
			if failure != nil {
				fatal[i] = failure
				for {
					cur := firstFatal.Load()
					if int64(i) >= cur || firstFatal.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return passResult{}, err
	}
	for _, failure := range fatal {
		if failure != nil {
			return passResult{}, failure
		}
	}

	var total passResult
	for _, res := range results {
		total.parsed += res.parsed
		total.hydrogens += res.hydrogens
		total.failures = append(total.failures, res.failures...)
		total.rows = append(total.rows, res.rows...)
	}
	return total, nil
}

// parseShare parses lines in order. It returns the first fatal failure of the
// share, or nothing once earlierFailed reports that the result no longer
// matters. The error is reserved for cancellation.
func (r *Runner) parseShare(ctx context.Context, lines []Line, collect bool, earlierFailed func() bool) (passResult, *Failure, error) {
	var res passResult
	if collect {
		res.rows = make([]Row, 0, len(lines))
	}
	for i, line := range lines {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, nil, err
			}
			if earlierFailed() {
				return res, nil, nil
			}
		}

		counts, err := r.parser.ParseChunk(line.Text)
		if err != nil {
			failure := newFailure(line.Number, err)
			if r.opts.FailFast || failure.Err.Kind != mf.KindParse {
				return res, &failure, nil
			}
			res.failures = append(res.failures, failure)
			continue
		}

		hydrogens := counts.Get(element.Hydrogen)
		res.parsed++
		res.hydrogens += uint64(hydrogens)
		if collect {
			res.rows = append(res.rows, Row{Formula: string(line.Text), Hydrogens: hydrogens})
		}
	}
	return res, nil, nil
}

// newFailure records a parser error for a line. ParseChunk only returns
// *mf.Error, anything else is wrapped as a Parse error.
func newFailure(line int, err error) Failure {
	var mfErr *mf.Error
	if !errors.As(err, &mfErr) {
		mfErr = &mf.Error{Kind: mf.KindParse, Reason: err.Error(), Pos: -1}
	}
	return Failure{Line: line, Err: mfErr}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("line %d: %v", f.Line, f.Err)
}

// Unwrap returns the parser error.
func (f *Failure) Unwrap() error {
	return f.Err
}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }
