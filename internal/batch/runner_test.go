// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elsci/chemikaze/internal/testutil"
	"github.com/elsci/chemikaze/pkg/mf"
)

func newTestRunner(t *testing.T, mutate func(*Options), runnerOpts ...RunnerOption) *Runner {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	r, err := NewRunner(opts, runnerOpts...)
	if err != nil {
		t.Fatalf("NewRunner() returned error: %v", err)
	}
	return r
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v, want nil", err)
	}

	opts := Options{Repeats: 0, Jobs: -1, MaxFormulaLength: 0}
	err := opts.Validate()
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("Validate() = %v, want ErrInvalidOptions", err)
	}
	var optsErr *InvalidOptionsError
	if !errors.As(err, &optsErr) {
		t.Fatalf("expected *InvalidOptionsError, got %T", err)
	}
	if len(optsErr.FieldErrors) != 3 {
		t.Errorf("got %d field errors, want 3", len(optsErr.FieldErrors))
	}

	if _, err := NewRunner(opts); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("NewRunner() error = %v, want ErrInvalidOptions", err)
	}
}

func TestRun_TalliesHydrogens(t *testing.T) {
	t.Parallel()

	input := []byte("H2O\nCH4\r\nNH3.2CH3\n\n")

	tests := []struct {
		name          string
		repeats       int
		wantFormulas  uint64
		wantHydrogens uint64
	}{
		{"single pass", 1, 3, 15},
		{"three passes", 3, 9, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newTestRunner(t, func(o *Options) { o.Repeats = tt.repeats })

			stats, err := r.Run(context.Background(), input)
			if err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if stats.Lines != 3 {
				t.Errorf("Lines = %d, want 3", stats.Lines)
			}
			if stats.Passes != tt.repeats {
				t.Errorf("Passes = %d, want %d", stats.Passes, tt.repeats)
			}
			if stats.Formulas != tt.wantFormulas {
				t.Errorf("Formulas = %d, want %d", stats.Formulas, tt.wantFormulas)
			}
			if stats.Hydrogens != tt.wantHydrogens {
				t.Errorf("Hydrogens = %d, want %d", stats.Hydrogens, tt.wantHydrogens)
			}
			if want := int64(len(input) * tt.repeats); stats.Bytes != want {
				t.Errorf("Bytes = %d, want %d", stats.Bytes, want)
			}
			if len(stats.Failures) != 0 {
				t.Errorf("Failures = %v, want none", stats.Failures)
			}
		})
	}
}

func TestRun_JobsDoNotChangeTotals(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	var wantHydrogens uint64
	for i := range 5000 {
		n := i%7 + 1
		fmt.Fprintf(&sb, "C%dH%d\n", n, 2*n+2)
		wantHydrogens += uint64(2*n + 2)
	}
	input := []byte(sb.String())

	for _, jobs := range []int{1, 2, 3, 8, 64} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			t.Parallel()
			r := newTestRunner(t, func(o *Options) { o.Jobs = jobs })

			stats, err := r.Run(context.Background(), input)
			if err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if stats.Formulas != 5000 {
				t.Errorf("Formulas = %d, want 5000", stats.Formulas)
			}
			if stats.Hydrogens != wantHydrogens {
				t.Errorf("Hydrogens = %d, want %d", stats.Hydrogens, wantHydrogens)
			}
		})
	}
}

func TestRun_FailFast(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, nil)

	_, err := r.Run(context.Background(), []byte("H2O\nXx\nCH4\n"))
	if err == nil {
		t.Fatal("Run() returned no error for a malformed line")
	}

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if failure.Line != 2 {
		t.Errorf("Line = %d, want 2", failure.Line)
	}
	if !errors.Is(err, mf.ErrParse) || !errors.Is(err, mf.ErrUnknownSymbol) {
		t.Errorf("error should wrap ErrParse and ErrUnknownSymbol: %v", err)
	}
	if want := "line 2: Couldn't parse Xx. Unknown chemical symbol: Xx"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRun_CollectsFailures(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, func(o *Options) {
		o.FailFast = false
		o.SkipBlank = false
		o.Repeats = 2
		o.Jobs = 2
	})

	stats, err := r.Run(context.Background(), []byte("H2O\n(C\n\nCH4\n=C"))
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if stats.Formulas != 4 {
		t.Errorf("Formulas = %d, want 4", stats.Formulas)
	}
	if stats.Hydrogens != 12 {
		t.Errorf("Hydrogens = %d, want 12", stats.Hydrogens)
	}

	wantLines := []int{2, 3, 5}
	wantCauses := []error{mf.ErrMismatchedParentheses, mf.ErrEmptyFormula, mf.ErrUnexpectedSymbol}
	if len(stats.Failures) != len(wantLines) {
		t.Fatalf("got %d failures, want %d: %v", len(stats.Failures), len(wantLines), stats.Failures)
	}
	for i, failure := range stats.Failures {
		if failure.Line != wantLines[i] {
			t.Errorf("failure %d Line = %d, want %d", i, failure.Line, wantLines[i])
		}
		if !errors.Is(failure.Err, wantCauses[i]) {
			t.Errorf("failure %d = %v, want cause %v", i, failure.Err, wantCauses[i])
		}
	}
}

func TestRun_OutOfMemoryIsAlwaysFatal(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, func(o *Options) {
		o.FailFast = false
		o.MaxFormulaLength = 3
	})

	_, err := r.Run(context.Background(), []byte("H2O\nC6H12O6\n"))
	if !errors.Is(err, mf.ErrOutOfMemory) {
		t.Fatalf("Run() error = %v, want ErrOutOfMemory", err)
	}
	var failure *Failure
	if !errors.As(err, &failure) || failure.Line != 2 {
		t.Errorf("expected failure on line 2, got %v", err)
	}
}

func TestRun_FailFastReportsLowestLineAcrossJobs(t *testing.T) {
	t.Parallel()

	// Four shares of 1000 lines. The first share fails on its last line and
	// the later shares on their first, so they usually fail first in time.
	lines := make([]string, 4000)
	for i := range lines {
		lines[i] = "CH4"
	}
	lines[999] = "Xx"
	lines[1000] = "(C"
	lines[3000] = "=C"
	input := []byte(strings.Join(lines, "\n"))

	r := newTestRunner(t, func(o *Options) { o.Jobs = 4 })
	for range 20 {
		_, err := r.Run(context.Background(), input)
		var failure *Failure
		if !errors.As(err, &failure) {
			t.Fatalf("Run() error = %v, want *Failure", err)
		}
		if failure.Line != 1000 {
			t.Fatalf("Line = %d, want 1000", failure.Line)
		}
		if !errors.Is(err, mf.ErrUnknownSymbol) {
			t.Errorf("error = %v, want ErrUnknownSymbol", err)
		}
	}
}

func TestRun_OutOfMemoryReportsLowestLineAcrossJobs(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, func(o *Options) {
		o.FailFast = false
		o.Jobs = 3
		o.MaxFormulaLength = 4
	})

	// Shares: [H2O (C C6H12O6] [CH4 C2H5OH CH4] [C6H12O6 H2O CH4]
	input := []byte("H2O\n(C\nC6H12O6\nCH4\nC2H5OH\nCH4\nC6H12O6\nH2O\nCH4\n")
	for range 20 {
		_, err := r.Run(context.Background(), input)
		var failure *Failure
		if !errors.As(err, &failure) || !errors.Is(err, mf.ErrOutOfMemory) {
			t.Fatalf("Run() error = %v, want an out-of-memory *Failure", err)
		}
		if failure.Line != 3 {
			t.Fatalf("Line = %d, want 3", failure.Line)
		}
	}
}

func TestRun_Timing(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Time{})
	clock.SetStep(2 * time.Second)

	r := newTestRunner(t, func(o *Options) {
		o.Warmup = true
		o.Repeats = 1000
	}, WithClock(clock))

	stats, err := r.Run(context.Background(), []byte("C6H12O6\n"))
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if stats.Warmup != 2*time.Second {
		t.Errorf("Warmup = %v, want 2s", stats.Warmup)
	}
	if stats.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", stats.Elapsed)
	}
	if got := stats.FormulasPerSecond(); got != 500 {
		t.Errorf("FormulasPerSecond() = %v, want 500", got)
	}
	if got := stats.MegabytesPerSecond(); got != 0.004 {
		t.Errorf("MegabytesPerSecond() = %v, want 0.004", got)
	}

	want := "Parsed 12,000 Hydrogens out of 1,000 MFs in 2.00s (500 MF/s, 0.00 MB/s)"
	if got := stats.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRun_WarmupFailureStopsRun(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, func(o *Options) { o.Warmup = true })
	if _, err := r.Run(context.Background(), []byte("C)")); !mf.IsParse(err) {
		t.Errorf("Run() error = %v, want a parse error", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, nil)
	if _, err := r.Run(ctx, []byte("H2O\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestStats_ZeroElapsed(t *testing.T) {
	t.Parallel()

	stats := &Stats{Formulas: 10, Bytes: 100}
	if stats.FormulasPerSecond() != 0 || stats.MegabytesPerSecond() != 0 {
		t.Error("rates should be 0 when no time elapsed")
	}
	if want := "Parsed 0 Hydrogens out of 10 MFs in 0.00s (0 MF/s, 0.00 MB/s)"; stats.Summary() != want {
		t.Errorf("Summary() = %q, want %q", stats.Summary(), want)
	}
}
