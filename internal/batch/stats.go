// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats summarizes a batch run. Counters cover all timed passes; Failures
// lists the malformed lines of a single pass.
type Stats struct {
	// Lines is the number of formula lines in the input.
	Lines int
	// Passes is the number of timed passes.
	Passes int
	// Formulas is the number of formulas parsed successfully.
	Formulas uint64
	// Hydrogens is the total hydrogen count of the parsed formulas.
	Hydrogens uint64
	// Bytes is the number of input bytes processed.
	Bytes int64
	// Elapsed is the duration of the timed passes.
	Elapsed time.Duration
	// Warmup is the duration of the warmup pass, or 0 without one.
	Warmup time.Duration
	// Failures are the lines that failed to parse.
	Failures []Failure
	// Rows are the formulas of the first timed pass in input order, when
	// Options.CollectRows is set.
	Rows []Row
}

// FormulasPerSecond returns the parse throughput, or 0 when no time elapsed.
func (s *Stats) FormulasPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Formulas) / s.Elapsed.Seconds()
}

// MegabytesPerSecond returns the input throughput in MB/s, or 0 when no time elapsed.
func (s *Stats) MegabytesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Elapsed.Seconds() / 1e6
}

// Summary renders the one-line report with thousands separators:
//
//	Parsed 1,234 Hydrogens out of 56 MFs in 0.02s (2,800 MF/s, 0.10 MB/s)
func (s *Stats) Summary() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Parsed %d Hydrogens out of %d MFs in %.2fs (%.0f MF/s, %.2f MB/s)",
		s.Hydrogens, s.Formulas, s.Elapsed.Seconds(), s.FormulasPerSecond(), s.MegabytesPerSecond())
}
