// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elsci/chemikaze/internal/batch"
	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/pkg/atoms"
	"github.com/elsci/chemikaze/pkg/element"
	"github.com/elsci/chemikaze/pkg/mf"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	// parseDocument is the structured output of the parse command.
	parseDocument struct {
		Results []formulaDocument `json:"results" yaml:"results" toml:"results"`
	}

	formulaDocument struct {
		Formula   string         `json:"formula" yaml:"formula" toml:"formula"`
		Canonical string         `json:"canonical" yaml:"canonical" toml:"canonical"`
		Hydrogens uint32         `json:"hydrogens" yaml:"hydrogens" toml:"hydrogens"`
		Atoms     []atoms.Entry  `json:"atoms,omitempty" yaml:"atoms,omitempty" toml:"atoms,omitempty"`
		Error     *errorDocument `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	}

	errorDocument struct {
		Kind    string `json:"kind" yaml:"kind" toml:"kind"`
		Message string `json:"message" yaml:"message" toml:"message"`
		Pos     int    `json:"pos" yaml:"pos" toml:"pos"`
	}

	// batchDocument is the structured output of the batch command.
	batchDocument struct {
		Lines              int               `json:"lines" yaml:"lines" toml:"lines"`
		Passes             int               `json:"passes" yaml:"passes" toml:"passes"`
		Formulas           uint64            `json:"formulas" yaml:"formulas" toml:"formulas"`
		Hydrogens          uint64            `json:"hydrogens" yaml:"hydrogens" toml:"hydrogens"`
		Bytes              int64             `json:"bytes" yaml:"bytes" toml:"bytes"`
		ElapsedSeconds     float64           `json:"elapsed_seconds" yaml:"elapsed_seconds" toml:"elapsed_seconds"`
		WarmupSeconds      float64           `json:"warmup_seconds" yaml:"warmup_seconds" toml:"warmup_seconds"`
		FormulasPerSecond  float64           `json:"formulas_per_second" yaml:"formulas_per_second" toml:"formulas_per_second"`
		MegabytesPerSecond float64           `json:"megabytes_per_second" yaml:"megabytes_per_second" toml:"megabytes_per_second"`
		Failures           []failureDocument `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
	}

	failureDocument struct {
		Line    int    `json:"line" yaml:"line" toml:"line"`
		Formula string `json:"formula" yaml:"formula" toml:"formula"`
		Kind    string `json:"kind" yaml:"kind" toml:"kind"`
		Message string `json:"message" yaml:"message" toml:"message"`
		Pos     int    `json:"pos" yaml:"pos" toml:"pos"`
	}

	// elementsDocument is the structured output of the elements command.
	elementsDocument struct {
		Elements []elementDocument `json:"elements" yaml:"elements" toml:"elements"`
	}

	elementDocument struct {
		Id     int    `json:"id" yaml:"id" toml:"id"`
		Symbol string `json:"symbol" yaml:"symbol" toml:"symbol"`
		Bucket int    `json:"bucket" yaml:"bucket" toml:"bucket"`
	}
)

// writeDocument encodes doc in one of the structured formats.
func writeDocument(w io.Writer, format config.OutputFormat, doc any) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputFormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: %q is not a structured format", config.ErrInvalidOutputFormat, format)
	}
}

func newFormulaDocument(formula string, counts *atoms.Counts, err error) formulaDocument {
	doc := formulaDocument{Formula: formula}
	if err != nil {
		doc.Error = newErrorDocument(err)
		return doc
	}
	doc.Canonical = counts.String()
	doc.Hydrogens = counts.Get(element.Hydrogen)
	doc.Atoms = counts.Entries()
	return doc
}

func newErrorDocument(err error) *errorDocument {
	doc := &errorDocument{Kind: "Error", Message: err.Error(), Pos: -1}
	var mfErr *mf.Error
	if errors.As(err, &mfErr) {
		doc.Kind = mfErr.Kind.String()
		doc.Pos = mfErr.Pos
	}
	return doc
}

func newBatchDocument(stats *batch.Stats) batchDocument {
	doc := batchDocument{
		Lines:              stats.Lines,
		Passes:             stats.Passes,
		Formulas:           stats.Formulas,
		Hydrogens:          stats.Hydrogens,
		Bytes:              stats.Bytes,
		ElapsedSeconds:     stats.Elapsed.Seconds(),
		WarmupSeconds:      stats.Warmup.Seconds(),
		FormulasPerSecond:  stats.FormulasPerSecond(),
		MegabytesPerSecond: stats.MegabytesPerSecond(),
	}
	for _, f := range stats.Failures {
		doc.Failures = append(doc.Failures, failureDocument{
			Line:    f.Line,
			Formula: f.Err.Formula,
			Kind:    f.Err.Kind.String(),
			Message: f.Err.Error(),
			Pos:     f.Err.Pos,
		})
	}
	return doc
}

func newElementsDocument() elementsDocument {
	all := element.All()
	doc := elementsDocument{Elements: make([]elementDocument, 0, len(all))}
	for _, e := range all {
		doc.Elements = append(doc.Elements, elementDocument{Id: int(e), Symbol: e.Symbol(), Bucket: e.Bucket()})
	}
	return doc
}
