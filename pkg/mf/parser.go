// SPDX-License-Identifier: MPL-2.0

package mf

import (
	"strconv"
	"sync"

	"github.com/elsci/chemikaze/pkg/atoms"
	"github.com/elsci/chemikaze/pkg/element"
)

type (
	// Parser turns molecular formulas into atom counts. The zero value is not
	// usable; create one with NewParser. A Parser holds no per-call state and is
	// safe for concurrent use.
	Parser struct {
		opts    parserOptions
		scratch sync.Pool
	}

	// scratch holds the per-offset arrays filled by the tokenizer and the
	// group scaler.
	scratch struct {
		elements []element.Element
		coeffs   []uint32
	}
)

var defaultParser = NewParser()

// NewParser creates a Parser with the given options.
func NewParser(opts ...Option) *Parser {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Parser{opts: options}
}

// MaxLength returns the longest formula the parser accepts.
func (p *Parser) MaxLength() int {
	return p.opts.maxLength
}

// Parse parses a formula after trimming ASCII spaces at both ends.
func (p *Parser) Parse(formula string) (*atoms.Counts, error) {
	return p.ParseBytes([]byte(formula))
}

// ParseBytes parses an ASCII formula after trimming spaces at both ends.
// A nil slice is reported as KindNullInput; an empty or blank one as a
// KindParse error with ReasonEmptyFormula.
func (p *Parser) ParseBytes(formula []byte) (*atoms.Counts, error) {
	if formula == nil {
		return nil, nullInputError()
	}
	trimmed := trimSpaces(formula)
	if len(trimmed) == 0 {
		return nil, emptyFormulaError()
	}
	return p.ParseChunk(trimmed)
}

// ParseChunk parses exactly the bytes of chunk, without trimming. chunk is
// typically a sub-slice of a larger buffer, such as one line of a file; it is
// neither modified nor retained.
func (p *Parser) ParseChunk(chunk []byte) (*atoms.Counts, error) {
	if len(chunk) == 0 {
		return nil, emptyFormulaError()
	}
	if len(chunk) > p.opts.maxLength {
		return nil, outOfMemoryError(chunk, p.opts.maxLength)
	}

	s := p.acquire(len(chunk))
	defer p.release(s)

	if err := readSymbolsAndCoeffs(chunk, s.elements, s.coeffs); err != nil {
		return nil, err
	}
	if err := applyGroupCoeffs(chunk, s.coeffs); err != nil {
		return nil, err
	}
	return combineIntoAtomCounts(chunk, s.elements, s.coeffs)
}

// acquire returns zeroed scratch arrays of length n.
func (p *Parser) acquire(n int) *scratch {
	s, _ := p.scratch.Get().(*scratch)
	if s == nil || cap(s.coeffs) < n {
		return &scratch{
			elements: make([]element.Element, n),
			coeffs:   make([]uint32, n),
		}
	}
	s.elements = s.elements[:n]
	s.coeffs = s.coeffs[:n]
	clear(s.elements)
	clear(s.coeffs)
	return s
}

func (p *Parser) release(s *scratch) {
	p.scratch.Put(s)
}

// Parse parses a formula with the default Parser.
func Parse(formula string) (*atoms.Counts, error) {
	return defaultParser.Parse(formula)
}

// ParseBytes parses an ASCII formula with the default Parser.
func ParseBytes(formula []byte) (*atoms.Counts, error) {
	return defaultParser.ParseBytes(formula)
}

// ParseChunk parses exactly the bytes of chunk with the default Parser.
func ParseChunk(chunk []byte) (*atoms.Counts, error) {
	return defaultParser.ParseChunk(chunk)
}

// MustParse is like Parse but panics if the formula cannot be parsed. It
// simplifies initialization of variables holding known formulas.
func MustParse(formula string) *atoms.Counts {
	counts, err := Parse(formula)
	if err != nil {
		panic(`mf: Parse(` + strconv.Quote(formula) + `): ` + err.Error())
	}
	return counts
}
