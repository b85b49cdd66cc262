// SPDX-License-Identifier: MPL-2.0

package mf

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/elsci/chemikaze/pkg/element"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		formula  string
		expected string
	}{
		{"canonical form is stable", "H2O", "H2O"},
		{"repeated symbols are summed", "HOH", "H2O"},
		{"catalogue order governs output", "C67H132N8O3", "H132C67O3N8"},
		{"complicated example", "[(2H2O.NaCl)3S.N]2-", "H12O6NSCl3Na3"},
		{"complicated example with spaces", " [(2H2O.NaCl)3S.N]2- ", "H12O6NSCl3Na3"},
		{"trims input", "  CH4CH4 ", "H8C2"},
		{"trims input around groups and charge", "  (CH4).[CH]-  ", "H5C2"},
		{"group without coefficient", "(CH4CH4)", "H8C2"},
		{"trailing group coefficient", "(CH4CH4)2", "H16C4"},
		{"trailing coefficient skips siblings", "C(CH4CH4)2", "H16C5"},
		{"nested groups", "(C(OH)2)2P", "H4C2O4P"},
		{"leading coefficient inside a group", "(C(2S)2O)2P", "C2O2PS8"},
		{"sibling groups", "(C(OH))2(S(S))2P", "H2C2O2PS4"},
		{"square brackets multiply", "[CH4CH4]2", "H16C4"},
		{"leading coefficient", "2H2O", "H4O2"},
		{"zero coefficient eliminates everything", "0H2O", ""},
		{"zero coefficient on a group", "H2O(NaCl)0", "H2O"},
		{"charge is ignored", "[CH4CH4]+", "H8C2"},
		{"charge with number is ignored", "[CH4CH4]2+", "H8C2"},
		{"dot components are summed", "NH3.CH3", "H6CN"},
		{"leading coefficient after dot", "NH3.2CH3", "H9C2N"},
		{"leading coefficient before dot", "2CH3.NH3", "H9C2N"},
		{"hydrate", "CuSO4.5H2O", "H10O9SCu"},
		{"leading and trailing coefficient", "2(H2O)3", "H12O6"},
		{"dot inside group", "(H2O.NaCl)2", "H4O2Cl2Na2"},
		{"multi-digit coefficients", "C12H22O11", "H22C12O11"},
		{"two-letter symbols", "NaCl", "ClNa"},
		{"largest count", "H4294967295", "H4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			counts, err := Parse(tt.formula)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.formula, err)
			}
			if got := counts.String(); got != tt.expected {
				t.Errorf("Parse(%q) = %q, want %q", tt.formula, got, tt.expected)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formula string
		message string
		cause   error
		pos     int
	}{
		{"empty", "", "Empty Molecular Formula", ErrEmptyFormula, -1},
		{"one space", " ", "Empty Molecular Formula", ErrEmptyFormula, -1},
		{"two spaces", "  ", "Empty Molecular Formula", ErrEmptyFormula, -1},
		{"unclosed", "(C", "Couldn't parse (C. the opening and closing parentheses don't match.", ErrMismatchedParentheses, -1},
		{"closed before opened", ")C", "Couldn't parse )C. the opening and closing parentheses don't match.", ErrMismatchedParentheses, 0},
		{"closed without opener", "C)", "Couldn't parse C). the opening and closing parentheses don't match.", ErrMismatchedParentheses, 1},
		{"opened at the end", "C(", "Couldn't parse C(. the opening and closing parentheses don't match.", ErrMismatchedParentheses, -1},
		{"closed twice", "(C))", "Couldn't parse (C)). the opening and closing parentheses don't match.", ErrMismatchedParentheses, 3},
		{"depth goes negative in the middle", "C)(C", "Couldn't parse C)(C. the opening and closing parentheses don't match.", ErrMismatchedParentheses, 1},
		{"nested unclosed", "(C(OH)2(S(S))2P", "Couldn't parse (C(OH)2(S(S))2P. the opening and closing parentheses don't match.", ErrMismatchedParentheses, -1},
		{"unknown symbol", "A", "Couldn't parse A. Unknown chemical symbol: A", ErrUnknownSymbol, 0},
		{"unknown two-letter symbol", "H2Xx", "Couldn't parse H2Xx. Unknown chemical symbol: Xx", ErrUnknownSymbol, 2},
		{"lowercase without uppercase", "o", "Couldn't parse o. Unexpected symbol: o", ErrUnexpectedSymbol, 0},
		{"special symbol alone", "=", "Couldn't parse =. Unexpected symbol: =", ErrUnexpectedSymbol, 0},
		{"special symbol at the end", "O=", "Couldn't parse O=. Unexpected symbol: =", ErrUnexpectedSymbol, 1},
		{"special symbol at the start", "=C", "Couldn't parse =C. Unexpected symbol: =", ErrUnexpectedSymbol, 0},
		{"inner space", "H2 O", "Couldn't parse H2 O. Unexpected symbol: 0x20", ErrUnexpectedSymbol, 2},
		{"coefficient overflow", "H4294967296", "Couldn't parse H4294967296. Atom count overflows 32 bits", ErrOverflow, 1},
		{"group overflow", "(H65536)65536", "Couldn't parse (H65536)65536. Atom count overflows 32 bits", ErrOverflow, 8},
		{"sum overflow", "H4294967295H", "Couldn't parse H4294967295H. Atom count overflows 32 bits", ErrOverflow, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			counts, err := Parse(tt.formula)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.formula, counts.String())
			}
			if counts != nil {
				t.Errorf("Parse(%q) returned counts together with an error", tt.formula)
			}

			var mfErr *Error
			if !errors.As(err, &mfErr) {
				t.Fatalf("Parse(%q) error type = %T, want *Error", tt.formula, err)
			}
			if mfErr.Kind != KindParse {
				t.Errorf("Kind = %v, want %v", mfErr.Kind, KindParse)
			}
			if got := err.Error(); got != tt.message {
				t.Errorf("Error() = %q, want %q", got, tt.message)
			}
			if mfErr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", mfErr.Pos, tt.pos)
			}
			if !errors.Is(err, ErrParse) {
				t.Error("errors.Is(err, ErrParse) = false, want true")
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is(err, %v) = false, want true", tt.cause)
			}
			if !IsParse(err) {
				t.Error("IsParse(err) = false, want true")
			}
		})
	}
}

func TestParse_ReportsTrimmedFormula(t *testing.T) {
	t.Parallel()

	_, err := Parse("  (C  ")
	var mfErr *Error
	if !errors.As(err, &mfErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if mfErr.Formula != "(C" {
		t.Errorf("Formula = %q, want %q", mfErr.Formula, "(C")
	}
}

func TestParseBytes_NilIsNullInput(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes(nil)
	if !errors.Is(err, ErrNullInput) {
		t.Fatalf("ParseBytes(nil) error = %v, want ErrNullInput", err)
	}
	if IsParse(err) {
		t.Error("NullInput must not be reported as a Parse error")
	}

	var mfErr *Error
	if !errors.As(err, &mfErr) || mfErr.Kind != KindNullInput {
		t.Errorf("expected KindNullInput, got %v", err)
	}

	if _, err := ParseBytes([]byte{}); !errors.Is(err, ErrEmptyFormula) {
		t.Errorf("ParseBytes([]byte{}) error = %v, want ErrEmptyFormula", err)
	}
}

func TestParser_MaxLength(t *testing.T) {
	t.Parallel()

	p := NewParser(WithMaxLength(3))
	if p.MaxLength() != 3 {
		t.Fatalf("MaxLength() = %d, want 3", p.MaxLength())
	}

	if _, err := p.Parse("H2O"); err != nil {
		t.Fatalf("Parse(H2O) returned error: %v", err)
	}

	_, err := p.Parse("H2O2")
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Parse(H2O2) error = %v, want ErrOutOfMemory", err)
	}
	var mfErr *Error
	if !errors.As(err, &mfErr) || mfErr.Kind != KindOutOfMemory {
		t.Errorf("expected KindOutOfMemory, got %v", err)
	}
	if got, want := err.Error(), "Couldn't allocate scratch memory for 4 bytes (limit 3)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := NewParser(WithMaxLength(0)).MaxLength(); got != DefaultMaxLength {
		t.Errorf("WithMaxLength(0) should keep the default, got %d", got)
	}
}

func TestParseChunk_SubSlicesOfABuffer(t *testing.T) {
	t.Parallel()

	buf := []byte("H2O\n(CH4CH4)2\nNH3.2CH3\n")
	original := bytes.Clone(buf)

	want := []string{"H2O", "H16C4", "H9C2N"}
	lines := bytes.Split(bytes.TrimSuffix(buf, []byte("\n")), []byte("\n"))
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}

	for i, line := range lines {
		counts, err := ParseChunk(line)
		if err != nil {
			t.Fatalf("ParseChunk(%q) returned error: %v", line, err)
		}
		if got := counts.String(); got != want[i] {
			t.Errorf("ParseChunk(%q) = %q, want %q", line, got, want[i])
		}
	}

	if !bytes.Equal(buf, original) {
		t.Errorf("ParseChunk modified its input: %q", buf)
	}
}

func TestParseChunk_DoesNotTrim(t *testing.T) {
	t.Parallel()

	_, err := ParseChunk([]byte(" H2O"))
	if !errors.Is(err, ErrUnexpectedSymbol) {
		t.Errorf("ParseChunk(\" H2O\") error = %v, want ErrUnexpectedSymbol", err)
	}
}

func TestParse_ScratchIsClearedBetweenCalls(t *testing.T) {
	t.Parallel()

	p := NewParser()
	for range 3 {
		if got := mustParseWith(t, p, "(C(OH)2)2P"); got != "H4C2O4P" {
			t.Fatalf("got %q, want H4C2O4P", got)
		}
		if got := mustParseWith(t, p, "P"); got != "P" {
			t.Fatalf("got %q, want P", got)
		}
		if _, err := p.Parse("(CH4"); err == nil {
			t.Fatal("expected error for (CH4")
		}
	}
}

func TestParse_ResultInvariants(t *testing.T) {
	t.Parallel()

	formulas := []string{"H2O", "[(2H2O.NaCl)3S.N]2-", "0H2O", "CuSO4.5H2O", "C67H132N8O3"}
	for _, formula := range formulas {
		counts, err := Parse(formula)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", formula, err)
		}
		counts.Each(func(e element.Element, n uint32) {
			if !e.IsValid() {
				t.Errorf("Parse(%q) produced invalid element %d", formula, e)
			}
			if n < 1 {
				t.Errorf("Parse(%q) stored count %d for %s", formula, n, e)
			}
		})
	}
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"[(2H2O.NaCl)3S.N]2-": "H12O6NSCl3Na3",
		"(C(OH))2(S(S))2P":    "H2C2O2PS4",
		"NH3.2CH3":            "H9C2N",
		"C67H132N8O3":         "H132C67O3N8",
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				for formula, want := range cases {
					counts, err := Parse(formula)
					if err != nil {
						errs <- err.Error()
						return
					}
					if got := counts.String(); got != want {
						errs <- formula + " = " + got + ", want " + want
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	if got := MustParse("HOH").String(); got != "H2O" {
		t.Errorf("MustParse(HOH) = %q, want H2O", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse(A) did not panic")
		}
	}()
	MustParse("A")
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		KindParse:       "Parse",
		KindOutOfMemory: "OutOfMemory",
		KindNullInput:   "NullInput",
		Kind(42):        "Kind(42)",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func mustParseWith(t *testing.T, p *Parser, formula string) string {
	t.Helper()
	counts, err := p.Parse(formula)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", formula, err)
	}
	return counts.String()
}
