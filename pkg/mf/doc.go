// SPDX-License-Identifier: MPL-2.0

// Package mf parses molecular formulas such as "H2O", "CuSO4.5H2O" or
// "[(2H2O.NaCl)3S.N]2-" into atom counts.
//
// Parsing is two linear scans plus one reduction over scratch arrays that are
// indexed by byte offset within the formula, not by token:
//
//  1. The tokenizer stores, at the offset where each element symbol starts,
//     the element id and the coefficient written right after the symbol.
//  2. The group scaler multiplies those coefficients by group multipliers.
//     A leading coefficient ("2H2O", "NH3.2CH3") scales forward up to the next
//     dot on the same nesting level or the end of the enclosing group. A
//     trailing coefficient ("(OH)2") scales backward to the matching opener.
//     Only a nesting-depth counter is kept; no parse tree is built.
//  3. The aggregator folds the scaled coefficients into an atoms.Counts.
//
// Example for 2H2O.(NaCl)5:
//
//	formula:  2 H 2 O . ( N a C l ) 5
//	elements: 0 0 0 2 0 0 9 0 8 0 0 0
//	coeffs:   0 2 0 1 0 0 1 0 1 0 0 0   after tokenizing
//	coeffs:   0 4 0 2 0 0 5 0 5 0 0 0   after group scaling
//
// Dot-separated components are summed. Charge suffixes ("2+", "-") are
// ignored. The package never logs; all failures are returned as *Error.
// Every function is safe for concurrent use.
package mf
