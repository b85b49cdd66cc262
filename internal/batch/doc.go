// SPDX-License-Identifier: MPL-2.0

// Package batch parses files of molecular formulas, one formula per line.
//
// A Runner splits the input buffer into lines, hands each line's byte range
// to the parser without copying it, and tallies how many formulas parsed and
// how many hydrogen atoms they contain. Passes can be repeated and preceded by
// an untimed warmup so the resulting Stats double as a throughput benchmark.
// Lines can be spread across several workers; every parse stays independent.
package batch
