// SPDX-License-Identifier: MPL-2.0

// Package element is the closed catalogue of chemical elements understood by
// the formula parser.
//
// Each element is a small integer id. The id is NOT the atomic number: the
// catalogue is ordered roughly by popularity in organic chemistry (H, C, O, N,
// ...), and that order is also the canonical order in which atom counts are
// serialized back into a formula string.
//
// Symbol lookup is constant-time: a 1-2 byte symbol is hashed with
// (b0*277) xor b1 into a 512-bucket table in which the catalogue has no
// collisions. The bucket's candidate is confirmed against the stored symbol, so
// unknown symbols that land in an occupied bucket still resolve to Invalid.
//
// The table is built once during package initialization and never mutated, so
// it is safe for concurrent use without synchronization.
package element
