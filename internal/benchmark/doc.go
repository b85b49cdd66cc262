// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of chemikaze:
//   - formula parsing (string, byte slice and chunk entry points)
//   - element symbol lookup and canonical serialization
//   - batch runs over a formula file with one or several workers
//   - CUE configuration loading
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
