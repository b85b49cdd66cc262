// SPDX-License-Identifier: MPL-2.0

// Package atoms holds the result of parsing a molecular formula: how many atoms
// of each element it contains.
package atoms

import (
	"strconv"
	"strings"

	"github.com/elsci/chemikaze/pkg/element"
)

type (
	// Counts is a fixed-size table of atom totals indexed by element id.
	// A zero entry means the element is absent. Two Counts are equal iff every
	// entry matches, so the == operator can be used directly.
	Counts [element.Count]uint32

	// Entry is one present element and its atom count.
	Entry struct {
		Symbol string `json:"symbol" yaml:"symbol" toml:"symbol"`
		Count  uint32 `json:"count" yaml:"count" toml:"count"`
	}
)

// Get returns the number of atoms of e, or 0 for ids outside the catalogue.
func (c *Counts) Get(e element.Element) uint32 {
	if !e.IsValid() {
		return 0
	}
	return c[e]
}

// Add increases the count of e by n. Ids outside the catalogue are ignored.
func (c *Counts) Add(e element.Element, n uint32) {
	if !e.IsValid() {
		return
	}
	c[e] += n
}

// Equal reports whether both tables hold the same counts.
func (c *Counts) Equal(other *Counts) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Len returns the number of distinct elements present.
func (c *Counts) Len() int {
	n := 0
	for _, v := range c {
		if v != 0 {
			n++
		}
	}
	return n
}

// Total returns the number of atoms across all elements.
func (c *Counts) Total() uint64 {
	var total uint64
	for _, v := range c {
		total += uint64(v)
	}
	return total
}

// IsEmpty reports whether no element is present.
func (c *Counts) IsEmpty() bool {
	return c.Len() == 0
}

// Each calls fn for every present element in canonical order.
func (c *Counts) Each(fn func(e element.Element, n uint32)) {
	for i, v := range c {
		if v != 0 {
			fn(element.Element(i), v)
		}
	}
}

// Entries returns the present elements in canonical order.
func (c *Counts) Entries() []Entry {
	entries := make([]Entry, 0, c.Len())
	c.Each(func(e element.Element, n uint32) {
		entries = append(entries, Entry{Symbol: e.Symbol(), Count: n})
	})
	return entries
}

// String serializes the counts into canonical formula form: symbols in
// catalogue order, each followed by its count when the count is above 1.
// Empty counts serialize to "".
func (c *Counts) String() string {
	var sb strings.Builder
	var num [10]byte
	c.Each(func(e element.Element, n uint32) {
		sb.WriteString(e.Symbol())
		if n > 1 {
			sb.Write(strconv.AppendUint(num[:0], uint64(n), 10))
		}
	})
	return sb.String()
}
