// SPDX-License-Identifier: MPL-2.0

package element

import (
	"fmt"
	"strconv"
)

const (
	// Count is the number of elements in the catalogue.
	Count = len(symbols)

	// Invalid is the sentinel returned for symbols that are not in the catalogue.
	// It is never a valid index into a table sized by Count.
	Invalid Element = 255

	// BucketCount is the size of the symbol hash table.
	BucketCount = 512

	bucketMask = BucketCount - 1

	// hashMultiplier is one of the few multipliers that gives the catalogue
	// zero collisions in a 512-bucket table.
	hashMultiplier = 277

	// emptyBucket marks an unoccupied slot in the hash table.
	emptyBucket = Invalid
)

// Element identifies one entry of the catalogue.
type Element uint8

// symbols is the catalogue in canonical order. Do not reorder: ids and the
// serialization order of atom counts are derived from it.
var symbols = [...]string{
	"H", "C", "O", "N", "P", "F", "S", "Br", "Cl", "Na", "Li", "Fe", "K", "Ca", "Mg", "Ni", "Al",
	"Pd", "Sc", "V", "Cu", "Cr", "Mn", "Co", "Zn", "Ga", "Ge", "As", "Se", "Ti", "Si", "Be", "B",
	"Kr", "Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Ru", "Rh", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I",
	"Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "Tc", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Th", "Pa",
	"U", "He", "Ne", "Ar",
}

// Frequently used elements.
const (
	Hydrogen Element = 0
	Carbon   Element = 1
	Oxygen   Element = 2
	Nitrogen Element = 3
)

var buckets = buildBuckets()

// Hash returns the bucket of a 1-2 byte symbol. For one-letter symbols b1 is 0.
func Hash(b0, b1 byte) int {
	return ((int(b0) * hashMultiplier) ^ int(b1)) & bucketMask
}

// Lookup resolves a symbol given as its first byte and optional second byte
// (0 for one-letter symbols). It returns Invalid if the symbol is unknown.
func Lookup(b0, b1 byte) Element {
	e := buckets[Hash(b0, b1)]
	if e == emptyBucket {
		return Invalid
	}
	s := symbols[e]
	if s[0] != b0 {
		return Invalid
	}
	if len(s) == 1 {
		if b1 != 0 {
			return Invalid
		}
		return e
	}
	if s[1] != b1 {
		return Invalid
	}
	return e
}

// LookupSymbol resolves a symbol string such as "Na". It returns Invalid for
// anything that is not exactly a catalogue symbol.
func LookupSymbol(symbol string) Element {
	switch len(symbol) {
	case 1:
		return Lookup(symbol[0], 0)
	case 2:
		if symbol[1] == 0 {
			return Invalid
		}
		return Lookup(symbol[0], symbol[1])
	default:
		return Invalid
	}
}

// All returns every element in canonical order.
func All() []Element {
	all := make([]Element, Count)
	for i := range all {
		all[i] = Element(i)
	}
	return all
}

// IsValid reports whether e is a catalogue index.
func (e Element) IsValid() bool {
	return int(e) < Count
}

// Symbol returns the chemical symbol, or "" for ids outside the catalogue.
func (e Element) Symbol() string {
	if !e.IsValid() {
		return ""
	}
	return symbols[e]
}

// Bucket returns the hash table slot of the element, or -1 for ids outside
// the catalogue.
func (e Element) Bucket() int {
	if !e.IsValid() {
		return -1
	}
	s := symbols[e]
	var b1 byte
	if len(s) > 1 {
		b1 = s[1]
	}
	return Hash(s[0], b1)
}

// String implements fmt.Stringer.
func (e Element) String() string {
	if !e.IsValid() {
		return "Element(" + strconv.Itoa(int(e)) + ")"
	}
	return symbols[e]
}

// buildBuckets fills the hash table and panics on a collision, which can only
// happen if the catalogue or the hash function is changed.
func buildBuckets() [BucketCount]Element {
	var table [BucketCount]Element
	for i := range table {
		table[i] = emptyBucket
	}
	for i, s := range symbols {
		var b1 byte
		if len(s) > 1 {
			b1 = s[1]
		}
		bucket := Hash(s[0], b1)
		if table[bucket] != emptyBucket {
			panic(fmt.Sprintf("element: symbol %q collides with %q in bucket %d", s, symbols[table[bucket]], bucket))
		}
		table[bucket] = Element(i)
	}
	return table
}
