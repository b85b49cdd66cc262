// SPDX-License-Identifier: MPL-2.0

package mf

import (
	"math"

	"github.com/elsci/chemikaze/pkg/atoms"
	"github.com/elsci/chemikaze/pkg/element"
)

// combineIntoAtomCounts folds the scaled coefficients into totals per element.
// Offsets with a zero coefficient are skipped, so zeroed-out atoms never show up.
func combineIntoAtomCounts(mf []byte, elements []element.Element, coeffs []uint32) (*atoms.Counts, error) {
	counts := new(atoms.Counts)
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		e := elements[i]
		sum := uint64(counts.Get(e)) + uint64(c)
		if sum > math.MaxUint32 {
			return nil, overflowError(mf, i)
		}
		counts[e] = uint32(sum)
	}
	return counts, nil
}
