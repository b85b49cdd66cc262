// SPDX-License-Identifier: MPL-2.0

package mf

import "math"

// applyGroupCoeffs multiplies the coefficients in place by the group
// coefficients that enclose them. There are two kinds:
//
//   - leading, as in 5Cl or O.5Cl: scaled forward by scaleForward
//   - trailing, as in (CO)2: scaled backward by scaleBackward
//
// Nesting is tracked with a depth counter only. The depth must never go below
// zero and must be zero at the end.
func applyGroupCoeffs(mf []byte, coeffs []uint32) error {
	depth := 0
	for i := 0; i < len(mf); {
		lo := i
		groupCoeff, next, ok := readCoeff(mf, i)
		if !ok {
			return overflowError(mf, lo)
		}
		i = next
		if err := scaleForward(mf, lo, depth, coeffs, groupCoeff); err != nil {
			return err
		}

		// symbols and their own coefficients were handled by the tokenizer
		for i < len(mf) && isAlphanumeric(mf[i]) {
			i++
		}
		if i >= len(mf) {
			break
		}

		switch b := mf[i]; {
		case isOpener(b):
			depth++
			i++
		case isCloser(b):
			if depth == 0 {
				return mismatchedParenthesesError(mf, i)
			}
			chunkEnd := i - 1
			i++
			coeffPos := i
			groupCoeff, i, ok = readTrailingCoeff(mf, i)
			if !ok {
				return overflowError(mf, coeffPos)
			}
			if err := scaleBackward(mf, chunkEnd, depth, coeffs, groupCoeff, coeffPos); err != nil {
				return err
			}
			depth--
		default: // . + -
			i++
		}
	}
	if depth != 0 {
		return mismatchedParenthesesError(mf, -1)
	}
	return nil
}

// readTrailingCoeff reads the coefficient after a closing bracket. Digits
// directly followed by a sign are a charge ("]2+"), not a multiplier, so the
// coefficient stays 1.
func readTrailingCoeff(mf []byte, i int) (uint32, int, bool) {
	coeff, next, ok := readCoeff(mf, i)
	if next > i && next < len(mf) && isSign(mf[next]) {
		return 1, next, true
	}
	return coeff, next, ok
}

// scaleForward multiplies coefficients from lo to the right by groupCoeff. It
// stops at a dot on the starting depth, when the enclosing group closes, or at
// the end of the formula.
func scaleForward(mf []byte, lo, currDepth int, coeffs []uint32, groupCoeff uint32) error {
	if groupCoeff == 1 {
		return nil // the usual case, coefficients in front of a formula are rare
	}
	depth := currDepth
	for ; lo < len(mf) && depth >= currDepth; lo++ {
		switch b := mf[lo]; {
		case isOpener(b):
			depth++
		case isCloser(b):
			depth--
		case b == '.' && depth == currDepth:
			return nil
		}
		if !scale(coeffs, lo, groupCoeff) {
			return overflowError(mf, lo)
		}
	}
	return nil
}

// scaleBackward multiplies coefficients from hi (inclusive) to the left by
// groupCoeff until the opener of the group at currDepth has been passed.
// Nested groups inside it are scaled as well; siblings are not.
func scaleBackward(mf []byte, hi, currDepth int, coeffs []uint32, groupCoeff uint32, coeffPos int) error {
	if groupCoeff == 1 {
		return nil
	}
	depth := currDepth
	for ; hi >= 0 && depth <= currDepth; hi-- {
		switch b := mf[hi]; {
		case isOpener(b):
			depth++
		case isCloser(b):
			depth--
		}
		if !scale(coeffs, hi, groupCoeff) {
			return overflowError(mf, coeffPos)
		}
	}
	return nil
}

// scale multiplies coeffs[pos] by factor and reports false on overflow.
func scale(coeffs []uint32, pos int, factor uint32) bool {
	if coeffs[pos] == 0 {
		return true
	}
	product := uint64(coeffs[pos]) * uint64(factor)
	if product > math.MaxUint32 {
		return false
	}
	coeffs[pos] = uint32(product)
	return true
}
