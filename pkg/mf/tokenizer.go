// SPDX-License-Identifier: MPL-2.0

package mf

import "github.com/elsci/chemikaze/pkg/element"

// readSymbolsAndCoeffs scans mf left to right. For every element symbol it
// stores the element id and the coefficient that directly follows the symbol at
// the offset where the symbol starts. Digits that do not follow a symbol and
// the punctuation ( ) + - . [ ] are left for the group scaler.
func readSymbolsAndCoeffs(mf []byte, elements []element.Element, coeffs []uint32) error {
	for i := 0; i < len(mf); {
		switch b := mf[i]; {
		case isUpper(b):
			next, err := consumeSymbolAndCoeff(mf, i, elements, coeffs)
			if err != nil {
				return err
			}
			i = next
		case isDigit(b) || isPunctuation(b):
			i++
		default:
			return unexpectedSymbolError(mf, i)
		}
	}
	return nil
}

// consumeSymbolAndCoeff reads one symbol starting at start (an uppercase letter,
// optionally followed by a lowercase one) and its coefficient. It returns the
// offset right after the coefficient.
func consumeSymbolAndCoeff(mf []byte, start int, elements []element.Element, coeffs []uint32) (int, error) {
	i := start + 1
	var b1 byte
	if i < len(mf) && isLower(mf[i]) {
		b1 = mf[i]
		i++
	}

	e := element.Lookup(mf[start], b1)
	if e == element.Invalid {
		return 0, unknownSymbolError(mf, start, i)
	}

	coeff, next, ok := readCoeff(mf, i)
	if !ok {
		return 0, overflowError(mf, i)
	}

	elements[start] = e
	coeffs[start] = coeff
	return next, nil
}
