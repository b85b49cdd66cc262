// SPDX-License-Identifier: MPL-2.0

package mf

import "math"

func isUpper(b byte) bool { return 'A' <= b && b <= 'Z' }

func isLower(b byte) bool { return 'a' <= b && b <= 'z' }

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAlphanumeric(b byte) bool { return isUpper(b) || isLower(b) || isDigit(b) }

func isOpener(b byte) bool { return b == '(' || b == '[' }

func isCloser(b byte) bool { return b == ')' || b == ']' }

func isSign(b byte) bool { return b == '+' || b == '-' }

// isPunctuation reports the non-alphanumeric bytes a formula may contain.
func isPunctuation(b byte) bool {
	switch b {
	case '(', ')', '+', '-', '.', '[', ']':
		return true
	}
	return false
}

// readCoeff reads the run of decimal digits starting at i. Without digits the
// coefficient is 1. The final result is false if the number does not fit in 32 bits.
func readCoeff(mf []byte, i int) (uint32, int, bool) {
	if i >= len(mf) || !isDigit(mf[i]) {
		return 1, i, true
	}
	var n uint64
	for ; i < len(mf) && isDigit(mf[i]); i++ {
		n = n*10 + uint64(mf[i]-'0')
		if n > math.MaxUint32 {
			for i < len(mf) && isDigit(mf[i]) {
				i++
			}
			return 0, i, false
		}
	}
	return uint32(n), i, true
}

// trimSpaces cuts ASCII spaces from both ends.
func trimSpaces(mf []byte) []byte {
	start, end := 0, len(mf)
	for start < end && mf[start] == ' ' {
		start++
	}
	for end > start && mf[end-1] == ' ' {
		end--
	}
	return mf[start:end]
}
