// SPDX-License-Identifier: MPL-2.0

package batch

import "bytes"

// Line is one formula line of the input. Text aliases the input buffer.
type Line struct {
	// Number is the 1-based line number within the input.
	Number int
	// Text is the line with its terminator and surrounding blanks removed.
	Text []byte
}

// SplitLines splits buf at '\n', dropping a '\r' before it and the spaces and
// tabs around each formula. A final line without a terminator is kept; the
// empty remainder after a trailing '\n' is not a line. With skipBlank, lines
// that are empty after trimming are left out but still counted in numbering.
func SplitLines(buf []byte, skipBlank bool) []Line {
	lines := make([]Line, 0, bytes.Count(buf, []byte{'\n'})+1)
	number := 0
	for len(buf) > 0 {
		number++
		var text []byte
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			text, buf = buf[:i], buf[i+1:]
		} else {
			text, buf = buf, nil
		}
		text = bytes.TrimSuffix(text, []byte{'\r'})
		text = bytes.Trim(text, " \t")
		if skipBlank && len(text) == 0 {
			continue
		}
		lines = append(lines, Line{Number: number, Text: text})
	}
	return lines
}

// partition splits lines into at most n contiguous shares of near-equal size.
func partition(lines []Line, n int) [][]Line {
	if n > len(lines) {
		n = len(lines)
	}
	if n <= 1 {
		return [][]Line{lines}
	}
	shares := make([][]Line, 0, n)
	size := (len(lines) + n - 1) / n
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		shares = append(shares, lines[start:end])
	}
	return shares
}
