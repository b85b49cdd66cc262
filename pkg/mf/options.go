// SPDX-License-Identifier: MPL-2.0

package mf

// DefaultMaxLength is the default scratch budget: the longest formula, in
// bytes, a Parser accepts before failing with KindOutOfMemory.
const DefaultMaxLength = 1 << 20

type (
	// parserOptions holds configuration for a Parser.
	parserOptions struct {
		maxLength int
	}

	// Option configures a Parser.
	Option func(*parserOptions)
)

// defaultOptions returns the default parser options.
func defaultOptions() parserOptions {
	return parserOptions{
		maxLength: DefaultMaxLength,
	}
}

// WithMaxLength limits the length of a single formula, and with it the
// scratch memory a parse may take. Values below 1 keep the default.
func WithMaxLength(n int) Option {
	return func(o *parserOptions) {
		if n > 0 {
			o.maxLength = n
		}
	}
}
