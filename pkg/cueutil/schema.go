// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxFileSize bounds the documents Decode accepts.
const MaxFileSize = 5 << 20

// ErrFileTooLarge is returned for documents over MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// Schema is a CUE definition, such as #Config, inside a schema source.
// Fields the definition marks optional may be left out of a document;
// values are not required to be concrete.
type Schema struct {
	source     string
	definition string
}

// NewSchema returns the schema for definition within source.
func NewSchema(source, definition string) Schema {
	return Schema{source: source, definition: definition}
}

// Decode validates data, named filename in errors, against the schema and
// decodes it into out. A fresh CUE context is used per call, so a Schema
// may be shared between goroutines.
func (s Schema) Decode(data []byte, filename string, out any) error {
	if len(data) > MaxFileSize {
		return fmt.Errorf("%s: %w: %d bytes (limit %d)", filename, ErrFileTooLarge, len(data), MaxFileSize)
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(s.source)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath(s.definition))
	if !def.Exists() {
		return fmt.Errorf("internal error: schema definition %s not found", s.definition)
	}
	if err := def.Err(); err != nil {
		return fmt.Errorf("internal error: schema definition %s: %w", s.definition, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return FormatError(err, filename)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(); err != nil {
		return FormatError(err, filename)
	}
	if err := unified.Decode(out); err != nil {
		return FormatError(err, filename)
	}
	return nil
}
