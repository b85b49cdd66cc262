// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks CUE documents against an embedded schema.
//
// A Schema pairs the schema source with the definition documents must
// satisfy. Decode compiles both, unifies them and decodes the result, so a
// partial config.cue comes back as a map holding only the fields it sets:
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	var values map[string]any
//	err := cueutil.NewSchema(configSchema, "#Config").Decode(data, "config.cue", &values)
//
// Errors name the file and the dotted field path, for example
// "config.cue: batch.repeats: invalid value 0 (out of bound >=1)".
package cueutil
