// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes user CUE documents against an embedded schema.
//
// Every document goes through the same steps: compile the schema, compile the
// user data, unify it with a root definition of the schema, validate, and
// decode into a Go struct. Failures are reported as a *DocumentError whose
// issues carry JSON-style paths such as "commands[2].options[0].aliases".
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
//		cueutil.WithFilename("cliroute.cue"))
package cueutil
