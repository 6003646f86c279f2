// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the documents ParseAndDecode accepts (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures ParseAndDecode.
	Option func(*parseOptions)

	// ParseResult holds a decoded document.
	ParseResult[T any] struct {
		Value *T
		// Unified is the schema-unified CUE value, for callers that need
		// fields the Go struct does not carry.
		Unified cue.Value
	}
)

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete controls whether every value must be concrete after
// unification. It defaults to true. With false, fields that are still
// incomplete are left out of the decoded value, so they keep the Go zero
// value (or whatever defaults the caller layers underneath).
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// ParseAndDecode validates data against the definition at schemaPath (for
// example "#Manifest") in schema and decodes it into T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := parseOptions{maxFileSize: DefaultMaxFileSize, concrete: true, filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: compiling schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return nil, FormatError(err, o.filename)
	}

	unified := root.Unify(userValue)
	var validateOpts []cue.Option
	if o.concrete {
		validateOpts = append(validateOpts, cue.Concrete(true))
	}
	if err := unified.Validate(validateOpts...); err != nil {
		return nil, FormatError(err, o.filename)
	}

	decodable := unified
	if !o.concrete {
		fields, _ := concreteFields(unified)
		decodable = ctx.Encode(fields)
	}

	var out T
	if err := decodable.Decode(&out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &ParseResult[T]{Value: &out, Unified: unified}, nil
}

// concreteFields returns the concrete part of v as plain Go values. Struct
// fields that are still incomplete are dropped; incomplete list elements
// become nil so indexes are kept.
func concreteFields(v cue.Value) (any, bool) {
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.IncompleteKind() {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, false
		}
		m := make(map[string]any)
		for iter.Next() {
			if fv, ok := concreteFields(iter.Value()); ok {
				m[iter.Selector().Unquoted()] = fv
			}
		}
		return m, true
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, false
		}
		l := make([]any, 0)
		for iter.Next() {
			ev, _ := concreteFields(iter.Value())
			l = append(l, ev)
		}
		return l, true
	}

	if !v.IsConcrete() {
		return nil, false
	}
	var out any
	if err := v.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}

// ParseFile reads path, refusing files larger than the size limit before
// reading them, and decodes it like ParseAndDecode. The filename option
// defaults to path.
func ParseFile[T any](schema []byte, path, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := parseOptions{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > o.maxFileSize {
		return nil, &DocumentError{File: path, Issues: []Issue{{
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), o.maxFileSize),
		}}}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAndDecode[T](schema, data, schemaPath, append([]Option{WithFilename(path)}, opts...)...)
}
