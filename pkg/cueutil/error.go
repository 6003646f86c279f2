// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrInvalidDocument is the sentinel error wrapped by DocumentError.
var ErrInvalidDocument = errors.New("invalid document")

type (
	// Issue is one problem found in a document.
	Issue struct {
		// Path is the JSON-style path to the offending value, e.g.
		// "commands[0].signature". It is empty for document-level problems.
		Path    string
		Message string
	}

	// DocumentError reports every issue found in one document.
	DocumentError struct {
		File   string
		Issues []Issue
	}
)

// Error implements the error interface.
func (e *DocumentError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path != "" {
			lines = append(lines, is.Path+": "+is.Message)
		} else {
			lines = append(lines, is.Message)
		}
	}
	switch len(lines) {
	case 0:
		return e.File + ": invalid document"
	case 1:
		return e.File + ": " + lines[0]
	default:
		return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
	}
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *DocumentError) Unwrap() error { return ErrInvalidDocument }

// FormatError converts a CUE error into a *DocumentError. Errors that carry
// no CUE detail are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	doc := &DocumentError{File: file}
	for _, e := range list {
		path := FormatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		doc.Issues = append(doc.Issues, Issue{Path: path, Message: msg})
	}
	return doc
}

// FormatPath renders a CUE path (["commands", "0", "name"]) in JSON-path
// notation ("commands[0].name").
func FormatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, file string) error {
	if int64(len(data)) > maxSize {
		return &DocumentError{File: file, Issues: []Issue{{
			Message: fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", len(data), maxSize),
		}}}
	}
	return nil
}
