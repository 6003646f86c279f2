// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error: what failed, on what, and how
	// to fix it.
	//
	//	return issue.New("load manifest",
	//		issue.Resource(path),
	//		issue.Hint("Run 'cliroute check' for details"),
	//		issue.Cause(err))
	ActionableError struct {
		Operation string
		Resource  string
		Hints     []string
		Guide     Id
		Cause     error
	}

	// Detail configures an ActionableError.
	Detail func(*ActionableError)
)

// Resource names the file or entity involved.
func Resource(r string) Detail {
	return func(e *ActionableError) { e.Resource = r }
}

// Hint appends fix suggestions.
func Hint(hints ...string) Detail {
	return func(e *ActionableError) { e.Hints = append(e.Hints, hints...) }
}

// Cause sets the underlying error.
func Cause(err error) Detail {
	return func(e *ActionableError) { e.Cause = err }
}

// WithGuide links the error to a catalog guide.
func WithGuide(id Id) Detail {
	return func(e *ActionableError) { e.Guide = id }
}

// New builds an ActionableError for operation.
func New(operation string, details ...Detail) *ActionableError {
	e := &ActionableError{Operation: operation}
	for _, d := range details {
		d(e)
	}
	return e
}

// Wrap returns nil when err is nil, else an ActionableError caused by err.
func Wrap(err error, operation string, details ...Detail) error {
	if err == nil {
		return nil
	}
	return New(operation, append(details, Cause(err))...)
}

func (e *ActionableError) Error() string {
	var sb strings.Builder
	sb.WriteString("failed to " + e.Operation)
	if e.Resource != "" {
		sb.WriteString(": " + e.Resource)
	}
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders the error with its hints as bullets. Verbose output adds
// the numbered chain of wrapped causes.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Hints) > 0 {
		sb.WriteByte('\n')
		for _, h := range e.Hints {
			sb.WriteString("\n  • " + h)
		}
	}

	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&sb, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return sb.String()
}

// GuideOf returns the catalog guide attached to the first ActionableError in
// err's chain, or nil.
func GuideOf(err error) *Issue {
	var ae *ActionableError
	if errors.As(err, &ae) && ae.Guide != 0 {
		return Get(ae.Guide)
	}
	return nil
}
