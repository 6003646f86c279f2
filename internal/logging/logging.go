// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured loggers used by the dispatcher and
// the bundled CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPrefix is the prefix used when Options.Prefix is empty.
const DefaultPrefix = "cliroute"

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error. Anything else means warn.
	Level           string
	Prefix          string
	ReportTimestamp bool
}

// ParseLevel converts a level name to a log.Level, falling back to warn.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          prefix,
		ReportTimestamp: opts.ReportTimestamp,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
