// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ftitreefly/cliroute/pkg/types"
)

const (
	// OptionAware commands have their option tokens recognized before binding.
	OptionAware Capability = iota
	// Plain commands receive every token after their name as positional input,
	// option-looking tokens included.
	Plain
)

const (
	// UnknownOptionsFatal aborts dispatch when an undeclared option is seen.
	UnknownOptionsFatal UnknownOptionPolicy = iota
	// UnknownOptionsAdvisory reports undeclared options and dispatches anyway.
	UnknownOptionsAdvisory
)

var commandWordPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:@+-]*$`)

type (
	// Capability selects how tokens after the command name are treated.
	Capability int

	// UnknownOptionPolicy decides whether undeclared options abort dispatch.
	UnknownOptionPolicy int

	// Executor runs a routed command with its bound inputs.
	Executor interface {
		Execute(ctx context.Context, inv *Invocation) error
	}

	// ExecutorFunc adapts a function to Executor.
	ExecutorFunc func(ctx context.Context, inv *Invocation) error

	// Invocation is everything an executor receives for one dispatch.
	Invocation struct {
		// ID correlates the log lines of one dispatch.
		ID      string
		Command *Descriptor
		Args    *Arguments
		Options *OptionValues
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// Descriptor is an immutable, routable command.
	Descriptor struct {
		name        string
		words       []string
		description types.DescriptionText
		signature   Signature
		options     *OptionSet
		capability  Capability
		policy      UnknownOptionPolicy
		executor    Executor
	}
)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, inv *Invocation) error {
	return f(ctx, inv)
}

// String returns a short label for the capability.
func (c Capability) String() string {
	if c == Plain {
		return "plain"
	}
	return "option-aware"
}

// String returns the manifest spelling of the policy.
func (p UnknownOptionPolicy) String() string {
	if p == UnknownOptionsAdvisory {
		return "advisory"
	}
	return "fatal"
}

// ParseUnknownOptionPolicy converts "fatal" or "advisory" to a policy.
// The empty string yields UnknownOptionsFatal.
func ParseUnknownOptionPolicy(s string) (UnknownOptionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fatal":
		return UnknownOptionsFatal, nil
	case "advisory":
		return UnknownOptionsAdvisory, nil
	default:
		return UnknownOptionsFatal, fmt.Errorf("unknown option policy %q (expected fatal or advisory)", s)
	}
}

// NormalizeName collapses runs of whitespace in a command name to single
// spaces and trims the ends.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateName checks that every word of a command name is a routable token.
func ValidateName(name string) error {
	words := strings.Fields(name)
	if len(words) == 0 {
		return &InvalidCommandError{Name: name, Reason: "name is empty"}
	}
	for _, w := range words {
		if !commandWordPattern.MatchString(w) {
			return &InvalidCommandError{Name: name, Reason: fmt.Sprintf("invalid name word %q", w)}
		}
	}
	return nil
}

// Name returns the normalized, space-joined command name.
func (d *Descriptor) Name() string { return d.name }

// Words returns the name split into words.
func (d *Descriptor) Words() []string { return append([]string(nil), d.words...) }

// Description returns the command's help text.
func (d *Descriptor) Description() types.DescriptionText { return d.description }

// Signature returns the parsed positional signature.
func (d *Descriptor) Signature() Signature { return d.signature }

// Options returns the option set; it is nil for plain commands.
func (d *Descriptor) Options() *OptionSet { return d.options }

// Capability returns how the command treats tokens after its name.
func (d *Descriptor) Capability() Capability { return d.capability }

// IsPlain reports whether option recognition is skipped for this command.
func (d *Descriptor) IsPlain() bool { return d.capability == Plain }

// UnknownOptions returns the command's unknown-option policy.
func (d *Descriptor) UnknownOptions() UnknownOptionPolicy { return d.policy }

// Executor returns the command's executor.
func (d *Descriptor) Executor() Executor { return d.executor }

// Usage renders the name followed by the canonical signature.
func (d *Descriptor) Usage() string {
	if d.signature.IsEmpty() {
		return d.name
	}
	return d.name + " " + d.signature.Usage()
}
