// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ftitreefly/cliroute/pkg/types"
)

// Builder assembles a Descriptor. Errors are collected and reported by Build.
type Builder struct {
	name        string
	description string
	signature   string
	options     []OptionSpec
	plain       bool
	policy      UnknownOptionPolicy
	executor    Executor
}

// NewCommand starts a descriptor for the given (possibly multi-word) name.
func NewCommand(name string) *Builder {
	return &Builder{name: name}
}

// Describe sets the help text.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// Signature sets the positional signature string.
func (b *Builder) Signature(sig string) *Builder {
	b.signature = sig
	return b
}

// Option declares an option.
func (b *Builder) Option(spec OptionSpec) *Builder {
	b.options = append(b.options, spec)
	return b
}

// Flag declares a presence-only option.
func (b *Builder) Flag(description string, aliases ...string) *Builder {
	return b.Option(OptionSpec{Aliases: aliases, Kind: FlagOption, Description: description})
}

// Keyed declares an option that consumes one value.
func (b *Builder) Keyed(description string, aliases ...string) *Builder {
	return b.Option(OptionSpec{Aliases: aliases, Kind: KeyedOption, Description: description})
}

// Plain marks the command as not option-aware.
func (b *Builder) Plain() *Builder {
	b.plain = true
	return b
}

// UnknownOptions sets the unknown-option policy.
func (b *Builder) UnknownOptions(policy UnknownOptionPolicy) *Builder {
	b.policy = policy
	return b
}

// Run sets the executor.
func (b *Builder) Run(exec Executor) *Builder {
	b.executor = exec
	return b
}

// RunFunc sets a function executor.
func (b *Builder) RunFunc(fn func(ctx context.Context, inv *Invocation) error) *Builder {
	if fn == nil {
		b.executor = nil
		return b
	}
	return b.Run(ExecutorFunc(fn))
}

// Build validates the accumulated declaration and returns the descriptor.
func (b *Builder) Build() (*Descriptor, error) {
	name := NormalizeName(b.name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var errs []error
	sig, err := ParseSignature(b.signature)
	if err != nil {
		errs = append(errs, err)
	}

	desc := types.DescriptionText(b.description)
	if b.description != "" {
		if ok, descErrs := desc.IsValid(); !ok {
			errs = append(errs, descErrs...)
		}
	}

	var set *OptionSet
	capability := OptionAware
	if b.plain {
		capability = Plain
		if len(b.options) > 0 {
			errs = append(errs, &InvalidCommandError{Name: name, Reason: "plain commands cannot declare options"})
		}
	} else {
		set, err = NewOptionSetWithHelp(b.options...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if b.policy != UnknownOptionsFatal && b.policy != UnknownOptionsAdvisory {
		errs = append(errs, &InvalidCommandError{Name: name, Reason: fmt.Sprintf("unknown option policy %d", int(b.policy))})
	}
	if b.executor == nil {
		errs = append(errs, &InvalidCommandError{Name: name, Reason: "no executor"})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("command %q: %w", name, errors.Join(errs...))
	}

	return &Descriptor{
		name:        name,
		words:       strings.Fields(name),
		description: desc,
		signature:   sig,
		options:     set,
		capability:  capability,
		policy:      b.policy,
		executor:    b.executor,
	}, nil
}

// MustBuild is Build for declarations known to be valid.
func (b *Builder) MustBuild() *Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
