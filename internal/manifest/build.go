// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

type (
	// ExecutorFactory creates the executor for a manifest command.
	ExecutorFactory func(cmd Command) clispec.Executor

	// BuildOptions fills in what individual commands leave unset.
	BuildOptions struct {
		UnknownOptions clispec.UnknownOptionPolicy
	}

	// Set is a manifest turned into registrable parts.
	Set struct {
		App      clispec.App
		Commands []*clispec.Descriptor
		// Aliases maps alias name to target command, iterated in sorted
		// order by Register.
		Aliases map[string]string
		Default string
	}

	// Registrar receives a Set.
	Registrar interface {
		RegisterAll(ds ...*clispec.Descriptor) error
		Alias(alias, target string) error
		SetDefault(name string) error
	}
)

// Build converts every command of m into a descriptor. All problems are
// reported together, each prefixed with the command's position.
func Build(m *Manifest, newExecutor ExecutorFactory, opts BuildOptions) (*Set, error) {
	set := &Set{
		App: clispec.App{
			Name:        m.Name,
			Version:     m.Version,
			Description: m.Description,
		},
		Aliases: maps.Clone(m.Aliases),
		Default: m.DefaultCommand,
	}

	var errs []error
	for i, cmd := range m.Commands {
		d, err := buildCommand(cmd, newExecutor, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("commands[%d]: %w", i, err))
			continue
		}
		set.Commands = append(set.Commands, d)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

func buildCommand(cmd Command, newExecutor ExecutorFactory, opts BuildOptions) (*clispec.Descriptor, error) {
	b := clispec.NewCommand(cmd.Name).
		Describe(cmd.Description).
		Signature(cmd.Signature).
		Run(newExecutor(cmd))

	if cmd.Plain {
		b.Plain()
	}

	policy := opts.UnknownOptions
	if cmd.UnknownOptions != "" {
		var err error
		if policy, err = clispec.ParseUnknownOptionPolicy(cmd.UnknownOptions); err != nil {
			return nil, err
		}
	}
	b.UnknownOptions(policy)

	for _, o := range cmd.Options {
		kind, err := clispec.ParseOptionKind(o.Kind)
		if err != nil {
			return nil, err
		}
		b.Option(clispec.OptionSpec{
			Name:        o.Name,
			Aliases:     o.Aliases,
			Kind:        kind,
			Description: o.Description,
		})
	}
	return b.Build()
}

// Register hands the set to r: commands first, then aliases in sorted order,
// then the default command.
func (s *Set) Register(r Registrar) error {
	if err := r.RegisterAll(s.Commands...); err != nil {
		return err
	}
	aliases := maps.Keys(s.Aliases)
	slices.Sort(aliases)
	for _, alias := range aliases {
		if err := r.Alias(alias, s.Aliases[alias]); err != nil {
			return fmt.Errorf("aliases[%q]: %w", alias, err)
		}
	}
	if s.Default != "" {
		if err := r.SetDefault(s.Default); err != nil {
			return fmt.Errorf("default_command: %w", err)
		}
	}
	return nil
}
