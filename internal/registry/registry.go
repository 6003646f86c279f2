// SPDX-License-Identifier: MPL-2.0

// Package registry holds the registered commands of one CLI and routes
// tokenized input to exactly one of them.
package registry

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
	"golang.org/x/exp/maps"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Registry stores descriptors ordered by name. It is populated before
// dispatch and only read while routing.
type Registry struct {
	commands    *btree.Map[string, *clispec.Descriptor]
	aliases     map[string]string
	maxWords    int
	defaultName string
	helpName    string
	versionName string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: btree.NewMap[string, *clispec.Descriptor](0),
		aliases:  make(map[string]string),
	}
}

// Register adds a descriptor. Two commands may not share a name, and a name
// may not shadow an alias; this keeps equal-length prefix matches unique.
func (r *Registry) Register(d *clispec.Descriptor) error {
	if d == nil {
		return &clispec.InvalidCommandError{Reason: "nil descriptor"}
	}
	if err := r.checkFree(d.Name()); err != nil {
		return err
	}
	r.insert(d)
	return nil
}

// RegisterAll adds descriptors in order. Nothing is registered when any of
// them conflicts with the registry or with another entry of the list.
func (r *Registry) RegisterAll(ds ...*clispec.Descriptor) error {
	pending := make(map[string]bool, len(ds))
	for _, d := range ds {
		if d == nil {
			return &clispec.InvalidCommandError{Reason: "nil descriptor"}
		}
		if err := r.checkFree(d.Name()); err != nil {
			return err
		}
		if pending[d.Name()] {
			return fmt.Errorf("%w: %q", clispec.ErrDuplicateCommand, d.Name())
		}
		pending[d.Name()] = true
	}
	for _, d := range ds {
		r.insert(d)
	}
	return nil
}

// Alias makes alias route to the registered command target.
func (r *Registry) Alias(alias, target string) error {
	alias, target = clispec.NormalizeName(alias), clispec.NormalizeName(target)
	if err := clispec.ValidateName(alias); err != nil {
		return err
	}
	if _, ok := r.commands.Get(target); !ok {
		return &clispec.InvalidCommandError{Name: alias, Reason: fmt.Sprintf("alias target %q is not registered", target)}
	}
	if err := r.checkFree(alias); err != nil {
		return err
	}
	r.aliases[alias] = target
	r.maxWords = max(r.maxWords, len(strings.Fields(alias)))
	return nil
}

// SetDefault routes input that names no command to the registered command name.
func (r *Registry) SetDefault(name string) error {
	name = clispec.NormalizeName(name)
	if _, ok := r.commands.Get(name); !ok {
		return &clispec.InvalidCommandError{Name: name, Reason: "default command is not registered"}
	}
	r.defaultName = name
	return nil
}

// SetHelp registers the help command and reserves -h/--help as a leading
// option that routes to it.
func (r *Registry) SetHelp(d *clispec.Descriptor) error {
	if err := r.Register(d); err != nil {
		return err
	}
	r.helpName = d.Name()
	return nil
}

// SetVersion registers the version command and routes a leading --version
// to it.
func (r *Registry) SetVersion(d *clispec.Descriptor) error {
	if err := r.Register(d); err != nil {
		return err
	}
	r.versionName = d.Name()
	return nil
}

// Lookup finds a command by name or alias.
func (r *Registry) Lookup(name string) (*clispec.Descriptor, bool) {
	d, _, ok := r.resolve(clispec.NormalizeName(name))
	return d, ok
}

// Default returns the default command, if set.
func (r *Registry) Default() (*clispec.Descriptor, bool) {
	return r.get(r.defaultName)
}

// Help returns the help command, if set.
func (r *Registry) Help() (*clispec.Descriptor, bool) {
	return r.get(r.helpName)
}

// Version returns the version command, if set.
func (r *Registry) Version() (*clispec.Descriptor, bool) {
	return r.get(r.versionName)
}

// Commands returns every descriptor in name order.
func (r *Registry) Commands() []*clispec.Descriptor {
	out := make([]*clispec.Descriptor, 0, r.commands.Len())
	r.commands.Scan(func(_ string, d *clispec.Descriptor) bool {
		out = append(out, d)
		return true
	})
	return out
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	return maps.Clone(r.aliases)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return r.commands.Len()
}

// Children returns the commands whose names extend prefix by at least one
// word, in name order.
func (r *Registry) Children(prefix string) []*clispec.Descriptor {
	pivot := clispec.NormalizeName(prefix) + " "
	var out []*clispec.Descriptor
	r.commands.Ascend(pivot, func(name string, d *clispec.Descriptor) bool {
		if !strings.HasPrefix(name, pivot) {
			return false
		}
		out = append(out, d)
		return true
	})
	return out
}

func (r *Registry) checkFree(name string) error {
	if _, ok := r.commands.Get(name); ok {
		return fmt.Errorf("%w: %q", clispec.ErrDuplicateCommand, name)
	}
	if target, ok := r.aliases[name]; ok {
		return fmt.Errorf("%w: %q is an alias of %q", clispec.ErrDuplicateCommand, name, target)
	}
	return nil
}

func (r *Registry) insert(d *clispec.Descriptor) {
	r.commands.Set(d.Name(), d)
	r.maxWords = max(r.maxWords, len(d.Words()))
}

func (r *Registry) get(name string) (*clispec.Descriptor, bool) {
	if name == "" {
		return nil, false
	}
	return r.commands.Get(name)
}

func (r *Registry) resolve(name string) (*clispec.Descriptor, bool, bool) {
	if d, ok := r.commands.Get(name); ok {
		return d, false, true
	}
	if target, ok := r.aliases[name]; ok {
		d, found := r.commands.Get(target)
		return d, true, found
	}
	return nil, false, false
}
