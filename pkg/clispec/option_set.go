// SPDX-License-Identifier: MPL-2.0

package clispec

import "fmt"

// HelpOptionName keys the implicit help option in OptionValues.
const HelpOptionName = "help"

var helpAliases = []string{"-h", "--help"}

// OptionSet is the immutable collection of options a command recognizes.
// Aliases and names are unique within a set.
type OptionSet struct {
	specs   []OptionSpec
	byAlias map[string]int
	byName  map[string]int
	help    bool
}

// HelpAliases returns the aliases reserved for the implicit help option.
func HelpAliases() []string {
	return append([]string(nil), helpAliases...)
}

// NewOptionSet validates specs and indexes them by alias.
func NewOptionSet(specs ...OptionSpec) (*OptionSet, error) {
	return newOptionSet(specs, false)
}

// NewOptionSetWithHelp is NewOptionSet plus the implicit -h/--help flag.
// Declaring either help alias explicitly is an error.
func NewOptionSetWithHelp(specs ...OptionSpec) (*OptionSet, error) {
	return newOptionSet(specs, true)
}

func newOptionSet(specs []OptionSpec, withHelp bool) (*OptionSet, error) {
	s := &OptionSet{
		byAlias: make(map[string]int),
		byName:  make(map[string]int),
		help:    withHelp,
	}
	if withHelp {
		for _, a := range helpAliases {
			s.byAlias[a] = -1
		}
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		spec.Name = spec.Key()
		spec.Aliases = append([]string(nil), spec.Aliases...)
		if withHelp && spec.Name == HelpOptionName {
			return nil, &InvalidOptionError{Alias: spec.Name, Reason: "option name is reserved for help", Err: ErrReservedAlias}
		}
		if _, dup := s.byName[spec.Name]; dup {
			return nil, &InvalidOptionError{Alias: spec.Name, Reason: "option name declared twice", Err: ErrDuplicateAlias}
		}
		idx := len(s.specs)
		for _, a := range spec.Aliases {
			if prev, taken := s.byAlias[a]; taken {
				if prev < 0 {
					return nil, &InvalidOptionError{Alias: a, Reason: "alias is reserved for help", Err: ErrReservedAlias}
				}
				return nil, &InvalidOptionError{Alias: a, Reason: fmt.Sprintf("alias already used by %q", s.specs[prev].Name), Err: ErrDuplicateAlias}
			}
			s.byAlias[a] = idx
		}
		s.byName[spec.Name] = idx
		s.specs = append(s.specs, spec)
	}
	return s, nil
}

// Lookup finds the option declared with alias. The implicit help option is
// reported with Kind FlagOption and Name HelpOptionName.
func (s *OptionSet) Lookup(alias string) (OptionSpec, bool) {
	if s == nil {
		return OptionSpec{}, false
	}
	idx, ok := s.byAlias[alias]
	if !ok {
		return OptionSpec{}, false
	}
	if idx < 0 {
		return s.helpSpec(), true
	}
	return s.specs[idx], true
}

// IsHelp reports whether alias triggers the implicit help option.
func (s *OptionSet) IsHelp(alias string) bool {
	if s == nil || !s.help {
		return false
	}
	idx, ok := s.byAlias[alias]
	return ok && idx < 0
}

// HasHelp reports whether the set carries the implicit help option.
func (s *OptionSet) HasHelp() bool {
	return s != nil && s.help
}

// Specs returns the declared options in declaration order, followed by the
// implicit help option when present.
func (s *OptionSet) Specs() []OptionSpec {
	if s == nil {
		return nil
	}
	out := make([]OptionSpec, 0, len(s.specs)+1)
	for _, spec := range s.specs {
		spec.Aliases = append([]string(nil), spec.Aliases...)
		out = append(out, spec)
	}
	if s.help {
		out = append(out, s.helpSpec())
	}
	return out
}

// Len returns the number of declared options, excluding implicit help.
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.specs)
}

func (s *OptionSet) helpSpec() OptionSpec {
	return OptionSpec{
		Name:        HelpOptionName,
		Aliases:     HelpAliases(),
		Kind:        FlagOption,
		Description: "Show help for this command",
	}
}
