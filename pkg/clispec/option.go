// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// FlagOption is a presence-only option; it never consumes a value.
	FlagOption OptionKind = iota
	// KeyedOption consumes exactly one value token.
	KeyedOption
)

var (
	aliasPattern      = regexp.MustCompile(`^(-[A-Za-z?]|--[A-Za-z][A-Za-z0-9_-]*)$`)
	optionNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
)

type (
	// OptionKind tells the recognizer whether an option consumes a value.
	OptionKind int

	// OptionSpec declares one option of a command.
	OptionSpec struct {
		// Name keys the option in OptionValues. It defaults to the first long
		// alias without its dashes, or the first short alias letter.
		Name        string
		Aliases     []string
		Kind        OptionKind
		Description string
	}
)

// String returns the manifest spelling of the kind.
func (k OptionKind) String() string {
	switch k {
	case FlagOption:
		return "flag"
	case KeyedOption:
		return "keyed"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// Arity is the number of value tokens the option consumes.
func (k OptionKind) Arity() int {
	if k == KeyedOption {
		return 1
	}
	return 0
}

// ParseOptionKind converts "flag" or "keyed" to an OptionKind.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flag":
		return FlagOption, nil
	case "keyed":
		return KeyedOption, nil
	default:
		return FlagOption, &InvalidOptionError{Reason: fmt.Sprintf("unknown option kind %q (expected flag or keyed)", s)}
	}
}

// IsAlias reports whether s is a well-formed option alias such as -v or --verbose.
func IsAlias(s string) bool {
	return aliasPattern.MatchString(s)
}

// Key returns the name the option's values are stored under.
func (o OptionSpec) Key() string {
	if o.Name != "" {
		return o.Name
	}
	for _, a := range o.Aliases {
		if strings.HasPrefix(a, "--") {
			return a[2:]
		}
	}
	if len(o.Aliases) > 0 {
		if o.Aliases[0] == "-?" {
			return "question"
		}
		return strings.TrimLeft(o.Aliases[0], "-")
	}
	return ""
}

// Validate checks the spec in isolation. Cross-option conflicts are caught
// when the spec joins an OptionSet.
func (o OptionSpec) Validate() error {
	if len(o.Aliases) == 0 {
		return &InvalidOptionError{Alias: o.Name, Reason: "at least one alias is required"}
	}
	for _, a := range o.Aliases {
		if !IsAlias(a) {
			return &InvalidOptionError{Alias: a, Reason: "alias must look like -x or --name"}
		}
	}
	if o.Kind != FlagOption && o.Kind != KeyedOption {
		return &InvalidOptionError{Alias: o.Aliases[0], Reason: "unknown option kind"}
	}
	if key := o.Key(); !optionNamePattern.MatchString(key) {
		return &InvalidOptionError{Alias: o.Aliases[0], Reason: fmt.Sprintf("invalid option name %q", key)}
	}
	return nil
}

// Usage renders the aliases and value placeholder, e.g. "-o, --output <value>".
func (o OptionSpec) Usage() string {
	s := strings.Join(o.Aliases, ", ")
	if o.Kind == KeyedOption {
		s += " <value>"
	}
	return s
}
