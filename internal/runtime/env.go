// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

const (
	// EnvCommand holds the routed command name.
	EnvCommand = "CLIROUTE_COMMAND"
	// EnvInvocation holds the dispatch id.
	EnvInvocation = "CLIROUTE_INVOCATION"
	// EnvArgPrefix prefixes one variable per bound slot.
	EnvArgPrefix = "CLIROUTE_ARG_"
	// EnvOptPrefix prefixes one variable per recognized option.
	EnvOptPrefix = "CLIROUTE_OPT_"
)

// EnvName converts a slot or option name into an environment variable
// suffix: upper case, with every other character replaced by '_'.
func EnvName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
}

// InvocationEnv returns the NAME=value pairs describing inv.
//
// A bound slot <name> sets CLIROUTE_ARG_NAME. A variadic slot also sets
// CLIROUTE_ARG_NAME_COUNT and CLIROUTE_ARG_NAME_1 .. _N, with the plain
// variable holding the values joined by spaces. Unset optional slots set
// nothing. A flag sets CLIROUTE_OPT_NAME to its occurrence count, a keyed
// option to its last value.
func InvocationEnv(inv *clispec.Invocation) []string {
	var env []string
	if inv.Command != nil {
		env = append(env, EnvCommand+"="+inv.Command.Name())
	}
	if inv.ID != "" {
		env = append(env, EnvInvocation+"="+inv.ID)
	}

	for _, name := range inv.Args.Names() {
		key := EnvArgPrefix + EnvName(name)
		if inv.Args.IsVariadic(name) {
			values := inv.Args.List(name)
			env = append(env,
				key+"="+strings.Join(values, " "),
				key+"_COUNT="+strconv.Itoa(len(values)))
			for i, v := range values {
				env = append(env, key+"_"+strconv.Itoa(i+1)+"="+v)
			}
			continue
		}
		if v, ok := inv.Args.Get(name); ok {
			env = append(env, key+"="+v)
		}
	}

	if inv.Command == nil {
		return env
	}
	for _, spec := range inv.Command.Options().Specs() {
		if !inv.Options.Has(spec.Name) {
			continue
		}
		key := EnvOptPrefix + EnvName(spec.Name)
		if spec.Kind == clispec.FlagOption {
			env = append(env, key+"="+strconv.Itoa(inv.Options.Count(spec.Name)))
			continue
		}
		v, _ := inv.Options.Value(spec.Name)
		env = append(env, key+"="+v)
	}
	return env
}
