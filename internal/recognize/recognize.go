// SPDX-License-Identifier: MPL-2.0

// Package recognize matches option tokens against a command's declared
// options and consumes the ones it recognizes.
package recognize

import (
	"github.com/ftitreefly/cliroute/internal/argv"
	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Result is the outcome of one recognition pass.
type Result struct {
	// Options holds every recognized occurrence, keyed by option name.
	Options *clispec.OptionValues
	// Consumed lists the indices of tokens this pass consumed, in order.
	Consumed        []int
	Unrecognized    []clispec.UnrecognizedOption
	MissingValue    []string
	UnexpectedValue []string
	// ExitEarly is set when a help alias was seen. Recognition stops there.
	ExitEarly bool
}

// Recognize scans tokens left to right and marks recognized options, and the
// values they take, as consumed. Unrecognized option tokens are reported and
// left unconsumed; a value attached to one ("--unknown=x") is consumed with it
// so it cannot bind positionally.
//
// Tokens are updated in place. Literal tokens are never inspected or
// consumed as option values.
func Recognize(tokens argv.Tokens, set *clispec.OptionSet) Result {
	var res Result
	values := make(map[string][]string)

	consume := func(i int) {
		tokens.Consume(i)
		res.Consumed = append(res.Consumed, i)
	}
	attachedAt := func(i int) int {
		if j := i + 1; j < len(tokens) && tokens[j].Attached && !tokens[j].Consumed {
			return j
		}
		return -1
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Consumed || tok.Literal || tok.Role != argv.RoleOption {
			continue
		}

		if set.IsHelp(tok.Text) {
			consume(i)
			res.ExitEarly = true
			break
		}

		spec, ok := set.Lookup(tok.Text)
		if !ok {
			u := clispec.UnrecognizedOption{Alias: tok.Text, Position: i}
			if j := attachedAt(i); j >= 0 {
				u.Value, u.HasValue = tokens[j].Text, true
				consume(j)
				i = j
			}
			res.Unrecognized = append(res.Unrecognized, u)
			continue
		}

		consume(i)
		switch spec.Kind {
		case clispec.KeyedOption:
			j := tokens.Next(i)
			if j < 0 || tokens[j].Literal {
				res.MissingValue = append(res.MissingValue, tok.Text)
				continue
			}
			consume(j)
			values[spec.Name] = append(values[spec.Name], tokens[j].Text)
			i = j
		default:
			if j := attachedAt(i); j >= 0 {
				res.UnexpectedValue = append(res.UnexpectedValue, tok.Text)
				consume(j)
				i = j
				continue
			}
			values[spec.Name] = append(values[spec.Name], "")
		}
	}

	res.Options = clispec.NewOptionValues(values)
	return res
}

// Misuse returns the problems found as a single error, or nil.
func (r Result) Misuse(command string) *clispec.OptionMisuseError {
	if len(r.Unrecognized) == 0 && len(r.MissingValue) == 0 && len(r.UnexpectedValue) == 0 {
		return nil
	}
	return &clispec.OptionMisuseError{
		Command:         command,
		Unrecognized:    append([]clispec.UnrecognizedOption(nil), r.Unrecognized...),
		MissingValue:    append([]string(nil), r.MissingValue...),
		UnexpectedValue: append([]string(nil), r.UnexpectedValue...),
	}
}

// HasFatal reports whether the pass must abort dispatch. Missing and
// unexpected values always do; unrecognized options only under
// UnknownOptionsFatal.
func (r Result) HasFatal(policy clispec.UnknownOptionPolicy) bool {
	if len(r.MissingValue) > 0 || len(r.UnexpectedValue) > 0 {
		return true
	}
	return len(r.Unrecognized) > 0 && policy == clispec.UnknownOptionsFatal
}
