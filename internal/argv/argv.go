// SPDX-License-Identifier: MPL-2.0

// Package argv turns a raw argument vector into tagged tokens.
//
// Tokenization happens in two phases. Tokenize is command-independent and
// runs before routing: it classifies each argument as option-like or
// value-like, drops the "--" separator and splits "--key=value" forms.
// ExpandCombined runs once the routed command is known and splits short-flag
// clusters such as "-abc" against the command's declared options.
package argv

import (
	"strings"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Separator ends option processing; every later argument is a literal value.
const Separator = "--"

const (
	// RoleValue marks positional text.
	RoleValue Role = iota
	// RoleOption marks a token that looks like -x or --name.
	RoleOption
)

type (
	// Role tags a token as option-like or value-like.
	Role int

	// Token is one atomic unit of input. Tokens are never reordered; later
	// passes only flip Consumed.
	Token struct {
		Text     string
		Role     Role
		Consumed bool
		// Attached marks a value split off an option, from "--key=value",
		// "-k=value" or the tail of a short cluster like "-ofile".
		Attached bool
		// Literal marks a value that followed the "--" separator.
		Literal bool
	}

	// Tokens is an ordered token sequence.
	Tokens []Token
)

// String returns "value" or "option".
func (r Role) String() string {
	if r == RoleOption {
		return "option"
	}
	return "value"
}

// IsOptionLike reports whether s starts with one or two dashes followed by a
// non-digit character. "-", "--", "-5" and "-1.5" are values.
func IsOptionLike(s string) bool {
	var rest string
	switch {
	case strings.HasPrefix(s, "--"):
		rest = s[2:]
	case strings.HasPrefix(s, "-"):
		rest = s[1:]
	default:
		return false
	}
	return rest != "" && (rest[0] < '0' || rest[0] > '9')
}

// Tokenize classifies raw arguments. It never fails; validity is judged by
// later passes.
func Tokenize(raw []string) Tokens {
	out := make(Tokens, 0, len(raw))
	literal := false
	for _, s := range raw {
		switch {
		case literal:
			out = append(out, Token{Text: s, Role: RoleValue, Literal: true})
		case s == Separator:
			literal = true
		case !IsOptionLike(s):
			out = append(out, Token{Text: s, Role: RoleValue})
		default:
			out = append(out, splitAttached(s)...)
		}
	}
	return out
}

// splitAttached splits "--key=value" and "-k=value". At least one character
// must sit between the dashes and '='.
func splitAttached(s string) []Token {
	dashes := 1
	if strings.HasPrefix(s, "--") {
		dashes = 2
	}
	eq := strings.IndexByte(s, '=')
	if eq <= dashes {
		return []Token{{Text: s, Role: RoleOption}}
	}
	return []Token{
		{Text: s[:eq], Role: RoleOption},
		{Text: s[eq+1:], Role: RoleValue, Attached: true},
	}
}

// ExpandCombined splits single-dash clusters like "-abc" using the routed
// command's options. A cluster of declared zero-arity aliases becomes one
// token per character. When any declared character expects a value, only the
// first character is the option and the rest of the cluster is its attached
// value, so "-vofile" with flag -v yields "-v" and "ofile". Other clusters with
// an undeclared character are left intact. The input is not modified.
func ExpandCombined(tokens Tokens, set *clispec.OptionSet) Tokens {
	out := make(Tokens, 0, len(tokens))
	for _, tok := range tokens {
		if parts, ok := expandCluster(tok, set); ok {
			out = append(out, parts...)
			continue
		}
		out = append(out, tok)
	}
	return out
}

func expandCluster(tok Token, set *clispec.OptionSet) (Tokens, bool) {
	if set == nil || tok.Role != RoleOption || tok.Consumed || tok.Literal {
		return nil, false
	}
	if strings.HasPrefix(tok.Text, "--") || len([]rune(tok.Text)) <= 2 {
		return nil, false
	}
	if _, ok := set.Lookup(tok.Text); ok {
		return nil, false
	}
	cluster := []rune(tok.Text[1:])
	first := "-" + string(cluster[0])
	if _, ok := set.Lookup(first); !ok {
		return nil, false
	}

	declared, valued := true, false
	for _, r := range cluster {
		spec, ok := set.Lookup("-" + string(r))
		if !ok {
			declared = false
			continue
		}
		if spec.Kind.Arity() == 1 {
			valued = true
		}
	}

	switch {
	case valued:
		return Tokens{
			{Text: first, Role: RoleOption},
			{Text: string(cluster[1:]), Role: RoleValue, Attached: true},
		}, true
	case declared:
		parts := make(Tokens, 0, len(cluster))
		for _, r := range cluster {
			parts = append(parts, Token{Text: "-" + string(r), Role: RoleOption})
		}
		return parts, true
	default:
		return nil, false
	}
}

// Clone returns an independent copy.
func (t Tokens) Clone() Tokens {
	return append(Tokens(nil), t...)
}

// Consume marks the token at i as consumed.
func (t Tokens) Consume(i int) {
	t[i].Consumed = true
}

// Next returns the index of the first unconsumed token after i, or -1.
func (t Tokens) Next(i int) int {
	for j := i + 1; j < len(t); j++ {
		if !t[j].Consumed {
			return j
		}
	}
	return -1
}

// Remaining returns the text of every unconsumed token, in order.
func (t Tokens) Remaining() []string {
	var out []string
	for _, tok := range t {
		if !tok.Consumed {
			out = append(out, tok.Text)
		}
	}
	return out
}

// Passthrough returns the unconsumed tokens as the user typed them, with
// "--key=value" forms joined back together. Plain commands bind these.
func (t Tokens) Passthrough() []string {
	var out []string
	for i, tok := range t {
		if tok.Consumed {
			continue
		}
		if tok.Attached && i > 0 && !t[i-1].Consumed && t[i-1].Role == RoleOption && len(out) > 0 {
			out[len(out)-1] += "=" + tok.Text
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

// Texts returns the text of every token, in order.
func (t Tokens) Texts() []string {
	out := make([]string, len(t))
	for i, tok := range t {
		out[i] = tok.Text
	}
	return out
}
