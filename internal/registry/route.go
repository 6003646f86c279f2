// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ftitreefly/cliroute/internal/argv"
	"github.com/ftitreefly/cliroute/pkg/clispec"
)

const (
	// MatchName means the leading words named the command.
	MatchName MatchReason = iota
	// MatchAlias means the leading words named an alias of the command.
	MatchAlias
	// MatchDefault means no name matched and the default command was used.
	MatchDefault
	// MatchHelpOption means a leading -h/--help selected the help command.
	MatchHelpOption
	// MatchVersionOption means a leading --version selected the version command.
	MatchVersionOption
	// MatchEmptyHelp means empty input fell through to the help command.
	MatchEmptyHelp
)

const (
	maxSuggestions = 3
	// Edit distance tolerated for typo suggestions like "depoly".
	maxTypoDistance = 2
)

// VersionAlias is the leading option that selects the version command.
const VersionAlias = "--version"

type (
	// MatchReason records which routing rule selected the command.
	MatchReason int

	// Match is a successful routing result.
	Match struct {
		Command *clispec.Descriptor
		// Consumed are the token indices that identified the command.
		Consumed []int
		// Words are the consumed tokens' text, as typed.
		Words  []string
		Reason MatchReason
	}
)

// String returns a short label for the reason.
func (m MatchReason) String() string {
	switch m {
	case MatchName:
		return "name"
	case MatchAlias:
		return "alias"
	case MatchDefault:
		return "default"
	case MatchHelpOption:
		return "help option"
	case MatchVersionOption:
		return "version option"
	case MatchEmptyHelp:
		return "empty input"
	default:
		return "unknown"
	}
}

// Route selects the command named by the leading run of unconsumed value
// tokens, preferring the longest multi-word name. Matched tokens are marked
// consumed. When nothing matches, the default command, a leading help or
// version option, and finally the help command for empty input are tried in
// that order before a *clispec.RoutingError is returned.
func (r *Registry) Route(tokens argv.Tokens) (Match, error) {
	idx, words, matchable := leadingWords(tokens)

	for n := min(matchable, r.maxWords); n > 0; n-- {
		d, viaAlias, ok := r.resolve(strings.Join(words[:n], " "))
		if !ok {
			continue
		}
		for _, i := range idx[:n] {
			tokens.Consume(i)
		}
		reason := MatchName
		if viaAlias {
			reason = MatchAlias
		}
		return Match{Command: d, Consumed: idx[:n], Words: words[:n], Reason: reason}, nil
	}

	if d, ok := r.Default(); ok {
		return Match{Command: d, Reason: MatchDefault}, nil
	}

	if len(words) == 0 {
		if first := tokens.Next(-1); first >= 0 && tokens[first].Role == argv.RoleOption {
			text := tokens[first].Text
			if d, ok := r.Help(); ok && slices.Contains(clispec.HelpAliases(), text) {
				tokens.Consume(first)
				return Match{Command: d, Consumed: []int{first}, Words: []string{text}, Reason: MatchHelpOption}, nil
			}
			if d, ok := r.Version(); ok && text == VersionAlias {
				tokens.Consume(first)
				return Match{Command: d, Consumed: []int{first}, Words: []string{text}, Reason: MatchVersionOption}, nil
			}
		}
		if d, ok := r.Help(); ok && len(tokens.Remaining()) == 0 {
			return Match{Command: d, Reason: MatchEmptyHelp}, nil
		}
	}

	return Match{}, r.notFound(words)
}

// leadingWords collects the unconsumed, non-literal value tokens at the start
// of the input, stopping at the first option or literal. A token holding
// whitespace ends the run: it is returned for error reporting but is not
// counted in matchable, so one argument can never stand for several name
// words.
func leadingWords(tokens argv.Tokens) (idx []int, words []string, matchable int) {
	for i, tok := range tokens {
		if tok.Consumed {
			continue
		}
		if tok.Role != argv.RoleValue || tok.Literal || tok.Attached {
			break
		}
		idx = append(idx, i)
		words = append(words, tok.Text)
		if strings.ContainsFunc(tok.Text, unicode.IsSpace) {
			return idx, words, len(words) - 1
		}
	}
	return idx, words, len(words)
}

func (r *Registry) notFound(words []string) *clispec.RoutingError {
	err := &clispec.RoutingError{Words: append([]string(nil), words...)}
	if len(words) == 0 {
		return err
	}

	limit := min(len(words), max(r.maxWords, 1))
	for n := limit; n > 0; n-- {
		prefix := strings.Join(words[:n], " ")
		if children := r.Children(prefix); len(children) > 0 {
			for _, d := range children {
				err.Namespace = append(err.Namespace, d.Name())
			}
			break
		}
	}

	err.Suggestions = r.Suggest(strings.Join(words[:limit], " "))
	return err
}

// Suggest returns up to three registered names or aliases close to input,
// best first. A candidate qualifies when input is a case-insensitive
// subsequence of it or when it is within a small edit distance.
func (r *Registry) Suggest(input string) []string {
	if input == "" {
		return nil
	}
	candidates := make([]string, 0, r.commands.Len()+len(r.aliases))
	r.commands.Scan(func(name string, _ *clispec.Descriptor) bool {
		candidates = append(candidates, name)
		return true
	})
	for alias := range r.aliases {
		candidates = append(candidates, alias)
	}

	type scored struct {
		name     string
		distance int
	}
	best := make(map[string]int)
	for _, rank := range fuzzy.RankFindFold(input, candidates) {
		if rank.Distance <= len(input) {
			best[rank.Target] = rank.Distance
		}
	}
	lowered := strings.ToLower(input)
	for _, c := range candidates {
		if _, ok := best[c]; ok {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lowered, strings.ToLower(c)); d <= maxTypoDistance {
			best[c] = d
		}
	}

	ranked := make([]scored, 0, len(best))
	for name, d := range best {
		ranked = append(ranked, scored{name: name, distance: d})
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.name, b.name))
	})

	out := make([]string, 0, min(len(ranked), maxSuggestions))
	for _, s := range ranked[:min(len(ranked), maxSuggestions)] {
		out = append(out, s.name)
	}
	return out
}

// Resolve looks up the command named exactly by words, as the help command
// does for its arguments. A miss returns the same *clispec.RoutingError as
// Route, with suggestions and namespace children.
func (r *Registry) Resolve(words []string) (*clispec.Descriptor, error) {
	if d, _, ok := r.resolve(clispec.NormalizeName(strings.Join(words, " "))); ok {
		return d, nil
	}
	return nil, r.notFound(words)
}
