// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"

	"github.com/google/uuid"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

type (
	// TraceToken is one token as the pipeline left it.
	TraceToken struct {
		Text     string
		Role     string
		Consumed bool
		Attached bool
		Literal  bool
	}

	// TraceSlot is one signature slot and what was bound to it.
	TraceSlot struct {
		Name   string
		Kind   string
		Set    bool
		Values []string
	}

	// Trace describes how an argument vector would be dispatched, without
	// executing anything.
	Trace struct {
		ID      string
		Input   []string
		Tokens  []TraceToken
		Command string
		// Reason names the routing rule that matched, e.g. "name" or "alias".
		Reason  string
		Words   []string
		Options map[string][]string
		// Recognized is false for plain commands, which skip option recognition.
		Recognized   bool
		Unrecognized []clispec.UnrecognizedOption
		ExitEarly    bool
		Slots        []TraceSlot
		// ErrorKind is set when the pipeline failed; Trace also returns the error.
		ErrorKind ErrorKind
	}
)

// Trace runs every stage up to execution on raw and reports what each one
// did. The returned error is the failure the same input would dispatch to;
// the trace is filled as far as the pipeline got.
func (c *CLI) Trace(_ context.Context, raw []string) (*Trace, error) {
	p := &plan{id: uuid.NewString(), input: append([]string(nil), raw...)}
	err := c.resolve(p, c.logger.With("invocation", p.id))

	t := &Trace{
		ID:           p.id,
		Input:        p.input,
		Words:        p.match.Words,
		Recognized:   p.recorded,
		Unrecognized: p.recog.Unrecognized,
		ExitEarly:    p.exitEarly,
		ErrorKind:    classify(err),
	}
	for _, tok := range p.tokens {
		t.Tokens = append(t.Tokens, TraceToken{
			Text:     tok.Text,
			Role:     tok.Role.String(),
			Consumed: tok.Consumed,
			Attached: tok.Attached,
			Literal:  tok.Literal,
		})
	}
	if d := p.match.Command; d != nil {
		t.Command = d.Name()
		t.Reason = p.match.Reason.String()
	}
	if opts := p.recog.Options; opts != nil {
		t.Options = make(map[string][]string, opts.Len())
		for _, name := range opts.Names() {
			t.Options[name] = opts.Values(name)
		}
	}
	if p.args != nil {
		for _, s := range p.match.Command.Signature().Slots() {
			t.Slots = append(t.Slots, TraceSlot{
				Name:   s.Name,
				Kind:   s.Kind.String(),
				Set:    p.args.Has(s.Name),
				Values: p.args.List(s.Name),
			})
		}
	}
	return t, err
}
