// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"regexp"
	"strings"
)

const (
	// RequiredSlot must receive exactly one token.
	RequiredSlot SlotKind = iota
	// OptionalSlot receives one token when enough remain.
	OptionalSlot
	// VariadicSlot receives every remaining token. It is always last.
	VariadicSlot
)

const variadicMarker = "..."

var slotNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

type (
	// SlotKind classifies a positional parameter.
	SlotKind int

	// Slot is one named positional parameter of a signature.
	Slot struct {
		Name     string
		Kind     SlotKind
		Position int
		// AtLeastOne marks a variadic slot that must collect one or more tokens.
		AtLeastOne bool
	}

	// Signature is the parsed, ordered list of a command's positional slots.
	// The zero value accepts no positional arguments.
	Signature struct {
		source string
		slots  []Slot
	}
)

// String returns a short label for the kind.
func (k SlotKind) String() string {
	switch k {
	case RequiredSlot:
		return "required"
	case OptionalSlot:
		return "optional"
	case VariadicSlot:
		return "variadic"
	default:
		return "unknown"
	}
}

// Required reports whether the slot contributes to the signature minimum.
func (s Slot) Required() bool {
	return s.Kind == RequiredSlot || (s.Kind == VariadicSlot && s.AtLeastOne)
}

// Usage renders the slot in canonical form.
func (s Slot) Usage() string {
	switch s.Kind {
	case OptionalSlot:
		return "[<" + s.Name + ">]"
	case VariadicSlot:
		if s.AtLeastOne {
			return "<" + s.Name + ">..."
		}
		return "[<" + s.Name + ">]..."
	default:
		return "<" + s.Name + ">"
	}
}

// ParseSignature parses a whitespace-separated signature such as
// "<src> [<dest>] <extra>...".
//
// Accepted slot forms are <name> (required), [<name>] (optional),
// <name>... (one or more), and [<name>]..., [<name>...], ...name or
// ...<name> (zero or more). A standalone "..." makes the preceding slot
// variadic. Required slots may not follow optional ones, and at most one
// variadic slot may appear, in last position.
func ParseSignature(sig string) (Signature, error) {
	fields := strings.Fields(sig)
	s := Signature{source: strings.Join(fields, " ")}
	seen := make(map[string]bool, len(fields))
	variadicAt := -1
	sawOptional := false

	fail := func(token, reason string) (Signature, error) {
		return Signature{}, &SignatureError{Signature: sig, Token: token, Reason: reason}
	}

	for _, field := range fields {
		if field == variadicMarker {
			if len(s.slots) == 0 {
				return fail(field, "variadic marker has no preceding slot")
			}
			if variadicAt >= 0 {
				return fail(field, "more than one variadic marker")
			}
			last := &s.slots[len(s.slots)-1]
			last.AtLeastOne = last.Kind == RequiredSlot
			last.Kind = VariadicSlot
			variadicAt = last.Position
			continue
		}

		slot, ok := parseSlot(field)
		if !ok {
			return fail(field, "malformed slot")
		}
		if variadicAt >= 0 {
			if slot.Kind == VariadicSlot {
				return fail(field, "more than one variadic marker")
			}
			return fail(field, "variadic slot must be last")
		}
		if !slotNamePattern.MatchString(slot.Name) {
			return fail(field, "invalid slot name")
		}
		if seen[slot.Name] {
			return fail(field, "duplicate slot name")
		}
		if slot.Required() && sawOptional {
			return fail(field, "required slot follows an optional slot")
		}
		if !slot.Required() {
			sawOptional = true
		}
		slot.Position = len(s.slots)
		if slot.Kind == VariadicSlot {
			variadicAt = slot.Position
		}
		seen[slot.Name] = true
		s.slots = append(s.slots, slot)
	}
	return s, nil
}

// MustParseSignature is ParseSignature for signatures known to be valid.
func MustParseSignature(sig string) Signature {
	s, err := ParseSignature(sig)
	if err != nil {
		panic(err)
	}
	return s
}

func parseSlot(field string) (Slot, bool) {
	t := field
	variadic, prefixed := false, false
	switch {
	case strings.HasPrefix(t, variadicMarker):
		t = t[len(variadicMarker):]
		variadic, prefixed = true, true
	case strings.HasSuffix(t, variadicMarker):
		t = strings.TrimSuffix(t, variadicMarker)
		variadic = true
	}

	optional := false
	if len(t) >= 2 && t[0] == '[' && t[len(t)-1] == ']' {
		optional = true
		t = t[1 : len(t)-1]
		if strings.HasSuffix(t, variadicMarker) {
			if variadic {
				return Slot{}, false
			}
			t = strings.TrimSuffix(t, variadicMarker)
			variadic = true
		}
	}

	switch {
	case len(t) >= 2 && t[0] == '<' && t[len(t)-1] == '>':
		t = t[1 : len(t)-1]
	case prefixed && !optional:
		// ...name is the only bare form.
	default:
		return Slot{}, false
	}
	if t == "" {
		return Slot{}, false
	}

	slot := Slot{Name: t}
	switch {
	case variadic:
		slot.Kind = VariadicSlot
		slot.AtLeastOne = !optional && !prefixed
	case optional:
		slot.Kind = OptionalSlot
	default:
		slot.Kind = RequiredSlot
	}
	return slot, true
}

// Slots returns a copy of the slots in declaration order.
func (s Signature) Slots() []Slot {
	return append([]Slot(nil), s.slots...)
}

// Len returns the number of slots.
func (s Signature) Len() int { return len(s.slots) }

// IsEmpty reports whether the signature accepts no positional arguments.
func (s Signature) IsEmpty() bool { return len(s.slots) == 0 }

// Min returns the minimum number of tokens the signature accepts.
func (s Signature) Min() int {
	n := 0
	for _, slot := range s.slots {
		if slot.Required() {
			n++
		}
	}
	return n
}

// Max returns the maximum number of tokens the signature accepts, or -1 when
// a variadic slot makes it unbounded.
func (s Signature) Max() int {
	if _, ok := s.Variadic(); ok {
		return -1
	}
	return len(s.slots)
}

// Variadic returns the variadic slot, if any.
func (s Signature) Variadic() (Slot, bool) {
	if n := len(s.slots); n > 0 && s.slots[n-1].Kind == VariadicSlot {
		return s.slots[n-1], true
	}
	return Slot{}, false
}

// Usage renders the slots in canonical form, e.g. "<src> [<dest>]...".
func (s Signature) Usage() string {
	parts := make([]string, 0, len(s.slots))
	for _, slot := range s.slots {
		parts = append(parts, slot.Usage())
	}
	return strings.Join(parts, " ")
}

// String returns the signature as written, with whitespace normalized.
func (s Signature) String() string { return s.source }
