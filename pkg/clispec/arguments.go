// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"fmt"
	"strconv"
)

// Arguments maps slot names to the tokens bound to them. Optional slots that
// received no token are absent; an empty variadic slot is present with no
// values.
type Arguments struct {
	order  []string
	kinds  map[string]SlotKind
	values map[string][]string
}

// NewArguments records bound values for sig. values[i] holds the tokens for
// slot i; a nil entry leaves a non-variadic slot unset.
func NewArguments(sig Signature, values [][]string) *Arguments {
	a := &Arguments{
		kinds:  make(map[string]SlotKind, sig.Len()),
		values: make(map[string][]string, sig.Len()),
	}
	for i, slot := range sig.slots {
		a.order = append(a.order, slot.Name)
		a.kinds[slot.Name] = slot.Kind
		var v []string
		if i < len(values) {
			v = values[i]
		}
		if v == nil && slot.Kind != VariadicSlot {
			continue
		}
		a.values[slot.Name] = append([]string{}, v...)
	}
	return a
}

// Has reports whether the slot received a value. Empty variadic slots count
// as set.
func (a *Arguments) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.values[name]
	return ok
}

// Get returns the first token bound to the slot.
func (a *Arguments) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v := a.values[name]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Value is Get without the presence flag.
func (a *Arguments) Value(name string) string {
	v, _ := a.Get(name)
	return v
}

// List returns every token bound to the slot. For a single slot it holds at
// most one element.
func (a *Arguments) List(name string) []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.values[name]...)
}

// Int parses the slot's first token as a base-10 integer.
func (a *Arguments) Int(name string) (int, error) {
	v, ok := a.Get(name)
	if !ok {
		return 0, fmt.Errorf("argument %q is not set", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q: invalid integer %q", name, v)
	}
	return n, nil
}

// Names returns the slot names in signature order, set or not.
func (a *Arguments) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// IsVariadic reports whether the named slot is the variadic one.
func (a *Arguments) IsVariadic(name string) bool {
	return a != nil && a.kinds[name] == VariadicSlot
}

// Positional returns all bound tokens in signature order.
func (a *Arguments) Positional() []string {
	if a == nil {
		return nil
	}
	var out []string
	for _, name := range a.order {
		out = append(out, a.values[name]...)
	}
	return out
}
