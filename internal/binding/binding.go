// SPDX-License-Identifier: MPL-2.0

// Package binding assigns positional tokens to signature slots.
package binding

import (
	"errors"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Bind fills the slots of sig with values in order. Required slots take one
// token each, optional slots take one when any remain, and a variadic slot
// takes the rest. Running out of tokens for a required slot, or having
// tokens left with no variadic slot, returns a *clispec.BindingError.
//
// Values are bound as text; interpreting them is left to the executor.
func Bind(sig clispec.Signature, values []string) (*clispec.Arguments, error) {
	slots := sig.Slots()
	bound := make([][]string, len(slots))
	pos := 0

	for i, slot := range slots {
		switch slot.Kind {
		case clispec.RequiredSlot:
			if pos >= len(values) {
				return nil, tooFew(sig, values, slots[i:])
			}
			bound[i] = values[pos : pos+1]
			pos++
		case clispec.OptionalSlot:
			if pos < len(values) {
				bound[i] = values[pos : pos+1]
				pos++
			}
		case clispec.VariadicSlot:
			rest := values[pos:]
			if slot.AtLeastOne && len(rest) == 0 {
				return nil, tooFew(sig, values, slots[i:])
			}
			bound[i] = append([]string{}, rest...)
			pos = len(values)
		}
	}

	if pos < len(values) {
		return nil, &clispec.BindingError{
			Kind:      clispec.TooManyArguments,
			Signature: sig.Usage(),
			Provided:  append([]string(nil), values...),
			Extra:     append([]string(nil), values[pos:]...),
		}
	}
	return clispec.NewArguments(sig, bound), nil
}

// BindCommand is Bind against d's signature, with d's name recorded in any
// BindingError.
func BindCommand(d *clispec.Descriptor, values []string) (*clispec.Arguments, error) {
	args, err := Bind(d.Signature(), values)
	var bindErr *clispec.BindingError
	if errors.As(err, &bindErr) {
		bindErr.Command = d.Name()
	}
	return args, err
}

func tooFew(sig clispec.Signature, values []string, unfilled []clispec.Slot) *clispec.BindingError {
	var missing []string
	for _, s := range unfilled {
		if s.Required() {
			missing = append(missing, s.Usage())
		}
	}
	return &clispec.BindingError{
		Kind:      clispec.TooFewArguments,
		Signature: sig.Usage(),
		Provided:  append([]string(nil), values...),
		Missing:   missing,
	}
}
