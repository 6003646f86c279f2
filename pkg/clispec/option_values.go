// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"slices"

	"golang.org/x/exp/maps"
)

// OptionValues holds every recognized occurrence of every option, keyed by
// option name. Flags record an empty string per occurrence.
type OptionValues struct {
	values map[string][]string
}

// NewOptionValues copies values into a read-only view.
func NewOptionValues(values map[string][]string) *OptionValues {
	v := &OptionValues{values: make(map[string][]string, len(values))}
	for name, occ := range values {
		v.values[name] = append([]string{}, occ...)
	}
	return v
}

// Has reports whether the option occurred at least once.
func (v *OptionValues) Has(name string) bool {
	return v.Count(name) > 0
}

// Count returns how many times the option occurred.
func (v *OptionValues) Count(name string) int {
	if v == nil {
		return 0
	}
	return len(v.values[name])
}

// Value returns the value of the last occurrence. Repeated keyed options
// follow last-wins.
func (v *OptionValues) Value(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	occ := v.values[name]
	if len(occ) == 0 {
		return "", false
	}
	return occ[len(occ)-1], true
}

// Values returns every occurrence's value in input order.
func (v *OptionValues) Values(name string) []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.values[name]...)
}

// Names returns the names of options that occurred, sorted.
func (v *OptionValues) Names() []string {
	if v == nil || len(v.values) == 0 {
		return nil
	}
	names := maps.Keys(v.values)
	slices.Sort(names)
	return names
}

// Len returns the number of distinct options that occurred.
func (v *OptionValues) Len() int {
	if v == nil {
		return 0
	}
	return len(v.values)
}
