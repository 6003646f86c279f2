// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"slices"
	"testing"
)

func TestArguments(t *testing.T) {
	t.Parallel()

	sig := MustParseSignature("<src> [<dest>] [<rest>]...")
	args := NewArguments(sig, [][]string{{"a.txt"}, nil, nil})

	if v, ok := args.Get("src"); !ok || v != "a.txt" {
		t.Errorf("Get(src) = %q, %v", v, ok)
	}
	if args.Has("dest") {
		t.Error("Has(dest) = true for an unfilled optional slot")
	}
	if !args.Has("rest") || len(args.List("rest")) != 0 {
		t.Errorf("empty variadic: Has = %v, List = %v", args.Has("rest"), args.List("rest"))
	}
	if !args.IsVariadic("rest") || args.IsVariadic("src") {
		t.Error("IsVariadic mismatch")
	}
	if !slices.Equal(args.Names(), []string{"src", "dest", "rest"}) {
		t.Errorf("Names() = %v", args.Names())
	}
}

func TestArguments_Positional(t *testing.T) {
	t.Parallel()

	sig := MustParseSignature("<cmd> <args>...")
	args := NewArguments(sig, [][]string{{"run"}, {"-x", "y"}})
	if got := args.Positional(); !slices.Equal(got, []string{"run", "-x", "y"}) {
		t.Errorf("Positional() = %v", got)
	}
	if args.Value("args") != "-x" {
		t.Errorf("Value(args) = %q, want first token", args.Value("args"))
	}
}

func TestArguments_Int(t *testing.T) {
	t.Parallel()

	sig := MustParseSignature("<count> [<bad>] [<missing>]")
	args := NewArguments(sig, [][]string{{"42"}, {"four"}})

	if n, err := args.Int("count"); err != nil || n != 42 {
		t.Errorf("Int(count) = %d, %v", n, err)
	}
	if _, err := args.Int("bad"); err == nil {
		t.Error("Int(bad) succeeded")
	}
	if _, err := args.Int("missing"); err == nil {
		t.Error("Int(missing) succeeded")
	}
}

func TestOptionValues(t *testing.T) {
	t.Parallel()

	src := map[string][]string{"output": {"a", "b"}, "verbose": {"", ""}}
	v := NewOptionValues(src)
	src["output"][0] = "mutated"

	if got, ok := v.Value("output"); !ok || got != "b" {
		t.Errorf("Value(output) = %q, %v; want last occurrence", got, ok)
	}
	if got := v.Values("output"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Values(output) = %v", got)
	}
	if v.Count("verbose") != 2 || !v.Has("verbose") || v.Has("quiet") {
		t.Error("Count/Has mismatch")
	}
	if !slices.Equal(v.Names(), []string{"output", "verbose"}) || v.Len() != 2 {
		t.Errorf("Names() = %v, Len() = %d", v.Names(), v.Len())
	}

	var empty *OptionValues
	if empty.Has("x") || empty.Len() != 0 || empty.Names() != nil {
		t.Error("nil OptionValues reported content")
	}
	if names := NewOptionValues(nil).Names(); names != nil {
		t.Errorf("empty Names() = %v, want nil", names)
	}
}
