// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/ftitreefly/cliroute/internal/argv"
	"github.com/ftitreefly/cliroute/pkg/clispec"
)

func TestRoute_LongestPrefix(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.RegisterAll(cmd(t, "a", "[<x>]..."), cmd(t, "a b", "[<x>]...")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in        []string
		command   string
		consumed  []int
		remaining []string
	}{
		{[]string{"a", "b", "c"}, "a b", []int{0, 1}, []string{"c"}},
		{[]string{"a", "c"}, "a", []int{0}, []string{"c"}},
		{[]string{"a"}, "a", []int{0}, nil},
		{[]string{"a", "-v", "b"}, "a", []int{0}, []string{"-v", "b"}},
	}
	for _, tt := range tests {
		tokens := argv.Tokenize(tt.in)
		m, err := r.Route(tokens)
		if err != nil {
			t.Fatalf("Route(%v) error: %v", tt.in, err)
		}
		if m.Command.Name() != tt.command || m.Reason != MatchName {
			t.Errorf("Route(%v) = %q (%v), want %q", tt.in, m.Command.Name(), m.Reason, tt.command)
		}
		if !slices.Equal(m.Consumed, tt.consumed) {
			t.Errorf("Route(%v) consumed %v, want %v", tt.in, m.Consumed, tt.consumed)
		}
		if got := tokens.Remaining(); !slices.Equal(got, tt.remaining) {
			t.Errorf("Route(%v) remaining %v, want %v", tt.in, got, tt.remaining)
		}
	}
}

func TestRoute_WordWithSpaceIsNotSeveralNameWords(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.RegisterAll(cmd(t, "remote", "[<x>]..."), cmd(t, "remote add", "<name>")); err != nil {
		t.Fatal(err)
	}

	tokens := argv.Tokenize([]string{"remote add", "origin"})
	_, err := r.Route(tokens)
	var rerr *clispec.RoutingError
	if !errors.As(err, &rerr) || !slices.Equal(rerr.Words, []string{"remote add"}) {
		t.Fatalf("Route() error = %v, want RoutingError for [remote add]", err)
	}
	if got := tokens.Remaining(); len(got) != 2 {
		t.Errorf("Route() consumed tokens on failure: remaining %v", got)
	}

	tokens = argv.Tokenize([]string{"remote", "add origin"})
	m, err := r.Route(tokens)
	if err != nil {
		t.Fatalf("Route() error: %v", err)
	}
	if m.Command.Name() != "remote" || !slices.Equal(tokens.Remaining(), []string{"add origin"}) {
		t.Errorf("Route() = %q, remaining %v", m.Command.Name(), tokens.Remaining())
	}
}

func TestRoute_Alias(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Register(cmd(t, "remote add", "<name>")); err != nil {
		t.Fatal(err)
	}
	if err := r.Alias("ra", "remote add"); err != nil {
		t.Fatal(err)
	}

	tokens := argv.Tokenize([]string{"ra", "origin"})
	m, err := r.Route(tokens)
	if err != nil {
		t.Fatalf("Route() error: %v", err)
	}
	if m.Command.Name() != "remote add" || m.Reason != MatchAlias || !slices.Equal(m.Words, []string{"ra"}) {
		t.Errorf("Route() = %+v", m)
	}
}

func TestRoute_Fallbacks(t *testing.T) {
	t.Parallel()

	help := cmd(t, "help", "[<command>]...")
	version := cmd(t, "version", "")

	tests := []struct {
		name     string
		withDef  bool
		in       []string
		command  string
		reason   MatchReason
		consumed int
		wantErr  bool
	}{
		{"empty input routes to help", false, nil, "help", MatchEmptyHelp, 0, false},
		{"leading -h", false, []string{"-h"}, "help", MatchHelpOption, 1, false},
		{"leading --help with words after", false, []string{"--help", "build"}, "help", MatchHelpOption, 1, false},
		{"leading --version", false, []string{"--version"}, "version", MatchVersionOption, 1, false},
		{"default wins over help", true, nil, "build", MatchDefault, 0, false},
		{"default takes unknown words", true, []string{"x", "y"}, "build", MatchDefault, 0, false},
		{"unknown option", false, []string{"--nope"}, "", 0, 0, true},
		{"unknown word", false, []string{"deploy"}, "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := New()
			if err := r.SetHelp(help); err != nil {
				t.Fatal(err)
			}
			if err := r.SetVersion(version); err != nil {
				t.Fatal(err)
			}
			if err := r.Register(cmd(t, "build", "[<x>]...")); err != nil {
				t.Fatal(err)
			}
			if tt.withDef {
				if err := r.SetDefault("build"); err != nil {
					t.Fatal(err)
				}
			}

			m, err := r.Route(argv.Tokenize(tt.in))
			if tt.wantErr {
				if !errors.Is(err, clispec.ErrCommandNotFound) {
					t.Fatalf("Route(%v) error = %v, want ErrCommandNotFound", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Route(%v) error: %v", tt.in, err)
			}
			if m.Command.Name() != tt.command || m.Reason != tt.reason || len(m.Consumed) != tt.consumed {
				t.Errorf("Route(%v) = %q/%v consumed %v", tt.in, m.Command.Name(), m.Reason, m.Consumed)
			}
		})
	}
}

func TestRoute_EmptyWithoutHelpFails(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.Register(cmd(t, "build", "")); err != nil {
		t.Fatal(err)
	}
	_, err := r.Route(argv.Tokenize(nil))

	var rerr *clispec.RoutingError
	if !errors.As(err, &rerr) {
		t.Fatalf("Route(empty) error = %v, want *RoutingError", err)
	}
	if len(rerr.Words) != 0 {
		t.Errorf("Words = %v, want none", rerr.Words)
	}
}

func TestRoute_NotFoundDetails(t *testing.T) {
	t.Parallel()

	r := New()
	err := r.RegisterAll(
		cmd(t, "deploy", ""),
		cmd(t, "remote add", ""),
		cmd(t, "remote remove", ""),
		cmd(t, "status", ""),
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in         []string
		suggestion string
		namespace  []string
	}{
		{[]string{"depoly"}, "deploy", nil},
		{[]string{"remote", "ad", "x"}, "remote add", []string{"remote add", "remote remove"}},
		{[]string{"remote"}, "remote add", []string{"remote add", "remote remove"}},
		{[]string{"stat"}, "status", nil},
	}
	for _, tt := range tests {
		_, err := r.Route(argv.Tokenize(tt.in))
		var rerr *clispec.RoutingError
		if !errors.As(err, &rerr) {
			t.Fatalf("Route(%v) error = %v, want *RoutingError", tt.in, err)
		}
		if len(rerr.Suggestions) == 0 || rerr.Suggestions[0] != tt.suggestion {
			t.Errorf("Route(%v) suggestions = %v, want %q first", tt.in, rerr.Suggestions, tt.suggestion)
		}
		if !slices.Equal(rerr.Namespace, tt.namespace) {
			t.Errorf("Route(%v) namespace = %v, want %v", tt.in, rerr.Namespace, tt.namespace)
		}
	}
}

func TestRoute_Idempotent(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.RegisterAll(cmd(t, "a", "[<x>]..."), cmd(t, "a b", "[<x>]...")); err != nil {
		t.Fatal(err)
	}
	raw := []string{"a", "b", "c"}
	first, err1 := r.Route(argv.Tokenize(raw))
	second, err2 := r.Route(argv.Tokenize(raw))
	if err1 != nil || err2 != nil {
		t.Fatalf("Route errors: %v, %v", err1, err2)
	}
	if first.Command != second.Command || !slices.Equal(first.Consumed, second.Consumed) {
		t.Errorf("routing differs between runs: %+v vs %+v", first, second)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := New()
	if err := r.RegisterAll(cmd(t, "remote add", ""), cmd(t, "remote remove", "")); err != nil {
		t.Fatal(err)
	}

	d, err := r.Resolve([]string{"remote", "add"})
	if err != nil || d.Name() != "remote add" {
		t.Fatalf("Resolve(remote add) = %v, %v", d, err)
	}

	_, err = r.Resolve([]string{"remote"})
	var rerr *clispec.RoutingError
	if !errors.As(err, &rerr) {
		t.Fatalf("Resolve(remote) error = %v, want *RoutingError", err)
	}
	if !slices.Equal(rerr.Namespace, []string{"remote add", "remote remove"}) {
		t.Errorf("Namespace = %v", rerr.Namespace)
	}
}
