// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ftitreefly/cliroute/internal/usage"
	"github.com/ftitreefly/cliroute/pkg/clispec"
	"github.com/ftitreefly/cliroute/pkg/types"
)

// recorder captures the last invocation seen by an executor.
type recorder struct {
	calls int
	last  *clispec.Invocation
	err   error
}

func (r *recorder) Execute(_ context.Context, inv *clispec.Invocation) error {
	r.calls++
	r.last = inv
	return r.err
}

type harness struct {
	cli    *CLI
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	opts = append([]Option{
		WithOutput(h.stdout, h.stderr),
		WithFormatter(usage.New(usage.Options{NoColor: true})),
	}, opts...)
	h.cli = New("tool", opts...)
	return h
}

func (h *harness) register(t *testing.T, b *clispec.Builder) *recorder {
	t.Helper()

	rec := &recorder{}
	if err := h.cli.Register(b.Run(rec).MustBuild()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	return rec
}

// add registers a command that keeps its own executor.
func (h *harness) add(t *testing.T, b *clispec.Builder) {
	t.Helper()

	if err := h.cli.Register(b.MustBuild()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
}

func TestDispatch_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("optional slot left unset", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		rec := h.register(t, clispec.NewCommand("convert").Signature("<in> [<out>]"))
		out := h.cli.Dispatch(context.Background(), []string{"convert", "file.txt"})
		if out.Kind != Dispatched {
			t.Fatalf("Outcome = %+v", out)
		}
		if rec.last.Args.Value("in") != "file.txt" || rec.last.Args.Has("out") {
			t.Errorf("args: in=%q out set=%v", rec.last.Args.Value("in"), rec.last.Args.Has("out"))
		}
	})

	t.Run("flag then positional", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		rec := h.register(t, clispec.NewCommand("cat").Signature("<file>").Flag("Verbose", "-v", "--verbose"))
		out := h.cli.Dispatch(context.Background(), []string{"cat", "--verbose", "file.txt"})
		if out.Kind != Dispatched {
			t.Fatalf("Outcome = %+v", out)
		}
		if !rec.last.Options.Has("verbose") || rec.last.Args.Value("file") != "file.txt" {
			t.Errorf("verbose=%v file=%q", rec.last.Options.Has("verbose"), rec.last.Args.Value("file"))
		}
	})

	t.Run("keyed option then positional", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		rec := h.register(t, clispec.NewCommand("build").Signature("<in>").Keyed("Output", "-o", "--output"))
		out := h.cli.Dispatch(context.Background(), []string{"build", "-o", "out.txt", "in.txt"})
		if out.Kind != Dispatched {
			t.Fatalf("Outcome = %+v", out)
		}
		if v, _ := rec.last.Options.Value("output"); v != "out.txt" || rec.last.Args.Value("in") != "in.txt" {
			t.Errorf("output=%q in=%q", v, rec.last.Args.Value("in"))
		}
	})

	t.Run("longest multi-word name", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		a := h.register(t, clispec.NewCommand("a").Signature("[<rest>]..."))
		ab := h.register(t, clispec.NewCommand("a b").Signature("[<rest>]..."))

		h.cli.Dispatch(context.Background(), []string{"a", "b", "c"})
		h.cli.Dispatch(context.Background(), []string{"a", "c"})
		if ab.calls != 1 || !slices.Equal(ab.last.Args.List("rest"), []string{"c"}) {
			t.Errorf("'a b' calls=%d", ab.calls)
		}
		if a.calls != 1 || !slices.Equal(a.last.Args.List("rest"), []string{"c"}) {
			t.Errorf("'a' calls=%d", a.calls)
		}
	})
}

func TestDispatch_HelpExitsEarly(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("deploy").Describe("Deploy it").Signature("<env>").Keyed("Tag", "-t", "--tag"))

	// Missing <env> and a dangling --tag would both fail; help wins.
	out := h.cli.Dispatch(context.Background(), []string{"deploy", "--help", "--tag"})
	if out.Kind != ExitEarly || out.Err != nil || out.ExitCode() != types.ExitSuccess {
		t.Fatalf("Outcome = %+v", out)
	}
	if rec.calls != 0 {
		t.Error("executor ran despite --help")
	}
	if !strings.Contains(h.stdout.String(), "Usage: tool deploy <env> [options]") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestDispatch_FatalUnknownOptionReportedOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("build").Signature("[<x>]"))

	code := h.cli.Run(context.Background(), []string{"build", "--fast"})
	if code != types.ExitFailure {
		t.Errorf("Run() = %v, want 1", code)
	}
	if rec.calls != 0 {
		t.Error("executor ran despite a fatal unknown option")
	}
	if n := strings.Count(h.stderr.String(), "--fast"); n != 1 {
		t.Errorf("--fast reported %d times:\n%s", n, h.stderr.String())
	}

	out := newHarness(t)
	out.register(t, clispec.NewCommand("build"))
	o := out.cli.Dispatch(context.Background(), []string{"build", "--fast"})
	if o.Kind != Failed || o.ErrorKind != SilentAbort || !o.Silent() {
		t.Fatalf("Outcome = %+v", o)
	}
	if !errors.Is(o.Err, clispec.ErrSilentAbort) || !errors.Is(o.Err, clispec.ErrOptionMisuse) {
		t.Errorf("Err = %v", o.Err)
	}
}

func TestDispatch_AdvisoryUnknownOption(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("build").Signature("<target>").UnknownOptions(clispec.UnknownOptionsAdvisory))

	out := h.cli.Dispatch(context.Background(), []string{"build", "--fast", "all"})
	if out.Kind != Dispatched {
		t.Fatalf("Outcome = %+v", out)
	}
	if rec.last.Args.Value("target") != "all" {
		t.Errorf("target = %q, want the unrecognized option kept out of binding", rec.last.Args.Value("target"))
	}
	if !strings.Contains(h.stderr.String(), "Unrecognized options ignored") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestDispatch_ValueMisuseAlwaysFatal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("build").Keyed("Out", "-o").UnknownOptions(clispec.UnknownOptionsAdvisory))

	code := h.cli.Run(context.Background(), []string{"build", "-o"})
	if code != types.ExitFailure || rec.calls != 0 {
		t.Errorf("Run() = %v, calls = %d", code, rec.calls)
	}
	if n := strings.Count(h.stderr.String(), "-o requires a value"); n != 1 {
		t.Errorf("missing value reported %d times:\n%s", n, h.stderr.String())
	}
}

func TestDispatch_ValuedClusterTreatsTailAsValue(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("c").Flag("Verbose", "-v").Keyed("Out", "-o"))

	out := h.cli.Dispatch(context.Background(), []string{"c", "-vofile"})
	if out.Kind != Failed || rec.calls != 0 {
		t.Fatalf("Outcome = %+v, calls = %d", out, rec.calls)
	}
	if !strings.Contains(h.stderr.String(), "-v does not take a value") {
		t.Errorf("stderr = %q", h.stderr.String())
	}

	h.stderr.Reset()
	out = h.cli.Dispatch(context.Background(), []string{"c", "-ofile"})
	if out.Kind != Dispatched {
		t.Fatalf("Outcome = %+v", out)
	}
	if v, _ := rec.last.Options.Value("o"); v != "file" {
		t.Errorf("Value(o) = %q, want file", v)
	}
}

func TestDispatch_PlainCommandBindsOptionLikeTokens(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("exec").Signature("<prog> [<args>]...").Plain())

	out := h.cli.Dispatch(context.Background(), []string{"exec", "ls", "-la", "--color=auto", "-h"})
	if out.Kind != Dispatched {
		t.Fatalf("Outcome = %+v", out)
	}
	want := []string{"-la", "--color=auto", "-h"}
	if got := rec.last.Args.List("args"); !slices.Equal(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
	if rec.last.Options.Len() != 0 {
		t.Error("plain command received options")
	}
}

func TestDispatch_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []string
		kind   ErrorKind
		target error
		stderr string
	}{
		{"unknown command", []string{"deplyo"}, RoutingFailure, clispec.ErrCommandNotFound, "Did you mean:"},
		{"too few", []string{"deploy"}, BindingFailure, clispec.ErrNotEnoughArguments, "✗ Missing required arguments!"},
		{"too many", []string{"deploy", "a", "b"}, BindingFailure, clispec.ErrTooManyArguments, "✗ Too many arguments!"},
		{"executor error", []string{"deploy", "boom"}, ExecutionFailure, errBoom, "✗ boom"},
		{"leading option without default", []string{"-x"}, RoutingFailure, clispec.ErrCommandNotFound, "✗ No command specified!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.add(t, clispec.NewCommand("deploy").Signature("<env>").RunFunc(func(_ context.Context, inv *clispec.Invocation) error {
				if inv.Args.Value("env") == "boom" {
					return errBoom
				}
				return nil
			}))

			out := h.cli.Dispatch(context.Background(), tt.input)
			if out.Kind != Failed || out.ErrorKind != tt.kind || !errors.Is(out.Err, tt.target) {
				t.Fatalf("Outcome = %+v (kind %v), want %v wrapping %v", out, out.ErrorKind, tt.kind, tt.target)
			}

			h.stderr.Reset()
			if code := h.cli.Run(context.Background(), tt.input); code != types.ExitFailure {
				t.Errorf("Run() = %v", code)
			}
			if !strings.Contains(h.stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want %q", h.stderr.String(), tt.stderr)
			}
		})
	}
}

var errBoom = errors.New("boom")

func TestDispatch_ExecutorErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("fail"))
	rec.err = errBoom

	out := h.cli.Dispatch(context.Background(), []string{"fail"})
	if out.Err != errBoom {
		t.Errorf("Err = %v, want the executor's error itself", out.Err)
	}
}

func TestDispatch_PanicRecovered(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.add(t, clispec.NewCommand("crash").RunFunc(func(context.Context, *clispec.Invocation) error {
		panic("kaboom")
	}))

	out := h.cli.Dispatch(context.Background(), []string{"crash"})
	if out.Kind != Failed || out.ErrorKind != InternalFailure || !errors.Is(out.Err, ErrInternal) {
		t.Fatalf("Outcome = %+v", out)
	}
	if out.Command == nil || out.Command.Name() != "crash" {
		t.Errorf("Command = %v", out.Command)
	}
	if code := h.cli.Run(context.Background(), []string{"crash"}); code != types.ExitFailure {
		t.Errorf("Run() = %v", code)
	}
}

func TestImplicitCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t, WithVersion("2.0.0"), WithDescription("Does things"))
	h.register(t, clispec.NewCommand("remote add").Describe("Add a remote").Signature("<name>"))

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty input lists commands", nil, []string{"Available commands:", "remote add", "Add a remote", "help", "version"}},
		{"help command", []string{"help"}, []string{"Available commands:"}},
		{"help for a command", []string{"help", "remote", "add"}, []string{"Usage: tool remote add <name>"}},
		{"leading --help", []string{"--help"}, []string{"Available commands:"}},
		{"version command", []string{"version"}, []string{"tool 2.0.0"}},
		{"leading --version", []string{"--version"}, []string{"tool 2.0.0"}},
	}
	for _, tt := range tests {
		h.stdout.Reset()
		if code := h.cli.Run(context.Background(), tt.input); code != types.ExitSuccess {
			t.Errorf("%s: Run() = %v, stderr %q", tt.name, code, h.stderr.String())
		}
		for _, want := range tt.want {
			if !strings.Contains(h.stdout.String(), want) {
				t.Errorf("%s: stdout missing %q:\n%s", tt.name, want, h.stdout.String())
			}
		}
	}

	h.stderr.Reset()
	out := h.cli.Dispatch(context.Background(), []string{"help", "remote"})
	if out.ErrorKind != RoutingFailure {
		t.Errorf("help for a namespace: %+v", out)
	}
}

func TestImplicitCommands_NoVersion(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	if err := h.cli.Seal(); err != nil {
		t.Fatal(err)
	}
	if _, ok := h.cli.Lookup(VersionCommandName); ok {
		t.Error("version command registered without a version")
	}
	if _, ok := h.cli.Lookup(HelpCommandName); !ok {
		t.Error("help command missing")
	}
}

func TestSeal(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.register(t, clispec.NewCommand("help"))
	err := h.cli.Seal()
	if !errors.Is(err, clispec.ErrDuplicateCommand) || !errors.Is(err, ErrInternal) {
		t.Fatalf("Seal() error = %v", err)
	}
	if !errors.Is(h.cli.Seal(), clispec.ErrDuplicateCommand) {
		t.Error("second Seal() forgot the error")
	}
	out := h.cli.Dispatch(context.Background(), []string{"help"})
	if out.ErrorKind != InternalFailure {
		t.Errorf("Dispatch after failed seal = %+v", out)
	}

	ok := newHarness(t)
	if err := ok.cli.Seal(); err != nil {
		t.Fatal(err)
	}
	d := clispec.NewCommand("late").RunFunc(func(context.Context, *clispec.Invocation) error { return nil }).MustBuild()
	if err := ok.cli.Register(d); !errors.Is(err, ErrSealed) {
		t.Errorf("Register after Seal error = %v", err)
	}
	if err := ok.cli.RegisterAll(d); !errors.Is(err, ErrSealed) {
		t.Errorf("RegisterAll after Seal error = %v", err)
	}
	if err := ok.cli.Alias("l", "late"); !errors.Is(err, ErrSealed) {
		t.Errorf("Alias after Seal error = %v", err)
	}
	if err := ok.cli.SetDefault("late"); !errors.Is(err, ErrSealed) {
		t.Errorf("SetDefault after Seal error = %v", err)
	}
}

func TestDefaultAndAlias(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	serve := h.register(t, clispec.NewCommand("serve").Signature("[<addr>]").Flag("Debug", "-d"))
	if err := h.cli.SetDefault("serve"); err != nil {
		t.Fatal(err)
	}
	if err := h.cli.Alias("s", "serve"); err != nil {
		t.Fatal(err)
	}

	h.cli.Dispatch(context.Background(), []string{"-d", ":8080"})
	if serve.calls != 1 || serve.last.Args.Value("addr") != ":8080" || !serve.last.Options.Has("d") {
		t.Errorf("default dispatch: calls=%d addr=%q", serve.calls, serve.last.Args.Value("addr"))
	}
	h.cli.Dispatch(context.Background(), []string{"s"})
	if serve.calls != 2 || serve.last.Args.Has("addr") {
		t.Errorf("alias dispatch: calls=%d", serve.calls)
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("say").Signature("<text>"))
	if code := h.cli.Debug(context.Background(), `say "hello world"`); code != types.ExitSuccess {
		t.Fatalf("Debug() = %v, stderr %q", code, h.stderr.String())
	}
	if rec.last.Args.Value("text") != "hello world" {
		t.Errorf("text = %q", rec.last.Args.Value("text"))
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("remote add").Signature("<name> [<url>]").Flag("Fetch", "-f").Keyed("Track", "-t"))

	tr, err := h.cli.Trace(context.Background(), []string{"remote", "add", "-ft", "main", "origin", "--nope"})
	if err == nil || !errors.Is(err, clispec.ErrOptionMisuse) {
		t.Fatalf("Trace() error = %v, want option misuse", err)
	}
	if rec.calls != 0 {
		t.Error("Trace executed the command")
	}
	if tr.Command != "remote add" || tr.Reason != "name" || !slices.Equal(tr.Words, []string{"remote", "add"}) {
		t.Errorf("trace routing = %q %q %v", tr.Command, tr.Reason, tr.Words)
	}
	if !tr.Recognized || len(tr.Unrecognized) != 1 || tr.Unrecognized[0].Alias != "--nope" {
		t.Errorf("trace recognition = %v %+v", tr.Recognized, tr.Unrecognized)
	}
	if !slices.Equal(tr.Options["t"], []string{"main"}) || len(tr.Options["f"]) != 1 {
		t.Errorf("trace options = %v", tr.Options)
	}

	tr, err = h.cli.Trace(context.Background(), []string{"remote", "add", "origin"})
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if len(tr.Slots) != 2 || !tr.Slots[0].Set || tr.Slots[1].Set || tr.Slots[0].Values[0] != "origin" {
		t.Errorf("trace slots = %+v", tr.Slots)
	}
	if tr.ErrorKind != NoError {
		t.Errorf("ErrorKind = %v", tr.ErrorKind)
	}
}

func TestDispatch_Idempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.register(t, clispec.NewCommand("cp").Signature("<src> [<dst>]").Flag("Recursive", "-r"))
	input := []string{"cp", "-r", "a", "b"}

	first := h.cli.Dispatch(context.Background(), input)
	firstArgs := rec.last.Args.Positional()
	second := h.cli.Dispatch(context.Background(), input)

	if first.Kind != second.Kind || first.Command != second.Command {
		t.Errorf("outcomes differ: %+v vs %+v", first, second)
	}
	if !slices.Equal(firstArgs, rec.last.Args.Positional()) {
		t.Errorf("bound args differ: %v vs %v", firstArgs, rec.last.Args.Positional())
	}
	if rec.last.ID == "" {
		t.Error("invocation has no id")
	}
}
