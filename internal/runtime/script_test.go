// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

func invocation(t *testing.T, sig string, values [][]string, opts map[string][]string) (*clispec.Invocation, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	d, err := clispec.NewCommand("copy files").
		Signature(sig).
		Flag("force", "-f", "--force").
		Keyed("mode", "-m", "--file-mode").
		RunFunc(func(context.Context, *clispec.Invocation) error { return nil }).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var stdout, stderr bytes.Buffer
	return &clispec.Invocation{
		ID:      "inv-1",
		Command: d,
		Args:    clispec.NewArguments(d.Signature(), values),
		Options: clispec.NewOptionValues(opts),
		Stdout:  &stdout,
		Stderr:  &stderr,
	}, &stdout, &stderr
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"dest":      "DEST",
		"file-mode": "FILE_MODE",
		"a.b":       "A_B",
		"x9":        "X9",
		"é":         "_",
	}
	for in, want := range tests {
		if got := EnvName(in); got != want {
			t.Errorf("EnvName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvocationEnv(t *testing.T) {
	t.Parallel()

	inv, _, _ := invocation(t, "<src> [<label>] [<files>]...",
		[][]string{{"a.txt"}, nil, {"x", "y"}},
		map[string][]string{"force": {"", ""}, "file-mode": {"644", "600"}})

	env := InvocationEnv(inv)
	want := []string{
		"CLIROUTE_COMMAND=copy files",
		"CLIROUTE_INVOCATION=inv-1",
		"CLIROUTE_ARG_SRC=a.txt",
		"CLIROUTE_ARG_FILES=x y",
		"CLIROUTE_ARG_FILES_COUNT=2",
		"CLIROUTE_ARG_FILES_1=x",
		"CLIROUTE_ARG_FILES_2=y",
		"CLIROUTE_OPT_FORCE=2",
		"CLIROUTE_OPT_FILE_MODE=600",
	}
	if !slices.Equal(env, want) {
		t.Errorf("InvocationEnv() =\n  %q\nwant\n  %q", env, want)
	}
	for _, kv := range env {
		if strings.HasPrefix(kv, "CLIROUTE_ARG_LABEL") {
			t.Errorf("unset optional slot exported: %q", kv)
		}
	}
}

func TestScript_Execute(t *testing.T) {
	t.Parallel()

	inv, stdout, _ := invocation(t, "<src> <files>...", [][]string{{"a"}, {"-v", "b c"}}, map[string][]string{"file-mode": {"755"}})
	script := NewScript("copy", `
echo "src=$CLIROUTE_ARG_SRC n=$CLIROUTE_ARG_FILES_COUNT mode=$CLIROUTE_OPT_FILE_MODE"
echo "params=$# first=$1 second=$2 third=$3"
echo "base=$BASE"
`, WithBaseEnv([]string{"BASE=kept"}))

	if err := script.Execute(context.Background(), inv); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "src=a n=2 mode=755\nparams=3 first=a second=-v third=b c\nbase=kept\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestScript_Stderr(t *testing.T) {
	t.Parallel()

	inv, stdout, stderr := invocation(t, "", nil, nil)
	if err := NewScript("copy", `echo oops >&2`).Execute(context.Background(), inv); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout.Len() != 0 || stderr.String() != "oops\n" {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestScript_ExitStatus(t *testing.T) {
	t.Parallel()

	inv, _, _ := invocation(t, "", nil, nil)
	err := NewScript("copy", "exit 3").Execute(context.Background(), inv)

	var exitErr *ScriptExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v (%T), want *ScriptExitError", err, err)
	}
	if exitErr.Status != 3 || exitErr.Command != "copy" {
		t.Errorf("ScriptExitError = %+v", exitErr)
	}
	if !errors.Is(err, ErrScriptFailed) {
		t.Error("error does not wrap ErrScriptFailed")
	}
}

func TestScript_SyntaxError(t *testing.T) {
	t.Parallel()

	script := NewScript("broken", "if then fi (")
	if err := script.Validate(); err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("Validate() = %v", err)
	}
	inv, _, _ := invocation(t, "", nil, nil)
	if err := script.Execute(context.Background(), inv); err == nil {
		t.Error("Execute() of invalid script succeeded")
	}
	if err := NewScript("ok", "echo hi").Validate(); err != nil {
		t.Errorf("Validate() of valid script = %v", err)
	}
}

func TestScript_Stdin(t *testing.T) {
	t.Parallel()

	inv, stdout, _ := invocation(t, "", nil, nil)
	script := NewScript("copy", "read line; echo \"got $line\"", WithStdin(strings.NewReader("hello\n")))
	if err := script.Execute(context.Background(), inv); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout.String() != "got hello\n" {
		t.Errorf("stdout = %q", stdout)
	}
}
