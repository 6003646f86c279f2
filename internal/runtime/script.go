// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// ErrScriptFailed is the sentinel wrapped by ScriptExitError.
var ErrScriptFailed = errors.New("script failed")

type (
	// Script is an Executor running a shell script in the embedded
	// interpreter.
	Script struct {
		name    string
		source  string
		dir     string
		baseEnv []string
		stdin   io.Reader
	}

	// ScriptOption configures a Script.
	ScriptOption func(*Script)

	// ScriptExitError reports a script that exited with a non-zero status.
	ScriptExitError struct {
		Command string
		Status  uint8
	}
)

func (e *ScriptExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Status)
}

func (e *ScriptExitError) Unwrap() error { return ErrScriptFailed }

// WithDir sets the working directory. Empty means the process's.
func WithDir(dir string) ScriptOption {
	return func(s *Script) { s.dir = dir }
}

// WithBaseEnv sets the variables every run starts from, typically
// os.Environ(). Invocation variables are added on top.
func WithBaseEnv(env []string) ScriptOption {
	return func(s *Script) { s.baseEnv = env }
}

// WithStdin sets the script's standard input.
func WithStdin(r io.Reader) ScriptOption {
	return func(s *Script) { s.stdin = r }
}

// NewScript creates an executor for source. name labels syntax errors.
func NewScript(name, source string, opts ...ScriptOption) *Script {
	s := &Script{name: name, source: source}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the script's syntax.
func (s *Script) Validate() error {
	_, err := s.parse()
	return err
}

func (s *Script) parse() (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(s.source), s.name)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}

// Execute runs the script with the invocation's writers.
func (s *Script) Execute(ctx context.Context, inv *clispec.Invocation) error {
	prog, err := s.parse()
	if err != nil {
		return err
	}

	env := append(append([]string(nil), s.baseEnv...), InvocationEnv(inv)...)
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(s.stdin, inv.Stdout, inv.Stderr),
	}
	if s.dir != "" {
		opts = append(opts, interp.Dir(s.dir))
	}
	// "--" keeps values like "-v" from being read as shell options.
	if params := inv.Args.Positional(); len(params) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, params...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ScriptExitError{Command: s.name, Status: uint8(status)}
		}
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}
