// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ftitreefly/cliroute/internal/argv"
	"github.com/ftitreefly/cliroute/internal/binding"
	"github.com/ftitreefly/cliroute/internal/recognize"
	"github.com/ftitreefly/cliroute/internal/registry"
	"github.com/ftitreefly/cliroute/pkg/clispec"
	"github.com/ftitreefly/cliroute/pkg/types"
)

// plan is the state of one pass through the pipeline, up to execution.
type plan struct {
	id        string
	input     []string
	tokens    argv.Tokens
	match     registry.Match
	recog     recognize.Result
	recorded  bool
	misuse    *clispec.OptionMisuseError
	advisory  bool
	exitEarly bool
	args      *clispec.Arguments
}

// Dispatch runs the pipeline on raw (the argument vector without the program
// name) and executes the routed command. Fatal option misuse is reported
// through the Formatter before Dispatch returns; every other failure is
// returned for the caller to report.
func (c *CLI) Dispatch(ctx context.Context, raw []string) (out Outcome) {
	p := &plan{id: uuid.NewString(), input: append([]string(nil), raw...)}
	logger := c.logger.With("invocation", p.id)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered panic", "panic", r, "stack", string(debug.Stack()))
			out = failed(InternalFailure, p.match.Command, fmt.Errorf("%w: %v", ErrInternal, r))
		}
	}()

	if err := c.resolve(p, logger); err != nil {
		return c.reportResolveFailure(p, err)
	}
	d := p.match.Command

	if p.exitEarly {
		logger.Debug("help requested", "command", d.Name())
		if err := c.formatter.Usage(c.stdout, c.app, d); err != nil {
			return failed(InternalFailure, d, fmt.Errorf("%w: writing usage: %w", ErrInternal, err))
		}
		return Outcome{Kind: ExitEarly, Command: d}
	}

	if p.misuse != nil && p.advisory {
		if err := c.formatter.Misuse(c.stderr, p.misuse, true); err != nil {
			logger.Warn("writing advisory", "err", err)
		}
	}

	inv := &clispec.Invocation{
		ID:      p.id,
		Command: d,
		Args:    p.args,
		Options: p.recog.Options,
		Stdout:  c.stdout,
		Stderr:  c.stderr,
	}
	logger.Debug("executing", "command", d.Name())
	if err := d.Executor().Execute(ctx, inv); err != nil {
		logger.Debug("execution failed", "command", d.Name(), "err", err)
		return failed(classify(err), d, err)
	}
	return Outcome{Kind: Dispatched, Command: d}
}

// Run dispatches raw, reports any failure that was not already shown, and
// returns the process exit code.
func (c *CLI) Run(ctx context.Context, raw []string) types.ExitCode {
	return c.Report(c.Dispatch(ctx, raw))
}

// Report prints a failed outcome through the formatter unless it was already
// shown, and returns the outcome's exit code.
func (c *CLI) Report(out Outcome) types.ExitCode {
	if out.Kind == Failed && !out.Silent() {
		if err := c.formatter.Failure(c.stderr, c.app, out.Err); err != nil {
			c.logger.Error("writing failure", "err", err)
		}
	}
	return out.ExitCode()
}

// Debug runs a whole command line given as one string, split with shell
// quoting rules.
func (c *CLI) Debug(ctx context.Context, line string) types.ExitCode {
	return c.Run(ctx, argv.SplitDebug(line))
}

// resolve runs every stage before execution. It never mutates the registry
// or any descriptor, so repeated runs over the same input agree.
func (c *CLI) resolve(p *plan, logger *log.Logger) error {
	if err := c.Seal(); err != nil {
		return err
	}

	p.tokens = argv.Tokenize(p.input)
	logger.Debug("tokenized", "count", len(p.tokens))

	match, err := c.registry.Route(p.tokens)
	if err != nil {
		logger.Debug("routing failed", "err", err)
		return err
	}
	p.match = match
	d := match.Command
	logger.Debug("routed", "command", d.Name(), "consumed", match.Words, "reason", match.Reason)

	var values []string
	if d.IsPlain() {
		p.recog.Options = clispec.NewOptionValues(nil)
		values = p.tokens.Passthrough()
	} else {
		p.tokens = argv.ExpandCombined(p.tokens, d.Options())
		p.recog = recognize.Recognize(p.tokens, d.Options())
		p.recorded = true
		logger.Debug("options recognized",
			"command", d.Name(),
			"options", p.recog.Options.Names(),
			"unrecognized", len(p.recog.Unrecognized),
			"exit_early", p.recog.ExitEarly,
		)
		if p.recog.ExitEarly {
			p.exitEarly = true
			return nil
		}
		if p.misuse = p.recog.Misuse(d.Name()); p.misuse != nil {
			if p.recog.HasFatal(d.UnknownOptions()) {
				return p.misuse
			}
			p.advisory = true
		}
		values = positional(p.tokens)
	}

	args, err := binding.BindCommand(d, values)
	if err != nil {
		logger.Debug("binding failed", "command", d.Name(), "err", err)
		return err
	}
	p.args = args
	logger.Debug("bound", "command", d.Name(), "args", args.Positional())
	return nil
}

// reportResolveFailure turns a pre-execution error into an Outcome. Option
// misuse is reported here, so the caller sees a silent abort.
func (c *CLI) reportResolveFailure(p *plan, err error) Outcome {
	kind := classify(err)
	if kind == OptionMisuse && p.misuse != nil {
		if werr := c.formatter.Misuse(c.stderr, p.misuse, false); werr != nil {
			return failed(OptionMisuse, p.match.Command, err)
		}
		return failed(SilentAbort, p.match.Command, fmt.Errorf("%w: %w", clispec.ErrSilentAbort, err))
	}
	return failed(kind, p.match.Command, err)
}

// positional returns the unconsumed value tokens of an option-aware command.
// Unrecognized option tokens stay out of binding; under the advisory policy
// they are reported and dropped.
func positional(tokens argv.Tokens) []string {
	var out []string
	for _, tok := range tokens {
		if tok.Consumed || tok.Role == argv.RoleOption {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}
