// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"

	"github.com/ftitreefly/cliroute/pkg/clispec"
	"github.com/ftitreefly/cliroute/pkg/types"
)

const (
	// Dispatched means the command's executor ran and returned nil.
	Dispatched OutcomeKind = iota
	// ExitEarly means help was requested; nothing was executed.
	ExitEarly
	// Failed means the pipeline or the executor failed.
	Failed
)

const (
	// NoError is the ErrorKind of successful outcomes.
	NoError ErrorKind = iota
	// RoutingFailure means no command matched.
	RoutingFailure
	// OptionMisuse means option recognition failed and was not yet reported.
	OptionMisuse
	// BindingFailure means positional tokens did not fit the signature.
	BindingFailure
	// ExecutionFailure means the executor returned an error.
	ExecutionFailure
	// SilentAbort means the failure was already reported to the user.
	SilentAbort
	// InternalFailure means a panic or a configuration defect.
	InternalFailure
)

// ErrInternal wraps recovered panics and registry configuration errors.
var ErrInternal = errors.New("internal error")

type (
	// OutcomeKind is the variant of an Outcome.
	OutcomeKind int

	// ErrorKind classifies a Failed outcome.
	ErrorKind int

	// Outcome is the result of one dispatch. Only Failed outcomes carry Err.
	Outcome struct {
		Kind      OutcomeKind
		ErrorKind ErrorKind
		// Command is the routed command, when routing succeeded.
		Command *clispec.Descriptor
		Err     error
	}
)

// String returns a short label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case Dispatched:
		return "dispatched"
	case ExitEarly:
		return "exit early"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "none"
	case RoutingFailure:
		return "routing"
	case OptionMisuse:
		return "option misuse"
	case BindingFailure:
		return "binding"
	case ExecutionFailure:
		return "execution"
	case SilentAbort:
		return "silent"
	case InternalFailure:
		return "internal"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to 0 or 1.
func (o Outcome) ExitCode() types.ExitCode {
	if o.Kind == Failed {
		return types.ExitFailure
	}
	return types.ExitSuccess
}

// Silent reports whether the failure was already shown to the user.
func (o Outcome) Silent() bool {
	return o.Kind == Failed && (o.ErrorKind == SilentAbort || errors.Is(o.Err, clispec.ErrSilentAbort))
}

func failed(kind ErrorKind, cmd *clispec.Descriptor, err error) Outcome {
	return Outcome{Kind: Failed, ErrorKind: kind, Command: cmd, Err: err}
}

// classify picks the ErrorKind for an error raised by a pipeline stage or an
// executor.
func classify(err error) ErrorKind {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, clispec.ErrSilentAbort):
		return SilentAbort
	case errors.Is(err, ErrInternal):
		return InternalFailure
	case errors.Is(err, clispec.ErrCommandNotFound):
		return RoutingFailure
	case errors.Is(err, clispec.ErrOptionMisuse):
		return OptionMisuse
	case errors.Is(err, clispec.ErrBinding):
		return BindingFailure
	default:
		return ExecutionFailure
	}
}
