// SPDX-License-Identifier: MPL-2.0

package clispec

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors, raised while building descriptors or registering them.
var (
	// ErrInvalidSignature is the sentinel error wrapped by SignatureError.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidOption is returned when an option spec is malformed.
	ErrInvalidOption = errors.New("invalid option")
	// ErrDuplicateAlias is returned when two options of a command share an alias or a name.
	ErrDuplicateAlias = errors.New("duplicate option alias")
	// ErrReservedAlias is returned when a command declares -h or --help itself.
	ErrReservedAlias = errors.New("reserved option alias")
	// ErrInvalidCommand is the sentinel error wrapped by InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrDuplicateCommand is returned when a name or alias is registered twice.
	ErrDuplicateCommand = errors.New("duplicate command")
)

// Dispatch errors, raised while routing, recognizing options or binding arguments.
var (
	// ErrCommandNotFound is the sentinel error wrapped by RoutingError.
	ErrCommandNotFound = errors.New("command not found")
	// ErrOptionMisuse is the sentinel error wrapped by OptionMisuseError.
	ErrOptionMisuse = errors.New("option misuse")
	// ErrBinding matches every BindingError regardless of its kind.
	ErrBinding = errors.New("argument binding failed")
	// ErrNotEnoughArguments is wrapped by BindingError of kind TooFewArguments.
	ErrNotEnoughArguments = errors.New("not enough arguments")
	// ErrTooManyArguments is wrapped by BindingError of kind TooManyArguments.
	ErrTooManyArguments = errors.New("too many arguments")
	// ErrSilentAbort stops a dispatch whose cause was already reported to the
	// user. The top-level caller exits non-zero without printing it again.
	ErrSilentAbort = errors.New("aborted")
)

const (
	// TooFewArguments means a required slot had no token left to fill it.
	TooFewArguments BindingErrorKind = iota + 1
	// TooManyArguments means tokens remained after every slot was filled.
	TooManyArguments
)

type (
	// SignatureError reports a malformed signature string.
	SignatureError struct {
		Signature string
		Token     string
		Reason    string
	}

	// InvalidOptionError reports an option spec rejected at build time.
	// Err is one of ErrInvalidOption, ErrDuplicateAlias or ErrReservedAlias.
	InvalidOptionError struct {
		Alias  string
		Reason string
		Err    error
	}

	// InvalidCommandError reports a descriptor that cannot be built or registered.
	InvalidCommandError struct {
		Name   string
		Reason string
	}

	// RoutingError is returned when no registered command matches the input.
	RoutingError struct {
		// Words are the leading value tokens the router tried to match.
		Words []string
		// Suggestions are registered names close to the input, best first.
		Suggestions []string
		// Namespace lists commands that extend the input words, when the input
		// names a namespace ("remote") rather than a command ("remote add").
		Namespace []string
	}

	// UnrecognizedOption is one option token that matched no declared alias.
	UnrecognizedOption struct {
		Alias    string
		Value    string
		HasValue bool
		Position int
	}

	// OptionMisuseError carries every option problem found in one recognition
	// pass, so a formatter can report them together.
	OptionMisuseError struct {
		Command         string
		Unrecognized    []UnrecognizedOption
		MissingValue    []string
		UnexpectedValue []string
	}

	// BindingErrorKind distinguishes too few from too many positional tokens.
	BindingErrorKind int

	// BindingError is returned when positional tokens do not fit the signature.
	BindingError struct {
		Kind      BindingErrorKind
		Command   string
		Signature string
		Provided  []string
		// Missing names the slots left unfilled (TooFewArguments).
		Missing []string
		// Extra holds the tokens that had no slot (TooManyArguments).
		Extra []string
	}
)

// Error implements the error interface.
func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid signature %q: %s: %s", e.Signature, e.Token, e.Reason)
}

// Unwrap returns ErrInvalidSignature for errors.Is() compatibility.
func (e *SignatureError) Unwrap() error { return ErrInvalidSignature }

// Error implements the error interface.
func (e *InvalidOptionError) Error() string {
	if e.Alias == "" {
		return "invalid option: " + e.Reason
	}
	return fmt.Sprintf("option %q: %s", e.Alias, e.Reason)
}

// Unwrap returns the sentinel describing the failure.
func (e *InvalidOptionError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidOption
	}
	return e.Err
}

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidCommand for errors.Is() compatibility.
func (e *InvalidCommandError) Unwrap() error { return ErrInvalidCommand }

// Error implements the error interface.
func (e *RoutingError) Error() string {
	if len(e.Words) == 0 {
		return "no command specified"
	}
	return fmt.Sprintf("command not found: %q", strings.Join(e.Words, " "))
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *RoutingError) Unwrap() error { return ErrCommandNotFound }

// Error implements the error interface.
func (e *OptionMisuseError) Error() string {
	var parts []string
	if len(e.Unrecognized) > 0 {
		aliases := make([]string, 0, len(e.Unrecognized))
		for _, u := range e.Unrecognized {
			aliases = append(aliases, u.Alias)
		}
		parts = append(parts, "unrecognized option(s): "+strings.Join(aliases, ", "))
	}
	for _, alias := range e.MissingValue {
		parts = append(parts, fmt.Sprintf("option %s requires a value", alias))
	}
	for _, alias := range e.UnexpectedValue {
		parts = append(parts, fmt.Sprintf("flag %s does not take a value", alias))
	}
	if len(parts) == 0 {
		parts = append(parts, "option misuse")
	}
	msg := strings.Join(parts, "; ")
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, msg)
	}
	return msg
}

// Unwrap returns ErrOptionMisuse for errors.Is() compatibility.
func (e *OptionMisuseError) Unwrap() error { return ErrOptionMisuse }

// OnlyUnrecognized reports whether unrecognized options are the sole problem.
// Only those are subject to a command's unknown-option policy; missing and
// unexpected values always abort.
func (e *OptionMisuseError) OnlyUnrecognized() bool {
	return len(e.Unrecognized) > 0 && len(e.MissingValue) == 0 && len(e.UnexpectedValue) == 0
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	switch e.Kind {
	case TooFewArguments:
		return fmt.Sprintf("not enough arguments for %q: missing %s", e.Command, strings.Join(e.Missing, ", "))
	case TooManyArguments:
		quoted := make([]string, 0, len(e.Extra))
		for _, x := range e.Extra {
			quoted = append(quoted, fmt.Sprintf("%q", x))
		}
		return fmt.Sprintf("too many arguments for %q: unexpected %s", e.Command, strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("argument binding failed for %q", e.Command)
	}
}

// Unwrap exposes both ErrBinding and the kind-specific sentinel.
func (e *BindingError) Unwrap() []error {
	switch e.Kind {
	case TooFewArguments:
		return []error{ErrBinding, ErrNotEnoughArguments}
	case TooManyArguments:
		return []error{ErrBinding, ErrTooManyArguments}
	default:
		return []error{ErrBinding}
	}
}

// String returns a short label for the kind.
func (k BindingErrorKind) String() string {
	switch k {
	case TooFewArguments:
		return "too few arguments"
	case TooManyArguments:
		return "too many arguments"
	default:
		return "unknown"
	}
}
