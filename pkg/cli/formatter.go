// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"io"

	"github.com/ftitreefly/cliroute/internal/usage"
	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Formatter renders everything the dispatcher shows to the user. The
// dispatcher decides when to call it and where the output goes.
type Formatter interface {
	// Usage shows one command's usage, for -h/--help and "help <command>".
	Usage(w io.Writer, app clispec.App, cmd *clispec.Descriptor) error
	// Help lists the registered commands.
	Help(w io.Writer, app clispec.App, cmds []*clispec.Descriptor) error
	// Misuse reports option problems. Advisory reports precede execution.
	Misuse(w io.Writer, err *clispec.OptionMisuseError, advisory bool) error
	// Failure reports a failed dispatch.
	Failure(w io.Writer, app clispec.App, err error) error
	// Version shows the program version.
	Version(w io.Writer, app clispec.App) error
}

// DefaultFormatter returns the lipgloss formatter used when none is given.
func DefaultFormatter() Formatter {
	return usage.New(usage.Options{})
}
