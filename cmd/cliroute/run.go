// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/issue"
	"github.com/ftitreefly/cliroute/pkg/cli"
	"github.com/ftitreefly/cliroute/pkg/clispec"
	"github.com/ftitreefly/cliroute/pkg/types"
)

func newRunCommand(app *App, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [--] <command> [args...]",
		Short: "Dispatch an argument vector to a manifest command",
		Long: `Dispatch an argument vector to a manifest command.

Everything after the first non-flag argument (or after "--") is handed to the
dispatcher unchanged, so command options such as -h or --force reach the
manifest command rather than cliroute.`,
		Example: `  cliroute run copy -f a.txt b.txt
  cliroute run -m tools.cue -- remote add origin https://example.com
  cliroute run -- copy --help`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := app.open(cmd, flags)
			if err != nil {
				return fail(cmd, s, flags.verbose, err)
			}
			out := s.cli.Dispatch(cmd.Context(), args)
			return s.finish(out, s.cli.Report(out))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// finish turns a dispatch result into the subcommand's return value.
func (s *session) finish(out cli.Outcome, code types.ExitCode) error {
	if code.IsSuccess() {
		return nil
	}
	if s.verbose {
		printGuide(s.stderr, issue.Get(classifyDispatchError(out.Err)), s.cfg.UI.NoColor)
	}
	return &ExitError{Code: code, Err: out.Err}
}

// classifyDispatchError maps a dispatch failure to the guide that explains it.
func classifyDispatchError(err error) issue.Id {
	switch {
	case errors.Is(err, clispec.ErrCommandNotFound):
		return issue.CommandNotFoundId
	case errors.Is(err, clispec.ErrOptionMisuse):
		return issue.OptionMisuseId
	case errors.Is(err, clispec.ErrBinding):
		return issue.ArgumentMismatchId
	default:
		return issue.ScriptExecutionFailedId
	}
}
