// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/runtime"
	"github.com/ftitreefly/cliroute/pkg/types"
)

func newCheckCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest without running anything",
		Long: `Validate the manifest without running anything.

Checks the manifest against its schema, builds every command (signatures,
option aliases, names), registers aliases and the default command, and parses
every script.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := app.open(cmd, flags)
			if err != nil {
				return fail(cmd, s, flags.verbose, err)
			}

			var errs []error
			for i, c := range s.manifest.Commands {
				if err := runtime.NewScript(c.Key(), c.Script).Validate(); err != nil {
					errs = append(errs, fmt.Errorf("commands[%d] (%s): %w", i, c.Key(), err))
				}
			}
			if len(errs) > 0 {
				err := errors.Join(errs...)
				fmt.Fprintln(s.stderr, s.styles.Error.Render("✗ "+s.manifest.Path))
				fmt.Fprintln(s.stderr, err)
				return &ExitError{Code: types.ExitFailure, Err: err}
			}

			fmt.Fprintf(s.stdout, "%s %s: %d commands\n",
				s.styles.Success.Render("✓"), s.manifest.Path, len(s.set.Commands))
			return nil
		},
	}
}
