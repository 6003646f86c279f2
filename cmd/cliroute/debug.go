// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/argv"
	"github.com/ftitreefly/cliroute/internal/usage"
	"github.com/ftitreefly/cliroute/pkg/cli"
	"github.com/ftitreefly/cliroute/pkg/types"
)

func newDebugCommand(app *App, flags *rootFlags) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "debug [--trace] <line>",
		Short: "Dispatch a whole command line given as one string",
		Long: `Dispatch a whole command line given as one string.

The line is split with shell quoting rules, so "copy 'a b' c" passes two
values. With --trace nothing is executed; cliroute prints how each stage
treated the line instead.`,
		Example: `  cliroute debug "copy -f 'my file' dest"
  cliroute debug --trace "remote add -x origin"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := app.open(cmd, flags)
			if err != nil {
				return fail(cmd, s, flags.verbose, err)
			}

			if !trace {
				code := s.cli.Debug(cmd.Context(), args[0])
				if code.IsSuccess() {
					return nil
				}
				return &ExitError{Code: code}
			}

			t, err := s.cli.Trace(cmd.Context(), argv.SplitDebug(args[0]))
			printTrace(s.stdout, usage.NewStyles(s.stdout, s.usageOptions()), t)
			if err != nil {
				return &ExitError{Code: types.ExitFailure, Err: err}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print how the line is routed and bound instead of running it")
	return cmd
}

func printTrace(w io.Writer, st usage.Styles, t *cli.Trace) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", st.Warning.Render(fmt.Sprintf("%-13s", label)), value)
	}

	row("input:", fmt.Sprintf("%q", t.Input))
	if t.Command != "" {
		row("command:", st.Cmd.Render(t.Command)+st.Subtitle.Render(" ("+t.Reason+")"))
	} else {
		row("command:", st.Error.Render("none"))
	}

	fmt.Fprintln(w, st.Warning.Render("tokens:"))
	for i, tok := range t.Tokens {
		var marks []string
		if tok.Consumed {
			marks = append(marks, "consumed")
		}
		if tok.Attached {
			marks = append(marks, "attached")
		}
		if tok.Literal {
			marks = append(marks, "literal")
		}
		fmt.Fprintf(w, "  %2d  %-20q %-6s %s\n", i, tok.Text, tok.Role, st.Verbose.Render(strings.Join(marks, ",")))
	}

	if t.Recognized {
		if len(t.Options) == 0 {
			row("options:", st.Subtitle.Render("none"))
		}
		for _, name := range sortedKeys(t.Options) {
			row("option:", fmt.Sprintf("%s = %q", name, t.Options[name]))
		}
		for _, u := range t.Unrecognized {
			row("unknown:", st.Error.Render(u.Alias))
		}
	} else if t.Command != "" {
		row("options:", st.Subtitle.Render("not recognized (plain command)"))
	}

	if t.ExitEarly {
		row("help:", "requested; nothing would run")
	}
	for _, slot := range t.Slots {
		value := st.Subtitle.Render("unset")
		if slot.Set {
			value = fmt.Sprintf("%q", slot.Values)
		}
		row("slot:", fmt.Sprintf("%s (%s) = %s", slot.Name, slot.Kind, value))
	}
	if t.ErrorKind != cli.NoError {
		row("error:", st.Error.Render(t.ErrorKind.String()))
	}
}
