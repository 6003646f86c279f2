// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/ftitreefly/cliroute/internal/usage"
)

func newListCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the manifest's commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := app.open(cmd, flags)
			if err != nil {
				return fail(cmd, s, flags.verbose, err)
			}

			st := usage.NewStyles(s.stdout, s.usageOptions())
			meta := s.cli.App()

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("COMMAND", "USAGE", "DESCRIPTION").
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == table.HeaderRow:
						return st.Title
					case col == 0:
						return st.Cmd
					case col == 2:
						return st.Subtitle
					default:
						return lipgloss.NewStyle()
					}
				})
			for _, d := range s.cli.Commands() {
				t.Row(d.Name(), usage.UsageLine(meta, d), string(d.Description()))
			}
			fmt.Fprintln(s.stdout, t.Render())

			if len(s.set.Aliases) > 0 {
				fmt.Fprintln(s.stdout, st.Subtitle.Render("Aliases:"))
				for _, alias := range sortedKeys(s.set.Aliases) {
					fmt.Fprintf(s.stdout, "  %s -> %s\n", st.Cmd.Render(alias), s.set.Aliases[alias])
				}
			}
			if s.set.Default != "" {
				fmt.Fprintf(s.stdout, "%s %s\n", st.Subtitle.Render("Default:"), st.Cmd.Render(s.set.Default))
			}
			return nil
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
