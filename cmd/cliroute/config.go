// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/config"
	"github.com/ftitreefly/cliroute/internal/usage"
	"github.com/ftitreefly/cliroute/pkg/types"
)

// newConfigCommand creates the `cliroute config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cliroute configuration",
		Long: `Manage cliroute configuration.

Configuration is read from the first file found:
  - the --config flag or CLIROUTE_CONFIG
  - <config dir>/cliroute/config.cue
  - <config dir>/cliroute/config.toml
  - ./config.cue

where <config dir> is ~/.config (or $XDG_CONFIG_HOME) on Linux,
~/Library/Application Support on macOS and %APPDATA% on Windows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			cfg, err := app.loadConfig(cmd, flags)
			if err != nil {
				return fail(cmd, nil, flags.verbose, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	var (
		format string
		dir    string
		force  bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			st := usage.NewStyles(cmd.OutOrStdout(), usage.Options{})
			f := config.Format(format)
			if f != config.FormatCUE && f != config.FormatTOML {
				return fail(cmd, nil, flags.verbose, fmt.Errorf("unsupported format %q (valid: cue, toml)", format))
			}

			path, err := config.WriteDefault(dir, f, force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s (use --force to overwrite)\n", st.Warning.Render("Exists:"), path)
				return &ExitError{Code: types.ExitFailure, Err: err}
			}
			if err != nil {
				return fail(cmd, nil, flags.verbose, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", st.Success.Render("Created"), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&format, "format", string(config.FormatCUE), "file format: cue or toml")
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write to (default is the platform config directory)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}
