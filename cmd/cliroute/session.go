// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/config"
	"github.com/ftitreefly/cliroute/internal/issue"
	"github.com/ftitreefly/cliroute/internal/logging"
	"github.com/ftitreefly/cliroute/internal/manifest"
	"github.com/ftitreefly/cliroute/internal/runtime"
	"github.com/ftitreefly/cliroute/internal/usage"
	"github.com/ftitreefly/cliroute/pkg/cli"
	"github.com/ftitreefly/cliroute/pkg/clispec"
	"github.com/ftitreefly/cliroute/pkg/types"
)

// session is the state one subcommand works with: effective configuration,
// the loaded manifest, and a CLI with the manifest's commands registered.
type session struct {
	cfg      *config.Config
	manifest *manifest.Manifest
	set      *manifest.Set
	cli      *cli.CLI
	verbose  bool
	stdout   io.Writer
	stderr   io.Writer
	styles   usage.Styles
}

// loadConfig loads the effective configuration for flags.
func (a *App) loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	return a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.cfgFile})
}

// open loads configuration and the manifest and registers its commands.
func (a *App) open(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, err := a.loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		verbose: flags.verbose || cfg.UI.Verbose,
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	}
	s.styles = usage.NewStyles(s.stderr, s.usageOptions())

	path := flags.manifest
	if path == "" {
		path = cfg.Dispatch.Manifest
	}
	if s.manifest, err = manifest.Load(path); err != nil {
		return s, err
	}

	policy, err := clispec.ParseUnknownOptionPolicy(cfg.Dispatch.UnknownOptions)
	if err != nil {
		return s, err
	}
	dir := filepath.Dir(s.manifest.Path)
	stdin := cmd.InOrStdin()
	newScript := func(c manifest.Command) clispec.Executor {
		return runtime.NewScript(c.Key(), c.Script,
			runtime.WithDir(dir),
			runtime.WithBaseEnv(os.Environ()),
			runtime.WithStdin(stdin))
	}
	if s.set, err = manifest.Build(s.manifest, newScript, manifest.BuildOptions{UnknownOptions: policy}); err != nil {
		return s, issue.Wrap(err, "build commands",
			issue.Resource(s.manifest.Path),
			issue.WithGuide(issue.ManifestParseErrorId))
	}

	s.cli = cli.New(s.set.App.Name,
		cli.WithVersion(s.set.App.Version),
		cli.WithDescription(s.set.App.Description),
		cli.WithFormatter(usage.New(s.usageOptions())),
		cli.WithLogger(logging.New(s.stderr, logging.Options{Level: cfg.Log.Level})),
		cli.WithOutput(s.stdout, s.stderr))
	if err := s.set.Register(s.cli); err != nil {
		return s, issue.Wrap(err, "register commands",
			issue.Resource(s.manifest.Path),
			issue.WithGuide(issue.ManifestParseErrorId))
	}
	if err := s.cli.Seal(); err != nil {
		return s, issue.Wrap(err, "register commands",
			issue.Resource(s.manifest.Path),
			issue.WithGuide(issue.ManifestParseErrorId),
			issue.Hint(fmt.Sprintf("Rename commands called %q or %q", cli.HelpCommandName, cli.VersionCommandName)))
	}
	return s, nil
}

func (s *session) usageOptions() usage.Options {
	return usage.Options{NoColor: s.cfg.UI.NoColor, ColorScheme: string(s.cfg.UI.ColorScheme)}
}

// fail reports a setup error to stderr and returns the ExitError for it.
// Verbose mode adds the error chain and the matching guide.
func fail(cmd *cobra.Command, s *session, verbose bool, err error) error {
	w := cmd.ErrOrStderr()
	st := usage.NewStyles(w, usage.Options{})
	noColor := false
	if s != nil {
		verbose = verbose || s.verbose
		st = s.styles
		noColor = s.cfg.UI.NoColor
	}
	fmt.Fprintln(w, st.Error.Render("Error:")+" "+formatErrorForDisplay(err, verbose))
	if verbose {
		printGuide(w, issue.GuideOf(err), noColor)
	}
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

func printGuide(w io.Writer, guide *issue.Issue, noColor bool) {
	if guide == nil {
		return
	}
	style := "auto"
	if noColor {
		style = "notty"
	}
	out, err := guide.Render(style)
	if err != nil {
		out = guide.Markdown()
	}
	fmt.Fprintln(w, out)
}
