// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cliroute command-line tool: it loads a manifest of
// commands and dispatches argument vectors to them.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ftitreefly/cliroute/internal/config"
	"github.com/ftitreefly/cliroute/internal/usage"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App holds the collaborators shared by every subcommand.
	App struct {
		Config config.Provider
	}

	// rootFlags are the persistent flags of the root command.
	rootFlags struct {
		cfgFile  string
		verbose  bool
		manifest string
	}
)

// NewApp creates an App backed by the file configuration provider.
func NewApp() *App {
	return &App{Config: config.NewProvider()}
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}
	st := usage.NewStyles(os.Stdout, usage.Options{})

	root := &cobra.Command{
		Use:   "cliroute",
		Short: "Route command lines to manifest-declared commands",
		Long: st.Title.Render("cliroute") + st.Subtitle.Render(" - route command lines to manifest-declared commands") + `

cliroute reads a CUE manifest of commands, each with a positional signature
such as "<source> [<dest>] [<extra>]..." and declared options, and dispatches
argument vectors to them: it picks the longest matching command name, checks
options, binds positional values to named slots, and runs the command's
script in an embedded shell.

` + st.Subtitle.Render("Examples:") + `
  cliroute run -- copy -f a.txt b.txt     Run 'copy' from ./cliroute.cue
  cliroute run -m tools.cue -- help       List the manifest's commands
  cliroute debug --trace "copy -vf a b"   Show how a line would be routed
  cliroute check                          Validate the manifest`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is <config dir>/cliroute/config.cue)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVarP(&flags.manifest, "manifest", "m", "", "manifest file (default is ./cliroute.cue)")

	root.AddCommand(
		newRunCommand(app, flags),
		newDebugCommand(app, flags),
		newListCommand(app, flags),
		newCheckCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return root
}

// versionString returns a formatted version string for display.
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs the tool and returns the process exit code.
func Main() int {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(NewApp()),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return 1
	}
	return 0
}

// Execute runs the tool and exits the process.
func Execute() {
	os.Exit(Main())
}

// handleError prints errors cobra or a subcommand returned. ExitErrors were
// already reported by the subcommand.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
