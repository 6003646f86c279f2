// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ftitreefly/cliroute/internal/logging"
	"github.com/ftitreefly/cliroute/internal/registry"
	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Names of the implicit commands.
const (
	HelpCommandName    = "help"
	VersionCommandName = "version"
)

// ErrSealed is returned when commands are registered after the first dispatch.
var ErrSealed = errors.New("command registry is sealed")

type (
	// Option configures a CLI.
	Option func(*CLI)

	// CLI routes argument vectors to registered commands.
	CLI struct {
		app       clispec.App
		registry  *registry.Registry
		formatter Formatter
		logger    *log.Logger
		stdout    io.Writer
		stderr    io.Writer
		sealed    bool
		sealErr   error
	}
)

// WithVersion sets the program version. The implicit version command and
// --version are only provided when a version is set.
func WithVersion(version string) Option {
	return func(c *CLI) { c.app.Version = version }
}

// WithDescription sets the program description shown by help.
func WithDescription(description string) Option {
	return func(c *CLI) { c.app.Description = description }
}

// WithFormatter replaces the default lipgloss formatter.
func WithFormatter(f Formatter) Option {
	return func(c *CLI) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *CLI) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOutput redirects standard output and error. Nil keeps the default.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *CLI) {
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// New creates a CLI for the program name.
func New(name string, opts ...Option) *CLI {
	c := &CLI{
		app:       clispec.App{Name: name},
		registry:  registry.New(),
		formatter: DefaultFormatter(),
		logger:    logging.Discard(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// App returns the program metadata.
func (c *CLI) App() clispec.App { return c.app }

// Register adds a command. It fails once the CLI is sealed.
func (c *CLI) Register(d *clispec.Descriptor) error {
	if c.sealed {
		return ErrSealed
	}
	return c.registry.Register(d)
}

// RegisterAll adds commands atomically.
func (c *CLI) RegisterAll(ds ...*clispec.Descriptor) error {
	if c.sealed {
		return ErrSealed
	}
	return c.registry.RegisterAll(ds...)
}

// Alias makes alias route to the registered command target.
func (c *CLI) Alias(alias, target string) error {
	if c.sealed {
		return ErrSealed
	}
	return c.registry.Alias(alias, target)
}

// SetDefault selects the command used when the input names none.
func (c *CLI) SetDefault(name string) error {
	if c.sealed {
		return ErrSealed
	}
	return c.registry.SetDefault(name)
}

// Seal appends the implicit help and version commands and freezes the
// registry. Dispatch seals automatically; calling Seal first surfaces name
// collisions at startup.
func (c *CLI) Seal() error {
	if c.sealed {
		return c.sealErr
	}
	c.sealed = true

	help, err := c.helpCommand()
	if err == nil {
		err = c.registry.SetHelp(help)
	}
	if err == nil && c.app.Version != "" {
		var version *clispec.Descriptor
		if version, err = c.versionCommand(); err == nil {
			err = c.registry.SetVersion(version)
		}
	}
	if err != nil {
		c.sealErr = fmt.Errorf("%w: registering implicit commands: %w", ErrInternal, err)
	}
	return c.sealErr
}

// Commands returns every registered command in name order, implicit ones
// included once sealed.
func (c *CLI) Commands() []*clispec.Descriptor {
	return c.registry.Commands()
}

// Lookup finds a command by name or alias.
func (c *CLI) Lookup(name string) (*clispec.Descriptor, bool) {
	return c.registry.Lookup(name)
}
