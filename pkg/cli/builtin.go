// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

func (c *CLI) helpCommand() (*clispec.Descriptor, error) {
	return clispec.NewCommand(HelpCommandName).
		Describe("Show the command list, or the usage of one command").
		Signature("[<command>]...").
		Plain().
		RunFunc(func(_ context.Context, inv *clispec.Invocation) error {
			words := inv.Args.List("command")
			if len(words) == 0 {
				return c.formatter.Help(inv.Stdout, c.app, c.registry.Commands())
			}
			target, err := c.registry.Resolve(words)
			if err != nil {
				return err
			}
			return c.formatter.Usage(inv.Stdout, c.app, target)
		}).
		Build()
}

func (c *CLI) versionCommand() (*clispec.Descriptor, error) {
	return clispec.NewCommand(VersionCommandName).
		Describe("Show the program version").
		Plain().
		RunFunc(func(_ context.Context, inv *clispec.Invocation) error {
			return c.formatter.Version(inv.Stdout, c.app)
		}).
		Build()
}
