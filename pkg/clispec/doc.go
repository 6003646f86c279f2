// SPDX-License-Identifier: MPL-2.0

// Package clispec defines the declarative model of a routable command: its
// (possibly multi-word) name, the options it recognizes, and the positional
// signature its arguments bind to.
//
// Descriptors are assembled with a Builder and are immutable once built.
// Signature strings are parsed at build time, so a malformed signature fails
// registration instead of the first invocation:
//
//	add, err := clispec.NewCommand("remote add").
//		Describe("Add a named remote").
//		Signature("<name> <url>").
//		Flag("Fetch after adding", "-f", "--fetch").
//		Keyed("Track only this branch", "-t", "--track").
//		RunFunc(func(ctx context.Context, inv *clispec.Invocation) error {
//			fmt.Fprintln(inv.Stdout, inv.Args.Value("name"), inv.Args.Value("url"))
//			return nil
//		}).
//		Build()
//
// The package also owns the error taxonomy shared by the router, the option
// recognizer and the argument binder, so formatters can render failures
// without importing the engine.
package clispec
