// SPDX-License-Identifier: MPL-2.0

// Package cli is the entry point of the routing engine. A CLI owns one
// command registry; commands are registered at startup and every dispatch
// runs the same sequential pipeline over the argument vector:
//
//	tokenize -> route -> recognize options -> bind arguments -> execute
//
// Dispatch reports its result as an Outcome (Dispatched, ExitEarly or
// Failed). Run wraps Dispatch for main functions: it prints failures through
// the Formatter and returns a process exit code of 0 or 1.
//
//	app := cli.New("greet", cli.WithVersion("1.0.0"))
//	app.Register(clispec.NewCommand("hello").Signature("<name>").RunFunc(hello).MustBuild())
//	os.Exit(int(app.Run(ctx, os.Args[1:])))
//
// Help (-h/--help on any option-aware command, or the implicit "help"
// command) and version ("--version" or the implicit "version" command) are
// provided automatically.
package cli
