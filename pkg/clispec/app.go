// SPDX-License-Identifier: MPL-2.0

package clispec

// App describes the program that owns a set of commands. Formatters use it
// for headers, usage lines and version output.
type App struct {
	Name        string
	Version     string
	Description string
}
