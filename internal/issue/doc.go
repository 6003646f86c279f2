// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into guidance for the person at the terminal.
//
// It has two halves: a catalog of Markdown guides, one per failure category,
// rendered with glamour; and ActionableError, an error carrying the operation
// that failed, the resource involved, and hints for fixing it.
package issue
