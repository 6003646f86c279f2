// SPDX-License-Identifier: MPL-2.0

// Package usage renders usage lines, command listings and failure cards for
// the dispatcher. Output is styled with lipgloss and degrades to plain text
// when the destination is not a terminal or color is disabled.
package usage

import (
	"fmt"
	"io"
	"strings"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// HelpHint closes every failure card.
const HelpHint = "Run the command with --help for usage information."

// Options configures a Formatter.
type Options struct {
	NoColor     bool
	ColorScheme string
}

// Formatter is the default presentation collaborator of the dispatcher.
type Formatter struct {
	opts Options
}

// New creates a Formatter.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// UsageLine renders "<app> <command> <signature> [options]".
func UsageLine(app clispec.App, d *clispec.Descriptor) string {
	parts := make([]string, 0, 3)
	if app.Name != "" {
		parts = append(parts, app.Name)
	}
	parts = append(parts, d.Usage())
	if d.Options().Len() > 0 {
		parts = append(parts, "[options]")
	}
	return strings.Join(parts, " ")
}

// Usage writes the usage of a single command.
func (f *Formatter) Usage(w io.Writer, app clispec.App, d *clispec.Descriptor) error {
	st := NewStyles(w, f.opts)
	var sb strings.Builder

	sb.WriteString(st.Title.Render("Usage:"))
	sb.WriteString(" ")
	sb.WriteString(st.Cmd.Render(UsageLine(app, d)))
	sb.WriteString("\n")

	if desc := strings.TrimSpace(d.Description().String()); desc != "" {
		sb.WriteString("\n")
		sb.WriteString(st.Subtitle.Render(desc))
		sb.WriteString("\n")
	}

	if slots := d.Signature().Slots(); len(slots) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.label.Render("Arguments:"))
		sb.WriteString("\n")
		rows := make([][2]string, 0, len(slots))
		for _, s := range slots {
			rows = append(rows, [2]string{s.Usage(), slotNote(s)})
		}
		writeRows(&sb, st, rows)
	}

	if specs := d.Options().Specs(); len(specs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.label.Render("Options:"))
		sb.WriteString("\n")
		rows := make([][2]string, 0, len(specs))
		for _, o := range specs {
			rows = append(rows, [2]string{o.Usage(), o.Description})
		}
		writeRows(&sb, st, rows)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Help writes the command listing.
func (f *Formatter) Help(w io.Writer, app clispec.App, cmds []*clispec.Descriptor) error {
	st := NewStyles(w, f.opts)
	var sb strings.Builder

	if app.Name != "" {
		sb.WriteString(st.Title.Render(app.Name))
		if app.Version != "" {
			sb.WriteString(" ")
			sb.WriteString(st.Subtitle.Render(app.Version))
		}
		sb.WriteString("\n")
	}
	if desc := strings.TrimSpace(app.Description); desc != "" {
		sb.WriteString(st.Subtitle.Render(desc))
		sb.WriteString("\n")
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	name := app.Name
	if name == "" {
		name = "<program>"
	}
	sb.WriteString(st.Title.Render("Usage:"))
	sb.WriteString(" ")
	sb.WriteString(st.Cmd.Render(name + " <command> [options]"))
	sb.WriteString("\n\n")

	sb.WriteString(st.label.Render("Available commands:"))
	sb.WriteString("\n")
	rows := make([][2]string, 0, len(cmds))
	for _, d := range cmds {
		rows = append(rows, [2]string{d.Name(), d.Description().Summary()})
	}
	if len(rows) == 0 {
		sb.WriteString(st.value.Render("  (none)"))
		sb.WriteString("\n")
	}
	writeRows(&sb, st, rows)

	sb.WriteString("\n")
	sb.WriteString(st.hint.Render(fmt.Sprintf("Run '%s help <command>' for more information on a command.", name)))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Version writes "<name> <version>".
func (f *Formatter) Version(w io.Writer, app clispec.App) error {
	version := app.Version
	if version == "" {
		version = "(unversioned)"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", app.Name, version)
	return err
}

func slotNote(s clispec.Slot) string {
	switch {
	case s.Kind == clispec.VariadicSlot && s.AtLeastOne:
		return "one or more"
	case s.Kind == clispec.VariadicSlot:
		return "zero or more"
	case s.Kind == clispec.OptionalSlot:
		return "optional"
	default:
		return "required"
	}
}

// writeRows writes two aligned columns. Padding is computed on the plain
// text so styling does not skew it.
func writeRows(sb *strings.Builder, st Styles, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(st.Cmd.Render(r[0]))
		if r[1] != "" {
			sb.WriteString(strings.Repeat(" ", width-len(r[0])+2))
			sb.WriteString(st.Subtitle.Render(r[1]))
		}
		sb.WriteString("\n")
	}
}
