// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ftitreefly/cliroute/pkg/clispec"
)

// Misuse writes the option misuse card. Advisory cards are warnings: the
// command still runs.
func (f *Formatter) Misuse(w io.Writer, err *clispec.OptionMisuseError, advisory bool) error {
	st := NewStyles(w, f.opts)
	_, werr := io.WriteString(w, renderMisuse(st, err, advisory))
	return werr
}

// Failure writes the card for a routing, binding or execution failure.
func (f *Formatter) Failure(w io.Writer, app clispec.App, err error) error {
	st := NewStyles(w, f.opts)

	var (
		routeErr  *clispec.RoutingError
		bindErr   *clispec.BindingError
		misuseErr *clispec.OptionMisuseError
		out       string
	)
	switch {
	case errors.As(err, &routeErr):
		out = renderRouting(st, app, routeErr)
	case errors.As(err, &bindErr):
		out = renderBinding(st, bindErr)
	case errors.As(err, &misuseErr):
		out = renderMisuse(st, misuseErr, false)
	default:
		out = st.header.Render("✗ "+err.Error()) + "\n"
	}
	_, werr := io.WriteString(w, out)
	return werr
}

func renderMisuse(st Styles, err *clispec.OptionMisuseError, advisory bool) string {
	var sb strings.Builder

	switch {
	case advisory:
		sb.WriteString(st.warnHeader.Render("⚠ Unrecognized options ignored"))
	case err.OnlyUnrecognized():
		sb.WriteString(st.header.Render("✗ Unrecognized options!"))
	default:
		sb.WriteString(st.header.Render("✗ Invalid option usage!"))
	}
	sb.WriteString("\n\n")
	if err.Command != "" {
		sb.WriteString(fmt.Sprintf("Command %s was given options it cannot use.\n\n", st.command.Render("'"+err.Command+"'")))
	}

	if len(err.Unrecognized) > 0 {
		sb.WriteString(st.label.Render("Unrecognized:"))
		sb.WriteString("\n")
		for _, u := range err.Unrecognized {
			item := u.Alias
			if u.HasValue {
				item += "=" + u.Value
			}
			sb.WriteString(st.value.Render("  • " + item))
			sb.WriteString("\n")
		}
	}
	if len(err.MissingValue) > 0 {
		sb.WriteString(st.label.Render("Missing values:"))
		sb.WriteString("\n")
		for _, a := range err.MissingValue {
			sb.WriteString(st.value.Render(fmt.Sprintf("  • %s requires a value", a)))
			sb.WriteString("\n")
		}
	}
	if len(err.UnexpectedValue) > 0 {
		sb.WriteString(st.label.Render("Unexpected values:"))
		sb.WriteString("\n")
		for _, a := range err.UnexpectedValue {
			sb.WriteString(st.value.Render(fmt.Sprintf("  • %s does not take a value", a)))
			sb.WriteString("\n")
		}
	}

	if !advisory {
		sb.WriteString("\n")
		sb.WriteString(st.hint.Render(HelpHint))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderRouting(st Styles, app clispec.App, err *clispec.RoutingError) string {
	var sb strings.Builder

	if len(err.Words) == 0 {
		sb.WriteString(st.header.Render("✗ No command specified!"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(st.header.Render("✗ Command not found!"))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("No command matches %s.\n", st.command.Render("'"+strings.Join(err.Words, " ")+"'")))
	}

	if len(err.Namespace) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.label.Render("Available subcommands:"))
		sb.WriteString("\n")
		for _, name := range err.Namespace {
			sb.WriteString(st.value.Render("  • " + name))
			sb.WriteString("\n")
		}
	}
	if len(err.Suggestions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.label.Render("Did you mean:"))
		sb.WriteString("\n")
		for _, name := range err.Suggestions {
			sb.WriteString(st.value.Render("  • " + name))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if app.Name != "" {
		sb.WriteString(st.hint.Render(fmt.Sprintf("Run '%s help' to list available commands.", app.Name)))
	} else {
		sb.WriteString(st.hint.Render("Run 'help' to list available commands."))
	}
	sb.WriteString("\n")
	return sb.String()
}

func renderBinding(st Styles, err *clispec.BindingError) string {
	var sb strings.Builder
	sig, _ := clispec.ParseSignature(err.Signature)

	switch err.Kind {
	case clispec.TooManyArguments:
		sb.WriteString(st.header.Render("✗ Too many arguments!"))
		sb.WriteString("\n\n")
		limit := "no"
		if sig.Max() > 0 {
			limit = fmt.Sprintf("at most %d", sig.Max())
		}
		sb.WriteString(fmt.Sprintf("Command %s accepts %s argument(s), but got %d.\n\n",
			st.command.Render("'"+err.Command+"'"), limit, len(err.Provided)))
	default:
		sb.WriteString(st.header.Render("✗ Missing required arguments!"))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Command %s requires at least %d argument(s), but got %d.\n\n",
			st.command.Render("'"+err.Command+"'"), sig.Min(), len(err.Provided)))
	}

	if !sig.IsEmpty() {
		sb.WriteString(st.label.Render("Expected arguments:"))
		sb.WriteString("\n")
		for _, s := range sig.Slots() {
			sb.WriteString(st.value.Render(fmt.Sprintf("  • %s (%s)", s.Usage(), slotNote(s))))
			sb.WriteString("\n")
		}
	}
	if len(err.Missing) > 0 {
		sb.WriteString(st.label.Render("Missing:"))
		sb.WriteString(st.value.Render(" " + strings.Join(err.Missing, " ")))
		sb.WriteString("\n")
	}
	if len(err.Provided) > 0 {
		sb.WriteString(st.label.Render("Provided:"))
		sb.WriteString(st.value.Render(fmt.Sprintf(" %q", err.Provided)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.hint.Render(HelpHint))
	sb.WriteString("\n")
	return sb.String()
}
