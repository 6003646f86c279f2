// SPDX-License-Identifier: MPL-2.0

package usage

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by every card and listing.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for descriptions and hints.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings and section labels.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for command names and aliases.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray - used for detail values.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

// ColorScheme values accepted by Options.ColorScheme.
const (
	ColorSchemeAuto  = "auto"
	ColorSchemeDark  = "dark"
	ColorSchemeLight = "light"
)

// Styles is the set of lipgloss styles bound to one output renderer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Cmd      lipgloss.Style
	Verbose  lipgloss.Style

	header     lipgloss.Style
	warnHeader lipgloss.Style
	command    lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	hint       lipgloss.Style
}

// NewStyles builds styles for output written to w. NoColor forces plain
// text; a dark or light scheme overrides background detection.
func NewStyles(w io.Writer, opts Options) Styles {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	switch opts.ColorScheme {
	case ColorSchemeDark:
		r.SetHasDarkBackground(true)
	case ColorSchemeLight:
		r.SetHasDarkBackground(false)
	}

	muted := lipgloss.AdaptiveColor{Light: string(ColorMuted), Dark: string(ColorVerbose)}

	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: r.NewStyle().Foreground(muted),
		Success:  r.NewStyle().Foreground(ColorSuccess),
		Error:    r.NewStyle().Bold(true).Foreground(ColorError),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Cmd:      r.NewStyle().Foreground(ColorHighlight),
		Verbose:  r.NewStyle().Foreground(ColorVerbose),

		header:     r.NewStyle().Bold(true).Foreground(ColorError),
		warnHeader: r.NewStyle().Bold(true).Foreground(ColorWarning),
		command:    r.NewStyle().Bold(true).Foreground(ColorHighlight),
		label:      r.NewStyle().Bold(true).Foreground(ColorWarning),
		value:      r.NewStyle().Foreground(ColorVerbose),
		hint:       r.NewStyle().Foreground(ColorMuted).Italic(true),
	}
}
