// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies a guide in the catalog.
type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	CommandNotFoundId
	OptionMisuseId
	ArgumentMismatchId
	ConfigLoadFailedId
	ScriptExecutionFailedId
)

type (
	MarkdownMsg string

	HttpLink string

	// Issue is one guide: a Markdown body plus optional reference links.
	Issue struct {
		id    Id
		title string
		mdMsg MarkdownMsg
		links []HttpLink
	}
)

func (i *Issue) Id() Id { return i.id }

// Title is the one-line heading of the guide.
func (i *Issue) Title() string { return i.title }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) Links() []HttpLink { return slices.Clone(i.links) }

// Markdown returns the full guide source, links included.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + i.title + "\n")
	sb.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, l := range i.links {
			sb.WriteString("- <" + string(l) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the guide for a terminal using the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(style string) (string, error) {
	return render(i.Markdown(), style)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id:    ManifestNotFoundId,
		title: "No manifest found!",
		mdMsg: `
cliroute needs a manifest describing the commands to route.

## Search order
1. The ` + "`--manifest`" + ` flag
2. The ` + "`CLIROUTE_MANIFEST`" + ` environment variable
3. ` + "`dispatch.manifest`" + ` in your config file
4. ` + "`cliroute.cue`" + ` in the current directory

## Minimal manifest
~~~cue
name: "tool"
commands: [{
	name:      "greet"
	signature: "<name>"
	script:    "echo hello $CLIROUTE_ARG_NAME"
}]
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id:    ManifestParseErrorId,
		title: "Failed to load the manifest!",
		mdMsg: `
The manifest is not valid CUE, or does not satisfy the manifest schema.

## Common causes
- A signature that does not parse, such as ` + "`[<a>] <b>`" + ` (required after optional)
- An option alias that is not ` + "`-x`" + ` or ` + "`--long-name`" + `
- Redeclaring ` + "`-h`" + ` or ` + "`--help`" + ` on an option-aware command
- Two commands with the same name, or an alias that shadows a command

## Things you can try
~~~
$ cliroute check -m cliroute.cue
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id:    CommandNotFoundId,
		title: "Command not found!",
		mdMsg: `
No registered command matches the words you typed.

## Things you can try
- List every command:
~~~
$ cliroute list
~~~
- Check the spelling; multi-word commands need every word, e.g. ` + "`remote add`" + `
- Inspect what the router saw:
~~~
$ cliroute debug --trace "your command line"
~~~`,
	}

	optionMisuseIssue = &Issue{
		id:    OptionMisuseId,
		title: "Invalid option usage!",
		mdMsg: `
An option was not declared by the command, a keyed option had no value,
or a flag was given a value.

## Things you can try
- Show the command's options with ` + "`--help`" + `
- Give keyed options a value: ` + "`--output file`" + ` or ` + "`--output=file`" + `
- Pass option-looking values after ` + "`--`" + `:
~~~
$ tool grep -- -v
~~~
- Set ` + "`unknown_options: \"advisory\"`" + ` on the command to only warn`,
	}

	argumentMismatchIssue = &Issue{
		id:    ArgumentMismatchId,
		title: "Wrong number of arguments!",
		mdMsg: `
The values you passed do not fit the command's signature.

## Reading a signature
| Form | Meaning |
|------|---------|
| ` + "`<a>`" + ` | required |
| ` + "`[<a>]`" + ` | optional |
| ` + "`<a>...`" + ` | one or more |
| ` + "`[<a>]...`" + ` | zero or more |`,
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedId,
		title: "Failed to load configuration!",
		mdMsg: `
The configuration file could not be read or decoded.

## Things you can try
- Write a fresh default configuration:
~~~
$ cliroute config init
~~~
- Show the effective configuration:
~~~
$ cliroute config show
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id:    ScriptExecutionFailedId,
		title: "Script execution failed!",
		mdMsg: `
The command was routed and bound, but its script failed.

## Things you can try
- Re-run with ` + "`--verbose`" + ` to see the bound arguments
- Arguments reach the script as ` + "`$CLIROUTE_ARG_<NAME>`" + `, options as ` + "`$CLIROUTE_OPT_<NAME>`" + ``,
		links: []HttpLink{"https://pkg.go.dev/mvdan.cc/sh/v3/interp"},
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():      manifestNotFoundIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		commandNotFoundIssue.Id():       commandNotFoundIssue,
		optionMisuseIssue.Id():          optionMisuseIssue,
		argumentMismatchIssue.Id():      argumentMismatchIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every guide ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the guide for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
