// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ftitreefly/cliroute/internal/issue"
	"github.com/ftitreefly/cliroute/pkg/cueutil"
)

//go:embed manifest_schema.cue
var schema []byte

type (
	// Manifest is a decoded manifest file.
	Manifest struct {
		Name           string            `json:"name"`
		Version        string            `json:"version,omitempty"`
		Description    string            `json:"description,omitempty"`
		DefaultCommand string            `json:"default_command,omitempty"`
		Aliases        map[string]string `json:"aliases,omitempty"`
		Commands       []Command         `json:"commands"`

		// Path is the file the manifest was read from, if any.
		Path string `json:"-"`
	}

	// Command declares one routable command.
	Command struct {
		Name           string   `json:"name"`
		Description    string   `json:"description,omitempty"`
		Signature      string   `json:"signature,omitempty"`
		Plain          bool     `json:"plain,omitempty"`
		UnknownOptions string   `json:"unknown_options,omitempty"`
		Options        []Option `json:"options,omitempty"`
		Script         string   `json:"script"`
	}

	// Option declares one option of a command.
	Option struct {
		Name        string   `json:"name,omitempty"`
		Aliases     []string `json:"aliases"`
		Kind        string   `json:"kind,omitempty"`
		Description string   `json:"description,omitempty"`
	}
)

// Parse decodes and validates manifest data. filename is used in errors.
func Parse(data []byte, filename string) (*Manifest, error) {
	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	m := res.Value
	m.Path = filename
	return m, nil
}

// Load reads the manifest at path. Failures are actionable errors linked to
// the manifest guides.
func Load(path string) (*Manifest, error) {
	res, err := cueutil.ParseFile[Manifest](schema, path, "#Manifest")
	if errors.Is(err, os.ErrNotExist) {
		return nil, issue.New("load manifest",
			issue.Resource(path),
			issue.WithGuide(issue.ManifestNotFoundId),
			issue.Hint("Pass --manifest <file> or set CLIROUTE_MANIFEST"),
			issue.Cause(err))
	}
	if err != nil {
		return nil, issue.New("load manifest",
			issue.Resource(path),
			issue.WithGuide(issue.ManifestParseErrorId),
			issue.Hint(fmt.Sprintf("Run 'cliroute check -m %s' to list every problem", path)),
			issue.Cause(err))
	}
	m := res.Value
	m.Path = path
	return m, nil
}

// Key returns the normalized command name.
func (c Command) Key() string {
	return strings.Join(strings.Fields(c.Name), " ")
}
