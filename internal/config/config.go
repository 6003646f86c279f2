// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/ftitreefly/cliroute/internal/issue"
	"github.com/ftitreefly/cliroute/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "cliroute"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
)

// Format is a config file format.
type Format string

const (
	FormatCUE  Format = "cue"
	FormatTOML Format = "toml"
)

// ErrConfigExists is returned by WriteDefault when the file exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the cliroute configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS, and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Library", "Application Support")
	default:
		dir = os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(dir, AppName), nil
}

// FormatOf infers the file format from path's extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatCUE
}

// LoadWithPath loads the configuration and reports which file it came from.
func LoadWithPath(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	environment := opts.Env
	if environment == nil {
		var err error
		if environment, err = ReadEnvironment(); err != nil {
			return nil, issue.Wrap(err, "read environment",
				issue.WithGuide(issue.ConfigLoadFailedId))
		}
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.no_color", defaults.UI.NoColor)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("dispatch.unknown_options", defaults.Dispatch.UnknownOptions)
	v.SetDefault("dispatch.manifest", defaults.Dispatch.Manifest)

	explicit := opts.ConfigFilePath
	if explicit == "" {
		explicit = environment.ConfigPath
	}

	path, err := locate(explicit, opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, issue.Wrap(err, "load configuration",
				issue.Resource(path),
				issue.WithGuide(issue.ConfigLoadFailedId),
				issue.Hint(
					"Check that the file matches the configuration schema",
					"Run 'cliroute config init --force' to start over"))
		}
	}

	for key, value := range environment.overrides() {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if ok, errs := cfg.IsValid(); !ok {
		return nil, issue.Wrap(errors.Join(errs...), "validate configuration",
			issue.WithGuide(issue.ConfigLoadFailedId))
	}

	return &Loaded{Config: &cfg, Path: path}, nil
}

// locate returns the config file to read, or "" when none exists.
func locate(explicit, dirOverride string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", issue.New("load configuration",
				issue.Resource(explicit),
				issue.WithGuide(issue.ConfigLoadFailedId),
				issue.Hint(
					"Verify the file path is correct",
					"Use 'cliroute config show' to see the default configuration"),
				issue.Cause(fmt.Errorf("config file not found: %s", explicit)))
		}
		return explicit, nil
	}

	dir := dirOverride
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}

	candidates := []string{
		filepath.Join(dir, ConfigFileName+"."+string(FormatCUE)),
		filepath.Join(dir, ConfigFileName+"."+string(FormatTOML)),
		ConfigFileName + "." + string(FormatCUE),
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}
	return "", nil
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	var m map[string]any
	if FormatOf(path) == FormatTOML {
		m, err = decodeTOML(data, path)
	} else {
		m, err = decodeCUE(data, path)
	}
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// decodeCUE validates a CUE document against #Config and decodes it into a
// map for Viper. It decodes into a map rather than Config so unset keys keep
// their Viper defaults.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	res, err := cueutil.ParseAndDecode[map[string]any]([]byte(configSchema), data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return nil, err
	}
	return *res.Value, nil
}

// decodeTOML decodes a TOML document and validates it against the same
// #Config schema as CUE files. The decoded document is handed to CUE as JSON,
// which CUE reads as a subset of its own syntax.
func decodeTOML(data []byte, path string) (map[string]any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decodeCUE(doc, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration in format to dir (the
// platform config directory when empty) and returns the file path.
func WriteDefault(dir string, format Format, force bool) (string, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+string(format))
	if !force && fileExists(path) {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	var content []byte
	switch format {
	case FormatTOML:
		var err error
		if content, err = GenerateTOML(DefaultConfig()); err != nil {
			return "", err
		}
	case FormatCUE:
		content = []byte(GenerateCUE(DefaultConfig()))
	default:
		return "", fmt.Errorf("unsupported config format %q", format)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GenerateCUE renders cfg as a CUE config file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// cliroute configuration\n\n")

	sb.WriteString("ui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tno_color:     %v\n", cfg.UI.NoColor)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	sb.WriteString("\ndispatch: {\n")
	fmt.Fprintf(&sb, "\tunknown_options: %q\n", cfg.Dispatch.UnknownOptions)
	fmt.Fprintf(&sb, "\tmanifest:        %q\n", cfg.Dispatch.Manifest)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders cfg as a TOML config file.
func GenerateTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append([]byte("# cliroute configuration\n\n"), out...), nil
}
