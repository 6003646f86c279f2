// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// DefaultManifest is the manifest file looked up in the working directory.
	DefaultManifest = "cliroute.cue"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is returned when a Config has invalid fields.
	ErrInvalidConfig = errors.New("invalid config")

	logLevels      = []string{"debug", "info", "warn", "error"}
	unknownOptions = []string{"fatal", "advisory"}
)

type (
	// ColorScheme selects the palette for styled output.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// one of the defined schemes.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects every field problem found in a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the effective configuration.
	Config struct {
		UI       UIConfig       `json:"ui" mapstructure:"ui" toml:"ui"`
		Log      LogConfig      `json:"log" mapstructure:"log" toml:"log"`
		Dispatch DispatchConfig `json:"dispatch" mapstructure:"dispatch" toml:"dispatch"`
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		NoColor     bool        `json:"no_color" mapstructure:"no_color" toml:"no_color"`
	}

	// LogConfig controls the diagnostic logger.
	LogConfig struct {
		Level string `json:"level" mapstructure:"level" toml:"level"`
	}

	// DispatchConfig controls how manifest commands are dispatched.
	DispatchConfig struct {
		// UnknownOptions is the policy for manifest commands that do not set
		// their own: "fatal" or "advisory".
		UnknownOptions string `json:"unknown_options" mapstructure:"unknown_options" toml:"unknown_options"`
		// Manifest is the manifest path used when neither a flag nor the
		// environment names one.
		Manifest string `json:"manifest" mapstructure:"manifest" toml:"manifest"`
	}
)

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// IsValid reports every invalid field of c.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q (valid: %s)", c.Log.Level, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(unknownOptions, c.Dispatch.UnknownOptions) {
		errs = append(errs, fmt.Errorf("dispatch.unknown_options %q (valid: %s)", c.Dispatch.UnknownOptions, strings.Join(unknownOptions, ", ")))
	}
	if strings.TrimSpace(c.Dispatch.Manifest) == "" {
		errs = append(errs, errors.New("dispatch.manifest must not be empty"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Dispatch: DispatchConfig{
			UnknownOptions: "fatal",
			Manifest:       DefaultManifest,
		},
	}
}
