// SPDX-License-Identifier: MPL-2.0

package config

import (
	"github.com/caarlos0/env/v11"
)

// Environment holds the settings read from the process environment.
type Environment struct {
	ConfigPath string `env:"CLIROUTE_CONFIG"`
	Manifest   string `env:"CLIROUTE_MANIFEST"`
	LogLevel   string `env:"CLIROUTE_LOG_LEVEL"`
	Verbose    *bool  `env:"CLIROUTE_VERBOSE"`
	// NoColor follows the no-color.org convention: any non-empty value.
	NoColor string `env:"NO_COLOR"`
}

// ReadEnvironment parses the process environment.
func ReadEnvironment() (*Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EnvironmentFrom parses vars instead of the process environment.
func EnvironmentFrom(vars map[string]string) (*Environment, error) {
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return nil, err
	}
	return &e, nil
}

// overrides returns the viper keys the environment sets.
func (e *Environment) overrides() map[string]any {
	out := make(map[string]any)
	if e == nil {
		return out
	}
	if e.Manifest != "" {
		out["dispatch.manifest"] = e.Manifest
	}
	if e.LogLevel != "" {
		out["log.level"] = e.LogLevel
	}
	if e.Verbose != nil {
		out["ui.verbose"] = *e.Verbose
	}
	if e.NoColor != "" {
		out["ui.no_color"] = true
	}
	return out
}
