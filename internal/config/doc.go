// SPDX-License-Identifier: MPL-2.0

// Package config loads cliroute settings.
//
// Values come from three layers, later layers winning: built-in defaults held
// by Viper, a config file (config.cue validated against the embedded #Config
// schema, or config.toml validated against the same schema), and the process
// environment (CLIROUTE_* and NO_COLOR).
package config
