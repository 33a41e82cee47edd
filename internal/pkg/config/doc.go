// Package config provides the settings structs used by the CLI and the REST oracle.
//
// Settings carry mapstructure tags for loading from YAML or the environment and
// validate tags checked by go-playground/validator. Every settings struct exposes
// a Validate method that callers run before wiring dependencies.
package config
