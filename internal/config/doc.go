// Package config implements the four-layer cascading configuration for kick.
//
// The effective configuration is resolved by merging, in order of increasing
// precedence: built-in defaults, the user config (~/.kickrc), the project
// config (./.kickrc), and a CLI-specified file. Merging is field-level:
// pointer-typed fields record whether a layer explicitly set a value, and
// only explicitly-set values override the layer below. Missing files are
// skipped silently; malformed files abort the run with a config error
// before any installer executes.
//
// The merged Config is immutable for the rest of the run. Validation is
// advisory: Validate returns problem descriptions rather than failing.
package config
