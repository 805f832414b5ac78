// Package config loads, normalizes, and validates crossfade configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the library export location, the Navidrome database path,
// and migration behavior.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, a canonical merge mode, and clear validation
// errors.
package config
