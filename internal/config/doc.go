// Package config loads, normalizes, and validates apollo configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// APOLLO_MUSIC_DIRECTORY, optionally seeded from a .env file. The Config type
// centralizes every knob the CLI needs so the catalog location, library roots,
// naming pattern, and matching thresholds are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
