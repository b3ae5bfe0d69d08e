// Package config loads, normalizes, and validates popcorn configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// POPCORN_CATALOG. The Config type centralizes every knob the CLI and HTTP
// server need, so the catalog location, data directory, and recommendation
// sizes are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
