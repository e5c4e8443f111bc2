// Package config loads, normalizes, and validates Finishline configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/finishline/config.toml or a
// project-local finishline.toml. Always obtain settings through this package
// so downstream code receives sanitized paths, a canonical bib prefix, and
// clear validation errors.
package config
