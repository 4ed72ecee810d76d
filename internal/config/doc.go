// Package config loads, normalizes, and validates juice plant configuration.
//
// It supplies repository defaults (two plants, 6/4/3 workers, capacity 10
// queues, five second runs), expands user paths, reads TOML files, and honours
// JUICERY_* environment overrides. CLI flags are applied on top by the
// command layer before Validate runs again.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors keyed by section.key.
package config
