// Package config loads, normalizes, and validates recsweep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RECSWEEP_LOG_LEVEL and RECSWEEP_DRY_RUN. The Config type centralizes the
// daemon's sweep timing, matching thresholds, and state locations so the CLI
// and the sweep loop agree on one set of values.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
