// Package config loads, normalizes, and validates Stash configuration.
//
// Configuration is sourced from a TOML file (default ~/.config/stash/config.toml,
// or a project-local stash.toml), with environment variable fallbacks for
// secrets (STASH_JWT_SECRET, GROQ_API_KEY). Defaults live in defaults.go,
// normalization (path expansion, env fallbacks, zero-value backfill) in
// normalize.go, and validation in validate.go.
package config
