// Package config holds the docrisk configuration surface.
//
// Configuration is loaded once at startup, validated, and passed by
// reference into the extractors and the scorer. Nothing mutates the
// configuration after validation, so detection rules cannot change
// mid-analysis.
//
// Design decision: All defaults live here as named constants and in
// NewConfig, so the tool runs unconfigured. A YAML overrides file
// (.docrisk, searched in the current directory and then the home
// directory) can replace the keyword vocabulary, clause patterns and the
// numeric thresholds; every override passes the same Validate as CLI
// flags. Out-of-range values are rejected with a descriptive sentinel
// error, never silently clamped.
package config
