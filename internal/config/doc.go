// Package config loads, normalizes, and validates movienight configuration data.
//
// It supplies repository defaults (the row table, query pools, award
// allow-list, and acceptance thresholds), reads TOML files, and honours the
// YOUTUBE_API_KEY and TMDB_API_KEY environment fallbacks. Missing credentials
// are reported here so a run never reaches the network half-configured.
package config
