// Package tmdb provides the minimal TMDB API client used during metadata
// enrichment.
//
// It authenticates requests and exposes movie search plus movie detail
// retrieval with credits and external identifiers appended in one call.
// Responses are strongly typed so enrichment can pick the release year,
// director, leads, and poster path. Options allow tests to supply custom HTTP
// clients without modifying production code.
package tmdb
