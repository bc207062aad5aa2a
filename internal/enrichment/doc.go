// Package enrichment resolves canonical film metadata for accepted candidates.
//
// The first TMDB search hit for the sanitized video title wins. Its details
// supply year, director, two leads, poster, and the IMDb id used for award
// lookups. Misses leave fields empty and fall back to the video thumbnail;
// TMDB request failures abort the run.
package enrichment
