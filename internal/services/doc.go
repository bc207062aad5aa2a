// Package services defines shared utilities consumed by the curation workflow
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, row names, and search terms
//     for logging.
//   - Structured error markers plus the Wrap helper that separate
//     configuration problems, broken upstream services, row shortfalls, and
//     output failures.
//   - ExitCode, which turns those markers into distinct process exit statuses.
//
// Use these helpers when wiring new components so failure reporting stays
// uniform across the run.
package services
