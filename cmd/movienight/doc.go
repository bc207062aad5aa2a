// Command movienight builds the daily curated film rows artifact.
//
// `movienight run` loads configuration, fills every row from YouTube search
// with TMDB and Wikidata enrichment, and writes data/today.json only when
// every row is complete. The exit status separates configuration problems
// (2), upstream failures (3), content shortfalls (4), and output errors (5).
// `show` renders an artifact as a table; `config init` and `config validate`
// manage the TOML configuration.
package main
