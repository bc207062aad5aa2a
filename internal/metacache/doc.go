// Package metacache keeps recent TMDB and Wikidata lookups in SQLite.
//
// Searcher and AwardSource wrap the live clients and cache only successful
// responses for the configured TTL. It stores upstream responses only; seen
// ids and run history are never persisted.
package metacache
