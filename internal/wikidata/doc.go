// Package wikidata runs the single SPARQL lookup used for award badges: the
// "award received" statements of a film identified by its IMDb id.
package wikidata
