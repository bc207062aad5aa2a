// Package rowfill fills named rows with accepted films.
//
// Fill shuffles a row's query pool once, pages through each term up to a
// fixed budget, and stops the moment the row is full. Fallback makes a single
// page pass over a generic pool for rows that came up short. Both share the
// run's SeenSet so an id is accepted into at most one row.
package rowfill
