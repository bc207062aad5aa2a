// Package catalog holds the data model of a daily curation run and the rules
// that decide which search candidates may enter it.
//
// A Candidate is a raw search result. The Validator screens candidates by
// identifier format, title, and duration. Accepted candidates become Items,
// which are grouped into rows and flattened into the Payload written at the
// end of a run. SeenSet is the run-scoped registry that keeps an identifier
// from appearing in two rows.
package catalog
