// Package logging builds the slog loggers used across movienight.
//
// Two formats are supported: a console layout with a
// "time LEVEL [component] Row ("query") – message" header followed by one
// indented line per field, and JSON with ts/level/msg keys. File outputs are
// rotated with lumberjack. Context helpers stamp run ids, row names, and
// search terms so every record can be traced back to the row being filled.
package logging
