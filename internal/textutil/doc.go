// Package textutil provides the small text decoders used while screening
// search candidates.
//
// The primary use cases are:
//   - Decoding compact durations ("PT1H35M") into whole minutes
//   - Cleaning noisy upload titles into queries for the metadata search
//   - Rune-safe truncation
//
// Every function is pure; malformed input degrades to a zero value rather
// than an error.
package textutil
