// Package output writes and reads the daily payload artifact.
//
// Payloads are encoded with two-space indentation and unescaped UTF-8,
// checked against an embedded JSON schema, and written through a temp file
// and rename so readers never observe a half-written document. AcquireLock
// keeps two runs from writing the same artifact at once.
package output
