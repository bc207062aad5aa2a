// Package workflow runs one daily curation pass.
//
// The Runner fills rows in declared order against a single run-scoped
// SeenSet, tops up short rows from the fallback pool, and fails the whole run
// with a ShortfallError when a row still cannot reach its item count. The
// payload is validated and handed to the Writer only after every row is
// complete, so a failed run never leaves a partial artifact behind.
package workflow
