// Package history keeps a local ledger of completed builds.
//
// Each successful `pypeline build` or `pypeline package` appends one record
// (strategy, artifact counts, sizes, verification outcome) to a SQLite
// database outside the project tree. The ledger is informational; a failure
// to record never fails a build.
package history
