// Package history persists per-run summaries in a SQLite ledger.
//
// Each sync run is recorded with its counters and byte total so past runs
// can be inspected with `notofetch history`. The ledger is best effort: a
// recording failure is logged by the caller and never fails a run.
package history
