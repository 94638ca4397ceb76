// Package run orchestrates one full sync: catalog fetch, snapshot and index
// persistence, pooled downloads, and the history ledger entry.
//
// A flock on the output directory enforces single-instance execution so two
// syncs cannot race the same mirror. Only configuration, lock, and catalog
// failures abort a run; item-level download failures only affect counters.
package run
