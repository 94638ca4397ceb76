// Package download fetches catalog items into the output directory.
//
// Fetcher handles a single item: it skips work when the destination file
// already exists, tries the primary URL form, and falls back to an
// underscore-joined identifier when the primary returns a non-success status.
// Pool fans Fetcher out over the whole catalog with a bounded number of
// workers and aggregates per-item outcomes into a Summary.
//
// Item-level failures are data, not errors: a failed download never stops
// the run, it only shows up in the counters.
package download
