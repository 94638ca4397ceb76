// Package catalog fetches the remote animated-emoji catalog and derives
// the persisted indexes from it.
//
// The catalog is fetched once per run and treated as read-only afterwards.
// Two artifacts are derived: a flat snapshot of the raw item list
// (_metadata.json) written before any download begins, and a category index
// (_categories.json) grouping item summaries by category. The index depends
// only on the catalog, never on download outcomes.
package catalog
