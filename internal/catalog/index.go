package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Index maps category name to the item summaries belonging to it. Within a
// category, summaries follow catalog iteration order. One item may appear
// under several categories; the entries are identical.
type Index map[string][]Summary

// BuildIndex inverts the per-item category sets into a category index.
// Pure function of the catalog; download outcomes play no part.
func BuildIndex(items []Item) Index {
	index := make(Index)
	for _, item := range items {
		summary := item.Summary()
		for _, category := range item.EffectiveCategories() {
			index[category] = append(index[category], summary)
		}
	}
	return index
}

// CategoryCount pairs a category name with its item count.
type CategoryCount struct {
	Name  string
	Count int
}

// Counts returns per-category item counts sorted by category name.
func (ix Index) Counts() []CategoryCount {
	counts := make([]CategoryCount, 0, len(ix))
	for name, summaries := range ix {
		counts = append(counts, CategoryCount{Name: name, Count: len(summaries)})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts
}

// WriteIndex persists the category index into dir. encoding/json emits map
// keys in sorted order, which gives the reproducible category ordering the
// persisted form requires.
func WriteIndex(dir string, ix Index) error {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal category index: %w", err)
	}
	path := filepath.Join(dir, CategoriesFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", CategoriesFilename, err)
	}
	return nil
}
