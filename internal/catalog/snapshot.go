package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Filenames of the derived artifacts inside the output directory. The
// underscore prefix keeps them sorted ahead of the per-item payloads.
const (
	MetadataFilename   = "_metadata.json"
	CategoriesFilename = "_categories.json"
)

// WriteMetadata persists the raw catalog snapshot into dir. It runs before
// any download so a crash mid-run still leaves the catalog recoverable.
func WriteMetadata(dir string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	path := filepath.Join(dir, MetadataFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", MetadataFilename, err)
	}
	return nil
}

// ReadMetadata loads a previously written catalog snapshot from dir.
func ReadMetadata(dir string) ([]Item, error) {
	path := filepath.Join(dir, MetadataFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", MetadataFilename, err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", MetadataFilename, err)
	}
	for idx := range items {
		items[idx].normalize()
	}
	return items, nil
}
