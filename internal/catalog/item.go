package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultCategory is assigned to items whose catalog record lists no
// categories, so every item lands in exactly one group at minimum.
const DefaultCategory = "Other"

// Item is one downloadable animation as described by the remote catalog.
// Codepoint is the primary identifier; multi-codepoint sequences are
// space-separated (e.g. "1f9d1 200d 1f3a8").
type Item struct {
	Codepoint  string   `json:"codepoint"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
	Popularity int      `json:"popularity"`
}

// Summary is the lightweight per-item record stored in the category index.
type Summary struct {
	Codepoint  string   `json:"codepoint"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	Popularity int      `json:"popularity"`
}

// Summary returns the index entry for the item.
func (i Item) Summary() Summary {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return Summary{
		Codepoint:  i.Codepoint,
		Name:       i.Name,
		Tags:       tags,
		Popularity: i.Popularity,
	}
}

// EffectiveCategories returns the categories the item belongs to, falling
// back to DefaultCategory when the catalog record lists none.
func (i Item) EffectiveCategories() []string {
	if len(i.Categories) == 0 {
		return []string{DefaultCategory}
	}
	return i.Categories
}

// normalize trims whitespace and applies NFC so that visually identical
// names and tags compare equal regardless of how the catalog encoded them.
func (i *Item) normalize() {
	i.Codepoint = strings.TrimSpace(i.Codepoint)
	i.Name = norm.NFC.String(strings.TrimSpace(i.Name))
	if i.Tags == nil {
		i.Tags = []string{}
	}
	for idx, tag := range i.Tags {
		i.Tags[idx] = norm.NFC.String(strings.TrimSpace(tag))
	}
	if i.Categories == nil {
		i.Categories = []string{}
	}
	for idx, category := range i.Categories {
		i.Categories[idx] = norm.NFC.String(strings.TrimSpace(category))
	}
}
