package download

import (
	"strings"

	"notofetch/internal/catalog"
)

// DestinationKey derives the stable on-disk identity for an item:
// "{codepoint}_{tag}" where tag is the first catalog tag (or the display
// name when the item has no tags) with surrounding ':' stripped and '-'
// replaced by '_'. The key doubles as the idempotency key for reruns, so it
// must stay deterministic across runs for the same catalog record.
func DestinationKey(item catalog.Item) string {
	tag := item.Name
	if len(item.Tags) > 0 {
		tag = item.Tags[0]
	}
	tag = strings.Trim(tag, ":")
	tag = strings.ReplaceAll(tag, "-", "_")
	return item.Codepoint + "_" + tag
}

// DestinationFilename is the key plus the payload extension.
func DestinationFilename(item catalog.Item) string {
	return DestinationKey(item) + ".json"
}
