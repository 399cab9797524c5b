package news

import "strings"

// FilterByTitle keeps items whose title contains search, ignoring case.
// An empty search keeps everything; items without a title never match a
// non-empty search.
func FilterByTitle(items []Item, search string) []Item {
	if search == "" {
		return items
	}

	needle := strings.ToLower(search)
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(it.Title), needle) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
