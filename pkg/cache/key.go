package cache

import (
	"strings"
)

// Key identifies a cached identifier list.
type Key struct {
	// Namespace prefixes every key (e.g. "hn").
	Namespace string

	// List is the upstream list name (e.g. "newstories").
	List string
}

// NewStoriesKey is the fixed slot for the newest-stories identifier list.
var NewStoriesKey = Key{Namespace: "hn", List: "newstories"}

// String generates the store key.
// Format: namespace:list
//
// Example:
//
//	hn:newstories
func (k Key) String() string {
	parts := make([]string, 0, 2)
	if ns := strings.Trim(k.Namespace, ": "); ns != "" {
		parts = append(parts, ns)
	}
	if list := strings.Trim(k.List, ": /"); list != "" {
		parts = append(parts, list)
	}
	return strings.Join(parts, ":")
}
