package cache

import "fmt"

// Key construction is the caller's contract: one key per distinct list
// query, one key per conversation detail. The shapes mirror the original
// dashboard so operators recognize them in logs.

// ListKey builds the cache key for a list query. Empty parameters
// collapse to their defaults so equivalent queries share an entry.
func ListKey(status, search, sortBy string) string {
	if status == "" {
		status = "all"
	}
	if search == "" {
		search = "none"
	}
	if sortBy == "" {
		sortBy = "recent"
	}
	return fmt.Sprintf("conversations:%s:%s:%s", status, search, sortBy)
}

// DetailKey builds the cache key for a conversation detail view.
func DetailKey(conversationID string) string {
	return "messages:" + conversationID
}
