package normalizer

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"fandash/pkg/models"
)

// Sort keys accepted by Query. Anything else falls back to SortRecent.
const (
	SortRecent  = "recent"
	SortRevenue = "revenue"
	SortUnread  = "unread"
)

// StatusAll is the wildcard status filter.
const StatusAll = "all"

// Query applies the list semantics in fixed order: status filter, then
// free-text search, then sort. Sorts are stable so equal keys keep their
// prior relative order.
func Query(convs []models.Conversation, statusFilter, search, sortBy string) []models.Conversation {
	out := convs

	if statusFilter != "" && statusFilter != StatusAll {
		out = lo.Filter(out, func(c models.Conversation, _ int) bool {
			return string(c.Status) == statusFilter
		})
	}

	if search != "" {
		q := strings.ToLower(search)
		out = lo.Filter(out, func(c models.Conversation, _ int) bool {
			if strings.Contains(strings.ToLower(c.Fan.Name), q) {
				return true
			}
			return c.LastMessage != nil && strings.Contains(strings.ToLower(c.LastMessage.Body), q)
		})
	}

	switch sortBy {
	case SortRevenue:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Fan.TotalSpent > out[j].Fan.TotalSpent
		})
	case SortUnread:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UnreadCount > out[j].UnreadCount
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return lastActivity(out[i]).After(lastActivity(out[j]))
		})
	}
	return out
}

// lastActivity treats a missing last message as the earliest possible
// time so those conversations sort last under the recent ordering.
func lastActivity(c models.Conversation) time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return ParseISO(c.LastMessage.SentAt)
}

func sortMessagesChronological(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return ParseISO(msgs[i].SentAt).Before(ParseISO(msgs[j].SentAt))
	})
}
