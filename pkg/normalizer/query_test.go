package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fandash/pkg/models"
)

func conv(id, name string, spent float64, unread int, status models.Status, lastBody, lastSent string) models.Conversation {
	c := models.Conversation{
		ID:          id,
		Fan:         models.Fan{Name: name, TotalSpent: spent},
		UnreadCount: unread,
		Status:      status,
	}
	if lastSent != "" {
		c.LastMessage = &models.Message{Body: lastBody, SentAt: lastSent}
	}
	return c
}

func fixture() []models.Conversation {
	return []models.Conversation{
		conv("c1", "Jane Doe", 150, 3, models.StatusActive, "Can't wait for the next drop!", "2024-02-20T18:45:00.000Z"),
		conv("c2", "Mike Chen", 89.5, 0, models.StatusActive, "Unlocked it, worth every penny", "2024-02-19T22:05:00.000Z"),
		conv("c3", "Sofia Reyes", 1250, 1, models.StatusExpired, "Renewing next month, promise", "2024-02-03T22:40:00.000Z"),
		conv("c4", "Tom Abbott", 1250, 7, models.StatusActive, "Saving up for the bundle", "2024-02-18T09:12:00.000Z"),
		conv("c5", "Ava Park", 0, 2, models.StatusActive, "", ""),
	}
}

func ids(convs []models.Conversation) []string {
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = c.ID
	}
	return out
}

func TestQueryDefaultSortRecent(t *testing.T) {
	got := Query(fixture(), "", "", "")
	// missing last message sorts last
	assert.Equal(t, []string{"c1", "c2", "c4", "c3", "c5"}, ids(got))
}

func TestQueryStatusFilter(t *testing.T) {
	assert.Equal(t, []string{"c3"}, ids(Query(fixture(), "expired", "", "")))
	assert.Len(t, Query(fixture(), "active", "", ""), 4)
	assert.Len(t, Query(fixture(), "all", "", ""), 5)
	// unknown status matches nothing rather than erroring
	assert.Empty(t, Query(fixture(), "archived", "", ""))
}

func TestQuerySearch(t *testing.T) {
	// fan name, case-insensitive
	assert.Equal(t, []string{"c2"}, ids(Query(fixture(), "", "MIKE", "")))
	// last message body
	assert.Equal(t, []string{"c4"}, ids(Query(fixture(), "", "bundle", "")))
	// conversations without a last message only match on name
	assert.Equal(t, []string{"c5"}, ids(Query(fixture(), "", "ava", "")))
	assert.Empty(t, Query(fixture(), "", "nobody", ""))
}

func TestQuerySortRevenueStable(t *testing.T) {
	got := Query(fixture(), "", "", SortRevenue)
	// c3 and c4 tie on spend; stable sort keeps input order
	assert.Equal(t, []string{"c3", "c4", "c1", "c2", "c5"}, ids(got))
}

func TestQuerySortUnread(t *testing.T) {
	got := Query(fixture(), "", "", SortUnread)
	assert.Equal(t, []string{"c4", "c1", "c5", "c3", "c2"}, ids(got))
}

func TestQueryUnknownSortFallsBackToRecent(t *testing.T) {
	assert.Equal(t, ids(Query(fixture(), "", "", "")), ids(Query(fixture(), "", "", "alphabetical")))
}

func TestQueryComposesInOrder(t *testing.T) {
	got := Query(fixture(), "active", "e", SortRevenue)
	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Equal(t, models.StatusActive, c.Status)
	}
	// filter ran before sort: expired big spender is absent
	assert.NotContains(t, ids(got), "c3")
	assert.Equal(t, "c4", got[0].ID)
}
