package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, New(0).ttl)
	assert.Equal(t, DefaultTTL, New(-time.Second).ttl)
	assert.Equal(t, time.Minute, New(time.Minute).ttl)
}

func TestGetSetRoundTrip(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", []string{"v"})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"v"}, got)
}

func TestLazyExpiry(t *testing.T) {
	c := New(300 * time.Second)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("k", 1)

	// one second before expiry the entry is still served
	c.now = func() time.Time { return base.Add(299 * time.Second) }
	_, ok := c.Get("k")
	assert.True(t, ok)

	// past expiry the entry is dropped on read
	c.now = func() time.Time { return base.Add(301 * time.Second) }
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetResetsExpiry(t *testing.T) {
	c := New(300 * time.Second)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set("k", 1)

	c.now = func() time.Time { return base.Add(200 * time.Second) }
	c.Set("k", 2)

	c.now = func() time.Time { return base.Add(400 * time.Second) }
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestDeleteAndFlush(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestKeyShapes(t *testing.T) {
	assert.Equal(t, "conversations:all:none:recent", ListKey("", "", ""))
	assert.Equal(t, "conversations:active:jane:revenue", ListKey("active", "jane", "revenue"))
	assert.Equal(t, "messages:conv_1", DetailKey("conv_1"))
}

func TestDistinctQueriesDistinctKeys(t *testing.T) {
	keys := map[string]bool{
		ListKey("", "", ""):           true,
		ListKey("active", "", ""):     true,
		ListKey("", "jane", ""):       true,
		ListKey("", "", "revenue"):    true,
		ListKey("active", "", "unread"): true,
	}
	assert.Len(t, keys, 5)
}
