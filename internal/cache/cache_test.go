package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/cache"
)

func TestNew_GetSetRoundTrip(t *testing.T) {
	c := cache.New[string](16, time.Minute)
	defer c.Stop()

	c.Set("relation:1", "payload", time.Minute)

	item := c.Get("relation:1")
	require.NotNil(t, item)
	assert.Equal(t, "payload", item.Value())
}

func TestNew_MissReturnsNil(t *testing.T) {
	c := cache.New[string](16, time.Minute)
	defer c.Stop()

	assert.Nil(t, c.Get("missing"))
}

func TestNew_EntryExpiresAfterTTL(t *testing.T) {
	c := cache.New[string](16, time.Millisecond)
	defer c.Stop()

	c.Set("k", "v", time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, c.Get("k"))
}

func TestNewCaches_BuildsThreeIndependentCaches(t *testing.T) {
	caches := cache.NewCaches()
	defer caches.Stop()

	caches.QueryRelationHistory.Set("rel:1", [][]byte{[]byte("a")}, 0)
	caches.QueryParents.Set("way:1", []byte("b"), 0)
	caches.UserProfile.Set("user:1", []byte("c"), 0)

	assert.Equal(t, [][]byte{[]byte("a")}, caches.QueryRelationHistory.Get("rel:1").Value())
	assert.Equal(t, []byte("b"), caches.QueryParents.Get("way:1").Value())
	assert.Equal(t, []byte("c"), caches.UserProfile.Get("user:1").Value())

	assert.Nil(t, caches.QueryRelationHistory.Get("way:1"))
}
