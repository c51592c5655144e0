package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// New builds a capacity-bounded, TTL-expiring cache for keyed values of
// type V.
func New[V any](capacity uint64, ttl time.Duration) *ttlcache.Cache[string, V] {
	c := ttlcache.New[string, V](
		ttlcache.WithCapacity[string, V](capacity),
		ttlcache.WithTTL[string, V](ttl),
	)
	go c.Start()

	return c
}

// Caches bundles the engine's three named caches, built once at process
// startup and shared across requests.
type Caches struct {
	// QueryRelationHistory caches a relation's Overpass bus-area query
	// response for 2 hours, keyed by download-history session.
	QueryRelationHistory *ttlcache.Cache[string, [][]byte]

	// QueryParents caches a way-id-set's parent-relation query response
	// for 60 seconds — short-lived, since a just-submitted edit must be
	// reflected promptly.
	QueryParents *ttlcache.Cache[string, []byte]

	// UserProfile caches an authenticated user's OSM profile for 2 hours.
	UserProfile *ttlcache.Cache[string, []byte]
}

// NewCaches builds the engine's standard cache set.
func NewCaches() *Caches {
	return &Caches{
		QueryRelationHistory: New[[][]byte](1024, 2*time.Hour),
		QueryParents:         New[[]byte](128, time.Minute),
		UserProfile:          New[[]byte](1024, 2*time.Hour),
	}
}

// Stop shuts down every cache's background eviction goroutine.
func (c *Caches) Stop() {
	c.QueryRelationHistory.Stop()
	c.QueryParents.Stop()
	c.UserProfile.Stop()
}
