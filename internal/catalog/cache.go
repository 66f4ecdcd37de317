package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/cybermarket/server/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

const listingKey = "listing"

type cachedListing struct {
	Version  string
	Items    []domain.Item
	CachedAt time.Time
}

// listingCache holds the full catalog listing with time-based expiration.
// Filters run against the cached slice, so only the unfiltered listing is
// ever stored.
type listingCache struct {
	lru *expirable.LRU[string, *cachedListing]
}

func newListingCache(ttl time.Duration) *listingCache {
	return &listingCache{
		lru: expirable.NewLRU[string, *cachedListing](1, nil, ttl),
	}
}

// Get returns the cached listing if present and version-compatible.
func (c *listingCache) Get() ([]domain.Item, bool) {
	entry, found := c.lru.Get(listingKey)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(listingKey)
		return nil, false
	}
	return entry.Items, true
}

// Set stores the full listing.
func (c *listingCache) Set(items []domain.Item) {
	c.lru.Add(listingKey, &cachedListing{
		Version:  CacheSchemaVersion,
		Items:    items,
		CachedAt: time.Now(),
	})
}

// Invalidate drops the cached listing. Call after any catalog write.
func (c *listingCache) Invalidate() {
	c.lru.Remove(listingKey)
}
