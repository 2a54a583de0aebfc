package server

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// pageCache keeps rendered page bodies keyed by request path. A nil
// pageCache caches nothing.
type pageCache struct {
	cache *gocache.Cache
}

func newPageCache(ttl time.Duration) *pageCache {
	if ttl <= 0 {
		return nil
	}
	return &pageCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *pageCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (c *pageCache) Set(key string, value []byte) {
	if c == nil {
		return
	}
	c.cache.SetDefault(key, value)
}

func (c *pageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}
