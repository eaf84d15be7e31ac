package identity

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedRecord wraps a user record with the schema version it was written
// under, so entries cached before a shape change are treated as misses.
type cachedRecord struct {
	Version  int
	Record   *UserRecord
	CachedAt time.Time
}

// recordCache is a bounded TTL cache of user records keyed by UID
type recordCache struct {
	lru *expirable.LRU[string, *cachedRecord]
}

func newRecordCache(size int, ttl time.Duration) *recordCache {
	return &recordCache{
		lru: expirable.NewLRU[string, *cachedRecord](size, nil, ttl),
	}
}

func (c *recordCache) Get(uid string) (*UserRecord, bool) {
	entry, ok := c.lru.Get(uid)
	if !ok {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(uid)
		return nil, false
	}
	return entry.Record, true
}

func (c *recordCache) Set(uid string, record *UserRecord) {
	c.lru.Add(uid, &cachedRecord{
		Version:  CacheSchemaVersion,
		Record:   record,
		CachedAt: time.Now(),
	})
}

func (c *recordCache) Remove(uid string) {
	c.lru.Remove(uid)
}
