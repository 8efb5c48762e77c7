// Package cache is a small in-process page cache: LRU bounded, TTL
// expired, with an injected clock so tests never sleep.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Entry holds one cached response.
type Entry struct {
	Body        []byte
	ContentType string
	ExpiresAt   time.Time
}

type Cache struct {
	lru *lru.Cache[string, Entry]
	ttl time.Duration
	now func() time.Time
}

// New builds a cache with the given entry capacity and TTL. A nil clock
// falls back to time.Now.
func New(size int, ttl time.Duration, now func() time.Time) (*Cache, error) {
	if now == nil {
		now = time.Now
	}
	l, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l, ttl: ttl, now: now}, nil
}

// Get returns the entry for key unless it is missing or expired.
func (c *Cache) Get(key string) (Entry, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return Entry{}, false
	}
	if c.now().After(entry.ExpiresAt) {
		c.lru.Remove(key)
		return Entry{}, false
	}
	return entry, true
}

// Set stores the entry under key with the configured TTL.
func (c *Cache) Set(key string, entry Entry) {
	entry.ExpiresAt = c.now().Add(c.ttl)
	c.lru.Add(key, entry)
}

// Delete drops a single key.
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.lru.Purge()
}
