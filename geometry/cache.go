package geometry

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// CacheKey is a BLAKE2b-256 digest of a resolved import URL. Keying the
// cache on a digest rather than the raw URL means a serialized cache (see
// EncodeCache) never carries local filesystem paths in its keyspace, so two
// hosts can compare keys without leaking where either one's files live.
type CacheKey [32]byte

// KeyForURL hashes a resolved URL into a CacheKey.
func KeyForURL(url string) CacheKey {
	return blake2b.Sum256([]byte(url))
}

// String returns the key as hex, for logging.
func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// CacheEntry is one resolved import: the geometry (or nil, for text/data
// imports that produced a value rather than a Node) plus the raw bytes the
// import was decoded from, kept so EncodeCache can round-trip entries the
// evaluator hasn't re-fetched.
type CacheEntry struct {
	URL  string
	Node *Node
	Raw  []byte
}

// Cache is the per-run import cache threaded through the evaluator's
// EvaluationContext: each distinct resolved URL is fetched and decoded at
// most once per evaluation, matching the language's "imports are cached by
// resolved URL" guarantee.
type Cache struct {
	mu      sync.Mutex
	entries map[CacheKey]CacheEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]CacheEntry)}
}

// Get returns the cached entry for url, if present.
func (c *Cache) Get(url string) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[KeyForURL(url)]
	return e, ok
}

// Put inserts or replaces the cache entry for url.
func (c *Cache) Put(url string, node *Node, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[KeyForURL(url)] = CacheEntry{URL: url, Node: node, Raw: raw}
}

// Invalidate drops the cache entry for url, forcing the next import of it
// to re-fetch and re-decode. Used by WatchDelegate when the underlying file
// changes on disk.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, KeyForURL(url))
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// snapshot copies out entries for serialization without holding the lock
// across the caller's encode step.
func (c *Cache) snapshot() []CacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}

// restore replaces the cache's contents with entries, re-deriving keys from
// each entry's URL.
func (c *Cache) restore(entries []CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]CacheEntry, len(entries))
	for _, e := range entries {
		c.entries[KeyForURL(e.URL)] = e
	}
}
