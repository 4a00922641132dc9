package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/golang/groupcache/lru"
)

const DefaultCacheSize = 128

type cachedParse struct {
	doc   Document
	diags []Diagnostic
}

// Cache memoizes parse results keyed by the SHA-256 of the input text.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	hits   uint64
	misses uint64
}

func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Cache{lru: lru.New(maxEntries)}
}

// Checksum returns the hex SHA-256 of sql, the key used by Cache.
func Checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Parse(sql string) Document {
	doc, _ := c.ParseWithDiagnostics(sql)
	return doc
}

func (c *Cache) ParseWithDiagnostics(sql string) (Document, []Diagnostic) {
	doc, diags, _ := c.ParseCached(sql)
	return doc, diags
}

// ParseCached is ParseWithDiagnostics that also reports whether the result
// came from the cache.
func (c *Cache) ParseCached(sql string) (Document, []Diagnostic, bool) {
	key := Checksum(sql)

	c.mu.Lock()
	if v, ok := c.lru.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		entry := v.(cachedParse)
		return entry.doc, entry.diags, true
	}
	c.misses++
	c.mu.Unlock()

	// Parsing runs outside the lock; concurrent misses on the same key both
	// parse and store equal results.
	doc, diags := ParseWithDiagnostics(sql)

	c.mu.Lock()
	c.lru.Add(key, cachedParse{doc: doc, diags: diags})
	c.mu.Unlock()
	return doc, diags, false
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.hits, c.misses = 0, 0
}
