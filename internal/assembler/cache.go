package assembler

import (
	"hash/fnv"
	"sync"
	"time"
)

type cacheKey struct {
	careerID  string
	sessionID string
	question  uint64
}

type cacheEntry struct {
	bundle  Bundle
	created time.Time
}

// bundleCache memoizes assembled bundles per (career, session, question)
// with a wall-clock TTL. Retrieval can include session-private résumé
// chunks, so entries are never shared across sessions. Cached bundles
// never include history; the caller attaches the live conversation after
// lookup.
type bundleCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

func newBundleCache(ttl time.Duration) *bundleCache {
	return &bundleCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

func questionHash(question string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(question))
	return h.Sum64()
}

func (c *bundleCache) get(careerID, sessionID, question string) (Bundle, bool) {
	if c.ttl <= 0 {
		return Bundle{}, false
	}
	key := cacheKey{careerID: careerID, sessionID: sessionID, question: questionHash(question)}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Bundle{}, false
	}
	if c.now().Sub(entry.created) >= c.ttl {
		delete(c.entries, key)
		return Bundle{}, false
	}
	return entry.bundle, true
}

func (c *bundleCache) put(careerID, sessionID, question string, b Bundle) {
	if c.ttl <= 0 {
		return
	}
	key := cacheKey{careerID: careerID, sessionID: sessionID, question: questionHash(question)}

	c.mu.Lock()
	c.entries[key] = cacheEntry{bundle: b, created: c.now()}
	c.mu.Unlock()
}

func (c *bundleCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
