package cellar

import (
	"sync"
	"time"
)

type cacheEntry struct {
	body      string
	expiresAt time.Time
}

// bodyCache is a thread-safe in-memory TTL cache for fetched document
// bodies. Entries expire lazily on access.
type bodyCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newBodyCache(ttl time.Duration) *bodyCache {
	return &bodyCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (bc *bodyCache) Get(key string) (string, bool) {
	bc.mu.RLock()
	entry, exists := bc.entries[key]
	bc.mu.RUnlock()

	if !exists {
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		bc.mu.Lock()
		// Re-check in case another goroutine replaced the entry.
		if current, still := bc.entries[key]; still && time.Now().After(current.expiresAt) {
			delete(bc.entries, key)
		}
		bc.mu.Unlock()
		return "", false
	}

	return entry.body, true
}

func (bc *bodyCache) Set(key, body string) {
	bc.mu.Lock()
	bc.entries[key] = cacheEntry{
		body:      body,
		expiresAt: time.Now().Add(bc.ttl),
	}
	bc.mu.Unlock()
}

func (bc *bodyCache) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.entries)
}
