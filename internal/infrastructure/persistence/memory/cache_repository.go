package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lezzetli/v1/internal/ports/outbound"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository is an in-memory outbound.CacheRepository with lazy
// expiry. A miss returns a nil payload and a nil error, matching the
// Redis implementation.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCacheRepository creates an empty in-memory cache.
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{entries: make(map[string]cacheEntry)}
}

// Get retrieves a value. A missing or expired key is not an error.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a value with a TTL. A zero TTL means no expiry.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

// Delete removes a value.
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}
