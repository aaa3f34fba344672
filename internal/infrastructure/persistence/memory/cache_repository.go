// Package memory provides an in-process cache repository, used when
// Redis is disabled. Entries expire lazily on read.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tastebite/platform/internal/ports/outbound"
)

// ErrCacheMiss is returned when a key is not present or expired.
var ErrCacheMiss = errors.New("cache miss")

type entry struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements outbound.CacheRepository on a map.
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCacheRepository creates a new in-memory cache repository.
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{entries: make(map[string]entry)}
}

func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	r.mu.Lock()
	r.entries[key] = e
	r.mu.Unlock()
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}
