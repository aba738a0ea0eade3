// Package interfaces defines the cache operation contract for the
// storefront's process-local view cache.
package interfaces

import "github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"

// Cache is a process-wide mapping from typed keys to serialized values.
// There is no expiration path: correctness depends entirely on callers
// invalidating proactively after every mutation.
type Cache interface {
	// Has reports whether a value is currently cached for the key.
	Has(key keys.Key) bool
	// Get returns the cached serialized value, or false on a miss.
	Get(key keys.Key) ([]byte, bool)
	// Set stores a serialized value, overwriting unconditionally.
	Set(key keys.Key, value []byte)
	// Delete removes a key. Deleting an absent key is a no-op, not an error.
	Delete(key keys.Key)
	// Stats returns hit/miss counters and current size.
	Stats() CacheStats
	// InvalidateAll empties the cache.
	InvalidateAll()
}

// CacheStats reports cache effectiveness counters.
type CacheStats struct {
	Hits    int   `json:"hits"`
	Misses  int   `json:"misses"`
	Entries int   `json:"entries"`
	Size    int64 `json:"size"`
}
