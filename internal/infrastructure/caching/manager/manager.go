// Package manager provides the authoritative process-local cache instance
// backing the storefront's read-through views.
package manager

import (
	"sync"

	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/keys"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// Interface assertion to ensure Manager implements the cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager is an RWMutex-guarded map of typed keys to serialized values.
// Values never expire; every mutation path is responsible for purging the
// keys it makes stale.
type Manager struct {
	mu      sync.RWMutex
	entries map[keys.Key][]byte
	hits    int
	misses  int
	logger  *logging.ChanneledLogger
}

// NewManager creates an empty cache manager.
func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager")
	}

	return &Manager{
		entries: make(map[keys.Key][]byte),
		logger:  logger,
	}
}

// Has reports whether a value is cached for the key without counting a
// hit or miss.
func (m *Manager) Has(key keys.Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// Get returns the cached value for the key.
func (m *Manager) Get(key keys.Key) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return value, ok
}

// Set stores the value, overwriting any previous entry unconditionally.
func (m *Manager) Set(key keys.Key, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value

	if m.logger != nil {
		m.logger.Cache().Debug("Cache set", "key", key.String(), "bytes", len(value))
	}
}

// Delete removes the key. Absent keys are a silent no-op.
func (m *Manager) Delete(key keys.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)

	if m.logger != nil {
		m.logger.Cache().Debug("Cache delete", "key", key.String())
	}
}

// Stats returns hit/miss counters and the current entry count and byte size.
func (m *Manager) Stats() interfaces.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var size int64
	for _, v := range m.entries {
		size += int64(len(v))
	}

	return interfaces.CacheStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: len(m.entries),
		Size:    size,
	}
}

// InvalidateAll empties the cache. Counters survive so hit ratios remain
// observable across a full flush.
func (m *Manager) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[keys.Key][]byte)

	if m.logger != nil {
		m.logger.Cache().Info("Cache fully invalidated")
	}
}
