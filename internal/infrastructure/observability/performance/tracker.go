// Package performance provides performance tracking and monitoring
// capabilities for storefront-go operations.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
	counter int64              // Monotonic marker counter
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers            int           `json:"maxMarkers"`            // Maximum number of markers to retain
	SlowResponseThreshold time.Duration `json:"slowResponseThreshold"` // Threshold for slow-operation warnings
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:            10000,
		SlowResponseThreshold: 500 * time.Millisecond,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter++
	id := fmt.Sprintf("%s-%d", operation, t.counter)

	if len(t.markers) >= t.config.MaxMarkers {
		t.evictOldestLocked()
	}
	t.markers[id] = marker

	return marker
}

// evictOldestLocked drops the oldest marker. Caller holds t.mu.
func (t *Tracker) evictOldestLocked() {
	var oldestID string
	var oldestTime time.Time
	for id, m := range t.markers {
		if oldestID == "" || m.StartTime.Before(oldestTime) {
			oldestID = id
			oldestTime = m.StartTime
		}
	}
	if oldestID != "" {
		delete(t.markers, oldestID)
	}
}

// Summary aggregates completed markers into per-operation statistics
type Summary struct {
	Operations map[string]OperationStats `json:"operations"`
	Uptime     time.Duration             `json:"uptime"`
}

// OperationStats holds aggregate timings for a single operation name
type OperationStats struct {
	Count       int           `json:"count"`
	Failures    int           `json:"failures"`
	TotalTime   time.Duration `json:"totalTime"`
	AverageTime time.Duration `json:"averageTime"`
	MaxTime     time.Duration `json:"maxTime"`
	CacheHits   int           `json:"cacheHits"`
	CacheMisses int           `json:"cacheMisses"`
}

// GetSummary returns aggregated statistics over all completed markers
func (t *Tracker) GetSummary() *Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]OperationStats)
	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		s := stats[m.Operation]
		s.Count++
		if !m.Success {
			s.Failures++
		}
		s.TotalTime += m.Duration
		if m.Duration > s.MaxTime {
			s.MaxTime = m.Duration
		}
		s.CacheHits += m.CacheHits
		s.CacheMisses += m.CacheMisses
		stats[m.Operation] = s
	}

	for op, s := range stats {
		if s.Count > 0 {
			s.AverageTime = s.TotalTime / time.Duration(s.Count)
		}
		stats[op] = s
	}

	return &Summary{
		Operations: stats,
		Uptime:     time.Since(t.started),
	}
}

// IsSlow reports whether a duration exceeds the configured slow threshold
func (t *Tracker) IsSlow(d time.Duration) bool {
	return d > t.config.SlowResponseThreshold
}
