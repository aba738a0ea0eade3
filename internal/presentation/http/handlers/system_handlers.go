package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/infrastructure/caching/interfaces"
	"github.com/brightloom/storefront-go/internal/infrastructure/database"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/performance"
)

// SystemHandlers serves health and operational metrics.
type SystemHandlers struct {
	db    *database.Database
	cache interfaces.Cache
	perf  *performance.Tracker
}

func NewSystemHandlers(db *database.Database, cache interfaces.Cache, perf *performance.Tracker) *SystemHandlers {
	return &SystemHandlers{
		db:    db,
		cache: cache,
		perf:  perf,
	}
}

// Health reports liveness and record store connectivity.
func (h *SystemHandlers) Health(c *gin.Context) {
	if err := h.db.Conn.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics reports cache statistics and per-operation performance summaries.
func (h *SystemHandlers) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cache":      h.cache.Stats(),
		"operations": h.perf.GetSummary(),
	})
}
