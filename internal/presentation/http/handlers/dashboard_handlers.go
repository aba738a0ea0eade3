package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// DashboardHandlers serves the admin analytics views. Each response is the
// cached serialized payload straight from the stats service.
type DashboardHandlers struct {
	stats  *services.StatsService
	logger *logging.ChanneledLogger
}

func NewDashboardHandlers(stats *services.StatsService, logger *logging.ChanneledLogger) *DashboardHandlers {
	return &DashboardHandlers{
		stats:  stats,
		logger: logger,
	}
}

// GetStats returns the main dashboard view.
func (h *DashboardHandlers) GetStats(c *gin.Context) {
	blob, err := h.stats.Dashboard()
	respondView(c, blob, err)
}

// GetPieCharts returns the pie chart view.
func (h *DashboardHandlers) GetPieCharts(c *gin.Context) {
	blob, err := h.stats.Pie()
	respondView(c, blob, err)
}

// GetBarCharts returns the bar chart view.
func (h *DashboardHandlers) GetBarCharts(c *gin.Context) {
	blob, err := h.stats.Bar()
	respondView(c, blob, err)
}

// GetLineCharts returns the line chart view.
func (h *DashboardHandlers) GetLineCharts(c *gin.Context) {
	blob, err := h.stats.Line()
	respondView(c, blob, err)
}
