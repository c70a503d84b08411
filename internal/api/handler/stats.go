package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"infraghost/backend/internal/stats"
)

// GetStats aggregates the current report collection. A storage failure is an
// explicit error response, never a silently zeroed snapshot.
func (h *Handler) GetStats(c *gin.Context) {
	reports, err := h.Store.ListReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, stats.Aggregate(reports))
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetConfig exposes the public frontend configuration.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mapboxToken": h.Cfg.MapboxToken})
}
