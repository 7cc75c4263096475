package handler

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the state of the optional cache. db is
// nil when the cache is disabled; that is healthy, not degraded.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	cacheStatus := "disabled"
	if h.db != nil {
		cacheStatus = "connected"
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			cacheStatus = "disconnected"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"cache":  cacheStatus,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache":  cacheStatus,
	})
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "trust-growth-backend",
		"status":  "running",
	})
}
