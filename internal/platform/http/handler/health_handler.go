// Package handler provides HTTP handlers for platform level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves /healthz. With a nil Pinger it only reports liveness.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler that also checks db.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Health answers HEAD with 200 and OPTIONS with 204, everything else with a
// JSON status. A failing database ping turns the response into a 503.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	status := http.StatusOK
	body := gin.H{"status": "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			slog.Warn("health check: database unreachable", "error", err)
			status = http.StatusServiceUnavailable
			body = gin.H{"status": "unavailable", "database": "down"}
		}
	}

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(status)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(status, body)
	}
}
