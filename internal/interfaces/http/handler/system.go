package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHealthTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name          string
	version       string
	db            Pinger
	healthTimeout time.Duration
	startTime     time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil, in which
// case health only reports the process as up.
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		name:          name,
		version:       version,
		db:            db,
		healthTimeout: defaultHealthTimeout,
		startTime:     time.Now(),
	}
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health
// It pings the database within a short timeout.
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Database: "not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.L(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "disconnected"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"fec-mrp"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo handles GET /api/v1/system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.OK(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping handles GET /api/v1/system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.OK(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
