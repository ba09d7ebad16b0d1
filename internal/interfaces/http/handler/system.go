package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/watchlist/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// HealthChecker is the part of a storage backend the health endpoint needs
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}

// poolReporter is implemented by the SQL backends
type poolReporter interface {
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	backend     HealthChecker
	logger      *zap.Logger
	startTime   time.Time
	pingTimeout time.Duration
	version     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(backend HealthChecker, logger *zap.Logger, version string) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{
		backend:     backend,
		logger:      logger,
		startTime:   time.Now(),
		pingTimeout: 3 * time.Second,
		version:     version,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string                       `json:"status" example:"healthy"`
	Storage   string                       `json:"storage" example:"mongo"`
	Version   string                       `json:"version,omitempty" example:"1.0.0"`
	GoVersion string                       `json:"go_version" example:"go1.25.5"`
	Uptime    string                       `json:"uptime" example:"1h30m45s"`
	Pool      *persistence.ConnectionStats `json:"pool,omitempty"`
	Error     string                       `json:"error,omitempty"`
}

// Health godoc
// @ID           healthCheck
// @Summary      Health check
// @Description  Pings the storage backend and reports pool statistics for SQL backends
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Storage:   h.backend.Name(),
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Pool:      h.poolStats(),
	}

	if err := h.backend.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed",
			zap.String("request_id", getRequestID(c)),
			zap.String("storage", resp.Storage),
			zap.Error(err),
		)
		resp.Status = "unhealthy"
		resp.Error = "storage unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SystemHandler) poolStats() *persistence.ConnectionStats {
	reporter, ok := h.backend.(poolReporter)
	if !ok {
		return nil
	}
	stats, err := reporter.Stats()
	if err != nil {
		return nil
	}
	return &stats
}

// PingResponse is the body of GET /api/ping
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Answers without touching storage
// @Tags         system
// @Produce      json
// @Success      200 {object} PingResponse
// @Router       /api/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
