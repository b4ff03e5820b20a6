package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qreats/backend/internal/infrastructure/persistence"
	"github.com/qreats/backend/internal/interfaces/http/dto"
	"github.com/qreats/backend/internal/interfaces/http/middleware"
)

// DependencyCheck probes one backing service (redis, kafka, ...)
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler reports liveness of the service and its dependencies
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	checks  []DependencyCheck
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database, checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{
		db:      db,
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// HealthResponse is the body of GET /health
// @Description Service and dependency status
type HealthResponse struct {
	Status       string                       `json:"status" example:"healthy"`
	Timestamp    time.Time                    `json:"timestamp"`
	Database     string                       `json:"database" example:"up"`
	Pool         *persistence.ConnectionStats `json:"pool,omitempty"`
	Dependencies map[string]string            `json:"dependencies,omitempty"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Pings the database and every configured dependency
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "up",
	}

	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "down: " + err.Error()
	} else if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}

	if len(h.checks) > 0 {
		resp.Dependencies = make(map[string]string, len(h.checks))
		for _, dep := range h.checks {
			if err := dep.Check(ctx); err != nil {
				resp.Dependencies[dep.Name] = "down: " + err.Error()
				// Cache and broker outages degrade the service without stopping the ledger
				if resp.Status == "healthy" {
					resp.Status = "degraded"
				}
				continue
			}
			resp.Dependencies[dep.Name] = "up"
		}
	}

	status := http.StatusOK
	if resp.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// NotFound answers unmatched routes with the standard error envelope
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
}
