package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/database"
)

const probeTimeout = 5 * time.Second

// ModelRegistry is the part of service.Registry the probes consult
type ModelRegistry interface {
	Models() []service.ModelStatus
	Select(id entity.ModelID) (service.Classifier, error)
}

// readinessProber is implemented by classifiers backed by a remote server
type readinessProber interface {
	Ready(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db       *gorm.DB
	redis    *redis.Client
	registry ModelRegistry
}

// NewHealthHandler creates a new health handler. db and redis may be nil
// when history or caching is disabled.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, registry ModelRegistry) *HealthHandler {
	return &HealthHandler{
		db:       db,
		redis:    redis,
		registry: registry,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]string)
	healthy := true

	if h.db != nil {
		if err := database.Ping(ctx, h.db); err != nil {
			components["database"] = "error: " + err.Error()
			healthy = false
		} else {
			components["database"] = "ok"
		}
	} else {
		components["database"] = "not configured"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	available, total := h.countModels()
	components["models"] = fmt.Sprintf("%d/%d available", available, total)
	if available == 0 {
		healthy = false
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready. The service is ready once at least one model
// can serve predictions; remote models must also pass their own probe.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	if h.db != nil {
		if err := database.Ping(ctx, h.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
			return
		}
	}

	ready := h.readyModels(ctx)
	if len(ready) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "no model available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "models": ready})
}

func (h *HealthHandler) countModels() (available, total int) {
	if h.registry == nil {
		return 0, 0
	}
	for _, st := range h.registry.Models() {
		total++
		if st.Available {
			available++
		}
	}
	return available, total
}

func (h *HealthHandler) readyModels(ctx context.Context) []entity.ModelID {
	if h.registry == nil {
		return nil
	}

	var ready []entity.ModelID
	for _, st := range h.registry.Models() {
		if !st.Available {
			continue
		}
		clf, err := h.registry.Select(st.ID)
		if err != nil {
			continue
		}
		if p, ok := clf.(readinessProber); ok {
			if err := p.Ready(ctx); err != nil {
				continue
			}
		}
		ready = append(ready, st.ID)
	}
	return ready
}
