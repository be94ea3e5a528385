package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HealthHandler reports service liveness and readiness.
type HealthHandler struct {
	redis  *redis.Client
	logger *logrus.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(redisClient *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{redis: redisClient, logger: logger}
}

// GetHealth returns basic liveness.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "nhl-totals",
		"timestamp": time.Now().UTC(),
	})
}

// GetReady verifies the cache backend is reachable.
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := map[string]string{}
	status := http.StatusOK

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		h.logger.WithError(err).Warn("Redis readiness check failed")
		checks["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	c.JSON(status, gin.H{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
