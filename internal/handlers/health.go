package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck provides a liveness endpoint
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "catalog-import-service",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC(),
	})
}

// Pinger reports whether a dependency is reachable
type Pinger func(c *gin.Context) error

// ReadinessCheck reports ready once every dependency answers
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func ReadinessCheck(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{}
		ready := true
		for name, ping := range checks {
			if err := ping(c); err != nil {
				status[name] = err.Error()
				ready = false
				continue
			}
			status[name] = "ok"
		}

		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"ready":  ready,
			"checks": status,
		})
	}
}
