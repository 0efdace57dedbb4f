package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil redisHealthChecker reports Redis as disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	} else {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if h.redisHealthChecker != nil {
		redisStatus = "connected"
		if !h.redisHealthChecker() {
			redisStatus = "disconnected"
			status = "degraded"
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
