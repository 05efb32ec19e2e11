package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	eventHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Events    string `json:"events"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil
// checker reports the dependency as disconnected.
func NewHealthController(dbHealthChecker, eventHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		eventHealthChecker: eventHealthChecker,
	}
}

// Check handles GET /health requests.
// The API stays "ok" while dependencies are down; their state is reported separately.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  connectionStatus(h.dbHealthChecker),
		Events:    connectionStatus(h.eventHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}

func connectionStatus(checker func() bool) string {
	if checker != nil && checker() {
		return "connected"
	}
	return "disconnected"
}
