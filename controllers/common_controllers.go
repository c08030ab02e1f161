package controllers

import (
	"net/http"
)

// HealthHandler provides a health check endpoint
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":       "healthy",
		"service":      "assistant-backend",
		"endpoints":    []string{"/api/logs", "/api/logs/batch", "/api/search", "/api/search/status", "/health"},
		"frontend_log": c.frontendLog.GetStatus(),
		"search":       c.search.GetStatus(),
	}

	c.writeJSON(w, http.StatusOK, health)
}
