package controllers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"assistant/models"
	"assistant/services"
)

// Controller handles the HTTP surface for the auxiliary services
type Controller struct {
	frontendLog *services.FrontendLogService
	search      *services.WebSearchService
	logger      zerolog.Logger
}

// NewController creates a new controller instance
func NewController(frontendLog *services.FrontendLogService, search *services.WebSearchService, logger zerolog.Logger) *Controller {
	return &Controller{
		frontendLog: frontendLog,
		search:      search,
		logger:      logger,
	}
}

// writeJSON writes a JSON response with the given status code
func (c *Controller) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		c.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (c *Controller) writeError(w http.ResponseWriter, statusCode int, message string) {
	c.writeJSON(w, statusCode, models.ErrorResponse{
		Status: models.StatusError,
		Error:  message,
	})
}

// clientIP extracts the originating client address, preferring proxy headers
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First address in the chain is the original client
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
