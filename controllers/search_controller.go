package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"assistant/models"
)

// SearchHandler processes web search requests
func (c *Controller) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req models.WebSearchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		c.writeError(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}
	if req.Provider == "" {
		c.writeError(w, http.StatusBadRequest, "Provider is required")
		return
	}

	formatted, err := c.search.Search(r.Context(), req)
	if err != nil {
		// Unknown or deferred providers are caller bugs, not soft conditions
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, models.WebSearchResponse{
		BaseResponse: models.BaseResponse{
			Status:    models.StatusSuccess,
			Timestamp: time.Now(),
		},
		Query:    req.Query,
		Provider: req.Provider,
		Results:  formatted,
	})
}

// SearchStatusHandler reports the configuration state of the search service
func (c *Controller) SearchStatusHandler(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.search.GetStatus())
}
