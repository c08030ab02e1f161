package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"assistant/models"
)

// LogHandler receives a single frontend log event and appends it to the
// frontend log file
func (c *Controller) LogHandler(w http.ResponseWriter, r *http.Request) {
	var entry models.FrontendLogEntry

	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := entry.Validate(); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !c.frontendLog.Record(entry, clientIP(r)) {
		c.writeJSON(w, http.StatusInternalServerError, models.LogResponse{
			BaseResponse: models.BaseResponse{
				Status:    models.StatusError,
				Error:     "Failed to record log event",
				Timestamp: time.Now(),
			},
			Logged: 0,
		})
		return
	}

	c.writeJSON(w, http.StatusOK, models.LogResponse{
		BaseResponse: models.BaseResponse{
			Status:    models.StatusSuccess,
			Timestamp: time.Now(),
		},
		Logged: 1,
	})
}

// LogBatchHandler receives an ordered batch of up to 100 frontend log events
func (c *Controller) LogBatchHandler(w http.ResponseWriter, r *http.Request) {
	var batch models.FrontendLogBatch

	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := batch.Validate(); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ip := clientIP(r)
	logged := 0
	for _, entry := range batch.Entries {
		if c.frontendLog.Record(entry, ip) {
			logged++
		}
	}

	status := models.StatusSuccess
	statusCode := http.StatusOK
	if logged < len(batch.Entries) {
		status = models.StatusError
		statusCode = http.StatusInternalServerError
	}
	c.writeJSON(w, statusCode, models.LogResponse{
		BaseResponse: models.BaseResponse{
			Status:    status,
			Timestamp: time.Now(),
		},
		Logged: logged,
	})
}
