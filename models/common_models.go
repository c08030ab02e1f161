package models

import "time"

// Response status constants
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BaseResponse represents common response fields
type BaseResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents a plain error payload
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Metadata represents generic key-value metadata
type Metadata map[string]interface{}
