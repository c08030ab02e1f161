package models

import (
	"fmt"
	"unicode/utf8"
)

// Field length limits for incoming frontend log entries
const (
	MaxLogMessageLength    = 10000
	MaxLogURLLength        = 2000
	MaxLogUserAgentLength  = 500
	MaxLogStackTraceLength = 50000
	MaxLogComponentLength  = 100
	MaxLogBatchEntries     = 100
)

// LogLevel represents the severity of a frontend log event
type LogLevel string

const (
	LevelDebug   LogLevel = "debug"
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
	LevelFatal   LogLevel = "fatal"
)

// ParseLogLevel validates a level string against the five recognized levels.
// Unknown levels are rejected rather than silently downgraded to info.
func ParseLogLevel(s string) (LogLevel, error) {
	switch LogLevel(s) {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelFatal:
		return LogLevel(s), nil
	}
	return "", fmt.Errorf("unrecognized log level: %q", s)
}

// SinkName returns the level name used in the frontend.log line format
func (l LogLevel) SinkName() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "CRITICAL"
	}
	return "INFO"
}

// FrontendLogEntry represents a single diagnostic event sent by the frontend
type FrontendLogEntry struct {
	Level      string   `json:"level"`
	Message    string   `json:"message"`
	Timestamp  string   `json:"timestamp,omitempty"`
	URL        string   `json:"url,omitempty"`
	UserAgent  string   `json:"user_agent,omitempty"`
	StackTrace string   `json:"stack_trace,omitempty"`
	Component  string   `json:"component,omitempty"`
	Metadata   Metadata `json:"metadata,omitempty"`
}

// Validate checks required fields and length bounds. Limits count
// characters, not bytes; values at exactly the limit are accepted and
// limit+1 is rejected.
func (e *FrontendLogEntry) Validate() error {
	if _, err := ParseLogLevel(e.Level); err != nil {
		return err
	}
	if e.Message == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(e.Message) > MaxLogMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxLogMessageLength)
	}
	if utf8.RuneCountInString(e.URL) > MaxLogURLLength {
		return fmt.Errorf("url exceeds %d characters", MaxLogURLLength)
	}
	if utf8.RuneCountInString(e.UserAgent) > MaxLogUserAgentLength {
		return fmt.Errorf("user_agent exceeds %d characters", MaxLogUserAgentLength)
	}
	if utf8.RuneCountInString(e.StackTrace) > MaxLogStackTraceLength {
		return fmt.Errorf("stack_trace exceeds %d characters", MaxLogStackTraceLength)
	}
	if utf8.RuneCountInString(e.Component) > MaxLogComponentLength {
		return fmt.Errorf("component exceeds %d characters", MaxLogComponentLength)
	}
	return nil
}

// FrontendLogBatch represents an ordered batch of frontend log entries
type FrontendLogBatch struct {
	Entries []FrontendLogEntry `json:"entries"`
}

// Validate checks batch size and every contained entry
func (b *FrontendLogBatch) Validate() error {
	if len(b.Entries) == 0 {
		return fmt.Errorf("entries is required")
	}
	if len(b.Entries) > MaxLogBatchEntries {
		return fmt.Errorf("batch exceeds %d entries", MaxLogBatchEntries)
	}
	for i := range b.Entries {
		if err := b.Entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// LogResponse represents the response for log submissions
type LogResponse struct {
	BaseResponse
	Logged int `json:"logged"`
}
