package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"assistant/models"
)

// sensitiveMetadataKeys is the fixed denylist of metadata keys that are
// dropped before a line is rendered. Matching is case-sensitive and literal.
var sensitiveMetadataKeys = map[string]bool{
	"password": true,
	"token":    true,
	"secret":   true,
	"key":      true,
}

const sinkTimestampFormat = "2006-01-02 15:04:05"

// FrontendLogService appends frontend diagnostic events to a dedicated log
// file. The sink is opened once for the process lifetime and is never shared
// with the operational logger, so frontend events stay isolated from
// application logging.
type FrontendLogService struct {
	sink   *lumberjack.Logger
	logger zerolog.Logger
	now    func() time.Time
}

// NewFrontendLogService creates a new frontend log service writing to path.
// Internal failures are reported on logger, never to the sink itself.
func NewFrontendLogService(path string, logger zerolog.Logger) *FrontendLogService {
	sink := &lumberjack.Logger{
		Filename:   filepath.Clean(path),
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	return &FrontendLogService{
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Record validates the event, renders a single line, and appends it to the
// frontend log. It returns false instead of failing the caller: any internal
// error is reported to the operational logger only.
func (s *FrontendLogService) Record(entry models.FrontendLogEntry, clientIP string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Failed to log frontend event")
			ok = false
		}
	}()

	level, err := models.ParseLogLevel(entry.Level)
	if err != nil {
		s.logger.Error().Err(err).Msg("Rejected frontend event")
		return false
	}

	line := s.formatLine(level, entry, clientIP)

	// One Write call per event; the sink serializes concurrent appends.
	if _, err := s.sink.Write([]byte(line + "\n")); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write frontend event")
		return false
	}
	return true
}

// formatLine renders the line format used by frontend.log:
// TIMESTAMP | LEVEL | [component] message | url=... | ip=... \nStack trace:... | metadata={...}
func (s *FrontendLogService) formatLine(level models.LogLevel, entry models.FrontendLogEntry, clientIP string) string {
	parts := []string{entry.Message}

	if entry.Component != "" {
		parts = append([]string{fmt.Sprintf("[%s]", entry.Component)}, parts...)
	}
	if entry.URL != "" {
		parts = append(parts, fmt.Sprintf("| url=%s", entry.URL))
	}
	if clientIP != "" {
		parts = append(parts, fmt.Sprintf("| ip=%s", clientIP))
	}
	if entry.StackTrace != "" {
		parts = append(parts, fmt.Sprintf("\nStack trace:\n%s", entry.StackTrace))
	}
	if len(entry.Metadata) > 0 {
		if rendered := renderSafeMetadata(entry.Metadata); rendered != "" {
			parts = append(parts, fmt.Sprintf("| metadata=%s", rendered))
		}
	}

	message := strings.Join(parts, " ")
	return fmt.Sprintf("%s | %s | %s", s.now().Format(sinkTimestampFormat), level.SinkName(), message)
}

// renderSafeMetadata drops sensitive keys and renders the rest as a
// deterministic key-sorted {k: v, ...} block. Returns "" if nothing survives
// redaction.
func renderSafeMetadata(metadata models.Metadata) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		if sensitiveMetadataKeys[k] {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %v", k, metadata[k]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// GetStatus returns the status of the frontend log service
func (s *FrontendLogService) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"status": "enabled",
		"file":   s.sink.Filename,
	}
}

// Close closes the underlying log file
func (s *FrontendLogService) Close() error {
	return s.sink.Close()
}
