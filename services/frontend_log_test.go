package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant/models"
)

func newTestLogService(t *testing.T) (*FrontendLogService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frontend.log")
	svc := NewFrontendLogService(path, zerolog.Nop())
	t.Cleanup(func() { svc.Close() })

	// Fixed clock for deterministic line prefixes
	svc.now = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return svc, path
}

func readLogFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRecordWritesFormattedLine(t *testing.T) {
	svc, path := newTestLogService(t)

	ok := svc.Record(models.FrontendLogEntry{
		Level:   "error",
		Message: "render failed",
	}, "")
	require.True(t, ok)

	content := readLogFile(t, path)
	assert.Equal(t, "2025-01-02 03:04:05 | ERROR | render failed\n", content)
}

func TestRecordAllSegments(t *testing.T) {
	svc, path := newTestLogService(t)

	ok := svc.Record(models.FrontendLogEntry{
		Level:      "fatal",
		Message:    "boom",
		Component:  "chat-widget",
		URL:        "https://app.example.com/chat",
		StackTrace: "TypeError: x is undefined",
		Metadata:   models.Metadata{"user_id": 42, "session": "abc"},
	}, "203.0.113.7")
	require.True(t, ok)

	content := readLogFile(t, path)
	expected := "2025-01-02 03:04:05 | CRITICAL | [chat-widget] boom " +
		"| url=https://app.example.com/chat | ip=203.0.113.7 " +
		"\nStack trace:\nTypeError: x is undefined " +
		"| metadata={session: abc, user_id: 42}\n"
	assert.Equal(t, expected, content)
}

func TestRecordRedactsSensitiveMetadata(t *testing.T) {
	svc, path := newTestLogService(t)

	ok := svc.Record(models.FrontendLogEntry{
		Level:   "info",
		Message: "login attempt",
		Metadata: models.Metadata{
			"password": "hunter2",
			"token":    "tok-123",
			"secret":   "s3cr3t",
			"key":      "k-456",
			"user_id":  7,
		},
	}, "")
	require.True(t, ok)

	content := readLogFile(t, path)
	assert.Contains(t, content, "metadata={user_id: 7}")
	for _, forbidden := range []string{"password", "hunter2", "token", "tok-123", "secret", "s3cr3t", "key", "k-456"} {
		assert.NotContains(t, content, forbidden)
	}
}

func TestRecordOmitsMetadataWhenAllRedacted(t *testing.T) {
	svc, path := newTestLogService(t)

	ok := svc.Record(models.FrontendLogEntry{
		Level:    "info",
		Message:  "saved credentials",
		Metadata: models.Metadata{"password": "x"},
	}, "")
	require.True(t, ok)

	content := readLogFile(t, path)
	assert.NotContains(t, content, "metadata=")
}

func TestRecordRedactionIsCaseSensitive(t *testing.T) {
	svc, path := newTestLogService(t)

	// The denylist is literal; "Password" is not on it.
	ok := svc.Record(models.FrontendLogEntry{
		Level:    "info",
		Message:  "m",
		Metadata: models.Metadata{"Password": "kept"},
	}, "")
	require.True(t, ok)

	content := readLogFile(t, path)
	assert.Contains(t, content, "Password: kept")
}

func TestRecordRejectsUnknownLevel(t *testing.T) {
	svc, path := newTestLogService(t)

	ok := svc.Record(models.FrontendLogEntry{
		Level:   "verbose",
		Message: "m",
	}, "")
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected events must not be written")
}

func TestRecordConcurrentAppends(t *testing.T) {
	svc, path := newTestLogService(t)

	done := make(chan bool)
	for i := 0; i < 20; i++ {
		go func() {
			done <- svc.Record(models.FrontendLogEntry{Level: "info", Message: "concurrent event"}, "")
		}()
	}
	for i := 0; i < 20; i++ {
		assert.True(t, <-done)
	}

	content := readLogFile(t, path)
	assert.Equal(t, 20, countLines(content))
}

func countLines(s string) int {
	count := 0
	for _, ch := range s {
		if ch == '\n' {
			count++
		}
	}
	return count
}
