package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultReaderBaseURL = "https://r.jina.ai"
	readerMaxBodyBytes   = 2 << 20 // 2 MiB
)

// fetchFullContent fetches plain-text article content for targetURL through
// the reader endpoint (<base>/<target-url>). Any failure, non-200 response,
// or timeout returns "" so the caller falls back to the summary.
func (s *WebSearchService) fetchFullContent(ctx context.Context, targetURL string, timeout time.Duration) string {
	if targetURL == "" {
		return ""
	}
	readerURL := strings.TrimRight(s.readerBaseURL, "/") + "/" + targetURL

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, readerURL, nil)
	if err != nil {
		s.logger.Info().Err(err).Str("url", targetURL).Msg("Failed to create reader request")
		return ""
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Info().Err(err).Str("url", targetURL).Msg("Reader fetch failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Info().Int("status", resp.StatusCode).Str("url", targetURL).Msg("Reader returned non-200")
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, readerMaxBodyBytes))
	if err != nil {
		s.logger.Info().Err(err).Str("url", targetURL).Msg("Failed to read reader response")
		return ""
	}
	return string(body)
}
