package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"assistant/models"
	"assistant/utils"
)

// Search defaults and bounds
const (
	DefaultMaxResults = 5
	MaxMaxResults     = 10

	// Overall wall-clock budget for one search call, including enrichment
	searchTimeBudget = 60 * time.Second
	// Enrichment stops entirely once less than this budget remains
	minBudgetRemaining = 5 * time.Second
	// Per-fetch ceiling for full-content requests
	fullContentFetchTimeout = 25 * time.Second

	maxContentLength       = 2000
	maxSummaryLength       = 800
	minViableContentLength = 500
)

// Inline notes returned for soft provider conditions. These are returned to
// the caller in place of an error so a failed search degrades to a visible
// message instead of breaking the downstream consumer.
const (
	noteDuckDuckGoUnavailable = "[System Note: DuckDuckGo search is unavailable (DuckDuckGo support is disabled).]"
	noteDuckDuckGoFailed      = "[System Note: DuckDuckGo search failed. Please try again later.]"
	noteBraveNotConfigured    = "[System Note: Brave search is not configured. Set ENABLE_BRAVE=true and BRAVE_API_KEY.]"
	noResultsMessage          = "No web search results found."
)

// WebSearchService performs web searches through a caller-selected provider
// and formats the results as a single bounded text block. There is no
// fallback between providers and no caching between calls.
type WebSearchService struct {
	braveEnabled bool
	braveAPIKey  string
	braveBaseURL string

	ddg *DuckDuckGoClient // nil when DuckDuckGo support is disabled

	readerBaseURL string
	httpClient    *http.Client
	logger        zerolog.Logger

	// Budget knobs, initialized from the constants above
	budget          time.Duration
	minRemaining    time.Duration
	perFetchTimeout time.Duration
}

// NewWebSearchService creates a new web search service configured from the
// environment (ENABLE_BRAVE, BRAVE_API_KEY, ENABLE_DUCKDUCKGO,
// READER_BASE_URL).
func NewWebSearchService(logger zerolog.Logger) *WebSearchService {
	var ddg *DuckDuckGoClient
	if utils.EnvBool("ENABLE_DUCKDUCKGO", true) {
		ddg = NewDuckDuckGoClient()
	}

	return &WebSearchService{
		braveEnabled:  utils.EnvBool("ENABLE_BRAVE", false),
		braveAPIKey:   strings.TrimSpace(os.Getenv("BRAVE_API_KEY")),
		braveBaseURL:  braveSearchEndpoint,
		ddg:           ddg,
		readerBaseURL: utils.EnvOrDefault("READER_BASE_URL", defaultReaderBaseURL),
		// Timeouts are applied per request via context, not on the client.
		httpClient:      &http.Client{},
		logger:          logger,
		budget:          searchTimeBudget,
		minRemaining:    minBudgetRemaining,
		perFetchTimeout: fullContentFetchTimeout,
	}
}

// Search performs a web search for a single provider (no fallback).
//
// Soft conditions (provider unavailable, not configured, upstream failure)
// come back as inline "[System Note: ...]" text with a nil error. Selecting
// tavily/exa or an unrecognized provider is a caller bug and returns an
// error instead.
func (s *WebSearchService) Search(ctx context.Context, req models.WebSearchRequest) (string, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return "", fmt.Errorf("search query cannot be empty")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}

	switch req.Provider {
	case models.ProviderDuckDuckGo:
		if s.ddg == nil {
			return noteDuckDuckGoUnavailable, nil
		}
		return s.searchDuckDuckGo(ctx, query, maxResults, req.FullContentResults), nil
	case models.ProviderBrave:
		return s.searchBrave(ctx, query, maxResults, req.FullContentResults), nil
	case models.ProviderTavily, models.ProviderExa:
		return "", fmt.Errorf("provider %q is handled by the tools layer", req.Provider)
	default:
		return "", fmt.Errorf("unknown web search provider: %q", req.Provider)
	}
}

// searchDuckDuckGo runs a DuckDuckGo text search and formats the results
func (s *WebSearchService) searchDuckDuckGo(ctx context.Context, query string, maxResults, fullContentResults int) string {
	start := time.Now()

	hits, err := s.ddg.Search(ctx, query, maxResults)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("DuckDuckGo search failed")
		return noteDuckDuckGoFailed
	}
	if len(hits) == 0 {
		return noResultsMessage
	}

	results := make([]models.SearchResult, 0, len(hits))
	for i, hit := range hits {
		title := hit.Title
		if title == "" {
			title = "No Title"
		}
		summary := hit.Snippet
		if summary == "" {
			summary = "No description available."
		}
		results = append(results, models.SearchResult{
			Index:   i + 1,
			Title:   title,
			URL:     hit.URL,
			Summary: summary,
		})
	}

	s.enrichResults(ctx, start, results, fullContentResults)
	return formatSearchResults(results)
}

// enrichResults fetches full article text for the first fullContentResults
// ranked results, sequentially, under the overall wall-clock budget measured
// from start. A fetch is skipped for results without a URL; enrichment stops
// entirely once the remaining budget drops to minRemaining or below. Failed
// fetches leave Content empty with no retry.
func (s *WebSearchService) enrichResults(ctx context.Context, start time.Time, results []models.SearchResult, fullContentResults int) {
	if fullContentResults <= 0 {
		return
	}
	if fullContentResults > len(results) {
		fullContentResults = len(results)
	}

	for i := 0; i < fullContentResults; i++ {
		if results[i].URL == "" {
			continue
		}
		remaining := s.budget - time.Since(start)
		if remaining <= s.minRemaining {
			break
		}
		timeout := s.perFetchTimeout
		if remaining < timeout {
			timeout = remaining
		}

		content := s.fetchFullContent(ctx, results[i].URL, timeout)
		if content == "" {
			continue
		}
		if utf8.RuneCountInString(content) < minViableContentLength {
			content += "\n\n[System Note: Full content fetch yielded limited text. " +
				"Appending original summary.]\n" +
				"Original Summary: " + results[i].Summary
		}
		results[i].Content = content
	}
}

// formatSearchResults renders the results as one text block: each result
// shows its rank, title and URL, then full content (truncated to 2000 chars)
// when present, or the summary (truncated to 800 chars) otherwise.
func formatSearchResults(results []models.SearchResult) string {
	if len(results) == 0 {
		return noResultsMessage
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		text := fmt.Sprintf("Result %d:\nTitle: %s\nURL: %s", r.Index, r.Title, r.URL)
		if r.Content != "" {
			text += fmt.Sprintf("\nContent:\n%s", truncateText(r.Content, maxContentLength))
		} else {
			text += fmt.Sprintf("\nSummary: %s", truncateText(r.Summary, maxSummaryLength))
		}
		blocks = append(blocks, text)
	}
	return strings.Join(blocks, "\n\n")
}

// truncateText caps text at limit characters, appending "..." when
// truncated. Limits count characters, not bytes, so multi-byte text keeps
// its full budget and the cut never splits a rune.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// GetStatus returns the status of the web search service
func (s *WebSearchService) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"reader_base_url": s.readerBaseURL,
		"duckduckgo":      s.ddg != nil,
	}

	if s.braveConfigured() {
		status["brave"] = "enabled"
		// Mask API key for security
		if len(s.braveAPIKey) > 8 {
			status["brave_api_key"] = s.braveAPIKey[:4] + "..." + s.braveAPIKey[len(s.braveAPIKey)-4:]
		} else {
			status["brave_api_key"] = "***"
		}
	} else {
		status["brave"] = "disabled"
	}

	return status
}
