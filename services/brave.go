package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assistant/models"
)

const (
	braveSearchEndpoint = "https://api.search.brave.com/res/v1/web/search"
	braveSearchTimeout  = 30 * time.Second
	braveMaxBodyBytes   = 2 << 20 // 2 MiB
	braveMaxExtraSnips  = 2
)

// Inline note for Brave upstream failures (non-200 or transport error)
const noteBraveFailed = "[System Note: Brave search failed. Please check your API key.]"

// braveSearchResponse represents the API response from Brave Search
type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title         string   `json:"title"`
			URL           string   `json:"url"`
			Description   string   `json:"description"`
			ExtraSnippets []string `json:"extra_snippets"`
		} `json:"results"`
	} `json:"web"`
}

// braveConfigured reports whether the Brave path can issue requests
func (s *WebSearchService) braveConfigured() bool {
	return s.braveEnabled && s.braveAPIKey != ""
}

// searchBrave runs a Brave Search API query and formats the results. Upstream
// failures degrade to an inline note rather than an error.
func (s *WebSearchService) searchBrave(ctx context.Context, query string, maxResults, fullContentResults int) string {
	if !s.braveConfigured() {
		return noteBraveNotConfigured
	}

	start := time.Now()

	endpoint, err := url.Parse(s.braveBaseURL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Invalid Brave search endpoint")
		return noteBraveFailed
	}
	params := endpoint.Query()
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", maxResults))
	endpoint.RawQuery = params.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, braveSearchTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create Brave search request")
		return noteBraveFailed
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Subscription-Token", s.braveAPIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Brave search request failed")
		return noteBraveFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, braveMaxBodyBytes))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read Brave search response")
		return noteBraveFailed
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", truncateText(string(body), 300)).
			Msg("Brave search returned non-200")
		return noteBraveFailed
	}

	var decoded braveSearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to parse Brave search response")
		return noteBraveFailed
	}

	if len(decoded.Web.Results) == 0 {
		return noResultsMessage
	}

	hits := decoded.Web.Results
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	results := make([]models.SearchResult, 0, len(hits))
	for i, hit := range hits {
		title := hit.Title
		if title == "" {
			title = "No Title"
		}
		summary := hit.Description
		if summary == "" {
			summary = "No description available."
		}
		if len(hit.ExtraSnippets) > 0 {
			extra := hit.ExtraSnippets
			if len(extra) > braveMaxExtraSnips {
				extra = extra[:braveMaxExtraSnips]
			}
			summary += "\n" + strings.Join(extra, "\n")
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
