package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	duckDuckGoEndpoint = "https://api.duckduckgo.com/"
	duckDuckGoTimeout  = 10 * time.Second
)

// DuckDuckGoHit represents a single raw DuckDuckGo result
type DuckDuckGoHit struct {
	Title   string
	URL     string
	Snippet string
}

// DuckDuckGoClient performs text searches against the DuckDuckGo instant
// answer API. It requires no API key, but availability depends on the
// deployment environment, so the search service treats a missing client as
// a soft condition rather than an error.
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDuckDuckGoClient creates a new DuckDuckGo client
func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL: duckDuckGoEndpoint,
		httpClient: &http.Client{
			Timeout: duckDuckGoTimeout,
		},
	}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	Heading       string     `json:"Heading"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search runs a text search and returns up to maxResults hits
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]DuckDuckGoHit, error) {
	apiURL := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	var decoded ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	hits := make([]DuckDuckGoHit, 0, maxResults)

	// The abstract, when present, is the best-quality hit.
	if decoded.AbstractText != "" {
		hits = append(hits, DuckDuckGoHit{
			Title:   decoded.Heading,
			URL:     decoded.AbstractURL,
			Snippet: decoded.AbstractText,
		})
	}

	var appendTopic func(topic ddgTopic)
	appendTopic = func(topic ddgTopic) {
		if len(hits) >= maxResults {
			return
		}
		if topic.Text != "" {
			title, snippet := splitTopicText(topic.Text)
			hits = append(hits, DuckDuckGoHit{
				Title:   title,
				URL:     topic.FirstURL,
				Snippet: snippet,
			})
		}
		for _, child := range topic.Topics {
			appendTopic(child)
		}
	}
	for _, topic := range decoded.RelatedTopics {
		appendTopic(topic)
	}

	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits, nil
}

// splitTopicText splits a "Title - snippet" topic string into its parts
func splitTopicText(text string) (title string, snippet string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(text), ""
}
