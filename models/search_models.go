package models

// SearchProvider identifies a web search backend
type SearchProvider string

const (
	ProviderDuckDuckGo SearchProvider = "duckduckgo"
	ProviderBrave      SearchProvider = "brave"
	ProviderTavily     SearchProvider = "tavily"
	ProviderExa        SearchProvider = "exa"
)

// WebSearchRequest represents a request to the web search service
type WebSearchRequest struct {
	Query              string         `json:"query"`
	Provider           SearchProvider `json:"provider"`
	MaxResults         int            `json:"max_results,omitempty"`
	FullContentResults int            `json:"full_content_results,omitempty"`
}

// SearchResult represents one normalized web search hit. Index is 1-based
// and contiguous in provider-returned order. Content is only set when a
// full-text fetch succeeded within the time budget.
type SearchResult struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Content string `json:"content,omitempty"`
}

// WebSearchResponse represents the response for search requests. Results is
// a single formatted text block intended for a downstream LLM context.
type WebSearchResponse struct {
	BaseResponse
	Query    string         `json:"query"`
	Provider SearchProvider `json:"provider"`
	Results  string         `json:"results"`
}
