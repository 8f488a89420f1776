// Package search defines the web-search provider boundary used for grounding
// generation calls.
package search

import "context"

// Request holds provider-independent search parameters.
type Request struct {
	Query             string
	Topic             string // "general" or "news"
	MaxResults        int
	StartDate         string
	EndDate           string
	IncludeRawContent bool
}

// Result is a single search hit.
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Response is a completed search.
type Response struct {
	Query   string
	Results []Result
	Answer  string
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}
