package db

import "github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"

// SearchQuery is the input for a full-text search.
type SearchQuery struct {
	// Match is the relevance-scored text predicate.
	Match predicate.Predicate
	// Filters restrict the hit set without affecting scores.
	Filters []predicate.Predicate
	Facets  []FacetSpec
	// Sort lists fields to order by, "-" prefix for descending. Empty keeps score order.
	Sort   []string
	Offset int
	Limit  int
	// Fields lists stored fields to return with each hit.
	Fields []string
}

// FacetSpec requests value counts for one field.
type FacetSpec struct {
	Name  string
	Field string
	Size  int
}

// RunOptions configure one engine invocation.
type RunOptions struct {
	// SpellingQuery is the text to compute a suggestion for. Nil disables it.
	SpellingQuery *string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total      int
	Entries    []SearchEntry
	Facets     map[string][]FacetCount
	Suggestion string
	// SuggestionErr reports a failed suggestion without failing the search.
	SuggestionErr error
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]any
}

// FacetCount is the number of hits holding one term.
type FacetCount struct {
	Term  string
	Count int
}
