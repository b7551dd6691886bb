package result

import (
	"maps"
	"slices"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
)

// Hit is a single search hit.
type Hit struct {
	id     string
	score  float64
	fields map[string]any
}

// NewHit creates a search hit with its stored fields.
func NewHit(id string, score float64, fields map[string]any) Hit {
	return Hit{id: id, score: score, fields: fields}
}

// ID returns the document identifier.
func (h Hit) ID() string { return h.id }

// Score returns the relevance score.
func (h Hit) Score() float64 { return h.score }

// Fields returns the stored document fields.
func (h Hit) Fields() map[string]any { return h.fields }

// FacetValue is the number of matching documents holding one value.
type FacetValue struct {
	Value string
	Count int
}

// Set is the read-only outcome of one engine execution.
type Set struct {
	total      int
	hits       []Hit
	facets     map[dimension.Dimension][]FacetValue
	suggestion string
}

// NewSet creates a result set. Suggestion is empty when none was computed.
func NewSet(total int, hits []Hit, facets map[dimension.Dimension][]FacetValue, suggestion string) Set {
	return Set{total: total, hits: hits, facets: facets, suggestion: suggestion}
}

// Total returns the number of matching documents across all pages.
func (s Set) Total() int { return s.total }

// Hits returns the hits on the requested page.
func (s Set) Hits() []Hit { return slices.Clone(s.hits) }

// Facets returns the facet counts per dimension.
func (s Set) Facets() map[dimension.Dimension][]FacetValue { return maps.Clone(s.facets) }

// Suggestion returns the spelling suggestion.
func (s Set) Suggestion() string { return s.suggestion }
