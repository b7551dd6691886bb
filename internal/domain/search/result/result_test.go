package result

import (
	"testing"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
)

func TestNewHit(t *testing.T) {
	h := NewHit("doc-1", 0.95, map[string]any{"title": "Budget"})

	if h.ID() != "doc-1" {
		t.Errorf("ID() = %q", h.ID())
	}
	if h.Score() != 0.95 {
		t.Errorf("Score() = %f", h.Score())
	}
	if h.Fields()["title"] != "Budget" {
		t.Errorf("Fields() = %v", h.Fields())
	}
}

func TestNewSet(t *testing.T) {
	facets := map[dimension.Dimension][]FacetValue{
		dimension.ContentType: {{Value: "pages.page", Count: 2}},
	}
	s := NewSet(42, []Hit{NewHit("a", 1, nil)}, facets, "budget")

	if s.Total() != 42 {
		t.Errorf("Total() = %d", s.Total())
	}
	if len(s.Hits()) != 1 {
		t.Errorf("Hits() len = %d", len(s.Hits()))
	}
	if s.Facets()[dimension.ContentType][0].Count != 2 {
		t.Errorf("Facets() = %v", s.Facets())
	}
	if s.Suggestion() != "budget" {
		t.Errorf("Suggestion() = %q", s.Suggestion())
	}
}

func TestSet_Empty(t *testing.T) {
	var s Set
	if s.Total() != 0 || s.Hits() != nil || s.Facets() != nil || s.Suggestion() != "" {
		t.Error("zero Set should be empty")
	}
}
