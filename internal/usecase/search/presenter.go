package search

import (
	"maps"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
)

// Payload is the render-ready outcome of a search.
type Payload struct {
	// NoQuery is set when there was nothing to search for; the engine was not called.
	NoQuery    bool
	Query      string
	Total      int
	Page       int
	PerPage    int
	HasNext    bool
	Hits       []result.Hit
	Facets     map[dimension.Dimension][]result.FacetValue
	Suggestion string
	Tainted    bool
	// Errors maps form fields to validation messages.
	Errors map[string]string
}

// Presenter projects result sets into payloads. Pure and stateless.
type Presenter struct{}

// NewPresenter creates a Presenter.
func NewPresenter() *Presenter { return &Presenter{} }

// Present builds the payload for rs, the outcome of executing req.
// The suggestion is only exposed when req asked for one.
func (Presenter) Present(rs result.Set, req request.Request) Payload {
	p := Payload{
		Query:   req.Text(),
		Total:   rs.Total(),
		Page:    req.Page(),
		PerPage: req.PerPage(),
		HasNext: req.Offset()+req.PerPage() < rs.Total(),
		Hits:    rs.Hits(),
		Facets:  rs.Facets(),
		Tainted: req.Tainted(),
	}
	if req.RunOptions().SpellingQuery != nil {
		p.Suggestion = rs.Suggestion()
	}
	return p
}

// NoQuery builds the sentinel payload for input that was empty or invalid.
func (Presenter) NoQuery(text string, errs map[string]string) Payload {
	return Payload{NoQuery: true, Query: text, Errors: maps.Clone(errs)}
}
