package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/db"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
)

// DefaultFacetLimit is the number of facet values returned per dimension.
const DefaultFacetLimit = 20

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery, opts db.RunOptions) (*db.SearchResult, error)
}

// Repo implements usecase/search.Engine.
type Repo struct {
	store        store
	storedFields []string
	facetLimit   int
}

// New creates a search repository returning storedFields with every hit.
func New(s store, storedFields []string, facetLimit int) *Repo {
	if facetLimit <= 0 {
		facetLimit = DefaultFacetLimit
	}
	return &Repo{store: s, storedFields: storedFields, facetLimit: facetLimit}
}

// Execute runs a search request against the index.
func (r *Repo) Execute(ctx context.Context, req request.Request) (result.Set, error) {
	q := r.buildQuery(req)
	opts := db.RunOptions{SpellingQuery: req.RunOptions().SpellingQuery}

	sr, err := r.store.Search(ctx, q, opts)
	if err != nil {
		return result.Set{}, fmt.Errorf("search %s: %w", req.Profile(), err)
	}
	if sr.SuggestionErr != nil {
		logger.FromContext(ctx).Warn("spelling suggestion failed",
			zap.String("profile", req.Profile()),
			zap.Error(sr.SuggestionErr),
		)
	}

	return parseResult(sr, req.Facets()), nil
}

func (r *Repo) buildQuery(req request.Request) *db.SearchQuery {
	q := &db.SearchQuery{
		Match:   req.Match(),
		Filters: req.Filters(),
		Offset:  req.Offset(),
		Limit:   req.PerPage(),
		Fields:  r.storedFields,
	}
	for _, d := range req.Facets() {
		q.Facets = append(q.Facets, db.FacetSpec{Name: string(d), Field: d.Field(), Size: r.facetLimit})
	}
	if o := req.Order(); !o.IsRelevance() {
		q.Sort = []string{string(o)}
	}
	return q
}

// parseResult converts a db.SearchResult into a domain result set.
func parseResult(sr *db.SearchResult, facets []dimension.Dimension) result.Set {
	if sr == nil {
		return result.Set{}
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		hits = append(hits, result.NewHit(e.Key, e.Score, e.Fields))
	}

	var fc map[dimension.Dimension][]result.FacetValue
	if len(facets) > 0 {
		fc = make(map[dimension.Dimension][]result.FacetValue, len(facets))
		for _, d := range facets {
			counts := sr.Facets[string(d)]
			values := make([]result.FacetValue, 0, len(counts))
			for _, c := range counts {
				values = append(values, result.FacetValue{Value: c.Term, Count: c.Count})
			}
			fc[d] = values
		}
	}

	return result.NewSet(sr.Total, hits, fc, sr.Suggestion)
}
