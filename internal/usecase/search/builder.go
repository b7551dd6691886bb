package search

import (
	"fmt"

	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
	"github.com/kailas-cloud/djinnsearch/internal/domain/principal"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/profile"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
)

// BuilderConfig holds engine-wide query settings.
type BuilderConfig struct {
	DefaultOperator predicate.Operator
	// Spelling enables suggestions for profiles that allow them.
	Spelling bool
	PerPage  int
}

// Builder turns validated queries into engine requests. It is pure: no I/O.
type Builder struct {
	cfg BuilderConfig
}

// NewBuilder creates a Builder. An empty operator means AND.
func NewBuilder(cfg BuilderConfig) *Builder {
	if cfg.DefaultOperator == "" {
		cfg.DefaultOperator = predicate.OperatorAnd
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = request.DefaultPerPage
	}
	return &Builder{cfg: cfg}
}

// Build produces the request for q run by p under prof. fixed is the route
// value for profiles bound to one group or owner. The query must not be empty.
func (b *Builder) Build(q query.Query, p principal.Principal, prof profile.Profile, fixed string) (request.Request, error) {
	if q.IsEmpty() {
		return request.Request{}, fmt.Errorf("%w: empty query", query.ErrNoQuery)
	}

	req := request.New(q.Text(), predicate.Text(domdoc.FieldText, autoquery.Parse(q.Text()), b.cfg.DefaultOperator)).
		WithProfile(prof.Name())

	if prof.AccessFilter() && !p.IsSuperuser() {
		req = req.WithFilter(predicate.In(domdoc.FieldAllowList, p.AccessTokens()...))
	}

	for _, d := range prof.Dimensions() {
		if values := q.Values(d); len(values) > 0 {
			req = req.WithFilter(predicate.In(d.Field(), values...))
		}
	}
	if kw := q.Keywords(); kw != "" {
		req = req.WithFilter(predicate.Term(domdoc.FieldKeywords, kw))
	}

	if d, ok := prof.Fixed(); ok {
		if fixed == "" {
			return request.Request{}, &query.ValidationError{Fields: map[string]string{string(d): "is required"}}
		}
		req = req.WithFilter(predicate.Term(d.Field(), fixed))
	}

	req = req.
		WithFacets(prof.Dimensions()...).
		WithOrder(q.Order()).
		WithPage(q.Page(), b.cfg.PerPage)

	if b.cfg.Spelling && prof.Spelling() {
		text := q.Text()
		req = req.WithRunOptions(request.RunOptions{SpellingQuery: &text})
	}

	return req, nil
}

// Relax rewrites a zero-hit conjunctive request into a disjunction over its
// terms and phrases. Exclusions apply to every alternative. Reports false when
// the request has fewer than two terms and phrases, is not conjunctive, or is
// already relaxed. req is not modified.
func (b *Builder) Relax(req request.Request) (request.Request, bool) {
	if req.Tainted() {
		return req, false
	}
	m := req.Match()
	if m.Kind() != predicate.KindText || m.Operator() != predicate.OperatorAnd {
		return req, false
	}

	parts := m.Query().Parts()
	if len(parts) < 2 {
		return req, false
	}

	alternatives := make([]predicate.Predicate, len(parts))
	for i, part := range parts {
		alternatives[i] = predicate.Text(m.Field(), part, m.Operator())
	}
	return req.Relaxed(predicate.Or(alternatives...)), true
}
