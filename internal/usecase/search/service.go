package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/domain"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/profile"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
	"github.com/kailas-cloud/djinnsearch/internal/metrics"
)

// Search outcomes recorded in metrics.
const (
	outcomeNoQuery = "no_query"
	outcomeHits    = "hits"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Params is one search form submission.
type Params struct {
	Profile  profile.Profile
	Username string
	Input    query.Input
	// Fixed is the route value for profiles bound to one group or owner.
	Fixed string
}

// Service runs the search pipeline: validate, build, execute, relax once, present.
type Service struct {
	engine    Engine
	directory Directory
	builder   *Builder
	presenter *Presenter
	rules     query.Rules
}

// New creates a search service.
func New(engine Engine, directory Directory, builder *Builder, rules query.Rules) *Service {
	return &Service{
		engine:    engine,
		directory: directory,
		builder:   builder,
		presenter: NewPresenter(),
		rules:     rules,
	}
}

// Search validates the submission and runs it. Invalid or empty input yields
// the no-query payload without touching the directory or the engine. A zero-hit
// conjunctive query of two or more terms is retried once as a disjunction.
func (s *Service) Search(ctx context.Context, p Params) (Payload, error) {
	if p.Username == "" {
		return Payload{}, domain.ErrUnauthenticated
	}
	profileName := p.Profile.Name()

	q, err := query.New(p.Input, s.rules)
	if err != nil {
		var ve *query.ValidationError
		if errors.As(err, &ve) {
			metrics.SearchesTotal.WithLabelValues(profileName, outcomeNoQuery).Inc()
			return s.presenter.NoQuery(query.Clean(p.Input.Text), ve.Fields), nil
		}
		return Payload{}, fmt.Errorf("validate query: %w", err)
	}
	if q.IsEmpty() {
		metrics.SearchesTotal.WithLabelValues(profileName, outcomeNoQuery).Inc()
		return s.presenter.NoQuery(q.Text(), nil), nil
	}

	who, err := s.directory.Lookup(ctx, p.Username)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(profileName, outcomeError).Inc()
		return Payload{}, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}

	req, err := s.builder.Build(q, who, p.Profile, p.Fixed)
	if err != nil {
		var ve *query.ValidationError
		if errors.As(err, &ve) {
			metrics.SearchesTotal.WithLabelValues(profileName, outcomeNoQuery).Inc()
			return s.presenter.NoQuery(q.Text(), ve.Fields), nil
		}
		return Payload{}, fmt.Errorf("build request: %w", err)
	}

	rs, err := s.engine.Execute(ctx, req)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(profileName, outcomeError).Inc()
		return Payload{}, fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
	}

	if rs.Total() == 0 {
		if relaxed, ok := s.builder.Relax(req); ok {
			metrics.RelaxationsTotal.WithLabelValues(profileName).Inc()
			logger.FromContext(ctx).Debug("relaxing zero-hit query",
				zap.String("profile", profileName),
				zap.Int("alternatives", len(relaxed.Match().Children())),
			)

			rs, err = s.engine.Execute(ctx, relaxed)
			if err != nil {
				metrics.SearchesTotal.WithLabelValues(profileName, outcomeError).Inc()
				return Payload{}, fmt.Errorf("%w: relaxed: %w", domain.ErrEngineUnavailable, err)
			}
			req = relaxed
		}
	}

	outcome := outcomeHits
	if rs.Total() == 0 {
		outcome = outcomeEmpty
	}
	metrics.SearchesTotal.WithLabelValues(profileName, outcome).Inc()

	return s.presenter.Present(rs, req), nil
}
