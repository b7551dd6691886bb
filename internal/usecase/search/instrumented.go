package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
	"github.com/kailas-cloud/djinnsearch/internal/metrics"
)

// InstrumentedEngine wraps Engine with latency metrics and logging.
type InstrumentedEngine struct {
	inner  Engine
	logger *zap.Logger
}

// NewInstrumentedEngine wraps an engine with observability.
func NewInstrumentedEngine(inner Engine, logger *zap.Logger) *InstrumentedEngine {
	return &InstrumentedEngine{inner: inner, logger: logger}
}

// Execute delegates to the inner engine and records duration per profile.
func (e *InstrumentedEngine) Execute(ctx context.Context, req request.Request) (result.Set, error) {
	start := time.Now()

	rs, err := e.inner.Execute(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.EngineDuration.WithLabelValues(req.Profile(), "error").Observe(duration.Seconds())
		e.logger.Error("Search request failed",
			zap.String("profile", req.Profile()),
			zap.Bool("tainted", req.Tainted()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return result.Set{}, fmt.Errorf("execute: %w", err)
	}

	metrics.EngineDuration.WithLabelValues(req.Profile(), "ok").Observe(duration.Seconds())
	e.logger.Debug("Search request completed",
		zap.String("profile", req.Profile()),
		zap.Bool("tainted", req.Tainted()),
		zap.Duration("duration", duration),
		zap.Int("total", rs.Total()),
		zap.Int("hits", len(rs.Hits())),
	)

	return rs, nil
}
