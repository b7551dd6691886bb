package indexing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/djinnsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
	"github.com/kailas-cloud/djinnsearch/internal/metrics"
)

// DefaultBatchSize is the number of documents written per index batch.
const DefaultBatchSize = 500

// Service writes documents to the index in batches with per-item results.
// A failed batch fails only its own items; later batches still run.
type Service struct {
	docs      DocumentWriter
	batchSize int
}

// New creates an indexing service.
func New(docs DocumentWriter) *Service {
	return &Service{docs: docs, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the number of documents per batch.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// Index writes docs, batchSize at a time.
func (s *Service) Index(ctx context.Context, docs []domdoc.Document) []dombatch.Result {
	results := make([]dombatch.Result, 0, len(docs))

	for offset := 0; offset < len(docs); offset += s.batchSize {
		end := min(offset+s.batchSize, len(docs))
		chunk := docs[offset:end]

		if err := ctx.Err(); err != nil {
			results = appendFailed(results, docIDs(chunk), err)
			continue
		}

		if err := s.docs.IndexMany(ctx, chunk); err != nil {
			logger.FromContext(ctx).Error("Index batch failed",
				zap.Int("offset", offset),
				zap.Int("size", len(chunk)),
				zap.Error(err),
			)
			results = appendFailed(results, docIDs(chunk), fmt.Errorf("index: %w", err))
			continue
		}

		for _, d := range chunk {
			results = append(results, dombatch.Indexed(d.ID()))
		}
		metrics.IndexedDocumentsTotal.WithLabelValues(string(dombatch.StatusIndexed)).Add(float64(len(chunk)))
	}

	return results
}

// Delete removes ids, batchSize at a time.
func (s *Service) Delete(ctx context.Context, ids []string) []dombatch.Result {
	results := make([]dombatch.Result, 0, len(ids))

	for offset := 0; offset < len(ids); offset += s.batchSize {
		end := min(offset+s.batchSize, len(ids))
		chunk := ids[offset:end]

		if err := ctx.Err(); err != nil {
			results = appendFailed(results, chunk, err)
			continue
		}

		if err := s.docs.DeleteMany(ctx, chunk); err != nil {
			logger.FromContext(ctx).Error("Delete batch failed",
				zap.Int("offset", offset),
				zap.Int("size", len(chunk)),
				zap.Error(err),
			)
			results = appendFailed(results, chunk, fmt.Errorf("delete: %w", err))
			continue
		}

		for _, id := range chunk {
			results = append(results, dombatch.Deleted(id))
		}
		metrics.IndexedDocumentsTotal.WithLabelValues(string(dombatch.StatusDeleted)).Add(float64(len(chunk)))
	}

	return results
}

func appendFailed(results []dombatch.Result, ids []string, err error) []dombatch.Result {
	for _, id := range ids {
		results = append(results, dombatch.Failed(id, err))
	}
	metrics.IndexedDocumentsTotal.WithLabelValues(string(dombatch.StatusFailed)).Add(float64(len(ids)))
	return results
}

func docIDs(docs []domdoc.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID()
	}
	return ids
}
