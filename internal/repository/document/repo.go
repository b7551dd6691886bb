package document

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/djinnsearch/internal/db"
	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
)

// store is the consumer interface for index writes (ISP).
type store interface {
	Index(ctx context.Context, docs []db.IndexDoc) error
	Delete(ctx context.Context, ids []string) error
	Count(ctx context.Context) (uint64, error)
}

// Repo implements usecase/indexing.DocumentWriter.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexMany writes documents in one batch, replacing existing ids.
func (r *Repo) IndexMany(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]db.IndexDoc, len(docs))
	for i := range docs {
		items[i] = buildIndexDoc(&docs[i])
	}
	if err := r.store.Index(ctx, items); err != nil {
		return fmt.Errorf("index %d documents: %w", len(docs), err)
	}
	return nil
}

// DeleteMany removes documents by id.
func (r *Repo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.store.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete %d documents: %w", len(ids), err)
	}
	return nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return int(n), nil
}
